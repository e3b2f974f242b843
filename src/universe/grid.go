package universe

import (
	"github.com/pkg/errors"
)

type Cell bool

//EdgePolicy defines how neighbours outside the grid are treated
//the policy is fixed at construction time
type EdgePolicy int

const (
	EdgeBounded  EdgePolicy = iota //cells outside the grid count as dead
	EdgeToroidal                   //the grid wraps around its edges
)

func (e EdgePolicy) String() string {
	if e == EdgeToroidal {
		return "toroidal"
	}
	return "bounded"
}

//Area is the read view of the grid exposed to viewers
//the slices reference the live buffers, readers must not interleave with Step
type Area struct {
	Width  int
	Height int
	Alive  [][]Cell
	Age    [][]int
}

//Grid owns the alive and age planes of the simulation field
//Age of a dead cell is always 0, a cell born this generation has age 0,
//a cell that survived k generations has age k
type Grid struct {
	width  int
	height int
	edge   EdgePolicy
	alive  [][]Cell
	age    [][]int
}

//NewGrid creates the grid and settles it with the seed policy
func NewGrid(width int, height int, seed SeedPolicy, edge EdgePolicy) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimension, "%vx%v", width, height)
	}
	g := &Grid{
		width:  width,
		height: height,
		edge:   edge,
		alive:  makeCells(width, height),
		age:    makeAges(width, height),
	}
	if err := g.Reset(seed); err != nil {
		return nil, err
	}
	return g, nil
}

//Dimensions returns width and height of the grid
func (g *Grid) Dimensions() (width int, height int) {
	return g.width, g.height
}

//EdgePolicy returns the policy fixed at construction
func (g *Grid) EdgePolicy() EdgePolicy {
	return g.edge
}

//Area returns the read view of the planes
func (g *Grid) Area() Area {
	return Area{Width: g.width, Height: g.height, Alive: g.alive, Age: g.age}
}

//IsAlive returns the current state of the cell at x,y
func (g *Grid) IsAlive(x int, y int) (bool, error) {
	if !g.contains(x, y) {
		return false, errors.Wrapf(ErrOutOfBounds, "(%v,%v)", x, y)
	}
	return bool(g.alive[y][x]), nil
}

//AgeAt returns the age of the cell at x,y, 0 for a dead cell
func (g *Grid) AgeAt(x int, y int) (int, error) {
	if !g.contains(x, y) {
		return 0, errors.Wrapf(ErrOutOfBounds, "(%v,%v)", x, y)
	}
	return g.age[y][x], nil
}

//Set places or kills the cell at x,y, the age restarts from zero either way
func (g *Grid) Set(x int, y int, alive bool) error {
	if !g.contains(x, y) {
		return errors.Wrapf(ErrOutOfBounds, "(%v,%v)", x, y)
	}
	g.alive[y][x] = Cell(alive)
	g.age[y][x] = 0
	return nil
}

//Inverse toggles the cell at x,y and returns the new state
func (g *Grid) Inverse(x int, y int) (bool, error) {
	if !g.contains(x, y) {
		return false, errors.Wrapf(ErrOutOfBounds, "(%v,%v)", x, y)
	}
	g.alive[y][x] = !g.alive[y][x]
	g.age[y][x] = 0
	return bool(g.alive[y][x]), nil
}

//Reset clears both planes and settles the grid again
//the seed is validated before any cell is touched
func (g *Grid) Reset(seed SeedPolicy) error {
	if seed == nil {
		seed = AllDead()
	}
	if err := seed.validate(g.width, g.height); err != nil {
		return err
	}
	g.walk(func(x int, y int, _ Cell, _ int) {
		g.alive[y][x] = false
		g.age[y][x] = 0
	})
	seed.apply(g)
	return nil
}

//LiveCells calculates the count of live cells
func (g *Grid) LiveCells() (liveCells int) {
	g.walk(func(_ int, _ int, e Cell, _ int) {
		if e {
			liveCells++
		}
	})
	return
}

//Step advances the grid one generation
//the new planes are computed entirely from the previous generation's snapshot
//and swapped in at the end, neighbour counts never observe a half-updated row
func (g *Grid) Step() (liveCells int, changed bool) {
	nextAlive := makeCells(g.width, g.height)
	nextAge := makeAges(g.width, g.height)
	g.walk(func(x int, y int, e Cell, _ int) {
		next, age := g.nextCell(x, y)
		if next {
			liveCells++
		}
		changed = changed || next != bool(e)
		nextAlive[y][x] = Cell(next)
		nextAge[y][x] = age
	})
	g.alive = nextAlive
	g.age = nextAge
	return
}

//walk the entire grid and call the cb function for each cell
func (g *Grid) walk(cb func(x int, y int, alive Cell, age int)) {
	for y := range g.alive {
		for x := range g.alive[y] {
			cb(x, y, g.alive[y][x], g.age[y][x])
		}
	}
}

func (g *Grid) contains(x int, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

//nextCell calculates the next state and age for the cell from the current snapshot
func (g *Grid) nextCell(x int, y int) (live bool, age int) {
	n := g.liveNeighbours(x, y)
	live = n == 3 || (n == 2 && bool(g.alive[y][x]))
	if !live {
		return false, 0
	}
	if g.alive[y][x] {
		return true, g.age[y][x] + 1
	}
	return true, 0
}

//liveNeighbours counts live cells in the Moore neighbourhood of x,y
//applying the edge policy fixed at construction
func (g *Grid) liveNeighbours(x int, y int) (liveNeighbours int) {
	for j := -1; j < 2; j++ {
		for i := -1; i < 2; i++ {
			//skip my position
			if i == 0 && j == 0 {
				continue
			}
			nx := x + i
			ny := y + j
			if g.edge == EdgeToroidal {
				nx = (nx + g.width) % g.width
				ny = (ny + g.height) % g.height
			} else if nx < 0 || ny < 0 || nx >= g.width || ny >= g.height {
				//coordinates outside the area count as dead
				continue
			}
			if g.alive[ny][nx] {
				liveNeighbours++
			}
		}
	}
	return
}

//makeCells allocates the alive plane backed by a single buffer
func makeCells(width int, height int) [][]Cell {
	rows := make([][]Cell, height)
	b := make([]Cell, width*height)
	for i := range rows {
		start := width * i
		rows[i] = b[start : start+width : start+width]
	}
	return rows
}

//makeAges allocates the age plane backed by a single buffer
func makeAges(width int, height int) [][]int {
	rows := make([][]int, height)
	b := make([]int, width*height)
	for i := range rows {
		start := width * i
		rows[i] = b[start : start+width : start+width]
	}
	return rows
}
