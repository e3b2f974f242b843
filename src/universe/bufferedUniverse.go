package universe

import "time"

/*
	Universe implementation with preallocated double buffers
	All cell states and ages are calculated to the buffers and then the buffer data
	is copied back to the grid, no allocation happens during the simulation
*/
type BufferedUniverse struct {
	*BaseUniverse
	tmpAlive [][]Cell
	tmpAge   [][]int
}

func NewBufferedUniverse(o *Options, stateCh chan Status) (Universe, error) {
	base, err := NewBaseUniverse(o, stateCh)
	if err != nil {
		return nil, err
	}
	bu := &BufferedUniverse{BaseUniverse: base}
	//redefine the nextIteration
	bu.BaseUniverse.nextIteration = bu.nextIteration
	width, height := base.grid.Dimensions()
	bu.tmpAlive = makeCells(width, height)
	bu.tmpAge = makeAges(width, height)
	bu.options.Advanced["engine"] = "buffered"
	return bu, nil
}

func (bu *BufferedUniverse) nextIteration() (hasLiveEntities bool, changed bool) {
	bu.grid.Lock()
	defer bu.grid.Unlock()
	start := time.Now()
	g := bu.grid.Grid
	liveCells := 0
	g.walk(func(x int, y int, e Cell, _ int) {
		next, age := g.nextCell(x, y)
		if next {
			liveCells++
		}
		changed = changed || next != bool(e)
		bu.tmpAlive[y][x] = Cell(next)
		bu.tmpAge[y][x] = age
	})

	for y := range g.alive {
		copy(g.alive[y], bu.tmpAlive[y])
		copy(g.age[y], bu.tmpAge[y])
	}

	bu.state.LiveCells = liveCells
	bu.state.IterationTime = time.Since(start)
	hasLiveEntities = liveCells > 0
	return
}
