package universe

import (
	"math/rand"

	"github.com/pkg/errors"
)

//SeedPolicy decides the initial alive set of a grid
//policies are validated against the grid dimensions before any cell is touched
type SeedPolicy interface {
	validate(width int, height int) error
	apply(g *Grid)
}

//AllDead returns the policy that leaves every cell dead
func AllDead() SeedPolicy {
	return allDead{}
}

type allDead struct{}

func (allDead) validate(int, int) error { return nil }
func (allDead) apply(*Grid)             {}

//UniformRandom returns the policy that settles each cell alive with probability p
//src may be nil, then the shared global source is used
//fails with ErrInvalidProbability when p is outside [0,1]
func UniformRandom(p float64, src *rand.Rand) SeedPolicy {
	return uniformRandom{p: p, src: src}
}

type uniformRandom struct {
	p   float64
	src *rand.Rand
}

func (u uniformRandom) validate(int, int) error {
	if u.p < 0 || u.p > 1 {
		return errors.Wrapf(ErrInvalidProbability, "p=%v", u.p)
	}
	return nil
}

func (u uniformRandom) apply(g *Grid) {
	roll := rand.Float64
	if u.src != nil {
		roll = u.src.Float64
	}
	g.walk(func(x int, y int, _ Cell, _ int) {
		if roll() < u.p {
			g.alive[y][x] = true
		}
	})
}

//Pattern returns the policy that settles the listed x,y coordinates alive
//fails with ErrOutOfBounds when any coordinate is outside the grid
func Pattern(coordinates [][]int) SeedPolicy {
	return pattern{coordinates: coordinates}
}

type pattern struct {
	coordinates [][]int
}

func (p pattern) validate(width int, height int) error {
	for _, v := range p.coordinates {
		if len(v) != 2 {
			return errors.Wrapf(ErrOutOfBounds, "malformed coordinate %v", v)
		}
		if v[0] < 0 || v[0] >= width || v[1] < 0 || v[1] >= height {
			return errors.Wrapf(ErrOutOfBounds, "(%v,%v)", v[0], v[1])
		}
	}
	return nil
}

func (p pattern) apply(g *Grid) {
	for _, v := range p.coordinates {
		g.alive[v[1]][v[0]] = true
	}
}
