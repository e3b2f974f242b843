package universe

import (
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

/*
	Universe implementation with multithreaded computation algorithm
	the field is split into row bands each of which is computed by individual goroutine
	every band reads from the same previous-generation snapshot and writes into its
	own disjoint rows of the shared double buffer
*/

const DefMinRowsPerWorker = 3 //minimum rows for one worker

type MultithreadedUniverse struct {
	*BaseUniverse
	workers  int
	tmpAlive [][]Cell
	tmpAge   [][]int
}

func NewMultithreadedUniverse(o *Options, stateCh chan Status) (Universe, error) {
	base, err := NewBaseUniverse(o, stateCh)
	if err != nil {
		return nil, err
	}
	mu := &MultithreadedUniverse{BaseUniverse: base}
	//redefine the nextIteration
	mu.BaseUniverse.nextIteration = mu.nextIteration

	width, height := base.grid.Dimensions()
	mu.workers = runtime.NumCPU()
	if maxWorkers := height / DefMinRowsPerWorker; mu.workers > maxWorkers && maxWorkers > 0 {
		mu.workers = maxWorkers
	}
	if mu.workers < 1 {
		mu.workers = 1
	}
	mu.tmpAlive = makeCells(width, height)
	mu.tmpAge = makeAges(width, height)
	mu.options.Advanced["engine"] = "multithreaded"
	mu.options.Advanced["workers"] = mu.workers
	return mu, nil
}

//nextIteration calculates the next state for the universe
//starts goroutines, waits for finishing and updates all related metrics
func (mu *MultithreadedUniverse) nextIteration() (hasLiveEntities bool, changed bool) {
	mu.grid.Lock()
	defer mu.grid.Unlock()
	start := time.Now()
	g := mu.grid.Grid

	var (
		eg            errgroup.Group
		rowsPerWorker = (g.height + mu.workers - 1) / mu.workers
		liveCounts    = make([]int, mu.workers)
		changedFlags  = make([]bool, mu.workers)
	)

	for i := 0; i < mu.workers; i++ {
		var (
			worker   = i
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.height)
		)
		if startRow >= g.height {
			break
		}

		eg.Go(func() error {
			liveCells := 0
			bandChanged := false
			for y := startRow; y < endRow; y++ {
				for x := 0; x < g.width; x++ {
					next, age := g.nextCell(x, y)
					if next {
						liveCells++
					}
					bandChanged = bandChanged || next != bool(g.alive[y][x])
					mu.tmpAlive[y][x] = Cell(next)
					mu.tmpAge[y][x] = age
				}
			}
			liveCounts[worker] = liveCells
			changedFlags[worker] = bandChanged
			return nil
		})
	}

	//workers only ever return nil
	_ = eg.Wait()

	liveCells := 0
	for i := 0; i < mu.workers; i++ {
		liveCells += liveCounts[i]
		changed = changed || changedFlags[i]
	}
	for y := range g.alive {
		copy(g.alive[y], mu.tmpAlive[y])
		copy(g.age[y], mu.tmpAge[y])
	}

	mu.state.LiveCells = liveCells
	mu.state.IterationTime = time.Since(start)
	hasLiveEntities = liveCells > 0
	return
}
