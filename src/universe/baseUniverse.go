package universe

import (
	"math/rand"
	"sync"
	"time"
)

//Options represents the Universe's configurable options
type Options struct {
	Width           int
	Height          int
	Interval        time.Duration
	MaxSteps        int
	MaxSkippedTicks int
	Edge            EdgePolicy
	SeedProbability float64                //cell alive probability for random settling
	RandSeed        int64                  //0 means seed from the clock
	Advanced        map[string]interface{} //advanced options (engine specific)
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
	Details       map[string]interface{} //advanced details (engine specific)
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(u *BaseUniverse)
	Start()
}

//The universe running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefWidth              = 40
	DefHeight             = 15
	DefMaxSkippedTicks    = 5
	DefSeedProbability    = 0.3
)

const (
	RunningStateManual   RunningState = 0x0
	RunningStateStep     RunningState = 0x1
	RunningStateRun      RunningState = 0x2
	RunningStateFinished RunningState = 0x3
)

var DefaultUniverseOptions = Options{
	Width:           DefWidth,
	Height:          DefHeight,
	Interval:        DefSimulationInterval,
	MaxSteps:        DefMaxSteps,
	MaxSkippedTicks: DefMaxSkippedTicks,
	Edge:            EdgeBounded,
	SeedProbability: DefSeedProbability,
}

//BaseUniverse is the base universe's engine
//implements Universe interface
//can be used to create different implementations by redefining nextIteration func
type BaseUniverse struct {
	options Options
	state   struct {
		Status
		sync.Mutex
	}
	grid struct {
		*Grid
		sync.Mutex
	}
	stateCh       chan Status
	views         []Viewer
	templates     map[string]Template
	controlCh     chan func()
	closeCh       chan bool
	rng           *rand.Rand
	nextIteration func() (hasLiveEntities bool, changed bool)
}

//NewBaseUniverse creates the BaseUniverse instance
//fails when the options carry invalid dimensions or seed probability
func NewBaseUniverse(o *Options, stateCh chan Status) (*BaseUniverse, error) {
	if o == nil {
		o = &DefaultUniverseOptions
	}
	opts := *o
	//the caller's options (including the package defaults) stay untouched,
	//every instance gets its own advanced map
	advanced := make(map[string]interface{}, len(opts.Advanced)+2)
	for k, v := range opts.Advanced {
		advanced[k] = v
	}
	advanced["engine"] = "base"
	advanced["edge policy"] = opts.Edge.String()
	opts.Advanced = advanced

	u := BaseUniverse{
		options:   opts,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan bool, 1),
		stateCh:   stateCh,
		templates: map[string]Template{},
	}
	randSeed := o.RandSeed
	if randSeed == 0 {
		randSeed = time.Now().UnixNano()
	}
	u.rng = rand.New(rand.NewSource(randSeed))

	//nextIteration can be implemented by successor
	u.nextIteration = u._nextIteration
	u.state.Details = make(map[string]interface{})

	//the probability is validated here even though the grid starts all dead,
	//SettleWithRandomData reuses it later
	if err := UniformRandom(u.options.SeedProbability, u.rng).validate(o.Width, o.Height); err != nil {
		return nil, err
	}
	grid, err := NewGrid(o.Width, o.Height, AllDead(), o.Edge)
	if err != nil {
		return nil, err
	}
	u.grid.Grid = grid

	u.refreshView()
	go u.mainLoop()
	return &u, nil
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (u *BaseUniverse) AddTemplate(tmpl Template) {
	u.templates[tmpl.Name] = tmpl
}

//Settle settles the universe with data
//vc - array of x,y coordinates
//the coordinates are validated before the field is touched
func (u *BaseUniverse) Settle(vc [][]int) error {
	u.grid.Lock()
	err := u.grid.Reset(Pattern(vc))
	if err == nil {
		u.state.LiveCells = u.grid.LiveCells()
	}
	u.grid.Unlock()
	u.refreshView()
	return err
}

//SettleTemplate populates the universe with the seeding template
func (u *BaseUniverse) SettleTemplate(name string) error {
	tmpl, ok := u.templates[name]
	if !ok {
		return nil
	}
	return u.Settle(tmpl.Coordinates)
}

//SettleWithRandomData populates the universe with random data
//each cell starts alive with the configured seed probability
func (u *BaseUniverse) SettleWithRandomData() {
	if u.state.RunningMode == RunningStateManual || u.state.RunningMode == RunningStateFinished {
		u.controlCh <- u.clear
		u.controlCh <- func() {
			u.grid.Lock()
			_ = u.grid.Reset(UniformRandom(u.options.SeedProbability, u.rng))
			u.state.LiveCells = u.grid.LiveCells()
			u.grid.Unlock()
			u.refreshView()
		}
	}
}

//InverseCell inverses the cell state at point x, y
func (u *BaseUniverse) InverseCell(x int, y int) error {
	u.grid.Lock()
	_, err := u.grid.Inverse(x, y)
	u.grid.Unlock()
	u.refreshView()
	return err
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
func (u *BaseUniverse) RegisterViewer(v Viewer) {
	u.views = append(u.views, v)
	v.Register(u)
}

//StateCh returns the channel with the universe's status updates
func (u *BaseUniverse) StateCh() chan Status {
	return u.stateCh
}

//Status returns current universe status represented by Status struct
func (u *BaseUniverse) Status() Status {
	return u.state.Status
}

//Options returns current universe configuration represented by Options struct
func (u *BaseUniverse) Options() Options {
	return u.options
}

//Area returns current universe area (field where cells is living)
//the planes are shared with the engine, readers must not interleave with stepping
func (u *BaseUniverse) Area() Area {
	return u.grid.Area()
}

//IsAlive returns the current state of the cell at x, y
func (u *BaseUniverse) IsAlive(x int, y int) (bool, error) {
	return u.grid.IsAlive(x, y)
}

//AgeAt returns the age of the cell at x, y, 0 for a dead cell
func (u *BaseUniverse) AgeAt(x int, y int) (int, error) {
	return u.grid.AgeAt(x, y)
}

//Dimensions returns the field dimensions fixed at construction
func (u *BaseUniverse) Dimensions() (width int, height int) {
	return u.grid.Dimensions()
}

//Run starts the universe simulation, returns immediately
func (u *BaseUniverse) Run() {
	u.controlCh <- u.run
}

//Stop stops the universe simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (u *BaseUniverse) Stop() {
	u.controlCh <- u.stop
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (u *BaseUniverse) Step() {
	u.controlCh <- u.step
}

//Clear clears the universe (kill all cells and reset all counters), returns immediately
//the Status struct will be written to the stateCh on finish
func (u *BaseUniverse) Clear() {
	u.controlCh <- u.clear
}

//Close stops the main loop, close the channels, returns immediately
func (u *BaseUniverse) Close() {
	u.closeCh <- true
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (u *BaseUniverse) mainLoop() {
	var c = false
	for !c {
		select {
		case cmd := <-u.controlCh:
			cmd()
		case c = <-u.closeCh:

		}
	}
	close(u.closeCh)
	close(u.controlCh)
}

//switchRunningState switch the state of the universe to RunningState
//also writes the new state to the stateCh to signal upper control software
func (u *BaseUniverse) switchRunningState(to RunningState) {
	u.state.Lock()
	u.state.RunningMode = to
	st := u.state.Status
	u.state.Unlock()
	if u.stateCh != nil {
		u.stateCh <- st
	}
}

//run starts the universe simulation
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (u *BaseUniverse) run() {
	go func() {
		u.switchRunningState(RunningStateRun)
		skipped := 0
		done := make(chan bool)
		defer close(done)
		for {
			mode := u.state.RunningMode
			if mode != RunningStateRun && mode != RunningStateStep {
				break
			}
			if skipped > u.options.MaxSkippedTicks {
				u.switchRunningState(RunningStateFinished)
				break
			}
			//skip the tick if the universe is still in the calculation mode
			if mode != RunningStateStep {
				skipped = 0
				u.controlCh <- func() {
					u.step()
					done <- true
				}
				<-done
			} else {
				skipped++
			}
			if u.options.Interval > 0 {
				time.Sleep(u.options.Interval)
			}
		}

	}()
}

//stop stops the universe running cycle
func (u *BaseUniverse) stop() {
	if u.state.RunningMode == RunningStateRun {
		u.switchRunningState(RunningStateManual)
	}
}

//step does the new one state calculation for entire universe
func (u *BaseUniverse) step() {

	finished := false
	rm := u.state.RunningMode
	maxIter := u.options.MaxSteps
	u.state.IterationNum++
	defer func() {
		if finished {
			u.switchRunningState(RunningStateFinished)
		} else {
			u.switchRunningState(rm)
		}
		u.refreshView()
	}()

	if maxIter != 0 && u.state.IterationNum >= maxIter {
		finished = true
		return
	}
	u.switchRunningState(RunningStateStep)
	isAlive, changed := u.nextIteration()
	if !isAlive || !changed {
		finished = true
	}
}

//clear clears the universe data, reset all counters
func (u *BaseUniverse) clear() {
	u.state.Lock()
	u.grid.Lock()

	u.state.IterationNum = 0
	u.state.LiveCells = 0
	_ = u.grid.Reset(AllDead())
	u.state.RunningMode = RunningStateManual
	u.grid.Unlock()
	u.state.Unlock()
	u.switchRunningState(RunningStateManual)
	u.refreshView()

}

//_nextIteration does one simulation cycle
//the simplest implementation: the grid allocates the new planes on each call
//and swaps them in after the full field is calculated
func (u *BaseUniverse) _nextIteration() (hasLiveEntities bool, changed bool) {
	u.grid.Lock()
	defer u.grid.Unlock()
	start := time.Now()
	liveCells, changed := u.grid.Step()
	u.state.LiveCells = liveCells
	u.state.IterationTime = time.Since(start)
	return liveCells > 0, changed
}

//refreshView calls Refresh event for all registered views
func (u *BaseUniverse) refreshView() {
	for _, v := range u.views {
		v.Refresh()
	}
}
