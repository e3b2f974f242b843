package universe

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
)

var testEngines = map[string]func(o *Options, stateCh chan Status) (Universe, error){
	"base": func(o *Options, stateCh chan Status) (Universe, error) {
		return NewBaseUniverse(o, stateCh)
	},
	"buffered":      NewBufferedUniverse,
	"multithreaded": NewMultithreadedUniverse,
}

func testUniverseOptions(edge EdgePolicy) *Options {
	o := DefaultUniverseOptions
	o.Width = 40
	o.Height = 20
	o.Interval = 0
	o.MaxSteps = 0
	o.Edge = edge
	o.RandSeed = 7
	o.Advanced = nil
	return &o
}

func mustUniverse(t *testing.T, name string, o *Options) Universe {
	t.Helper()
	u, err := testEngines[name](o, make(chan Status, 10))
	if err != nil {
		t.Fatalf("%v engine: %v", name, err)
	}
	return u
}

//stepAndWait triggers one step and drains the status channel until the engine is idle again
func stepAndWait(t *testing.T, u Universe) RunningState {
	t.Helper()
	u.Step()
	for {
		st := <-u.StateCh()
		if st.RunningMode == RunningStateManual || st.RunningMode == RunningStateFinished {
			return st.RunningMode
		}
	}
}

func randomCoordinates(width int, height int, n int, seed int64) [][]int {
	rng := rand.New(rand.NewSource(seed))
	vc := make([][]int, 0, n)
	for i := 0; i < n; i++ {
		vc = append(vc, []int{rng.Intn(width), rng.Intn(height)})
	}
	return vc
}

//copyPlanes snapshots the area buffers, the originals keep mutating with the engine
func copyPlanes(a Area) ([][]Cell, [][]int) {
	alive := make([][]Cell, a.Height)
	age := make([][]int, a.Height)
	for y := 0; y < a.Height; y++ {
		alive[y] = append([]Cell(nil), a.Alive[y]...)
		age[y] = append([]int(nil), a.Age[y]...)
	}
	return alive, age
}

//All engines must compute the same generations from the same snapshot,
//whatever the iteration order or the buffering strategy
func TestEnginesProduceIdenticalGenerations(t *testing.T) {
	for _, edge := range []EdgePolicy{EdgeBounded, EdgeToroidal} {
		t.Run(edge.String(), func(t *testing.T) {
			seedCoords := randomCoordinates(40, 20, 160, 99)

			var refAlive [][]Cell
			var refAge [][]int

			for _, name := range []string{"base", "buffered", "multithreaded"} {
				u := mustUniverse(t, name, testUniverseOptions(edge))
				if err := u.Settle(seedCoords); err != nil {
					t.Fatalf("%v: settle: %v", name, err)
				}
				for i := 0; i < 8; i++ {
					if stepAndWait(t, u) == RunningStateFinished {
						break
					}
				}
				alive, age := copyPlanes(u.Area())
				u.Close()

				if refAlive == nil {
					refAlive, refAge = alive, age
					continue
				}
				for y := range alive {
					for x := range alive[y] {
						if alive[y][x] != refAlive[y][x] {
							t.Fatalf("%v: alive state diverges from base at (%v,%v)", name, x, y)
						}
						if age[y][x] != refAge[y][x] {
							t.Fatalf("%v: age diverges from base at (%v,%v): %v != %v",
								name, x, y, age[y][x], refAge[y][x])
						}
					}
				}
			}
		})
	}
}

func TestUniverseFinishesOnStillLife(t *testing.T) {
	u := mustUniverse(t, "base", testUniverseOptions(EdgeBounded))
	defer u.Close()

	if err := u.Settle(BlockTemplate(3, 3).Coordinates); err != nil {
		t.Fatal(err)
	}
	//a still life never changes, the first step already reports finished
	if mode := stepAndWait(t, u); mode != RunningStateFinished {
		t.Fatalf("mode after stepping a block = %v, want finished", mode)
	}
	if st := u.Status(); st.LiveCells != 4 {
		t.Fatalf("live cells = %v, want the block intact", st.LiveCells)
	}
}

func TestUniverseFinishesAtMaxSteps(t *testing.T) {
	o := testUniverseOptions(EdgeBounded)
	o.MaxSteps = 3
	u := mustUniverse(t, "base", o)
	defer u.Close()

	if err := u.Settle(BlinkerTemplate(5, 5).Coordinates); err != nil {
		t.Fatal(err)
	}
	//the blinker keeps changing, only the step limit stops it
	for i := 0; i < 2; i++ {
		if mode := stepAndWait(t, u); mode != RunningStateManual {
			t.Fatalf("step %v: mode = %v, want manual", i+1, mode)
		}
	}
	if mode := stepAndWait(t, u); mode != RunningStateFinished {
		t.Fatal("universe did not finish at the step limit")
	}
	if st := u.Status(); st.IterationNum != 3 {
		t.Fatalf("iteration num = %v, want 3", st.IterationNum)
	}
}

func TestRunLoopFinishes(t *testing.T) {
	o := testUniverseOptions(EdgeBounded)
	o.MaxSteps = 5
	u := mustUniverse(t, "base", o)
	defer u.Close()

	if err := u.Settle(BlinkerTemplate(5, 5).Coordinates); err != nil {
		t.Fatal(err)
	}
	u.Run()
	for {
		st := <-u.StateCh()
		if st.RunningMode == RunningStateFinished {
			if st.IterationNum != 5 {
				t.Fatalf("finished at iteration %v, want 5", st.IterationNum)
			}
			return
		}
	}
}

func TestSettleWithRandomDataUsesSeedProbability(t *testing.T) {
	o := testUniverseOptions(EdgeBounded)
	o.SeedProbability = 0.3
	u := mustUniverse(t, "base", o)
	defer u.Close()

	u.SettleWithRandomData()
	//the internal clear reports one manual status before the data lands
	<-u.StateCh()
	if mode := stepAndWait(t, u); mode == RunningStateFinished {
		t.Fatal("a 0.3-density random field finished after one step")
	}
	if st := u.Status(); st.LiveCells == 0 {
		t.Fatal("random settling produced an empty field")
	}
}

func TestInverseCell(t *testing.T) {
	u := mustUniverse(t, "base", testUniverseOptions(EdgeBounded))
	defer u.Close()

	if err := u.InverseCell(3, 4); err != nil {
		t.Fatal(err)
	}
	if alive, _ := u.IsAlive(3, 4); !alive {
		t.Fatal("cell did not come alive")
	}
	if err := u.InverseCell(3, 4); err != nil {
		t.Fatal(err)
	}
	if alive, _ := u.IsAlive(3, 4); alive {
		t.Fatal("cell did not die")
	}
	if err := u.InverseCell(100, 100); errors.Cause(err) != ErrOutOfBounds {
		t.Fatalf("InverseCell(100, 100) error = %v, want ErrOutOfBounds", err)
	}
}

func TestSettleRejectsOutOfBounds(t *testing.T) {
	u := mustUniverse(t, "base", testUniverseOptions(EdgeBounded))
	defer u.Close()

	if err := u.Settle([][]int{{0, 0}, {100, 100}}); errors.Cause(err) != ErrOutOfBounds {
		t.Fatalf("Settle error = %v, want ErrOutOfBounds", err)
	}
}

func TestSettleRejectsMalformedCoordinates(t *testing.T) {
	u := mustUniverse(t, "base", testUniverseOptions(EdgeBounded))
	defer u.Close()

	if err := u.Settle([][]int{{1}}); errors.Cause(err) != ErrOutOfBounds {
		t.Fatalf("Settle error = %v, want ErrOutOfBounds", err)
	}
}

func TestConstructionDoesNotMutateSharedOptions(t *testing.T) {
	u1, err := NewBaseUniverse(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer u1.Close()
	u2, err := NewMultithreadedUniverse(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer u2.Close()

	if DefaultUniverseOptions.Advanced != nil {
		t.Fatal("the package defaults grew an advanced map")
	}
	//each instance owns its advanced map, the engine names must not leak between them
	if got := u1.Options().Advanced["engine"]; got != "base" {
		t.Fatalf("first instance engine = %v, want base", got)
	}
	if got := u2.Options().Advanced["engine"]; got != "multithreaded" {
		t.Fatalf("second instance engine = %v, want multithreaded", got)
	}
}

func TestNewUniverseRejectsInvalidOptions(t *testing.T) {
	o := testUniverseOptions(EdgeBounded)
	o.Width = 0
	if _, err := NewBaseUniverse(o, nil); errors.Cause(err) != ErrInvalidDimension {
		t.Fatalf("width 0 error = %v, want ErrInvalidDimension", err)
	}

	o = testUniverseOptions(EdgeBounded)
	o.SeedProbability = 2
	if _, err := NewBaseUniverse(o, nil); errors.Cause(err) != ErrInvalidProbability {
		t.Fatalf("probability 2 error = %v, want ErrInvalidProbability", err)
	}
}
