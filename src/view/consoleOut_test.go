package view

import (
	"io"
	"os"
	"strings"
	"testing"

	"agelife/src/universe"
)

func TestConsoleOutReportsBatchRun(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	oldStdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = oldStdout }()

	stateCh := make(chan universe.Status, 10)
	o := universe.DefaultUniverseOptions
	o.Width = 10
	o.Height = 10
	o.Interval = 0
	o.MaxSteps = 5
	u, err := universe.NewBaseUniverse(&o, stateCh)
	if err != nil {
		t.Fatal(err)
	}
	defer u.Close()

	c := NewConsoleOut()
	u.RegisterViewer(c)
	if err := u.Settle(universe.BlinkerTemplate(4, 4).Coordinates); err != nil {
		t.Fatal(err)
	}

	c.Start()
	u.Run()
	for {
		st := <-stateCh
		if st.RunningMode == universe.RunningStateFinished {
			break
		}
	}
	//the finished status lands before the last refresh, a clear round-trips
	//through the command loop and guarantees the summary has been printed
	u.Clear()
	for {
		st := <-stateCh
		if st.RunningMode == universe.RunningStateManual {
			break
		}
	}

	_ = w.Close()
	os.Stdout = oldStdout
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"Running configuration", "Simulation started", "Finished", "Last iteration"} {
		if !strings.Contains(string(out), want) {
			t.Fatalf("batch output is missing %q:\n%s", want, out)
		}
	}
}
