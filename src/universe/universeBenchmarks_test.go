package universe

import (
	"sort"
	"testing"
)

const (
	benchWidth  = 200
	benchHeight = 200
)

func universeStep(u Universe, b *testing.B) {
	u.AddTemplate(TestSampleTemplate())
	stateCh := u.StateCh()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		u.Clear()
		<-stateCh //wait for finish
		if err := u.SettleTemplate("testSample1"); err != nil {
			b.Fatal(err)
		}
		b.StartTimer()
		u.Step()
		for {
			st := <-stateCh
			if st.RunningMode == RunningStateManual {
				break
			}
		}
	}
	u.Close()
	close(stateCh)
}

func universeRun(u Universe, b *testing.B) {
	u.AddTemplate(TestSampleTemplate())
	stateCh := u.StateCh()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		u.Clear()
		<-stateCh //wait for finish
		if err := u.SettleTemplate("testSample1"); err != nil {
			b.Fatal(err)
		}
		b.StartTimer()
		u.Run()
		for {
			st := <-stateCh
			if st.RunningMode == RunningStateFinished {
				break
			}
		}
	}
	u.Close()
	close(stateCh)
}

func newStateCh() chan Status {
	return make(chan Status, 10)
}

func newBenchOptions() *Options {
	o := DefaultUniverseOptions
	o.Interval = 0
	o.Width = benchWidth
	o.Height = benchHeight
	return &o
}

func benchEngineNames() (names []string) {
	names = make([]string, 0, len(testEngines))
	for k := range testEngines {
		names = append(names, k)
	}
	sort.Strings(names)
	return
}

func Benchmark_Step(b *testing.B) {
	for _, e := range benchEngineNames() {
		b.Run(e, func(b *testing.B) {
			u, err := testEngines[e](newBenchOptions(), newStateCh())
			if err != nil {
				b.Fatal(err)
			}
			universeStep(u, b)
		})
	}
}

func Benchmark_Universe(b *testing.B) {
	for _, e := range benchEngineNames() {
		b.Run(e, func(b *testing.B) {
			u, err := testEngines[e](newBenchOptions(), newStateCh())
			if err != nil {
				b.Fatal(err)
			}
			universeRun(u, b)
		})
	}
}
