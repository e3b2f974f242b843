package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/integrii/flaggy"

	"agelife/src/config"
	"agelife/src/universe"
	"agelife/src/view"
)

var engines = map[string]func(o *universe.Options, stateCh chan universe.Status) (universe.Universe, error){
	"base": func(o *universe.Options, stateCh chan universe.Status) (universe.Universe, error) {
		return universe.NewBaseUniverse(o, stateCh)
	},
	"buffered":      universe.NewBufferedUniverse,
	"multithreaded": universe.NewMultithreadedUniverse,
}

func main() {
	cfg := initOptions()

	var stateCh chan universe.Status

	if !cfg.Interactive {
		stateCh = make(chan universe.Status, 10) //the buffered channel to getting the universe status
	}

	u, err := engines[cfg.Engine](cfg.UniverseOptions(), stateCh)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot create the universe: %v\n", err)
		os.Exit(1)
	}

	u.AddTemplate(universe.TestSampleTemplate())
	u.AddTemplate(universe.GliderTemplate(1, 1))

	if cfg.Interactive {
		if cfg.Random {
			u.SettleWithRandomData()
		} else if err := u.SettleTemplate("testSample1"); err != nil {
			fmt.Fprintf(os.Stderr, "cannot settle the universe: %v\n", err)
			os.Exit(1)
		}
		v := view.NewConsoleUI()
		u.RegisterViewer(v)
		v.Start()
		u.Close()
	} else {
		v := view.NewConsoleOut()
		u.RegisterViewer(v)

		if cfg.Random {
			u.SettleWithRandomData()
		} else if err := u.SettleTemplate("testSample1"); err != nil {
			fmt.Fprintf(os.Stderr, "cannot settle the universe: %v\n", err)
			os.Exit(1)
		}

		v.Start()
		u.Run()
		for {
			st := <-stateCh
			if st.RunningMode == universe.RunningStateFinished {
				break
			}
		}
		u.Close()
		close(stateCh)
	}

}

func initOptions() config.Config {

	cfg := config.Default()

	//the config file has to be loaded before the flags are bound so that
	//values set explicitly on the command line win over the file
	var loadErr error
	if path := configFileArg(); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			loadErr = err
		} else {
			cfg = loaded
		}
	}

	var configFile string
	engineNames := make([]string, 0, len(engines))
	for k := range engines {
		engineNames = append(engineNames, k)
	}
	sort.Strings(engineNames)

	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.String(&configFile, "f", "config", "Path to a JSON configuration file, flags set explicitly still apply on top of it")
	flaggy.Int(&cfg.Width, "x", "width", "Width of a simulation field")
	flaggy.Int(&cfg.Height, "y", "height", "Height of a simulation field")
	flaggy.Duration(&cfg.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&cfg.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps")
	flaggy.Float64(&cfg.SeedProbability, "p", "probability", "Probability that a cell starts alive when settling with random data, in [0,1]")
	flaggy.Bool(&cfg.Toroidal, "t", "toroidal", "Wrap the field edges around (torus) instead of treating outside cells as dead")
	flaggy.Bool(&cfg.Interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&cfg.Random, "r", "random", "Settle with random data")
	flaggy.String(&cfg.Engine, "e", "engine", "Engine to use ["+strings.Join(engineNames, "|")+"]")

	flaggy.Parse()

	if loadErr != nil {
		flaggy.ShowHelpAndExit(loadErr.Error())
	}

	_, ok := engines[cfg.Engine]
	if !ok {
		flaggy.ShowHelpAndExit("unknown engine")
	}

	if !cfg.Interactive {
		flaggy.ShowHelp("")
	}

	return cfg
}

//configFileArg pre-scans the command line for the config file path,
//the file is loaded before the flag defaults are bound
func configFileArg() string {
	for i := 1; i < len(os.Args); i++ {
		a := os.Args[i]
		switch {
		case a == "-f" || a == "--config":
			if i+1 < len(os.Args) {
				return os.Args[i+1]
			}
		case strings.HasPrefix(a, "--config="):
			return strings.TrimPrefix(a, "--config=")
		case strings.HasPrefix(a, "-f="):
			return strings.TrimPrefix(a, "-f=")
		}
	}
	return ""
}
