package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/integrii/flaggy"
)

func TestExplicitFlagsWinOverConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"width":80,"height":24,"engine":"buffered"}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	oldArgs := os.Args
	defer func() {
		os.Args = oldArgs
		flaggy.ResetParser()
	}()
	flaggy.ResetParser()
	os.Args = []string{"agelife", "-x", "77", "-f", path, "-n"}

	cfg := initOptions()
	if cfg.Width != 77 {
		t.Fatalf("width = %v, want the explicit flag value 77", cfg.Width)
	}
	if cfg.Height != 24 {
		t.Fatalf("height = %v, want the file value 24", cfg.Height)
	}
	if cfg.Engine != "buffered" {
		t.Fatalf("engine = %v, want the file value", cfg.Engine)
	}
	if !cfg.Interactive {
		t.Fatal("the interactive flag was dropped by the config file")
	}
}

func TestConfigFileAloneStillApplies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"width":80,"toroidal":true}`), 0644); err != nil {
		t.Fatal(err)
	}

	oldArgs := os.Args
	defer func() {
		os.Args = oldArgs
		flaggy.ResetParser()
	}()
	flaggy.ResetParser()
	os.Args = []string{"agelife", "--config=" + path, "-n"}

	cfg := initOptions()
	if cfg.Width != 80 || !cfg.Toroidal {
		t.Fatalf("width=%v toroidal=%v, want the file values", cfg.Width, cfg.Toroidal)
	}
}
