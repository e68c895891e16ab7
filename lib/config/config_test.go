package config

import (
	"os"
	"path/filepath"
	"testing"

	"f1midi/lib/midiout"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.VirtualPort != midiout.DefaultVirtualPort {
		t.Errorf("got %q, want %q", cfg.VirtualPort, midiout.DefaultVirtualPort)
	}
	if cfg.LogTolerance != 2 {
		t.Errorf("got tolerance %d, want 2", cfg.LogTolerance)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	cfg := Default()
	cfg.Channel = 4
	cfg.Hysteresis = 12
	cfg.MonitorAddr = "127.0.0.1:8080"
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *cfg {
		t.Errorf("got %+v, want %+v", *got, *cfg)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"channel": 2}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Channel != 2 {
		t.Errorf("got channel %d, want 2", cfg.Channel)
	}
	if cfg.VirtualPort != midiout.DefaultVirtualPort {
		t.Errorf("got %q, want default virtual port", cfg.VirtualPort)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"channel": 16}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for channel 16")
	}

	if err := os.WriteFile(path, []byte(`{`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for bad JSON")
	}
}

func TestFromArgsFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"channel": 2, "hysteresis": 5}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := FromArgs("f1midi", []string{"-config", path, "-channel", "7", "-debug"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Channel != 7 {
		t.Errorf("got channel %d, want 7", cfg.Channel)
	}
	if cfg.Hysteresis != 5 {
		t.Errorf("got hysteresis %d, want 5 from file", cfg.Hysteresis)
	}
	if !cfg.Debug {
		t.Error("expected debug from flag")
	}
}

func TestFromArgsRejectsBadChannel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if _, err := FromArgs("f1midi", []string{"--config=" + path, "-channel", "20"}); err == nil {
		t.Error("expected error for channel 20")
	}
}
