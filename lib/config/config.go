package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"f1midi/lib/bridge"
	"f1midi/lib/midiout"
)

type Config struct {
	Channel uint `json:"channel"`

	// OutPort selects an existing output port by substring. When empty a
	// virtual port named VirtualPort is created instead.
	OutPort      string `json:"outPort,omitempty"`
	VirtualPort  string `json:"virtualPort,omitempty"`
	LogTolerance int    `json:"logTolerance"`
	Hysteresis   int    `json:"hysteresis"`
	MonitorAddr  string `json:"monitorAddr,omitempty"`
	Debug        bool   `json:"debug,omitempty"`
}

func Default() *Config {
	return &Config{
		VirtualPort:  midiout.DefaultVirtualPort,
		LogTolerance: bridge.DefaultLogTolerance,
	}
}

func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "f1midi"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Channel > 15 {
		return fmt.Errorf("config: channel %d out of range 0-15", c.Channel)
	}
	if c.LogTolerance < 0 {
		return fmt.Errorf("config: logTolerance must not be negative")
	}
	if c.Hysteresis < 0 {
		return fmt.Errorf("config: hysteresis must not be negative")
	}
	if c.OutPort == "" && c.VirtualPort == "" {
		return fmt.Errorf("config: one of outPort or virtualPort is required")
	}
	return nil
}

// RegisterFlags binds c's fields to fs using the current values as defaults,
// so flags parsed afterwards override the file.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.UintVar(&c.Channel, "channel", c.Channel, "MIDI channel (0-15)")
	fs.StringVar(&c.OutPort, "port", c.OutPort, "send to the existing output port matching this substring")
	fs.StringVar(&c.VirtualPort, "virtual", c.VirtualPort, "name of the virtual output port to create")
	fs.IntVar(&c.LogTolerance, "log-tolerance", c.LogTolerance, "knob/fader moves up to this size are logged at debug level")
	fs.IntVar(&c.Hysteresis, "hysteresis", c.Hysteresis, "raw knob/fader movement (0-4095) ignored as noise")
	fs.StringVar(&c.MonitorAddr, "monitor", c.MonitorAddr, "serve the state monitor on this address")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "debug logging")
}

// FromArgs loads the file named by -config (or the default path) and applies
// the remaining flags on top.
func FromArgs(name string, args []string) (*Config, error) {
	path, err := Path()
	if err != nil {
		path = ""
	}
	pre := flag.NewFlagSet(name, flag.ContinueOnError)
	pre.SetOutput(io.Discard)
	pre.StringVar(&path, "config", path, "")
	pre.Parse(configArgs(args))

	cfg := Default()
	if path != "" {
		cfg, err = Load(path)
		if err != nil {
			return nil, err
		}
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.String("config", path, "config file")
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func configArgs(args []string) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "-config" || a == "--config":
			out = append(out, a)
			if i+1 < len(args) {
				out = append(out, args[i+1])
				i++
			}
		case strings.HasPrefix(a, "-config=") || strings.HasPrefix(a, "--config="):
			out = append(out, a)
		}
	}
	return out
}
