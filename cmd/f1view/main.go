package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"gitlab.com/gomidi/midi/v2"

	"f1midi/lib/bridge"
	"f1midi/lib/config"
	"f1midi/lib/midiout"
	"f1midi/lib/monitor"
	"f1midi/lib/surface"
	"f1midi/lib/traktorf1"
	"f1midi/lib/view"
)

func main() {
	defer midi.CloseDriver()

	cfg, err := config.FromArgs("f1view", os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tr, err := surface.NewTranslator(uint8(cfg.Channel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	dev, err := traktorf1.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer dev.Close()
	dev.Hysteresis = cfg.Hysteresis

	out, err := midiout.OpenPort(cfg.OutPort, cfg.VirtualPort)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	// The terminal belongs to the view; log lines would tear it.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	state := monitor.NewState()
	b := bridge.New(tr, out, logger, state)

	title := fmt.Sprintf("%s -> %s (channel %d)", dev.Product(), out.Name, cfg.Channel)
	p := tea.NewProgram(view.NewModel(state, title), tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := b.Run(ctx, dev); err != nil {
			p.Send(view.ErrMsg{Err: err})
		}
	}()

	final, err := p.Run()
	cancel()
	dev.Close()
	<-done
	b.ReleaseAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if m, ok := final.(view.Model); ok && m.Err() != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", m.Err())
		os.Exit(1)
	}
}
