package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gitlab.com/gomidi/midi/v2"

	"f1midi/lib/bridge"
	"f1midi/lib/config"
	"f1midi/lib/midiout"
	"f1midi/lib/monitor"
	"f1midi/lib/surface"
	"f1midi/lib/traktorf1"
)

func main() {
	defer midi.CloseDriver()

	cfg, err := config.FromArgs("f1midi", os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := bridge.NewLogger(cfg.Debug)

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
		fmt.Println("Available MIDI output ports:")
		for _, p := range midi.GetOutPorts() {
			fmt.Printf("  %s\n", p)
		}
		fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	logger.Info("connected", "device", dev.Product(), "serial", dev.SerialNumber(), "port", out.Name, "channel", cfg.Channel)

	b := bridge.New(tr, out, logger, bridge.NewLogObserver(logger, cfg.LogTolerance))

	if cfg.MonitorAddr != "" {
		state := monitor.NewState()
		b.AddObserver(state)
		srv := &http.Server{Addr: cfg.MonitorAddr, Handler: monitor.Handler(state)}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("monitor stopped", "err", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		logger.Info("monitor listening", "addr", cfg.MonitorAddr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() { done <- b.Run(ctx, dev) }()

	select {
	case err = <-done:
	case <-ctx.Done():
		// Unblocks the pending input report read.
		dev.Close()
		err = <-done
	}

	if rerr := b.ReleaseAll(); rerr != nil {
		logger.Error("release held notes", "err", rerr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()
}
