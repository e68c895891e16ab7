package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"f1midi/lib/surface"
	"f1midi/lib/traktorf1"
)

func matrixString(b surface.ButtonSnapshot) string {
	var sb strings.Builder
	for row := range b {
		if row > 0 {
			sb.WriteByte('/')
		}
		for _, pressed := range b[row] {
			if pressed {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

func main() {
	dev, err := traktorf1.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer dev.Close()

	fmt.Printf("Connected to: %s (serial: %s)\n", dev.Product(), dev.SerialNumber())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		dev.Close()
	}()

	var last traktorf1.Report
	first := true
	for {
		r, err := dev.ReadReport()
		if err != nil {
			fmt.Println()
			return
		}
		if !first && r == last {
			continue
		}
		first = false
		last = r

		snap := r.Snapshot()
		fmt.Printf("matrix %s  knobs %4d %v  faders %4d %v\n",
			matrixString(snap.Buttons),
			r.Knobs, snap.Analog.Knobs,
			r.Faders, snap.Analog.Faders)
	}
}
