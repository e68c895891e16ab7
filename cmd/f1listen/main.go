package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gitlab.com/gomidi/midi/v2"

	"f1midi/lib/midiout"
	"f1midi/lib/surface"
)

func main() {
	defer midi.CloseDriver()

	portName := flag.String("port", midiout.DefaultVirtualPort, "input port substring")
	channel := flag.Uint("channel", 0, "MIDI channel (0-15)")
	flag.Parse()

	if *channel > 15 {
		fmt.Fprintf(os.Stderr, "Error: channel %d out of range 0-15\n", *channel)
		os.Exit(1)
	}
	enc := surface.Encoder{Channel: uint8(*channel)}

	port, err := midiout.FindInPort(*portName)
	if err != nil {
		fmt.Println("Available MIDI input ports:")
		for _, p := range midi.GetInPorts() {
			fmt.Printf("  %s\n", p)
		}
		fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Listening on: %s\n", port)

	stop, err := midi.ListenTo(port, func(msg midi.Message, timestampms int32) {
		if event, ok := enc.Decode(msg); ok {
			fmt.Printf("%8d  % X  %s\n", timestampms, []byte(msg), event)
			return
		}
		fmt.Printf("%8d  % X  (unmapped) %s\n", timestampms, []byte(msg), msg)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listening: %v\n", err)
		os.Exit(1)
	}
	defer stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	fmt.Println()
}
