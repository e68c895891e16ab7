package midiout

import (
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

const DefaultVirtualPort = "F1_Controller_Out"

type Output struct {
	send  func(msg midi.Message) error
	close func() error
	Name  string
}

func NewOutput(port drivers.Out) (*Output, error) {
	send, err := midi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("midiout: open port: %w", err)
	}
	return &Output{send: send, close: port.Close, Name: port.String()}, nil
}

// OpenVirtual creates a virtual output port other applications can connect
// to. Not supported by the Windows MIDI API.
func OpenVirtual(name string) (*Output, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("midiout: rtmididrv: %w", err)
	}
	port, err := drv.OpenVirtualOut(name)
	if err != nil {
		drv.Close()
		return nil, fmt.Errorf("midiout: open virtual port: %w", err)
	}
	out, err := NewOutput(port)
	if err != nil {
		drv.Close()
		return nil, err
	}
	out.close = func() error {
		port.Close()
		return drv.Close()
	}
	out.Name = name
	return out, nil
}

func Open(substr string) (*Output, error) {
	port, err := FindOutPort(substr)
	if err != nil {
		return nil, err
	}
	return NewOutput(port)
}

// OpenPort opens the existing port matching substr, or a virtual port named
// virtual when substr is empty.
func OpenPort(substr, virtual string) (*Output, error) {
	if substr != "" {
		return Open(substr)
	}
	return OpenVirtual(virtual)
}

func (o *Output) Send(msg midi.Message) error {
	if err := o.send(msg); err != nil {
		return fmt.Errorf("midiout: send %s: %w", msg, err)
	}
	return nil
}

func (o *Output) Close() error {
	if o.close == nil {
		return nil
	}
	return o.close()
}

func FindInPort(substr string) (drivers.In, error) {
	lower := strings.ToLower(substr)
	for _, port := range midi.GetInPorts() {
		if strings.Contains(strings.ToLower(port.String()), lower) {
			return port, nil
		}
	}
	return nil, fmt.Errorf("no MIDI input port matching %q", substr)
}

func FindOutPort(substr string) (drivers.Out, error) {
	lower := strings.ToLower(substr)
	for _, port := range midi.GetOutPorts() {
		if strings.Contains(strings.ToLower(port.String()), lower) {
			return port, nil
		}
	}
	return nil, fmt.Errorf("no MIDI output port matching %q", substr)
}
