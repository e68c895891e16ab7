package surface

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
)

const (
	VelocityOn  = 127
	VelocityOff = 0
)

type Encoder struct {
	Channel uint8
}

func NewEncoder(channel uint8) (*Encoder, error) {
	if channel > 15 {
		return nil, fmt.Errorf("%w: channel %d", ErrInvalidControl, channel)
	}
	return &Encoder{Channel: channel}, nil
}

func (e Encoder) Button(cell Cell, pressed bool) (midi.Message, error) {
	note, err := cell.Note()
	if err != nil {
		return nil, err
	}
	if pressed {
		return midi.NoteOn(e.Channel, note, VelocityOn), nil
	}
	return midi.NoteOff(e.Channel, note), nil
}

func (e Encoder) Analog(control Analog, value int) (midi.Message, error) {
	cc, err := control.CC()
	if err != nil {
		return nil, err
	}
	return midi.ControlChange(e.Channel, cc, Clamp(value)), nil
}

func (e Encoder) Encode(ev Event) (midi.Message, error) {
	switch ev := ev.(type) {
	case ButtonEvent:
		return e.Button(ev.Cell, ev.Pressed)
	case AnalogEvent:
		return e.Analog(ev.Control, int(ev.Value))
	}
	return nil, fmt.Errorf("%w: event %T", ErrInvalidControl, ev)
}

// Decode maps a message produced by Encode back to its event. Messages on
// other channels or outside the address map are reported as not ok.
func (e Encoder) Decode(msg midi.Message) (Event, bool) {
	var channel, key, value uint8
	switch {
	case msg.GetNoteOn(&channel, &key, &value):
		if channel != e.Channel {
			return nil, false
		}
		cell, ok := CellForNote(key)
		if !ok {
			return nil, false
		}
		return ButtonEvent{Cell: cell, Pressed: value > 0}, true

	case msg.GetNoteOff(&channel, &key, &value):
		if channel != e.Channel {
			return nil, false
		}
		cell, ok := CellForNote(key)
		if !ok {
			return nil, false
		}
		return ButtonEvent{Cell: cell}, true

	case msg.GetControlChange(&channel, &key, &value):
		if channel != e.Channel {
			return nil, false
		}
		control, ok := AnalogForCC(key)
		if !ok {
			return nil, false
		}
		return AnalogEvent{Control: control, Value: value}, true
	}
	return nil, false
}
