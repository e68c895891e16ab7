package surface

import "fmt"

type Event interface {
	String() string
}

type ButtonEvent struct {
	Cell    Cell
	Pressed bool
}

func (e ButtonEvent) String() string {
	action := "released"
	if e.Pressed {
		action = "pressed"
	}
	return fmt.Sprintf("Matrix %s %s", e.Cell, action)
}

type AnalogEvent struct {
	Control Analog
	Value   uint8
}

func (e AnalogEvent) String() string {
	return fmt.Sprintf("%s = %d", e.Control, e.Value)
}
