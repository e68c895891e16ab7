package surface

import (
	"errors"
	"fmt"
)

const (
	Rows    = 4
	Cols    = 4
	Knobs   = 4
	Faders  = 4
	Analogs = Knobs + Faders

	NoteMatrixBase = 36
	CCKnobFirst    = 1
	CCFaderFirst   = CCKnobFirst + Knobs

	MaxValue = 127
)

var ErrInvalidControl = errors.New("surface: invalid control")

type Cell struct {
	Row int
	Col int
}

func (c Cell) Valid() bool {
	return c.Row >= 1 && c.Row <= Rows && c.Col >= 1 && c.Col <= Cols
}

// Note numbers run down each column: (1,1)=36, (2,1)=37, ... (4,4)=51.
func (c Cell) Note() (uint8, error) {
	if !c.Valid() {
		return 0, fmt.Errorf("%w: cell %s", ErrInvalidControl, c)
	}
	return uint8(NoteMatrixBase + (c.Col-1)*Rows + (c.Row - 1)), nil
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

func CellForNote(note uint8) (Cell, bool) {
	n := int(note) - NoteMatrixBase
	if n < 0 || n >= Rows*Cols {
		return Cell{}, false
	}
	return Cell{Row: n%Rows + 1, Col: n/Rows + 1}, true
}

type AnalogKind int

const (
	Knob AnalogKind = iota
	Fader
)

func (k AnalogKind) String() string {
	switch k {
	case Knob:
		return "Knob"
	case Fader:
		return "Fader"
	}
	return fmt.Sprintf("AnalogKind(%d)", int(k))
}

type Analog struct {
	Kind  AnalogKind
	Index int
}

func (a Analog) Valid() bool {
	switch a.Kind {
	case Knob:
		return a.Index >= 1 && a.Index <= Knobs
	case Fader:
		return a.Index >= 1 && a.Index <= Faders
	}
	return false
}

func (a Analog) CC() (uint8, error) {
	if !a.Valid() {
		return 0, fmt.Errorf("%w: %s", ErrInvalidControl, a)
	}
	if a.Kind == Fader {
		return uint8(CCFaderFirst + a.Index - 1), nil
	}
	return uint8(CCKnobFirst + a.Index - 1), nil
}

func (a Analog) String() string {
	return fmt.Sprintf("%s %d", a.Kind, a.Index)
}

// slot is the control's position in AnalogSnapshot order: knobs, then faders.
func (a Analog) slot() int {
	if a.Kind == Fader {
		return Knobs + a.Index - 1
	}
	return a.Index - 1
}

func analogAt(slot int) Analog {
	if slot >= Knobs {
		return Analog{Kind: Fader, Index: slot - Knobs + 1}
	}
	return Analog{Kind: Knob, Index: slot + 1}
}

func AnalogForCC(cc uint8) (Analog, bool) {
	n := int(cc) - CCKnobFirst
	if n < 0 || n >= Analogs {
		return Analog{}, false
	}
	return analogAt(n), true
}

func Cells() []Cell {
	cells := make([]Cell, 0, Rows*Cols)
	for row := 1; row <= Rows; row++ {
		for col := 1; col <= Cols; col++ {
			cells = append(cells, Cell{Row: row, Col: col})
		}
	}
	return cells
}

func AnalogControls() []Analog {
	controls := make([]Analog, 0, Analogs)
	for i := 0; i < Analogs; i++ {
		controls = append(controls, analogAt(i))
	}
	return controls
}

type ButtonSnapshot [Rows][Cols]bool

func (s *ButtonSnapshot) Set(c Cell, pressed bool) {
	s[c.Row-1][c.Col-1] = pressed
}

func (s ButtonSnapshot) Pressed(c Cell) bool {
	return s[c.Row-1][c.Col-1]
}

type AnalogSnapshot struct {
	Knobs  [Knobs]int
	Faders [Faders]int
}

func (s AnalogSnapshot) Value(a Analog) int {
	if a.Kind == Fader {
		return s.Faders[a.Index-1]
	}
	return s.Knobs[a.Index-1]
}

func (s *AnalogSnapshot) Set(a Analog, v int) {
	if a.Kind == Fader {
		s.Faders[a.Index-1] = v
		return
	}
	s.Knobs[a.Index-1] = v
}

type Snapshot struct {
	Buttons ButtonSnapshot
	Analog  AnalogSnapshot
}

func Clamp(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > MaxValue {
		return MaxValue
	}
	return uint8(v)
}
