package surface

// ButtonDetector reports press and release edges of the matrix. Cells start
// released, so a cell held at the first poll reports a press.
type ButtonDetector struct {
	prev ButtonSnapshot
}

func (d *ButtonDetector) Process(cur ButtonSnapshot) []ButtonEvent {
	var events []ButtonEvent
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			pressed := cur[row][col]
			if pressed != d.prev[row][col] {
				events = append(events, ButtonEvent{
					Cell:    Cell{Row: row + 1, Col: col + 1},
					Pressed: pressed,
				})
			}
			d.prev[row][col] = pressed
		}
	}
	return events
}

func (d *ButtonDetector) State() ButtonSnapshot {
	return d.prev
}

// ReleaseAll returns a release for every held cell and marks the matrix
// released.
func (d *ButtonDetector) ReleaseAll() []ButtonEvent {
	return d.Process(ButtonSnapshot{})
}

func (d *ButtonDetector) Reset() {
	d.prev = ButtonSnapshot{}
}

type sample struct {
	value uint8
	ok    bool
}

// AnalogDetector reports every change of a knob or fader value. A control
// that has never been sampled always reports.
type AnalogDetector struct {
	prev [Analogs]sample
}

func (d *AnalogDetector) Process(cur AnalogSnapshot) []AnalogEvent {
	var events []AnalogEvent
	for i := 0; i < Analogs; i++ {
		control := analogAt(i)
		v := Clamp(cur.Value(control))
		if !d.prev[i].ok || d.prev[i].value != v {
			events = append(events, AnalogEvent{Control: control, Value: v})
		}
		d.prev[i] = sample{value: v, ok: true}
	}
	return events
}

func (d *AnalogDetector) Value(control Analog) (uint8, bool) {
	if !control.Valid() {
		return 0, false
	}
	s := d.prev[control.slot()]
	return s.value, s.ok
}

func (d *AnalogDetector) Reset() {
	d.prev = [Analogs]sample{}
}
