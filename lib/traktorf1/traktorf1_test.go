package traktorf1

import (
	"encoding/binary"
	"testing"

	"f1midi/lib/surface"
)

func buildReport(cells []surface.Cell, knobs, faders [4]uint16) []byte {
	data := make([]byte, reportLen)
	for _, c := range cells {
		i := cellIndex(c)
		data[offsetMatrix+i/8] |= 0x80 >> (i % 8)
	}
	for i, v := range knobs {
		binary.LittleEndian.PutUint16(data[offsetKnobs+2*i:], v)
	}
	for i, v := range faders {
		binary.LittleEndian.PutUint16(data[offsetFaders+2*i:], v)
	}
	return data
}

func TestParseReportShort(t *testing.T) {
	if _, err := ParseReport(make([]byte, reportLen-1)); err == nil {
		t.Fatal("expected error for short report")
	}
}

func TestParseReportMatrix(t *testing.T) {
	cells := []surface.Cell{{Row: 1, Col: 1}, {Row: 2, Col: 3}, {Row: 4, Col: 4}}
	r, err := ParseReport(buildReport(cells, [4]uint16{}, [4]uint16{}))
	if err != nil {
		t.Fatal(err)
	}

	snap := r.Snapshot()
	want := map[surface.Cell]bool{}
	for _, c := range cells {
		want[c] = true
	}
	for _, c := range surface.Cells() {
		if got := snap.Buttons.Pressed(c); got != want[c] {
			t.Errorf("%s: got %v, want %v", c, got, want[c])
		}
	}
}

func TestParseReportFirstByteBits(t *testing.T) {
	data := make([]byte, reportLen)
	data[0] = 0x80
	data[1] = 0x01
	r, err := ParseReport(data)
	if err != nil {
		t.Fatal(err)
	}
	snap := r.Snapshot()
	if !snap.Buttons.Pressed(surface.Cell{Row: 1, Col: 1}) {
		t.Error("expected (1,1) pressed")
	}
	if !snap.Buttons.Pressed(surface.Cell{Row: 4, Col: 4}) {
		t.Error("expected (4,4) pressed")
	}
}

func TestParseReportAnalog(t *testing.T) {
	knobs := [4]uint16{0, 2048, 4095, 0xF000 | 100}
	faders := [4]uint16{31, 32, 1000, 4095}
	r, err := ParseReport(buildReport(nil, knobs, faders))
	if err != nil {
		t.Fatal(err)
	}
	if r.Knobs[3] != 100 {
		t.Errorf("got raw %d, want upper bits masked to 100", r.Knobs[3])
	}

	snap := r.Snapshot()
	wantKnobs := [4]int{0, 64, 127, 3}
	wantFaders := [4]int{0, 1, 31, 127}
	if snap.Analog.Knobs != wantKnobs {
		t.Errorf("got knobs %v, want %v", snap.Analog.Knobs, wantKnobs)
	}
	if snap.Analog.Faders != wantFaders {
		t.Errorf("got faders %v, want %v", snap.Analog.Faders, wantFaders)
	}
}

func TestHysteresis(t *testing.T) {
	d := &Device{Hysteresis: 8}

	r := Report{Knobs: [4]uint16{1000}}
	d.hold(&r)
	if r.Knobs[0] != 1000 {
		t.Fatalf("got %d, want first reading passed through", r.Knobs[0])
	}

	r = Report{Knobs: [4]uint16{1006}}
	d.hold(&r)
	if r.Knobs[0] != 1000 {
		t.Errorf("got %d, want jitter held at 1000", r.Knobs[0])
	}

	r = Report{Knobs: [4]uint16{1009}}
	d.hold(&r)
	if r.Knobs[0] != 1009 {
		t.Errorf("got %d, want 1009", r.Knobs[0])
	}
}

func TestHysteresisOff(t *testing.T) {
	d := &Device{}
	for _, v := range []uint16{10, 11, 10, 12} {
		r := Report{Faders: [4]uint16{0, v}}
		d.hold(&r)
		if r.Faders[1] != v {
			t.Errorf("got %d, want %d", r.Faders[1], v)
		}
	}
}
