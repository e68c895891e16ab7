package traktorf1

import (
	"encoding/binary"
	"fmt"

	"rafaelmartins.com/p/usbhid"

	"f1midi/lib/surface"
)

const (
	nativeInstrumentsVendorID = 0x17cc
	productIDF1               = 0x1120

	reportControls = 0x01
	reportLen      = 21

	offsetMatrix = 0
	offsetKnobs  = 5
	offsetFaders = 13

	RawMax = 4095
)

type Report struct {
	Matrix [surface.Rows * surface.Cols]bool
	Knobs  [surface.Knobs]uint16
	Faders [surface.Faders]uint16
}

// ParseReport decodes the payload of input report 0x01 with the report id
// already stripped.
func ParseReport(data []byte) (Report, error) {
	var r Report
	if len(data) < reportLen {
		return r, fmt.Errorf("traktorf1: short report: %d bytes", len(data))
	}
	for i := range r.Matrix {
		b := data[offsetMatrix+i/8]
		r.Matrix[i] = b&(0x80>>(i%8)) != 0
	}
	for i := range r.Knobs {
		r.Knobs[i] = binary.LittleEndian.Uint16(data[offsetKnobs+2*i:]) & RawMax
	}
	for i := range r.Faders {
		r.Faders[i] = binary.LittleEndian.Uint16(data[offsetFaders+2*i:]) & RawMax
	}
	return r, nil
}

func cellIndex(c surface.Cell) int {
	return (c.Row-1)*surface.Cols + (c.Col - 1)
}

func scale(raw uint16) int {
	return int(raw >> 5)
}

func (r Report) Snapshot() surface.Snapshot {
	var snap surface.Snapshot
	for _, c := range surface.Cells() {
		snap.Buttons.Set(c, r.Matrix[cellIndex(c)])
	}
	for i := range r.Knobs {
		snap.Analog.Knobs[i] = scale(r.Knobs[i])
	}
	for i := range r.Faders {
		snap.Analog.Faders[i] = scale(r.Faders[i])
	}
	return snap
}

type Device struct {
	dev *usbhid.Device

	// Hysteresis is the raw movement (0-4095 scale) a knob or fader must
	// make before a new reading replaces the held one. Zero passes every
	// reading through.
	Hysteresis int

	held    [surface.Analogs]uint16
	hasHeld bool
}

func Open() (*Device, error) {
	devices, err := usbhid.Enumerate(func(dev *usbhid.Device) bool {
		return dev.VendorId() == nativeInstrumentsVendorID && dev.ProductId() == productIDF1
	})
	if err != nil {
		return nil, fmt.Errorf("traktorf1: enumerate: %w", err)
	}
	if len(devices) == 0 {
		return nil, fmt.Errorf("traktorf1: no device found")
	}

	dev := devices[0]
	if err := dev.Open(true); err != nil {
		return nil, fmt.Errorf("traktorf1: open: %w", err)
	}

	return &Device{dev: dev}, nil
}

func (d *Device) Close() error         { return d.dev.Close() }
func (d *Device) SerialNumber() string { return d.dev.SerialNumber() }
func (d *Device) Product() string      { return d.dev.Product() }

// ReadReport blocks until the next controls report arrives.
func (d *Device) ReadReport() (Report, error) {
	for {
		id, buf, err := d.dev.GetInputReport()
		if err != nil {
			return Report{}, fmt.Errorf("traktorf1: read: %w", err)
		}
		if id != reportControls {
			continue
		}
		r, err := ParseReport(buf)
		if err != nil {
			continue
		}
		d.hold(&r)
		return r, nil
	}
}

func (d *Device) ReadSnapshot() (surface.Snapshot, error) {
	r, err := d.ReadReport()
	if err != nil {
		return surface.Snapshot{}, err
	}
	return r.Snapshot(), nil
}

func (d *Device) hold(r *Report) {
	raw := make([]*uint16, 0, surface.Analogs)
	for i := range r.Knobs {
		raw = append(raw, &r.Knobs[i])
	}
	for i := range r.Faders {
		raw = append(raw, &r.Faders[i])
	}

	for i, v := range raw {
		if !d.hasHeld || d.Hysteresis <= 0 || absDiff(*v, d.held[i]) > d.Hysteresis {
			d.held[i] = *v
		}
		*v = d.held[i]
	}
	d.hasHeld = true
}

func absDiff(a, b uint16) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
