package surface

import "gitlab.com/gomidi/midi/v2"

type Translator struct {
	Buttons ButtonDetector
	Analog  AnalogDetector
	Encoder Encoder
}

func NewTranslator(channel uint8) (*Translator, error) {
	enc, err := NewEncoder(channel)
	if err != nil {
		return nil, err
	}
	return &Translator{Encoder: *enc}, nil
}

// Process diffs one poll. Matrix events come first, then knobs and faders.
func (t *Translator) Process(snap Snapshot) []Event {
	buttons := t.Buttons.Process(snap.Buttons)
	analog := t.Analog.Process(snap.Analog)

	events := make([]Event, 0, len(buttons)+len(analog))
	for _, ev := range buttons {
		events = append(events, ev)
	}
	for _, ev := range analog {
		events = append(events, ev)
	}
	return events
}

func (t *Translator) Encode(ev Event) (midi.Message, error) {
	return t.Encoder.Encode(ev)
}

func (t *Translator) ReleaseAll() []Event {
	var events []Event
	for _, ev := range t.Buttons.ReleaseAll() {
		events = append(events, ev)
	}
	return events
}

func (t *Translator) Reset() {
	t.Buttons.Reset()
	t.Analog.Reset()
}
