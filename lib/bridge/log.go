package bridge

import (
	"context"
	"log/slog"
	"os"

	"gitlab.com/gomidi/midi/v2"

	"f1midi/lib/surface"
)

const DefaultLogTolerance = 2

// NewLogger builds the text logger on stderr and makes it the slog default.
func NewLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

// LogObserver logs every emitted message. Knob and fader moves within
// Tolerance of the last value logged at Info drop to Debug so a turning knob
// doesn't flood the log; the messages themselves are always sent.
type LogObserver struct {
	Logger    *slog.Logger
	Tolerance int

	logged [surface.Analogs]int
	seen   [surface.Analogs]bool
}

func NewLogObserver(logger *slog.Logger, tolerance int) *LogObserver {
	return &LogObserver{Logger: logger, Tolerance: tolerance}
}

func (l *LogObserver) Observe(ev surface.Event, msg midi.Message) {
	switch ev := ev.(type) {
	case surface.ButtonEvent:
		note, _ := ev.Cell.Note()
		action := "released"
		if ev.Pressed {
			action = "pressed"
		}
		l.Logger.Info("matrix "+action, "cell", ev.Cell.String(), "note", note, "msg", msg.String())

	case surface.AnalogEvent:
		cc, _ := ev.Control.CC()
		i := int(cc) - surface.CCKnobFirst
		level := slog.LevelDebug
		if !l.seen[i] || abs(int(ev.Value)-l.logged[i]) > l.Tolerance {
			level = slog.LevelInfo
			l.logged[i] = int(ev.Value)
			l.seen[i] = true
		}
		l.Logger.Log(context.Background(), level, "control change", "control", ev.Control.String(), "cc", cc, "value", ev.Value)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
