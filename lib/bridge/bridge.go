package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gitlab.com/gomidi/midi/v2"

	"f1midi/lib/surface"
)

type Transport interface {
	Send(msg midi.Message) error
}

type Source interface {
	ReadSnapshot() (surface.Snapshot, error)
}

// Observer sees every message after it has been handed to the transport.
// Observers run on the poll goroutine and must not block.
type Observer interface {
	Observe(ev surface.Event, msg midi.Message)
}

type ObserverFunc func(ev surface.Event, msg midi.Message)

func (f ObserverFunc) Observe(ev surface.Event, msg midi.Message) { f(ev, msg) }

type Bridge struct {
	translator *surface.Translator
	out        Transport
	logger     *slog.Logger
	observers  []Observer
}

func New(tr *surface.Translator, out Transport, logger *slog.Logger, observers ...Observer) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{
		translator: tr,
		out:        out,
		logger:     logger,
		observers:  observers,
	}
}

func (b *Bridge) AddObserver(o Observer) {
	b.observers = append(b.observers, o)
}

// Poll diffs one snapshot and sends a message per change. A failed send is
// logged and the remaining messages still go out.
func (b *Bridge) Poll(snap surface.Snapshot) error {
	return b.emit(b.translator.Process(snap))
}

// ReleaseAll sends a Note Off for every held cell.
func (b *Bridge) ReleaseAll() error {
	return b.emit(b.translator.ReleaseAll())
}

func (b *Bridge) emit(events []surface.Event) error {
	var errs []error
	for _, ev := range events {
		msg, err := b.translator.Encode(ev)
		if err != nil {
			return fmt.Errorf("bridge: encode %s: %w", ev, err)
		}
		if err := b.out.Send(msg); err != nil {
			b.logger.Error("MIDI send failed", "event", ev.String(), "err", err)
			errs = append(errs, err)
			continue
		}
		for _, o := range b.observers {
			o.Observe(ev, msg)
		}
	}
	return errors.Join(errs...)
}

// Run polls src until ctx is done or src fails. ReadSnapshot blocks, so a
// cancelled ctx is only noticed after the next read returns; close the
// source to unblock it.
func (b *Bridge) Run(ctx context.Context, src Source) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		snap, err := src.ReadSnapshot()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("bridge: read: %w", err)
		}
		b.Poll(snap)
	}
}
