package monitor

import (
	"embed"
	"encoding/json"
	"image/png"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"gitlab.com/gomidi/midi/v2"

	"f1midi/lib/surface"
)

//go:embed static
var staticFS embed.FS

type AnalogState struct {
	Name  string `json:"name"`
	CC    uint8  `json:"cc"`
	Value uint8  `json:"value"`
	Known bool   `json:"known"`
}

type CellState struct {
	Row     int   `json:"row"`
	Col     int   `json:"col"`
	Note    uint8 `json:"note"`
	Pressed bool  `json:"pressed"`
}

type Snapshot struct {
	Cells    []CellState   `json:"cells"`
	Analog   []AnalogState `json:"analog"`
	Messages uint64        `json:"messages"`
	Last     string        `json:"last,omitempty"`
	LastAt   time.Time     `json:"lastAt,omitzero"`
}

// State is an observer that keeps the last sent value of every control for
// readers on other goroutines.
type State struct {
	mu       sync.Mutex
	buttons  surface.ButtonSnapshot
	analog   [surface.Analogs]uint8
	known    [surface.Analogs]bool
	messages uint64
	last     string
	lastAt   time.Time
}

func NewState() *State {
	return &State{}
}

func (s *State) Observe(ev surface.Event, msg midi.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev := ev.(type) {
	case surface.ButtonEvent:
		s.buttons.Set(ev.Cell, ev.Pressed)
	case surface.AnalogEvent:
		cc, err := ev.Control.CC()
		if err != nil {
			return
		}
		i := int(cc) - surface.CCKnobFirst
		s.analog[i] = ev.Value
		s.known[i] = true
	}
	s.messages++
	s.last = ev.String()
	s.lastAt = time.Now()
}

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Messages: s.messages,
		Last:     s.last,
		LastAt:   s.lastAt,
	}
	for _, c := range surface.Cells() {
		note, _ := c.Note()
		snap.Cells = append(snap.Cells, CellState{
			Row:     c.Row,
			Col:     c.Col,
			Note:    note,
			Pressed: s.buttons.Pressed(c),
		})
	}
	for i, a := range surface.AnalogControls() {
		cc, _ := a.CC()
		snap.Analog = append(snap.Analog, AnalogState{
			Name:  a.String(),
			CC:    cc,
			Value: s.analog[i],
			Known: s.known[i],
		})
	}
	return snap
}

func Handler(state *State) http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.FS(sub)))
	mux.HandleFunc("/api/state", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, state.Snapshot())
	})
	mux.HandleFunc("/grid.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		if err := png.Encode(w, Render(state.Snapshot())); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
