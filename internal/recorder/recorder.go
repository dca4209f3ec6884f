// Package recorder persists drained pointer events as JSON lines and reads
// them back for inspection.
package recorder

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/phinze/pointerflow/internal/pointer"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Writer appends events to a JSONL stream. It is safe for concurrent use.
type Writer struct {
	mu     sync.Mutex
	buf    *bufio.Writer
	enc    *jsoniter.Encoder
	closer io.Closer
	n      int
}

// NewWriter returns a writer that does not own w.
func NewWriter(w io.Writer) *Writer {
	buf := bufio.NewWriter(w)
	return &Writer{buf: buf, enc: json.NewEncoder(buf)}
}

// Create truncates path and records into it. The file is closed by Close.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating recording: %w", err)
	}
	w := NewWriter(f)
	w.closer = f
	return w, nil
}

// ID identifies the writer as a consumer.
func (w *Writer) ID() string { return "recorder" }

// Consume writes one line per event and flushes the batch.
func (w *Writer) Consume(evs []pointer.WindowEvent) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, ev := range evs {
		if err := w.enc.Encode(ev); err != nil {
			return fmt.Errorf("encoding event %d: %w", w.n, err)
		}
		w.n++
	}
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("flushing recording: %w", err)
	}
	return nil
}

// Count returns the number of events written.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.n
}

// Close flushes and closes the underlying file, if owned.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("flushing recording: %w", err)
	}
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}

// ReadAll decodes every event in r. Blank lines are skipped.
func ReadAll(r io.Reader) ([]pointer.WindowEvent, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var out []pointer.WindowEvent
	line := 0
	for sc.Scan() {
		line++
		b := sc.Bytes()
		if len(b) == 0 {
			continue
		}
		var ev pointer.WindowEvent
		if err := json.Unmarshal(b, &ev); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, ev)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading recording: %w", err)
	}
	return out, nil
}

// Load reads a recording from path.
func Load(path string) ([]pointer.WindowEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening recording: %w", err)
	}
	defer f.Close()
	return ReadAll(f)
}

// Summary aggregates the events of one pointer in one window.
type Summary struct {
	Window pointer.WindowID
	ID     pointer.ID
	Type   pointer.Type

	Down, Move, Up int

	First, Last pointer.LogicalPosition
	MaxPressure float64
}

// Summarize groups events by window and pointer ID, ordered by window then ID.
func Summarize(evs []pointer.WindowEvent) []Summary {
	type key struct {
		w  pointer.WindowID
		id pointer.ID
	}
	byKey := make(map[key]*Summary)
	for _, ev := range evs {
		k := key{ev.Window, ev.Pointer.ID}
		s, ok := byKey[k]
		if !ok {
			s = &Summary{Window: ev.Window, ID: ev.Pointer.ID, Type: ev.Pointer.Type, First: ev.Pointer.Position}
			byKey[k] = s
		}
		switch ev.Pointer.Phase {
		case pointer.Down:
			s.Down++
		case pointer.Move:
			s.Move++
		case pointer.Up:
			s.Up++
		}
		s.Last = ev.Pointer.Position
		s.MaxPressure = max(s.MaxPressure, ev.Pointer.Pressure)
	}

	out := make([]Summary, 0, len(byKey))
	for _, s := range byKey {
		out = append(out, *s)
	}
	slices.SortFunc(out, func(a, b Summary) int {
		if c := cmp.Compare(a.Window, b.Window); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}
