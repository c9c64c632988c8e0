package log

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"starhold.gg/internal/campaign"
)

// Journal segment files rotate hourly. Events are small and frequent, so
// writes go through a buffer in front of the zstd encoder; the buffer is
// flushed after every entry so a crash loses at most the entry being written.
const (
	segmentHourLayout = "2006-01-02-15"
	segmentSuffix     = ".jsonl.zst"
	writeBufSize      = 128 * 1024
)

// JSONLZstdWriter appends JSON lines to an hourly-rotated segment file.
type JSONLZstdWriter struct {
	baseDir string
	prefix  string

	mu      sync.Mutex
	curHour string
	f       *os.File
	enc     *zstd.Encoder
	w       *bufio.Writer
}

func NewJSONLZstdWriter(baseDir, prefix string) *JSONLZstdWriter {
	return &JSONLZstdWriter{
		baseDir: baseDir,
		prefix:  prefix,
	}
}

func (w *JSONLZstdWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

func (w *JSONLZstdWriter) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	hour := time.Now().UTC().Format(segmentHourLayout)
	if hour != w.curHour {
		if err := w.rotateLocked(hour); err != nil {
			return err
		}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

func (w *JSONLZstdWriter) rotateLocked(hour string) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	path := w.segmentPath(hour)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, writeBufSize)
	w.curHour = hour
	return nil
}

func (w *JSONLZstdWriter) closeLocked() error {
	var err1 error
	if w.w != nil {
		_ = w.w.Flush()
	}
	if w.enc != nil {
		err1 = w.enc.Close()
		w.enc = nil
	}
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}
	w.w = nil
	return err1
}

func (w *JSONLZstdWriter) segmentPath(hour string) string {
	return filepath.Join(w.baseDir, fmt.Sprintf("%s-%s%s", w.prefix, hour, segmentSuffix))
}

// JournalEntry is one journaled domain event.
type JournalEntry struct {
	TS    time.Time          `json:"ts"`
	Day   int                `json:"day"`
	Kind  campaign.EventKind `json:"kind"`
	Event campaign.Event     `json:"event"`
}

// EventJournal records every domain event a campaign publishes, one JSON
// line per event (compressed). Purely observational; write failures are
// retained on the journal instead of failing the mutation that published.
type EventJournal struct {
	w *JSONLZstdWriter

	mu  sync.Mutex
	err error
}

func NewEventJournal(campaignDir string) *EventJournal {
	return &EventJournal{w: NewJSONLZstdWriter(filepath.Join(campaignDir, "events"), "events")}
}

// Attach subscribes the journal to the campaign's bus.
func (j *EventJournal) Attach(c *campaign.Campaign) {
	c.Bus().Subscribe(func(e campaign.Event) {
		entry := JournalEntry{TS: time.Now().UTC(), Day: c.Day(), Kind: e.EventKind(), Event: e}
		if err := j.w.Write(entry); err != nil {
			j.mu.Lock()
			if j.err == nil {
				j.err = err
			}
			j.mu.Unlock()
		}
	})
}

// Err returns the first write failure, if any.
func (j *EventJournal) Err() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err
}

func (j *EventJournal) Close() error { return j.w.Close() }
