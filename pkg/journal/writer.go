package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
)

// DefaultPrefix names journal files when no prefix is configured.
const DefaultPrefix = "actions"

const hourLayout = "2006-01-02-15"

// Entry is one applied action as it appears in the journal.
type Entry struct {
	// Session identifies the store instance that produced the entry. Seq
	// restarts at 1 for every session.
	Session string          `json:"session,omitempty"`
	Seq     uint64          `json:"seq"`
	At      time.Time       `json:"at"`
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload,omitempty"`
	ActorID string          `json:"actor_id,omitempty"`
	// Digest fingerprints the state after the action. Replay verifies it.
	Digest string `json:"digest,omitempty"`
}

// Writer appends entries as zstd-compressed JSON lines, one file per UTC hour.
type Writer struct {
	baseDir string
	prefix  string

	mu      sync.Mutex
	curHour string
	f       *os.File
	enc     *zstd.Encoder
	w       *bufio.Writer
}

// NewWriter creates a writer rooted at baseDir. Files are created lazily.
func NewWriter(baseDir, prefix string) *Writer {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Writer{baseDir: baseDir, prefix: prefix}
}

// Dir returns the directory journal files are written to.
func (w *Writer) Dir() string { return w.baseDir }

// Append writes entry to the file for the hour of entry.At. A zero At is
// stamped with the current time.
func (w *Writer) Append(entry Entry) error {
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	hour := entry.At.UTC().Format(hourLayout)
	if hour != w.curHour {
		if err := w.rotateLocked(hour); err != nil {
			return err
		}
	}
	b, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("journal: encode entry %d: %w", entry.Seq, err)
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	if err := w.w.Flush(); err != nil {
		return err
	}
	return w.enc.Flush()
}

// Close flushes and closes the current file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

func (w *Writer) rotateLocked(hour string) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.baseDir, 0o755); err != nil {
		return fmt.Errorf("journal: create dir: %w", err)
	}
	f, err := os.OpenFile(w.pathForHour(hour), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("journal: open: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 64*1024)
	w.curHour = hour
	return nil
}

func (w *Writer) closeLocked() error {
	var err error
	if w.w != nil {
		_ = w.w.Flush()
	}
	if w.enc != nil {
		err = w.enc.Close()
		w.enc = nil
	}
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}
	w.w = nil
	w.curHour = ""
	return err
}

func (w *Writer) pathForHour(hour string) string {
	return filepath.Join(w.baseDir, fmt.Sprintf("%s-%s.jsonl.zst", w.prefix, hour))
}
