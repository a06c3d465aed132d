// Package auditlog appends one JSON record per pipeline call to a local
// log file. The log rotates at a size threshold; rotated segments are
// gzip-compressed and kept next to the live file.
package auditlog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/timstarkk/mcp-safe-fetch/internal/pipeline"
)

// DefaultMaxBytes is the rotation threshold when none is configured.
const DefaultMaxBytes = 5 << 20

// Record is one line of the audit log. Content is never logged, only sizes
// and counters.
type Record struct {
	Timestamp  time.Time      `json:"timestamp"`
	Source     string         `json:"source"`
	Pipeline   string         `json:"pipeline"`
	InputSize  int            `json:"inputSize"`
	OutputSize int            `json:"outputSize"`
	Stats      pipeline.Stats `json:"stats"`
}

// Log is an append-only JSONL file with size-based rotation.
type Log struct {
	path     string
	maxBytes int64
}

// New returns a log writing to path, rotating once the file reaches
// maxBytes. A non-positive maxBytes selects the default threshold.
func New(path string, maxBytes int64) *Log {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Log{path: path, maxBytes: maxBytes}
}

// Append writes one record, rotating first if the live file has reached the
// threshold.
func (l *Log) Append(rec Record) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	if err := l.rotateIfNeeded(); err != nil {
		return err
	}
	// Owner-only: the log reveals what was fetched and when.
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(rec); err != nil {
		return fmt.Errorf("write audit record: %w", err)
	}
	return nil
}

// Load reads every record from the live file, newest first. Malformed lines
// are skipped.
func (l *Log) Load() ([]Record, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	var records []Record
	dec := json.NewDecoder(f)
	for dec.More() {
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			break
		}
		records = append(records, rec)
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

func (l *Log) rotateIfNeeded() error {
	info, err := os.Stat(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Size() < l.maxBytes {
		return nil
	}
	return l.rotate()
}

// rotate moves the live file into a timestamped gzip segment.
func (l *Log) rotate() error {
	src, err := os.Open(l.path)
	if err != nil {
		return fmt.Errorf("open for rotation: %w", err)
	}
	defer src.Close()

	// Nanosecond resolution keeps names unique under rapid rotation.
	dstPath := fmt.Sprintf("%s.%s.gz", l.path, time.Now().UTC().Format("20060102T150405.000000000"))
	dst, err := os.OpenFile(dstPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("create rotated segment: %w", err)
	}
	defer dst.Close()

	gw := gzip.NewWriter(dst)
	if _, err := io.Copy(gw, src); err != nil {
		return fmt.Errorf("compress rotated segment: %w", err)
	}
	if err := gw.Close(); err != nil {
		return fmt.Errorf("finish rotated segment: %w", err)
	}
	if err := src.Close(); err != nil {
		return err
	}
	return os.Remove(l.path)
}
