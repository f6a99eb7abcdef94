// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// CSVHeader is the header row written to a new CSV log.
var CSVHeader = []string{"user_id", "item_id", "feedback"}

// CSVConfig configures a CSVLog.
type CSVConfig struct {
	// Path is the CSV file location. Parent directories are created on
	// the first append.
	Path string

	// SyncWrites fsyncs the file after every append.
	SyncWrites bool
}

// CSVLog stores interactions as rows of a delimited text file with the
// columns user_id, item_id, feedback. The file is opened lazily on the first
// append, so a service with a read-only data directory still starts.
type CSVLog struct {
	cfg CSVConfig

	mu     sync.Mutex
	file   *os.File
	closed bool
}

// NewCSVLog returns a CSV-backed interaction log. No file is touched until
// the first Append.
func NewCSVLog(cfg CSVConfig) (*CSVLog, error) {
	if cfg.Path == "" {
		return nil, errors.New("csv log path is required")
	}
	return &CSVLog{cfg: cfg}, nil
}

// Path returns the file location.
func (l *CSVLog) Path() string {
	return l.cfg.Path
}

// Append writes one row, preceded by the header when the file is new or empty.
func (l *CSVLog) Append(ctx context.Context, rec Interaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := rec.Validate(); err != nil {
		return err
	}

	start := time.Now()
	defer func() {
		RecordAppendLatency(BackendCSV, time.Since(start).Seconds())
	}()

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrLogClosed
	}

	if err := l.ensureOpen(); err != nil {
		RecordAppendFailure(BackendCSV)
		return err
	}

	if err := l.writeRows([]string{rec.UserID, rec.ItemID, formatFeedback(rec.Feedback)}); err != nil {
		// Drop the handle so the next append reopens and re-checks the file.
		_ = l.file.Close()
		l.file = nil
		RecordAppendFailure(BackendCSV)
		return fmt.Errorf("append interaction: %w", err)
	}

	RecordAppend(BackendCSV)
	return nil
}

// ensureOpen opens the file for appending and writes the header if the file
// is empty. Must be called with mu held.
func (l *CSVLog) ensureOpen() error {
	if l.file != nil {
		return nil
	}

	if dir := filepath.Dir(l.cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(l.cfg.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return fmt.Errorf("open interaction log: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("stat interaction log: %w", err)
	}

	l.file = f
	if info.Size() == 0 {
		if err := l.writeRows(CSVHeader); err != nil {
			_ = f.Close()
			l.file = nil
			return fmt.Errorf("write header: %w", err)
		}
	}
	return nil
}

func (l *CSVLog) writeRows(rows ...[]string) error {
	w := csv.NewWriter(l.file)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	if l.cfg.SyncWrites {
		return l.file.Sync()
	}
	return nil
}

// Replay reads the file from the beginning. Rows with fewer than two fields,
// rows the CSV reader cannot parse and the leading header row are skipped; a
// feedback column that does not parse reads as 0. Stray quotes inside a field
// are kept literally. A missing file replays nothing.
func (l *CSVLog) Replay(ctx context.Context, fn func(Interaction) error) error {
	f, err := os.Open(l.cfg.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open interaction log: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = true

	for line := 0; ; line++ {
		if line%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			RecordReplaySkipped()
			continue
		}
		if err != nil {
			return fmt.Errorf("read interaction log: %w", err)
		}

		if len(row) < 2 {
			continue
		}
		if line == 0 && isHeader(row) {
			continue
		}

		rec := Interaction{UserID: row[0], ItemID: row[1]}
		if len(row) > 2 {
			if f, err := strconv.ParseFloat(row[2], 64); err == nil {
				rec.Feedback = f
			}
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
}

// Close closes the file handle. Further appends fail with ErrLogClosed.
func (l *CSVLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func isHeader(row []string) bool {
	return row[0] == CSVHeader[0] && row[1] == CSVHeader[1]
}

func formatFeedback(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
