package pipeline

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"
)

// Ledger is the set of doc IDs already persisted to the output destination.
// It is loaded once at startup by scanning the existing output file and
// consulted before every fetch, which is what makes re-runs idempotent.
type Ledger struct {
	ids map[string]struct{}
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{ids: make(map[string]struct{})}
}

// LoadLedger scans a JSONL output file and collects every doc_id found.
// A missing file yields an empty ledger; malformed lines are skipped with a
// warning rather than failing the run.
func LoadLedger(path string, logger *zap.Logger) (*Ledger, error) {
	ledger := NewLedger()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ledger, nil
		}
		return nil, fmt.Errorf("open output %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logger.Debug("Failed to close output file", zap.Error(cerr))
		}
	}()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var record struct {
			DocID string `json:"doc_id"`
		}
		if err := json.Unmarshal(raw, &record); err != nil {
			logger.Warn("Skipping malformed output line",
				zap.String("path", path),
				zap.Int("line", line),
				zap.Error(err),
			)
			continue
		}
		if record.DocID != "" {
			ledger.Add(record.DocID)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan output %s: %w", path, err)
	}
	return ledger, nil
}

// Contains reports whether the doc ID was already persisted.
func (l *Ledger) Contains(docID string) bool {
	_, ok := l.ids[docID]
	return ok
}

// Add records a persisted doc ID.
func (l *Ledger) Add(docID string) {
	l.ids[docID] = struct{}{}
}

// Len returns the number of recorded doc IDs.
func (l *Ledger) Len() int {
	return len(l.ids)
}
