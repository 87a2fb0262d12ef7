package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// JSONLSink appends documents to a JSONL file, one line per document,
// written immediately so partial runs still produce usable output.
type JSONLSink struct {
	path   string
	file   *os.File
	logger *zap.Logger
}

// NewJSONLSink opens (or creates) the output file in append mode.
func NewJSONLSink(path string, logger *zap.Logger) (*JSONLSink, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o640)
	if err != nil {
		return nil, fmt.Errorf("open output %s: %w", path, err)
	}
	return &JSONLSink{path: path, file: f, logger: logger}, nil
}

// Append serializes one document and writes it as a single line.
func (s *JSONLSink) Append(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context canceled: %w", err)
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document %s: %w", doc.DocID, err)
	}
	payload = append(payload, '\n')
	if _, err := s.file.Write(payload); err != nil {
		return fmt.Errorf("write document %s: %w", doc.DocID, err)
	}
	return nil
}

// Path returns the output file path.
func (s *JSONLSink) Path() string {
	return s.path
}

// Close flushes and closes the output file.
func (s *JSONLSink) Close() error {
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("close output %s: %w", s.path, err)
	}
	return nil
}
