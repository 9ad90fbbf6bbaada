// Package artifact persists fetched documents and analyzed samples to
// disk so a run can be inspected after the fact.
package artifact

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// FileSystemSink saves raw/sample text and metadata under a root dir.
type FileSystemSink struct {
	root     string
	maxBytes int64
	logger   *zap.Logger
}

// meta is written beside the artifacts for each run.
type meta struct {
	ID          string    `json:"id"`
	RawBytes    int       `json:"raw_bytes"`
	SampleBytes int       `json:"sample_bytes"`
	SavedAt     time.Time `json:"saved_at"`
}

// NewFileSystemSink returns a sink rooted at dir.
func NewFileSystemSink(root string, maxBytes int64, logger *zap.Logger) (*FileSystemSink, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create sink dir %s: %w", root, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSystemSink{
		root:     root,
		maxBytes: maxBytes,
		logger:   logger,
	}, nil
}

// SaveArtifacts writes the raw document and the analyzed sample plus a
// metadata json, returning the run's artifact directory.
func (s *FileSystemSink) SaveArtifacts(ctx context.Context, id, raw, sample string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context canceled: %w", err)
	}
	if raw == "" {
		return "", fmt.Errorf("empty document body")
	}
	if s.maxBytes > 0 && int64(len(raw)) > s.maxBytes {
		return "", fmt.Errorf("document size %d exceeds max %d", len(raw), s.maxBytes)
	}
	if id == "" {
		id = fmt.Sprintf("run-%d", time.Now().UnixNano())
	}

	dir := filepath.Join(s.root, id)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create artifact dir %s: %w", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "raw.txt"), []byte(raw), 0o600); err != nil {
		return "", fmt.Errorf("write raw text: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sample.txt"), []byte(sample), 0o600); err != nil {
		return "", fmt.Errorf("write sample text: %w", err)
	}

	payload, err := json.MarshalIndent(meta{
		ID:          id,
		RawBytes:    len(raw),
		SampleBytes: len(sample),
		SavedAt:     time.Now().UTC(),
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal meta: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "meta.json"), payload, 0o600); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}

	s.logger.Debug("artifacts saved", zap.String("dir", dir))
	return dir, nil
}
