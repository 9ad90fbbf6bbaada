package artifact

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestSaveArtifactsWritesFiles(t *testing.T) {
	t.Parallel()

	sink, err := NewFileSystemSink(t.TempDir(), 0, zap.NewNop())
	if err != nil {
		t.Fatalf("NewFileSystemSink() error = %v", err)
	}

	dir, err := sink.SaveArtifacts(context.Background(), "run-1", "raw document body", "sampled")
	if err != nil {
		t.Fatalf("SaveArtifacts() error = %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "raw.txt"))
	if err != nil || string(raw) != "raw document body" {
		t.Fatalf("raw.txt = %q, err = %v", raw, err)
	}
	sample, err := os.ReadFile(filepath.Join(dir, "sample.txt"))
	if err != nil || string(sample) != "sampled" {
		t.Fatalf("sample.txt = %q, err = %v", sample, err)
	}

	metaBytes, err := os.ReadFile(filepath.Join(dir, "meta.json"))
	if err != nil {
		t.Fatalf("meta.json missing: %v", err)
	}
	var m meta
	if err := json.Unmarshal(metaBytes, &m); err != nil {
		t.Fatalf("meta.json invalid: %v", err)
	}
	if m.ID != "run-1" || m.RawBytes != len("raw document body") {
		t.Fatalf("unexpected meta: %+v", m)
	}
}

func TestSaveArtifactsRejectsEmptyBody(t *testing.T) {
	t.Parallel()

	sink, err := NewFileSystemSink(t.TempDir(), 0, nil)
	if err != nil {
		t.Fatalf("NewFileSystemSink() error = %v", err)
	}
	if _, err := sink.SaveArtifacts(context.Background(), "run-1", "", "sample"); err == nil {
		t.Fatal("expected error for empty body")
	}
}

func TestSaveArtifactsEnforcesMaxBytes(t *testing.T) {
	t.Parallel()

	sink, err := NewFileSystemSink(t.TempDir(), 4, nil)
	if err != nil {
		t.Fatalf("NewFileSystemSink() error = %v", err)
	}
	if _, err := sink.SaveArtifacts(context.Background(), "run-1", "too large", "s"); err == nil {
		t.Fatal("expected error for oversized body")
	}
}

func TestSaveArtifactsCanceledContext(t *testing.T) {
	t.Parallel()

	sink, err := NewFileSystemSink(t.TempDir(), 0, nil)
	if err != nil {
		t.Fatalf("NewFileSystemSink() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := sink.SaveArtifacts(ctx, "run-1", "body", "s"); err == nil {
		t.Fatal("expected context error")
	}
}
