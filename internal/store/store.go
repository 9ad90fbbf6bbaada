// Package store provides analysis.RecordStore implementations. The
// NoOp store lets the CLI run without any database configured.
package store

import (
	"context"

	"github.com/MataNBhohadanA/text-analyzer/internal/analysis"
)

// NoOp discards every record. Useful for tests and for local runs
// where persistence is not wanted.
type NoOp struct{}

// SaveAnalysis does nothing.
func (NoOp) SaveAnalysis(_ context.Context, _ analysis.Record) error { return nil }

// Close does nothing.
func (NoOp) Close() error { return nil }
