package analysis

import (
	"context"
	"time"
)

// Fetcher fetches a URL and returns the decoded body plus metadata.
type Fetcher interface {
	Fetch(ctx context.Context, request FetchRequest) (FetchResponse, error)
}

// Annotator is the external NLP pipeline. Which layers it computes is
// fixed at construction time; Annotate is a single blocking call per
// document.
type Annotator interface {
	Annotate(ctx context.Context, text string) (AnnotatedDocument, error)
}

// RecordStore persists analysis run metadata.
type RecordStore interface {
	SaveAnalysis(ctx context.Context, rec Record) error
	Close() error
}

// ArtifactSink writes raw and sampled text artifacts and returns a URI.
type ArtifactSink interface {
	SaveArtifacts(ctx context.Context, id string, raw, sample string) (string, error)
}

// Limiter throttles outbound fetches per host.
type Limiter interface {
	Wait(ctx context.Context, url string) error
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// IDGenerator produces run IDs (UUIDs).
type IDGenerator interface {
	NewID() (string, error)
}

// Hasher computes digests for deduplication/integrity.
type Hasher interface {
	Hash(data []byte) (string, error)
}
