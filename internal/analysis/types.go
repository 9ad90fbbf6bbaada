// Package analysis defines core types shared across subsystems.
package analysis

import (
	"net/http"
	"time"
)

// Action selects which annotation layer is rendered for a document.
type Action string

// Actions accepted on the command line and the API.
const (
	ActionPOS          Action = "POS"
	ActionConstituency Action = "CONSTITUENCY"
	ActionDependency   Action = "DEPENDENCY"
)

// Token is a single word with its part-of-speech tag.
type Token struct {
	// Index is 1-based within the sentence, matching the convention
	// used by dependency relations.
	Index int    `json:"index"`
	Word  string `json:"word"`
	Tag   string `json:"tag"`
}

// Dependency is one grammatical relation of a sentence's dependency
// graph. Governor/Dependent are 1-based token indices; index 0 is the
// artificial ROOT node.
type Dependency struct {
	Relation       string `json:"dep"`
	Governor       int    `json:"governor"`
	GovernorGloss  string `json:"governorGloss"`
	Dependent      int    `json:"dependent"`
	DependentGloss string `json:"dependentGloss"`
}

// Sentence carries every annotation layer the pipeline produced for
// one sentence. Parse and Dependencies are empty when the configured
// engine does not compute them.
type Sentence struct {
	Index        int          `json:"index"`
	Tokens       []Token      `json:"tokens"`
	Parse        string       `json:"parse,omitempty"`
	Dependencies []Dependency `json:"dependencies,omitempty"`
}

// AnnotatedDocument is the pipeline's output for one text sample.
type AnnotatedDocument struct {
	Sentences []Sentence `json:"sentences"`
}

// FetchRequest captures everything needed to fetch a URL.
type FetchRequest struct {
	URL     string
	Headers http.Header
}

// FetchResponse is the result returned by a Fetcher implementation.
// Text holds the body decoded to UTF-8.
type FetchResponse struct {
	URL        string
	FinalURL   string
	StatusCode int
	Headers    http.Header
	Text       string
	Duration   time.Duration
}

// Record is persisted for each completed analysis run.
type Record struct {
	ID          string        `json:"id"`
	URL         string        `json:"url"`
	Action      Action        `json:"action"`
	StatusCode  int           `json:"status_code"`
	SampleHash  string        `json:"sample_hash"`
	Sentences   int           `json:"sentences"`
	FetchedAt   time.Time     `json:"fetched_at"`
	FetchTime   time.Duration `json:"fetch_time"`
	Annotate    time.Duration `json:"annotate_time"`
	ArtifactURI string        `json:"artifact_uri,omitempty"`
}
