package analysis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// DefaultSampleLines bounds how much of the cleaned document the
// pipeline sees. Source documents are typically whole books.
const DefaultSampleLines = 10

// ServiceConfig holds the settings for the analysis pipeline. It is
// decoupled from Viper so the service stays testable on its own.
type ServiceConfig struct {
	StartMarker string
	EndMarker   string
	SampleLines int
}

// Deps bundles the collaborators a Service needs. Fetcher, Annotator
// and Logger are required; the rest are optional and skipped when nil.
type Deps struct {
	Fetcher   Fetcher
	Annotator Annotator
	Store     RecordStore
	Sink      ArtifactSink
	Limiter   Limiter
	Clock     Clock
	IDs       IDGenerator
	Hasher    Hasher
	Logger    *zap.Logger
}

// Request identifies one unit of work. Action is kept as the raw
// user-supplied string: an unknown action must still run the pipeline
// before being reported.
type Request struct {
	Action string
	URL    string
}

// Result is the outcome of one analysis run.
type Result struct {
	ID         string
	Action     Action
	URL        string
	SampleText string
	Output     string
	Sentences  int
	FetchTime  time.Duration
	Annotate   time.Duration
}

// Service orchestrates the fetch, clean, sample, annotate and format
// stages. Control flow is strictly linear.
type Service struct {
	cfg     ServiceConfig
	cleaner Cleaner
	deps    Deps
}

// NewService validates the required collaborators and builds a Service.
func NewService(cfg ServiceConfig, deps Deps) (*Service, error) {
	if deps.Fetcher == nil {
		return nil, errors.New("fetcher is required")
	}
	if deps.Annotator == nil {
		return nil, errors.New("annotator is required")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if cfg.SampleLines <= 0 {
		cfg.SampleLines = DefaultSampleLines
	}
	cleaner := Cleaner{StartMarker: cfg.StartMarker, EndMarker: cfg.EndMarker}
	if cleaner.StartMarker == "" && cleaner.EndMarker == "" {
		cleaner = NewCleaner()
	}
	return &Service{cfg: cfg, cleaner: cleaner, deps: deps}, nil
}

// Process runs the full pipeline for one URL. Fetch failures are
// returned as *FetchError; an unrecognized action is reported via
// ErrUnknownAction only after the pipeline has run.
func (s *Service) Process(ctx context.Context, req Request) (Result, error) {
	action, actionErr := ParseAction(req.Action)

	id := s.runID()
	log := s.deps.Logger.With(zap.String("run_id", id), zap.String("url", req.URL))

	if s.deps.Limiter != nil {
		if err := s.deps.Limiter.Wait(ctx, req.URL); err != nil {
			return Result{}, fmt.Errorf("rate limit: %w", err)
		}
	}

	fetchStart := time.Now()
	resp, err := s.deps.Fetcher.Fetch(ctx, FetchRequest{URL: req.URL})
	if err != nil {
		countAnalysis(action, "fetch_error")
		return Result{}, &FetchError{URL: req.URL, Err: err}
	}
	fetchTime := time.Since(fetchStart)
	observeStage("fetch", fetchTime)
	countFetchBytes(hostOf(resp.FinalURL, req.URL), len(resp.Text))
	log.Debug("document fetched",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(resp.Text)),
		zap.Duration("elapsed", fetchTime))

	clean := s.cleaner.Clean(resp.Text)
	sample := FirstLines(clean, s.cfg.SampleLines)

	artifactURI := s.saveArtifacts(ctx, log, id, resp.Text, sample)

	annotateStart := time.Now()
	doc, err := s.deps.Annotator.Annotate(ctx, sample)
	if err != nil {
		countAnalysis(action, "annotate_error")
		return Result{}, fmt.Errorf("annotate %s: %w", req.URL, err)
	}
	annotateTime := time.Since(annotateStart)
	observeStage("annotate", annotateTime)
	log.Debug("sample annotated",
		zap.Int("sentences", len(doc.Sentences)),
		zap.Duration("elapsed", annotateTime))

	// The pipeline has run; only now is an unknown action reported.
	if actionErr != nil {
		countAnalysis(action, "invalid_action")
		return Result{}, actionErr
	}

	var buf bytes.Buffer
	if err := Format(&buf, doc, action); err != nil {
		countAnalysis(action, "format_error")
		return Result{}, err
	}

	result := Result{
		ID:         id,
		Action:     action,
		URL:        req.URL,
		SampleText: sample,
		Output:     buf.String(),
		Sentences:  len(doc.Sentences),
		FetchTime:  fetchTime,
		Annotate:   annotateTime,
	}
	s.saveRecord(ctx, log, result, resp, sample, artifactURI)

	countAnalysis(action, "ok")
	return result, nil
}

func (s *Service) runID() string {
	if s.deps.IDs == nil {
		return ""
	}
	id, err := s.deps.IDs.NewID()
	if err != nil {
		s.deps.Logger.Warn("generate run id", zap.Error(err))
		return ""
	}
	return id
}

func (s *Service) saveArtifacts(ctx context.Context, log *zap.Logger, id, raw, sample string) string {
	if s.deps.Sink == nil {
		return ""
	}
	uri, err := s.deps.Sink.SaveArtifacts(ctx, id, raw, sample)
	if err != nil {
		// Artifacts are best-effort; the run carries on without them.
		log.Warn("save artifacts", zap.Error(err))
		return ""
	}
	return uri
}

func (s *Service) saveRecord(ctx context.Context, log *zap.Logger, result Result, resp FetchResponse, sample, artifactURI string) {
	if s.deps.Store == nil {
		return
	}
	rec := Record{
		ID:          result.ID,
		URL:         result.URL,
		Action:      result.Action,
		StatusCode:  resp.StatusCode,
		SampleHash:  s.hashOf(sample),
		Sentences:   result.Sentences,
		FetchedAt:   s.now(),
		FetchTime:   result.FetchTime,
		Annotate:    result.Annotate,
		ArtifactURI: artifactURI,
	}
	if err := s.deps.Store.SaveAnalysis(ctx, rec); err != nil {
		log.Warn("save analysis record", zap.Error(err))
	}
}

func (s *Service) hashOf(sample string) string {
	if s.deps.Hasher == nil {
		return ""
	}
	sum, err := s.deps.Hasher.Hash([]byte(sample))
	if err != nil {
		return ""
	}
	return sum
}

func (s *Service) now() time.Time {
	if s.deps.Clock == nil {
		return time.Now().UTC()
	}
	return s.deps.Clock.Now()
}

func hostOf(candidates ...string) string {
	for _, raw := range candidates {
		if raw == "" {
			continue
		}
		if u, err := url.Parse(raw); err == nil && u.Hostname() != "" {
			return u.Hostname()
		}
	}
	return "unknown"
}
