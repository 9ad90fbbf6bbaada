package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubFetcher struct {
	resp  FetchResponse
	err   error
	calls int
}

func (f *stubFetcher) Fetch(_ context.Context, req FetchRequest) (FetchResponse, error) {
	f.calls++
	if f.err != nil {
		return FetchResponse{}, f.err
	}
	resp := f.resp
	if resp.URL == "" {
		resp.URL = req.URL
	}
	return resp, nil
}

type stubAnnotator struct {
	doc   AnnotatedDocument
	err   error
	calls int
	text  string
}

func (a *stubAnnotator) Annotate(_ context.Context, text string) (AnnotatedDocument, error) {
	a.calls++
	a.text = text
	return a.doc, a.err
}

type memStore struct {
	recs []Record
	err  error
}

func (s *memStore) SaveAnalysis(_ context.Context, rec Record) error {
	if s.err != nil {
		return s.err
	}
	s.recs = append(s.recs, rec)
	return nil
}

func (s *memStore) Close() error { return nil }

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

type fixedIDs struct{ id string }

func (g fixedIDs) NewID() (string, error) { return g.id, nil }

func taggedDoc() AnnotatedDocument {
	return AnnotatedDocument{Sentences: []Sentence{{
		Tokens: []Token{{Index: 1, Word: "Hello", Tag: "UH"}},
	}}}
}

func newTestService(t *testing.T, cfg ServiceConfig, deps Deps) *Service {
	t.Helper()
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	svc, err := NewService(cfg, deps)
	require.NoError(t, err)
	return svc
}

func TestProcessHappyPath(t *testing.T) {
	t.Parallel()

	raw := "header\n" + DefaultStartMarker + " X ***\nHello world.\nMore text.\n" +
		DefaultEndMarker + " X ***\nfooter"
	fetcher := &stubFetcher{resp: FetchResponse{StatusCode: 200, Text: raw}}
	annotator := &stubAnnotator{doc: taggedDoc()}
	store := &memStore{}
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	svc := newTestService(t, ServiceConfig{SampleLines: 1}, Deps{
		Fetcher:   fetcher,
		Annotator: annotator,
		Store:     store,
		Clock:     fixedClock{at: now},
		IDs:       fixedIDs{id: "run-1"},
	})

	res, err := svc.Process(context.Background(), Request{Action: "pos", URL: "https://example.org/book.txt"})
	require.NoError(t, err)

	require.Equal(t, "Hello world.", annotator.text, "annotator must see the cleaned, sampled text")
	require.Equal(t, ActionPOS, res.Action)
	require.Contains(t, res.Output, "  Hello [UH]\n")
	require.Contains(t, res.Output, "--- (end of sentence) ---")

	require.Len(t, store.recs, 1)
	rec := store.recs[0]
	require.Equal(t, "run-1", rec.ID)
	require.Equal(t, "https://example.org/book.txt", rec.URL)
	require.Equal(t, now, rec.FetchedAt)
	require.Equal(t, 1, rec.Sentences)
}

func TestProcessFetchFailureWrapsURL(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	svc := newTestService(t, ServiceConfig{}, Deps{
		Fetcher:   &stubFetcher{err: cause},
		Annotator: &stubAnnotator{},
	})

	_, err := svc.Process(context.Background(), Request{Action: "POS", URL: "https://unreachable.test/doc"})

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, "https://unreachable.test/doc", fe.URL)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "https://unreachable.test/doc")
}

func TestProcessUnknownActionStillRunsPipeline(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{resp: FetchResponse{StatusCode: 200, Text: "Some text."}}
	annotator := &stubAnnotator{doc: taggedDoc()}
	svc := newTestService(t, ServiceConfig{}, Deps{Fetcher: fetcher, Annotator: annotator})

	_, err := svc.Process(context.Background(), Request{Action: "LEMMA", URL: "https://example.org/x"})
	require.ErrorIs(t, err, ErrUnknownAction)
	require.Equal(t, 1, fetcher.calls, "fetch must still happen")
	require.Equal(t, 1, annotator.calls, "annotation must still happen")
}

func TestProcessAnnotatorFailure(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, ServiceConfig{}, Deps{
		Fetcher:   &stubFetcher{resp: FetchResponse{StatusCode: 200, Text: "text"}},
		Annotator: &stubAnnotator{err: errors.New("pipeline down")},
	})

	_, err := svc.Process(context.Background(), Request{Action: "POS", URL: "https://example.org/x"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "annotate")
	var fe *FetchError
	require.False(t, errors.As(err, &fe), "annotation failures are not fetch errors")
}

func TestProcessStoreFailureDoesNotFailRun(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, ServiceConfig{}, Deps{
		Fetcher:   &stubFetcher{resp: FetchResponse{StatusCode: 200, Text: "Fine."}},
		Annotator: &stubAnnotator{doc: taggedDoc()},
		Store:     &memStore{err: errors.New("db offline")},
	})

	res, err := svc.Process(context.Background(), Request{Action: "POS", URL: "https://example.org/x"})
	require.NoError(t, err, "persistence is best-effort")
	require.NotEmpty(t, res.Output)
}

func TestNewServiceRequiresCollaborators(t *testing.T) {
	t.Parallel()

	_, err := NewService(ServiceConfig{}, Deps{Annotator: &stubAnnotator{}})
	require.Error(t, err)

	_, err = NewService(ServiceConfig{}, Deps{Fetcher: &stubFetcher{}})
	require.Error(t, err)
}
