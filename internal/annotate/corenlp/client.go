// Package corenlp binds the analysis pipeline to a Stanford CoreNLP
// server. The server is treated as a black box: which annotators run
// is fixed when the client is built, and each document costs exactly
// one blocking HTTP round trip.
package corenlp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MataNBhohadanA/text-analyzer/internal/analysis"
)

// DefaultAnnotators covers every layer the formatter can render.
var DefaultAnnotators = []string{"tokenize", "ssplit", "pos", "parse", "depparse"}

// Config controls the CoreNLP client.
type Config struct {
	// ServerURL is the base URL of a running CoreNLP server,
	// e.g. http://localhost:9000.
	ServerURL  string
	Annotators []string
	Timeout    time.Duration
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Client implements analysis.Annotator against a CoreNLP server.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// New validates the configuration and precomputes the request endpoint
// with the annotator properties encoded into it.
func New(cfg Config) (*Client, error) {
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("corenlp server url is required")
	}
	base, err := url.Parse(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("parse corenlp server url: %w", err)
	}

	annotators := cfg.Annotators
	if len(annotators) == 0 {
		annotators = DefaultAnnotators
	}
	props, err := json.Marshal(map[string]string{
		"annotators":   strings.Join(annotators, ","),
		"outputFormat": "json",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal corenlp properties: %w", err)
	}
	q := url.Values{}
	q.Set("properties", string(props))
	base.RawQuery = q.Encode()

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		endpoint:   base.String(),
		httpClient: httpClient,
	}, nil
}

// Annotate posts the text and decodes the server's JSON annotation.
func (c *Client) Annotate(ctx context.Context, text string) (analysis.AnnotatedDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(text))
	if err != nil {
		return analysis.AnnotatedDocument{}, fmt.Errorf("build corenlp request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return analysis.AnnotatedDocument{}, fmt.Errorf("corenlp request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return analysis.AnnotatedDocument{}, fmt.Errorf("corenlp returned %d: %s",
			resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var wire wireDocument
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return analysis.AnnotatedDocument{}, fmt.Errorf("decode corenlp response: %w", err)
	}
	return wire.toDocument(), nil
}

// Wire format of the CoreNLP JSON output.

type wireDocument struct {
	Sentences []wireSentence `json:"sentences"`
}

type wireSentence struct {
	Index             int              `json:"index"`
	Parse             string           `json:"parse"`
	BasicDependencies []wireDependency `json:"basicDependencies"`
	Tokens            []wireToken      `json:"tokens"`
}

type wireToken struct {
	Index int    `json:"index"`
	Word  string `json:"word"`
	POS   string `json:"pos"`
}

type wireDependency struct {
	Dep            string `json:"dep"`
	Governor       int    `json:"governor"`
	GovernorGloss  string `json:"governorGloss"`
	Dependent      int    `json:"dependent"`
	DependentGloss string `json:"dependentGloss"`
}

func (d wireDocument) toDocument() analysis.AnnotatedDocument {
	doc := analysis.AnnotatedDocument{Sentences: make([]analysis.Sentence, 0, len(d.Sentences))}
	for _, ws := range d.Sentences {
		sent := analysis.Sentence{
			Index: ws.Index,
			Parse: normalizeParse(ws.Parse),
		}
		for _, wt := range ws.Tokens {
			sent.Tokens = append(sent.Tokens, analysis.Token{
				Index: wt.Index,
				Word:  wt.Word,
				Tag:   wt.POS,
			})
		}
		for _, wd := range ws.BasicDependencies {
			sent.Dependencies = append(sent.Dependencies, analysis.Dependency{
				Relation:       wd.Dep,
				Governor:       wd.Governor,
				GovernorGloss:  wd.GovernorGloss,
				Dependent:      wd.Dependent,
				DependentGloss: wd.DependentGloss,
			})
		}
		doc.Sentences = append(doc.Sentences, sent)
	}
	return doc
}

// normalizeParse collapses CoreNLP's pretty-printed tree onto a single
// line of balanced brackets.
func normalizeParse(parse string) string {
	return strings.Join(strings.Fields(parse), " ")
}
