// Package proseannotate implements a local, tag-only pipeline binding
// on top of jdkato/prose. It segments sentences and tags tokens; it
// computes no constituency or dependency layers, so those formats
// report a missing annotation when this engine is selected.
package proseannotate

import (
	"context"
	"fmt"
	"strings"

	prose "github.com/jdkato/prose/v2"

	"github.com/MataNBhohadanA/text-analyzer/internal/analysis"
)

// Annotator implements analysis.Annotator without any external service.
type Annotator struct{}

// New returns a ready Annotator. The underlying prose models load
// lazily on first use.
func New() *Annotator {
	return &Annotator{}
}

// Annotate segments, tokenizes and POS-tags the text.
func (a *Annotator) Annotate(ctx context.Context, text string) (analysis.AnnotatedDocument, error) {
	if strings.TrimSpace(text) == "" {
		return analysis.AnnotatedDocument{}, nil
	}

	seg, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return analysis.AnnotatedDocument{}, fmt.Errorf("segment text: %w", err)
	}

	var doc analysis.AnnotatedDocument
	for i, sent := range seg.Sentences() {
		if err := ctx.Err(); err != nil {
			return analysis.AnnotatedDocument{}, fmt.Errorf("annotate canceled: %w", err)
		}
		tagged, err := prose.NewDocument(sent.Text,
			prose.WithSegmentation(false),
			prose.WithExtraction(false),
		)
		if err != nil {
			return analysis.AnnotatedDocument{}, fmt.Errorf("tag sentence %d: %w", i, err)
		}

		out := analysis.Sentence{Index: i}
		for j, tok := range tagged.Tokens() {
			out.Tokens = append(out.Tokens, analysis.Token{
				Index: j + 1,
				Word:  tok.Text,
				Tag:   tok.Tag,
			})
		}
		doc.Sentences = append(doc.Sentences, out)
	}
	return doc, nil
}
