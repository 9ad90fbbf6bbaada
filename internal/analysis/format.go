package analysis

import (
	"fmt"
	"io"
	"strings"
)

// Section headers mirror the classic CoreNLP demo output so results
// stay diffable against it.
const (
	posHeader          = "[Part-of-Speech (POS) Tags]"
	constituencyHeader = "[Constituency Parse Trees]"
	dependencyHeader   = "[Dependency Parse Graphs]"
	sentenceBoundary   = "  --- (end of sentence) ---"
)

// ParseAction normalizes a user-supplied action string. Matching is
// case-insensitive; anything outside the supported set yields
// ErrUnknownAction.
func ParseAction(s string) (Action, error) {
	switch Action(strings.ToUpper(strings.TrimSpace(s))) {
	case ActionPOS:
		return ActionPOS, nil
	case ActionConstituency:
		return ActionConstituency, nil
	case ActionDependency:
		return ActionDependency, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

// Format renders one annotation layer of doc to w.
func Format(w io.Writer, doc AnnotatedDocument, action Action) error {
	switch action {
	case ActionPOS:
		return formatPOS(w, doc)
	case ActionConstituency:
		return formatConstituency(w, doc)
	case ActionDependency:
		return formatDependency(w, doc)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, string(action))
	}
}

func formatPOS(w io.Writer, doc AnnotatedDocument) error {
	fmt.Fprintln(w, posHeader)
	for _, sent := range doc.Sentences {
		for _, tok := range sent.Tokens {
			fmt.Fprintf(w, "  %s [%s]\n", tok.Word, tok.Tag)
		}
		fmt.Fprintln(w, sentenceBoundary)
	}
	return nil
}

func formatConstituency(w io.Writer, doc AnnotatedDocument) error {
	fmt.Fprintln(w, constituencyHeader)
	for _, sent := range doc.Sentences {
		if sent.Parse == "" {
			return fmt.Errorf("sentence %d: constituency %w", sent.Index, ErrMissingAnnotation)
		}
		fmt.Fprintln(w, sent.Parse)
	}
	return nil
}

func formatDependency(w io.Writer, doc AnnotatedDocument) error {
	fmt.Fprintln(w, dependencyHeader)
	for i, sent := range doc.Sentences {
		if len(sent.Dependencies) == 0 {
			return fmt.Errorf("sentence %d: dependency %w", sent.Index, ErrMissingAnnotation)
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		for _, dep := range sent.Dependencies {
			fmt.Fprintf(w, "%s(%s-%d, %s-%d)\n",
				dep.Relation,
				dep.GovernorGloss, dep.Governor,
				dep.DependentGloss, dep.Dependent,
			)
		}
	}
	return nil
}
