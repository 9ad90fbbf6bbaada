package analysis

import (
	"strings"
	"testing"
)

func TestCleanBothMarkers(t *testing.T) {
	t.Parallel()

	raw := "publisher preamble\n" +
		DefaultStartMarker + " SHERLOCK HOLMES ***\n" +
		"\nThe actual content.\nSecond line.\n\n" +
		DefaultEndMarker + " SHERLOCK HOLMES ***\nlegal footer\n"

	got := NewCleaner().Clean(raw)
	want := "The actual content.\nSecond line."
	if got != want {
		t.Fatalf("Clean() = %q, want %q", got, want)
	}
}

func TestCleanMissingStartMarker(t *testing.T) {
	t.Parallel()

	raw := "First line.\nSecond line.\n" + DefaultEndMarker + " X ***\nfooter"
	got := NewCleaner().Clean(raw)
	want := "First line.\nSecond line."
	if got != want {
		t.Fatalf("Clean() = %q, want %q", got, want)
	}
}

func TestCleanMissingEndMarker(t *testing.T) {
	t.Parallel()

	raw := "header\n" + DefaultStartMarker + " X ***\nContent to the end.\n"
	got := NewCleaner().Clean(raw)
	if got != "Content to the end." {
		t.Fatalf("Clean() = %q", got)
	}
}

func TestCleanNoMarkers(t *testing.T) {
	t.Parallel()

	raw := "  plain text with no markers \n"
	got := NewCleaner().Clean(raw)
	if got != "plain text with no markers" {
		t.Fatalf("Clean() = %q", got)
	}
}

// A start marker on the very last line has no newline after it; the
// whole text is used, matching the missing-marker fallback.
func TestCleanStartMarkerWithoutNewline(t *testing.T) {
	t.Parallel()

	raw := "some text\n" + DefaultStartMarker
	c := Cleaner{StartMarker: DefaultStartMarker}
	got := c.Clean(raw)
	if got != strings.TrimSpace(raw) {
		t.Fatalf("Clean() = %q, expected full trimmed text", got)
	}
}

// An end marker that appears before the start marker must not invert
// the bounds.
func TestCleanOutOfOrderMarkers(t *testing.T) {
	t.Parallel()

	c := Cleaner{StartMarker: "START", EndMarker: "END"}
	raw := "END early\nSTART here\nbody\n"
	got := c.Clean(raw)
	if got != "body" {
		t.Fatalf("Clean() = %q, want %q", got, "body")
	}
}

func TestCleanCustomMarkers(t *testing.T) {
	t.Parallel()

	c := Cleaner{StartMarker: "<<BEGIN>>", EndMarker: "<<FIN>>"}
	raw := "junk <<BEGIN>> trailing\nkept\n<<FIN>> junk"
	if got := c.Clean(raw); got != "kept" {
		t.Fatalf("Clean() = %q", got)
	}
}
