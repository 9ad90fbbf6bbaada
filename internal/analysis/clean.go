package analysis

import "strings"

// Default boilerplate markers for Project Gutenberg plain-text files.
const (
	DefaultStartMarker = "*** START OF THIS PROJECT GUTENBERG EBOOK"
	DefaultEndMarker   = "*** END OF THIS PROJECT GUTENBERG EBOOK"
)

// Cleaner strips publisher boilerplate delimited by literal marker
// substrings. A missing marker is not an error: the text is kept
// whole on that side.
type Cleaner struct {
	StartMarker string
	EndMarker   string
}

// NewCleaner returns a Cleaner with the Gutenberg default markers.
func NewCleaner() Cleaner {
	return Cleaner{
		StartMarker: DefaultStartMarker,
		EndMarker:   DefaultEndMarker,
	}
}

// Clean returns the trimmed substring between the line after the start
// marker and the end marker. The end marker is searched from the
// computed start, so a stray end marker inside the header cannot
// invert the bounds.
func (c Cleaner) Clean(raw string) string {
	start := 0
	if c.StartMarker != "" {
		if i := strings.Index(raw, c.StartMarker); i >= 0 {
			if nl := strings.IndexByte(raw[i:], '\n'); nl >= 0 {
				start = i + nl
			}
		}
	}

	end := len(raw)
	if c.EndMarker != "" {
		if j := strings.Index(raw[start:], c.EndMarker); j >= 0 {
			end = start + j
		}
	}

	return strings.TrimSpace(raw[start:end])
}
