package analysis

import "strings"

// FirstLines returns at most n lines of text rejoined with single
// newlines. Fewer than n lines is not an error; the whole text is
// returned. Lines can be arbitrarily long. The operation is
// idempotent.
func FirstLines(text string, n int) string {
	if n <= 0 || text == "" {
		return ""
	}

	var b strings.Builder
	for count := 0; count < n && text != ""; count++ {
		line, rest, found := strings.Cut(text, "\n")
		if count > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.TrimSuffix(line, "\r"))
		if !found {
			break
		}
		text = rest
	}
	return b.String()
}
