package transcript

import "strings"

// FullText joins all word texts with single spaces, in transcript order.
func FullText(words []WordToken) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

// Sentences reformats a flat transcript into one sentence per line: split on
// every literal '.', trim each fragment, drop empty ones, and give each
// fragment back its period. There is no linguistic awareness here, so
// abbreviations and decimal numbers mis-split. That is a known limitation of
// the reconstruction, not something to correct silently.
func Sentences(full string) string {
	var out []string
	for _, frag := range strings.Split(full, ".") {
		frag = strings.TrimSpace(frag)
		if frag == "" {
			continue
		}
		out = append(out, frag+".")
	}
	return strings.Join(out, ".\n")
}

// Totals reports the word count and session duration. Every token counts,
// timed or not; duration is the largest present end time, zero when none.
func Totals(words []WordToken) (wordCount int, duration float64) {
	for _, w := range words {
		if w.End != nil && *w.End > duration {
			duration = *w.End
		}
	}
	return len(words), duration
}
