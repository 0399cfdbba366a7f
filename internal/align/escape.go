package align

import "strings"

// escapeSet lists the characters that break inline word markup. Backslash
// comes first so freshly inserted escapes are not escaped again.
var escapeSet = []string{`\`, `]`, `[`}

// EscapeWord backslash-escapes the characters \, ] and [ in a single
// whitespace-split word so it can be embedded in bracketed markup.
func EscapeWord(w string) string {
	for _, ch := range escapeSet {
		w = strings.ReplaceAll(w, ch, `\`+ch)
	}
	return w
}
