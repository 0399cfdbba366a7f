package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/Minetz/theracompass/internal/align"
)

// Metadata describes the session a markdown report is rendered for.
type Metadata struct {
	SessionID   string
	PatientName string
	Generated   string
}

// RenderMarkdown writes a SessionReport as a markdown document. Each word of
// a turn goes through EscapeWord so brackets and backslashes in transcribed
// speech survive the bracketed speaker markup.
func RenderMarkdown(meta Metadata, rep *SessionReport) string {
	var b strings.Builder

	b.WriteString("# Session Report\n\n")
	if meta.SessionID != "" {
		fmt.Fprintf(&b, "- Session: `%s`\n", meta.SessionID)
	}
	if meta.PatientName != "" {
		fmt.Fprintf(&b, "- Patient: %s\n", meta.PatientName)
	}
	if meta.Generated != "" {
		fmt.Fprintf(&b, "- Generated: %s\n", meta.Generated)
	}
	fmt.Fprintf(&b, "- Words: %d\n", rep.Totals.WordCount)
	fmt.Fprintf(&b, "- Duration: %s\n", formatSeconds(rep.Totals.Duration))
	b.WriteString("\n---\n\n")

	b.WriteString("## Activity\n\n")
	if len(rep.Activity) == 0 {
		b.WriteString("_No activity data available._\n\n")
	} else {
		for _, bin := range rep.Activity {
			fmt.Fprintf(&b, "- %s: %d words\n", formatSeconds(float64(bin.Time)), bin.Words)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Conversation by episodic summary\n\n")
	if len(rep.Sections) == 0 {
		b.WriteString("_No episodic summary available._\n\n")
	}
	for i, sec := range rep.Sections {
		fmt.Fprintf(&b, "### Summary %d\n\n", i+1)
		fmt.Fprintf(&b, "> %s\n\n", sec.Summary)
		if len(sec.Turns) == 0 {
			b.WriteString("_No related conversation._\n\n")
			continue
		}
		for _, turn := range sec.Turns {
			fmt.Fprintf(&b, "[%s] **%s:** %s\n\n", turn.Color, turn.Speaker, escapeText(turn.Text))
		}
	}

	b.WriteString("## Full transcript\n\n")
	fmt.Fprintf(&b, "%s\n", rep.FullTranscript)

	return b.String()
}

// escapeText escapes every whitespace-split word of a turn individually and
// rejoins with single spaces.
func escapeText(text string) string {
	fields := strings.Fields(text)
	for i, w := range fields {
		fields[i] = align.EscapeWord(w)
	}
	return strings.Join(fields, " ")
}

func formatSeconds(sec float64) string {
	d := time.Duration(sec*1000) * time.Millisecond
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
