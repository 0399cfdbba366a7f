// Package report assembles the renderable view model for one session: the
// activity chart data, the conversation aligned against episodic summaries,
// the session totals, and the reconstructed plain transcript.
package report

import (
	"github.com/Minetz/theracompass/internal/align"
	"github.com/Minetz/theracompass/internal/transcript"
)

// Turn is a speaker turn decorated with its display class.
type Turn struct {
	Speaker string             `json:"speaker"`
	Text    string             `json:"text"`
	Color   align.SpeakerClass `json:"color"`
}

// Section is a summary paired with the turns that belong to it. Turns may be
// empty; the render surface shows an explicit "no related conversation"
// indicator in that case rather than silence.
type Section struct {
	Summary string `json:"summary"`
	Turns   []Turn `json:"turns"`
}

// Totals carries the session-wide word count and duration in seconds.
type Totals struct {
	WordCount int     `json:"word_count"`
	Duration  float64 `json:"duration"`
}

// SessionReport is the complete view model for one session render.
type SessionReport struct {
	Activity       []transcript.ActivityBin `json:"activity"`
	Sections       []Section                `json:"aligned_sections"`
	Totals         Totals                   `json:"totals"`
	FullTranscript string                   `json:"full_transcript"`
}

// Build derives a SessionReport from a parsed transcript and summary list.
// An interval of zero or less falls back to the default bin width. Entries
// may be empty, in which case Sections is empty but activity, totals, and the
// plain transcript are still produced. The only error is a per-entry
// *align.BoundaryError for a non-numeric summary boundary.
func Build(words []transcript.WordToken, entries []align.EpisodicEntry, interval int) (*SessionReport, error) {
	if interval <= 0 {
		interval = transcript.DefaultInterval
	}

	sections, err := align.Align(transcript.GroupBySpeaker(words), entries)
	if err != nil {
		return nil, err
	}

	rep := &SessionReport{
		Activity:       transcript.BinActivity(words, interval),
		Sections:       make([]Section, 0, len(sections)),
		FullTranscript: transcript.Sentences(transcript.FullText(words)),
	}
	rep.Totals.WordCount, rep.Totals.Duration = transcript.Totals(words)

	for _, s := range sections {
		sec := Section{Summary: s.Summary.Summary}
		for _, t := range s.Turns {
			sec.Turns = append(sec.Turns, Turn{
				Speaker: t.Speaker,
				Text:    t.Text,
				Color:   align.Classify(t.Speaker),
			})
		}
		rep.Sections = append(rep.Sections, sec)
	}
	return rep, nil
}
