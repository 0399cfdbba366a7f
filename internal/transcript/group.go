package transcript

import "strings"

// GroupBySpeaker collapses the word sequence into contiguous per-speaker
// turns. Every word lands in exactly one turn, turns follow input order, and
// no two adjacent turns share a speaker. A turn's End is taken from its last
// word even when that word's end is absent or earlier than the previous one.
func GroupBySpeaker(words []WordToken) []SpeakerTurn {
	if len(words) == 0 {
		return nil
	}

	var turns []SpeakerTurn
	cur := SpeakerTurn{
		Speaker: speakerOf(words[0]),
		Text:    words[0].Text,
		Start:   words[0].Start,
		End:     words[0].End,
	}
	for _, w := range words[1:] {
		sp := speakerOf(w)
		if sp == cur.Speaker {
			cur.Text += " " + w.Text
			cur.End = w.End
			continue
		}
		cur.Text = strings.TrimSpace(cur.Text)
		turns = append(turns, cur)
		cur = SpeakerTurn{Speaker: sp, Text: w.Text, Start: w.Start, End: w.End}
	}
	cur.Text = strings.TrimSpace(cur.Text)
	return append(turns, cur)
}

func speakerOf(w WordToken) string {
	if w.SpeakerID == "" {
		return UnknownSpeaker
	}
	return w.SpeakerID
}
