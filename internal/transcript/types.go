// Package transcript holds the word-level transcript model and the pure
// transforms derived from it: activity binning, speaker grouping, and
// plain-text reconstruction.
package transcript

// WordToken is one transcribed word. Start and End are nil when the backend
// did not attach timing to the word.
type WordToken struct {
	Text      string
	Start     *float64
	End       *float64
	SpeakerID string
}

// SpeakerTurn is a maximal run of consecutive words attributed to one
// speaker. Text is the space-joined, trimmed concatenation of the word texts.
type SpeakerTurn struct {
	Speaker string
	Text    string
	Start   *float64
	End     *float64
}

// ActivityBin is one fixed-width time bucket of word counts.
type ActivityBin struct {
	Time  int `json:"time"`
	Words int `json:"words"`
}

// UnknownSpeaker is substituted for words that carry no speaker label.
const UnknownSpeaker = "unknown"

// DefaultInterval is the default activity bin width in seconds.
const DefaultInterval = 60
