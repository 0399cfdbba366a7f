package align

import "strings"

// SpeakerClass selects one of exactly two display styles for a turn. The
// classifier is decoupled from any concrete color so render surfaces can map
// the classes however they like.
type SpeakerClass string

const (
	// ClassPrimary marks therapist speech.
	ClassPrimary SpeakerClass = "primary"
	// ClassSecondary marks everyone else, unknown speakers included.
	ClassSecondary SpeakerClass = "secondary"
)

// Classify maps a speaker label to its display class. Any label containing
// "therap" (case-insensitive) is primary, which catches "Therapist",
// "therapist_1", and similar variants. There is no third state.
func Classify(speaker string) SpeakerClass {
	if strings.Contains(strings.ToLower(speaker), "therap") {
		return ClassPrimary
	}
	return ClassSecondary
}
