// Package align partitions speaker turns across episodic summary boundaries
// so each summary can be displayed next to the conversation it covers.
package align

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Minetz/theracompass/internal/transcript"
)

// EpisodicEntry is one externally generated summary with the end of the time
// segment it covers, in decimal seconds.
type EpisodicEntry struct {
	Summary     string `json:"summary"`
	EndPosition string `json:"end_position"`
}

// Section pairs a summary with the turns that ended before its boundary and
// were not consumed by an earlier section. Turns may be empty.
type Section struct {
	Summary EpisodicEntry
	Turns   []transcript.SpeakerTurn
}

// BoundaryError reports a summary entry whose end_position is not numeric.
// Silently defaulting the boundary to zero would misassign turns, so this is
// surfaced per entry instead.
type BoundaryError struct {
	Index int
	Value string
	Err   error
}

func (e *BoundaryError) Error() string {
	return fmt.Sprintf("summary entry %d: end_position %q is not numeric", e.Index, e.Value)
}

func (e *BoundaryError) Unwrap() error { return e.Err }

// Align walks turns in order and assigns them to summary entries, one section
// per entry in entry order. A single cursor advances monotonically across all
// entries: a turn consumed by one section is never revisited by a later one.
// For each boundary B the cursor consumes turns while the turn's end is
// absent or <= B, stopping at the first turn whose end is present and > B.
// Turns with no end time never block advancement; that is a deliberate
// permissive policy for incomplete timing data, and it can park such turns in
// an earlier section than their true position warrants. Turns left after the
// last boundary are dropped, and empty entries produce no sections at all.
func Align(turns []transcript.SpeakerTurn, entries []EpisodicEntry) ([]Section, error) {
	sections := make([]Section, 0, len(entries))
	cursor := 0
	for i, entry := range entries {
		boundary, err := strconv.ParseFloat(strings.TrimSpace(entry.EndPosition), 64)
		if err != nil {
			return nil, &BoundaryError{Index: i, Value: entry.EndPosition, Err: err}
		}

		start := cursor
		for cursor < len(turns) {
			end := turns[cursor].End
			if end != nil && *end > boundary {
				break
			}
			cursor++
		}
		sections = append(sections, Section{Summary: entry, Turns: turns[start:cursor]})
	}
	return sections, nil
}
