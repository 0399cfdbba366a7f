package align

import (
	"encoding/json"

	"github.com/Minetz/theracompass/internal/transcript"
)

type summaryPayload struct {
	EpisodicSummary struct {
		SummaryList []EpisodicEntry `json:"summary_list"`
	} `json:"episodic_summary"`
}

// ParseSummary decodes a backend episodic summary payload of the shape
// {"episodic_summary":{"summary_list":[{"summary","end_position"},...]}}.
// Missing or malformed keys degrade to an empty entry list, same policy as
// transcript parsing; end_position values are validated later by Align.
func ParseSummary(raw []byte) []EpisodicEntry {
	raw = transcript.Unwrap(raw)

	var payload summaryPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	return payload.EpisodicSummary.SummaryList
}
