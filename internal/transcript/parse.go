package transcript

import "encoding/json"

type wordPayload struct {
	Word      string   `json:"word"`
	Start     *float64 `json:"start"`
	End       *float64 `json:"end"`
	SpeakerID string   `json:"speaker_id"`
}

type transcriptPayload struct {
	Data struct {
		Words []wordPayload `json:"words"`
	} `json:"data"`
}

// Parse decodes a backend transcription payload of the shape
// {"data":{"words":[{"word","start","end","speaker_id"},...]}}.
// Missing or malformed keys degrade to an empty word list; the caller always
// gets something renderable. Some backend responses arrive double-encoded (a
// JSON string containing JSON), which is unwrapped first.
func Parse(raw []byte) []WordToken {
	raw = Unwrap(raw)

	var payload transcriptPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}

	words := make([]WordToken, 0, len(payload.Data.Words))
	for _, w := range payload.Data.Words {
		words = append(words, WordToken{
			Text:      w.Word,
			Start:     w.Start,
			End:       w.End,
			SpeakerID: w.SpeakerID,
		})
	}
	return words
}

// Unwrap removes one level of JSON string encoding, if present. The backend
// sometimes serializes an already-serialized document.
func Unwrap(raw []byte) []byte {
	var inner string
	if err := json.Unmarshal(raw, &inner); err == nil {
		return []byte(inner)
	}
	return raw
}
