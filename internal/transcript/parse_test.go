package transcript

import "testing"

func TestParse(t *testing.T) {
	raw := []byte(`{"data":{"words":[
		{"word":"hi","start":0,"end":1,"speaker_id":"therapist"},
		{"word":"there","start":65,"end":66,"speaker_id":"client"},
		{"word":"untimed"}
	]}}`)

	words := Parse(raw)
	if len(words) != 3 {
		t.Fatalf("got %d words, want 3", len(words))
	}
	if words[0].Text != "hi" || words[0].SpeakerID != "therapist" {
		t.Errorf("words[0] = %+v", words[0])
	}
	if words[0].Start == nil || *words[0].Start != 0 {
		t.Errorf("words[0].Start = %v, want 0", words[0].Start)
	}
	if words[2].Start != nil || words[2].End != nil || words[2].SpeakerID != "" {
		t.Errorf("words[2] should have no timing or speaker: %+v", words[2])
	}
}

func TestParseDoubleEncoded(t *testing.T) {
	raw := []byte(`"{\"data\":{\"words\":[{\"word\":\"hi\",\"start\":0,\"end\":1}]}}"`)

	words := Parse(raw)
	if len(words) != 1 {
		t.Fatalf("got %d words, want 1", len(words))
	}
	if words[0].Text != "hi" {
		t.Errorf("words[0].Text = %q, want %q", words[0].Text, "hi")
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "not json at all"},
		{"missing data", `{"something":"else"}`},
		{"missing words", `{"data":{}}`},
		{"empty object", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if words := Parse([]byte(tt.raw)); len(words) != 0 {
				t.Errorf("got %d words, want 0", len(words))
			}
		})
	}
}
