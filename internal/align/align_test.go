package align

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Minetz/theracompass/internal/transcript"
)

func fp(v float64) *float64 { return &v }

func turn(speaker, text string, end *float64) transcript.SpeakerTurn {
	return transcript.SpeakerTurn{Speaker: speaker, Text: text, End: end}
}

func TestAlignSingleBoundary(t *testing.T) {
	turns := []transcript.SpeakerTurn{
		turn("therapist", "hi", fp(1)),
		turn("client", "there", fp(66)),
	}
	entries := []EpisodicEntry{{Summary: "s1", EndPosition: "2"}}

	sections, err := Align(turns, entries)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(sections))
	}
	if len(sections[0].Turns) != 1 {
		t.Fatalf("got %d turns in section, want 1", len(sections[0].Turns))
	}
	if sections[0].Turns[0].Speaker != "therapist" {
		t.Errorf("turn speaker = %q, want therapist", sections[0].Turns[0].Speaker)
	}
	// The client turn ends after the last boundary and is dropped; there is
	// no trailing catch-all section.
}

func TestAlignCursorIsShared(t *testing.T) {
	turns := []transcript.SpeakerTurn{
		turn("a", "one", fp(10)),
		turn("b", "two", fp(20)),
		turn("a", "three", fp(30)),
	}
	entries := []EpisodicEntry{
		{Summary: "first", EndPosition: "15"},
		{Summary: "second", EndPosition: "35"},
	}

	sections, err := Align(turns, entries)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sections))
	}
	if len(sections[0].Turns) != 1 || sections[0].Turns[0].Text != "one" {
		t.Errorf("section 0 turns = %+v, want just 'one'", sections[0].Turns)
	}
	if len(sections[1].Turns) != 2 {
		t.Fatalf("section 1 has %d turns, want 2", len(sections[1].Turns))
	}
	if sections[1].Turns[0].Text != "two" || sections[1].Turns[1].Text != "three" {
		t.Errorf("section 1 turns = %+v, want two,three", sections[1].Turns)
	}
}

func TestAlignNoTurnsConsumed(t *testing.T) {
	turns := []transcript.SpeakerTurn{turn("a", "late", fp(100))}
	entries := []EpisodicEntry{
		{Summary: "early", EndPosition: "5"},
		{Summary: "later", EndPosition: "200"},
	}

	sections, err := Align(turns, entries)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if len(sections[0].Turns) != 0 {
		t.Errorf("section 0 should be empty, got %d turns", len(sections[0].Turns))
	}
	if len(sections[1].Turns) != 1 {
		t.Errorf("section 1 should hold the late turn, got %d", len(sections[1].Turns))
	}
}

func TestAlignAbsentEndAlwaysConsumed(t *testing.T) {
	// A turn with no end time never blocks advancement, even when it sits
	// between turns that clearly belong to a later boundary.
	turns := []transcript.SpeakerTurn{
		turn("a", "timed", fp(1)),
		turn("b", "untimed", nil),
		turn("a", "late", fp(50)),
	}
	entries := []EpisodicEntry{{Summary: "s", EndPosition: "10"}}

	sections, err := Align(turns, entries)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if len(sections[0].Turns) != 2 {
		t.Fatalf("got %d turns, want 2 (timed + untimed)", len(sections[0].Turns))
	}
	if sections[0].Turns[1].Text != "untimed" {
		t.Errorf("second consumed turn = %q, want untimed", sections[0].Turns[1].Text)
	}
}

func TestAlignEmptyEntries(t *testing.T) {
	turns := []transcript.SpeakerTurn{turn("a", "x", fp(1))}

	sections, err := Align(turns, nil)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if len(sections) != 0 {
		t.Errorf("got %d sections for no entries, want 0", len(sections))
	}
}

func TestAlignBadBoundary(t *testing.T) {
	entries := []EpisodicEntry{
		{Summary: "ok", EndPosition: "1"},
		{Summary: "bad", EndPosition: "not-a-number"},
	}

	_, err := Align(nil, entries)
	if err == nil {
		t.Fatal("expected error for non-numeric end_position")
	}
	var be *BoundaryError
	if !errors.As(err, &be) {
		t.Fatalf("error type = %T, want *BoundaryError", err)
	}
	if be.Index != 1 {
		t.Errorf("BoundaryError.Index = %d, want 1", be.Index)
	}
	if be.Value != "not-a-number" {
		t.Errorf("BoundaryError.Value = %q, want %q", be.Value, "not-a-number")
	}
}

func TestAlignIdempotent(t *testing.T) {
	turns := []transcript.SpeakerTurn{
		turn("a", "one", fp(10)),
		turn("b", "two", nil),
		turn("a", "three", fp(30)),
	}
	entries := []EpisodicEntry{
		{Summary: "x", EndPosition: "15"},
		{Summary: "y", EndPosition: "40"},
	}

	first, err := Align(turns, entries)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	second, err := Align(turns, entries)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated Align over identical input diverged")
	}
}

func TestAlignTurnsAppearAtMostOnce(t *testing.T) {
	turns := []transcript.SpeakerTurn{
		turn("a", "t0", fp(5)),
		turn("b", "t1", fp(15)),
		turn("a", "t2", fp(25)),
		turn("b", "t3", fp(35)),
	}
	entries := []EpisodicEntry{
		{Summary: "1", EndPosition: "10"},
		{Summary: "2", EndPosition: "20"},
		{Summary: "3", EndPosition: "40"},
	}

	sections, err := Align(turns, entries)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}

	seen := map[string]int{}
	var order []string
	for _, s := range sections {
		for _, tr := range s.Turns {
			seen[tr.Text]++
			order = append(order, tr.Text)
		}
	}
	for text, n := range seen {
		if n > 1 {
			t.Errorf("turn %q appears %d times", text, n)
		}
	}
	want := []string{"t0", "t1", "t2", "t3"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("turn order = %v, want %v", order, want)
	}
}
