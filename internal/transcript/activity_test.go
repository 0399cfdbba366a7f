package transcript

import "testing"

func fp(v float64) *float64 { return &v }

func TestBinActivityTwoBuckets(t *testing.T) {
	words := []WordToken{
		{Text: "hi", Start: fp(0), End: fp(1), SpeakerID: "therapist"},
		{Text: "there", Start: fp(65), End: fp(66), SpeakerID: "client"},
	}

	bins := BinActivity(words, 60)
	if len(bins) != 2 {
		t.Fatalf("got %d bins, want 2", len(bins))
	}
	if bins[0].Time != 0 || bins[0].Words != 1 {
		t.Errorf("bins[0] = %+v, want {0 1}", bins[0])
	}
	if bins[1].Time != 60 || bins[1].Words != 1 {
		t.Errorf("bins[1] = %+v, want {60 1}", bins[1])
	}
}

func TestBinActivityEmpty(t *testing.T) {
	if bins := BinActivity(nil, 60); len(bins) != 0 {
		t.Errorf("got %d bins for empty input, want 0", len(bins))
	}
}

func TestBinActivityNoTimedWords(t *testing.T) {
	words := []WordToken{{Text: "a"}, {Text: "b"}}
	if bins := BinActivity(words, 60); len(bins) != 0 {
		t.Errorf("got %d bins without start times, want 0", len(bins))
	}
}

func TestBinActivityDense(t *testing.T) {
	// One word at 10s, one at 190s: buckets 0..3 must all be present,
	// including the empty ones in between.
	words := []WordToken{
		{Text: "a", Start: fp(10)},
		{Text: "b", Start: fp(190)},
	}

	bins := BinActivity(words, 60)
	if len(bins) != 4 {
		t.Fatalf("got %d bins, want 4", len(bins))
	}
	for i, b := range bins {
		if b.Time != i*60 {
			t.Errorf("bins[%d].Time = %d, want %d", i, b.Time, i*60)
		}
	}
	if bins[1].Words != 0 || bins[2].Words != 0 {
		t.Errorf("middle bins = %d,%d, want 0,0", bins[1].Words, bins[2].Words)
	}
}

func TestBinActivityCountsAllTimedWords(t *testing.T) {
	words := []WordToken{
		{Text: "a", Start: fp(1)},
		{Text: "b", Start: fp(2)},
		{Text: "c"}, // untimed, excluded
		{Text: "d", Start: fp(61)},
	}

	bins := BinActivity(words, 60)
	total := 0
	for _, b := range bins {
		total += b.Words
	}
	if total != 3 {
		t.Errorf("sum of bin counts = %d, want 3", total)
	}
}

func TestBinActivityCustomInterval(t *testing.T) {
	words := []WordToken{
		{Text: "a", Start: fp(0)},
		{Text: "b", Start: fp(29)},
		{Text: "c", Start: fp(31)},
	}

	bins := BinActivity(words, 30)
	if len(bins) != 2 {
		t.Fatalf("got %d bins, want 2", len(bins))
	}
	if bins[0].Words != 2 || bins[1].Words != 1 {
		t.Errorf("counts = %d,%d, want 2,1", bins[0].Words, bins[1].Words)
	}
}

func TestBinActivityInvalidInterval(t *testing.T) {
	words := []WordToken{{Text: "a", Start: fp(0)}}
	if bins := BinActivity(words, 0); bins != nil {
		t.Errorf("got %v for zero interval, want nil", bins)
	}
}
