package transcript

import "testing"

func TestFullText(t *testing.T) {
	words := []WordToken{{Text: "hi"}, {Text: "there."}, {Text: "bye"}}
	if got := FullText(words); got != "hi there. bye" {
		t.Errorf("FullText = %q, want %q", got, "hi there. bye")
	}
}

func TestSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single", "hello world", "hello world."},
		{"two", "first part. second part", "first part..\nsecond part."},
		{"trailing dot", "only sentence.", "only sentence."},
		{"empty fragments dropped", "a .. b", "a..\nb."},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sentences(tt.in); got != tt.want {
				t.Errorf("Sentences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTotals(t *testing.T) {
	words := []WordToken{
		{Text: "a", Start: fp(0), End: fp(1)},
		{Text: "b"},
		{Text: "c", Start: fp(5), End: fp(7.5)},
	}

	count, dur := Totals(words)
	if count != 3 {
		t.Errorf("word count = %d, want 3", count)
	}
	if dur != 7.5 {
		t.Errorf("duration = %v, want 7.5", dur)
	}
}

func TestTotalsEmpty(t *testing.T) {
	count, dur := Totals(nil)
	if count != 0 || dur != 0 {
		t.Errorf("totals = %d, %v, want 0, 0", count, dur)
	}
}
