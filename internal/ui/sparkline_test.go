package ui

import "testing"

func TestSparkline(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		width  int
		want   string
	}{
		{"empty", nil, 0, ""},
		{"single", []int{5}, 0, "█"},
		{"ramp", []int{0, 4, 8}, 0, "▁▄█"},
		{"all zero", []int{0, 0, 0}, 0, "▁▁▁"},
		{"tail wins on overflow", []int{1, 2, 3, 4}, 2, "▆█"},
		{"negative clamped", []int{-1, 2}, 0, "▁█"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sparkline(tt.counts, tt.width); got != tt.want {
				t.Errorf("Sparkline(%v, %d) = %q, want %q", tt.counts, tt.width, got, tt.want)
			}
		})
	}
}
