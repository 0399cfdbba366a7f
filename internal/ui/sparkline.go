package ui

// sparkRunes are the eight block heights used to chart activity.
var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders counts as a row of block characters scaled to the
// largest value. width caps the number of cells; when counts exceed it the
// tail of the series wins. A non-positive width means no cap.
func Sparkline(counts []int, width int) string {
	if len(counts) == 0 {
		return ""
	}
	if width > 0 && len(counts) > width {
		counts = counts[len(counts)-width:]
	}
	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	out := make([]rune, 0, len(counts))
	for _, c := range counts {
		if c < 0 {
			c = 0
		}
		idx := 0
		if max > 0 {
			idx = c * (len(sparkRunes) - 1) / max
		}
		out = append(out, sparkRunes[idx])
	}
	return string(out)
}
