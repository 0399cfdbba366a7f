package transcript

import "math"

// BinActivity buckets word counts into fixed-width time bins for charting.
// Tokens without a start time are excluded. Bins are dense: every index from
// zero through the bucket holding the last start is emitted, zero counts
// included. Returns nil when no token has a start time or interval is not
// positive.
func BinActivity(words []WordToken, interval int) []ActivityBin {
	if interval <= 0 {
		return nil
	}

	var last float64
	found := false
	for _, w := range words {
		if w.Start == nil {
			continue
		}
		if !found || *w.Start > last {
			last = *w.Start
		}
		found = true
	}
	if !found {
		return nil
	}

	n := int(math.Floor(last/float64(interval))) + 1
	counts := make([]int, n)
	for _, w := range words {
		if w.Start == nil {
			continue
		}
		counts[int(math.Floor(*w.Start/float64(interval)))]++
	}

	bins := make([]ActivityBin, n)
	for i := range bins {
		bins[i] = ActivityBin{Time: i * interval, Words: counts[i]}
	}
	return bins
}
