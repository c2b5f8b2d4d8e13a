package analysis

import "math"

// localMaxima returns the indices of local maxima of y. A flat top counts once,
// at its middle sample. The first and last samples are never peaks.
func localMaxima(y []float64) []int {
	var peaks []int
	n := len(y)
	i := 1
	for i < n-1 {
		if y[i-1] < y[i] {
			ahead := i + 1
			for ahead < n-1 && y[ahead] == y[i] {
				ahead++
			}
			if y[ahead] < y[i] {
				peaks = append(peaks, (i+ahead-1)/2)
				i = ahead
				continue
			}
		}
		i++
	}
	return peaks
}

// prominence measures how far peak p stands out from the lowest contour that
// separates it from any higher sample.
func prominence(y []float64, p int) float64 {
	leftMin := y[p]
	for i := p; i >= 0 && y[i] <= y[p]; i-- {
		leftMin = math.Min(leftMin, y[i])
	}
	rightMin := y[p]
	for i := p; i < len(y) && y[i] <= y[p]; i++ {
		rightMin = math.Min(rightMin, y[i])
	}
	return y[p] - math.Max(leftMin, rightMin)
}

// FindPeaks returns the local maxima of y whose height and prominence reach the
// given thresholds, in index order.
func FindPeaks(y []float64, minProminence, minHeight float64) []Peak {
	var out []Peak
	for _, p := range localMaxima(y) {
		if y[p] < minHeight {
			continue
		}
		prom := prominence(y, p)
		if prom < minProminence {
			continue
		}
		out = append(out, Peak{Index: p, Positive: true, Height: y[p], Prominence: prom})
	}
	return out
}

// FindExtrema returns the positive peaks of y and the peaks of -y, merged in
// index order.
func FindExtrema(y []float64, minProminence, minHeight float64) []Peak {
	neg := make([]float64, len(y))
	for i, v := range y {
		neg[i] = -v
	}
	pos := FindPeaks(y, minProminence, minHeight)
	down := FindPeaks(neg, minProminence, minHeight)
	for i := range down {
		down[i].Positive = false
	}

	merged := make([]Peak, 0, len(pos)+len(down))
	i, j := 0, 0
	for i < len(pos) || j < len(down) {
		if j >= len(down) || (i < len(pos) && pos[i].Index < down[j].Index) {
			merged = append(merged, pos[i])
			i++
		} else {
			merged = append(merged, down[j])
			j++
		}
	}
	return merged
}
