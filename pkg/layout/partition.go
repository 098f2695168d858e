package layout

import "math"

// FlexChild is implemented by widgets that share a container's remaining
// main-axis space in proportion to their factor.
type FlexChild interface {
	FlexFactor() int
}

// Distribute splits total into len(weights) extents proportional to the
// weights. Negative and NaN weights count as zero; if every weight is zero the
// space is split evenly. The extents are snapped so they sum to total exactly
// and each boundary lands on the same position regardless of rounding order.
func Distribute(total float64, weights []float64) []float64 {
	n := len(weights)
	if n == 0 {
		return nil
	}
	total = sanitize(total)
	sum := 0.0
	for _, w := range weights {
		if w > 0 && !math.IsNaN(w) && !math.IsInf(w, 1) {
			sum += w
		}
	}
	out := make([]float64, n)
	prev := 0.0
	acc := 0.0
	for i, w := range weights {
		if sum == 0 {
			acc = float64(i + 1)
		} else if w > 0 && !math.IsNaN(w) && !math.IsInf(w, 1) {
			acc += w
		}
		denom := sum
		if sum == 0 {
			denom = float64(n)
		}
		edge := total * acc / denom
		if i == n-1 {
			edge = total
		}
		out[i] = edge - prev
		prev = edge
	}
	return out
}

// Offsets returns the running start positions of consecutive extents.
func Offsets(start float64, extents []float64) []float64 {
	out := make([]float64, len(extents))
	pos := start
	for i, e := range extents {
		out[i] = pos
		pos += e
	}
	return out
}
