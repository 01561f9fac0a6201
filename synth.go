package lpcvoc

import "math"

// Output samples beyond this magnitude mean the solved coefficients gave an
// unstable filter; the frame is clamped instead of propagating the blow-up.
const stabilityBound = 1e4

// Synthesizer is the all-pole reconstruction filter
//
//	y[n] = G*e[n] - sum_{k=1..p} a_k * y[n-k]
//
// Its memory is the last p output samples of the previous frame, threaded
// explicitly frame to frame; memory[k-1] holds y[n-k] at the frame start.
type Synthesizer struct {
	order  int
	memory []float64
}

// NewSynthesizer creates a synthesis filter of the given order with zeroed
// memory.
func NewSynthesizer(order int) *Synthesizer {
	return &Synthesizer{order: order, memory: make([]float64, order)}
}

// Synthesize filters one excitation frame through 1/A(z), scaling by gain
// inside the recursion; the gain is applied here and nowhere else.  After
// the frame is produced the filter memory is updated with its last p
// samples.
//
// Stability is not guaranteed by construction.  If any output sample
// exceeds the sanity bound (or goes non-finite) it is clamped and the
// second return is true, so the caller can log the unstable-filter warning;
// the batch continues either way.
func (s *Synthesizer) Synthesize(excitation, coeffs []float64, gain float64) ([]float64, bool) {
	out := make([]float64, len(excitation))
	clamped := false
	for n := range excitation {
		acc := gain * excitation[n]
		for k := 1; k <= s.order; k++ {
			var past float64
			if n-k >= 0 {
				past = out[n-k]
			} else {
				past = s.memory[k-n-1]
			}
			acc -= coeffs[k-1] * past
		}
		if math.IsNaN(acc) {
			acc = 0
			clamped = true
		} else if acc > stabilityBound {
			acc = stabilityBound
			clamped = true
		} else if acc < -stabilityBound {
			acc = -stabilityBound
			clamped = true
		}
		out[n] = acc
	}

	// frame_size > order always holds, so the tail fills the whole memory.
	for k := 1; k <= s.order; k++ {
		s.memory[k-1] = out[len(out)-k]
	}
	return out, clamped
}

// Reset zeroes the filter memory.
func (s *Synthesizer) Reset() {
	for i := range s.memory {
		s.memory[i] = 0
	}
}
