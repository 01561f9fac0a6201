package lpcvoc

// PreEmphasize applies the first-order high-pass y[n] = x[n] - a*x[n-1]
// to one frame, using the frame's own first sample as the boundary value.
// There is deliberately no cross-frame state: frames overlap, so each one
// is emphasized independently before analysis.
func PreEmphasize(frame []float64) []float64 {
	out := make([]float64, len(frame))
	if len(frame) == 0 {
		return out
	}
	out[0] = frame[0]
	for n := 1; n < len(frame); n++ {
		out[n] = frame[n] - EmphasisAlpha*frame[n-1]
	}
	return out
}

// DeEmphasis is the matching recursive inverse y[n] = x[n] + a*y[n-1].
// Unlike pre-emphasis it runs as one continuous filter over the whole
// reconstructed signal, so its single-sample memory is carried across
// frames by the decoder orchestration that owns it.
type DeEmphasis struct {
	prev float64
}

// Filter de-emphasizes one synthesized frame, advancing the carried memory.
func (d *DeEmphasis) Filter(frame []float64) []float64 {
	out := make([]float64, len(frame))
	for n, x := range frame {
		d.prev = x + EmphasisAlpha*d.prev
		out[n] = d.prev
	}
	return out
}
