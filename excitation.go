package lpcvoc

import (
	"math"
	"math/rand"
)

// Generator reconstructs the excitation driving synthesis: a periodic
// impulse train for voiced frames, seeded Gaussian noise for unvoiced ones.
// Every frame is normalized to unit energy (sum e^2 = 1) so the synthesis
// filter's gain term carries the full residual energy exactly once.
//
// The pulse phase is carried across consecutive voiced frames: after a
// frame whose last impulse sits at index L, the next frame starts
// (frameSize - L) mod period samples into the pitch cycle.  The carried
// phase belongs to the decoder orchestration; an unvoiced frame resets it,
// since there is no pulse position to continue from.
type Generator struct {
	frameSize int
	phase     int
	rng       *rand.Rand
}

// NewGenerator creates an excitation generator for frames of frameSize
// samples.  The seed fixes the unvoiced noise sequence; callers wanting
// reproducible decodes pass the same seed every time.
func NewGenerator(frameSize int, seed int64) *Generator {
	return &Generator{
		frameSize: frameSize,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Next produces the excitation frame for the given source variant.
func (g *Generator) Next(src Excitation) []float64 {
	switch s := src.(type) {
	case Voiced:
		return g.impulseTrain(s.Period)
	default:
		g.phase = 0
		return g.noise()
	}
}

func (g *Generator) impulseTrain(period int) []float64 {
	out := make([]float64, g.frameSize)
	if period < 1 {
		period = 1
	}
	// The carried phase is bounded by the previous frame's period, which
	// may exceed the current one when pitch falls; reduce it modulo the
	// new period so the first pulse lands on the new pitch grid extended
	// from the last emitted pulse.
	start := 0
	if g.phase > 0 {
		start = period - g.phase%period
		if start == period {
			start = 0
		}
	}

	count := 0
	last := start
	for i := start; i < g.frameSize; i += period {
		out[i] = 1
		count++
		last = i
	}
	if count == 0 {
		// Pitch period longer than the frame and no pulse due yet; advance
		// the phase by a whole frame of samples.
		g.phase = (g.phase + g.frameSize) % period
		return out
	}
	g.phase = (g.frameSize - last) % period

	amp := 1 / math.Sqrt(float64(count))
	for i := range out {
		out[i] *= amp
	}
	return out
}

func (g *Generator) noise() []float64 {
	out := make([]float64, g.frameSize)
	var energy float64
	for i := range out {
		out[i] = g.rng.NormFloat64()
		energy += out[i] * out[i]
	}
	if energy > 0 {
		scale := 1 / math.Sqrt(energy)
		for i := range out {
			out[i] *= scale
		}
	}
	return out
}
