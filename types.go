// Package lpcvoc implements a parametric speech codec built on Linear
// Predictive Coding.  The encoder reduces each analysis frame to a small
// parameter set (predictor coefficients, gain, voicing, pitch period) and
// the decoder resynthesizes speech from those parameters alone, driving an
// all-pole reconstruction filter with an impulse train or shaped noise.
package lpcvoc

// Emphasis and analysis constants.
const (
	// EmphasisAlpha is the first-order pre/de-emphasis coefficient.
	EmphasisAlpha = 0.9375

	// VoicingThreshold is the normalized autocorrelation peak above which a
	// frame is classified voiced.
	VoicingThreshold = 0.30

	// MinPitchHz and MaxPitchHz bound the pitch search.  The lag range in
	// samples is [fs/MaxPitchHz, fs/MinPitchHz].
	MinPitchHz = 50.0
	MaxPitchHz = 400.0
)

// Defaults for the encoder configuration.
const (
	DefaultOrder          = 10
	DefaultOverlapPercent = 50

	// DefaultFrameMillis is used to derive the frame size from the input
	// sample rate when no explicit frame size is configured.
	DefaultFrameMillis = 30

	// DefaultNoiseSeed seeds the unvoiced excitation source when the caller
	// does not supply one, keeping decodes reproducible.
	DefaultNoiseSeed = 1
)

// MaxOrder bounds the predictor order accepted in a stream header.
const MaxOrder = 64

// Signal is an ordered sequence of real-valued samples at a fixed sample
// rate.  The codec never mutates a Signal in place.
type Signal struct {
	Samples    []float64
	SampleRate int
}

// Frame is a windowed analysis frame cut from a Signal, tagged with its
// start offset in the source and its frame index.
type Frame struct {
	Samples []float64
	Offset  int
	Index   int
}

// Excitation is the tagged source variant for one frame: Voiced carries a
// pitch period, Unvoiced carries nothing.  Modeling the variant this way
// makes "voiced with no pitch" unrepresentable.
type Excitation interface {
	isExcitation()
}

// Voiced marks a periodic frame with its pitch period in samples.
type Voiced struct {
	Period int
}

// Unvoiced marks a noise-like frame.
type Unvoiced struct{}

func (Voiced) isExcitation()   {}
func (Unvoiced) isExcitation() {}

// Parameters is the per-frame encoding unit.  Coefficients has exactly
// Order entries, the a_1..a_p of the prediction error filter
// A(z) = 1 + sum a_k z^-k; Gain is sqrt of the residual energy.
type Parameters struct {
	Coefficients []float64
	Gain         float64
	Source       Excitation
}

// Config describes one encoded stream: predictor order, frame geometry and
// the input sample rate.  A zero FrameSize is replaced by DefaultFrameMillis
// worth of samples during validation.
type Config struct {
	SampleRate     int
	Order          int
	FrameSize      int
	OverlapPercent int
}

// Validate checks the invariants order >= 1, frame_size > order and
// 0 <= overlap < 100, filling in the default frame size first.  It returns
// an error wrapping ErrInvalidConfig on the first violation.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return invalidConfigf("sample rate %d, want > 0", c.SampleRate)
	}
	if c.FrameSize == 0 {
		c.FrameSize = c.SampleRate * DefaultFrameMillis / 1000
	}
	if c.Order < 1 {
		return invalidConfigf("order %d, want >= 1", c.Order)
	}
	if c.Order > MaxOrder {
		return invalidConfigf("order %d, want <= %d", c.Order, MaxOrder)
	}
	if c.FrameSize <= c.Order {
		return invalidConfigf("frame size %d, want > order %d", c.FrameSize, c.Order)
	}
	if c.OverlapPercent < 0 || c.OverlapPercent >= 100 {
		return invalidConfigf("overlap %d%%, want 0-99", c.OverlapPercent)
	}
	if c.Stride() < 1 {
		return invalidConfigf("overlap %d%% of frame size %d leaves no stride", c.OverlapPercent, c.FrameSize)
	}
	return nil
}

// Stride is the hop between successive frame offsets in samples.
func (c *Config) Stride() int {
	return c.FrameSize * (100 - c.OverlapPercent) / 100
}
