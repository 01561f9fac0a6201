package lpcvoc

// Classifier decides voiced vs. unvoiced from the normalized autocorrelation
// of a pre-emphasized frame, and estimates the pitch period when voiced.
//
// The lag range covers 50-400 Hz pitch at the stream's sample rate, clamped
// to the frame length; the voicing threshold is the 0.30 normalized peak the
// reference vocoder uses.  Both are fixed design choices, not tunables.
type Classifier struct {
	minLag    int
	maxLag    int
	threshold float64
}

// NewClassifier derives the pitch lag search range from the sample rate and
// frame size.
func NewClassifier(sampleRate, frameSize int) *Classifier {
	minLag := int(float64(sampleRate) / MaxPitchHz)
	maxLag := int(float64(sampleRate) / MinPitchHz)
	if minLag < 1 {
		minLag = 1
	}
	if maxLag > frameSize-1 {
		maxLag = frameSize - 1
	}
	return &Classifier{minLag: minLag, maxLag: maxLag, threshold: VoicingThreshold}
}

// MaxLag is the largest lag the classifier inspects; the encoder extends its
// autocorrelation to at least this lag.
func (c *Classifier) MaxLag() int {
	return c.maxLag
}

// Classify picks the lag of maximum normalized autocorrelation in
// [minLag, maxLag] and returns Voiced with that lag as the pitch period when
// the peak reaches the voicing threshold, Unvoiced otherwise.  On an exact
// tie the lowest lag wins, keeping the decision deterministic.  Silence has
// r_0 ~ 0 and classifies unvoiced by construction.
func (c *Classifier) Classify(r []float64) Excitation {
	if c.minLag > c.maxLag || r[0] <= silenceFloor {
		return Unvoiced{}
	}
	limit := c.maxLag
	if limit >= len(r) {
		limit = len(r) - 1
	}

	bestLag := 0
	bestCorr := 0.0
	for lag := c.minLag; lag <= limit; lag++ {
		if corr := r[lag] / r[0]; corr > bestCorr {
			bestCorr = corr
			bestLag = lag
		}
	}
	if bestCorr < c.threshold {
		return Unvoiced{}
	}
	return Voiced{Period: bestLag}
}
