package lpcvoc

import (
	"iter"

	"github.com/mjibson/go-dsp/window"
)

// Framer cuts a signal into overlapping Hamming-windowed analysis frames.
// Frames are produced lazily and may be fetched in any order, which is what
// lets the encoder analyze them on parallel workers.
type Framer struct {
	samples []float64
	win     []float64
	size    int
	stride  int
}

// NewFramer validates cfg against the signal and returns a framer producing
// frames of cfg.FrameSize samples at cfg.Stride() spacing.  The final frame
// is zero-padded when the signal does not divide evenly.
func NewFramer(signal Signal, cfg Config) (*Framer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Framer{
		samples: signal.Samples,
		win:     window.Hamming(cfg.FrameSize),
		size:    cfg.FrameSize,
		stride:  cfg.Stride(),
	}, nil
}

// NumFrames is the number of frames needed to cover the whole signal.
func (f *Framer) NumFrames() int {
	n := len(f.samples)
	if n <= f.size {
		return 1
	}
	return 1 + (n-f.size+f.stride-1)/f.stride
}

// Frame returns the i-th windowed frame.  Samples past the end of the
// signal read as zero.
func (f *Framer) Frame(i int) Frame {
	offset := i * f.stride
	out := make([]float64, f.size)
	for j := 0; j < f.size; j++ {
		if idx := offset + j; idx < len(f.samples) {
			out[j] = f.samples[idx] * f.win[j]
		}
	}
	return Frame{Samples: out, Offset: offset, Index: i}
}

// Frames iterates the frames in order.  The sequence is restartable; each
// range starts again from frame zero.
func (f *Framer) Frames() iter.Seq[Frame] {
	return func(yield func(Frame) bool) {
		for i := 0; i < f.NumFrames(); i++ {
			if !yield(f.Frame(i)) {
				return
			}
		}
	}
}

// Window exposes the analysis window so the decoder can reuse it for
// overlap-add reconstruction.
func (f *Framer) Window() []float64 {
	return f.win
}
