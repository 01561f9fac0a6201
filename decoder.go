package lpcvoc

import (
	"github.com/mjibson/go-dsp/window"
	"github.com/sirupsen/logrus"
)

// DecoderConfig carries the decode-side collaborators: the noise seed for
// the unvoiced excitation source and the logger for recoverable warnings.
type DecoderConfig struct {
	NoiseSeed int64 // 0 uses DefaultNoiseSeed
	Logger    logrus.FieldLogger
}

// Decoder resynthesizes a signal from an encoded parameter stream.
//
// Decoding is strictly sequential: the de-emphasis filter, the excitation
// pulse phase and the synthesis filter memory all carry state from frame to
// frame, and overlapping frames share the reconstruction accumulator.  All
// of that state lives here, threaded explicitly through one pass — nothing
// is global.
type Decoder struct {
	cfg DecoderConfig
	log logrus.FieldLogger
}

// NewDecoder creates a decoder.
func NewDecoder(cfg DecoderConfig) *Decoder {
	if cfg.NoiseSeed == 0 {
		cfg.NoiseSeed = DefaultNoiseSeed
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Decoder{cfg: cfg, log: log}
}

// Decode replays every parameter set through the excitation generator and
// the all-pole synthesis filter, de-emphasizes the result, and overlap-adds
// the frames back into one continuous signal trimmed to the original sample
// count.  Unstable frames are clamped and logged, never fatal.
func (d *Decoder) Decode(stream *Stream) (Signal, error) {
	cfg := stream.Config()
	if err := cfg.Validate(); err != nil {
		return Signal{}, err
	}

	frameSize := cfg.FrameSize
	stride := cfg.Stride()
	win := window.Hamming(frameSize)

	gen := NewGenerator(frameSize, d.cfg.NoiseSeed)
	synth := NewSynthesizer(cfg.Order)
	var deemph DeEmphasis
	recon := NewReconstructor(win)

	silence := make([]float64, frameSize)
	for i, p := range stream.Frames {
		var synthesized []float64
		if p.Gain == 0 {
			// Silent frame: no excitation energy to shape, skip the filter.
			synthesized = silence
		} else {
			excitation := gen.Next(p.Source)
			var clamped bool
			synthesized, clamped = synth.Synthesize(excitation, p.Coefficients, p.Gain)
			if clamped {
				d.log.WithFields(logrus.Fields{
					"frame": i,
					"gain":  p.Gain,
				}).Warn("unstable synthesis filter, output clamped")
			}
		}

		if err := recon.Add(deemph.Filter(synthesized), i*stride); err != nil {
			return Signal{}, err
		}
	}

	return Signal{
		Samples:    recon.Finalize(int(stream.Header.SampleCount)),
		SampleRate: cfg.SampleRate,
	}, nil
}
