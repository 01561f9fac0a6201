package lpcvoc

import (
	"context"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// EncoderConfig carries the analysis settings and the collaborator logger.
// Zero values fall back to the documented defaults.
type EncoderConfig struct {
	Order          int
	FrameSize      int // 0 derives 30 ms from the input sample rate
	OverlapPercent int
	Workers        int // 0 uses GOMAXPROCS
	Logger         logrus.FieldLogger
}

// Encoder analyzes a signal frame by frame into LPC parameter sets.  Frames
// are independent, so analysis runs on parallel workers; results are placed
// by frame index, which keeps the output stream deterministic for a given
// input and configuration.
type Encoder struct {
	cfg EncoderConfig
	log logrus.FieldLogger
}

// NewEncoder creates an encoder.  Configuration is validated against the
// signal at Encode time, since the default frame size depends on the input
// sample rate.
func NewEncoder(cfg EncoderConfig) *Encoder {
	if cfg.Order == 0 {
		cfg.Order = DefaultOrder
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Encoder{cfg: cfg, log: log}
}

// Encode runs the full analysis pipeline over the signal and returns the
// encoded parameter stream.  Per-frame degeneracies (silence, singular
// systems) are recovered with zeroed parameters and logged; only an invalid
// configuration fails the call.
func (e *Encoder) Encode(ctx context.Context, signal Signal) (*Stream, error) {
	cfg := Config{
		SampleRate:     signal.SampleRate,
		Order:          e.cfg.Order,
		FrameSize:      e.cfg.FrameSize,
		OverlapPercent: e.cfg.OverlapPercent,
	}
	// Validate here, not just inside the framer: it fills in the default
	// frame size, which the classifier and header below need too.
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	framer, err := NewFramer(signal, cfg)
	if err != nil {
		return nil, err
	}
	classifier := NewClassifier(cfg.SampleRate, cfg.FrameSize)

	maxLag := cfg.Order
	if classifier.MaxLag() > maxLag {
		maxLag = classifier.MaxLag()
	}

	numFrames := framer.NumFrames()
	frames := make([]Parameters, numFrames)

	workers := e.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < numFrames; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			frame := framer.Frame(i)
			emphasized := PreEmphasize(frame.Samples)
			r := Autocorrelate(emphasized, maxLag)

			coeffs, gain, degenerate := SolveLPC(r[:cfg.Order+1], cfg.Order)
			if degenerate {
				e.log.WithFields(logrus.Fields{
					"frame":  i,
					"offset": frame.Offset,
					"r0":     r[0],
				}).Warn("degenerate frame, parameters zeroed")
			}

			src := classifier.Classify(r)
			if v, ok := src.(Voiced); ok {
				e.log.WithFields(logrus.Fields{
					"frame": i,
					"pitch": v.Period,
					"gain":  gain,
				}).Debug("voiced frame")
			}

			frames[i] = Parameters{Coefficients: coeffs, Gain: gain, Source: src}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Stream{
		Header: StreamHeader{
			SampleRate:     uint32(cfg.SampleRate),
			Order:          uint16(cfg.Order),
			FrameSize:      uint32(cfg.FrameSize),
			OverlapPercent: uint8(cfg.OverlapPercent),
			FrameCount:     uint32(numFrames),
			SampleCount:    uint32(len(signal.Samples)),
		},
		Frames: frames,
	}, nil
}
