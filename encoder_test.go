package lpcvoc

import (
	"context"
	"io"
	"math"
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testTone(n int, freq float64, sampleRate int) []float64 {
	rng := rand.New(rand.NewSource(21))
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.5*math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)) +
			0.01*rng.NormFloat64()
	}
	return out
}

func TestEncoderRejectsInvalidConfig(t *testing.T) {
	signal := Signal{Samples: make([]float64, 1000), SampleRate: 8000}
	tests := []struct {
		name string
		cfg  EncoderConfig
	}{
		{"frame size equal to order", EncoderConfig{Order: 10, FrameSize: 10}},
		{"overlap 100", EncoderConfig{Order: 10, FrameSize: 240, OverlapPercent: 100}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Logger = quietLogger()
			_, err := NewEncoder(tc.cfg).Encode(context.Background(), signal)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestEncoderHeader(t *testing.T) {
	signal := Signal{Samples: make([]float64, 1000), SampleRate: 8000}
	enc := NewEncoder(EncoderConfig{OverlapPercent: 50, Logger: quietLogger()})
	stream, err := enc.Encode(context.Background(), signal)
	require.NoError(t, err)

	assert.Equal(t, uint32(8000), stream.Header.SampleRate)
	assert.Equal(t, uint16(DefaultOrder), stream.Header.Order)
	assert.Equal(t, uint32(240), stream.Header.FrameSize) // 30 ms default
	assert.Equal(t, uint8(50), stream.Header.OverlapPercent)
	assert.Equal(t, uint32(1000), stream.Header.SampleCount)
	assert.Equal(t, int(stream.Header.FrameCount), len(stream.Frames))
}

func TestEncoderDeterministic(t *testing.T) {
	signal := Signal{Samples: testTone(4000, 200, 8000), SampleRate: 8000}
	cfg := EncoderConfig{Order: 10, OverlapPercent: 50, Workers: 4, Logger: quietLogger()}

	first, err := NewEncoder(cfg).Encode(context.Background(), signal)
	require.NoError(t, err)
	second, err := NewEncoder(cfg).Encode(context.Background(), signal)
	require.NoError(t, err)

	a, err := first.MarshalBinary()
	require.NoError(t, err)
	b, err := second.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, a, b, "same input and config must yield byte-identical streams")
}

func TestEncoderSilence(t *testing.T) {
	signal := Signal{Samples: make([]float64, 2400), SampleRate: 8000}
	enc := NewEncoder(EncoderConfig{Order: 10, OverlapPercent: 50, Logger: quietLogger()})
	stream, err := enc.Encode(context.Background(), signal)
	require.NoError(t, err)

	for i, p := range stream.Frames {
		assert.Zero(t, p.Gain, "frame %d gain", i)
		assert.IsType(t, Unvoiced{}, p.Source, "frame %d voicing", i)
		for k, c := range p.Coefficients {
			assert.Zero(t, c, "frame %d tap %d", i, k)
		}
	}
}

func TestEncoderVoicedTone(t *testing.T) {
	// 200 Hz at 8 kHz is a 40-sample period, inside the 20..160 lag range.
	signal := Signal{Samples: testTone(4000, 200, 8000), SampleRate: 8000}
	enc := NewEncoder(EncoderConfig{Order: 10, OverlapPercent: 50, Logger: quietLogger()})
	stream, err := enc.Encode(context.Background(), signal)
	require.NoError(t, err)

	voiced := 0
	for _, p := range stream.Frames {
		if v, ok := p.Source.(Voiced); ok {
			voiced++
			assert.InDelta(t, 40, v.Period, 2)
		}
	}
	assert.Greater(t, voiced, len(stream.Frames)/2, "a steady tone should be mostly voiced")
}
