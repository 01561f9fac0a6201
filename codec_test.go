package lpcvoc

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rms(samples []float64) float64 {
	var e float64
	for _, x := range samples {
		e += x * x
	}
	return math.Sqrt(e / float64(len(samples)))
}

func TestDecoderSilence(t *testing.T) {
	signal := Signal{Samples: make([]float64, 2400), SampleRate: 8000}
	stream, err := NewEncoder(EncoderConfig{Logger: quietLogger()}).Encode(context.Background(), signal)
	require.NoError(t, err)

	decoded, err := NewDecoder(DecoderConfig{Logger: quietLogger()}).Decode(stream)
	require.NoError(t, err)
	require.Len(t, decoded.Samples, 2400)
	for i, x := range decoded.Samples {
		assert.Zero(t, x, "sample %d", i)
		require.False(t, math.IsNaN(x), "sample %d", i)
	}
}

func TestDecoderDeterministic(t *testing.T) {
	signal := Signal{Samples: testTone(4000, 200, 8000), SampleRate: 8000}
	stream, err := NewEncoder(EncoderConfig{Logger: quietLogger()}).Encode(context.Background(), signal)
	require.NoError(t, err)

	dec := DecoderConfig{Logger: quietLogger()}
	a, err := NewDecoder(dec).Decode(stream)
	require.NoError(t, err)
	b, err := NewDecoder(dec).Decode(stream)
	require.NoError(t, err)
	assert.Equal(t, a.Samples, b.Samples, "decoding must be reproducible for a fixed noise seed")
}

func TestDecoderFallingPitch(t *testing.T) {
	// Consecutive voiced frames whose pitch period drops below the phase
	// carried out of the previous frame must still decode cleanly.
	const order = 10
	stream := &Stream{
		Header: StreamHeader{
			SampleRate:     8000,
			Order:          order,
			FrameSize:      240,
			OverlapPercent: 50,
			FrameCount:     2,
			SampleCount:    360,
		},
		Frames: []Parameters{
			{Coefficients: make([]float64, order), Gain: 1, Source: Voiced{Period: 150}},
			{Coefficients: make([]float64, order), Gain: 1, Source: Voiced{Period: 40}},
		},
	}

	decoded, err := NewDecoder(DecoderConfig{Logger: quietLogger()}).Decode(stream)
	require.NoError(t, err)
	require.Len(t, decoded.Samples, 360)
	for i, x := range decoded.Samples {
		require.False(t, math.IsNaN(x), "sample %d", i)
	}
}

func TestCodecRoundTripTone(t *testing.T) {
	const sampleRate = 8000
	signal := Signal{Samples: testTone(6000, 200, sampleRate), SampleRate: sampleRate}

	stream, err := NewEncoder(EncoderConfig{
		Order:          10,
		OverlapPercent: 50,
		Logger:         quietLogger(),
	}).Encode(context.Background(), signal)
	require.NoError(t, err)

	// Through the wire format and back.
	data, err := stream.MarshalBinary()
	require.NoError(t, err)
	var parsed Stream
	require.NoError(t, parsed.UnmarshalBinary(data))

	decoded, err := NewDecoder(DecoderConfig{Logger: quietLogger()}).Decode(&parsed)
	require.NoError(t, err)

	// Exact length after trimming the padded tail.
	assert.Len(t, decoded.Samples, len(signal.Samples))
	assert.Equal(t, sampleRate, decoded.SampleRate)

	for i, x := range decoded.Samples {
		require.False(t, math.IsNaN(x) || math.IsInf(x, 0), "sample %d", i)
	}

	// Lossy but bounded: the resynthesized tone's level stays within an
	// order of magnitude of the input.
	in, out := rms(signal.Samples), rms(decoded.Samples)
	require.Greater(t, out, 0.0)
	ratio := out / in
	assert.Greater(t, ratio, 0.1, "decoded signal too quiet: rms %v vs %v", out, in)
	assert.Less(t, ratio, 10.0, "decoded signal too loud: rms %v vs %v", out, in)
}

func TestCodecRoundTripNoise(t *testing.T) {
	const sampleRate = 8000
	signal := Signal{Samples: testTone(4000, 0, sampleRate), SampleRate: sampleRate}
	// freq 0 leaves only the noise term; shape it so frames are unvoiced.
	for i := range signal.Samples {
		signal.Samples[i] *= 30 // lift noise well above the silence floor
	}

	stream, err := NewEncoder(EncoderConfig{Logger: quietLogger()}).Encode(context.Background(), signal)
	require.NoError(t, err)
	decoded, err := NewDecoder(DecoderConfig{Logger: quietLogger()}).Decode(stream)
	require.NoError(t, err)

	assert.Len(t, decoded.Samples, len(signal.Samples))
	in, out := rms(signal.Samples), rms(decoded.Samples)
	require.Greater(t, out, 0.0)
	ratio := out / in
	assert.Greater(t, ratio, 0.1)
	assert.Less(t, ratio, 10.0)
}
