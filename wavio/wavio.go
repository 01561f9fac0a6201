// Package wavio is the PCM collaborator: it loads WAV files into Signals
// and writes Signals back out as 16-bit mono WAV.  The codec core never
// touches the filesystem; everything file-shaped goes through here.
package wavio

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/sirupsen/logrus"

	"github.com/hkxs/lpcvoc"
)

// Load reads a PCM WAV file into a Signal with samples normalized to
// [-1, 1].  Multi-channel input is downmixed to mono by averaging, since
// the codec is single-channel.
func Load(path string) (lpcvoc.Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return lpcvoc.Signal{}, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return lpcvoc.Signal{}, fmt.Errorf("%s: not a valid WAV file", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return lpcvoc.Signal{}, fmt.Errorf("reading %s: %w", path, err)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		return lpcvoc.Signal{}, fmt.Errorf("%s: no channels", path)
	}
	if channels > 1 {
		logrus.WithFields(logrus.Fields{
			"file":     path,
			"channels": channels,
		}).Info("downmixing to mono")
	}

	scale := 1.0 / float64(int(1)<<(dec.BitDepth-1))
	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for ch := 0; ch < channels; ch++ {
			sum += float64(buf.Data[i*channels+ch])
		}
		samples[i] = sum / float64(channels) * scale
	}

	return lpcvoc.Signal{Samples: samples, SampleRate: buf.Format.SampleRate}, nil
}

// Store writes a Signal as a 16-bit mono PCM WAV file.  Samples are
// clamped to [-1, 1] before quantization.
func Store(signal lpcvoc.Signal, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(f, signal.SampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: signal.SampleRate},
		Data:           make([]int, len(signal.Samples)),
		SourceBitDepth: 16,
	}
	for i, s := range signal.Samples {
		buf.Data[i] = quantize16(s)
	}

	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finalizing %s: %w", path, err)
	}
	return f.Close()
}

func quantize16(s float64) int {
	if s > 1 {
		s = 1
	} else if s < -1 {
		s = -1
	}
	return int(s * 32767)
}
