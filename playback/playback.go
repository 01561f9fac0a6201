// Package playback plays a decoded Signal on the default audio device.
// It is a thin collaborator over oto; the codec core never touches audio
// hardware.
package playback

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/hkxs/lpcvoc"
)

// Play blocks until the whole signal has been played.
func Play(signal lpcvoc.Signal) error {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   signal.SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	player := ctx.NewPlayer(bytes.NewReader(pcmBytes(signal.Samples)))
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	return player.Close()
}

func pcmBytes(samples []float64) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		v := int16(math.Max(-1, math.Min(1, s)) * 32767)
		binary.LittleEndian.PutUint16(out[2*i:], uint16(v))
	}
	return out
}
