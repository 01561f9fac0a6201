// Command lpcenc encodes a WAV file into an LPC parameter stream.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/hkxs/lpcvoc"
	"github.com/hkxs/lpcvoc/wavio"
)

func main() {
	os.Exit(run())
}

func run() int {
	order := flag.Int("order", lpcvoc.DefaultOrder, "order of the LPC filter")
	frameSize := flag.Int("frame_size", 0, "frame size in samples; defaults to a 30 ms window at the input sample rate")
	overlap := flag.Int("overlap", lpcvoc.DefaultOverlapPercent, "frame overlap as a percentage (0-99)")
	debug := flag.BoolP("debug", "d", false, "enable debug messages")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] audio_file encoded_file\n\nEncode a .wav signal using LPC.\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		return 1
	}
	audioFile, encodedFile := flag.Arg(0), flag.Arg(1)

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *debug {
		log.SetLevel(logrus.DebugLevel)
	}

	log.WithField("file", audioFile).Info("encoding")
	signal, err := wavio.Load(audioFile)
	if err != nil {
		log.WithError(err).Error("loading input")
		return 1
	}

	encoder := lpcvoc.NewEncoder(lpcvoc.EncoderConfig{
		Order:          *order,
		FrameSize:      *frameSize,
		OverlapPercent: *overlap,
		Logger:         log,
	})
	stream, err := encoder.Encode(context.Background(), signal)
	if err != nil {
		log.WithError(err).Error("encoding")
		return 1
	}

	data, err := stream.MarshalBinary()
	if err != nil {
		log.WithError(err).Error("serializing stream")
		return 1
	}
	if err := os.WriteFile(encodedFile, data, 0o644); err != nil {
		log.WithError(err).Error("writing output")
		return 1
	}

	log.WithFields(logrus.Fields{
		"frames": stream.Header.FrameCount,
		"bytes":  len(data),
		"file":   encodedFile,
	}).Info("encoded")
	return 0
}
