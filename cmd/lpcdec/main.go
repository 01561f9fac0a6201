// Command lpcdec decodes an LPC parameter stream back into a WAV file.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/hkxs/lpcvoc"
	"github.com/hkxs/lpcvoc/playback"
	"github.com/hkxs/lpcvoc/wavio"
)

func main() {
	os.Exit(run())
}

func run() int {
	play := flag.Bool("play", false, "play the decoded signal")
	debug := flag.BoolP("debug", "d", false, "enable debug messages")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] encoded_file audio_file\n\nDecode an LPC parameter stream into a .wav file.\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		return 1
	}
	encodedFile, audioFile := flag.Arg(0), flag.Arg(1)

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *debug {
		log.SetLevel(logrus.DebugLevel)
	}

	log.WithField("file", encodedFile).Info("decoding")
	data, err := os.ReadFile(encodedFile)
	if err != nil {
		log.WithError(err).Error("reading input")
		return 1
	}

	var stream lpcvoc.Stream
	if err := stream.UnmarshalBinary(data); err != nil {
		log.WithError(err).Error("parsing stream")
		return 1
	}

	decoder := lpcvoc.NewDecoder(lpcvoc.DecoderConfig{Logger: log})
	signal, err := decoder.Decode(&stream)
	if err != nil {
		log.WithError(err).Error("decoding")
		return 1
	}

	if err := wavio.Store(signal, audioFile); err != nil {
		log.WithError(err).Error("writing output")
		return 1
	}
	log.WithFields(logrus.Fields{
		"samples": len(signal.Samples),
		"file":    audioFile,
	}).Info("decoded")

	if *play {
		if err := playback.Play(signal); err != nil {
			log.WithError(err).Error("playback")
			return 1
		}
	}
	return 0
}
