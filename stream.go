package lpcvoc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// StreamHeader is the fixed little-endian header of an encoded stream.
// SampleCount records the original signal length so the decoder can trim
// the zero-padded tail of the final frame.
type StreamHeader struct {
	SampleRate     uint32
	Order          uint16
	FrameSize      uint32
	OverlapPercent uint8
	FrameCount     uint32
	SampleCount    uint32
}

const headerSize = 19

// recordSize is the encoded size of one parameter set:
// voiced:u8, pitch_period:u16, gain:f64, coefficients:[f64; order].
func recordSize(order int) int {
	return 1 + 2 + 8 + 8*order
}

// Stream is a complete encoded parameter stream: a header followed by
// FrameCount parameter sets, all sharing the header's order.
type Stream struct {
	Header StreamHeader
	Frames []Parameters
}

// Config reconstructs the codec configuration declared by the header.
func (s *Stream) Config() Config {
	return Config{
		SampleRate:     int(s.Header.SampleRate),
		Order:          int(s.Header.Order),
		FrameSize:      int(s.Header.FrameSize),
		OverlapPercent: int(s.Header.OverlapPercent),
	}
}

// MarshalBinary serializes the stream to the fixed wire layout.  It fails
// only on violated invariants (a frame whose coefficient count does not
// match the header order), never for well-formed parameter sets.
func (s *Stream) MarshalBinary() ([]byte, error) {
	order := int(s.Header.Order)
	buf := bytes.NewBuffer(make([]byte, 0, headerSize+len(s.Frames)*recordSize(order)))
	if err := binary.Write(buf, binary.LittleEndian, s.Header); err != nil {
		return nil, err
	}
	for i, p := range s.Frames {
		if len(p.Coefficients) != order {
			return nil, fmt.Errorf("frame %d has %d coefficients, header order is %d", i, len(p.Coefficients), order)
		}
		var voiced uint8
		var period uint16
		if v, ok := p.Source.(Voiced); ok {
			voiced = 1
			period = uint16(v.Period)
		}
		buf.WriteByte(voiced)
		var rec [10]byte
		binary.LittleEndian.PutUint16(rec[0:2], period)
		binary.LittleEndian.PutUint64(rec[2:10], math.Float64bits(p.Gain))
		buf.Write(rec[:])
		for _, c := range p.Coefficients {
			var w [8]byte
			binary.LittleEndian.PutUint64(w[:], math.Float64bits(c))
			buf.Write(w[:])
		}
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary parses an encoded stream, failing with an error wrapping
// ErrMalformedStream when the header fields are out of range, the byte
// count does not match FrameCount records of the declared order, or a
// voiced record carries a pitch period outside the lag range the header's
// sample rate and frame size admit.
func (s *Stream) UnmarshalBinary(data []byte) error {
	if len(data) < headerSize {
		return malformedf("%d bytes, want at least %d for the header", len(data), headerSize)
	}
	var hdr StreamHeader
	if err := binary.Read(bytes.NewReader(data[:headerSize]), binary.LittleEndian, &hdr); err != nil {
		return malformedf("reading header: %v", err)
	}

	cfg := Config{
		SampleRate:     int(hdr.SampleRate),
		Order:          int(hdr.Order),
		FrameSize:      int(hdr.FrameSize),
		OverlapPercent: int(hdr.OverlapPercent),
	}
	if err := cfg.Validate(); err != nil {
		return malformedf("header: %v", err)
	}

	order := int(hdr.Order)
	want := headerSize + int(hdr.FrameCount)*recordSize(order)
	if len(data) != want {
		return malformedf("%d bytes, want %d for %d frames of order %d", len(data), want, hdr.FrameCount, order)
	}

	cls := NewClassifier(cfg.SampleRate, cfg.FrameSize)
	frames := make([]Parameters, hdr.FrameCount)
	pos := headerSize
	for i := range frames {
		voiced := data[pos]
		period := binary.LittleEndian.Uint16(data[pos+1 : pos+3])
		gain := math.Float64frombits(binary.LittleEndian.Uint64(data[pos+3 : pos+11]))
		pos += 11

		if voiced > 1 {
			return malformedf("frame %d voiced flag %d, want 0 or 1", i, voiced)
		}
		var src Excitation = Unvoiced{}
		if voiced == 1 {
			if period == 0 {
				return malformedf("frame %d is voiced with zero pitch period", i)
			}
			if int(period) < cls.minLag || int(period) > cls.maxLag {
				return malformedf("frame %d pitch period %d outside lag range [%d, %d]", i, period, cls.minLag, cls.maxLag)
			}
			src = Voiced{Period: int(period)}
		}

		coeffs := make([]float64, order)
		for j := range coeffs {
			coeffs[j] = math.Float64frombits(binary.LittleEndian.Uint64(data[pos : pos+8]))
			pos += 8
		}
		frames[i] = Parameters{Coefficients: coeffs, Gain: gain, Source: src}
	}

	s.Header = hdr
	s.Frames = frames
	return nil
}
