package lpcvoc

import "fmt"

// windowFloor guards the overlap normalization against division by zero at
// positions no window meaningfully covers.
const windowFloor = 1e-8

type olaState int

const (
	olaIdle olaState = iota
	olaAccumulating
	olaFinalizing
	olaDone
)

// Reconstructor accumulates de-emphasized synthesized frames into one
// continuous output signal by overlap-add.  Each frame is shaped by the
// same Hamming window the framer used and summed in at its frame offset;
// finalization divides by the accumulated window sum so the combined gain
// across overlapping windows is unity, then trims the zero-padded tail to
// the stream's declared sample count.
//
// The reconstructor moves Idle -> Accumulating (per Add) -> Finalizing
// (while Finalize normalizes and trims) -> Done; adding once finalization
// has begun is a caller bug and is rejected.
type Reconstructor struct {
	window []float64
	acc    []float64
	wsum   []float64
	state  olaState
}

// NewReconstructor builds a reconstructor for frames windowed by win.
func NewReconstructor(win []float64) *Reconstructor {
	return &Reconstructor{window: win, state: olaIdle}
}

// Add accumulates one synthesized frame at its start offset in the output.
func (r *Reconstructor) Add(frame []float64, offset int) error {
	if r.state >= olaFinalizing {
		return fmt.Errorf("reconstructor already finalized")
	}
	if len(frame) != len(r.window) {
		return fmt.Errorf("frame length %d, want window length %d", len(frame), len(r.window))
	}
	if need := offset + len(frame); need > len(r.acc) {
		r.acc = append(r.acc, make([]float64, need-len(r.acc))...)
		r.wsum = append(r.wsum, make([]float64, need-len(r.wsum))...)
	}
	for i, x := range frame {
		r.acc[offset+i] += x * r.window[i]
		r.wsum[offset+i] += r.window[i]
	}
	r.state = olaAccumulating
	return nil
}

// Finalize normalizes the accumulated signal, trims it to sampleCount
// samples and marks the reconstructor done.
func (r *Reconstructor) Finalize(sampleCount int) []float64 {
	r.state = olaFinalizing
	if sampleCount > len(r.acc) {
		sampleCount = len(r.acc)
	}
	out := make([]float64, sampleCount)
	for i := range out {
		w := r.wsum[i]
		if w < windowFloor {
			w = windowFloor
		}
		out[i] = r.acc[i] / w
	}
	r.state = olaDone
	return out
}
