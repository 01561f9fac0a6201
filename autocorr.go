package lpcvoc

import "github.com/mjibson/go-dsp/fft"

// Lag counts up to this size are cheaper by the direct sum than by a padded
// FFT round trip.
const autocorrFFTThreshold = 32

// Autocorrelate returns the biased short-time autocorrelation estimate
// r_k = sum_{n=0}^{N-1-k} x[n]*x[n+k] for k = 0..maxLag.  Small lag counts
// (the order+1 lags the LPC solver needs) use the direct sum; the extended
// range the pitch classifier needs goes through a zero-padded FFT, which
// computes the identical linear autocorrelation in O(N log N).
//
// There are no error conditions: an all-zero frame yields r_0 = 0, which
// the solver treats as the silence edge case.
func Autocorrelate(frame []float64, maxLag int) []float64 {
	if maxLag >= len(frame) {
		maxLag = len(frame) - 1
	}
	if maxLag < autocorrFFTThreshold {
		return autocorrelateDirect(frame, maxLag)
	}
	return autocorrelateFFT(frame, maxLag)
}

func autocorrelateDirect(frame []float64, maxLag int) []float64 {
	r := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		var sum float64
		for n := 0; n < len(frame)-k; n++ {
			sum += frame[n] * frame[n+k]
		}
		r[k] = sum
	}
	return r
}

// autocorrelateFFT computes r = IFFT(|FFT(x)|^2) with the frame zero-padded
// to at least twice its length so circular wrap-around never aliases into
// the requested lags.
func autocorrelateFFT(frame []float64, maxLag int) []float64 {
	size := 1
	for size < 2*len(frame) {
		size <<= 1
	}
	padded := make([]float64, size)
	copy(padded, frame)

	spectrum := fft.FFTReal(padded)
	power := make([]complex128, size)
	for i, c := range spectrum {
		re, im := real(c), imag(c)
		power[i] = complex(re*re+im*im, 0)
	}
	inv := fft.IFFT(power)

	r := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		r[k] = real(inv[k])
	}
	return r
}
