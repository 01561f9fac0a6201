package lpcvoc

import "math"

// silenceFloor is the r_0 below which a frame is treated as silence rather
// than solved.  Speech frames at any useful level sit many orders of
// magnitude above it.
const silenceFloor = 1e-10

// SolveLPC runs the Levinson-Durbin recursion on the autocorrelation lags
// r[0..order], solving the Toeplitz normal equations R*a = -r for the
// predictor coefficients a_1..a_p.  The returned gain is sqrt(E_p), the
// prediction-error energy after all p recursive steps (E_0 = r[0]).
//
// Two degenerate cases are recovered in place rather than failed:
//   - r[0] ~ 0 (silent frame): all-zero coefficients and zero gain are
//     returned immediately, so no reflection-coefficient denominator is
//     ever formed from near-zero energy.
//   - a recursion step meets an exactly zero error energy while r[0] > 0
//     (numerically singular system): coefficients solved so far are kept,
//     the remaining taps stay zero.
//
// The degenerate return is true in both cases so the caller can log a
// warning.  Output is fully determined by r; there is no randomness.
func SolveLPC(r []float64, order int) (coeffs []float64, gain float64, degenerate bool) {
	coeffs = make([]float64, order)
	if r[0] <= silenceFloor {
		return coeffs, 0, true
	}

	a := make([]float64, order+1)
	a[0] = 1
	energy := r[0]
	for i := 1; i <= order; i++ {
		acc := r[i]
		for j := 1; j < i; j++ {
			acc += a[j] * r[i-j]
		}
		if energy == 0 {
			degenerate = true
			break
		}
		k := -acc / energy

		// In-place coefficient update; pairs (j, i-j) swap symmetrically.
		for j := 1; j <= i/2; j++ {
			aj, ai := a[j], a[i-j]
			a[j] = aj + k*ai
			a[i-j] = ai + k*aj
		}
		a[i] = k

		energy *= 1 - k*k
		if energy < 0 {
			energy = 0
		}
	}

	copy(coeffs, a[1:])
	return coeffs, math.Sqrt(energy), degenerate
}
