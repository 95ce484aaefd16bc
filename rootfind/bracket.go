package rootfind

import (
	"math"
)

const expandFactor = 1.6

// Expand grows [a, b] geometrically until f changes sign across it, never
// leaving [lower, upper]. The interval must lie in positive numbers, which holds
// for the temperatures, pressures and ratios the stages search over.
func Expand(f Func, a, b, lower, upper float64, tries int) (lo, hi float64, err error) {
	var (
		fa, fb = f(a), f(b)
	)
	if a > b {
		a, b = b, a
		fa, fb = fb, fa
	}
	for n := 0; n < tries; n++ {
		if isBad(fa) || isBad(fb) {
			break
		}
		if !sameSign(fa, fb) {
			return a, b, nil
		}
		atMin, atMax := a <= lower, b >= upper
		if atMin && atMax {
			break
		}
		if (math.Abs(fa) < math.Abs(fb) && !atMin) || atMax {
			a = math.Max(lower, a/expandFactor)
			fa = f(a)
		} else {
			b = math.Min(upper, b*expandFactor)
			fb = f(b)
		}
	}
	x, res := b, fb
	if math.Abs(fa) < math.Abs(fb) {
		x, res = a, fa
	}
	return a, b, &Error{Method: "expand", Iter: tries, X: x, Residual: res, Err: ErrNoBracket}
}

// Find brackets the root starting from [a, b] and polishes it with Brent.
func Find(f Func, a, b, lower, upper float64, s Settings) (x float64, err error) {
	var (
		lo, hi float64
	)
	if lo, hi, err = Expand(f, a, b, lower, upper, 60); err != nil {
		return
	}
	return Brent(f, lo, hi, s)
}
