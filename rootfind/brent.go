package rootfind

import (
	"fmt"
	"math"
)

// Brent finds a root of f inside [a, b] with inverse quadratic interpolation,
// falling back to bisection whenever the interpolated step is unsafe.
func Brent(f Func, a, b float64, s Settings) (x float64, err error) {
	var (
		fa, fb = f(a), f(b)
		c, fc  float64
		d, e   float64
	)
	s = s.withDefaults()
	switch {
	case isBad(fa):
		return a, &Error{Method: "brent", X: a, Residual: fa, Err: fmt.Errorf("bad residual: %w", ErrNoConvergence)}
	case isBad(fb):
		return b, &Error{Method: "brent", X: b, Residual: fb, Err: fmt.Errorf("bad residual: %w", ErrNoConvergence)}
	case fa == 0:
		return a, nil
	case fb == 0:
		return b, nil
	case sameSign(fa, fb):
		x, res := b, fb
		if math.Abs(fa) < math.Abs(fb) {
			x, res = a, fa
		}
		return x, &Error{Method: "brent", X: x, Residual: res, Err: ErrNoBracket}
	}
	c, fc = b, fb
	for iter := 0; iter < s.MaxIter; iter++ {
		if sameSign(fb, fc) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}
		tol1 := 2.*epsilon*math.Abs(b) + 0.5*s.XTol*math.Max(math.Abs(b), math.SmallestNonzeroFloat64)
		xm := 0.5 * (c - b)
		if math.Abs(xm) <= tol1 || fb == 0 || (s.FTol > 0 && math.Abs(fb) <= s.FTol) {
			return b, nil
		}
		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			var p, q float64
			sr := fb / fa
			if a == c {
				p = 2. * xm * sr
				q = 1. - sr
			} else {
				qa, r := fa/fc, fb/fc
				p = sr * (2.*xm*qa*(qa-r) - (b-a)*(r-1.))
				q = (qa - 1.) * (r - 1.) * (sr - 1.)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			if 2.*p < math.Min(3.*xm*q-math.Abs(tol1*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}
		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else {
			b += math.Copysign(tol1, xm)
		}
		if fb = f(b); isBad(fb) {
			return b, &Error{Method: "brent", Iter: iter + 1, X: b, Residual: fb, Err: fmt.Errorf("bad residual: %w", ErrNoConvergence)}
		}
	}
	return b, &Error{Method: "brent", Iter: s.MaxIter, X: b, Residual: fb, Err: ErrNoConvergence}
}

const epsilon = 2.220446049250313e-16
