package rootfind

import (
	"fmt"
	"math"
)

// Secant iterates from two starting points without requiring a bracket.
// It converges faster than Brent near a simple root but may wander off when
// started far from one, so callers check the returned root's range.
func Secant(f Func, x0, x1 float64, s Settings) (x float64, err error) {
	var (
		f0, f1 = f(x0), f(x1)
	)
	s = s.withDefaults()
	for iter := 0; iter < s.MaxIter; iter++ {
		if isBad(f1) || isBad(f0) {
			return x1, &Error{Method: "secant", Iter: iter, X: x1, Residual: f1, Err: fmt.Errorf("bad residual: %w", ErrNoConvergence)}
		}
		if f1 == 0 || (s.FTol > 0 && math.Abs(f1) <= s.FTol) {
			return x1, nil
		}
		den := f1 - f0
		if den == 0 {
			return x1, &Error{Method: "secant", Iter: iter, X: x1, Residual: f1, Err: fmt.Errorf("flat residual: %w", ErrNoConvergence)}
		}
		x2 := x1 - f1*(x1-x0)/den
		x0, f0 = x1, f1
		x1, f1 = x2, f(x2)
		if math.Abs(x1-x0) <= s.XTol*math.Abs(x1) {
			return x1, nil
		}
	}
	return x1, &Error{Method: "secant", Iter: s.MaxIter, X: x1, Residual: f1, Err: ErrNoConvergence}
}
