// Package rootfind closes the scalar and small vector equations that every
// shock and nozzle stage reduces to.
package rootfind

import (
	"errors"
	"fmt"
	"math"
)

// Func is a scalar residual. A NaN return is treated as a failed evaluation.
type Func func(x float64) float64

type Settings struct {
	XTol    float64 // Relative tolerance on the root
	FTol    float64 // Absolute tolerance on the residual, zero disables
	MaxIter int
	MaxStep float64 // Newton only: clamp on each component of the update, zero disables
}

var DefaultSettings = Settings{
	XTol:    1.e-12,
	MaxIter: 200,
}

var (
	ErrNoConvergence = errors.New("no convergence")
	// ErrNoBracket is a kind of ErrNoConvergence
	ErrNoBracket = fmt.Errorf("root not bracketed: %w", ErrNoConvergence)
)

type Error struct {
	Method   string
	Iter     int
	X        float64 // Last iterate
	Residual float64 // Residual at X
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v after %d iterations (x = %g, residual = %g)",
		e.Method, e.Err, e.Iter, e.X, e.Residual)
}

func (e *Error) Unwrap() error { return e.Err }

func (s Settings) withDefaults() Settings {
	if s.XTol <= 0 {
		s.XTol = DefaultSettings.XTol
	}
	if s.MaxIter <= 0 {
		s.MaxIter = DefaultSettings.MaxIter
	}
	return s
}

func isBad(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}

func sameSign(a, b float64) bool {
	return (a > 0 && b > 0) || (a < 0 && b < 0)
}
