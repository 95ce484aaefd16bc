package rootfind

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// VecFunc fills fx with the residual of the system at x.
type VecFunc func(x, fx []float64)

// JacFunc fills the row-major Jacobian jac (len(x)*len(x)) at x.
type JacFunc func(x, jac []float64)

// Newton solves F(x) = 0 in place, starting from x. When J is nil the
// Jacobian is formed by forward differences.
func Newton(F VecFunc, J JacFunc, x []float64, s Settings) (iter int, err error) {
	var (
		n    = len(x)
		fx   = make([]float64, n)
		fp   = make([]float64, n)
		jac  = make([]float64, n*n)
		rhs  = make([]float64, n)
		jm   = mat.NewDense(n, n, jac)
		rv   = mat.NewVecDense(n, rhs)
		dx   mat.VecDense
		fmax float64
	)
	s = s.withDefaults()
	for iter = 0; iter < s.MaxIter; iter++ {
		F(x, fx)
		if fmax = normInf(fx); math.IsNaN(fmax) {
			return iter, &Error{Method: "newton", Iter: iter, X: x[0], Residual: fmax, Err: fmt.Errorf("bad residual: %w", ErrNoConvergence)}
		}
		if s.FTol > 0 && fmax <= s.FTol {
			return iter, nil
		}
		if J != nil {
			J(x, jac)
		} else {
			for j := 0; j < n; j++ {
				xj := x[j]
				h := math.Sqrt(epsilon) * math.Max(math.Abs(xj), 1.)
				x[j] = xj + h
				F(x, fp)
				x[j] = xj
				for i := 0; i < n; i++ {
					jac[i*n+j] = (fp[i] - fx[i]) / h
				}
			}
		}
		for i := range rhs {
			rhs[i] = -fx[i]
		}
		if err = dx.SolveVec(jm, rv); err != nil {
			if cond, ok := err.(mat.Condition); !ok || math.IsInf(float64(cond), 1) {
				return iter, &Error{Method: "newton", Iter: iter, X: x[0], Residual: fmax, Err: fmt.Errorf("singular jacobian: %w", ErrNoConvergence)}
			}
			err = nil
		}
		converged := true
		for j := 0; j < n; j++ {
			step := dx.AtVec(j)
			if s.MaxStep > 0 {
				step = math.Max(-s.MaxStep, math.Min(s.MaxStep, step))
			}
			x[j] += step
			if math.Abs(step) > s.XTol*math.Max(math.Abs(x[j]), 1.) {
				converged = false
			}
		}
		if converged {
			return iter + 1, nil
		}
	}
	F(x, fx)
	return iter, &Error{Method: "newton", Iter: iter, X: x[0], Residual: normInf(fx), Err: ErrNoConvergence}
}

func normInf(v []float64) (m float64) {
	for _, f := range v {
		if math.IsNaN(f) {
			return f
		}
		m = math.Max(m, math.Abs(f))
	}
	return
}
