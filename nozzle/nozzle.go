// Package nozzle expands the reservoir gas isentropically through a
// converging-diverging nozzle.
package nozzle

import (
	"errors"
	"fmt"
	"math"

	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/gas"
	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/ideal"
	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/rootfind"
)

// BranchTol is the least excess of M7 over one accepted as supersonic
const BranchTol = 1.e-4

var (
	ErrBranchAmbiguity = errors.New("supersonic branch indistinguishable from subsonic")
	ErrAreaRatio       = errors.New("area ratio must be at least one")
	ErrExitMach        = errors.New("exit Mach number must exceed one")
)

// Expansion is a point of the isentrope from the reservoir
type Expansion struct {
	State gas.State
	V, M  float64
}

func (e Expansion) MassFlux() float64 { return e.State.Rho * e.V }

// Pitot is the pitot pressure, using the frozen isentropic exponent
func (e Expansion) Pitot() float64 {
	return e.State.P * ideal.PitotRatio(e.State.Gamma, e.M)
}

// Relax brings s5 to pressure pe at constant entropy
func Relax(m gas.Model, s5 gas.State, pe float64, set rootfind.Settings) (gas.State, error) {
	if !(pe > 0) {
		return gas.State{}, fmt.Errorf("relaxation pressure %g", pe)
	}
	guessT := s5.T * math.Pow(pe/s5.P, (s5.GammaEq-1)/s5.GammaEq)
	st, err := gas.StateAt(m, pe, s5.S, guessT, set)
	if err != nil {
		return st, fmt.Errorf("relaxation to %g Pa: %w", pe, err)
	}
	return st, nil
}

// Expand evaluates the isentrope of the reservoir s0 at pressure p, with the
// velocity from the steady energy equation.
func Expand(m gas.Model, s0 gas.State, p float64, set rootfind.Settings) (e Expansion, err error) {
	guessT := s0.T * math.Pow(p/s0.P, (s0.GammaEq-1)/s0.GammaEq)
	if e.State, err = gas.StateAt(m, p, s0.S, guessT, set); err != nil {
		return
	}
	dh := s0.H - e.State.H
	if dh < 0 {
		// Round off at the reservoir
		dh = 0
	}
	e.V = math.Sqrt(2 * dh)
	e.M = e.V / e.State.A
	return
}

// upper limit on p/p0 for expanded states
const xTop = 1 - 1.e-9

func solve(m gas.Model, s0 gas.State, set rootfind.Settings,
	x0, lower, upper float64, res func(e Expansion) float64) (e Expansion, err error) {
	var (
		inner error
	)
	f := func(x float64) float64 {
		ex, err := Expand(m, s0, x*s0.P, set)
		if err != nil {
			inner = err
			return math.NaN()
		}
		return res(ex)
	}
	a, b := math.Max(lower, 0.8*x0), math.Min(upper, 1.2*x0)
	x, err := rootfind.Find(f, a, b, lower, upper, set)
	if inner != nil {
		return e, inner
	}
	if err != nil {
		return
	}
	return Expand(m, s0, x*s0.P, set)
}

// Throat finds the sonic point of the isentropic expansion from s0
func Throat(m gas.Model, s0 gas.State, set rootfind.Settings) (e Expansion, err error) {
	g := s0.GammaEq
	xStar := math.Pow(2/(g+1), g/(g-1))
	e, err = solve(m, s0, set, xStar, 1.e-6, xTop,
		func(ex Expansion) float64 { return ex.M - 1 })
	if err != nil {
		return e, fmt.Errorf("sonic throat: %w", err)
	}
	return
}

// Exit finds the supersonic state where the flow area is ar times the throat area
func Exit(m gas.Model, s0 gas.State, throat Expansion, ar float64, set rootfind.Settings) (e Expansion, err error) {
	switch {
	case !(ar >= 1) || math.IsInf(ar, 0):
		return e, fmt.Errorf("%w: %g", ErrAreaRatio, ar)
	case ar == 1:
		return throat, nil
	}
	var (
		mf6  = throat.MassFlux()
		x6   = throat.State.P / s0.P
		g    = throat.State.GammaEq
		x0   = 0.5 * x6
		xMax = x6 * (1 - 1.e-9)
	)
	if M, merr := ideal.MachFromAreaRatio(g, ar, true); merr == nil {
		x0 = x6 * ideal.StagnationPressureRatio(g, 1) / ideal.StagnationPressureRatio(g, M)
	}
	e, err = solve(m, s0, set, math.Min(x0, xMax), 1.e-14, xMax,
		func(ex Expansion) float64 { return (ex.MassFlux()*ar - mf6) / mf6 })
	if err != nil {
		return e, fmt.Errorf("nozzle exit at area ratio %g: %w", ar, err)
	}
	if e.M <= 1+BranchTol {
		return e, fmt.Errorf("%w: M = %.9f at area ratio %g", ErrBranchAmbiguity, e.M, ar)
	}
	return
}

// ExitMach finds the supersonic state with Mach number M7 and reports the area
// ratio it requires.
func ExitMach(m gas.Model, s0 gas.State, throat Expansion, M7 float64, set rootfind.Settings) (e Expansion, ar float64, err error) {
	if !(M7 > 1) || math.IsInf(M7, 0) {
		return e, 0, fmt.Errorf("%w: %g", ErrExitMach, M7)
	}
	var (
		x6   = throat.State.P / s0.P
		g    = throat.State.GammaEq
		x0   = x6 * ideal.StagnationPressureRatio(g, 1) / ideal.StagnationPressureRatio(g, M7)
		xMax = x6 * (1 - 1.e-9)
	)
	e, err = solve(m, s0, set, math.Min(x0, xMax), 1.e-14, xMax,
		func(ex Expansion) float64 { return ex.M - M7 })
	if err != nil {
		return e, 0, fmt.Errorf("nozzle exit at Mach %g: %w", M7, err)
	}
	ar = throat.MassFlux() / e.MassFlux()
	return
}
