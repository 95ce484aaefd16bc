// Package shock solves the real gas jump conditions across the incident and
// reflected shocks of a shock tube.
package shock

import (
	"errors"
	"fmt"
	"math"

	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/gas"
	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/ideal"
	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/rootfind"
)

var ErrInvalidShock = errors.New("invalid shock condition")

// Jump is the state behind a normal shock moving at Vs into gas at rest
type Jump struct {
	State gas.State
	Ms    float64 // Vs over the upstream sound speed
	U2    float64 // Downstream speed relative to the shock
	V2    float64 // Downstream gas speed in the lab frame, Vs - U2
	Vg    float64 // Gas speed behind the shock, equal to V2
	Eps   float64 // Density ratio rho1/rho2
}

// Incident solves mass, momentum and energy conservation across a shock
// travelling at Vs into s1. In the shock frame the upstream gas arrives at Vs
// and the density ratio eps = rho1/rho2 is the single unknown:
//
//	p2 = p1 + rho1 Vs^2 (1 - eps)
//	h2 = h1 + Vs^2 (1 - eps^2)/2
//
// with rho2 = rho(h2, p2) closing the system.
func Incident(m gas.Model, s1 gas.State, Vs float64, set rootfind.Settings) (j Jump, err error) {
	if !(Vs > 0) || math.IsInf(Vs, 0) {
		return j, fmt.Errorf("%w: shock speed %g", ErrInvalidShock, Vs)
	}
	var (
		rho1   = s1.Rho
		Ms     = Vs / s1.A
		guessT = s1.T
		lo, hi = 1.e-3, 1 - 1.e-6
		inner  error
		st     gas.State
	)
	if jump, e := ideal.NormalShock(s1.Gamma, Ms); e == nil {
		epsIdeal := 1 / jump.Rho21
		hi = epsIdeal + 0.5*(1-epsIdeal)
		guessT = s1.T * jump.T21
	}
	post := func(eps float64) (st gas.State, err error) {
		p2 := s1.P + rho1*Vs*Vs*(1-eps)
		h2 := s1.H + 0.5*Vs*Vs*(1-eps*eps)
		if st, err = gas.StateAtEnthalpy(m, p2, h2, guessT, set); err == nil {
			guessT = st.T
		}
		return
	}
	f := func(eps float64) float64 {
		st, e := post(eps)
		if e != nil {
			inner = e
			return math.NaN()
		}
		return rho1/st.Rho - eps
	}
	eps, err := rootfind.Brent(f, lo, hi, set)
	if inner != nil {
		return j, fmt.Errorf("%w: Vs = %g: %w", ErrInvalidShock, Vs, inner)
	}
	if err != nil {
		return j, fmt.Errorf("%w: Vs = %g (Ms = %.4g): %w", ErrInvalidShock, Vs, Ms, err)
	}
	if st, err = post(eps); err != nil {
		return
	}
	j = Jump{
		State: st,
		Ms:    Ms,
		U2:    eps * Vs,
		V2:    (1 - eps) * Vs,
		Vg:    (1 - eps) * Vs,
		Eps:   eps,
	}
	return
}

// Reflection is the stagnant state behind the shock reflected from the end wall
type Reflection struct {
	State gas.State
	Vr    float64 // Reflected shock speed in the lab frame
	Mr    float64 // Reflected shock Mach number relative to the incoming gas
}

// Reflected finds the reflected shock speed Vr that brings gas arriving at Vg
// to rest. In the reflected shock frame the gas enters at Vr + Vg and must
// leave at Vr.
func Reflected(m gas.Model, s2 gas.State, Vg float64, set rootfind.Settings) (r Reflection, err error) {
	if !(Vg > 0) || math.IsInf(Vg, 0) {
		return r, fmt.Errorf("%w: gas speed %g toward the end wall", ErrInvalidShock, Vg)
	}
	// Vr runs from just above sonic upward; a weak reflection sits close to the floor
	var (
		floor = math.Max(1.e-3*Vg, (1+1.e-4)*s2.A-Vg)
		lo    = math.Max(floor, 1.05*s2.A-Vg)
		hi    = math.Max(Vg, 1.6*lo)
		inner error
	)
	f := func(Vr float64) float64 {
		j, e := Incident(m, s2, Vr+Vg, set)
		if e != nil {
			inner = e
			return math.NaN()
		}
		return j.U2 - Vr
	}
	Vr, err := rootfind.Find(f, lo, hi, floor, 10*(Vg+s2.A), set)
	if inner != nil {
		return r, fmt.Errorf("reflected shock: %w", inner)
	}
	if err != nil {
		return r, fmt.Errorf("%w: reflected shock for Vg = %g: %w", ErrInvalidShock, Vg, err)
	}
	j, err := Incident(m, s2, Vr+Vg, set)
	if err != nil {
		return
	}
	r = Reflection{
		State: j.State,
		Vr:    Vr,
		Mr:    j.Ms,
	}
	return
}
