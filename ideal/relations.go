// Package ideal holds the closed form relations of a calorically perfect gas.
// They serve as first guesses and brackets for the real gas stages and as
// reference solutions in tests.
package ideal

import (
	"errors"
	"fmt"
	"math"

	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/rootfind"
	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/utils"
)

var ErrSubsonic = errors.New("shock Mach number must exceed one")

// Jump is the set of static ratios across a normal shock, downstream over upstream
type Jump struct {
	P21, Rho21, T21 float64
	M2              float64 // Downstream Mach number in the shock frame
}

// NormalShock is the Rankine-Hugoniot solution for upstream Mach number M1
func NormalShock(gamma, M1 float64) (j Jump, err error) {
	if !(M1 > 1) {
		return j, fmt.Errorf("%w: M1 = %g", ErrSubsonic, M1)
	}
	var (
		gp1, gm1 = gamma + 1, gamma - 1
		M12      = M1 * M1
	)
	j.P21 = 1 + 2*gamma/gp1*(M12-1)
	j.Rho21 = gp1 * M12 / (gm1*M12 + 2)
	j.T21 = j.P21 / j.Rho21
	j.M2 = math.Sqrt((gm1*M12 + 2) / (2*gamma*M12 - gm1))
	return
}

// ReflectedShock returns the Mach number of the reflected shock relative to
// the gas behind the incident shock, and the pressure ratio p5/p2.
func ReflectedShock(gamma, Ms float64) (Mr, P52 float64, err error) {
	if !(Ms > 1) {
		return 0, 0, fmt.Errorf("%w: Ms = %g", ErrSubsonic, Ms)
	}
	var (
		Ms2 = Ms * Ms
		k   = Ms / (Ms2 - 1) * math.Sqrt(1+2*(gamma-1)/utils.POW(gamma+1, 2)*(Ms2-1)*(gamma+1/Ms2))
	)
	// Mr/(Mr^2 - 1) = k
	Mr = (1 + math.Sqrt(1+4*k*k)) / (2 * k)
	P52 = 1 + 2*gamma/(gamma+1)*(Mr*Mr-1)
	return
}

// StagnationPressureRatio is p0/p for isentropic deceleration from Mach M
func StagnationPressureRatio(gamma, M float64) float64 {
	return math.Pow(1+0.5*(gamma-1)*M*M, gamma/(gamma-1))
}

// PitotRatio is the pitot pressure over static pressure. Supersonic flow passes
// a normal shock first (Rayleigh pitot formula).
func PitotRatio(gamma, M float64) float64 {
	if M <= 1 {
		return StagnationPressureRatio(gamma, M)
	}
	var (
		M2 = M * M
	)
	return math.Pow(utils.POW(gamma+1, 2)*M2/(4*gamma*M2-2*(gamma-1)), gamma/(gamma-1)) *
		(1 - gamma + 2*gamma*M2) / (gamma + 1)
}

// AreaRatio is A/A* at Mach M
func AreaRatio(gamma, M float64) float64 {
	return math.Pow(2/(gamma+1)*(1+0.5*(gamma-1)*M*M), 0.5*(gamma+1)/(gamma-1)) / M
}

// MachFromAreaRatio inverts AreaRatio on the requested branch
func MachFromAreaRatio(gamma, ar float64, supersonic bool) (M float64, err error) {
	if !(ar >= 1) {
		return 0, fmt.Errorf("area ratio %g below one", ar)
	}
	if ar == 1 {
		return 1, nil
	}
	f := func(M float64) float64 { return AreaRatio(gamma, M) - ar }
	if supersonic {
		return rootfind.Find(f, 1, 2, 1, 1.e3, rootfind.DefaultSettings)
	}
	return rootfind.Brent(f, 1.e-9, 1, rootfind.DefaultSettings)
}
