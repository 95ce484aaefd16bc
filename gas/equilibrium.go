package gas

import (
	"fmt"
	"math"

	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/rootfind"
)

// Species order of an equilibrium air composition
const (
	iN2 = iota
	iO2
	iNO
	iN
	iO
	iAr
	nAir
)

var airSpecies = [nAir]*Species{N2, O2, NO, N, O, Ar}

// EquilibriumAir is N2/O2/Ar air in chemical equilibrium with NO, N and O.
// The element ratios are fixed by the cold composition.
type EquilibriumAir struct {
	rNO, rArO float64 // N atoms per O atom, Ar atoms per O atom
	visc      Sutherland
	Settings  rootfind.Settings
	// Relative step for the equilibrium derivatives
	Delta float64
}

func NewEquilibriumAir() *EquilibriumAir {
	xN2, xO2, xAr := AirComposition[0].X, AirComposition[1].X, AirComposition[2].X
	return &EquilibriumAir{
		rNO:      xN2 / xO2,
		rArO:     xAr / (2 * xO2),
		visc:     SutherlandMap["air"],
		Settings: rootfind.Settings{XTol: 1.e-12, MaxIter: 100, MaxStep: 2},
		Delta:    1.e-4,
	}
}

func (ea *EquilibriumAir) Name() string { return "air" }

// Composition returns the equilibrium mole fractions at (T, p), ordered
// N2, O2, NO, N, O, Ar.
func (ea *EquilibriumAir) Composition(T, p float64) (x [nAir]float64, err error) {
	if err = checkTP(T, p); err != nil {
		return
	}
	var (
		P = p / PRef
		g [nAir]float64
	)
	for i, sp := range airSpecies {
		g[i] = sp.GRT(T)
	}
	// Kp for O2 = 2O, N2 = 2N, N2 + O2 = 2NO
	K1 := math.Exp(-(2*g[iO] - g[iO2]))
	K2 := math.Exp(-(2*g[iN] - g[iN2]))
	K3 := math.Exp(-(2*g[iNO] - g[iN2] - g[iO2]))
	fill := func(y []float64) {
		x[iO2], x[iN2] = math.Exp(y[0]), math.Exp(y[1])
		x[iO] = math.Sqrt(K1 * x[iO2] / P)
		x[iN] = math.Sqrt(K2 * x[iN2] / P)
		x[iNO] = math.Sqrt(K3 * x[iO2] * x[iN2])
		x[iAr] = ea.rArO * (2*x[iO2] + x[iO] + x[iNO])
	}
	F := func(y, fy []float64) {
		fill(y)
		var sum float64
		for _, xi := range x {
			sum += xi
		}
		fy[0] = sum - 1
		fy[1] = (2*x[iN2] + x[iN] + x[iNO]) - ea.rNO*(2*x[iO2]+x[iO]+x[iNO])
	}
	J := func(y, jac []float64) {
		fill(y)
		dO := 2*x[iO2] + 0.5*x[iO] + 0.5*x[iNO]
		jac[0] = x[iO2] + 0.5*x[iO] + 0.5*x[iNO] + ea.rArO*dO
		jac[1] = x[iN2] + 0.5*x[iN] + 0.5*x[iNO] + ea.rArO*0.5*x[iNO]
		jac[2] = 0.5*x[iNO] - ea.rNO*dO
		jac[3] = 2*x[iN2] + 0.5*x[iN] + 0.5*x[iNO] - ea.rNO*0.5*x[iNO]
	}
	y := []float64{math.Log(AirComposition[1].X), math.Log(AirComposition[0].X)}
	if _, err = rootfind.Newton(F, J, y, ea.Settings); err != nil {
		return x, fmt.Errorf("equilibrium composition at T = %g, p = %g: %w", T, p, err)
	}
	fill(y)
	var sum float64
	for _, xi := range x {
		sum += xi
	}
	for i := range x {
		x[i] /= sum
	}
	return
}

type frozen struct {
	rho, h, s, cp, r float64
	x                [nAir]float64
}

func (ea *EquilibriumAir) frozenAt(T, p float64) (fr frozen, err error) {
	if fr.x, err = ea.Composition(T, p); err != nil {
		return
	}
	var (
		molarMass, cpR, hR, sR float64
	)
	for i, sp := range airSpecies {
		xi := fr.x[i]
		if xi <= 0 {
			continue
		}
		molarMass += xi * sp.MolarMass
		cpR += xi * sp.CpR(T)
		hR += xi * sp.HR(T)
		sR += xi * (sp.SR(T) - math.Log(xi))
	}
	fr.r = Ru / molarMass
	fr.rho = p / (fr.r * T)
	fr.h = hR * fr.r
	fr.s = (sR - math.Log(p/PRef)) * fr.r
	fr.cp = cpR * fr.r
	return
}

func (ea *EquilibriumAir) State(T, p float64) (st State, err error) {
	var (
		d                        = ea.Delta
		fr, tp, tm, pp, pm       frozen
		cpEq, dlnVdlnT, dlnVdlnP float64
	)
	if fr, err = ea.frozenAt(T, p); err != nil {
		return
	}
	if tp, err = ea.frozenAt(T*(1+d), p); err != nil {
		return
	}
	if tm, err = ea.frozenAt(T*(1-d), p); err != nil {
		return
	}
	if pp, err = ea.frozenAt(T, p*(1+d)); err != nil {
		return
	}
	if pm, err = ea.frozenAt(T, p*(1-d)); err != nil {
		return
	}
	dln := math.Log((1 + d) / (1 - d))
	cpEq = (tp.h - tm.h) / (2 * d * T)
	dlnVdlnT = math.Log(tm.rho/tp.rho) / dln
	dlnVdlnP = math.Log(pm.rho/pp.rho) / dln
	cvEq := cpEq + p/(fr.rho*T)*dlnVdlnT*dlnVdlnT/dlnVdlnP
	gammaEq := -(cpEq / cvEq) / dlnVdlnP
	x := make(map[string]float64, nAir)
	for i, sp := range airSpecies {
		x[sp.Name] = fr.x[i]
	}
	st = State{
		P:       p,
		T:       T,
		Rho:     fr.rho,
		H:       fr.h,
		S:       fr.s,
		Gamma:   fr.cp / (fr.cp - fr.r),
		Cp:      fr.cp,
		GammaEq: gammaEq,
		CpEq:    cpEq,
		A:       math.Sqrt(gammaEq * p / fr.rho),
		R:       fr.r,
		Mu:      ea.visc.Viscosity(T),
		X:       x,
	}
	return
}
