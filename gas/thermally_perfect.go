package gas

import (
	"errors"
	"fmt"
	"math"
)

type Component struct {
	Species *Species
	X       float64 // Mole fraction
}

// AirComposition is dry air by mole fraction
var AirComposition = []Component{{N2, 0.7808}, {O2, 0.2095}, {Ar, 0.0097}}

// ThermallyPerfect is a fixed composition mixture of thermally perfect species
type ThermallyPerfect struct {
	name       string
	comp       []Component
	molarMass  float64
	r          float64
	mixEntropy float64 // -sum x ln x
	visc       Sutherland
	x          map[string]float64
}

func NewThermallyPerfect(name string, comp []Component, visc Sutherland) (tp *ThermallyPerfect, err error) {
	var (
		sum float64
	)
	if len(comp) == 0 {
		return nil, errors.New("empty composition")
	}
	for _, c := range comp {
		if c.Species == nil || !(c.X >= 0) {
			return nil, fmt.Errorf("bad component in %s", name)
		}
		sum += c.X
	}
	if !(sum > 0) {
		return nil, fmt.Errorf("composition of %s sums to %g", name, sum)
	}
	tp = &ThermallyPerfect{
		name: name,
		comp: make([]Component, len(comp)),
		visc: visc,
		x:    make(map[string]float64, len(comp)),
	}
	for i, c := range comp {
		x := c.X / sum
		tp.comp[i] = Component{c.Species, x}
		tp.x[c.Species.Name] = x
		tp.molarMass += x * c.Species.MolarMass
		if x > 0 {
			tp.mixEntropy -= x * math.Log(x)
		}
	}
	tp.r = Ru / tp.molarMass
	return
}

func (tp *ThermallyPerfect) Name() string { return tp.name }

func (tp *ThermallyPerfect) R() float64 { return tp.r }

func (tp *ThermallyPerfect) State(T, p float64) (st State, err error) {
	var (
		cpR, hR, sR float64
	)
	if err = checkTP(T, p); err != nil {
		return
	}
	for _, c := range tp.comp {
		cpR += c.X * c.Species.CpR(T)
		hR += c.X * c.Species.HR(T)
		sR += c.X * c.Species.SR(T)
	}
	cp := cpR * tp.r
	gamma := cpR / (cpR - 1)
	st = State{
		P:       p,
		T:       T,
		Rho:     p / (tp.r * T),
		H:       hR * tp.r,
		S:       (sR + tp.mixEntropy - math.Log(p/PRef)) * tp.r,
		Gamma:   gamma,
		Cp:      cp,
		GammaEq: gamma,
		CpEq:    cp,
		A:       math.Sqrt(gamma * tp.r * T),
		R:       tp.r,
		Mu:      tp.visc.Viscosity(T),
		X:       make(map[string]float64, len(tp.x)),
	}
	for name, x := range tp.x {
		st.X[name] = x
	}
	return
}
