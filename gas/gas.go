// Package gas evaluates the thermodynamic state of the test gas from
// temperature and pressure.
package gas

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/rootfind"
)

// State is the thermodynamic state at a point. Cp and Gamma are the frozen
// values, CpEq and GammaEq follow the equilibrium composition and A is the
// equilibrium sound speed. For fixed composition models both pairs agree.
type State struct {
	P, T, Rho float64
	H, S      float64 // J/kg, J/(kg K)
	Gamma, Cp float64
	GammaEq   float64
	CpEq      float64
	A         float64
	R         float64 // Mixture gas constant, J/(kg K)
	Mu        float64 // Viscosity, Pa s
	X         map[string]float64
}

type Model interface {
	Name() string
	State(T, p float64) (State, error)
}

var (
	ErrUnknownGas = errors.New("unknown gas")
	ErrBadState   = errors.New("temperature and pressure must be positive and finite")
)

// Temperature limits for inverse property searches
const (
	TMin = 1.
	TMax = 50000.
)

func checkTP(T, p float64) error {
	if !(T > 0) || !(p > 0) || math.IsInf(T, 0) || math.IsInf(p, 0) {
		return fmt.Errorf("%w: T = %g, p = %g", ErrBadState, T, p)
	}
	return nil
}

type GasType uint8

const (
	Air GasType = iota
	AirFrozen
	Nitrogen
	Oxygen
	CarbonDioxide
	Argon
	Helium
	Hydrogen
)

var GasNameMap = map[string]GasType{
	"air":        Air,
	"air-frozen": AirFrozen,
	"n2":         Nitrogen,
	"o2":         Oxygen,
	"co2":        CarbonDioxide,
	"ar":         Argon,
	"he":         Helium,
	"h2":         Hydrogen,
}

func (gt GasType) String() string {
	for name, g := range GasNameMap {
		if g == gt {
			return name
		}
	}
	return "unknown"
}

// Names lists the accepted gas tags in sorted order
func Names() (names []string) {
	for name := range GasNameMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// New builds the gas model for a tag such as "air" or "co2"
func New(tag string) (Model, error) {
	gt, ok := GasNameMap[strings.ToLower(strings.TrimSpace(tag))]
	if !ok {
		return nil, fmt.Errorf("%w: %q, choose from %v", ErrUnknownGas, tag, Names())
	}
	switch gt {
	case Air:
		return NewEquilibriumAir(), nil
	case AirFrozen:
		return NewThermallyPerfect("air-frozen", AirComposition, SutherlandMap["air"])
	case Nitrogen:
		return NewThermallyPerfect("n2", []Component{{N2, 1}}, SutherlandMap["n2"])
	case Oxygen:
		return NewThermallyPerfect("o2", []Component{{O2, 1}}, SutherlandMap["o2"])
	case CarbonDioxide:
		return NewThermallyPerfect("co2", []Component{{CO2, 1}}, SutherlandMap["co2"])
	case Argon:
		return NewThermallyPerfect("ar", []Component{{Ar, 1}}, SutherlandMap["ar"])
	case Helium:
		return NewThermallyPerfect("he", []Component{{He, 1}}, SutherlandMap["he"])
	case Hydrogen:
		return NewThermallyPerfect("h2", []Component{{H2, 1}}, SutherlandMap["h2"])
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownGas, tag)
}

// StateAt finds the state with pressure p and specific entropy s
func StateAt(m Model, p, s float64, guessT float64, set rootfind.Settings) (State, error) {
	return invert(m, p, guessT, set, func(st State) float64 { return st.S - s })
}

// StateAtEnthalpy finds the state with pressure p and specific enthalpy h
func StateAtEnthalpy(m Model, p, h float64, guessT float64, set rootfind.Settings) (State, error) {
	return invert(m, p, guessT, set, func(st State) float64 { return st.H - h })
}

func invert(m Model, p, guessT float64, set rootfind.Settings,
	res func(st State) float64) (st State, err error) {
	var (
		inner error
	)
	if err = checkTP(guessT, p); err != nil {
		return
	}
	f := func(T float64) float64 {
		s, e := m.State(T, p)
		if e != nil {
			inner = e
			return math.NaN()
		}
		return res(s)
	}
	lo := math.Max(TMin, 0.9*guessT)
	hi := math.Min(TMax, 1.1*guessT)
	if lo >= hi {
		lo, hi = TMin, TMax
	}
	T, err := rootfind.Find(f, lo, hi, TMin, TMax, set)
	if inner != nil {
		return st, inner
	}
	if err != nil {
		return st, fmt.Errorf("temperature search at p = %g: %w", p, err)
	}
	return m.State(T, p)
}
