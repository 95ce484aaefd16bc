package tunnel

import (
	"fmt"
	"io"

	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/gas"
	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/types"
)

// FlowStation is one named state of the tunnel with the speeds of its stage
type FlowStation struct {
	Name types.Station
	Gas  gas.State
	V, M float64 // Gas speed and Mach number in the lab frame (nozzle frame for 6, 7)
	// Station 2
	U2, V2, Vg float64
	// Station 5
	Vr float64
	// Stations 6 and 7
	MassFlux, Pitot float64
}

// DriverEstimate is the perfect gas diaphragm pressure ratio for the shock
type DriverEstimate struct {
	Gas       string
	T4        float64
	P4, P41   float64 // +Inf when the driver cannot produce the shock
	MaxMs, Ms float64
}

type Result struct {
	Stations []FlowStation // In pipeline order 1, 2, 5, 5s, 6, 7
	H5sH1    float64       // Stagnation enthalpy of the supply above the fill state, J/kg
	Ar       float64       // Area ratio of the exit, given or implied by M7
	Driver   *DriverEstimate
}

func (r *Result) Station(st types.Station) (fs FlowStation, ok bool) {
	for _, fs = range r.Stations {
		if fs.Name == st {
			return fs, true
		}
	}
	return FlowStation{}, false
}

// Value returns a reported quantity at a station, the frozen Gamma and Cp included
func (fs FlowStation) Value(q types.Quantity) float64 {
	switch q {
	case types.Pressure:
		return fs.Gas.P
	case types.Temperature:
		return fs.Gas.T
	case types.Density:
		return fs.Gas.Rho
	case types.Enthalpy:
		return fs.Gas.H
	case types.Entropy:
		return fs.Gas.S
	case types.Gamma:
		return fs.Gas.Gamma
	case types.SpecificHeat:
		return fs.Gas.Cp
	case types.SoundSpeed:
		return fs.Gas.A
	case types.Velocity:
		return fs.V
	case types.Mach:
		return fs.M
	case types.GasVelocity:
		return fs.Vg
	case types.ShockVelocity:
		return fs.U2
	case types.ReflectedSpeed:
		return fs.Vr
	case types.Viscosity:
		return fs.Gas.Mu
	case types.PitotPressure:
		return fs.Pitot
	case types.MassFlux:
		return fs.MassFlux
	}
	return 0
}

// Value returns q at station st. EnthalpyRise belongs to the whole result and
// ignores st.
func (r *Result) Value(st types.Station, q types.Quantity) (v float64, ok bool) {
	var (
		fs FlowStation
	)
	if q == types.EnthalpyRise {
		return r.H5sH1, true
	}
	if fs, ok = r.Station(st); !ok {
		return
	}
	return fs.Value(q), true
}

func (r *Result) Print(w io.Writer) {
	fmt.Fprintf(w, "%-4s %12s %10s %11s %12s %10s %8s %10s %9s %8s\n",
		"st", "p [Pa]", "T [K]", "rho", "h [J/kg]", "s", "gamma", "a [m/s]", "V [m/s]", "M")
	for _, fs := range r.Stations {
		g := fs.Gas
		fmt.Fprintf(w, "%-4s %12.5g %10.2f %11.5g %12.5g %10.2f %8.5f %10.2f %9.2f %8.5f\n",
			fs.Name, g.P, g.T, g.Rho, g.H, g.S, g.Gamma, g.A, fs.V, fs.M)
	}
	if st, ok := r.Station(types.ST_2); ok {
		fmt.Fprintf(w, "V2 = %.2f m/s (shock frame %.2f m/s), Vg = %.2f m/s\n", st.V2, st.U2, st.Vg)
	}
	if st, ok := r.Station(types.ST_5); ok {
		fmt.Fprintf(w, "Vr = %.2f m/s\n", st.Vr)
	}
	fmt.Fprintf(w, "H5s - H1 = %.5g J/kg\n", r.H5sH1)
	if st, ok := r.Station(types.ST_7); ok {
		fmt.Fprintf(w, "ar = %.4g, exit pitot = %.5g Pa, mass flux = %.5g kg/(m^2 s), Re/m = %.4g 1/m\n",
			r.Ar, st.Pitot, st.MassFlux, st.MassFlux/st.Gas.Mu)
	}
	if d := r.Driver; d != nil {
		fmt.Fprintf(w, "driver %s at %.1f K: p4 = %.5g Pa, p4/p1 = %.5g (Ms = %.4f, limit %.4f)\n",
			d.Gas, d.T4, d.P4, d.P41, d.Ms, d.MaxMs)
	}
}
