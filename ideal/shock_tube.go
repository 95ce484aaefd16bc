package ideal

import (
	"errors"
	"fmt"
	"math"

	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/rootfind"
)

var ErrNoShock = errors.New("diaphragm pressure ratio does not drive a shock")

// ShockTube relates diaphragm pressure ratio and shock strength for perfect
// gases: driven gas (1) and driver gas (4).
type ShockTube struct {
	G1, G4 float64
	A1, A4 float64 // Sound speeds
}

func (st ShockTube) p21(Ms float64) float64 {
	return 1 + 2*st.G1/(st.G1+1)*(Ms*Ms-1)
}

// PressureRatio is p4/p1 for shock Mach number Ms
func (st ShockTube) PressureRatio(Ms float64) float64 {
	var (
		g1, g4 = st.G1, st.G4
		p21    = st.p21(Ms)
		q      = p21 - 1
		base   = 1 - (g4-1)*(st.A1/st.A4)*q/math.Sqrt(2*g1*(2*g1+(g1+1)*q))
	)
	if base <= 0 {
		return math.Inf(1)
	}
	return p21 * math.Pow(base, -2*g4/(g4-1))
}

// MaxShockMach is the limit of Ms as p4/p1 grows without bound
func (st ShockTube) MaxShockMach() float64 {
	c := (st.G1 + 1) / (st.G4 - 1) * st.A4 / st.A1
	return 0.5 * (c + math.Sqrt(c*c+4))
}

// ShockMach solves the shock tube equation for the shock Mach number
func (st ShockTube) ShockMach(p41 float64) (Ms float64, err error) {
	if !(p41 > 1) {
		return 0, fmt.Errorf("%w: p4/p1 = %g", ErrNoShock, p41)
	}
	var (
		MsMax = st.MaxShockMach()
		f     = func(Ms float64) float64 { return math.Log(st.PressureRatio(Ms) / p41) }
	)
	Ms, err = rootfind.Secant(f, 1.2, 1.5, rootfind.DefaultSettings)
	if err == nil && Ms > 1 && Ms < MsMax {
		return
	}
	return rootfind.Brent(f, 1, MsMax*(1-1.e-12), rootfind.DefaultSettings)
}

// DriverPressure is the driver fill pressure needed for a shock of Mach Ms
// into driven gas at p1.
func (st ShockTube) DriverPressure(p1, Ms float64) (p4 float64, err error) {
	if !(Ms > 1) || Ms >= st.MaxShockMach() {
		return 0, fmt.Errorf("%w: Ms = %g outside (1, %g)", ErrNoShock, Ms, st.MaxShockMach())
	}
	return p1 * st.PressureRatio(Ms), nil
}
