package gas

import "math"

// Sutherland viscosity law: mu = MuRef (T/TRef)^1.5 (TRef + S)/(T + S)
type Sutherland struct {
	MuRef, TRef, S float64
}

var SutherlandMap = map[string]Sutherland{
	"air": {1.716e-5, 273.15, 110.4},
	"co2": {1.370e-5, 273.15, 222.0},
	"n2":  {1.663e-5, 273.15, 107.0},
	"o2":  {1.919e-5, 273.15, 139.0},
	"ar":  {2.125e-5, 273.15, 144.4},
	"he":  {1.865e-5, 273.15, 79.4},
	"h2":  {8.411e-6, 273.15, 72.0},
}

func (su Sutherland) Viscosity(T float64) float64 {
	if su.MuRef == 0 {
		return 0
	}
	return su.MuRef * math.Pow(T/su.TRef, 1.5) * (su.TRef + su.S) / (T + su.S)
}
