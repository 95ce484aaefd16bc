package types

import "strings"

// Station labels a flow state along the tunnel
type Station uint8

const (
	ST_None Station = iota
	ST_1            // Driven gas fill
	ST_2            // Behind the incident shock
	ST_5            // Behind the reflected shock
	ST_5s           // Nozzle supply after relaxation to pe
	ST_6            // Nozzle throat
	ST_7            // Nozzle exit
)

// Stations in pipeline order
var Stations = []Station{ST_1, ST_2, ST_5, ST_5s, ST_6, ST_7}

var StationNameMap = map[string]Station{
	"1":      ST_1,
	"fill":   ST_1,
	"2":      ST_2,
	"5":      ST_5,
	"5s":     ST_5s,
	"supply": ST_5s,
	"6":      ST_6,
	"throat": ST_6,
	"7":      ST_7,
	"exit":   ST_7,
}

func (st Station) String() string {
	strings := []string{
		"none",
		"1",
		"2",
		"5",
		"5s",
		"6",
		"7",
	}
	if int(st) >= len(strings) {
		return "unknown"
	}
	return strings[int(st)]
}

// Stage names the solver stage that produces the station
func (st Station) Stage() string {
	switch st {
	case ST_1:
		return "fill"
	case ST_2:
		return "incident shock"
	case ST_5:
		return "reflected shock"
	case ST_5s:
		return "isentropic relaxation"
	case ST_6:
		return "nozzle throat"
	case ST_7:
		return "nozzle exit"
	}
	return "input"
}

func NewStation(label string) Station {
	return StationNameMap[strings.ToLower(strings.TrimSpace(label))]
}

// Quantity is a reported flow property
type Quantity uint8

const (
	Pressure Quantity = iota
	Temperature
	Density
	Enthalpy
	Entropy
	Gamma
	SpecificHeat
	SoundSpeed
	Velocity
	Mach
	GasVelocity    // 10
	ShockVelocity  // 11
	ReflectedSpeed // 12
	Viscosity      // 13
	PitotPressure  // 14
	MassFlux       // 15
	EnthalpyRise   // 16, H5s - H1
)

var QuantityNameMap = func() map[string]Quantity {
	m := make(map[string]Quantity)
	for q := Pressure; q <= EnthalpyRise; q++ {
		m[q.String()] = q
	}
	return m
}()

func NewQuantity(label string) (q Quantity, ok bool) {
	q, ok = QuantityNameMap[strings.TrimSpace(label)]
	return
}

func (q Quantity) String() string {
	strings := []string{
		"p",
		"T",
		"rho",
		"h",
		"s",
		"gamma",
		"Cp",
		"a",
		"V",
		"M",
		"Vg",
		"U2",
		"Vr",
		"mu",
		"pitot",
		"mass flux",
		"H5s-H1",
	}
	if int(q) >= len(strings) {
		return "unknown"
	}
	return strings[int(q)]
}

// Units of the quantity in SI
func (q Quantity) Units() string {
	units := []string{
		"Pa",
		"K",
		"kg/m^3",
		"J/kg",
		"J/(kg K)",
		"",
		"J/(kg K)",
		"m/s",
		"m/s",
		"",
		"m/s",
		"m/s",
		"m/s",
		"Pa s",
		"Pa",
		"kg/(m^2 s)",
		"J/kg",
	}
	if int(q) >= len(units) {
		return ""
	}
	return units[int(q)]
}
