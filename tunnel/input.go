package tunnel

import (
	"math"

	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/gas"
)

// Input is the fill and operating condition of the tunnel
type Input struct {
	Gas string  // Test gas tag, see gas.Names
	P1  float64 // Fill pressure, Pa
	T1  float64 // Fill temperature, K
	Vs  float64 // Incident shock speed, m/s
	Pe  float64 // Nozzle supply pressure, Pa
	Ar  float64 // Exit to throat area ratio
	// Exit Mach number, used in place of Ar when Ar is zero
	M7     float64
	Driver *Driver
}

// Driver describes an optional driver gas for the ideal diaphragm pressure estimate
type Driver struct {
	Gas string
	T4  float64 // K
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func (in Input) Validate() error {
	for _, f := range []struct {
		name string
		val  float64
	}{{"p1", in.P1}, {"T1", in.T1}, {"Vs", in.Vs}, {"pe", in.Pe}, {"ar", in.Ar}, {"M7", in.M7}} {
		if !finite(f.val) {
			return inputError("%s = %g is not finite", f.name, f.val)
		}
	}
	switch {
	case in.P1 <= 0:
		return inputError("p1 = %g must be positive", in.P1)
	case in.T1 <= 0:
		return inputError("T1 = %g must be positive", in.T1)
	case in.Vs <= 0:
		return inputError("Vs = %g must be positive", in.Vs)
	case in.Pe <= 0:
		return inputError("pe = %g must be positive", in.Pe)
	case in.Ar != 0 && in.M7 != 0:
		return inputError("give either ar = %g or M7 = %g, not both", in.Ar, in.M7)
	case in.Ar == 0 && in.M7 != 0 && in.M7 <= 1:
		return inputError("M7 = %g must exceed one", in.M7)
	case in.M7 == 0 && in.Ar < 1:
		return inputError("ar = %g must be at least one", in.Ar)
	}
	if in.Driver != nil {
		if !(in.Driver.T4 > 0 && finite(in.Driver.T4)) {
			return inputError("driver temperature %g must be positive", in.Driver.T4)
		}
		if _, err := gas.New(in.Driver.Gas); err != nil {
			return inputError("driver: %w", err)
		}
	}
	return nil
}
