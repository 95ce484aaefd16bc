package gas

import (
	"math"
)

const (
	Ru   = 8.314462618 // Universal gas constant, J/(mol K)
	PRef = 1.e5        // Standard state pressure for entropy, Pa
	// Range of the polynomial fits. Outside it Cp is frozen at the boundary
	// value, so h continues linearly and s logarithmically in T.
	TLow  = 200.
	THigh = 6000.
)

// Species holds NASA 7-coefficient polynomials:
//
//	Cp/R  = a0 + a1 T + a2 T^2 + a3 T^3 + a4 T^4
//	h/R   = a0 T + a1 T^2/2 + a2 T^3/3 + a3 T^4/4 + a4 T^5/5 + a5
//	s°/R  = a0 ln T + a1 T + a2 T^2/2 + a3 T^3/3 + a4 T^4/4 + a6
//
// h includes the heat of formation (datum 298.15 K), s° is referenced to PRef.
type Species struct {
	Name      string
	MolarMass float64 // kg/mol
	TMid      float64
	Low, High [7]float64
}

func (sp *Species) coeffs(T float64) *[7]float64 {
	if T < sp.TMid {
		return &sp.Low
	}
	return &sp.High
}

func clampT(T float64) float64 {
	return math.Max(TLow, math.Min(THigh, T))
}

func (sp *Species) cpR(T float64) float64 {
	a := sp.coeffs(T)
	return a[0] + T*(a[1]+T*(a[2]+T*(a[3]+T*a[4])))
}

func (sp *Species) hR(T float64) float64 {
	a := sp.coeffs(T)
	return T*(a[0]+T*(a[1]/2+T*(a[2]/3+T*(a[3]/4+T*a[4]/5)))) + a[5]
}

func (sp *Species) sR(T float64) float64 {
	a := sp.coeffs(T)
	return a[0]*math.Log(T) + T*(a[1]+T*(a[2]/2+T*(a[3]/3+T*a[4]/4))) + a[6]
}

// CpR is Cp/R
func (sp *Species) CpR(T float64) float64 {
	return sp.cpR(clampT(T))
}

// HR is h/R in K
func (sp *Species) HR(T float64) float64 {
	Tc := clampT(T)
	return sp.hR(Tc) + sp.cpR(Tc)*(T-Tc)
}

// SR is s°/R at PRef
func (sp *Species) SR(T float64) float64 {
	Tc := clampT(T)
	return sp.sR(Tc) + sp.cpR(Tc)*math.Log(T/Tc)
}

// GRT is the standard state Gibbs energy g°/(R T)
func (sp *Species) GRT(T float64) float64 {
	return sp.HR(T)/T - sp.SR(T)
}

// GRI-Mech 3.0 thermodynamic data; He from the Burcat tables.
var (
	N2 = &Species{
		Name: "N2", MolarMass: 28.0134e-3, TMid: 1000,
		Low:  [7]float64{3.298677, 1.4082404e-3, -3.963222e-6, 5.641515e-9, -2.444854e-12, -1020.8999, 3.950372},
		High: [7]float64{2.92664, 1.4879768e-3, -5.68476e-7, 1.0097038e-10, -6.753351e-15, -922.7977, 5.980528},
	}
	O2 = &Species{
		Name: "O2", MolarMass: 31.9988e-3, TMid: 1000,
		Low:  [7]float64{3.78245636, -2.99673416e-3, 9.84730201e-6, -9.68129509e-9, 3.24372837e-12, -1063.94356, 3.65767573},
		High: [7]float64{3.28253784, 1.48308754e-3, -7.57966669e-7, 2.09470555e-10, -2.16717794e-14, -1088.45772, 5.45323129},
	}
	NO = &Species{
		Name: "NO", MolarMass: 30.0061e-3, TMid: 1000,
		Low:  [7]float64{4.2184763, -4.638976e-3, 1.1041022e-5, -9.3361354e-9, 2.803577e-12, 9844.623, 2.2808464},
		High: [7]float64{3.2606056, 1.1911043e-3, -4.2917048e-7, 6.9457669e-11, -4.0336099e-15, 9920.9746, 6.3693027},
	}
	N = &Species{
		Name: "N", MolarMass: 14.0067e-3, TMid: 1000,
		Low:  [7]float64{2.5, 0, 0, 0, 0, 56104.637, 4.1939087},
		High: [7]float64{2.4159429, 1.7489065e-4, -1.1902369e-7, 3.0226245e-11, -2.0360982e-15, 56133.773, 4.6496096},
	}
	O = &Species{
		Name: "O", MolarMass: 15.9994e-3, TMid: 1000,
		Low:  [7]float64{3.1682671, -3.27931884e-3, 6.64306396e-6, -6.12806624e-9, 2.11265971e-12, 29122.2592, 2.05193346},
		High: [7]float64{2.56942078, -8.59741137e-5, 4.19484589e-8, -1.00177799e-11, 1.22833691e-15, 29217.5791, 4.78433864},
	}
	Ar = &Species{
		Name: "Ar", MolarMass: 39.948e-3, TMid: 1000,
		Low:  [7]float64{2.5, 0, 0, 0, 0, -745.375, 4.366},
		High: [7]float64{2.5, 0, 0, 0, 0, -745.375, 4.366},
	}
	He = &Species{
		Name: "He", MolarMass: 4.002602e-3, TMid: 1000,
		Low:  [7]float64{2.5, 0, 0, 0, 0, -745.375, 0.928723974},
		High: [7]float64{2.5, 0, 0, 0, 0, -745.375, 0.928723974},
	}
	H2 = &Species{
		Name: "H2", MolarMass: 2.01588e-3, TMid: 1000,
		Low:  [7]float64{2.34433112, 7.98052075e-3, -1.9478151e-5, 2.01572094e-8, -7.37611761e-12, -917.935173, 0.683010238},
		High: [7]float64{3.3372792, -4.94024731e-5, 4.99456778e-7, -1.79566394e-10, 2.00255376e-14, -950.158922, -3.20502331},
	}
	CO2 = &Species{
		Name: "CO2", MolarMass: 44.0095e-3, TMid: 1000,
		Low:  [7]float64{2.35677352, 8.98459677e-3, -7.12356269e-6, 2.45919022e-9, -1.43699548e-13, -48371.9697, 9.90105222},
		High: [7]float64{3.85746029, 4.41437026e-3, -2.21481404e-6, 5.23490188e-10, -4.72084164e-14, -48759.166, 2.27163806},
	}
)
