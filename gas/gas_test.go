package gas

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/rootfind"
)

func TestSpecies(t *testing.T) {
	{ // Standard entropies, J/(mol K)
		assert.InDelta(t, 205.15, O2.SR(298.15)*Ru, 0.1)
		assert.InDelta(t, 191.51, N2.SR(298.15)*Ru, 0.05)
		// Heats of formation, J/mol
		assert.InDelta(t, 249175., O.HR(298.15)*Ru, 300)
		assert.InDelta(t, 91264., NO.HR(298.15)*Ru, 300)
		assert.InDelta(t, 0., N2.HR(298.15)*Ru, 5)
	}
	{ // The two fit ranges meet at 1000 K
		for _, sp := range []*Species{N2, O2, NO, N, O, Ar, He, H2, CO2} {
			assert.InEpsilon(t, sp.CpR(999.9999), sp.CpR(1000), 1.e-3, sp.Name)
			assert.InEpsilon(t, sp.HR(999.9999), sp.HR(1000), 1.e-3, sp.Name)
			assert.InEpsilon(t, sp.SR(999.9999), sp.SR(1000), 1.e-3, sp.Name)
		}
	}
	{ // Constant Cp outside the fitted range
		assert.Equal(t, N2.CpR(TLow), N2.CpR(50))
		assert.Equal(t, N2.CpR(THigh), N2.CpR(20000))
		assert.InDelta(t, N2.CpR(THigh)*1000, N2.HR(THigh+1000)-N2.HR(THigh), 1.e-9)
		assert.InDelta(t, N2.CpR(TLow)*math.Log(2), N2.SR(TLow)-N2.SR(TLow/2), 1.e-12)
	}
}

func TestThermallyPerfect(t *testing.T) {
	{ // Monatomic gases
		for _, tag := range []string{"ar", "he"} {
			m, err := New(tag)
			require.NoError(t, err)
			st, err := m.State(300, 1.e5)
			require.NoError(t, err)
			assert.InDelta(t, 5./3., st.Gamma, 1.e-12)
			assert.InDelta(t, math.Sqrt(5./3.*st.R*300), st.A, 1.e-9)
			assert.InDelta(t, 2.5*st.R, st.Cp, 1.e-9)
		}
	}
	{ // Frozen air
		m, err := New("air-frozen")
		require.NoError(t, err)
		st, err := m.State(300, 1.e5)
		require.NoError(t, err)
		assert.InDelta(t, 287.06, st.R, 0.05)
		assert.InDelta(t, 1.40, st.Gamma, 2.e-3)
		assert.InDelta(t, 1.e5/(st.R*300), st.Rho, 1.e-12)
		assert.Equal(t, st.Gamma, st.GammaEq)
		assert.InDelta(t, 1.8459e-5, st.Mu, 1.e-8)

		// Each state owns its composition
		xN2 := st.X[N2.Name]
		assert.InDelta(t, 0.7808, xN2, 1.e-12)
		st.X[N2.Name] = 0
		st2, err := m.State(300, 1.e5)
		require.NoError(t, err)
		assert.Equal(t, xN2, st2.X[N2.Name])
	}
	{ // Entropy falls with pressure as R ln p
		m, _ := New("n2")
		s1, _ := m.State(500, 1.e5)
		s2, _ := m.State(500, 1.e6)
		assert.InDelta(t, s1.R*math.Log(10), s1.S-s2.S, 1.e-9)
	}
	{
		_, err := NewThermallyPerfect("none", nil, Sutherland{})
		assert.Error(t, err)
	}
}

func TestEquilibriumAir(t *testing.T) {
	ea := NewEquilibriumAir()
	{ // Cold air keeps its composition
		x, err := ea.Composition(300, 1.25e5)
		require.NoError(t, err)
		assert.InDelta(t, 0.2095, x[iO2], 1.e-9)
		assert.InDelta(t, 0.7808, x[iN2], 1.e-9)
		assert.InDelta(t, 0.0097, x[iAr], 1.e-9)
	}
	{ // Hot low pressure air dissociates
		x, err := ea.Composition(4000, 1.e5)
		require.NoError(t, err)
		var sum float64
		for _, xi := range x {
			sum += xi
		}
		assert.InDelta(t, 1., sum, 1.e-12)
		assert.True(t, x[iO] > x[iO2])
		assert.True(t, x[iNO] > 0.01)
		// Element ratios are conserved
		O := 2*x[iO2] + x[iO] + x[iNO]
		N := 2*x[iN2] + x[iN] + x[iNO]
		assert.InDelta(t, 0.7808/0.2095, N/O, 1.e-9)
	}
	{ // Driven gas state of a reflected shock tunnel
		st, err := ea.State(300, 125000)
		require.NoError(t, err)
		assert.InEpsilon(t, 1.45149, st.Rho, 1.e-4)
		assert.InEpsilon(t, 6802.9, st.S, 1.e-4)
		assert.InEpsilon(t, 1.40077, st.Gamma, 1.e-4)
		assert.InEpsilon(t, 1003.3, st.Cp, 1.e-3)
		assert.InEpsilon(t, 347.32, st.A, 1.e-4)
		assert.InDelta(t, st.Gamma, st.GammaEq, 1.e-4)
		assert.InDelta(t, 0.2095, st.X["O2"], 1.e-9)
	}
	{ // Dissociation lowers the isentropic exponent below the frozen value
		st, err := ea.State(4500, 5.e7)
		require.NoError(t, err)
		assert.True(t, st.GammaEq < st.Gamma)
		assert.True(t, st.CpEq > st.Cp)
		assert.True(t, st.GammaEq > 1)
	}
}

func TestInverse(t *testing.T) {
	for _, tag := range []string{"air", "co2", "h2"} {
		m, err := New(tag)
		require.NoError(t, err)
		ref, err := m.State(3500, 2.e6)
		require.NoError(t, err)
		st, err := StateAt(m, 2.e6, ref.S, 1000, rootfind.DefaultSettings)
		require.NoError(t, err, tag)
		assert.InEpsilon(t, 3500, st.T, 1.e-8, tag)
		st, err = StateAtEnthalpy(m, 2.e6, ref.H, 300, rootfind.DefaultSettings)
		require.NoError(t, err, tag)
		assert.InEpsilon(t, 3500, st.T, 1.e-8, tag)
	}
}

func TestErrors(t *testing.T) {
	_, err := New("xenon")
	assert.True(t, errors.Is(err, ErrUnknownGas))
	m, err := New(" Air ")
	require.NoError(t, err)
	assert.Equal(t, "air", m.Name())
	_, err = m.State(-1, 1.e5)
	assert.True(t, errors.Is(err, ErrBadState))
	_, err = m.State(300, math.NaN())
	assert.True(t, errors.Is(err, ErrBadState))
	assert.Equal(t, "co2", CarbonDioxide.String())
	assert.Len(t, Names(), len(GasNameMap))
}
