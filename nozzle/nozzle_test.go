package nozzle

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/gas"
	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/ideal"
	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/rootfind"
)

func TestPerfectGasNozzle(t *testing.T) {
	var (
		gamma = 5. / 3.
		set   = rootfind.DefaultSettings
	)
	m, err := gas.New("ar")
	require.NoError(t, err)
	s0, err := m.State(3000, 1.e7)
	require.NoError(t, err)

	throat, err := Throat(m, s0, set)
	require.NoError(t, err)
	assert.InDelta(t, 1., throat.M, 1.e-6)
	assert.InEpsilon(t, math.Pow(0.75, 2.5), throat.State.P/s0.P, 1.e-8)
	assert.InEpsilon(t, 0.75*3000, throat.State.T, 1.e-8)
	assert.InEpsilon(t, throat.State.A, throat.V, 1.e-6)

	{
		exit, err := Exit(m, s0, throat, 10, set)
		require.NoError(t, err)
		M, err := ideal.MachFromAreaRatio(gamma, 10, true)
		require.NoError(t, err)
		assert.InEpsilon(t, M, exit.M, 1.e-7)
		assert.InEpsilon(t, 1/ideal.StagnationPressureRatio(gamma, M), exit.State.P/s0.P, 1.e-7)
		assert.InEpsilon(t, throat.MassFlux(), 10*exit.MassFlux(), 1.e-9)
		assert.InDelta(t, s0.S, exit.State.S, 1.e-8*s0.S)
		assert.InEpsilon(t, exit.State.P*ideal.PitotRatio(gamma, exit.M), exit.Pitot(), 1.e-12)
	}
	{
		exit, ar, err := ExitMach(m, s0, throat, 4, set)
		require.NoError(t, err)
		assert.InDelta(t, 4., exit.M, 1.e-9)
		assert.InEpsilon(t, ideal.AreaRatio(gamma, 4), ar, 1.e-7)
		_, _, err = ExitMach(m, s0, throat, 0.8, set)
		assert.True(t, errors.Is(err, ErrExitMach))
	}
	{ // Degenerate area ratios
		exit, err := Exit(m, s0, throat, 1, set)
		require.NoError(t, err)
		assert.Equal(t, throat, exit)
		_, err = Exit(m, s0, throat, 0.5, set)
		assert.True(t, errors.Is(err, ErrAreaRatio))
		_, err = Exit(m, s0, throat, math.NaN(), set)
		assert.True(t, errors.Is(err, ErrAreaRatio))
		_, err = Exit(m, s0, throat, 1+1.e-9, set)
		assert.True(t, errors.Is(err, ErrBranchAmbiguity))
	}
}

func TestReservoirExpansion(t *testing.T) {
	var (
		set = rootfind.DefaultSettings
	)
	m, err := gas.New("air")
	require.NoError(t, err)
	s5, err := m.State(4554.4, 5.94978e7)
	require.NoError(t, err)

	s5s, err := Relax(m, s5, 34.37e6, set)
	require.NoError(t, err)
	assert.Equal(t, 34.37e6, s5s.P)
	assert.InDelta(t, s5.S, s5s.S, 1.e-9*s5.S)
	assert.InEpsilon(t, 4162.7, s5s.T, 1.e-3)

	throat, err := Throat(m, s5s, set)
	require.NoError(t, err)
	assert.InDelta(t, 1., throat.M, 1.e-6)
	assert.InEpsilon(t, 1.93214e7, throat.State.P, 1.e-3)

	exit, err := Exit(m, s5s, throat, 27, set)
	require.NoError(t, err)
	assert.InEpsilon(t, 4.23667, exit.M, 1.e-3)
	assert.InEpsilon(t, 93643, exit.State.P, 2.e-3)
	assert.InEpsilon(t, 1282.8, exit.State.T, 2.e-3)
	assert.InEpsilon(t, throat.MassFlux(), 27*exit.MassFlux(), 1.e-9)
	// Energy is conserved along the expansion
	assert.InEpsilon(t, s5s.H, exit.State.H+0.5*exit.V*exit.V, 1.e-9)
	assert.True(t, exit.Pitot() > exit.State.P)

	_, err = Relax(m, s5, -1, set)
	assert.Error(t, err)
}
