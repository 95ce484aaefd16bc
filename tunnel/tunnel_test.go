package tunnel

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/rootfind"
	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/types"
)

var estcn = Input{Gas: "air", P1: 125000, T1: 300, Vs: 2414, Pe: 34.37e6, Ar: 27}

func station(t *testing.T, r *Result, st types.Station) FlowStation {
	fs, ok := r.Station(st)
	require.True(t, ok, st.String())
	return fs
}

func TestReferenceCondition(t *testing.T) {
	r, err := Solve(estcn)
	require.NoError(t, err)
	require.Len(t, r.Stations, 6)
	for i, st := range types.Stations {
		assert.Equal(t, st, r.Stations[i].Name)
	}
	assert.Equal(t, 125000., station(t, r, types.ST_1).Gas.P)
	assert.InEpsilon(t, 7.3156e6, station(t, r, types.ST_2).Gas.P, 0.01)
	assert.InEpsilon(t, 5.94876e7, station(t, r, types.ST_5).Gas.P, 0.01)
	assert.Equal(t, 34.37e6, station(t, r, types.ST_5s).Gas.P)
	assert.InDelta(t, 1., station(t, r, types.ST_6).M, 1.e-4)
	assert.InEpsilon(t, 4.236, station(t, r, types.ST_7).M, 0.02)
	assert.InEpsilon(t, 5.429e6, r.H5sH1, 0.02)
	assert.Equal(t, 27., r.Ar)

	s2 := station(t, r, types.ST_2)
	assert.Equal(t, s2.V2, s2.Vg)
	assert.InDelta(t, estcn.Vs, s2.U2+s2.Vg, 1.e-9)
	assert.InEpsilon(t, 574.36, station(t, r, types.ST_5).Vr, 0.01)
	s7 := station(t, r, types.ST_7)
	assert.InEpsilon(t, station(t, r, types.ST_6).MassFlux, 27*s7.MassFlux, 1.e-8)
	assert.True(t, s7.Pitot > s7.Gas.P)
	assert.Equal(t, s7.Gas.T, s7.Value(types.Temperature))
	assert.Equal(t, s7.Pitot, s7.Value(types.PitotPressure))
}

func TestPressureOrdering(t *testing.T) {
	for _, in := range []Input{
		estcn,
		{Gas: "air", P1: 50000, T1: 295, Vs: 1800, Pe: 5.e6, Ar: 9},
		{Gas: "air", P1: 100000, T1: 300, Vs: 2000, Pe: 1.e7, M7: 6},
		{Gas: "n2", P1: 100000, T1: 300, Vs: 1500, Pe: 5.e6, Ar: 10},
		{Gas: "co2", P1: 50000, T1: 300, Vs: 1200, Pe: 2.e6, Ar: 16},
	} {
		r, err := Solve(in)
		require.NoError(t, err, in.Gas)
		p := func(st types.Station) float64 { return station(t, r, st).Gas.P }
		assert.True(t, p(types.ST_1) < p(types.ST_2), in.Gas)
		assert.True(t, p(types.ST_2) < p(types.ST_5), in.Gas)
		assert.True(t, p(types.ST_1) < p(types.ST_5s), in.Gas)
		assert.True(t, p(types.ST_5s) > p(types.ST_6), in.Gas)
		assert.True(t, p(types.ST_6) > p(types.ST_7), in.Gas)
		assert.True(t, station(t, r, types.ST_7).M > 1, in.Gas)
		if in.M7 != 0 {
			assert.InDelta(t, in.M7, station(t, r, types.ST_7).M, 1.e-8)
			assert.True(t, r.Ar > 1)
		}
	}
}

func TestEntropyRoundTrip(t *testing.T) {
	s, err := NewSolver("air")
	require.NoError(t, err)
	r, err := s.Solve(estcn)
	require.NoError(t, err)
	s5, s5s := station(t, r, types.ST_5).Gas, station(t, r, types.ST_5s).Gas
	st, err := s.Gas.State(s5s.T, estcn.Pe)
	require.NoError(t, err)
	assert.InDelta(t, s5.S, st.S, 1.e-9*s5.S)
	// The expansion holds the supply entropy
	assert.InDelta(t, s5.S, station(t, r, types.ST_7).Gas.S, 1.e-9*s5.S)
}

func TestIdempotence(t *testing.T) {
	s, err := NewSolver("air")
	require.NoError(t, err)
	r1, err := s.Solve(estcn)
	require.NoError(t, err)
	r2, err := s.Solve(estcn)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}

func TestUnitAreaRatio(t *testing.T) {
	in := estcn
	in.Ar = 1
	r, err := Solve(in)
	require.NoError(t, err)
	s6, s7 := station(t, r, types.ST_6), station(t, r, types.ST_7)
	assert.Equal(t, s6.Gas, s7.Gas)
	assert.InDelta(t, 1., s7.M, 1.e-4)
	assert.Equal(t, s6.V, s7.V)
}

func TestWeakShock(t *testing.T) {
	in := estcn
	in.Vs = 1
	_, err := Solve(in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoConvergence))
	assert.True(t, errors.Is(err, ErrInvalidShockCondition))
	assert.False(t, errors.Is(err, ErrInvalidInput))
	var terr *Error
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, InvalidShockCondition, terr.Kind)
	assert.Equal(t, types.ST_2, terr.Stage)
	assert.False(t, math.IsNaN(terr.Residual))
	var rerr *rootfind.Error
	assert.True(t, errors.As(err, &rerr))
	assert.Contains(t, err.Error(), "incident shock")

	assert.Equal(t, "branch ambiguity", BranchAmbiguity.String())
	assert.Equal(t, "unknown", Kind(9).String())
	assert.False(t, errors.Is(&Error{Kind: Kind(9), Err: errors.New("x")}, ErrInvalidInput))
}

func TestWeakReflection(t *testing.T) {
	// Ms = 1.037, the reflected shock Mach number is below 1.05
	in := Input{Gas: "air", P1: 125000, T1: 300, Vs: 360, Pe: 1.e6, Ar: 4}
	r, err := Solve(in)
	require.NoError(t, err)
	require.Len(t, r.Stations, 6)
	p := func(st types.Station) float64 { return station(t, r, st).Gas.P }
	assert.True(t, p(types.ST_1) < p(types.ST_2))
	assert.True(t, p(types.ST_2) < p(types.ST_5))
	assert.Equal(t, in.Pe, p(types.ST_5s))
	assert.True(t, station(t, r, types.ST_5).Vr > 0)
	assert.True(t, station(t, r, types.ST_7).M > 1)
}

func TestInvalidInput(t *testing.T) {
	bad := []Input{
		{Gas: "air", P1: 0, T1: 300, Vs: 2414, Pe: 3.e7, Ar: 27},
		{Gas: "air", P1: 125000, T1: -300, Vs: 2414, Pe: 3.e7, Ar: 27},
		{Gas: "air", P1: 125000, T1: 300, Vs: math.Inf(1), Pe: 3.e7, Ar: 27},
		{Gas: "air", P1: 125000, T1: 300, Vs: 2414, Pe: math.NaN(), Ar: 27},
		{Gas: "air", P1: 125000, T1: 300, Vs: 2414, Pe: 3.e7, Ar: 0.5},
		{Gas: "air", P1: 125000, T1: 300, Vs: 2414, Pe: 3.e7, Ar: 27, M7: 4},
		{Gas: "air", P1: 125000, T1: 300, Vs: 2414, Pe: 3.e7, M7: 0.9},
		{Gas: "air", P1: 125000, T1: 300, Vs: 2414, Pe: 3.e7},
		{Gas: "xenon", P1: 125000, T1: 300, Vs: 2414, Pe: 3.e7, Ar: 27},
		{Gas: "air", P1: 125000, T1: 300, Vs: 2414, Pe: 3.e7, Ar: 27, Driver: &Driver{Gas: "he"}},
		{Gas: "air", P1: 125000, T1: 300, Vs: 2414, Pe: 3.e7, Ar: 27, Driver: &Driver{Gas: "kr", T4: 300}},
	}
	for i, in := range bad {
		_, err := Solve(in)
		require.Error(t, err, i)
		assert.True(t, errors.Is(err, ErrInvalidInput), i)
		assert.False(t, errors.Is(err, ErrNoConvergence), i)
		var terr *Error
		require.True(t, errors.As(err, &terr))
		assert.Equal(t, InvalidInput, terr.Kind)
	}
	{ // A solver is bound to its gas
		s, err := NewSolver("n2")
		require.NoError(t, err)
		_, err = s.Solve(estcn)
		assert.True(t, errors.Is(err, ErrInvalidInput))
	}
}

func TestDriver(t *testing.T) {
	s, err := NewSolver("air")
	require.NoError(t, err)
	s.Log = log.New()
	in := estcn
	in.Driver = &Driver{Gas: "he", T4: 300}
	r, err := s.Solve(in)
	require.NoError(t, err)
	require.NotNil(t, r.Driver)
	assert.Equal(t, "he", r.Driver.Gas)
	assert.True(t, r.Driver.P41 > 1 && !math.IsInf(r.Driver.P41, 0))
	assert.InEpsilon(t, r.Driver.P4/estcn.P1, r.Driver.P41, 1.e-12)
	assert.True(t, r.Driver.Ms < r.Driver.MaxMs)

	// Cold air cannot drive a Mach 7 shock into air
	in.Driver = &Driver{Gas: "air-frozen", T4: 300}
	r, err = s.Solve(in)
	require.NoError(t, err)
	assert.True(t, math.IsInf(r.Driver.P4, 1))
	assert.True(t, r.Driver.Ms > r.Driver.MaxMs)
}

func TestSweep(t *testing.T) {
	s, err := NewSolver("air")
	require.NoError(t, err)
	inputs := []Input{
		{P1: 125000, T1: 300, Vs: 2000, Pe: 1.e7, Ar: 16},
		{P1: 125000, T1: 300, Vs: 1, Pe: 1.e7, Ar: 16},
		{P1: 125000, T1: 300, Vs: 2200, Pe: 1.e7, Ar: 16},
		{P1: 125000, T1: 300, Vs: 2400, Pe: 1.e7, Ar: 16},
	}
	out, err := Sweep(context.Background(), s, inputs, 2)
	require.NoError(t, err)
	require.Len(t, out, len(inputs))
	for i, o := range out {
		assert.Equal(t, inputs[i], o.Input)
	}
	assert.True(t, errors.Is(out[1].Err, ErrInvalidShockCondition))
	require.NoError(t, out[0].Err)
	require.NoError(t, out[2].Err)
	require.NoError(t, out[3].Err)
	// Stronger shocks give hotter supply conditions
	assert.True(t, out[0].Result.H5sH1 < out[2].Result.H5sH1)
	assert.True(t, out[2].Result.H5sH1 < out[3].Result.H5sH1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Sweep(ctx, s, inputs, 0)
	assert.ErrorIs(t, err, context.Canceled)

	out, err = Sweep(context.Background(), s, nil, 4)
	assert.NoError(t, err)
	assert.Empty(t, out)
}

func TestPrint(t *testing.T) {
	in := estcn
	in.Driver = &Driver{Gas: "h2", T4: 300}
	r, err := Solve(in)
	require.NoError(t, err)
	var buf bytes.Buffer
	r.Print(&buf)
	out := buf.String()
	for _, s := range []string{"5s", "H5s - H1", "Vr =", "driver h2", "Re/m"} {
		assert.Contains(t, out, s)
	}
	_, ok := r.Station(types.ST_None)
	assert.False(t, ok)
}
