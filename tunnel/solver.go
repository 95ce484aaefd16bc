// Package tunnel runs the reflected shock tunnel pipeline: incident shock,
// reflected shock, relaxation to the supply pressure, and nozzle expansion.
package tunnel

import (
	"math"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/gas"
	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/ideal"
	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/nozzle"
	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/rootfind"
	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/shock"
	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/types"
)

// Solver holds the gas model and the root search settings shared by every
// stage. It keeps no state between solves and is safe for concurrent use.
type Solver struct {
	Gas      gas.Model
	Settings rootfind.Settings
	Log      log.FieldLogger
}

func NewSolver(gasTag string) (s *Solver, err error) {
	var (
		m gas.Model
	)
	if m, err = gas.New(gasTag); err != nil {
		return nil, inputError("%w", err)
	}
	s = &Solver{
		Gas:      m,
		Settings: rootfind.DefaultSettings,
		Log:      log.StandardLogger(),
	}
	return
}

// Solve builds a solver for in.Gas and runs it once
func Solve(in Input) (r *Result, err error) {
	var (
		s *Solver
	)
	if err = in.Validate(); err != nil {
		return
	}
	if s, err = NewSolver(in.Gas); err != nil {
		return
	}
	return s.Solve(in)
}

func (s *Solver) logger() log.FieldLogger {
	if s.Log == nil {
		return log.StandardLogger()
	}
	return s.Log
}

func (s *Solver) done(st types.Station, g gas.State, extra log.Fields) {
	f := log.Fields{
		"stage":   st.Stage(),
		"station": st.String(),
		"p":       g.P,
		"T":       g.T,
	}
	for k, v := range extra {
		f[k] = v
	}
	s.logger().WithFields(f).Debug("stage complete")
}

func (s *Solver) Solve(in Input) (r *Result, err error) {
	var (
		set     = s.Settings
		s1, s5s gas.State
		jump    shock.Jump
		refl    shock.Reflection
		throat  nozzle.Expansion
		exit    nozzle.Expansion
		ar      = in.Ar
	)
	if err = in.Validate(); err != nil {
		return
	}
	if s.Gas == nil {
		return nil, inputError("solver has no gas model")
	}
	if tag := strings.ToLower(strings.TrimSpace(in.Gas)); tag != "" && tag != s.Gas.Name() {
		return nil, inputError("input gas %q does not match solver gas %q", in.Gas, s.Gas.Name())
	}

	if s1, err = s.Gas.State(in.T1, in.P1); err != nil {
		return nil, stageError(types.ST_1, err)
	}
	s.done(types.ST_1, s1, nil)

	if jump, err = shock.Incident(s.Gas, s1, in.Vs, set); err != nil {
		return nil, stageError(types.ST_2, err)
	}
	s.done(types.ST_2, jump.State, log.Fields{"Ms": jump.Ms, "Vg": jump.Vg})

	if refl, err = shock.Reflected(s.Gas, jump.State, jump.Vg, set); err != nil {
		return nil, stageError(types.ST_5, err)
	}
	s.done(types.ST_5, refl.State, log.Fields{"Vr": refl.Vr})

	if s5s, err = nozzle.Relax(s.Gas, refl.State, in.Pe, set); err != nil {
		return nil, stageError(types.ST_5s, err)
	}
	s.done(types.ST_5s, s5s, nil)

	if throat, err = nozzle.Throat(s.Gas, s5s, set); err != nil {
		return nil, stageError(types.ST_6, err)
	}
	s.done(types.ST_6, throat.State, log.Fields{"M": throat.M})

	if in.Ar == 0 {
		exit, ar, err = nozzle.ExitMach(s.Gas, s5s, throat, in.M7, set)
	} else {
		exit, err = nozzle.Exit(s.Gas, s5s, throat, in.Ar, set)
	}
	if err != nil {
		return nil, stageError(types.ST_7, err)
	}
	s.done(types.ST_7, exit.State, log.Fields{"M": exit.M, "ar": ar})

	r = &Result{
		Stations: []FlowStation{
			{Name: types.ST_1, Gas: s1},
			{Name: types.ST_2, Gas: jump.State, V: jump.Vg, M: jump.Vg / jump.State.A,
				U2: jump.U2, V2: jump.V2, Vg: jump.Vg},
			{Name: types.ST_5, Gas: refl.State, Vr: refl.Vr},
			{Name: types.ST_5s, Gas: s5s},
			{Name: types.ST_6, Gas: throat.State, V: throat.V, M: throat.M,
				MassFlux: throat.MassFlux(), Pitot: throat.Pitot()},
			{Name: types.ST_7, Gas: exit.State, V: exit.V, M: exit.M,
				MassFlux: exit.MassFlux(), Pitot: exit.Pitot()},
		},
		H5sH1: s5s.H - s1.H,
		Ar:    ar,
	}
	if in.Driver != nil {
		if r.Driver, err = s.driver(in.Driver, s1, jump.Ms); err != nil {
			return nil, err
		}
	}
	return
}

// driver estimates the diaphragm pressure ratio from the perfect gas shock tube
// equation, with the frozen properties of both gases at their fill states.
func (s *Solver) driver(d *Driver, s1 gas.State, Ms float64) (de *DriverEstimate, err error) {
	var (
		m  gas.Model
		s4 gas.State
	)
	if m, err = gas.New(d.Gas); err != nil {
		return nil, inputError("driver: %w", err)
	}
	if s4, err = m.State(d.T4, s1.P); err != nil {
		return nil, inputError("driver: %w", err)
	}
	st := ideal.ShockTube{G1: s1.Gamma, G4: s4.Gamma, A1: s1.A, A4: s4.A}
	de = &DriverEstimate{
		Gas:   m.Name(),
		T4:    d.T4,
		P4:    math.Inf(1),
		P41:   math.Inf(1),
		MaxMs: st.MaxShockMach(),
		Ms:    Ms,
	}
	if p4, e := st.DriverPressure(s1.P, Ms); e == nil {
		de.P4, de.P41 = p4, p4/s1.P
	} else {
		s.logger().WithFields(log.Fields{
			"driver": m.Name(),
			"Ms":     Ms,
			"limit":  de.MaxMs,
		}).Warn("driver cannot produce this shock in a perfect gas shock tube")
	}
	return
}
