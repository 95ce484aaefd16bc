package tunnel

import (
	"errors"
	"fmt"
	"math"

	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/gas"
	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/nozzle"
	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/rootfind"
	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/shock"
	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/types"
)

type Kind uint8

const (
	InvalidInput Kind = iota
	InvalidShockCondition
	NoConvergence
	BranchAmbiguity
)

var KindNameMap = map[string]Kind{
	"invalid input":           InvalidInput,
	"invalid shock condition": InvalidShockCondition,
	"no convergence":          NoConvergence,
	"branch ambiguity":        BranchAmbiguity,
}

func (k Kind) String() string {
	for name, kk := range KindNameMap {
		if kk == k {
			return name
		}
	}
	return "unknown"
}

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidShockCondition = shock.ErrInvalidShock
	ErrNoConvergence         = rootfind.ErrNoConvergence
	ErrBranchAmbiguity       = nozzle.ErrBranchAmbiguity
)

func (k Kind) sentinel() error {
	switch k {
	case InvalidInput:
		return ErrInvalidInput
	case InvalidShockCondition:
		return ErrInvalidShockCondition
	case NoConvergence:
		return ErrNoConvergence
	case BranchAmbiguity:
		return ErrBranchAmbiguity
	}
	return nil
}

// Error reports the kind of failure, the station whose stage failed and the
// last residual of the root search when there was one.
type Error struct {
	Kind     Kind
	Stage    types.Station
	Residual float64
	Err      error
}

func (e *Error) Error() string {
	if math.IsNaN(e.Residual) {
		return fmt.Sprintf("%s in %s stage (station %s): %v", e.Kind, e.Stage.Stage(), e.Stage, e.Err)
	}
	return fmt.Sprintf("%s in %s stage (station %s, residual %.3g): %v",
		e.Kind, e.Stage.Stage(), e.Stage, e.Residual, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

func inputError(format string, args ...interface{}) *Error {
	return &Error{
		Kind:     InvalidInput,
		Stage:    types.ST_None,
		Residual: math.NaN(),
		Err:      fmt.Errorf(format, args...),
	}
}

// stageError tags a failure of the stage producing station st
func stageError(st types.Station, err error) *Error {
	var (
		se   *Error
		rerr *rootfind.Error
		kind = NoConvergence
		res  = math.NaN()
	)
	if errors.As(err, &se) {
		return se
	}
	switch {
	case errors.Is(err, shock.ErrInvalidShock):
		kind = InvalidShockCondition
	case errors.Is(err, nozzle.ErrBranchAmbiguity):
		kind = BranchAmbiguity
	case errors.Is(err, rootfind.ErrNoConvergence):
		kind = NoConvergence
	case errors.Is(err, gas.ErrBadState), errors.Is(err, gas.ErrUnknownGas),
		errors.Is(err, nozzle.ErrAreaRatio), errors.Is(err, nozzle.ErrExitMach):
		kind = InvalidInput
	}
	if errors.As(err, &rerr) {
		res = rerr.Residual
	}
	return &Error{Kind: kind, Stage: st, Residual: res, Err: err}
}
