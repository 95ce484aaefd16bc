package tunnel

import (
	"context"
	"runtime"

	log "github.com/sirupsen/logrus"

	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/utils"
)

// Outcome pairs a sweep input with its result or error
type Outcome struct {
	Input  Input
	Result *Result
	Err    error
}

// Sweep solves independent inputs on degree goroutines (all CPUs when degree
// is below one). Outcomes come back in input order; failed solves carry their
// error and do not stop the sweep. Cancelling ctx stops work between solves and
// returns the context error with the outcomes finished so far.
func Sweep(ctx context.Context, s *Solver, inputs []Input, degree int) (out []Outcome, err error) {
	if len(inputs) == 0 {
		return
	}
	if degree < 1 {
		degree = runtime.NumCPU()
	}
	if degree > len(inputs) {
		degree = len(inputs)
	}
	var (
		pm = utils.NewPartitionMap(degree, len(inputs))
	)
	out = make([]Outcome, len(inputs))
	err = pm.Run(ctx, func(bn, k int) {
		r, e := s.Solve(inputs[k])
		out[k] = Outcome{Input: inputs[k], Result: r, Err: e}
		if e != nil {
			s.logger().WithFields(log.Fields{
				"case":   k,
				"thread": bn,
			}).WithError(e).Warn("sweep case failed")
		}
	})
	return
}
