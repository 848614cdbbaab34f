/*
Copyright © 2015-2024 Leo Antunes <leo@costela.net>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.
*/

/*
Package pbo solves all-binary lpclass models as pseudo-boolean optimization
problems, using the CDCL solver from gophersat.

Only models whose columns are all 0/1 can be expressed. Coefficients may
carry up to six decimals: the objective and each row are scaled by a power
of ten before encoding, and the scaled values must stay below 2^53.
Supports reports whether a given problem qualifies. Unsupported problems
are rejected by Solve with ErrUnsupportedProblem.

The optimum is found by binary search on the objective: every step solves a
fresh decision problem bounding the cost, until no cheaper assignment exists.
*/
package pbo

import (
	"errors"
	"fmt"

	"github.com/crillab/gophersat/solver"

	"github.com/costela/lpclass"
)

var ErrUnsupportedProblem = errors.New("problem is not a pure 0/1 program with bounded decimal coefficients")

type Solver struct {
	logger lpclass.Logger
}

type Option func(*Solver)

func WithLogger(logger lpclass.Logger) Option {
	return func(s *Solver) {
		s.logger = logger
	}
}

func New(opts ...Option) *Solver {
	s := &Solver{
		logger: lpclass.LoggerFunc(func(...interface{}) {}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Supports reports whether prob can be handed to Solve.
func (s *Solver) Supports(prob *lpclass.Problem) bool {
	obj := make([]float64, len(prob.Columns))
	for j, c := range prob.Columns {
		if !isBoolean(c) {
			return false
		}
		obj[j] = c.Objective
	}
	m, ok := scaleFor(obj)
	if !ok || !fits(obj, m) {
		return false
	}
	for _, r := range prob.Rows {
		m, ok := scaleFor(r.Coefs)
		if !ok || !fits(r.Coefs, m, r.Lower, r.Upper) {
			return false
		}
	}
	return true
}

// Solve implements lpclass.Engine.
func (s *Solver) Solve(prob *lpclass.Problem) (*lpclass.Solution, error) {
	if !s.Supports(prob) {
		return nil, ErrUnsupportedProblem
	}

	e, feasible := encode(prob)
	if !feasible {
		s.logger.Print(fmt.Sprintf("pbo: %q trivially infeasible", prob.Name))
		return &lpclass.Solution{Status: lpclass.SolutionInfeasible}, nil
	}

	values := make([]float64, len(prob.Columns))
	for j, w := range e.weights {
		if !e.used[j] && w < 0 {
			values[j] = 1
		}
	}

	if len(e.constraints) > 0 {
		model := decide(e.constraints)
		if model == nil {
			s.logger.Print(fmt.Sprintf("pbo: %q unsatisfiable", prob.Name))
			return &lpclass.Solution{Status: lpclass.SolutionInfeasible}, nil
		}

		best := e.cost(model)
		for lo, hi := 0, best-1; lo <= hi; {
			mid := lo + (hi-lo)/2
			bound, ok := e.atMost(mid)
			if !ok {
				break
			}
			m := decide(append(e.constraints[:len(e.constraints):len(e.constraints)], bound))
			if m == nil {
				lo = mid + 1
				continue
			}
			model, best = m, e.cost(m)
			hi = best - 1
		}

		for j := range values {
			if e.used[j] && j < len(model) && model[j] {
				values[j] = 1
			}
		}
	}

	obj := prob.Evaluate(values)
	s.logger.Print(fmt.Sprintf("pbo: %q optimal, objective %g", prob.Name, obj))

	return &lpclass.Solution{
		Status:    lpclass.SolutionOptimal,
		Values:    values,
		Objective: obj,
	}, nil
}

// decide solves the decision problem made of constrs and returns a
// satisfying assignment, or nil when there is none.
func decide(constrs []solver.PBConstr) []bool {
	// gophersat sorts and shrinks the slices it is given
	owned := make([]solver.PBConstr, len(constrs))
	for i, c := range constrs {
		owned[i] = solver.PBConstr{Lits: clone(c.Lits), Weights: clone(c.Weights), AtLeast: c.AtLeast}
	}

	sat := solver.New(solver.ParsePBConstrs(owned))
	if sat.Solve() != solver.Sat {
		return nil
	}
	return sat.Model()
}
