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

// Package mip is a pure Go optimization engine for lpclass models. Linear
// relaxations are solved with gonum's simplex implementation, integer and
// binary columns are enforced by depth-first branch-and-bound.
package mip

import (
	"errors"
	"fmt"
	"math"

	"github.com/costela/lpclass"
)

const (
	DefaultNodeLimit            = 100000
	DefaultIntegralityTolerance = 1e-6
	DefaultLPTolerance          = 1e-9
)

/* Types */

type Solver struct {
	nodeLimit int
	intTol    float64
	lpTol     float64
	logger    lpclass.Logger
}

type Option func(*Solver) error

// WithNodeLimit bounds the number of branch-and-bound nodes explored. A
// search that hits the limit reports lpclass.SolutionNotFound.
func WithNodeLimit(n int) Option {
	return func(s *Solver) error {
		if n <= 0 {
			return fmt.Errorf("node limit must be positive, got %d", n)
		}
		s.nodeLimit = n
		return nil
	}
}

// WithIntegralityTolerance sets how far from an integer a relaxed value may
// be and still count as integral.
func WithIntegralityTolerance(tol float64) Option {
	return func(s *Solver) error {
		if tol <= 0 || tol >= 0.5 {
			return fmt.Errorf("integrality tolerance must be in (0, 0.5), got %g", tol)
		}
		s.intTol = tol
		return nil
	}
}

// WithLPTolerance sets the reduced cost below which a relaxation counts as
// optimal.
func WithLPTolerance(tol float64) Option {
	return func(s *Solver) error {
		if tol <= 0 || tol >= 1e-3 {
			return fmt.Errorf("LP tolerance must be in (0, 1e-3), got %g", tol)
		}
		s.lpTol = tol
		return nil
	}
}

func WithLogger(logger lpclass.Logger) Option {
	return func(s *Solver) error {
		s.logger = logger
		return nil
	}
}

/* Solver related functions */

// New returns a solver with the given options applied. Invalid options
// panic, use NewSolver to get an error instead.
func New(opts ...Option) *Solver {
	s, err := NewSolver(opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func NewSolver(opts ...Option) (*Solver, error) {
	s := &Solver{
		nodeLimit: DefaultNodeLimit,
		intTol:    DefaultIntegralityTolerance,
		lpTol:     DefaultLPTolerance,
		logger:    lpclass.LoggerFunc(func(...interface{}) {}),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("applying solver option: %w", err)
		}
	}

	return s, nil
}

// Solve implements lpclass.Engine.
func (s *Solver) Solve(prob *lpclass.Problem) (*lpclass.Solution, error) {
	if err := validate(prob); err != nil {
		return nil, err
	}

	res, err := s.branchAndBound(prob)
	if err != nil {
		return nil, err
	}

	s.logger.Print(fmt.Sprintf("mip: %q %s after %d nodes", prob.Name, res.status, res.nodes))

	sol := &lpclass.Solution{Status: res.status}
	if res.status == lpclass.SolutionOptimal {
		if err := checkFeasible(prob, res.x); err != nil {
			return nil, err
		}
		sol.Values = res.x
		sol.Objective = prob.Evaluate(res.x)
	}

	return sol, nil
}

var (
	errMalformedProblem = errors.New("malformed problem")
	// errNumerical reports a relaxation gonum could not solve reliably,
	// usually because the coefficients span too many orders of magnitude.
	errNumerical = errors.New("numerical failure")
)

func validate(prob *lpclass.Problem) error {
	for i, c := range prob.Columns {
		if math.IsNaN(c.Objective) || math.IsInf(c.Objective, 0) {
			return fmt.Errorf("%w: column %q has objective coefficient %g", errMalformedProblem, c.Name, c.Objective)
		}
		if math.IsNaN(c.Lower) || math.IsNaN(c.Upper) {
			return fmt.Errorf("%w: column %d has NaN bounds", errMalformedProblem, i)
		}
	}
	for _, r := range prob.Rows {
		if len(r.Index) != len(r.Coefs) {
			return fmt.Errorf("%w: row %q has %d indices and %d coefficients", errMalformedProblem, r.Name, len(r.Index), len(r.Coefs))
		}
		for _, j := range r.Index {
			if j < 0 || j >= len(prob.Columns) {
				return fmt.Errorf("%w: row %q references column %d", errMalformedProblem, r.Name, j)
			}
		}
		for _, a := range r.Coefs {
			if math.IsNaN(a) || math.IsInf(a, 0) {
				return fmt.Errorf("%w: row %q has coefficient %g", errMalformedProblem, r.Name, a)
			}
		}
	}
	return nil
}

// feasibility tolerance relative to the magnitude of each row
const feasibilityTolerance = 1e-6

// checkFeasible verifies x against the bounds and rows of prob, catching
// relaxations that gonum solved inaccurately.
func checkFeasible(prob *lpclass.Problem, x []float64) error {
	within := func(v, lower, upper, magnitude float64) bool {
		scale := math.Max(1, magnitude)
		if !math.IsInf(lower, 0) {
			scale = math.Max(scale, math.Abs(lower))
		}
		if !math.IsInf(upper, 0) {
			scale = math.Max(scale, math.Abs(upper))
		}
		tol := feasibilityTolerance * scale
		return v >= lower-tol && v <= upper+tol
	}

	for j, c := range prob.Columns {
		if !within(x[j], c.Lower, c.Upper, math.Abs(x[j])) {
			return fmt.Errorf("%w: column %q = %g outside [%g, %g]", errNumerical, c.Name, x[j], c.Lower, c.Upper)
		}
	}
	for _, r := range prob.Rows {
		var activity, magnitude float64
		for k, j := range r.Index {
			activity += r.Coefs[k] * x[j]
			magnitude += math.Abs(r.Coefs[k] * x[j])
		}
		if !within(activity, r.Lower, r.Upper, magnitude) {
			return fmt.Errorf("%w: row %q = %g outside [%g, %g]", errNumerical, r.Name, activity, r.Lower, r.Upper)
		}
	}
	return nil
}
