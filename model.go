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
Package lpclass is a library for modelling small linear and mixed-integer
linear programs and handing them to a pluggable optimization engine.

As an example of the API, the model of the following problem:

	Maximize:
	  z = x1 + 2 x2 - 3 x3
	With:
	  0 <= x1 <= 40
	  5 <= x3 <= 11
	Subject to:
	  0 <= - x1 + x2 + 5.3 x3 <= 10
	  -inf <= 2 x1 - 5 x2 + 3 x3 <= 20
	  x2 - 8 x3 = 0

can be expressed with lpclass like this:

	package main

	import (
		"fmt"
		"math"

		"github.com/costela/lpclass"
		"github.com/costela/lpclass/mip"
	)

	func main() {
		model, _ := lpclass.NewModel("some model", lpclass.Maximize, lpclass.WithEngine(mip.New()))
		x1, _ := model.AddVariable("x1")
		x1.SetBounds(0, 40)
		x2, _ := model.AddVariable("x2")
		x2.SetObjectiveCoefficient(2)
		// alternatively, all information pertaining can be given at once:
		x3, _ := model.AddDefinedVariable("x3", lpclass.ContinuousVariable, -3, 5, 11)

		model.AddConstraint(0, 10, []*lpclass.Variable{x1, x2, x3}, []float64{-1, 1, 5.3})
		model.AddConstraint(math.Inf(-1), 20, []*lpclass.Variable{x1, x2, x3}, []float64{2, -5, 3})
		model.AddConstraint(0, 0, []*lpclass.Variable{x2, x3}, []float64{1, -8})

		result, err := model.Solve()
		if err != nil {
			// err is a SolveError for infeasible/unbounded models
			return
		}

		fmt.Printf("z = %f\n", result.ObjectiveValue())
		fmt.Printf("x1 = %f\n", result.Value(x1))
	}

The optimization itself is delegated to an Engine. This repository ships two:
package mip (simplex with branch-and-bound) and package pbo (pseudo-boolean
optimization for all-binary models).
*/
package lpclass

import (
	"errors"
	"fmt"
	"math"
)

/* Types */

type Model struct {
	name        string
	dir         Direction
	vars        []*Variable
	names       map[string]*Variable
	constraints []constraint
	engine      Engine
	logger      Logger
}

type constraint struct {
	name  string
	lower float64
	upper float64
	cols  []int
	coefs []float64
}

type Direction int

const (
	Minimize Direction = iota
	Maximize
)

func (d Direction) String() string {
	if d == Maximize {
		return "maximize"
	}
	return "minimize"
}

var (
	// ErrDuplicateVariable is returned when a variable name is already used in the model.
	ErrDuplicateVariable = errors.New("duplicate variable name")
	// ErrForeignVariable is returned when a constraint or objective references a
	// variable created by a different model.
	ErrForeignVariable = errors.New("variable does not belong to this model")
)

/* Model related functions */

// NewModel instantiates a new linear programming model, providing a
// name (purely informational) and a optimization direction (either
// Minimize or Maximize)
func NewModel(name string, dir Direction, opts ...Option) (*Model, error) {
	model := &Model{
		name:   name,
		dir:    dir,
		names:  make(map[string]*Variable),
		logger: noopLogger{},
	}

	for _, opt := range opts {
		if err := opt(model); err != nil {
			return nil, fmt.Errorf("applying model option: %w", err)
		}
	}

	return model, nil
}

// Clone returns a copy of the model. Variables of the clone are distinct
// from the original's but keep their indices, names and attributes.
func (model *Model) Clone() *Model {
	newModel := &Model{
		name:   model.name,
		dir:    model.dir,
		names:  make(map[string]*Variable, len(model.vars)),
		engine: model.engine,
		logger: model.logger,
	}

	newModel.vars = make([]*Variable, len(model.vars))
	for i, v := range model.vars {
		nv := *v
		nv.model = newModel
		newModel.vars[i] = &nv
		newModel.names[nv.name] = &nv
	}

	newModel.constraints = make([]constraint, len(model.constraints))
	for i, c := range model.constraints {
		c.cols = append([]int(nil), c.cols...)
		c.coefs = append([]float64(nil), c.coefs...)
		newModel.constraints[i] = c
	}

	return newModel
}

// Name returns the name provided upon instantiation of a model
func (model *Model) Name() string {
	return model.name
}

// SetDirection changes the direction of the model's optimization
func (model *Model) SetDirection(dir Direction) {
	model.dir = dir
}

// Direction returns the model's current optimization direction
func (model *Model) Direction() Direction {
	return model.dir
}

/* Column-related functions */

func (model *Model) VariableCount() int {
	return len(model.vars)
}

// Variables returns a new slice with the model's variables. Changes to the
// slice will not be reflected in the model.
func (model *Model) Variables() []*Variable {
	return append([]*Variable(nil), model.vars...)
}

// VariableByName returns the variable with the given name, or nil.
func (model *Model) VariableByName(name string) *Variable {
	return model.names[name]
}

// AddVariable adds a variable to the linear programming model and
// returns a reference to it.
// A freshly instantiated variable has the default type of
// ContinuousVariable, a lower bound of 0, no upper bound and an objective
// coefficient of 1.
//
// A variable is bound to its model. Attempting to use a variable
// created in one model in constraints of a different model fails with
// ErrForeignVariable.
//
// Empty names will automatically replaced by a unique name.
func (model *Model) AddVariable(name string) (*Variable, error) {
	return model.AddDefinedVariable(name, ContinuousVariable, 1, 0, math.Inf(1))
}

// AddBinaryVariable is a convenience function for adding a single
// named binary variable to the model, with a default coefficient of 1.
// Empty names will automatically replaced by a unique name.
func (model *Model) AddBinaryVariable(name string) (*Variable, error) {
	return model.AddDefinedVariable(name, BinaryVariable, 1, 0, 1)
}

// AddIntegerVariable is a convenience function for adding a single
// named non-negative integer variable to the model, with a default
// objective coefficient of 1.
// Empty names will automatically replaced by a unique name.
func (model *Model) AddIntegerVariable(name string) (*Variable, error) {
	return model.AddDefinedVariable(name, IntegerVariable, 1, 0, math.Inf(1))
}

// AddDefinedVariable add a variable to the linear programming model
// with its attributes passed as arguments.
// If varType is BinaryVariable, the bounds are ignored.
// Empty names will automatically replaced by a unique name.
func (model *Model) AddDefinedVariable(name string, varType VariableType, coefficient, lowerBound, upperBound float64) (*Variable, error) {
	size := len(model.vars)

	if name == "" {
		name = fmt.Sprintf("V%d", size)
	}
	if _, ok := model.names[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateVariable, name)
	}

	v := &Variable{
		model: model,
		index: size,
		name:  name,
	}
	model.vars = append(model.vars, v)
	model.names[name] = v

	v.SetType(varType)
	v.SetObjectiveCoefficient(coefficient)
	if varType != BinaryVariable {
		v.SetBounds(lowerBound, upperBound)
	}

	return v, nil
}

// SetObjectiveFunction defines the objective function for the model as
// a slice of coefficients and a slice of its respective variables.
// E.g.: an objective function of the form 2x+3y is passed as:
//
//	SetObjectiveFunction([]float64{2,3}, []*Variable{x, y})
//
// Where x and y are the return values of one of the Add*Variable
// functions. Variables not listed keep their current coefficient.
func (model *Model) SetObjectiveFunction(coefs []float64, vars []*Variable) error {
	if len(vars) != len(coefs) {
		return fmt.Errorf("inconsistent number of variables and coefficients: %d != %d", len(vars), len(coefs))
	}
	for _, v := range vars {
		if v == nil || v.model != model {
			return ErrForeignVariable
		}
	}
	for i, v := range vars {
		v.SetObjectiveCoefficient(coefs[i])
	}
	return nil
}

/* Constraint-related functions */

// ConstraintCount returns the number of individual constraints in
// the model
func (model *Model) ConstraintCount() int {
	return len(model.constraints)
}

// AddConstraint adds a constraint to the model as a lower and an upper
// bounds, a slice of variables and a slice of their respective
// coefficients.
// Equal bounds express an equality; an infinite bound leaves that side open.
func (model *Model) AddConstraint(lower, upper float64, vars []*Variable, coefs []float64) error {
	return model.AddNamedConstraint("", lower, upper, vars, coefs)
}

// AddNamedConstraint is like AddConstraint, but attaches a name to the
// constraint. Empty names will automatically replaced by a unique name.
func (model *Model) AddNamedConstraint(name string, lower, upper float64, vars []*Variable, coefs []float64) error {
	if len(vars) != len(coefs) {
		return fmt.Errorf("inconsistent number of variables and coefficients: %d != %d", len(vars), len(coefs))
	}
	if lower > upper {
		return fmt.Errorf("constraint lower bound %g exceeds upper bound %g", lower, upper)
	}

	cols := make([]int, len(vars))
	for i, v := range vars {
		if v == nil || v.model != model {
			return ErrForeignVariable
		}
		cols[i] = v.index
	}

	if name == "" {
		name = fmt.Sprintf("R%d", len(model.constraints))
	}

	model.constraints = append(model.constraints, constraint{
		name:  name,
		lower: lower,
		upper: upper,
		cols:  cols,
		coefs: append([]float64(nil), coefs...),
	})

	return nil
}

// Problem returns an immutable snapshot of the model, as handed to the
// engine on Solve.
func (model *Model) Problem() *Problem {
	prob := &Problem{
		Name:      model.name,
		Direction: model.dir,
		Columns:   make([]Column, len(model.vars)),
		Rows:      make([]Row, len(model.constraints)),
	}

	for i, v := range model.vars {
		prob.Columns[i] = Column{
			Name:      v.name,
			Type:      v.varType,
			Objective: v.coef,
			Lower:     v.lower,
			Upper:     v.upper,
		}
	}

	for i, c := range model.constraints {
		prob.Rows[i] = Row{
			Name:  c.name,
			Lower: c.lower,
			Upper: c.upper,
			Index: append([]int(nil), c.cols...),
			Coefs: append([]float64(nil), c.coefs...),
		}
	}

	return prob
}

// Solve attempts to find an optimal solution to the model.
// Information about the solution can be queried from the returned
// SolveResult value. Any outcome other than a proven optimum is returned as
// an error (a SolveError for infeasible, unbounded or unsolved models), and no
// SolveResult is returned alongside it.
func (model *Model) Solve() (*SolveResult, error) {
	if model.engine == nil {
		return nil, ErrNoEngine
	}

	prob := model.Problem()
	model.logger.Print(fmt.Sprintf("solving %q: %d variables, %d constraints", prob.Name, len(prob.Columns), len(prob.Rows)))

	sol, err := model.engine.Solve(prob)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineFailure, err)
	}

	switch sol.Status {
	case SolutionOptimal:
		if len(sol.Values) != len(model.vars) {
			return nil, fmt.Errorf("%w: engine returned %d values for %d variables", ErrEngineFailure, len(sol.Values), len(model.vars))
		}
	case SolutionInfeasible:
		return nil, ErrModelInfeasible
	case SolutionUnbounded:
		return nil, ErrModelUnbounded
	case SolutionNotFound:
		return nil, ErrNoFeasibleFound
	default:
		return nil, fmt.Errorf("%w: unrecognized status %d", ErrEngineFailure, sol.Status)
	}

	model.logger.Print(fmt.Sprintf("solved %q: objective %g", prob.Name, sol.Objective))

	return &SolveResult{
		model:     model,
		status:    sol.Status,
		values:    append([]float64(nil), sol.Values...),
		objective: sol.Objective,
	}, nil
}
