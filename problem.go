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

package lpclass

import "math"

// Engine is the optimization collaborator a Model is solved with.
type Engine interface {
	Solve(prob *Problem) (*Solution, error)
}

// Supporter is implemented by engines that only handle a subset of models.
type Supporter interface {
	Supports(prob *Problem) bool
}

// Problem is a read-only snapshot of a Model.
type Problem struct {
	Name      string
	Direction Direction
	Columns   []Column
	Rows      []Row
}

type Column struct {
	Name      string
	Type      VariableType
	Objective float64
	Lower     float64
	Upper     float64
}

// Row is the linear constraint Lower <= sum(Coefs[k] * x[Index[k]]) <= Upper.
type Row struct {
	Name  string
	Lower float64
	Upper float64
	Index []int
	Coefs []float64
}

// IsEquality reports whether both sides of the row are the same finite value.
func (r Row) IsEquality() bool {
	return r.Lower == r.Upper && !math.IsInf(r.Lower, 0)
}

// Solution is what an Engine reports back. Values and Objective are only
// meaningful when Status is SolutionOptimal.
type Solution struct {
	Status    SolveStatus
	Values    []float64
	Objective float64
}

// Evaluate returns the objective value of the given assignment.
func (prob *Problem) Evaluate(values []float64) float64 {
	var z float64
	for i, c := range prob.Columns {
		z += c.Objective * values[i]
	}
	return z
}

// IsInteger reports whether the column must take integral values.
func (c Column) IsInteger() bool {
	return c.Type == IntegerVariable || c.Type == BinaryVariable
}
