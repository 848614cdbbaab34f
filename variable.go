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

type Variable struct {
	model   *Model
	index   int
	name    string
	varType VariableType
	coef    float64
	lower   float64
	upper   float64
}

type VariableType int

const (
	ContinuousVariable VariableType = iota
	IntegerVariable
	BinaryVariable
)

func (t VariableType) String() string {
	switch t {
	case IntegerVariable:
		return "integer"
	case BinaryVariable:
		return "binary"
	default:
		return "continuous"
	}
}

/* Variable-related functions (model variables, as opposed to Go variables) */

// Name returns the variable's name, unique within its model.
func (v *Variable) Name() string {
	return v.name
}

// Index returns the variable's column position in its model.
func (v *Variable) Index() int {
	return v.index
}

// SetType changes the variable's domain. Setting BinaryVariable also
// resets the bounds to [0, 1].
func (v *Variable) SetType(varType VariableType) {
	v.varType = varType
	if varType == BinaryVariable {
		v.lower, v.upper = 0, 1
	}
}

func (v *Variable) Type() VariableType {
	return v.varType
}

// SetBounds sets the boundaries for the given variable.
// To set a bound to infinity, pass math.Inf(1) or math.Inf(-1).
func (v *Variable) SetBounds(lower, upper float64) {
	v.lower, v.upper = lower, upper
}

func (v *Variable) Bounds() (lower, upper float64) {
	return v.lower, v.upper
}

// SetObjectiveCoefficient sets the variable's coefficient in the
// objective function.
func (v *Variable) SetObjectiveCoefficient(coef float64) {
	v.coef = coef
}

func (v *Variable) Coefficient() float64 {
	return v.coef
}
