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

package render

import (
	"errors"

	"github.com/costela/lpclass"
	"github.com/costela/lpclass/form"
)

type Category string

const (
	CategoryInvalidInput      Category = "Invalid input"
	CategoryInfeasible        Category = "Infeasible model"
	CategoryUnbounded         Category = "Unbounded or indeterminate model"
	CategoryNoSolution        Category = "No solution found"
	CategorySolverUnavailable Category = "Solver unavailable"
)

// Classify maps err to its category and the detail worth showing: the field
// name and reason for invalid input, the solver status otherwise.
func Classify(err error) (Category, string) {
	var invalid *form.InvalidInputError
	var solveErr lpclass.SolveError

	switch {
	case errors.As(err, &invalid):
		return CategoryInvalidInput, invalid.Field + ": " + invalid.Reason
	case errors.As(err, &solveErr):
		switch solveErr {
		case lpclass.ErrModelInfeasible:
			return CategoryInfeasible, solveErr.Status().String()
		case lpclass.ErrModelUnbounded:
			return CategoryUnbounded, solveErr.Status().String()
		default:
			return CategoryNoSolution, solveErr.Status().String()
		}
	case errors.Is(err, form.ErrInvalidInput):
		return CategoryInvalidInput, err.Error()
	default:
		return CategorySolverUnavailable, err.Error()
	}
}

// Failure renders err as a single line: the category, then the detail.
func Failure(err error) string {
	cat, detail := Classify(err)
	return string(cat) + ": " + detail
}

func FailureDocument(err error) Document {
	cat, detail := Classify(err)
	return Document{Category: string(cat), Detail: detail}
}
