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

import "errors"

/* Types */

type SolveResult struct {
	model     *Model
	status    SolveStatus
	values    []float64
	objective float64
}

type SolveStatus int

const (
	SolutionOptimal SolveStatus = iota
	SolutionInfeasible
	SolutionUnbounded
	SolutionNotFound
)

func (s SolveStatus) String() string {
	switch s {
	case SolutionOptimal:
		return "optimal"
	case SolutionInfeasible:
		return "infeasible"
	case SolutionUnbounded:
		return "unbounded"
	case SolutionNotFound:
		return "no solution found"
	default:
		return "unknown"
	}
}

// SolveError is returned by Model.Solve for every terminal status other
// than SolutionOptimal.
type SolveError SolveStatus

const (
	ErrModelInfeasible = SolveError(SolutionInfeasible)
	ErrModelUnbounded  = SolveError(SolutionUnbounded)
	ErrNoFeasibleFound = SolveError(SolutionNotFound)
)

var (
	// ErrNoEngine is returned when solving a model that was created without WithEngine.
	ErrNoEngine = errors.New("no optimization engine configured")
	// ErrEngineFailure wraps errors reported by the engine itself.
	ErrEngineFailure = errors.New("optimization engine failure")
)

// Error returns a string representation of the given error value.
func (e SolveError) Error() string {
	switch e {
	case ErrModelInfeasible:
		return "model is infeasible"
	case ErrModelUnbounded:
		return "model is unbounded or indeterminate"
	case ErrNoFeasibleFound:
		return "no optimal solution found"
	default:
		panic("unrecognized error")
	}
}

// Status returns the terminal solver status carried by the error.
func (e SolveError) Status() SolveStatus {
	return SolveStatus(e)
}

// Status reports the status of the solution. Results are only ever
// handed out for optimal solutions.
func (res SolveResult) Status() SolveStatus {
	return res.status
}

// Value returns the computed value of the given variable for this
// optimization result.
func (res SolveResult) Value(v *Variable) float64 {
	return res.values[v.index]
}

// Values returns the computed values of all variables, ordered by index.
func (res SolveResult) Values() []float64 {
	return append([]float64(nil), res.values...)
}

// ObjectiveValue returns the value of the objective function for
// this optimization result.
func (res SolveResult) ObjectiveValue() float64 {
	return res.objective
}
