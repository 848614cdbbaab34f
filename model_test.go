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

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedEngine answers every Solve with a fixed solution and records the
// problem it was handed.
type scriptedEngine struct {
	sol  *Solution
	err  error
	seen *Problem
}

func (e *scriptedEngine) Solve(prob *Problem) (*Solution, error) {
	e.seen = prob
	return e.sol, e.err
}

func TestInstantiation(t *testing.T) {
	name := "test model 1"
	model, err := NewModel(name, Maximize)
	require.NoError(t, err)

	assert.Equal(t, name, model.Name())
	assert.Equal(t, Maximize, model.Direction())

	model.SetDirection(Minimize)
	assert.Equal(t, Minimize, model.Direction())
}

func TestWithEngineNil(t *testing.T) {
	_, err := NewModel("test", Minimize, WithEngine(nil))
	assert.Error(t, err)
}

func TestClone(t *testing.T) {
	name := "test model 1"
	model, err := NewModel(name, Maximize)
	require.NoError(t, err)

	v, err := model.AddDefinedVariable("x", ContinuousVariable, 1, 2, 3)
	require.NoError(t, err)

	err = model.AddConstraint(0, 1, []*Variable{v}, []float64{1})
	require.NoError(t, err)

	modelClone := model.Clone()

	assert.Equal(t, model.Name(), modelClone.Name())
	assert.Equal(t, model.Direction(), modelClone.Direction())
	assert.Equal(t, model.VariableCount(), modelClone.VariableCount())
	assert.Equal(t, model.ConstraintCount(), modelClone.ConstraintCount())

	// variables of the clone are its own
	cv := modelClone.VariableByName("x")
	require.NotNil(t, cv)
	assert.NotSame(t, v, cv)
	assert.ErrorIs(t, modelClone.AddConstraint(0, 1, []*Variable{v}, []float64{1}), ErrForeignVariable)

	cv.SetBounds(5, 6)
	l, h := v.Bounds()
	assert.Equal(t, 2.0, l)
	assert.Equal(t, 3.0, h)
}

func TestAddVariableWithDetails(t *testing.T) {
	model, err := NewModel("test", Maximize)
	require.NoError(t, err)

	v1, err := model.AddDefinedVariable("x", BinaryVariable, 3.1416, -4, 8)
	require.NoError(t, err)

	assert.Equal(t, "x", v1.Name())
	assert.Equal(t, BinaryVariable, v1.Type())
	assert.Equal(t, 3.1416, v1.Coefficient())
	l, h := v1.Bounds()
	assert.Equal(t, 0.0, l)
	assert.Equal(t, 1.0, h)

	v2, err := model.AddDefinedVariable("y", ContinuousVariable, -1, math.Inf(-1), 5)
	require.NoError(t, err)

	assert.Equal(t, "y", v2.Name())
	assert.Equal(t, 1, v2.Index())
	assert.Equal(t, ContinuousVariable, v2.Type())
	assert.Equal(t, -1.0, v2.Coefficient())
	l, h = v2.Bounds()
	assert.Equal(t, math.Inf(-1), l)
	assert.Equal(t, 5.0, h)
}

func TestAddVariableNames(t *testing.T) {
	model, err := NewModel("test", Minimize)
	require.NoError(t, err)

	v, err := model.AddVariable("")
	require.NoError(t, err)
	assert.Equal(t, "V0", v.Name())

	_, err = model.AddVariable("V0")
	assert.ErrorIs(t, err, ErrDuplicateVariable)

	assert.Same(t, v, model.VariableByName("V0"))
	assert.Nil(t, model.VariableByName("nope"))
	assert.Equal(t, []*Variable{v}, model.Variables())
}

func TestSetObjectiveFunction(t *testing.T) {
	model, err := NewModel("test", Maximize)
	require.NoError(t, err)

	v1, _ := model.AddVariable("x")
	v2, _ := model.AddVariable("y")
	v2.SetType(IntegerVariable)
	v3, _ := model.AddVariable("z")
	v3.SetType(BinaryVariable)

	vars := []*Variable{v1, v2, v3}
	coefs := []float64{1.3, 2.7182, 3.1416}
	require.NoError(t, model.SetObjectiveFunction(coefs, vars))
	for i, coef := range coefs {
		assert.Equal(t, coef, vars[i].Coefficient())
	}

	assert.Error(t, model.SetObjectiveFunction(coefs[:1], vars))
}

func TestAddConstraintErrors(t *testing.T) {
	model, err := NewModel("test", Minimize)
	require.NoError(t, err)
	other, err := NewModel("other", Minimize)
	require.NoError(t, err)

	x, _ := model.AddVariable("x")
	y, _ := other.AddVariable("y")

	assert.Error(t, model.AddConstraint(0, 1, []*Variable{x}, []float64{1, 2}))
	assert.Error(t, model.AddConstraint(2, 1, []*Variable{x}, []float64{1}))
	assert.ErrorIs(t, model.AddConstraint(0, 1, []*Variable{y}, []float64{1}), ErrForeignVariable)
	assert.ErrorIs(t, model.AddConstraint(0, 1, []*Variable{nil}, []float64{1}), ErrForeignVariable)
	assert.Equal(t, 0, model.ConstraintCount())
}

func TestProblemSnapshot(t *testing.T) {
	model, err := NewModel("snap", Maximize)
	require.NoError(t, err)

	x, _ := model.AddDefinedVariable("x", ContinuousVariable, 2, 0, 10)
	y, _ := model.AddIntegerVariable("y")
	require.NoError(t, model.AddNamedConstraint("cap", math.Inf(-1), 4, []*Variable{x, y}, []float64{1, 3}))
	require.NoError(t, model.AddConstraint(1, 1, []*Variable{y}, []float64{1}))

	expected := &Problem{
		Name:      "snap",
		Direction: Maximize,
		Columns: []Column{
			{Name: "x", Type: ContinuousVariable, Objective: 2, Lower: 0, Upper: 10},
			{Name: "y", Type: IntegerVariable, Objective: 1, Lower: 0, Upper: math.Inf(1)},
		},
		Rows: []Row{
			{Name: "cap", Lower: math.Inf(-1), Upper: 4, Index: []int{0, 1}, Coefs: []float64{1, 3}},
			{Name: "R1", Lower: 1, Upper: 1, Index: []int{1}, Coefs: []float64{1}},
		},
	}

	prob := model.Problem()
	if diff := cmp.Diff(expected, prob); diff != "" {
		t.Errorf("problem snapshot mismatch (-want +got):\n%s", diff)
	}

	assert.False(t, prob.Rows[0].IsEquality())
	assert.True(t, prob.Rows[1].IsEquality())
	assert.True(t, prob.Columns[1].IsInteger())
	assert.Equal(t, 11.0, prob.Evaluate([]float64{5, 1}))

	// later changes do not leak into the snapshot
	x.SetObjectiveCoefficient(7)
	assert.Equal(t, 2.0, prob.Columns[0].Objective)
}

func TestSolveWithoutEngine(t *testing.T) {
	model, err := NewModel("test", Minimize)
	require.NoError(t, err)

	_, err = model.Solve()
	assert.ErrorIs(t, err, ErrNoEngine)
}

func TestSolveOptimal(t *testing.T) {
	engine := &scriptedEngine{sol: &Solution{Status: SolutionOptimal, Values: []float64{1, 2}, Objective: 5}}

	var logged []string
	logger := LoggerFunc(func(v ...interface{}) {
		logged = append(logged, v[0].(string))
	})

	model, err := NewModel("test", Minimize, WithEngine(engine), WithLogger(logger))
	require.NoError(t, err)

	x, _ := model.AddVariable("x")
	y, _ := model.AddVariable("y")

	res, err := model.Solve()
	require.NoError(t, err)

	assert.Equal(t, "test", engine.seen.Name)
	assert.Equal(t, SolutionOptimal, res.Status())
	assert.Equal(t, 1.0, res.Value(x))
	assert.Equal(t, 2.0, res.Value(y))
	assert.Equal(t, 5.0, res.ObjectiveValue())
	assert.Len(t, logged, 2)

	// results are detached from the engine's slice
	engine.sol.Values[0] = 42
	assert.Equal(t, 1.0, res.Value(x))
}

func TestSolveStatuses(t *testing.T) {
	tests := []struct {
		status   SolveStatus
		expected error
		message  string
	}{
		{SolutionInfeasible, ErrModelInfeasible, "model is infeasible"},
		{SolutionUnbounded, ErrModelUnbounded, "model is unbounded or indeterminate"},
		{SolutionNotFound, ErrNoFeasibleFound, "no optimal solution found"},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			engine := &scriptedEngine{sol: &Solution{Status: tt.status}}
			model, err := NewModel("test", Minimize, WithEngine(engine))
			require.NoError(t, err)

			res, err := model.Solve()
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.expected)
			assert.EqualError(t, err, tt.message)

			var solveErr SolveError
			require.True(t, errors.As(err, &solveErr))
			assert.Equal(t, tt.status, solveErr.Status())
		})
	}
}

func TestSolveEngineFailure(t *testing.T) {
	engine := &scriptedEngine{err: errors.New("boom")}
	model, err := NewModel("test", Minimize, WithEngine(engine))
	require.NoError(t, err)

	_, err = model.Solve()
	assert.ErrorIs(t, err, ErrEngineFailure)
	assert.Contains(t, err.Error(), "boom")

	engine.err = nil
	engine.sol = &Solution{Status: SolutionOptimal, Values: []float64{1}}
	_, err = model.Solve()
	assert.ErrorIs(t, err, ErrEngineFailure)
}
