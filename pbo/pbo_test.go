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
package pbo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crillab/gophersat/solver"

	"github.com/costela/lpclass"
)

func newModel(t *testing.T, dir lpclass.Direction) *lpclass.Model {
	t.Helper()

	model, err := lpclass.NewModel("test", dir, lpclass.WithEngine(New()))
	require.NoError(t, err)

	return model
}

func TestSupports(t *testing.T) {
	s := New()

	model := newModel(t, lpclass.Minimize)
	x, _ := model.AddBinaryVariable("x")
	y, _ := model.AddBinaryVariable("y")
	require.NoError(t, model.AddConstraint(1, math.Inf(1), []*lpclass.Variable{x, y}, []float64{1, 1}))
	assert.True(t, s.Supports(model.Problem()))

	y.SetObjectiveCoefficient(0.25)
	assert.True(t, s.Supports(model.Problem()))

	y.SetObjectiveCoefficient(1.0 / 3)
	assert.False(t, s.Supports(model.Problem()))

	y.SetObjectiveCoefficient(1)
	_, _ = model.AddVariable("z")
	assert.False(t, s.Supports(model.Problem()))

	_, err := s.Solve(model.Problem())
	assert.ErrorIs(t, err, ErrUnsupportedProblem)
}

func TestEncode(t *testing.T) {
	prob := &lpclass.Problem{
		Direction: lpclass.Maximize,
		Columns: []lpclass.Column{
			{Name: "a", Type: lpclass.BinaryVariable, Objective: 3, Upper: 1},
			{Name: "b", Type: lpclass.BinaryVariable, Objective: -2, Upper: 1},
			{Name: "c", Type: lpclass.BinaryVariable, Lower: 1, Upper: 1},
			{Name: "d", Type: lpclass.BinaryVariable, Objective: 1, Upper: 1},
		},
		Rows: []lpclass.Row{
			{Name: "r0", Lower: math.Inf(-1), Upper: 1, Index: []int{0, 1}, Coefs: []float64{1, 1}},
			{Name: "r1", Lower: 1, Upper: 1, Index: []int{0, 2, 0}, Coefs: []float64{1, 1, 1}},
			{Name: "r2", Lower: 0, Upper: 2, Index: []int{1, 3}, Coefs: []float64{1, 1}},
		},
	}

	e, ok := encode(prob)
	require.True(t, ok)

	expected := []solver.PBConstr{
		{Lits: []int{3}, Weights: []int{1}, AtLeast: 1},
		{Lits: []int{-1, -2}, Weights: []int{1, 1}, AtLeast: 1},
		{Lits: []int{1, 3}, Weights: []int{2, 1}, AtLeast: 1},
		{Lits: []int{-1, -3}, Weights: []int{2, 1}, AtLeast: 2},
	}
	assert.Equal(t, expected, e.constraints)
	assert.Equal(t, []int{-3, 2, 0, -1}, e.weights)
	// r2 can never be violated, so d is left to its objective
	assert.Equal(t, []bool{true, true, true, false}, e.used)

	sol, err := New().Solve(prob)
	require.NoError(t, err)
	assert.Equal(t, lpclass.SolutionOptimal, sol.Status)
	// 2a + c = 1 with c fixed at 1 forces a to 0
	assert.Equal(t, []float64{0, 0, 1, 1}, sol.Values)
	assert.InDelta(t, 1, sol.Objective, 1e-9)
}

func TestEncodeDecimals(t *testing.T) {
	prob := &lpclass.Problem{
		Columns: []lpclass.Column{
			{Name: "a", Type: lpclass.BinaryVariable, Objective: 0.5, Upper: 1},
			{Name: "b", Type: lpclass.BinaryVariable, Objective: 1.25, Upper: 1},
		},
		Rows: []lpclass.Row{
			{Name: "r0", Lower: 0.5, Upper: math.Inf(1), Index: []int{0, 1}, Coefs: []float64{0.5, 0.5}},
		},
	}

	e, ok := encode(prob)
	require.True(t, ok)
	assert.Equal(t, []solver.PBConstr{{Lits: []int{1, 2}, Weights: []int{5, 5}, AtLeast: 5}}, e.constraints)
	assert.Equal(t, []int{50, 125}, e.weights)

	sol, err := New().Solve(prob)
	require.NoError(t, err)
	assert.Equal(t, lpclass.SolutionOptimal, sol.Status)
	assert.Equal(t, []float64{1, 0}, sol.Values)
	assert.InDelta(t, 0.5, sol.Objective, 1e-9)
}

func TestCostBound(t *testing.T) {
	e := &encoding{
		weights: []int{50, -125, 7},
		used:    []bool{true, true, false},
	}

	assert.Equal(t, 0, e.cost([]bool{false, true, true}))
	assert.Equal(t, 175, e.cost([]bool{true, false, false}))
	// columns beyond the model count as 0
	assert.Equal(t, 175, e.cost([]bool{true}))

	bound, ok := e.atMost(60)
	require.True(t, ok)
	// 50 x1 + 125 ~x2 <= 60
	assert.Equal(t, solver.PBConstr{Lits: []int{-1, 2}, Weights: []int{50, 125}, AtLeast: 115}, bound)

	_, ok = (&encoding{weights: []int{0, 3}, used: []bool{true, false}}).atMost(1)
	assert.False(t, ok)
}

func TestWeightedObjective(t *testing.T) {
	model := newModel(t, lpclass.Minimize)

	x1, _ := model.AddDefinedVariable("x1", lpclass.BinaryVariable, 2, 0, 1)
	x2, _ := model.AddDefinedVariable("x2", lpclass.BinaryVariable, 5, 0, 1)
	require.NoError(t, model.AddConstraint(2, math.Inf(1), []*lpclass.Variable{x1, x2}, []float64{2, 2}))

	res, err := model.Solve()
	require.NoError(t, err)
	assert.Equal(t, 2.0, res.ObjectiveValue())
	assert.Equal(t, []float64{1, 0}, res.Values())
}

func TestWeightedAssignment(t *testing.T) {
	model := newModel(t, lpclass.Minimize)

	// 3x3 assignment with distinct costs, the optimum is the diagonal
	costs := [3][3]float64{{1, 7, 9}, {8, 2, 6}, {5, 9, 3}}
	var x [3][3]*lpclass.Variable
	for i := range x {
		for j := range x[i] {
			x[i][j], _ = model.AddDefinedVariable("", lpclass.BinaryVariable, costs[i][j], 0, 1)
		}
	}
	for i := 0; i < 3; i++ {
		row := []*lpclass.Variable{x[i][0], x[i][1], x[i][2]}
		col := []*lpclass.Variable{x[0][i], x[1][i], x[2][i]}
		require.NoError(t, model.AddConstraint(1, 1, row, []float64{1, 1, 1}))
		require.NoError(t, model.AddConstraint(1, 1, col, []float64{1, 1, 1}))
	}

	res, err := model.Solve()
	require.NoError(t, err)
	assert.Equal(t, 6.0, res.ObjectiveValue())
	for i := 0; i < 3; i++ {
		assert.Equal(t, 1.0, res.Value(x[i][i]))
	}
}

func TestSupportsMagnitude(t *testing.T) {
	s := New()

	prob := func(coefs []float64, upper float64) *lpclass.Problem {
		return &lpclass.Problem{
			Columns: []lpclass.Column{
				{Name: "a", Type: lpclass.BinaryVariable, Upper: 1},
				{Name: "b", Type: lpclass.BinaryVariable, Upper: 1},
			},
			Rows: []lpclass.Row{
				{Name: "budget", Lower: math.Inf(-1), Upper: upper, Index: []int{0, 1}, Coefs: coefs},
			},
		}
	}

	assert.True(t, s.Supports(prob([]float64{1e8, 0.01}, 2e8)))
	// scaled by 10^6 the first coefficient no longer fits
	assert.False(t, s.Supports(prob([]float64{1e13, 1e-6}, 2e13)))
	assert.False(t, s.Supports(prob([]float64{1, 1}, 1e17)))
	assert.False(t, s.Supports(prob([]float64{1 << 53, 1}, 1)))

	p := prob([]float64{1, 1}, 1)
	p.Columns[0].Objective = 1e16
	assert.False(t, s.Supports(p))

	_, err := s.Solve(prob([]float64{1e13, 1e-6}, 2e13))
	assert.ErrorIs(t, err, ErrUnsupportedProblem)
}

func TestEncodeTriviallyInfeasible(t *testing.T) {
	prob := &lpclass.Problem{
		Columns: []lpclass.Column{
			{Name: "a", Type: lpclass.BinaryVariable, Upper: 1},
			{Name: "b", Type: lpclass.BinaryVariable, Upper: 1},
		},
		Rows: []lpclass.Row{
			{Name: "r0", Lower: 3, Upper: math.Inf(1), Index: []int{0, 1}, Coefs: []float64{1, 1}},
		},
	}

	_, ok := encode(prob)
	assert.False(t, ok)

	sol, err := New().Solve(prob)
	require.NoError(t, err)
	assert.Equal(t, lpclass.SolutionInfeasible, sol.Status)
}

func TestKnapsack(t *testing.T) {
	model := newModel(t, lpclass.Maximize)

	values := []float64{10, 13, 7, 8}
	weights := []float64{5, 7, 4, 3}

	vars := make([]*lpclass.Variable, len(values))
	for i := range values {
		vars[i], _ = model.AddDefinedVariable("", lpclass.BinaryVariable, values[i], 0, 1)
	}
	require.NoError(t, model.AddConstraint(math.Inf(-1), 14, vars, weights))

	res, err := model.Solve()
	require.NoError(t, err)

	assert.Equal(t, 28.0, res.ObjectiveValue())
	assert.Equal(t, []float64{0, 1, 1, 1}, res.Values())
}

func TestCovering(t *testing.T) {
	model := newModel(t, lpclass.Minimize)

	vars := make([]*lpclass.Variable, 4)
	for i := range vars {
		vars[i], _ = model.AddBinaryVariable("")
	}
	for i := 0; i < len(vars)-1; i++ {
		require.NoError(t, model.AddConstraint(1, math.Inf(1), vars[i:i+2], []float64{1, 1}))
	}

	res, err := model.Solve()
	require.NoError(t, err)
	assert.Equal(t, 2.0, res.ObjectiveValue())
	for i := 0; i < len(vars)-1; i++ {
		assert.GreaterOrEqual(t, res.Value(vars[i])+res.Value(vars[i+1]), 1.0)
	}
}

func TestInfeasible(t *testing.T) {
	model := newModel(t, lpclass.Minimize)

	x, _ := model.AddBinaryVariable("x")
	require.NoError(t, model.AddConstraint(1, 1, []*lpclass.Variable{x}, []float64{2}))

	_, err := model.Solve()
	assert.ErrorIs(t, err, lpclass.ErrModelInfeasible)
}

func TestUnconstrainedColumns(t *testing.T) {
	model := newModel(t, lpclass.Maximize)

	x, _ := model.AddDefinedVariable("x", lpclass.BinaryVariable, 4, 0, 1)
	y, _ := model.AddDefinedVariable("y", lpclass.BinaryVariable, -1, 0, 1)

	res, err := model.Solve()
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Value(x))
	assert.Equal(t, 0.0, res.Value(y))
	assert.Equal(t, 4.0, res.ObjectiveValue())
}
