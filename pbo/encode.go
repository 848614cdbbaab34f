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

	"github.com/crillab/gophersat/solver"

	"github.com/costela/lpclass"
)

const (
	integralTolerance = 1e-9
	maxDecimals       = 6
	// maxWeight bounds every scaled coefficient sum and bound, keeping them
	// exact in a float64 and clear of overflow in gophersat's int sums.
	maxWeight = 1 << 53
)

func isIntegral(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && math.Abs(f-math.Round(f)) <= integralTolerance
}

// scaleFor returns the smallest power of ten, up to 10^maxDecimals, that
// makes every value integral.
func scaleFor(vals []float64) (float64, bool) {
	m := 1.0
	for k := 0; k <= maxDecimals; k++ {
		ok := true
		for _, v := range vals {
			if !isIntegral(v * m) {
				ok = false
				break
			}
		}
		if ok {
			return m, true
		}
		m *= 10
	}
	return 0, false
}

// fits reports whether vals scaled by m, and their absolute sum, stay below
// maxWeight, along with every finite bound.
func fits(vals []float64, m float64, bounds ...float64) bool {
	var sum float64
	for _, v := range vals {
		sum += math.Abs(m * v)
	}
	if sum > maxWeight {
		return false
	}
	for _, b := range bounds {
		if !math.IsInf(b, 0) && math.Abs(m*b) > maxWeight {
			return false
		}
	}
	return true
}

func isBoolean(c lpclass.Column) bool {
	switch c.Type {
	case lpclass.BinaryVariable, lpclass.IntegerVariable:
		return c.Lower > -1+integralTolerance && c.Upper < 2-integralTolerance && c.Lower <= c.Upper
	}
	return false
}

// encoding is prob written as gophersat constraints. Column j of prob
// becomes variable j+1.
type encoding struct {
	constraints []solver.PBConstr
	// weights is the scaled objective of each column, in the minimization
	// sense.
	weights []int
	// used marks the columns that appear in constraints. The others are free
	// and take their cheapest value.
	used []bool
}

// encode builds the encoding of prob. The second return value is false when
// a row is violated regardless of the assignment. Supports must hold for
// prob.
func encode(prob *lpclass.Problem) (*encoding, bool) {
	e := &encoding{
		weights: make([]int, len(prob.Columns)),
		used:    make([]bool, len(prob.Columns)),
	}

	obj := make([]float64, len(prob.Columns))
	for j, c := range prob.Columns {
		obj[j] = c.Objective
	}
	sense, _ := scaleFor(obj)
	if prob.Direction == lpclass.Maximize {
		sense = -sense
	}
	for j, c := range prob.Columns {
		e.weights[j] = int(math.Round(sense * c.Objective))
	}

	for j, c := range prob.Columns {
		if math.Ceil(c.Lower-integralTolerance) >= 1 {
			e.constraints = append(e.constraints, solver.GtEq([]int{j + 1}, []int{1}, 1))
			e.used[j] = true
		}
		if math.Floor(c.Upper+integralTolerance) <= 0 {
			e.constraints = append(e.constraints, solver.LtEq([]int{j + 1}, []int{1}, 0))
			e.used[j] = true
		}
	}

	for _, r := range prob.Rows {
		m, _ := scaleFor(r.Coefs)
		cols, coefs := merge(r, m)

		lo, hi := math.Ceil(m*r.Lower-integralTolerance), math.Floor(m*r.Upper+integralTolerance)
		if lo > hi {
			return nil, false
		}

		minLHS, maxLHS := span(coefs)
		if lo > maxLHS || hi < minLHS {
			return nil, false
		}
		if len(cols) == 0 {
			continue
		}

		n := len(e.constraints)
		if lo == hi {
			e.constraints = append(e.constraints, solver.Eq(literals(cols), clone(coefs), int(lo))...)
		} else {
			// sides the assignment cannot violate are left out
			if lo > minLHS {
				e.constraints = append(e.constraints, solver.GtEq(literals(cols), clone(coefs), int(lo)))
			}
			if hi < maxLHS {
				e.constraints = append(e.constraints, solver.LtEq(literals(cols), clone(coefs), int(hi)))
			}
		}
		if len(e.constraints) > n {
			for _, j := range cols {
				e.used[j] = true
			}
		}
	}

	return e, true
}

// cost is the objective of model over the used columns, shifted so that it
// is never negative: a negative weight w counts |w| when its column is 0.
func (e *encoding) cost(model []bool) int {
	var c int
	for j, w := range e.weights {
		if !e.used[j] {
			continue
		}
		set := j < len(model) && model[j]
		switch {
		case w > 0 && set:
			c += w
		case w < 0 && !set:
			c -= w
		}
	}
	return c
}

// atMost returns the constraint cost <= limit, and false when no used
// column carries a weight.
func (e *encoding) atMost(limit int) (solver.PBConstr, bool) {
	var lits, weights []int
	for j, w := range e.weights {
		if !e.used[j] || w == 0 {
			continue
		}
		if w > 0 {
			lits = append(lits, j+1)
			weights = append(weights, w)
		} else {
			lits = append(lits, -(j + 1))
			weights = append(weights, -w)
		}
	}
	if len(lits) == 0 {
		return solver.PBConstr{}, false
	}
	return solver.LtEq(lits, weights, limit), true
}

func literals(cols []int) []int {
	lits := make([]int, len(cols))
	for i, j := range cols {
		lits[i] = j + 1
	}
	return lits
}

func clone(vals []int) []int {
	return append([]int(nil), vals...)
}

// merge sums repeated columns of r, scaled by m, and drops zero
// coefficients.
func merge(r lpclass.Row, m float64) ([]int, []int) {
	pos := make(map[int]int, len(r.Index))
	var cols, coefs []int
	for k, j := range r.Index {
		a := int(math.Round(m * r.Coefs[k]))
		if i, ok := pos[j]; ok {
			coefs[i] += a
			continue
		}
		pos[j] = len(cols)
		cols = append(cols, j)
		coefs = append(coefs, a)
	}

	n := 0
	for i := range cols {
		if coefs[i] != 0 {
			cols[n], coefs[n] = cols[i], coefs[i]
			n++
		}
	}
	return cols[:n], coefs[:n]
}

// span returns the smallest and largest values a 0/1 combination of coefs
// can take.
func span(coefs []int) (float64, float64) {
	var lo, hi int
	for _, a := range coefs {
		if a < 0 {
			lo += a
		} else {
			hi += a
		}
	}
	return float64(lo), float64(hi)
}
