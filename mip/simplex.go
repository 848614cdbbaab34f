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

package mip

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/costela/lpclass"
)

// feasibility slack for rows that lose all their columns
const rowTolerance = 1e-9

type relaxStatus int

const (
	relaxOptimal relaxStatus = iota
	relaxInfeasible
	relaxUnbounded
)

type relaxation struct {
	status relaxStatus
	x      []float64 // values in the problem's own column space
	z      float64   // objective, always in the minimization sense
}

// stdColumn is a non-negative standard form column y contributing sign*y
// to the original column orig.
type stdColumn struct {
	orig int
	sign float64
}

// inequality is coefs·y <= rhs over the standard form columns.
type inequality struct {
	coefs []float64
	rhs   float64
}

// relax solves the LP relaxation of prob with column bounds overridden by
// lower and upper.
//
// The conversion to gonum's standard form (min cᵀy, Ay = b, y >= 0) shifts
// every column by its finite bound, splits free columns in two, and turns
// each row side into an inequality with its own slack. Equalities become two
// inequalities, so A always has full row rank.
func (s *Solver) relax(prob *lpclass.Problem, lower, upper []float64) (relaxation, error) {
	sense := 1.0
	if prob.Direction == lpclass.Maximize {
		sense = -1
	}

	base := make([]float64, len(prob.Columns))
	colsOf := make([][]int, len(prob.Columns))
	var cols []stdColumn

	for j := range prob.Columns {
		lo, hi := lower[j], upper[j]
		if lo > hi || math.IsInf(lo, 1) || math.IsInf(hi, -1) {
			return relaxation{status: relaxInfeasible}, nil
		}

		switch {
		case !math.IsInf(lo, -1):
			base[j] = lo
			colsOf[j] = append(colsOf[j], len(cols))
			cols = append(cols, stdColumn{orig: j, sign: 1})
		case !math.IsInf(hi, 1):
			base[j] = hi
			colsOf[j] = append(colsOf[j], len(cols))
			cols = append(cols, stdColumn{orig: j, sign: -1})
		default:
			colsOf[j] = append(colsOf[j], len(cols), len(cols)+1)
			cols = append(cols, stdColumn{orig: j, sign: 1}, stdColumn{orig: j, sign: -1})
		}
	}

	var ineqs []inequality
	// rows are scaled to a largest coefficient of 1 before reaching gonum
	add := func(coefs []float64, rhs float64) bool {
		var scale float64
		for _, a := range coefs {
			scale = math.Max(scale, math.Abs(a))
		}
		if scale == 0 {
			// nothing left to vary: the row is either always satisfied or never
			return rhs >= -rowTolerance
		}
		scaled := make([]float64, len(coefs))
		for i, a := range coefs {
			scaled[i] = a / scale
		}
		ineqs = append(ineqs, inequality{coefs: scaled, rhs: rhs / scale})
		return true
	}

	for _, r := range prob.Rows {
		coefs := make([]float64, len(cols))
		var shift float64
		for k, j := range r.Index {
			shift += r.Coefs[k] * base[j]
			for _, c := range colsOf[j] {
				coefs[c] += r.Coefs[k] * cols[c].sign
			}
		}

		if !math.IsInf(r.Upper, 1) {
			if !add(coefs, r.Upper-shift) {
				return relaxation{status: relaxInfeasible}, nil
			}
		}
		if !math.IsInf(r.Lower, -1) {
			neg := make([]float64, len(coefs))
			for i, a := range coefs {
				neg[i] = -a
			}
			if !add(neg, shift-r.Lower) {
				return relaxation{status: relaxInfeasible}, nil
			}
		}
	}

	for j := range prob.Columns {
		lo, hi := lower[j], upper[j]
		if math.IsInf(lo, -1) || math.IsInf(hi, 1) {
			continue
		}
		coefs := make([]float64, len(cols))
		coefs[colsOf[j][0]] = 1
		ineqs = append(ineqs, inequality{coefs: coefs, rhs: hi - lo})
	}

	// gonum rejects all-zero columns; those are settled here instead
	used := make([]int, 0, len(cols))
	unbounded := false
	for c, col := range cols {
		inUse := false
		for _, q := range ineqs {
			if q.coefs[c] != 0 {
				inUse = true
				break
			}
		}
		if inUse {
			used = append(used, c)
		} else if sense*prob.Columns[col.orig].Objective*col.sign < 0 {
			unbounded = true
		}
	}

	y := make([]float64, len(cols))

	if len(ineqs) > 0 {
		m, n := len(ineqs), len(used)+len(ineqs)
		A := mat.NewDense(m, n, nil)
		b := make([]float64, m)
		c := make([]float64, n)

		for u, col := range used {
			c[u] = sense * prob.Columns[cols[col].orig].Objective * cols[col].sign
		}

		// the slacks are a feasible starting basis unless a row was flipped
		basic := make([]int, m)
		for i, q := range ineqs {
			flip := 1.0
			if q.rhs < 0 {
				flip = -1
				basic = nil
			}
			for u, col := range used {
				A.Set(i, u, flip*q.coefs[col])
			}
			A.Set(i, len(used)+i, flip)
			b[i] = flip * q.rhs
			if basic != nil {
				basic[i] = len(used) + i
			}
		}

		opt, err := simplex(c, A, b, s.lpTol, basic)
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			return relaxation{status: relaxInfeasible}, nil
		case errors.Is(err, lp.ErrUnbounded):
			return relaxation{status: relaxUnbounded}, nil
		case err != nil:
			return relaxation{}, fmt.Errorf("simplex on %dx%d system: %w", m, n, err)
		}

		for u, col := range used {
			y[col] = opt[u]
		}
	}

	if unbounded {
		return relaxation{status: relaxUnbounded}, nil
	}

	x := append([]float64(nil), base...)
	for c, col := range cols {
		x[col.orig] += col.sign * y[c]
	}

	return relaxation{
		status: relaxOptimal,
		x:      x,
		z:      sense * prob.Evaluate(x),
	}, nil
}

// simplex calls gonum's solver, turning its panics on ill-conditioned bases
// into errNumerical.
func simplex(c []float64, A mat.Matrix, b []float64, tol float64, basic []int) (x []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			x, err = nil, fmt.Errorf("%w: %v", errNumerical, r)
		}
	}()

	_, x, err = lp.Simplex(c, A, b, tol, basic)
	return x, err
}
