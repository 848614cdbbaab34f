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
	"math"

	"github.com/costela/lpclass"
)

type node struct {
	lower []float64
	upper []float64
}

type searchResult struct {
	status lpclass.SolveStatus
	x      []float64
	nodes  int
}

// branchAndBound runs a depth-first search over the LP relaxations of prob.
// Without integer columns it degenerates to a single simplex call.
func (s *Solver) branchAndBound(prob *lpclass.Problem) (searchResult, error) {
	root := node{
		lower: make([]float64, len(prob.Columns)),
		upper: make([]float64, len(prob.Columns)),
	}
	for j, c := range prob.Columns {
		root.lower[j], root.upper[j] = c.Lower, c.Upper
		if c.IsInteger() {
			root.lower[j] = math.Ceil(c.Lower - s.intTol)
			root.upper[j] = math.Floor(c.Upper + s.intTol)
		}
	}

	var (
		incumbent []float64
		best      = math.Inf(1)
		nodes     int
		stack     = []node{root}
	)

	for len(stack) > 0 {
		if nodes >= s.nodeLimit {
			s.logger.Print("mip: node limit reached")
			return searchResult{status: lpclass.SolutionNotFound, nodes: nodes}, nil
		}

		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nodes++

		rel, err := s.relax(prob, n.lower, n.upper)
		if err != nil {
			return searchResult{}, err
		}

		switch rel.status {
		case relaxInfeasible:
			continue
		case relaxUnbounded:
			return searchResult{status: lpclass.SolutionUnbounded, nodes: nodes}, nil
		}

		if incumbent != nil && rel.z >= best-pruneTolerance(best) {
			continue
		}

		j, frac := s.branchColumn(prob, rel.x)
		if j < 0 {
			incumbent = s.roundIntegers(prob, rel.x)
			best = rel.z
			continue
		}

		down := node{lower: n.lower, upper: append([]float64(nil), n.upper...)}
		down.upper[j] = math.Floor(rel.x[j])
		up := node{lower: append([]float64(nil), n.lower...), upper: n.upper}
		up.lower[j] = math.Ceil(rel.x[j])

		// the side closer to the relaxed value is explored first
		if frac >= 0.5 {
			stack = append(stack, down, up)
		} else {
			stack = append(stack, up, down)
		}
	}

	if incumbent == nil {
		return searchResult{status: lpclass.SolutionInfeasible, nodes: nodes}, nil
	}

	return searchResult{status: lpclass.SolutionOptimal, x: incumbent, nodes: nodes}, nil
}

// branchColumn picks the most fractional integer column, lowest index first
// on ties. It returns -1 when every integer column is integral.
func (s *Solver) branchColumn(prob *lpclass.Problem, x []float64) (int, float64) {
	col, colFrac, dist := -1, 0.0, 0.0
	for j, c := range prob.Columns {
		if !c.IsInteger() {
			continue
		}
		frac := x[j] - math.Floor(x[j])
		d := math.Min(frac, 1-frac)
		if d > s.intTol && d > dist {
			col, colFrac, dist = j, frac, d
		}
	}
	return col, colFrac
}

func (s *Solver) roundIntegers(prob *lpclass.Problem, x []float64) []float64 {
	out := append([]float64(nil), x...)
	for j, c := range prob.Columns {
		if c.IsInteger() {
			out[j] = math.Round(out[j])
		}
	}
	return out
}

func pruneTolerance(best float64) float64 {
	return 1e-9 * math.Max(1, math.Abs(best))
}
