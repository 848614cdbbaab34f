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

// Package siting places bank branches and ATMs over nine regions to cover as
// much population as a budget allows. Two neighbouring regions never both
// get a branch.
package siting

import (
	"fmt"
	"math"
	"strconv"

	"github.com/pkg/errors"

	"github.com/costela/lpclass"
	"github.com/costela/lpclass/form"
	"github.com/costela/lpclass/render"
)

const NumRegions = 9

// Populations of the regions, in millions.
var Populations = [NumRegions]float64{2, 3, 4, 5, 6, 7, 8, 9, 10}

// adjacency of the regions. A border recorded on either side counts and the
// diagonal is ignored.
var adjacency = [NumRegions][NumRegions]int{
	{1, 1, 0, 0, 1, 0, 0, 0, 0},
	{1, 1, 1, 0, 0, 0, 0, 0, 0},
	{0, 1, 1, 1, 1, 1, 0, 0, 0},
	{0, 0, 1, 1, 1, 0, 1, 0, 0},
	{0, 0, 0, 1, 1, 1, 0, 1, 0},
	{0, 0, 0, 0, 1, 1, 0, 0, 1},
	{0, 0, 0, 1, 0, 0, 1, 1, 0},
	{0, 0, 0, 0, 1, 0, 1, 1, 1},
	{0, 0, 0, 0, 0, 1, 0, 1, 1},
}

// Adjacent reports whether the distinct regions i and j (0-based) share a
// border.
func Adjacent(i, j int) bool {
	return i != j && (adjacency[i][j] == 1 || adjacency[j][i] == 1)
}

// Input holds the costs and the share of a region's population reached by
// each kind of presence. Coverages are proportions between 0 and 1.
type Input struct {
	Budget            float64
	BranchCost        float64
	ATMCost           float64
	BranchCoverage    float64 // a
	ATMCoverage       float64 // b
	UncoveredCoverage float64 // c, regions with neither
}

const (
	FieldBudget            = "budget"
	FieldBranchCost        = "branch-cost"
	FieldATMCost           = "atm-cost"
	FieldBranchCoverage    = "branch-coverage"
	FieldATMCoverage       = "atm-coverage"
	FieldUncoveredCoverage = "uncovered-coverage"
)

func FieldNames() []string {
	return []string{
		FieldBudget, FieldBranchCost, FieldATMCost,
		FieldBranchCoverage, FieldATMCoverage, FieldUncoveredCoverage,
	}
}

func DefaultInput() Input {
	return Input{
		Budget:            12,
		BranchCost:        4,
		ATMCost:           1,
		BranchCoverage:    0.9,
		ATMCoverage:       0.6,
		UncoveredCoverage: 0.1,
	}
}

// Fields renders in as form text; coverages are written as percentages.
func (in Input) Fields() form.Fields {
	ff := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	pct := func(v float64) string { return render.Number(v * 100) }

	return form.Fields{
		FieldBudget:            ff(in.Budget),
		FieldBranchCost:        ff(in.BranchCost),
		FieldATMCost:           ff(in.ATMCost),
		FieldBranchCoverage:    pct(in.BranchCoverage),
		FieldATMCoverage:       pct(in.ATMCoverage),
		FieldUncoveredCoverage: pct(in.UncoveredCoverage),
	}
}

// ParseInput reads costs as non-negative reals and coverages as percentages.
func ParseInput(fields form.Fields) (Input, error) {
	p := form.NewParser(fields)

	in := Input{
		Budget:            p.NonNegativeFloat(FieldBudget),
		BranchCost:        p.NonNegativeFloat(FieldBranchCost),
		ATMCost:           p.NonNegativeFloat(FieldATMCost),
		BranchCoverage:    p.Percentage(FieldBranchCoverage),
		ATMCoverage:       p.Percentage(FieldATMCoverage),
		UncoveredCoverage: p.Percentage(FieldUncoveredCoverage),
	}

	if err := p.Err(); err != nil {
		return Input{}, err
	}
	return in, nil
}

func varName(kind string, i int) string {
	return kind + strconv.Itoa(i+1)
}

// Formulate builds binary Branch, ATM and Uncovered variables per region.
// Uncovered_i stands for (1-Branch_i)(1-ATM_i) and is pinned by three
// linking rows.
func Formulate(in Input, opts ...lpclass.Option) (*lpclass.Model, error) {
	model, err := lpclass.NewModel("siting", lpclass.Maximize, opts...)
	if err != nil {
		return nil, err
	}

	var branch, atm, uncovered [NumRegions]*lpclass.Variable
	for i, pop := range Populations {
		if branch[i], err = model.AddDefinedVariable(varName("Branch", i), lpclass.BinaryVariable, pop*in.BranchCoverage, 0, 1); err != nil {
			return nil, errors.Wrapf(err, "adding branch of region %d", i+1)
		}
		if atm[i], err = model.AddDefinedVariable(varName("ATM", i), lpclass.BinaryVariable, pop*in.ATMCoverage, 0, 1); err != nil {
			return nil, errors.Wrapf(err, "adding ATM of region %d", i+1)
		}
		if uncovered[i], err = model.AddDefinedVariable(varName("Uncovered", i), lpclass.BinaryVariable, pop*in.UncoveredCoverage, 0, 1); err != nil {
			return nil, errors.Wrapf(err, "adding uncovered flag of region %d", i+1)
		}
	}

	add := func(name string, lower, upper float64, vs []*lpclass.Variable, coefs []float64) {
		if err == nil {
			err = errors.Wrapf(model.AddNamedConstraint(name, lower, upper, vs, coefs), "adding %s", name)
		}
	}

	budgetVars := make([]*lpclass.Variable, 0, 2*NumRegions)
	budgetCoefs := make([]float64, 0, 2*NumRegions)
	for i := range Populations {
		budgetVars = append(budgetVars, branch[i], atm[i])
		budgetCoefs = append(budgetCoefs, in.BranchCost, in.ATMCost)
	}
	add("Budget", math.Inf(-1), in.Budget, budgetVars, budgetCoefs)

	for i := range Populations {
		u, b, d := uncovered[i], branch[i], atm[i]
		add(fmt.Sprintf("NoBranch_%d", i+1), math.Inf(-1), 1, []*lpclass.Variable{u, b}, []float64{1, 1})
		add(fmt.Sprintf("NoATM_%d", i+1), math.Inf(-1), 1, []*lpclass.Variable{u, d}, []float64{1, 1})
		add(fmt.Sprintf("Uncovered_%d", i+1), 1, math.Inf(1), []*lpclass.Variable{u, b, d}, []float64{1, 1, 1})
	}

	for i := 0; i < NumRegions; i++ {
		for j := i + 1; j < NumRegions; j++ {
			if Adjacent(i, j) {
				add(fmt.Sprintf("Neighboring_%d_%d", i+1, j+1), math.Inf(-1), 1,
					[]*lpclass.Variable{branch[i], branch[j]}, []float64{1, 1})
			}
		}
	}
	if err != nil {
		return nil, err
	}

	return model, nil
}

func Solve(in Input, opts ...lpclass.Option) (*Result, error) {
	model, err := Formulate(in, opts...)
	if err != nil {
		return nil, err
	}

	res, err := model.Solve()
	if err != nil {
		return nil, err
	}

	out := &Result{Covered: res.ObjectiveValue()}
	for i := range Populations {
		out.Branch[i] = res.Value(model.VariableByName(varName("Branch", i))) > 0.5
		out.ATM[i] = res.Value(model.VariableByName(varName("ATM", i))) > 0.5
	}
	return out, nil
}

type Result struct {
	Branch  [NumRegions]bool
	ATM     [NumRegions]bool
	Covered float64 // millions
}

var _ render.Report = (*Result)(nil)

// Cost is the amount spent on the placement.
func (r *Result) Cost(in Input) float64 {
	total := 0.0
	for i := range r.Branch {
		if r.Branch[i] {
			total += in.BranchCost
		}
		if r.ATM[i] {
			total += in.ATMCost
		}
	}
	return total
}

func (r *Result) Title() string { return "Bank siting" }

func (r *Result) Lines() []string {
	yesNo := func(b bool) string {
		if b {
			return render.YesNo(1)
		}
		return render.YesNo(0)
	}

	lines := make([]string, 0, NumRegions)
	for i := range r.Branch {
		lines = append(lines, fmt.Sprintf("Region %d - Branch: %s, ATM: %s", i+1, yesNo(r.Branch[i]), yesNo(r.ATM[i])))
	}
	return lines
}

func (r *Result) Summary() string {
	return "Covered population: " + render.Number(r.Covered) + " million"
}
