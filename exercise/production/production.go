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

// Package production plans monthly production, workforce, stock and overtime
// at minimum cost.
package production

import (
	"fmt"
	"math"
	"strconv"

	"github.com/pkg/errors"

	"github.com/costela/lpclass"
	"github.com/costela/lpclass/form"
	"github.com/costela/lpclass/render"
)

// Months is the planning horizon of the form.
const Months = 4

type Input struct {
	RawMaterialCost  float64 // C, per unit produced
	StorageCost      float64 // Cs, per unit in stock at month end
	Demand           []float64
	InitialWorkers   int     // Ouv
	Salary           float64 // Sal, per worker and month
	OvertimeCost     float64 // Hsup, per overtime hour
	RecruitmentCost  float64 // R
	LayoffCost       float64 // L
	HoursPerUnit     float64 // h
	WorkingHours     float64 // H, per worker and month
	MaxOvertimeHours float64 // Hmax, per worker and month
	InitialStock     float64
}

// Plan is one month of the solved schedule. Hired and LaidOff apply to the
// transition into the next month and are absent for the last one.
type Plan struct {
	Production float64
	Workers    float64
	Stock      float64
	Overtime   float64
	Hired      *float64
	LaidOff    *float64
}

const (
	FieldRawMaterialCost  = "C"
	FieldStorageCost      = "Cs"
	FieldInitialWorkers   = "Ouv"
	FieldSalary           = "Sal"
	FieldOvertimeCost     = "Hsup"
	FieldRecruitmentCost  = "R"
	FieldLayoffCost       = "L"
	FieldHoursPerUnit     = "h"
	FieldWorkingHours     = "H"
	FieldMaxOvertimeHours = "Hmax"
	FieldInitialStock     = "StockInit"
)

// DemandField returns the field holding the demand of month m (0-based).
func DemandField(m int) string {
	return "D" + strconv.Itoa(m+1)
}

// FieldNames lists every form field in display order.
func FieldNames() []string {
	names := []string{FieldRawMaterialCost, FieldStorageCost}
	for m := 0; m < Months; m++ {
		names = append(names, DemandField(m))
	}
	return append(names,
		FieldInitialWorkers, FieldSalary, FieldOvertimeCost, FieldRecruitmentCost,
		FieldLayoffCost, FieldHoursPerUnit, FieldWorkingHours, FieldMaxOvertimeHours,
		FieldInitialStock,
	)
}

// DefaultInput returns a sample instance of the classroom statement.
func DefaultInput() Input {
	return Input{
		RawMaterialCost:  15,
		StorageCost:      3,
		Demand:           []float64{3000, 5000, 2000, 1000},
		InitialWorkers:   100,
		Salary:           1500,
		OvertimeCost:     13,
		RecruitmentCost:  1600,
		LayoffCost:       2000,
		HoursPerUnit:     4,
		WorkingHours:     160,
		MaxOvertimeHours: 20,
		InitialStock:     500,
	}
}

func (in Input) Fields() form.Fields {
	ff := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

	f := form.Fields{
		FieldRawMaterialCost:  ff(in.RawMaterialCost),
		FieldStorageCost:      ff(in.StorageCost),
		FieldInitialWorkers:   strconv.Itoa(in.InitialWorkers),
		FieldSalary:           ff(in.Salary),
		FieldOvertimeCost:     ff(in.OvertimeCost),
		FieldRecruitmentCost:  ff(in.RecruitmentCost),
		FieldLayoffCost:       ff(in.LayoffCost),
		FieldHoursPerUnit:     ff(in.HoursPerUnit),
		FieldWorkingHours:     ff(in.WorkingHours),
		FieldMaxOvertimeHours: ff(in.MaxOvertimeHours),
		FieldInitialStock:     ff(in.InitialStock),
	}
	for m, d := range in.Demand {
		f[DemandField(m)] = ff(d)
	}
	return f
}

// ParseInput validates the form. The initial workforce must be an integer,
// every other field a non-negative real.
func ParseInput(fields form.Fields) (Input, error) {
	p := form.NewParser(fields)

	in := Input{
		RawMaterialCost: p.NonNegativeFloat(FieldRawMaterialCost),
		StorageCost:     p.NonNegativeFloat(FieldStorageCost),
		Demand:          make([]float64, Months),
	}
	for m := range in.Demand {
		in.Demand[m] = p.NonNegativeFloat(DemandField(m))
	}
	in.InitialWorkers = p.NonNegativeInt(FieldInitialWorkers)
	in.Salary = p.NonNegativeFloat(FieldSalary)
	in.OvertimeCost = p.NonNegativeFloat(FieldOvertimeCost)
	in.RecruitmentCost = p.NonNegativeFloat(FieldRecruitmentCost)
	in.LayoffCost = p.NonNegativeFloat(FieldLayoffCost)
	in.HoursPerUnit = p.NonNegativeFloat(FieldHoursPerUnit)
	in.WorkingHours = p.NonNegativeFloat(FieldWorkingHours)
	in.MaxOvertimeHours = p.NonNegativeFloat(FieldMaxOvertimeHours)
	in.InitialStock = p.NonNegativeFloat(FieldInitialStock)

	if err := p.Err(); err != nil {
		return Input{}, err
	}
	return in, nil
}

type monthVars struct {
	production, workers, stock, overtime *lpclass.Variable
	hired, laidOff                       *lpclass.Variable // nil in the last month
}

// Formulate builds the multi-period model. All variables are non-negative
// integers.
func Formulate(in Input, opts ...lpclass.Option) (*lpclass.Model, error) {
	n := len(in.Demand)
	if n == 0 {
		return nil, form.Invalid(DemandField(0), "at least one month of demand is required")
	}

	model, err := lpclass.NewModel("production", lpclass.Minimize, opts...)
	if err != nil {
		return nil, err
	}

	vars, err := addVariables(model, in)
	if err != nil {
		return nil, err
	}

	add := func(name string, lower, upper float64, vs []*lpclass.Variable, coefs []float64) {
		if err == nil {
			err = errors.Wrapf(model.AddNamedConstraint(name, lower, upper, vs, coefs), "adding %s", name)
		}
	}

	for m, v := range vars {
		// S_m + P_m - S_{m-1} = D_m, with the initial stock as S_{-1}
		if m == 0 {
			add(fmt.Sprintf("Stock%d", m+1), in.Demand[m]+in.InitialStock, in.Demand[m]+in.InitialStock,
				[]*lpclass.Variable{v.stock, v.production}, []float64{1, 1})
		} else {
			add(fmt.Sprintf("Stock%d", m+1), in.Demand[m], in.Demand[m],
				[]*lpclass.Variable{v.stock, v.production, vars[m-1].stock}, []float64{1, 1, -1})
		}

		if m == 0 {
			add("InitialWorkers", float64(in.InitialWorkers), float64(in.InitialWorkers),
				[]*lpclass.Variable{v.workers}, []float64{1})
		} else {
			prev := vars[m-1]
			add(fmt.Sprintf("Workforce%d", m+1), 0, 0,
				[]*lpclass.Variable{v.workers, prev.workers, prev.hired, prev.laidOff}, []float64{1, -1, -1, 1})
		}

		add(fmt.Sprintf("Overtime%d", m+1), math.Inf(-1), 0,
			[]*lpclass.Variable{v.overtime, v.workers}, []float64{1, -in.MaxOvertimeHours})

		add(fmt.Sprintf("Hours%d", m+1), math.Inf(-1), 0,
			[]*lpclass.Variable{v.production, v.workers, v.overtime}, []float64{in.HoursPerUnit, -in.WorkingHours, -1})
	}
	if err != nil {
		return nil, err
	}

	return model, nil
}

func addVariables(model *lpclass.Model, in Input) ([]monthVars, error) {
	n := len(in.Demand)
	vars := make([]monthVars, n)

	var err error
	add := func(name string, m int, coef float64) *lpclass.Variable {
		if err != nil {
			return nil
		}
		var v *lpclass.Variable
		v, err = model.AddDefinedVariable(fmt.Sprintf("%s%d", name, m+1), lpclass.IntegerVariable, coef, 0, math.Inf(1))
		err = errors.Wrapf(err, "adding %s", name)
		return v
	}

	for m := range vars {
		vars[m] = monthVars{
			production: add("Production", m, in.RawMaterialCost),
			workers:    add("Workers", m, in.Salary),
			stock:      add("Stock", m, in.StorageCost),
			overtime:   add("Overtime", m, in.OvertimeCost),
		}
		if m < n-1 {
			vars[m].hired = add("Hired", m, in.RecruitmentCost)
			vars[m].laidOff = add("LaidOff", m, in.LayoffCost)
		}
	}

	return vars, err
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

	value := func(name string, m int) float64 {
		return res.Value(model.VariableByName(fmt.Sprintf("%s%d", name, m+1)))
	}

	out := &Result{Cost: res.ObjectiveValue(), Months: make([]Plan, len(in.Demand))}
	for m := range out.Months {
		p := Plan{
			Production: value("Production", m),
			Workers:    value("Workers", m),
			Stock:      value("Stock", m),
			Overtime:   value("Overtime", m),
		}
		if m < len(in.Demand)-1 {
			hired, laidOff := value("Hired", m), value("LaidOff", m)
			p.Hired, p.LaidOff = &hired, &laidOff
		}
		out.Months[m] = p
	}
	return out, nil
}

type Result struct {
	Months []Plan
	Cost   float64
}

var _ render.Report = (*Result)(nil)

func (r *Result) Title() string { return "Production planning" }

func (r *Result) Lines() []string {
	var lines []string
	for m, p := range r.Months {
		line := fmt.Sprintf("Month %d: Production %s, Workers %s, Stock %s, Overtime %s",
			m+1, render.Whole(p.Production), render.Whole(p.Workers), render.Whole(p.Stock), render.Whole(p.Overtime))
		if p.Hired != nil {
			line += fmt.Sprintf(", Hired %s, Laid off %s", render.Whole(*p.Hired), render.Whole(*p.LaidOff))
		}
		lines = append(lines, line)
	}
	return lines
}

func (r *Result) Summary() string {
	return "Minimum cost: " + render.Number(r.Cost)
}
