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

// Package agriculture allocates farmland between crops to maximize profit
// under labor, machine time and irrigation water capacities.
package agriculture

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/costela/lpclass"
	"github.com/costela/lpclass/form"
	"github.com/costela/lpclass/render"
)

const (
	// MachineHourCost is charged per machine hour.
	MachineHourCost = 30
	// WaterCost is charged per cubic meter of irrigation water.
	WaterCost = 0.1
)

type Crop int

const (
	Wheat Crop = iota
	Barley
	Maize
	SugarBeet
	Sunflower

	numCrops
)

// Crops lists every crop in model order.
var Crops = [numCrops]Crop{Wheat, Barley, Maize, SugarBeet, Sunflower}

func (c Crop) String() string {
	switch c {
	case Wheat:
		return "Wheat"
	case Barley:
		return "Barley"
	case Maize:
		return "Maize"
	case SugarBeet:
		return "SugarBeet"
	case Sunflower:
		return "Sunflower"
	default:
		return fmt.Sprintf("Crop(%d)", int(c))
	}
}

func (c Crop) key() string {
	return strings.ToLower(c.String())
}

// CropParams are the per hectare figures of one crop.
type CropParams struct {
	Yield       float64 // quintals
	Price       float64 // per quintal
	Labor       float64 // workers
	MachineTime float64 // hours
	Water       float64 // cubic meters
	LaborCost   float64 // per worker
	FixedCost   float64
}

// Profit is the net profit of one hectare.
func (p CropParams) Profit() float64 {
	return p.Yield*p.Price - p.Labor*p.LaborCost - p.MachineTime*MachineHourCost - p.Water*WaterCost - p.FixedCost
}

type Input struct {
	Crops        [numCrops]CropParams
	Water        float64
	MachineHours float64
	Labor        float64
}

// DefaultInput returns the figures of the classroom statement.
func DefaultInput() Input {
	return Input{
		Crops: [numCrops]CropParams{
			Wheat:     {Yield: 75, Price: 60, Labor: 2, MachineTime: 30, Water: 3000, LaborCost: 500, FixedCost: 250},
			Barley:    {Yield: 60, Price: 50, Labor: 1, MachineTime: 24, Water: 2000, LaborCost: 500, FixedCost: 180},
			Maize:     {Yield: 55, Price: 66, Labor: 2, MachineTime: 20, Water: 2500, LaborCost: 600, FixedCost: 190},
			SugarBeet: {Yield: 50, Price: 110, Labor: 3, MachineTime: 28, Water: 3800, LaborCost: 700, FixedCost: 310},
			Sunflower: {Yield: 60, Price: 60, Labor: 2, MachineTime: 25, Water: 3200, LaborCost: 550, FixedCost: 320},
		},
		Water:        25000000,
		MachineHours: 24000,
		Labor:        3000,
	}
}

const (
	FieldWater        = "water"
	FieldMachineHours = "machine-hours"
	FieldLabor        = "labor"
)

var paramNames = []string{"yield", "price", "labor", "machine-time", "water", "labor-cost", "fixed-cost"}

// CropField returns the field name of a crop parameter, e.g. "wheat-yield".
func CropField(c Crop, param string) string {
	return c.key() + "-" + param
}

func (p *CropParams) fields() []*float64 {
	return []*float64{&p.Yield, &p.Price, &p.Labor, &p.MachineTime, &p.Water, &p.LaborCost, &p.FixedCost}
}

// FieldNames lists every form field in display order.
func FieldNames() []string {
	var names []string
	for _, c := range Crops {
		for _, p := range paramNames {
			names = append(names, CropField(c, p))
		}
	}
	return append(names, FieldWater, FieldMachineHours, FieldLabor)
}

// Fields renders in back into form fields.
func (in Input) Fields() form.Fields {
	f := form.Fields{
		FieldWater:        strconv.FormatFloat(in.Water, 'f', -1, 64),
		FieldMachineHours: strconv.FormatFloat(in.MachineHours, 'f', -1, 64),
		FieldLabor:        strconv.FormatFloat(in.Labor, 'f', -1, 64),
	}
	for _, c := range Crops {
		params := in.Crops[c]
		for i, v := range params.fields() {
			f[CropField(c, paramNames[i])] = strconv.FormatFloat(*v, 'f', -1, 64)
		}
	}
	return f
}

// ParseInput validates the raw fields. Every figure is a non-negative real.
func ParseInput(fields form.Fields) (Input, error) {
	p := form.NewParser(fields)

	var in Input
	for _, c := range Crops {
		for i, v := range in.Crops[c].fields() {
			*v = p.NonNegativeFloat(CropField(c, paramNames[i]))
		}
	}
	in.Water = p.NonNegativeFloat(FieldWater)
	in.MachineHours = p.NonNegativeFloat(FieldMachineHours)
	in.Labor = p.NonNegativeFloat(FieldLabor)

	if err := p.Err(); err != nil {
		return Input{}, err
	}
	return in, nil
}

// Formulate builds one continuous hectare variable per crop, weighted by
// its profit, under the three capacity constraints.
func Formulate(in Input, opts ...lpclass.Option) (*lpclass.Model, error) {
	model, err := lpclass.NewModel("agriculture", lpclass.Maximize, opts...)
	if err != nil {
		return nil, err
	}

	vars := make([]*lpclass.Variable, numCrops)
	for _, c := range Crops {
		vars[c], err = model.AddDefinedVariable(c.String(), lpclass.ContinuousVariable, in.Crops[c].Profit(), 0, math.Inf(1))
		if err != nil {
			return nil, errors.Wrapf(err, "adding %s", c)
		}
	}

	capacities := []struct {
		name  string
		limit float64
		coef  func(CropParams) float64
	}{
		{"Labor", in.Labor, func(p CropParams) float64 { return p.Labor }},
		{"MachineHours", in.MachineHours, func(p CropParams) float64 { return p.MachineTime }},
		{"IrrigationWater", in.Water, func(p CropParams) float64 { return p.Water }},
	}
	for _, capacity := range capacities {
		coefs := make([]float64, numCrops)
		for _, c := range Crops {
			coefs[c] = capacity.coef(in.Crops[c])
		}
		if err := model.AddNamedConstraint(capacity.name, math.Inf(-1), capacity.limit, vars, coefs); err != nil {
			return nil, errors.Wrapf(err, "adding %s capacity", capacity.name)
		}
	}

	return model, nil
}

// Solve formulates and solves in. Non-optimal outcomes are returned as
// errors and no Result.
func Solve(in Input, opts ...lpclass.Option) (*Result, error) {
	model, err := Formulate(in, opts...)
	if err != nil {
		return nil, err
	}

	res, err := model.Solve()
	if err != nil {
		return nil, err
	}

	out := &Result{Profit: res.ObjectiveValue()}
	for _, c := range Crops {
		out.Hectares[c] = res.Value(model.VariableByName(c.String()))
	}
	return out, nil
}

type Result struct {
	Hectares [numCrops]float64
	Profit   float64
}

var _ render.Report = (*Result)(nil)

func (r *Result) Title() string { return "Agriculture" }

func (r *Result) Lines() []string {
	lines := make([]string, 0, numCrops)
	for _, c := range Crops {
		lines = append(lines, fmt.Sprintf("%s hectares: %s", c, render.Number(r.Hectares[c])))
	}
	return lines
}

func (r *Result) Summary() string {
	return "Optimal profit: " + render.Number(r.Profit)
}
