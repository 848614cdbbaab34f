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

// Package roster computes the smallest weekly staff that meets a minimum
// headcount per weekday when everyone works five consecutive days and then
// takes two days off.
package roster

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

type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday

	numDays
)

// Week lists the weekdays in model order.
var Week = [numDays]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func (d Weekday) String() string {
	switch d {
	case Monday:
		return "Monday"
	case Tuesday:
		return "Tuesday"
	case Wednesday:
		return "Wednesday"
	case Thursday:
		return "Thursday"
	case Friday:
		return "Friday"
	case Saturday:
		return "Saturday"
	case Sunday:
		return "Sunday"
	default:
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
}

// Field returns the form field holding the minimum headcount of d.
func (d Weekday) Field() string {
	return strings.ToLower(d.String())
}

// Input holds the minimum number of employees required on each weekday.
type Input struct {
	Minimum [numDays]int
}

func DefaultInput() Input {
	return Input{Minimum: [numDays]int{17, 13, 15, 19, 14, 16, 11}}
}

func FieldNames() []string {
	names := make([]string, 0, numDays)
	for _, d := range Week {
		names = append(names, d.Field())
	}
	return names
}

func (in Input) Fields() form.Fields {
	f := form.Fields{}
	for _, d := range Week {
		f[d.Field()] = strconv.Itoa(in.Minimum[d])
	}
	return f
}

func ParseInput(fields form.Fields) (Input, error) {
	p := form.NewParser(fields)

	var in Input
	for _, d := range Week {
		in.Minimum[d] = p.NonNegativeInt(d.Field())
	}

	if err := p.Err(); err != nil {
		return Input{}, err
	}
	return in, nil
}

// Works reports whether the shift pattern of column c is on duty on day d.
// Column c is off on days c+5 and c+6 (mod 7).
func Works(c int, d Weekday) bool {
	off1, off2 := Weekday((c+5)%int(numDays)), Weekday((c+6)%int(numDays))
	return d != off1 && d != off2
}

func columnName(c int) string {
	return "x" + strconv.Itoa(c+1)
}

// Formulate builds one non-negative integer headcount per shift pattern and
// one coverage row per weekday.
func Formulate(in Input, opts ...lpclass.Option) (*lpclass.Model, error) {
	model, err := lpclass.NewModel("roster", lpclass.Minimize, opts...)
	if err != nil {
		return nil, err
	}

	vars := make([]*lpclass.Variable, numDays)
	for c := range vars {
		vars[c], err = model.AddDefinedVariable(columnName(c), lpclass.IntegerVariable, 1, 0, math.Inf(1))
		if err != nil {
			return nil, errors.Wrapf(err, "adding pattern %d", c+1)
		}
	}

	for _, d := range Week {
		var (
			vs    []*lpclass.Variable
			coefs []float64
		)
		for c, v := range vars {
			if Works(c, d) {
				vs = append(vs, v)
				coefs = append(coefs, 1)
			}
		}
		if err := model.AddNamedConstraint(d.String(), float64(in.Minimum[d]), math.Inf(1), vs, coefs); err != nil {
			return nil, errors.Wrapf(err, "adding coverage of %s", d)
		}
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

	var x [numDays]int
	for c := range x {
		x[c] = int(math.Round(res.Value(model.VariableByName(columnName(c)))))
	}

	out := &Result{Total: int(math.Round(res.ObjectiveValue()))}
	// the reported schedule is the pattern values rotated by two
	for i := range out.Schedule {
		out.Schedule[i] = x[(i+2)%int(numDays)]
	}
	return out, nil
}

type Result struct {
	Schedule [numDays]int
	Total    int
}

var _ render.Report = (*Result)(nil)

func (r *Result) Title() string { return "Leave planning" }

func (r *Result) Lines() []string {
	lines := make([]string, 0, numDays)
	for _, d := range Week {
		lines = append(lines, fmt.Sprintf("%s: %d", d, r.Schedule[d]))
	}
	return lines
}

func (r *Result) Summary() string {
	return fmt.Sprintf("Optimal total of employees: %d", r.Total)
}
