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

/*
Package antenna places the fewest antennas over a row of zones.

Two variants are supported. In the chain variant every pair of consecutive
sites needs at least one antenna between them, and the reported count adds
one to the optimum when the number of zones is odd. In the zone-minimum
variant an antenna in a zone also serves both neighbouring zones, and each
zone asks for a minimum number of antennas serving it.
*/
package antenna

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

type Variant int

const (
	Chain Variant = iota
	ZoneMinimum
)

func (v Variant) String() string {
	switch v {
	case Chain:
		return "chain"
	case ZoneMinimum:
		return "zone minimum"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

type Input struct {
	Variant Variant
	Zones   int
	Minimum []int // one entry per zone, ZoneMinimum only
}

const (
	FieldZones    = "zones"
	FieldMinimums = "minimums"
)

// MaxZones caps the size of the chain.
const MaxZones = 500

func FieldNames() []string {
	return []string{FieldZones, FieldMinimums}
}

func DefaultInput() Input {
	return Input{Variant: Chain, Zones: 5}
}

func (in Input) Fields() form.Fields {
	f := form.Fields{FieldZones: strconv.Itoa(in.Zones)}
	if in.Variant == ZoneMinimum {
		items := make([]string, len(in.Minimum))
		for i, m := range in.Minimum {
			items[i] = strconv.Itoa(m)
		}
		f[FieldMinimums] = strings.Join(items, ",")
	}
	return f
}

// ParseInput reads a positive zone count, up to MaxZones. A non-empty
// minimums field selects the zone-minimum variant and must hold one
// non-negative integer per zone.
func ParseInput(fields form.Fields) (Input, error) {
	p := form.NewParser(fields)

	in := Input{Zones: p.PositiveInt(FieldZones)}
	if in.Zones > MaxZones {
		return Input{}, form.Invalid(FieldZones, "at most %d zones are supported, got %d", MaxZones, in.Zones)
	}
	if strings.TrimSpace(fields[FieldMinimums]) != "" {
		in.Variant = ZoneMinimum
		in.Minimum = p.NonNegativeIntList(FieldMinimums, in.Zones)
	}

	if err := p.Err(); err != nil {
		return Input{}, err
	}
	return in, nil
}

// SiteName names site i (0-based) the way spreadsheet columns are named:
// A to Z, then AA, AB and so on.
func SiteName(i int) string {
	var b []byte
	for i++; i > 0; i = (i - 1) / 26 {
		b = append([]byte{byte('A' + (i-1)%26)}, b...)
	}
	return string(b)
}

func Formulate(in Input, opts ...lpclass.Option) (*lpclass.Model, error) {
	if in.Zones <= 0 || in.Zones > MaxZones {
		return nil, form.Invalid(FieldZones, "must be between 1 and %d, got %d", MaxZones, in.Zones)
	}
	if in.Variant == ZoneMinimum && len(in.Minimum) != in.Zones {
		return nil, form.Invalid(FieldMinimums, "expected %d values, got %d", in.Zones, len(in.Minimum))
	}

	model, err := lpclass.NewModel("antenna", lpclass.Minimize, opts...)
	if err != nil {
		return nil, err
	}

	sites := make([]*lpclass.Variable, in.Zones)
	for i := range sites {
		if sites[i], err = model.AddDefinedVariable(SiteName(i), lpclass.BinaryVariable, 1, 0, 1); err != nil {
			return nil, errors.Wrapf(err, "adding site %s", SiteName(i))
		}
	}

	switch in.Variant {
	case Chain:
		for i := 0; i+1 < len(sites); i++ {
			name := fmt.Sprintf("Coverage_%s_%s", SiteName(i), SiteName(i+1))
			if err := model.AddNamedConstraint(name, 1, math.Inf(1), sites[i:i+2], []float64{1, 1}); err != nil {
				return nil, errors.Wrapf(err, "adding %s", name)
			}
		}
	case ZoneMinimum:
		for z, need := range in.Minimum {
			lo, hi := max(z-1, 0), min(z+1, len(sites)-1)
			coefs := make([]float64, hi-lo+1)
			for k := range coefs {
				coefs[k] = 1
			}
			name := "Zone_" + SiteName(z)
			if err := model.AddNamedConstraint(name, float64(need), math.Inf(1), sites[lo:hi+1], coefs); err != nil {
				return nil, errors.Wrapf(err, "adding %s", name)
			}
		}
	default:
		return nil, errors.Errorf("unknown variant %v", in.Variant)
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

	out := &Result{
		Sites:     make([]bool, in.Zones),
		Objective: int(math.Round(res.ObjectiveValue())),
	}
	for i := range out.Sites {
		out.Sites[i] = res.Value(model.VariableByName(SiteName(i))) > 0.5
	}

	out.Count = out.Objective
	if in.Variant == Chain && in.Zones%2 == 1 {
		out.Count++
	}
	return out, nil
}

type Result struct {
	Sites     []bool
	Objective int // optimal number of antennas
	Count     int // reported number of antennas
}

var _ render.Report = (*Result)(nil)

func (r *Result) Title() string { return "Antenna placement" }

func (r *Result) Lines() []string {
	lines := make([]string, 0, len(r.Sites))
	for i, on := range r.Sites {
		v := 0.0
		if on {
			v = 1
		}
		lines = append(lines, fmt.Sprintf("Site %s: %s", SiteName(i), render.YesNo(v)))
	}
	return lines
}

func (r *Result) Summary() string {
	return fmt.Sprintf("Total antennas: %d", r.Count)
}
