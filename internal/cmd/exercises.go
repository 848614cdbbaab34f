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

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/costela/lpclass"
	"github.com/costela/lpclass/exercise/agriculture"
	"github.com/costela/lpclass/exercise/antenna"
	"github.com/costela/lpclass/exercise/network"
	"github.com/costela/lpclass/exercise/production"
	"github.com/costela/lpclass/exercise/roster"
	"github.com/costela/lpclass/exercise/siting"
	"github.com/costela/lpclass/form"
	"github.com/costela/lpclass/internal/tui"
	"github.com/costela/lpclass/render"
)

func exercises() []*exercise {
	return []*exercise{
		agricultureExercise(),
		productionExercise(),
		rosterExercise(),
		sitingExercise(),
		antennaExercise(),
		networkExercise(),
	}
}

// humanize turns a field key such as "sugarbeet-labor-cost" into a title.
func humanize(key string) string {
	s := strings.ReplaceAll(key, "-", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// describe builds the form fields of names, using titles where given.
func describe(names []string, titles map[string]string) []tui.Field {
	fields := make([]tui.Field, 0, len(names))
	for _, n := range names {
		title, ok := titles[n]
		if !ok {
			title = humanize(n)
		}
		fields = append(fields, tui.Field{Key: n, Title: title})
	}
	return fields
}

// solver adapts the typed parse and solve functions of an exercise package.
func solver[I any, R render.Report](parse func(form.Fields) (I, error), solve func(I, ...lpclass.Option) (R, error)) solveFunc {
	return func(fields form.Fields, opts ...lpclass.Option) (render.Report, error) {
		in, err := parse(fields)
		if err != nil {
			return nil, err
		}
		res, err := solve(in, opts...)
		if err != nil {
			return nil, err
		}
		return res, nil
	}
}

func agricultureExercise() *exercise {
	return &exercise{
		name:     "agriculture",
		short:    "Allocate farmland between crops",
		fields:   describe(agriculture.FieldNames(), map[string]string{agriculture.FieldWater: "Irrigation water (m3)"}),
		defaults: agriculture.DefaultInput().Fields(),
		solve:    solver(agriculture.ParseInput, agriculture.Solve),
	}
}

func productionExercise() *exercise {
	titles := map[string]string{
		production.FieldRawMaterialCost:  "C (raw material cost)",
		production.FieldStorageCost:      "Cs (storage cost)",
		production.FieldInitialWorkers:   "Ouv (initial workers)",
		production.FieldSalary:           "Sal (worker salary)",
		production.FieldOvertimeCost:     "Hsup (overtime cost)",
		production.FieldRecruitmentCost:  "R (recruitment cost)",
		production.FieldLayoffCost:       "L (layoff cost)",
		production.FieldHoursPerUnit:     "h (hours per pair)",
		production.FieldWorkingHours:     "H (working hours)",
		production.FieldMaxOvertimeHours: "Hmax (max overtime hours)",
		production.FieldInitialStock:     "StockInit (initial stock)",
	}
	for m := 0; m < production.Months; m++ {
		titles[production.DemandField(m)] = fmt.Sprintf("%s (month %d demand)", production.DemandField(m), m+1)
	}

	return &exercise{
		name:     "production",
		short:    "Plan monthly production and workforce",
		fields:   describe(production.FieldNames(), titles),
		defaults: production.DefaultInput().Fields(),
		solve:    solver(production.ParseInput, production.Solve),
	}
}

func rosterExercise() *exercise {
	titles := map[string]string{}
	for _, d := range roster.Week {
		titles[d.Field()] = "Employees required on " + d.String()
	}

	return &exercise{
		name:     "roster",
		short:    "Plan the smallest staff for a 5-on/2-off week",
		fields:   describe(roster.FieldNames(), titles),
		defaults: roster.DefaultInput().Fields(),
		solve:    solver(roster.ParseInput, roster.Solve),
		export:   exportRoster,
	}
}

// exportRoster writes roster.txt and roster.csv under dir.
func exportRoster(r render.Report, dir string) error {
	res, ok := r.(*roster.Result)
	if !ok {
		return fmt.Errorf("unexpected result %T", r)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	write := func(name string, fn func(*os.File) error) error {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		if err := fn(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}

	if err := write("roster.txt", func(f *os.File) error { return res.WriteText(f) }); err != nil {
		return err
	}
	return write("roster.csv", func(f *os.File) error { return res.WriteCSV(f) })
}

func sitingExercise() *exercise {
	return &exercise{
		name:  "siting",
		short: "Place bank branches and ATMs",
		fields: describe(siting.FieldNames(), map[string]string{
			siting.FieldBudget:            "Total budget (B)",
			siting.FieldBranchCost:        "Branch cost (K)",
			siting.FieldATMCost:           "ATM cost (D)",
			siting.FieldBranchCoverage:    "Branch coverage, % (a)",
			siting.FieldATMCoverage:       "ATM coverage, % (b)",
			siting.FieldUncoveredCoverage: "Coverage without either, % (c)",
		}),
		defaults: siting.DefaultInput().Fields(),
		solve:    solver(siting.ParseInput, siting.Solve),
	}
}

func antennaExercise() *exercise {
	fields := describe(antenna.FieldNames(), map[string]string{
		antenna.FieldZones:    "Number of zones",
		antenna.FieldMinimums: "Minimum antennas per zone",
	})
	fields[1].Optional = true
	fields[1].Description = "Comma separated, one per zone. Leave empty for the chain variant."

	return &exercise{
		name:     "antenna",
		short:    "Cover a row of zones with the fewest antennas",
		fields:   fields,
		defaults: antenna.DefaultInput().Fields(),
		solve:    solver(antenna.ParseInput, antenna.Solve),
	}
}

func networkExercise() *exercise {
	fields := describe(network.FieldNames(), map[string]string{
		network.FieldRouters:     "Routers",
		network.FieldEdges:       "Edges",
		network.FieldSource:      "Source name",
		network.FieldDestination: "Destination name",
	})
	fields[0].Description = "Comma separated, e.g. A,B,C"
	fields[1].Description = "Items A,B,weight separated by ';'"

	return &exercise{
		name:     "network",
		short:    "Find the shortest path between two routers",
		fields:   fields,
		defaults: network.DefaultInput().Fields(),
		solve:    solver(network.ParseInput, network.Solve),
	}
}
