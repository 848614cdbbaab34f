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

// Package network finds the cheapest route between two routers by selecting
// edges under flow conservation.
package network

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/costela/lpclass"
	"github.com/costela/lpclass/form"
	"github.com/costela/lpclass/render"
)

const (
	FieldRouters     = "routers"
	FieldEdges       = "edges"
	FieldSource      = "source"
	FieldDestination = "destination"
)

type Input struct {
	Graph       *Graph
	Source      string
	Destination string
}

func FieldNames() []string {
	return []string{FieldRouters, FieldEdges, FieldSource, FieldDestination}
}

func DefaultInput() Input {
	return Input{Graph: SampleGraph(), Source: "A", Destination: "E"}
}

// Fields writes routers comma separated and edges as "A,B,5" items
// separated by ';'.
func (in Input) Fields() form.Fields {
	f := form.Fields{
		FieldSource:      in.Source,
		FieldDestination: in.Destination,
	}
	if in.Graph != nil {
		f[FieldRouters] = strings.Join(in.Graph.Routers(), ",")
		var edges []string
		for _, e := range in.Graph.Edges() {
			edges = append(edges, e.String())
		}
		f[FieldEdges] = strings.Join(edges, ";")
	}
	return f
}

// ParseInput builds the graph from the routers and edges fields, falling back
// to SampleGraph when both are empty, then validates source and destination.
func ParseInput(fields form.Fields) (Input, error) {
	g, err := parseGraph(fields[FieldRouters], fields[FieldEdges])
	if err != nil {
		return Input{}, err
	}

	p := form.NewParser(fields)
	in := Input{
		Graph:       g,
		Source:      NormalizeRouter(p.String(FieldSource)),
		Destination: NormalizeRouter(p.String(FieldDestination)),
	}
	if err := p.Err(); err != nil {
		return Input{}, err
	}
	if err := in.validate(); err != nil {
		return Input{}, err
	}
	return in, nil
}

func parseGraph(routers, edges string) (*Graph, error) {
	if strings.TrimSpace(routers) == "" && strings.TrimSpace(edges) == "" {
		return SampleGraph(), nil
	}

	g := NewGraph()
	for _, r := range strings.Split(routers, ",") {
		if _, err := g.AddRouter(r); err != nil {
			return nil, fieldError(FieldRouters, err)
		}
	}
	for _, item := range strings.FieldsFunc(edges, func(r rune) bool { return r == ';' || r == '\n' }) {
		if strings.TrimSpace(item) == "" {
			continue
		}
		e, err := ParseEdge(item)
		if err == nil {
			err = g.AddEdge(e.From, e.To, e.Weight)
		}
		if err != nil {
			return nil, fieldError(FieldEdges, err)
		}
	}
	return g, nil
}

// fieldError moves a graph error onto the form field it was read from.
func fieldError(field string, err error) error {
	var invalid *form.InvalidInputError
	if errors.As(err, &invalid) {
		return form.Invalid(field, "%s", invalid.Reason)
	}
	return err
}

func (in Input) validate() error {
	switch {
	case in.Graph == nil:
		return form.Invalid(FieldRouters, "a network is required")
	case !in.Graph.HasRouter(in.Source):
		return form.Invalid(FieldSource, "unknown router %q", in.Source)
	case !in.Graph.HasRouter(in.Destination):
		return form.Invalid(FieldDestination, "unknown router %q", in.Destination)
	case NormalizeRouter(in.Source) == NormalizeRouter(in.Destination):
		return form.Invalid(FieldDestination, "must differ from the source %q", in.Source)
	}
	return nil
}

func edgeName(e Edge) string {
	return fmt.Sprintf("e[%s,%s]", e.From, e.To)
}

// Formulate selects binary edges at minimum total weight. Every router
// touched by an edge, except source and destination, keeps its inflow equal
// to its outflow; one edge leaves the source and one enters the destination.
func Formulate(in Input, opts ...lpclass.Option) (*lpclass.Model, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	src, dst := NormalizeRouter(in.Source), NormalizeRouter(in.Destination)

	model, err := lpclass.NewModel("network", lpclass.Minimize, opts...)
	if err != nil {
		return nil, err
	}

	edges := in.Graph.Edges()
	vars := make([]*lpclass.Variable, len(edges))
	touched := map[string]bool{}
	for k, e := range edges {
		if vars[k], err = model.AddDefinedVariable(edgeName(e), lpclass.BinaryVariable, float64(e.Weight), 0, 1); err != nil {
			return nil, errors.Wrapf(err, "adding edge %s -> %s", e.From, e.To)
		}
		touched[e.From], touched[e.To] = true, true
	}

	// incident appends the edges matching want, each with coefficient sign
	incident := func(want func(Edge) bool, sign float64, vs []*lpclass.Variable, coefs []float64) ([]*lpclass.Variable, []float64) {
		for k, e := range edges {
			if want(e) {
				vs, coefs = append(vs, vars[k]), append(coefs, sign)
			}
		}
		return vs, coefs
	}
	into := func(node string) func(Edge) bool { return func(e Edge) bool { return e.To == node } }
	outOf := func(node string) func(Edge) bool { return func(e Edge) bool { return e.From == node } }

	for _, node := range in.Graph.Routers() {
		if !touched[node] || node == src || node == dst {
			continue
		}
		vs, coefs := incident(into(node), 1, nil, nil)
		vs, coefs = incident(outOf(node), -1, vs, coefs)
		if err := model.AddNamedConstraint(fmt.Sprintf("node_%s_conservation", node), 0, 0, vs, coefs); err != nil {
			return nil, errors.Wrapf(err, "adding conservation of %s", node)
		}
	}

	vs, coefs := incident(outOf(src), 1, nil, nil)
	if err := model.AddNamedConstraint("source_out", 1, 1, vs, coefs); err != nil {
		return nil, errors.Wrap(err, "adding source_out")
	}
	vs, coefs = incident(into(dst), 1, nil, nil)
	if err := model.AddNamedConstraint("sink_in", 1, 1, vs, coefs); err != nil {
		return nil, errors.Wrap(err, "adding sink_in")
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

	var selected []Edge
	total := 0
	for _, e := range in.Graph.Edges() {
		if res.Value(model.VariableByName(edgeName(e))) > 0.5 {
			selected = append(selected, e)
			total += e.Weight
		}
	}

	return &Result{
		Source:      NormalizeRouter(in.Source),
		Destination: NormalizeRouter(in.Destination),
		Path:        walk(NormalizeRouter(in.Source), NormalizeRouter(in.Destination), selected),
		Selected:    selected,
		Total:       total,
		Objective:   res.ObjectiveValue(),
	}, nil
}

// walk follows the selected edges from src until dst is reached. Selected
// edges off that route, such as zero weight cycles, are not part of the path.
func walk(src, dst string, selected []Edge) []Edge {
	next := make(map[string]Edge, len(selected))
	for _, e := range selected {
		if _, ok := next[e.From]; !ok {
			next[e.From] = e
		}
	}

	var path []Edge
	seen := map[string]bool{src: true}
	for node := src; node != dst; {
		e, ok := next[node]
		if !ok || seen[e.To] {
			break
		}
		path = append(path, e)
		seen[e.To] = true
		node = e.To
	}
	return path
}

type Result struct {
	Source      string
	Destination string
	Path        []Edge // ordered from source to destination
	Selected    []Edge // every edge picked by the solver
	Total       int    // sum of the selected edge weights
	Objective   float64
}

var _ render.Report = (*Result)(nil)

// Routers lists the routers along the path, source first.
func (r *Result) Routers() []string {
	if len(r.Path) == 0 {
		return nil
	}
	out := []string{r.Path[0].From}
	for _, e := range r.Path {
		out = append(out, e.To)
	}
	return out
}

func (r *Result) Title() string {
	return fmt.Sprintf("Shortest path from %s to %s", r.Source, r.Destination)
}

func (r *Result) Lines() []string {
	lines := make([]string, 0, len(r.Path)+1)
	lines = append(lines, "Path: "+strings.Join(r.Routers(), " -> "))
	for _, e := range r.Path {
		lines = append(lines, fmt.Sprintf("%s -> %s: %d", e.From, e.To, e.Weight))
	}
	return lines
}

func (r *Result) Summary() string {
	return fmt.Sprintf("Total travel time: %d", r.Total)
}
