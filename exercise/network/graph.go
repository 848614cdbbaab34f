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

package network

import (
	"strconv"
	"strings"

	"github.com/costela/lpclass/form"
)

const (
	FieldRouter = "router"
	FieldEdge   = "edge"
)

// Edge is a directed, weighted link between two routers.
type Edge struct {
	From   string
	To     string
	Weight int
}

func (e Edge) String() string {
	return e.From + "," + e.To + "," + strconv.Itoa(e.Weight)
}

// Graph holds routers in insertion order and the directed edges between
// them. Adding an edge twice replaces its weight.
type Graph struct {
	routers []string
	known   map[string]bool
	edges   []Edge
	byPair  map[[2]string]int
}

func NewGraph() *Graph {
	return &Graph{
		known:  map[string]bool{},
		byPair: map[[2]string]int{},
	}
}

// NormalizeRouter trims and upper-cases a router name.
func NormalizeRouter(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// AddRouter adds a router and returns its normalized name.
func (g *Graph) AddRouter(name string) (string, error) {
	name = NormalizeRouter(name)
	switch {
	case name == "":
		return "", form.Invalid(FieldRouter, "router name is required")
	case strings.ContainsAny(name, ",;"):
		return "", form.Invalid(FieldRouter, "router name %q must not contain ',' or ';'", name)
	case g.known[name]:
		return "", form.Invalid(FieldRouter, "router %q already exists", name)
	}

	g.routers = append(g.routers, name)
	g.known[name] = true
	return name, nil
}

// HasRouter reports whether name, once normalized, is a known router.
func (g *Graph) HasRouter(name string) bool {
	return g.known[NormalizeRouter(name)]
}

// AddEdge adds the directed edge from -> to. Both routers must exist and the
// weight must be a non-negative integer.
func (g *Graph) AddEdge(from, to string, weight int) error {
	from, to = NormalizeRouter(from), NormalizeRouter(to)
	switch {
	case !g.known[from] || !g.known[to]:
		return form.Invalid(FieldEdge, "one or both routers of %s -> %s do not exist", from, to)
	case from == to:
		return form.Invalid(FieldEdge, "edge %s -> %s must join two different routers", from, to)
	case weight < 0:
		return form.Invalid(FieldEdge, "weight of %s -> %s must not be negative, got %d", from, to, weight)
	}

	pair := [2]string{from, to}
	if i, ok := g.byPair[pair]; ok {
		g.edges[i].Weight = weight
		return nil
	}
	g.byPair[pair] = len(g.edges)
	g.edges = append(g.edges, Edge{From: from, To: to, Weight: weight})
	return nil
}

// Routers returns the routers in insertion order.
func (g *Graph) Routers() []string {
	return append([]string(nil), g.routers...)
}

// Edges returns the edges in insertion order.
func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// ParseEdge reads an edge written as "A,B,5". Router names are normalized
// but not checked against any graph.
func ParseEdge(s string) (Edge, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Edge{}, form.Invalid(FieldEdge, "invalid edge format %q, expected A,B,weight", s)
	}

	w, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return Edge{}, form.Invalid(FieldEdge, "invalid weight %q, expected an integer", strings.TrimSpace(parts[2]))
	}

	return Edge{From: NormalizeRouter(parts[0]), To: NormalizeRouter(parts[1]), Weight: w}, nil
}

// SampleGraph returns the preloaded classroom network.
func SampleGraph() *Graph {
	g := NewGraph()
	for _, r := range []string{"A", "B", "C", "D", "E", "F"} {
		_, _ = g.AddRouter(r)
	}
	for _, e := range []Edge{
		{"A", "B", 7}, {"A", "C", 9}, {"A", "F", 14},
		{"B", "C", 10}, {"B", "D", 15},
		{"C", "D", 11}, {"C", "F", 2},
		{"D", "E", 6},
		{"F", "E", 9},
	} {
		_ = g.AddEdge(e.From, e.To, e.Weight)
	}
	return g
}
