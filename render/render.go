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

// Package render formats exercise results and failures for people.
package render

import (
	"math"
	"strconv"
	"strings"
)

// Report is implemented by every exercise result.
type Report interface {
	// Title names the exercise.
	Title() string
	// Lines holds one line per reported entity, in a stable order.
	Lines() []string
	// Summary carries the objective value.
	Summary() string
}

// Document is the serializable form of a Report or a failure.
type Document struct {
	Title    string   `json:"title,omitempty"`
	Lines    []string `json:"lines,omitempty"`
	Summary  string   `json:"summary,omitempty"`
	Category string   `json:"category,omitempty"`
	Detail   string   `json:"detail,omitempty"`
}

func NewDocument(r Report) Document {
	return Document{
		Title:   r.Title(),
		Lines:   r.Lines(),
		Summary: r.Summary(),
	}
}

// Text renders r as plain text: title, entity lines and summary, one per
// line.
func Text(r Report) string {
	var sb strings.Builder
	sb.WriteString(r.Title())
	sb.WriteByte('\n')
	for _, l := range r.Lines() {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	sb.WriteString(r.Summary())
	sb.WriteByte('\n')
	return sb.String()
}

// Whole formats an integer-valued variable.
func Whole(v float64) string {
	r := math.Round(v)
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', 0, 64)
}

// YesNo formats a binary variable.
func YesNo(v float64) string {
	if v > 0.5 {
		return "Yes"
	}
	return "No"
}

// Number formats a continuous value without the solver's floating point
// noise.
func Number(v float64) string {
	r := math.Round(v*1e6) / 1e6
	if r == 0 {
		// no "-0"
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
