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
package render

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/costela/lpclass"
	"github.com/costela/lpclass/form"
)

type staticReport struct {
	title   string
	lines   []string
	summary string
}

func (r staticReport) Title() string   { return r.title }
func (r staticReport) Lines() []string { return r.lines }
func (r staticReport) Summary() string { return r.summary }

func TestText(t *testing.T) {
	r := staticReport{
		title:   "Agriculture",
		lines:   []string{"Wheat hectares: 10", "Barley hectares: 0"},
		summary: "Optimal profit: 42",
	}

	assert.Equal(t, "Agriculture\nWheat hectares: 10\nBarley hectares: 0\nOptimal profit: 42\n", Text(r))

	styled := Styled(r)
	for _, s := range append(r.lines, r.title, r.summary) {
		assert.Contains(t, styled, s)
	}

	want := Document{Title: r.title, Lines: r.lines, Summary: r.summary}
	if diff := cmp.Diff(want, NewDocument(r)); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "3", Whole(2.9999999))
	assert.Equal(t, "0", Whole(-0.0000001))
	assert.Equal(t, "Yes", YesNo(0.9999))
	assert.Equal(t, "No", YesNo(0.0001))
	assert.Equal(t, "12.5", Number(12.5000000001))
	assert.Equal(t, "0", Number(-0.0000000001))
	assert.Equal(t, "1234567", Number(1234567))
}

func TestFailure(t *testing.T) {
	tests := []struct {
		err      error
		category Category
		detail   string
	}{
		{form.Invalid("budget", "must not be negative, got -1"), CategoryInvalidInput, "budget: must not be negative, got -1"},
		{fmt.Errorf("parsing: %w", form.Invalid("x", "bad")), CategoryInvalidInput, "x: bad"},
		{lpclass.ErrModelInfeasible, CategoryInfeasible, "infeasible"},
		{lpclass.ErrModelUnbounded, CategoryUnbounded, "unbounded"},
		{fmt.Errorf("solving: %w", lpclass.ErrNoFeasibleFound), CategoryNoSolution, "no solution found"},
		{lpclass.ErrNoEngine, CategorySolverUnavailable, "no optimization engine configured"},
		{fmt.Errorf("%w: %v", lpclass.ErrEngineFailure, errors.New("boom")), CategorySolverUnavailable, "optimization engine failure: boom"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			cat, detail := Classify(tt.err)
			assert.Equal(t, tt.category, cat)
			assert.Equal(t, tt.detail, detail)
			assert.Equal(t, string(tt.category)+": "+tt.detail, Failure(tt.err))
			assert.Equal(t, Document{Category: string(tt.category), Detail: tt.detail}, FailureDocument(tt.err))
			assert.Contains(t, StyledFailure(tt.err), string(tt.category))
		})
	}
}
