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
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costela/lpclass"
	"github.com/costela/lpclass/internal/engines"
	"github.com/costela/lpclass/render"
)

// resetFlags restores the global flags once the test is done.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Setenv("LPCLASS_ENGINE", "")
	t.Setenv("LPCLASS_NODE_LIMIT", "")
	t.Setenv("LPCLASS_EXPORT_DIR", "")
	t.Cleanup(func() {
		jsonOutput, plainOutput, interactive = false, false, false
		engineName, exportDir, envFile = "", "", ".env"
	})
}

func findExercise(t *testing.T, name string) *exercise {
	t.Helper()
	for _, ex := range exercises() {
		if ex.name == name {
			return ex
		}
	}
	t.Fatalf("no exercise %q", name)
	return nil
}

// run executes the named exercise with args as its flags.
func run(t *testing.T, name string, args ...string) (int, string) {
	t.Helper()

	ex := findExercise(t, name)
	c := newExerciseCommand(ex)
	require.NoError(t, c.ParseFlags(args))

	var buf bytes.Buffer
	code := runExercise(c, ex, &buf)
	return code, buf.String()
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Sugarbeet labor cost", humanize("sugarbeet-labor-cost"))
	assert.Equal(t, "Water", humanize("water"))
	assert.Equal(t, "", humanize(""))
}

func TestExerciseDefaults(t *testing.T) {
	engine, err := engines.New("auto", 100000, nil)
	require.NoError(t, err)

	for _, ex := range exercises() {
		t.Run(ex.name, func(t *testing.T) {
			for _, f := range ex.fields {
				_, ok := ex.defaults[f.Key]
				assert.True(t, ok || f.Optional, "no sample value for %s", f.Key)
			}

			report, err := ex.solve(ex.defaults, lpclass.WithEngine(engine))
			require.NoError(t, err)
			assert.NotEmpty(t, report.Lines())
			assert.NotEmpty(t, report.Summary())
		})
	}
}

func TestRunPlain(t *testing.T) {
	resetFlags(t)
	plainOutput = true

	code, out := run(t, "antenna", "--zones", "5")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "Antenna placement\n")
	assert.Contains(t, out, "Total antennas: 3\n")
}

func TestRunInvalidInput(t *testing.T) {
	resetFlags(t)
	plainOutput = true

	code, out := run(t, "production", "--Ouv", "2.5")
	assert.Equal(t, exitError, code)
	assert.Contains(t, out, "Invalid input: Ouv: ")
}

func TestRunNoSolution(t *testing.T) {
	resetFlags(t)
	jsonOutput = true

	code, out := run(t, "antenna", "--zones", "3", "--minimums", "3,0,0")
	assert.Equal(t, exitNoSolution, code)

	var doc render.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, string(render.CategoryInfeasible), doc.Category)
	assert.Equal(t, "infeasible", doc.Detail)
}

func TestRunEngineOverride(t *testing.T) {
	resetFlags(t)
	plainOutput = true

	engineName = "cplex"
	code, out := run(t, "roster")
	assert.Equal(t, exitError, code)
	assert.Contains(t, out, "Error: engine must be one of")

	// the pseudo-boolean engine cannot take integer headcounts
	engineName = "PBO"
	code, out = run(t, "roster")
	assert.Equal(t, exitError, code)
	assert.Contains(t, out, string(render.CategorySolverUnavailable))
}

func TestRunRosterExport(t *testing.T) {
	resetFlags(t)
	jsonOutput = true
	exportDir = filepath.Join(t.TempDir(), "out")

	code, out := run(t, "roster", "--monday", "10", "--tuesday", "10", "--wednesday", "10",
		"--thursday", "10", "--friday", "10", "--saturday", "10", "--sunday", "10")
	require.Equal(t, exitOK, code, out)

	var doc render.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Leave planning", doc.Title)
	assert.Equal(t, "Optimal total of employees: 14", doc.Summary)
	assert.Contains(t, doc.Lines, "Monday: 2")

	text, err := os.ReadFile(filepath.Join(exportDir, "roster.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(text), "Optimal total of employees: 14")

	sheet, err := os.ReadFile(filepath.Join(exportDir, "roster.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Monday,Tuesday,Wednesday,Thursday,Friday,Saturday,Sunday\n2,2,2,2,2,2,2\n", string(sheet))
}
