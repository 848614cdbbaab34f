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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/costela/lpclass"
	"github.com/costela/lpclass/form"
	"github.com/costela/lpclass/internal/engines"
	"github.com/costela/lpclass/internal/logger"
	"github.com/costela/lpclass/internal/tui"
	"github.com/costela/lpclass/render"
)

const (
	exitOK         = 0
	exitNoSolution = 1
	exitError      = 2
)

type solveFunc func(form.Fields, ...lpclass.Option) (render.Report, error)

// exercise describes one subcommand: its fields, their sample values and how
// to solve them.
type exercise struct {
	name     string
	short    string
	fields   []tui.Field
	defaults form.Fields
	solve    solveFunc
	// export writes the result under dir, when an export directory is set
	export func(r render.Report, dir string) error
}

func newExerciseCommand(ex *exercise) *cobra.Command {
	c := &cobra.Command{
		Use:   ex.name,
		Short: ex.short,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if code := runExercise(cmd, ex, os.Stdout); code != exitOK {
				os.Exit(code)
			}
		},
	}
	for _, f := range ex.fields {
		c.Flags().String(f.Key, "", fmt.Sprintf("%s (default %q)", f.Title, ex.defaults[f.Key]))
	}
	return c
}

// collectFields starts from the sample values and applies the flags that
// were set.
func collectFields(cmd *cobra.Command, ex *exercise) form.Fields {
	fields := make(form.Fields, len(ex.fields))
	for _, f := range ex.fields {
		fields[f.Key] = ex.defaults[f.Key]
		if cmd.Flags().Changed(f.Key) {
			fields[f.Key], _ = cmd.Flags().GetString(f.Key)
		}
	}
	return fields
}

// runExercise solves one exercise and returns the exit code
func runExercise(cmd *cobra.Command, ex *exercise, w io.Writer) int {
	log := slog.Default().With("exercise", ex.name)

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}

	fields := collectFields(cmd, ex)
	if interactive {
		fields, err = tui.Run(ex.short, ex.fields, fields)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitError
		}
	}

	engine, err := engines.New(cfg.Engine, cfg.NodeLimit, log)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}

	report, err := ex.solve(fields, lpclass.WithEngine(engine), lpclass.WithLogger(logger.Model(log, "model")))
	if err != nil {
		log.Info("no result", "error", err)
		writeFailure(w, err)
		return exitCode(err)
	}

	if err := writeReport(w, report); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}

	if ex.export != nil && cfg.ExportDir != "" {
		if err := ex.export(report, cfg.ExportDir); err != nil {
			fmt.Fprintf(w, "Error: exporting to %s: %v\n", cfg.ExportDir, err)
			return exitError
		}
		log.Info("exported result", "dir", cfg.ExportDir)
	}

	return exitOK
}

func exitCode(err error) int {
	switch cat, _ := render.Classify(err); cat {
	case render.CategoryInvalidInput, render.CategorySolverUnavailable:
		return exitError
	default:
		return exitNoSolution
	}
}

func writeReport(w io.Writer, r render.Report) error {
	switch {
	case jsonOutput:
		return writeJSON(w, render.NewDocument(r))
	case plainOutput:
		_, err := io.WriteString(w, render.Text(r))
		return err
	default:
		_, err := fmt.Fprintln(w, render.Styled(r))
		return err
	}
}

func writeFailure(w io.Writer, err error) {
	switch {
	case jsonOutput:
		if werr := writeJSON(w, render.FailureDocument(err)); werr != nil {
			fmt.Fprintf(w, "Error: %v\n", errors.Join(err, werr))
		}
	case plainOutput:
		fmt.Fprintln(w, render.Failure(err))
	default:
		fmt.Fprintln(w, render.StyledFailure(err))
	}
}

func writeJSON(w io.Writer, doc render.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
