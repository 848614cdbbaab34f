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

// Package cmd implements the lpclass command line.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/costela/lpclass/internal/config"
)

var (
	jsonOutput  bool
	plainOutput bool
	interactive bool
	engineName  string
	exportDir   string
	envFile     string
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "lpclass",
	Short: "Solve the classroom linear programming exercises",
	Long: `lpclass formulates and solves six classroom optimization exercises:
agriculture, production, roster, siting, antenna and network.

Every exercise field can be given as a flag; missing fields take the
exercise's sample value. Use --interactive to fill them in a form.

Exit codes:
  0 - Optimal solution found
  1 - No solution (infeasible, unbounded or not found)
  2 - Error (invalid input, configuration or engine failure)

Environment Variables:
  LPCLASS_ENGINE      Engine: ` + strings.Join(config.Engines, ", ") + ` (default: auto)
  LPCLASS_NODE_LIMIT  Branch-and-bound node limit (default: 100000)
  LPCLASS_EXPORT_DIR  Directory for exported schedules
  LOG_LEVEL           debug, info, warn, error (default: warn)
  LOG_FORMAT          text, json (default: text)`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().BoolVar(&plainOutput, "plain", false, "Output plain text without styling")
	rootCmd.PersistentFlags().BoolVar(&interactive, "interactive", false, "Fill the exercise fields in a form")
	rootCmd.PersistentFlags().StringVar(&engineName, "engine", "", "Optimization engine (overrides LPCLASS_ENGINE)")
	rootCmd.PersistentFlags().StringVar(&exportDir, "export-dir", "", "Directory for exported schedules (overrides LPCLASS_EXPORT_DIR)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "File to seed the environment from, if it exists")

	for _, ex := range exercises() {
		rootCmd.AddCommand(newExerciseCommand(ex))
	}
}

// loadConfig returns the configuration with command line overrides applied.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	if engineName != "" {
		cfg.Engine = strings.ToLower(engineName)
	}
	if exportDir != "" {
		cfg.ExportDir = exportDir
	}
	return cfg, cfg.Validate()
}
