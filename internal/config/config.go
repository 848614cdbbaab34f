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

// Package config loads the command line settings from the environment,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EngineAuto    = "auto"
	EngineSimplex = "simplex"
	EnginePBO     = "pbo"

	DefaultNodeLimit = 100000
)

// Engines lists the accepted engine names.
var Engines = []string{EngineAuto, EngineSimplex, EnginePBO}

type Config struct {
	Engine    string // LPCLASS_ENGINE
	NodeLimit int    // LPCLASS_NODE_LIMIT, branch-and-bound nodes
	ExportDir string // LPCLASS_EXPORT_DIR, empty disables exports
}

// Load reads the configuration from the environment. Each existing file in
// envFiles is loaded first; variables already set in the environment win.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg := &Config{
		Engine:    strings.ToLower(getEnv("LPCLASS_ENGINE", EngineAuto)),
		ExportDir: os.Getenv("LPCLASS_EXPORT_DIR"),
	}

	var err error
	if cfg.NodeLimit, err = getEnvInt("LPCLASS_NODE_LIMIT", DefaultNodeLimit); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if !ValidEngine(c.Engine) {
		return fmt.Errorf("engine must be one of %s, got %q", strings.Join(Engines, ", "), c.Engine)
	}
	if c.NodeLimit < 1 {
		return fmt.Errorf("LPCLASS_NODE_LIMIT must be positive, got %d", c.NodeLimit)
	}
	return nil
}

func ValidEngine(name string) bool {
	for _, e := range Engines {
		if e == name {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, value)
	}
	return i, nil
}
