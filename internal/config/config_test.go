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
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"LPCLASS_ENGINE", "LPCLASS_NODE_LIMIT", "LPCLASS_EXPORT_DIR"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, &Config{Engine: EngineAuto, NodeLimit: DefaultNodeLimit}, cfg)
}

func TestLoadEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("LPCLASS_ENGINE", "PBO")
	t.Setenv("LPCLASS_NODE_LIMIT", "50")
	t.Setenv("LPCLASS_EXPORT_DIR", "/tmp/out")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, &Config{Engine: EnginePBO, NodeLimit: 50, ExportDir: "/tmp/out"}, cfg)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown engine":  {"LPCLASS_ENGINE": "gurobi"},
		"text node limit": {"LPCLASS_NODE_LIMIT": "lots"},
		"zero node limit": {"LPCLASS_NODE_LIMIT": "0"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("LPCLASS_ENGINE=simplex\nLPCLASS_NODE_LIMIT=10\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("LPCLASS_ENGINE")
		_ = os.Unsetenv("LPCLASS_NODE_LIMIT")
	})

	// the environment overrides the file
	t.Setenv("LPCLASS_NODE_LIMIT", "20")

	cfg, err := Load(filepath.Join(dir, "missing.env"), file)
	require.NoError(t, err)
	assert.Equal(t, EngineSimplex, cfg.Engine)
	assert.Equal(t, 20, cfg.NodeLimit)
}
