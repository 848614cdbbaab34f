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

// Package engines builds the optimization engine selected by name.
package engines

import (
	"fmt"
	"log/slog"

	"github.com/costela/lpclass"
	"github.com/costela/lpclass/internal/config"
	"github.com/costela/lpclass/internal/logger"
	"github.com/costela/lpclass/mip"
	"github.com/costela/lpclass/pbo"
)

// Auto hands pure 0/1 problems to the pseudo-boolean solver and everything
// else to branch-and-bound.
type Auto struct {
	pbo *pbo.Solver
	mip *mip.Solver
	log *slog.Logger
}

func (a *Auto) Solve(prob *lpclass.Problem) (*lpclass.Solution, error) {
	if a.pbo.Supports(prob) {
		a.log.Debug("dispatching", "problem", prob.Name, "engine", config.EnginePBO)
		return a.pbo.Solve(prob)
	}
	a.log.Debug("dispatching", "problem", prob.Name, "engine", config.EngineSimplex)
	return a.mip.Solve(prob)
}

// New returns the engine called name (see config.Engines).
func New(name string, nodeLimit int, l *slog.Logger) (lpclass.Engine, error) {
	if l == nil {
		l = slog.Default()
	}

	newMIP := func() (*mip.Solver, error) {
		return mip.NewSolver(
			mip.WithNodeLimit(nodeLimit),
			mip.WithLogger(logger.Model(l, config.EngineSimplex)),
		)
	}
	newPBO := func() *pbo.Solver {
		return pbo.New(pbo.WithLogger(logger.Model(l, config.EnginePBO)))
	}

	switch name {
	case config.EngineSimplex:
		m, err := newMIP()
		if err != nil {
			return nil, err
		}
		return m, nil
	case config.EnginePBO:
		return newPBO(), nil
	case config.EngineAuto, "":
		m, err := newMIP()
		if err != nil {
			return nil, err
		}
		return &Auto{pbo: newPBO(), mip: m, log: l}, nil
	default:
		return nil, fmt.Errorf("unknown engine %q", name)
	}
}
