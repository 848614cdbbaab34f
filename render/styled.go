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
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	primary = lipgloss.Color("#7C3AED")
	success = lipgloss.Color("#10B981")
	danger  = lipgloss.Color("#EF4444")
	muted   = lipgloss.Color("#6B7280")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			MarginBottom(1)

	summaryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(success).
			MarginTop(1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(1, 2)

	failureStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(danger).
			Padding(0, 1)

	categoryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(danger)
)

// Styled renders r as a bordered terminal panel.
func Styled(r Report) string {
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(r.Title()),
		strings.Join(r.Lines(), "\n"),
		summaryStyle.Render(r.Summary()),
	))
}

// StyledFailure is the terminal panel counterpart of Failure.
func StyledFailure(err error) string {
	cat, detail := Classify(err)
	return failureStyle.Render(categoryStyle.Render(string(cat)) + "\n" + detail)
}
