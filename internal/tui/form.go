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

// Package tui collects exercise fields interactively with huh forms driven by
// a bubbletea program.
package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/costela/lpclass/form"
)

// ErrCancelled is returned by Run when the user leaves the form.
var ErrCancelled = errors.New("input cancelled")

// fields per page
const pageSize = 8

type Field struct {
	Key         string
	Title       string
	Description string
	Optional    bool
}

// Form is a bubbletea model around a paged huh form.
type Form struct {
	form      *huh.Form
	keys      []string
	values    map[string]*string
	cancelled bool
}

func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	purple := lipgloss.Color("#7C3AED")
	green := lipgloss.Color("#10B981")
	gray := lipgloss.Color("#6B7280")
	red := lipgloss.Color("#EF4444")

	t.Group.Title = lipgloss.NewStyle().
		Foreground(purple).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(gray).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(purple)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(purple).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(red).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(red)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(green)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(gray)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(gray)

	return t
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("a value is required")
	}
	return nil
}

// New builds a form asking for fields, prefilled with defaults.
func New(title string, fields []Field, defaults form.Fields) *Form {
	f := &Form{values: make(map[string]*string, len(fields))}

	var groups []*huh.Group
	for start := 0; start < len(fields); start += pageSize {
		end := min(start+pageSize, len(fields))

		inputs := make([]huh.Field, 0, end-start)
		for _, fd := range fields[start:end] {
			v := defaults[fd.Key]
			f.values[fd.Key] = &v
			f.keys = append(f.keys, fd.Key)

			in := huh.NewInput().
				Key(fd.Key).
				Title(fd.Title).
				Description(fd.Description).
				Value(&v)
			if !fd.Optional {
				in = in.Validate(validateRequired)
			}
			inputs = append(inputs, in)
		}
		groups = append(groups, huh.NewGroup(inputs...).Title(title))
	}

	f.form = huh.NewForm(groups...).WithTheme(createTheme())
	return f
}

// Fields returns the current value of every field.
func (f *Form) Fields() form.Fields {
	out := make(form.Fields, len(f.keys))
	for _, k := range f.keys {
		out[k] = *f.values[k]
	}
	return out
}

// Cancelled reports whether the user left the form before completing it.
func (f *Form) Cancelled() bool {
	return f.cancelled
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "ctrl+c":
			f.cancelled = true
			return f, tea.Quit
		}
	}

	m, cmd := f.form.Update(msg)
	if hf, ok := m.(*huh.Form); ok {
		f.form = hf
	}

	switch f.form.State {
	case huh.StateCompleted:
		return f, tea.Quit
	case huh.StateAborted:
		f.cancelled = true
		return f, tea.Quit
	}
	return f, cmd
}

// View implements tea.Model
func (f *Form) View() string {
	if f.form.State != huh.StateNormal {
		return ""
	}
	return f.form.View()
}

// Run shows the form on the terminal until it is completed or cancelled.
func Run(title string, fields []Field, defaults form.Fields) (form.Fields, error) {
	final, err := tea.NewProgram(New(title, fields, defaults)).Run()
	if err != nil {
		return nil, err
	}

	f, ok := final.(*Form)
	if !ok || f.Cancelled() {
		return nil, ErrCancelled
	}
	return f.Fields(), nil
}
