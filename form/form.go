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

// Package form turns raw text fields into typed values for the exercise
// formulators.
//
// A Parser reads fields one at a time and remembers the first failure; later
// reads return zero values. Callers check Err once after reading everything
// and must not build a model when it is non-nil.
package form

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidInput matches every *InvalidInputError with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError names the offending field and why it was rejected.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input in field %q: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Invalid is a shorthand for building an *InvalidInputError.
func Invalid(field, format string, args ...interface{}) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Fields maps field names to the raw text entered for them.
type Fields map[string]string

type Parser struct {
	fields Fields
	err    error
}

func NewParser(fields Fields) *Parser {
	return &Parser{fields: fields}
}

// Err returns the first failure, if any.
func (p *Parser) Err() error {
	return p.err
}

func (p *Parser) fail(field, format string, args ...interface{}) {
	if p.err == nil {
		p.err = Invalid(field, format, args...)
	}
}

func (p *Parser) raw(field string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	s := strings.TrimSpace(p.fields[field])
	if s == "" {
		p.fail(field, "value is required")
		return "", false
	}
	return s, true
}

// String returns the trimmed, non-empty text of field.
func (p *Parser) String(field string) string {
	s, _ := p.raw(field)
	return s
}

func (p *Parser) Float(field string) float64 {
	s, ok := p.raw(field)
	if !ok {
		return 0
	}
	f, ok := parseFloat(s)
	if !ok {
		p.fail(field, "%q is not a number", s)
		return 0
	}
	return f
}

// NonNegativeFloat is Float for quantities that cannot be negative, such as
// costs and capacities.
func (p *Parser) NonNegativeFloat(field string) float64 {
	f := p.Float(field)
	if f < 0 {
		p.fail(field, "must not be negative, got %g", f)
		return 0
	}
	return f
}

func (p *Parser) Int(field string) int {
	s, ok := p.raw(field)
	if !ok {
		return 0
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		p.fail(field, "%q is not an integer", s)
		return 0
	}
	return i
}

// NonNegativeInt is Int for counts such as headcounts and stock.
func (p *Parser) NonNegativeInt(field string) int {
	i := p.Int(field)
	if i < 0 {
		p.fail(field, "must not be negative, got %d", i)
		return 0
	}
	return i
}

func (p *Parser) PositiveInt(field string) int {
	i := p.Int(field)
	if p.err == nil && i <= 0 {
		p.fail(field, "must be greater than zero, got %d", i)
		return 0
	}
	return i
}

// Percentage reads a value between 0 and 100 and returns it as a proportion
// between 0 and 1.
func (p *Parser) Percentage(field string) float64 {
	f := p.Float(field)
	if f < 0 || f > 100 {
		p.fail(field, "must be a percentage between 0 and 100, got %g", f)
		return 0
	}
	return f / 100
}

// FloatList reads exactly n comma separated numbers.
func (p *Parser) FloatList(field string, n int) []float64 {
	items, ok := p.list(field, n)
	if !ok {
		return nil
	}
	out := make([]float64, n)
	for i, s := range items {
		f, ok := parseFloat(s)
		if !ok {
			p.fail(field, "element %d (%q) is not a number", i+1, s)
			return nil
		}
		out[i] = f
	}
	return out
}

// IntList reads exactly n comma separated integers.
func (p *Parser) IntList(field string, n int) []int {
	items, ok := p.list(field, n)
	if !ok {
		return nil
	}
	out := make([]int, n)
	for i, s := range items {
		v, err := strconv.Atoi(s)
		if err != nil {
			p.fail(field, "element %d (%q) is not an integer", i+1, s)
			return nil
		}
		out[i] = v
	}
	return out
}

// NonNegativeIntList is IntList rejecting negative elements.
func (p *Parser) NonNegativeIntList(field string, n int) []int {
	out := p.IntList(field, n)
	for i, v := range out {
		if v < 0 {
			p.fail(field, "element %d must not be negative, got %d", i+1, v)
			return nil
		}
	}
	return out
}

func (p *Parser) list(field string, n int) ([]string, bool) {
	s, ok := p.raw(field)
	if !ok {
		return nil, false
	}
	items := strings.Split(s, ",")
	if len(items) != n {
		p.fail(field, "expected %d comma separated values, got %d", n, len(items))
		return nil, false
	}
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}
	return items, true
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
