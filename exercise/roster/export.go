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

package roster

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/costela/lpclass/render"
)

// WriteText writes the plain text report of r.
func (r *Result) WriteText(w io.Writer) error {
	_, err := io.WriteString(w, render.Text(r))
	return err
}

// WriteCSV writes r as a spreadsheet: a header row of weekdays and a row of
// headcounts.
func (r *Result) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, numDays)
	row := make([]string, 0, numDays)
	for _, d := range Week {
		header = append(header, d.String())
		row = append(row, strconv.Itoa(r.Schedule[d]))
	}

	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.Write(row); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
