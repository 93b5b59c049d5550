/*
Copyright © 2025 the IcePost authors.
This file is part of IcePost.

IcePost is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

IcePost is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with IcePost.  If not, see <http://www.gnu.org/licenses/>.
*/

package tecplot

import "strings"

// Normalize reduces a variable name to a canonical lookup key: everything
// from the first whitespace, '(' or ';' onward is cut, the remainder is
// stripped of non-alphanumeric characters and lowercased. "Pressure (N/m^2)"
// and "pressure" therefore resolve to the same key.
func Normalize(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.IndexAny(name, " \t(;"); i >= 0 {
		name = name[:i]
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}

// VarTable maps normalized variable names to their column indices. All
// column lookups after parsing go through this table.
type VarTable map[string]int

// NewVarTable builds the lookup table for names, in column order. When two
// names normalize to the same key the first column wins.
func NewVarTable(names []string) VarTable {
	t := make(VarTable, len(names))
	for i, n := range names {
		k := Normalize(n)
		if _, ok := t[k]; !ok {
			t[k] = i
		}
	}
	return t
}

// Index returns the column index of the first candidate present in the
// table. Candidates are normalized before lookup, so callers may pass raw
// variable names.
func (t VarTable) Index(candidates ...string) (int, bool) {
	for _, c := range candidates {
		if i, ok := t[Normalize(c)]; ok {
			return i, true
		}
	}
	return 0, false
}

// Accepted synonyms for the physical quantities the merger needs. Candidates
// are tried in order; the first normalized name present in a file wins.
var (
	// XNames, YNames and ZNames locate the coordinate columns.
	XNames = []string{"x"}
	YNames = []string{"y"}
	ZNames = []string{"z"}

	// PressureNames locate a static pressure column.
	PressureNames = []string{"p", "pressurenm2", "pressure", "staticpressure"}

	// DensityNames locate a density column.
	DensityNames = []string{"density", "densitykgm3", "rho"}

	// VelocityComponentNames locate the cartesian velocity components,
	// FENSAP naming first.
	VelocityComponentNames = [][]string{
		{"v1velocity", "u", "velocityx"},
		{"v2velocity", "v", "velocityy"},
		{"v3velocity", "w", "velocityz"},
	}

	// VelocityMagnitudeNames locate a velocity magnitude column, used when
	// no components are present.
	VelocityMagnitudeNames = []string{"velocitymagnitude", "velmag", "speed", "magv"}

	// DynamicPressureNames locate a pre-computed dynamic pressure column.
	DynamicPressureNames = []string{"q", "qinf", "dynamicpressure", "dynpressure", "dynpress"}
)
