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

package wall

import "math"

// ArcLength returns the cumulative arc length along the merged polyline,
// starting at zero.
func (m *Merged) ArcLength() []float64 {
	ls := m.Polyline()
	s := make([]float64, len(ls))
	for i := 1; i < len(ls); i++ {
		s[i] = s[i-1] + math.Hypot(ls[i].X-ls[i-1].X, ls[i].Y-ls[i-1].Y)
	}
	return s
}

// AppendArc appends the scaled arc-length parameter as column "s".
func (m *Merged) AppendArc() {
	m.appendColumn("s", ScaleUnit(m.ArcLength()))
}

// ScaleUnit maps an arc-length parameterization onto [-1, 1], start at -1
// and end at +1. Degenerate inputs map to all zeros.
func ScaleUnit(s []float64) []float64 {
	out := make([]float64, len(s))
	if len(s) == 0 {
		return out
	}
	s0, s1 := s[0], s[len(s)-1]
	if !isFinite(s0) || !isFinite(s1) || s1 == s0 {
		return out
	}
	for i, v := range s {
		out[i] = -1 + 2*(v-s0)/(s1-s0)
	}
	return out
}
