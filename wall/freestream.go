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

import (
	"math"
	"strings"

	"github.com/icingtools/icepost/tecplot"
)

// Freestream holds the estimated far-field state used to normalize the
// pressure coefficient. Fields are NaN when they cannot be inferred.
type Freestream struct {
	P   float64 // static pressure
	Rho float64 // density
	V   float64 // velocity magnitude
	Q   float64 // dynamic pressure
}

// InferFreestream estimates the freestream state from the first zone of f
// whose title contains "inlet" (case-insensitive). Values are averaged over
// the subset of inlet nodes at minimum x: the upstream edge of the domain.
// When a dynamic-pressure column exists it is used directly and the
// velocity is back-computed for reporting; otherwise q = ½ρV² with V built
// from velocity components, falling back to a magnitude column.
func InferFreestream(f *tecplot.File) Freestream {
	nan := math.NaN()
	fs := Freestream{P: nan, Rho: nan, V: nan, Q: nan}

	var inlet *tecplot.Zone
	for _, z := range f.Zones {
		// Only the zone title identifies an inlet; headers can mention
		// "inlet" in unrelated auxiliary data.
		if strings.Contains(strings.ToLower(z.Title), "inlet") {
			inlet = z
			break
		}
	}
	if inlet == nil || inlet.N == 0 {
		return fs
	}

	vt := f.VarTable()
	xIdx, ok := vt.Index(tecplot.XNames...)
	if !ok {
		return fs
	}

	rows := minXRows(inlet, xIdx)
	meanAt := func(col int, ok bool) float64 {
		if !ok {
			return nan
		}
		sum, n := 0.0, 0
		for _, r := range rows {
			if v := inlet.Nodes.At(r, col); !math.IsNaN(v) && !math.IsInf(v, 0) {
				sum += v
				n++
			}
		}
		if n == 0 {
			return nan
		}
		return sum / float64(n)
	}

	pIdx, pOK := vt.Index(tecplot.PressureNames...)
	rhoIdx, rhoOK := vt.Index(tecplot.DensityNames...)
	fs.P = meanAt(pIdx, pOK)
	fs.Rho = meanAt(rhoIdx, rhoOK)

	if qIdx, ok := vt.Index(tecplot.DynamicPressureNames...); ok {
		fs.Q = meanAt(qIdx, true)
		if isFinite(fs.Q) && isFinite(fs.Rho) && fs.Rho > 0 {
			fs.V = math.Sqrt(2 * fs.Q / fs.Rho)
		}
		return fs
	}

	// Build |V| from whatever components exist.
	var comps []int
	for _, names := range tecplot.VelocityComponentNames {
		if i, ok := vt.Index(names...); ok {
			comps = append(comps, i)
		}
	}
	if len(comps) > 0 {
		sum, n := 0.0, 0
		for _, r := range rows {
			mag := 0.0
			finite := true
			for _, c := range comps {
				v := inlet.Nodes.At(r, c)
				if math.IsNaN(v) || math.IsInf(v, 0) {
					finite = false
					break
				}
				mag += v * v
			}
			if finite {
				sum += math.Sqrt(mag)
				n++
			}
		}
		if n > 0 {
			fs.V = sum / float64(n)
		}
	} else if magIdx, ok := vt.Index(tecplot.VelocityMagnitudeNames...); ok {
		fs.V = meanAt(magIdx, true)
	}

	if isFinite(fs.Rho) && isFinite(fs.V) {
		fs.Q = 0.5 * fs.Rho * fs.V * fs.V
	}
	return fs
}

// minXRows returns the inlet rows lying on the minimum-x line. Exact ties
// within an absolute tolerance of 1e-12 are used; if only a single node
// matches, the match is widened by a small relative tolerance to catch
// coordinates perturbed by export rounding.
func minXRows(z *tecplot.Zone, xIdx int) []int {
	xmin := math.Inf(1)
	for i := 0; i < z.N; i++ {
		if v := z.Nodes.At(i, xIdx); v < xmin {
			xmin = v
		}
	}
	match := func(atol, rtol float64) []int {
		var rows []int
		for i := 0; i < z.N; i++ {
			if math.Abs(z.Nodes.At(i, xIdx)-xmin) <= atol+rtol*math.Abs(xmin) {
				rows = append(rows, i)
			}
		}
		return rows
	}
	rows := match(1e-12, 0)
	if len(rows) <= 1 {
		rows = match(1e-12, 1e-9)
	}
	return rows
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// AppendCp appends the pressure coefficient column Cp = (p - p_inf)/q_inf
// to the merged matrix, using the freestream state inferred from base. When
// no pressure column or no usable freestream exists the column is all NaN
// rather than an error, so downstream consumers stay stable. Cp is always
// the last column. The used freestream is returned for logging.
func (m *Merged) AppendCp(base *tecplot.File) Freestream {
	fs := InferFreestream(base)
	n, _ := m.Nodes.Dims()
	cp := make([]float64, n)

	p, haveP := m.Column(tecplot.PressureNames...)
	if haveP && isFinite(fs.Q) && fs.Q != 0 {
		for i := range cp {
			cp[i] = (p[i] - fs.P) / fs.Q
		}
	} else {
		for i := range cp {
			cp[i] = math.NaN()
		}
	}
	m.appendColumn("Cp", cp)
	return fs
}
