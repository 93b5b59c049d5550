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
	"fmt"
	"math"
	"strings"

	"github.com/ctessum/geom"
	"gonum.org/v1/gonum/mat"

	"github.com/icingtools/icepost/tecplot"
)

// Origin records where a merged node came from: the title of its source
// zone and its row index within that (z-filtered) zone, before reordering.
// Auxiliary files are joined through this mapping.
type Origin struct {
	Zone  string
	Index int
}

// Merged is the merged wall polyline: the ordered concatenation of all wall
// zones of a base solution file, plus any columns appended from auxiliary
// files and the derived Cp column.
type Merged struct {
	Variables []string
	Nodes     *mat.Dense
	Conn      []tecplot.Edge
	Origins   []Origin

	cols map[string]int // normalized name -> column
}

// Merge orders and concatenates the wall zones of base (z-filtered per
// Walls) into a single geometrically continuous polyline. Each zone is
// normalized to start at its maximum-x node and run clockwise, then flipped
// if its far end lies closer to the previous zone's endpoint. Connectivity
// is rebuilt as consecutive edges with a closing edge from the last node
// back to the first.
func Merge(base *tecplot.File, zThreshold, tol float64) (*Merged, error) {
	walls, err := Walls(base, zThreshold, tol)
	if err != nil {
		return nil, err
	}
	return mergeZones(base, walls)
}

func mergeZones(base *tecplot.File, walls []*tecplot.Zone) (*Merged, error) {
	total := 0
	for _, z := range walls {
		total += z.N
	}
	if total == 0 {
		return nil, fmt.Errorf("wall: %s: no wall zone nodes detected", base.Path)
	}

	vt := base.VarTable()
	xIdx, ok := vt.Index(tecplot.XNames...)
	if !ok {
		return nil, fmt.Errorf("wall: %s: no x coordinate column", base.Path)
	}
	yIdx, haveY := vt.Index(tecplot.YNames...) // y defaults to zeros below

	nvars := len(base.Variables)
	m := &Merged{
		Variables: append([]string(nil), base.Variables...),
		Nodes:     mat.NewDense(total, nvars, nil),
		Origins:   make([]Origin, 0, total),
	}
	m.cols = make(map[string]int, nvars)
	for i, v := range m.Variables {
		k := tecplot.Normalize(v)
		if _, ok := m.cols[k]; !ok {
			m.cols[k] = i
		}
	}

	row := 0
	var prev *geom.Point
	for _, z := range walls {
		if z.N == 0 {
			continue
		}
		x := make([]float64, z.N)
		y := make([]float64, z.N)
		for i := 0; i < z.N; i++ {
			x[i] = z.Nodes.At(i, xIdx)
			if haveY {
				y[i] = z.Nodes.At(i, yIdx)
			}
		}

		order := normalizeOrientation(Order(z), x, y)

		// Keep the merged polyline continuous: connect whichever end of
		// this zone is nearest to the previous zone's endpoint.
		if prev != nil && len(order) > 1 {
			first, last := order[0], order[len(order)-1]
			dStart := math.Hypot(x[first]-prev.X, y[first]-prev.Y)
			dEnd := math.Hypot(x[last]-prev.X, y[last]-prev.Y)
			if dEnd < dStart {
				for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
					order[i], order[j] = order[j], order[i]
				}
			}
		}

		for _, n := range order {
			for j := 0; j < nvars; j++ {
				m.Nodes.Set(row, j, z.Nodes.At(n, j))
			}
			m.Origins = append(m.Origins, Origin{Zone: z.Title, Index: n})
			row++
		}
		end := order[len(order)-1]
		prev = &geom.Point{X: x[end], Y: y[end]}
	}

	for i := 1; i < total; i++ {
		m.Conn = append(m.Conn, tecplot.Edge{I: i - 1, J: i})
	}
	if total >= 2 {
		m.Conn = append(m.Conn, tecplot.Edge{I: total - 1, J: 0})
	}
	return m, nil
}

// Polyline returns the merged nodes as a geometry, for arc-length and
// spacing computations.
func (m *Merged) Polyline() geom.LineString {
	vt := tecplot.NewVarTable(m.Variables)
	xIdx, okX := vt.Index(tecplot.XNames...)
	yIdx, okY := vt.Index(tecplot.YNames...)
	n, _ := m.Nodes.Dims()
	ls := make(geom.LineString, n)
	for i := 0; i < n; i++ {
		if okX {
			ls[i].X = m.Nodes.At(i, xIdx)
		}
		if okY {
			ls[i].Y = m.Nodes.At(i, yIdx)
		}
	}
	return ls
}

// Augment appends the columns of an auxiliary solution file to the merged
// matrix. Only variables not already present (by normalized name) are
// added, under the name "prefix:original". Coordinates are never imported.
// Rows whose origin zone or index is absent from the auxiliary file are
// filled with NaN.
func (m *Merged) Augment(aux *tecplot.File, prefix string, zThreshold, tol float64) error {
	walls, err := Walls(aux, zThreshold, tol)
	if err != nil {
		return err
	}
	byTitle := make(map[string]*tecplot.Zone, len(walls))
	for _, z := range walls {
		byTitle[strings.ToLower(strings.TrimSpace(z.Title))] = z
	}

	skip := map[string]bool{"x": true, "y": true, "z": true}
	var newNames []string
	var newIdx []int
	for i, v := range aux.Variables {
		k := tecplot.Normalize(v)
		if skip[k] {
			continue
		}
		if _, exists := m.cols[k]; exists {
			continue
		}
		m.cols[k] = len(m.Variables) + len(newNames)
		newNames = append(newNames, prefix+":"+v)
		newIdx = append(newIdx, i)
	}
	if len(newNames) == 0 {
		return nil
	}

	nrow, ncol := m.Nodes.Dims()
	grown := mat.NewDense(nrow, ncol+len(newNames), nil)
	for i := 0; i < nrow; i++ {
		for j := 0; j < ncol; j++ {
			grown.Set(i, j, m.Nodes.At(i, j))
		}
		zone := byTitle[strings.ToLower(strings.TrimSpace(m.Origins[i].Zone))]
		for k, src := range newIdx {
			v := math.NaN()
			if zone != nil && m.Origins[i].Index < zone.N {
				v = zone.Nodes.At(m.Origins[i].Index, src)
			}
			grown.Set(i, ncol+k, v)
		}
	}
	m.Nodes = grown
	m.Variables = append(m.Variables, newNames...)
	return nil
}

// appendColumn adds a named column to the merged matrix.
func (m *Merged) appendColumn(name string, vals []float64) {
	nrow, ncol := m.Nodes.Dims()
	grown := mat.NewDense(nrow, ncol+1, nil)
	for i := 0; i < nrow; i++ {
		for j := 0; j < ncol; j++ {
			grown.Set(i, j, m.Nodes.At(i, j))
		}
		grown.Set(i, ncol, vals[i])
	}
	m.Nodes = grown
	k := tecplot.Normalize(name)
	if _, ok := m.cols[k]; !ok {
		m.cols[k] = len(m.Variables)
	}
	m.Variables = append(m.Variables, name)
}

// Column returns the values of the column matching any of the candidate
// names.
func (m *Merged) Column(candidates ...string) ([]float64, bool) {
	for _, c := range candidates {
		if j, ok := m.cols[tecplot.Normalize(c)]; ok {
			n, _ := m.Nodes.Dims()
			out := make([]float64, n)
			mat.Col(out, j, m.Nodes)
			return out, true
		}
	}
	return nil, false
}
