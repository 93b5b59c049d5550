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

// Package wall extracts solid-boundary ("wall") zones from parsed solver
// output, reconstructs their ordered surface polylines, and merges base and
// auxiliary solution files into a single augmented polyline.
package wall

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/icingtools/icepost/tecplot"
)

// IsWall reports whether z represents a solid boundary surface. The zone
// title is authoritative when present; header keywords are the fallback for
// exports without titles.
func IsWall(z *tecplot.Zone) bool {
	if strings.Contains(strings.ToLower(z.Title), "wall") {
		return true
	}
	h := strings.ToLower(z.Header)
	return strings.Contains(h, " wall") || strings.Contains(h, "surface") || strings.Contains(h, "solid")
}

// Walls returns the wall zones of f with nodes above the z threshold
// removed. A node is kept when its z coordinate is at most zThreshold+tol.
// Connectivity of filtered zones is remapped to the compacted node indices;
// edges losing either endpoint are dropped. The returned zones are copies
// and share no data with f.
func Walls(f *tecplot.File, zThreshold, tol float64) ([]*tecplot.Zone, error) {
	zIdx, ok := f.VarTable().Index(tecplot.ZNames...)
	if !ok {
		return nil, fmt.Errorf("wall: %s: no z coordinate column for z-filtering", f.Path)
	}

	var walls []*tecplot.Zone
	for _, z := range f.Zones {
		if !IsWall(z) {
			continue
		}
		walls = append(walls, filterZ(z, zIdx, zThreshold+tol, len(f.Variables)))
	}
	return walls, nil
}

// filterZ copies z, keeping only nodes with node[zIdx] <= limit.
func filterZ(z *tecplot.Zone, zIdx int, limit float64, nvars int) *tecplot.Zone {
	keep := make([]bool, z.N)
	remap := make([]int, z.N)
	nKeep := 0
	for i := 0; i < z.N; i++ {
		if z.Nodes.At(i, zIdx) <= limit {
			keep[i] = true
			remap[i] = nKeep
			nKeep++
		}
	}

	out := &tecplot.Zone{
		Title:  z.Title,
		Type:   z.Type,
		N:      nKeep,
		Header: z.Header,
	}
	if nKeep > 0 {
		out.Nodes = mat.NewDense(nKeep, nvars, nil)
		r := 0
		for i := 0; i < z.N; i++ {
			if !keep[i] {
				continue
			}
			for j := 0; j < nvars; j++ {
				out.Nodes.Set(r, j, z.Nodes.At(i, j))
			}
			r++
		}
	} else {
		out.Nodes = &mat.Dense{}
	}

	for _, e := range z.Conn {
		if keep[e.I] && keep[e.J] {
			out.Conn = append(out.Conn, tecplot.Edge{I: remap[e.I], J: remap[e.J]})
		}
	}
	out.E = len(out.Conn)
	return out
}
