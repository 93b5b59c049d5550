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

package convergence

import (
	"math"

	"github.com/ctessum/geom"

	"github.com/icingtools/icepost/tecplot"
	"github.com/icingtools/icepost/wall"
)

// MeanSpacing estimates a run's representative mesh spacing h from its
// merged wall file: the total arc length of the ordered polyline divided by
// the node count. Any failure yields NaN so a single bad run does not abort
// a study.
func MeanSpacing(path string) float64 {
	f, err := tecplot.ParseFile(path)
	if err != nil || len(f.Zones) == 0 {
		return math.NaN()
	}
	z := f.Zones[0]
	if z.N < 2 {
		return math.NaN()
	}

	vt := f.VarTable()
	xIdx, okX := vt.Index(tecplot.XNames...)
	yIdx, okY := vt.Index(tecplot.YNames...)
	if !okX {
		return math.NaN()
	}

	order := wall.Order(z)
	ls := make(geom.LineString, len(order))
	for i, n := range order {
		ls[i].X = z.Nodes.At(n, xIdx)
		if okY {
			ls[i].Y = z.Nodes.At(n, yIdx)
		}
	}
	return ls.Length() / float64(len(ls))
}
