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
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// SavePlots writes the standard study plots into dir: CL and CD versus h,
// the observed order p versus h, and the extrapolated infinite-grid values
// versus h, all with a log-scaled x axis.
func SavePlots(dir string, runs []Run, res *Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	hs := make([]float64, len(runs))
	cls := make([]float64, len(runs))
	cds := make([]float64, len(runs))
	for i, r := range runs {
		hs[i], cls[i], cds[i] = r.H, r.CL, r.CD
	}
	if err := saveLogX(filepath.Join(dir, "cl_vs_h.png"), "h", "CL",
		series{"CL", hs, cls}); err != nil {
		return err
	}
	if err := saveLogX(filepath.Join(dir, "cd_vs_h.png"), "h", "CD",
		series{"CD", hs, cds}); err != nil {
		return err
	}

	th := make([]float64, len(res.Triplets))
	pcl := make([]float64, len(res.Triplets))
	pcd := make([]float64, len(res.Triplets))
	clx := make([]float64, len(res.Triplets))
	cdx := make([]float64, len(res.Triplets))
	for i := range res.Triplets {
		t := &res.Triplets[i]
		th[i], pcl[i], pcd[i], clx[i], cdx[i] = t.H[0], t.PCL, t.PCD, t.CLExt, t.CDExt
	}
	if err := saveLogX(filepath.Join(dir, "order_of_accuracy_vs_h.png"), "h", "observed order p",
		series{"p(CL)", th, pcl}, series{"p(CD)", th, pcd}); err != nil {
		return err
	}
	return saveLogX(filepath.Join(dir, "extrapolated_solution_vs_h.png"), "h", "extrapolated value",
		series{"CL_inf", th, clx}, series{"CD_inf", th, cdx})
}

type series struct {
	name string
	x, y []float64
}

func saveLogX(path, xlabel, ylabel string, ss ...series) error {
	p := plot.New()
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}

	var args []interface{}
	for _, s := range ss {
		pts := make(plotter.XYs, 0, len(s.x))
		for i := range s.x {
			// Log-scale axes cannot place non-positive x; NaNs carry no
			// information either way.
			if s.x[i] <= 0 || math.IsNaN(s.x[i]) || math.IsNaN(s.y[i]) {
				continue
			}
			pts = append(pts, plotter.XY{X: s.x[i], Y: s.y[i]})
		}
		if len(pts) == 0 {
			continue
		}
		args = append(args, s.name, pts)
	}
	if len(args) == 0 {
		return nil
	}
	if err := plotutil.AddLinePoints(p, args...); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
