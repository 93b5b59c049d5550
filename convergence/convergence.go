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

// Package convergence performs grid-convergence (GCI) analysis over a set
// of solver runs at different mesh refinement levels: observed order of
// accuracy, Richardson extrapolation to the infinite grid, the Grid
// Convergence Index, and an efficiency-weighted best-grid recommendation.
package convergence

import (
	"errors"
	"math"
	"sort"

	"github.com/sirupsen/logrus"
)

// SafetyFactor is the GCI safety factor Fs for three-grid studies.
const SafetyFactor = 1.25

// Run is one completed solver run on one grid.
type Run struct {
	Name    string
	H       float64 // representative mesh spacing; finest grid has the smallest
	CL, CD  float64 // lift and drag coefficients
	Runtime float64 // wall-clock solver time in seconds; NaN when unknown
}

// Triplet is the Richardson analysis of three consecutive refinement
// levels h1 < h2 < h3. Quantities that cannot be computed (zero
// denominators, log of a non-positive ratio, overflow) are NaN; validity is
// tracked per coefficient, so a triplet can be usable for lift and not for
// drag. The efficiency index E is GCI times the finest run's solver time,
// or +Inf when the triplet is invalid or the runtime unknown, so it can
// never win the selection.
type Triplet struct {
	H  [3]float64
	CL [3]float64
	CD [3]float64

	PCL, PCD     float64 // observed order of accuracy
	CLExt, CDExt float64 // Richardson-extrapolated infinite-grid values
	GCICL, GCICD float64 // grid convergence index [%]
	Runtime      float64 // solver time of the finest run in the triplet
	ECL, ECD     float64 // efficiency index

	ValidCL, ValidCD bool
}

// ErrInsufficientRuns is returned when fewer than three runs are supplied.
var ErrInsufficientRuns = errors.New("convergence: at least three grids are required for GCI analysis")

// Result is the outcome of a grid-convergence analysis.
type Result struct {
	Triplets []Triplet
	Best     *Triplet // points into Triplets
	BestRun  *Run     // the run at the winning triplet's finest spacing

	// Fallback is set when no triplet was valid for lift and the first
	// triplet was reported instead.
	Fallback bool
}

// Analyze runs the sliding three-grid Richardson analysis over runs, which
// are sorted by spacing internally. The recommended triplet minimizes the
// lift efficiency index; drag results are computed and reported but do not
// drive the selection.
func Analyze(runs []Run) (*Result, error) {
	if len(runs) < 3 {
		logrus.Errorf("convergence: got %d runs; at least three grids are required", len(runs))
		return nil, ErrInsufficientRuns
	}

	sorted := append([]Run(nil), runs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].H < sorted[j].H })

	res := &Result{}
	bestIdx := -1
	bestE := math.Inf(1)
	for i := 0; i+2 < len(sorted); i++ {
		t := analyzeTriplet(sorted[i], sorted[i+1], sorted[i+2])
		res.Triplets = append(res.Triplets, t)
		if t.ValidCL && t.ECL < bestE {
			bestE = t.ECL
			bestIdx = i
		}
	}

	if bestIdx < 0 {
		bestIdx = 0
		res.Fallback = true
		logrus.Warn("convergence: no triplet valid for lift; falling back to the finest triplet")
	}
	res.Best = &res.Triplets[bestIdx]

	for i := range sorted {
		if sorted[i].H == res.Best.H[0] {
			res.BestRun = &sorted[i]
			break
		}
	}
	return res, nil
}

func analyzeTriplet(fine, mid, coarse Run) Triplet {
	t := Triplet{
		H:       [3]float64{fine.H, mid.H, coarse.H},
		CL:      [3]float64{fine.CL, mid.CL, coarse.CL},
		CD:      [3]float64{fine.CD, mid.CD, coarse.CD},
		Runtime: fine.Runtime,
	}
	r := mid.H / fine.H

	t.PCL = observedOrder(fine.CL, mid.CL, coarse.CL, r)
	t.PCD = observedOrder(fine.CD, mid.CD, coarse.CD, r)
	t.CLExt = extrapolate(fine.CL, mid.CL, r, t.PCL)
	t.CDExt = extrapolate(fine.CD, mid.CD, r, t.PCD)
	t.GCICL = gci(fine.CL, mid.CL, r, t.PCL)
	t.GCICD = gci(fine.CD, mid.CD, r, t.PCD)

	t.ValidCL = valid(t.PCL, t.GCICL)
	t.ValidCD = valid(t.PCD, t.GCICD)
	t.ECL = efficiency(t.GCICL, t.Runtime, t.ValidCL)
	t.ECD = efficiency(t.GCICD, t.Runtime, t.ValidCD)
	return t
}

// observedOrder is p = ln(|φ3-φ2|/|φ2-φ1|) / ln(r), NaN when undefined.
func observedOrder(phi1, phi2, phi3, r float64) float64 {
	num := math.Abs(phi3 - phi2)
	den := math.Abs(phi2 - phi1)
	if den == 0 || r <= 0 {
		return math.NaN()
	}
	p := math.Log(num/den) / math.Log(r)
	if !finite(p) {
		return math.NaN()
	}
	return p
}

// extrapolate is the Richardson infinite-grid estimate
// φ_ext = φ1 + (φ1-φ2)/(r^p - 1), NaN when undefined.
func extrapolate(phi1, phi2, r, p float64) float64 {
	den := math.Pow(r, p) - 1
	if den == 0 || !finite(den) {
		return math.NaN()
	}
	v := phi1 + (phi1-phi2)/den
	if !finite(v) {
		return math.NaN()
	}
	return v
}

// gci is the Grid Convergence Index between the two finest grids,
// Fs·|φ2-φ1| / (|φ1|·(r^p-1)) · 100, NaN when undefined.
func gci(phi1, phi2, r, p float64) float64 {
	den := math.Abs(phi1) * (math.Pow(r, p) - 1)
	if den == 0 || !finite(den) {
		return math.NaN()
	}
	v := SafetyFactor * math.Abs(phi2-phi1) / den * 100
	if !finite(v) {
		return math.NaN()
	}
	return v
}

func valid(p, gci float64) bool {
	return finite(p) && p >= 0 && finite(gci) && gci >= 0
}

func efficiency(gci, runtime float64, valid bool) float64 {
	if !valid || !finite(runtime) {
		return math.Inf(1)
	}
	return gci * runtime
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
