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
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-12

func different(a, b float64) bool {
	return math.Abs(a-b) > tolerance
}

// TestAnalyzeRichardsonExact feeds data following φ(h) = φ0 + C·h² exactly,
// for which the analysis must recover the order, the infinite-grid value and
// the textbook GCI.
func TestAnalyzeRichardsonExact(t *testing.T) {
	phi := func(h float64) float64 { return 1 + 0.1*h*h }
	runs := []Run{
		{Name: "fine", H: 1, CL: phi(1), CD: phi(1), Runtime: 10},
		{Name: "medium", H: 2, CL: phi(2), CD: phi(2), Runtime: 4},
		{Name: "coarse", H: 4, CL: phi(4), CD: phi(4), Runtime: 2},
	}
	res, err := Analyze(runs)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Triplets) != 1 {
		t.Fatalf("got %d triplets, want 1", len(res.Triplets))
	}
	tr := res.Triplets[0]

	if different(tr.PCL, 2) {
		t.Errorf("observed order: got %g, want 2", tr.PCL)
	}
	if different(tr.CLExt, 1) {
		t.Errorf("extrapolated value: got %g, want 1", tr.CLExt)
	}
	// GCI = 1.25·|1.4-1.1| / (|1.1|·(2²-1)) · 100.
	wantGCI := 1.25 * 0.3 / (1.1 * 3) * 100
	if different(tr.GCICL, wantGCI) {
		t.Errorf("GCI: got %g, want %g", tr.GCICL, wantGCI)
	}
	if !tr.ValidCL || !tr.ValidCD {
		t.Errorf("validity: got CL=%v CD=%v, want both true", tr.ValidCL, tr.ValidCD)
	}
	if different(tr.ECL, wantGCI*10) {
		t.Errorf("efficiency: got %g, want %g", tr.ECL, wantGCI*10)
	}
	if res.Fallback {
		t.Error("unexpected fallback")
	}
	if res.BestRun == nil || res.BestRun.Name != "fine" {
		t.Errorf("best run: got %+v, want the finest grid", res.BestRun)
	}
}

func TestAnalyzeUnsortedInput(t *testing.T) {
	runs := []Run{
		{Name: "coarse", H: 4, CL: 0.88, CD: 0.25, Runtime: 6},
		{Name: "fine", H: 1, CL: 1.0, CD: 0.30, Runtime: 10},
		{Name: "medium", H: 2, CL: 0.95, CD: 0.28, Runtime: 8},
	}
	res, err := Analyze(runs)
	if err != nil {
		t.Fatal(err)
	}
	tr := res.Best
	if tr.H != [3]float64{1, 2, 4} {
		t.Fatalf("triplet spacings: got %v, want [1 2 4]", tr.H)
	}
	// p = ln(0.07/0.05)/ln 2 for lift.
	wantP := math.Log(0.07/0.05) / math.Ln2
	if different(tr.PCL, wantP) {
		t.Errorf("observed order: got %g, want %g", tr.PCL, wantP)
	}
	if !tr.ValidCL {
		t.Error("triplet should be valid for lift")
	}
	if res.BestRun.Name != "fine" {
		t.Errorf("best run: got %q, want fine", res.BestRun.Name)
	}
}

func TestAnalyzeInsufficientRuns(t *testing.T) {
	_, err := Analyze([]Run{{H: 1}, {H: 2}})
	if !errors.Is(err, ErrInsufficientRuns) {
		t.Errorf("got %v, want ErrInsufficientRuns", err)
	}
}

func TestAnalyzeFallback(t *testing.T) {
	// Identical lift on every grid makes the order undefined everywhere.
	runs := []Run{
		{Name: "a", H: 1, CL: 1, CD: 0.3, Runtime: 10},
		{Name: "b", H: 2, CL: 1, CD: 0.3, Runtime: 8},
		{Name: "c", H: 4, CL: 1, CD: 0.3, Runtime: 6},
	}
	res, err := Analyze(runs)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Fallback {
		t.Error("expected the fallback to the first triplet")
	}
	if res.Best != &res.Triplets[0] {
		t.Error("fallback best is not the first triplet")
	}
	if res.Best.ValidCL {
		t.Error("fallback triplet must not be marked valid for lift")
	}
	if !math.IsInf(res.Best.ECL, 1) {
		t.Errorf("invalid triplet efficiency: got %g, want +Inf", res.Best.ECL)
	}
}

func TestAnalyzeSelectsByLiftEfficiency(t *testing.T) {
	phi := func(h float64) float64 { return 1 + 0.1*h*h }
	// Four grids make two triplets. The coarser triplet has the same GCI
	// structure but a much cheaper finest run, so it wins.
	runs := []Run{
		{Name: "g1", H: 1, CL: phi(1), CD: phi(1), Runtime: 100},
		{Name: "g2", H: 2, CL: phi(2), CD: phi(2), Runtime: 10},
		{Name: "g3", H: 4, CL: phi(4), CD: phi(4), Runtime: 5},
		{Name: "g4", H: 8, CL: phi(8), CD: phi(8), Runtime: 2},
	}
	res, err := Analyze(runs)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Triplets) != 2 {
		t.Fatalf("got %d triplets, want 2", len(res.Triplets))
	}
	if res.BestRun.Name != "g2" {
		t.Errorf("best run: got %q, want g2", res.BestRun.Name)
	}
}

// TestAnalyzeOscillatingInvalid feeds lift values that oscillate with
// refinement, giving a finite negative observed order. The triplet must be
// gated out of the selection even though its GCI magnitude is the smallest.
func TestAnalyzeOscillatingInvalid(t *testing.T) {
	runs := []Run{
		{Name: "g1", H: 1, CL: 1.0, CD: 0.31, Runtime: 10},
		{Name: "g2", H: 2, CL: 0.99, CD: 0.34, Runtime: 10},
		{Name: "g3", H: 4, CL: 0.995, CD: 0.46, Runtime: 10},
		{Name: "g4", H: 8, CL: 1.001, CD: 0.94, Runtime: 10},
	}
	res, err := Analyze(runs)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Triplets) != 2 {
		t.Fatalf("got %d triplets, want 2", len(res.Triplets))
	}

	// p = ln(0.005/0.01)/ln 2 = -1: finite but negative.
	osc := res.Triplets[0]
	if different(osc.PCL, -1) {
		t.Errorf("oscillating order: got %g, want -1", osc.PCL)
	}
	if osc.ValidCL {
		t.Error("a negative observed order must not be valid for lift")
	}
	if !math.IsInf(osc.ECL, 1) {
		t.Errorf("oscillating efficiency: got %g, want +Inf", osc.ECL)
	}

	// The monotone triplet wins although |GCI| = 2.5 of the oscillating one
	// is below its GCI of about 3.16.
	mono := &res.Triplets[1]
	if !mono.ValidCL {
		t.Fatal("monotone triplet should be valid for lift")
	}
	if math.Abs(osc.GCICL) >= mono.GCICL {
		t.Fatalf("fixture lost its point: |GCI| %g is not below %g",
			math.Abs(osc.GCICL), mono.GCICL)
	}
	if res.Best != mono {
		t.Error("selection picked the oscillating triplet")
	}
	if res.Fallback {
		t.Error("unexpected fallback with a valid triplet present")
	}
	if res.BestRun == nil || res.BestRun.Name != "g2" {
		t.Errorf("best run: got %+v, want g2", res.BestRun)
	}
}

func TestObservedOrderUndefined(t *testing.T) {
	if p := observedOrder(1, 1, 2, 2); !math.IsNaN(p) {
		t.Errorf("zero denominator: got %g, want NaN", p)
	}
	if p := observedOrder(1, 2, 4, 0); !math.IsNaN(p) {
		t.Errorf("non-positive ratio: got %g, want NaN", p)
	}
}
