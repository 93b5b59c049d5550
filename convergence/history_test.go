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
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const historyText = `# FENSAP convergence history
# 1 iteration
# 2 lift coefficient
# 3 drag coefficient
1 0.90 0.40
2 0.95 0.35
3 1.00D+00 0.30
4 1.05 0.25
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestReadHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "converg.fensap.000001")
	writeFile(t, path, historyText)

	h, err := ReadHistory(path)
	if err != nil {
		t.Fatal(err)
	}
	wantLabels := []string{"iteration", "lift coefficient", "drag coefficient"}
	if !reflect.DeepEqual(h.Labels, wantLabels) {
		t.Errorf("labels: got %v, want %v", h.Labels, wantLabels)
	}
	if len(h.Rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(h.Rows))
	}
	// The Fortran 'D' exponent is accepted.
	if h.Rows[2][1] != 1 {
		t.Errorf("row 2 lift: got %g, want 1", h.Rows[2][1])
	}
}

func TestReadHistoryBadValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "converg.fensap.000001")
	writeFile(t, path, "# 1 iteration\n1 two 3\n")
	if _, err := ReadHistory(path); err == nil {
		t.Error("expected an error for non-numeric history data")
	}
}

func TestCoefficients(t *testing.T) {
	path := filepath.Join(t.TempDir(), "converg.fensap.000001")
	writeFile(t, path, historyText)
	h, err := ReadHistory(path)
	if err != nil {
		t.Fatal(err)
	}

	// Averaged over the last two iterations only.
	cl, cd, err := h.Coefficients(2)
	if err != nil {
		t.Fatal(err)
	}
	if different(cl, 1.025) {
		t.Errorf("CL: got %g, want 1.025", cl)
	}
	if different(cd, 0.275) {
		t.Errorf("CD: got %g, want 0.275", cd)
	}
}

func TestCoefficientStats(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "converg.fensap.000001"), historyText)
	writeFile(t, filepath.Join(dir, "converg.fensap.000002"), `# 1 iteration
# 2 lift coefficient
# 3 drag coefficient
1 1.10 0.20
2 1.15 0.15
`)
	// A file without coefficient columns is skipped, not fatal.
	writeFile(t, filepath.Join(dir, "converg.fensap.000003"), "# 1 iteration\n1\n2\n")

	clMean, clStd, cdMean, cdStd, err := CoefficientStats(dir, 2)
	if err != nil {
		t.Fatal(err)
	}
	// Stage means are (1.025, 0.275) and (1.125, 0.175).
	if different(clMean, 1.075) || different(cdMean, 0.225) {
		t.Errorf("means: got CL=%g CD=%g, want 1.075 and 0.225", clMean, cdMean)
	}
	if different(clStd, 0.05) || different(cdStd, 0.05) {
		t.Errorf("stddevs: got CL=%g CD=%g, want 0.05 and 0.05", clStd, cdStd)
	}
}

func TestCoefficientStatsEmptyDir(t *testing.T) {
	if _, _, _, _, err := CoefficientStats(t.TempDir(), 2); err == nil {
		t.Error("expected an error for a directory without histories")
	}
}
