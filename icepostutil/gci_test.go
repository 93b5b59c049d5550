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

package icepostutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGCIStudy(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "runs.toml")
	writeFile(t, manifest, `[[runs]]
Name = "fine"
H = 1.0
CL = 1.0
CD = 0.30
Runtime = 10.0

[[runs]]
Name = "medium"
H = 2.0
CL = 0.95
CD = 0.28
Runtime = 8.0

[[runs]]
Name = "coarse"
H = 4.0
CL = 0.88
CD = 0.25
Runtime = 6.0
`)
	outDir := filepath.Join(dir, "results")
	if err := GCIStudy(manifest, outDir, false); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"gci_report.csv", "grid_convergence_report.xlsx"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing report %s: %v", name, err)
		}
	}
}

func TestGCIStudyMissingManifest(t *testing.T) {
	dir := t.TempDir()
	if err := GCIStudy(filepath.Join(dir, "none.toml"), dir, false); err == nil {
		t.Error("expected an error for a missing manifest")
	}
}
