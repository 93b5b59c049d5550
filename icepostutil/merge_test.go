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

	"github.com/icingtools/icepost/tecplot"
)

const baseDat = `VARIABLES = "X" "Y" "Z" "Pressure (N/m^2)" "Density (kg/m^3)" "V1-velocity (m/s)"
ZONE T="inlet", N=2
-10 0 0 101325 1.2 50
-10 1 0 101325 1.2 50
ZONE T="wall upper", N=3
1 0 0 102825 1.3 10
0.5 -0.2 0 101325 1.3 20
0 0 0 100575 1.3 30
`

const dropletDat = `VARIABLES = "X" "Y" "Z" "LWC (kg/m^3)"
ZONE T="wall upper", N=3
1 0 0 0.001
0.5 -0.2 0 0.002
0 0 0 0.003
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestMergeFiles(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "soln.dat")
	droplet := filepath.Join(dir, "droplet.dat")
	out := filepath.Join(dir, "merged.dat")
	writeFile(t, base, baseDat)
	writeFile(t, droplet, dropletDat)

	err := MergeFiles(base, out, []string{droplet}, nil,
		map[string]string{"pratio": "pressure/101325"}, true, 0, 1e-6)
	if err != nil {
		t.Fatal(err)
	}

	f, err := tecplot.ParseFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Zones) != 1 {
		t.Fatalf("got %d zones, want 1", len(f.Zones))
	}
	z := f.Zones[0]
	if z.N != 3 || z.Type != tecplot.FELineSeg {
		t.Errorf("merged zone: got N=%d type=%v", z.N, z.Type)
	}
	// Base columns, the droplet LWC, the derived ratio, the arc-length
	// parameter, then Cp last.
	want := []string{
		"X", "Y", "Z", "Pressure (N/m^2)", "Density (kg/m^3)", "V1-velocity (m/s)",
		"droplet:LWC (kg/m^3)", "pratio", "s", "Cp",
	}
	if len(f.Variables) != len(want) {
		t.Fatalf("variables: got %v, want %v", f.Variables, want)
	}
	for i := range want {
		if f.Variables[i] != want[i] {
			t.Errorf("variable %d: got %q, want %q", i, f.Variables[i], want[i])
		}
	}
	// Cp at the stagnation-side node: (102825-101325)/1500.
	if got := z.Nodes.At(0, len(want)-1); got != 1 {
		t.Errorf("Cp[0]: got %g, want 1", got)
	}
}

func TestMergeFilesSkipsBrokenAux(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "soln.dat")
	broken := filepath.Join(dir, "broken.dat")
	out := filepath.Join(dir, "merged.dat")
	writeFile(t, base, baseDat)
	writeFile(t, broken, "not a tecplot file\n")

	if err := MergeFiles(base, out, []string{broken}, nil, nil, false, 0, 1e-6); err != nil {
		t.Fatalf("a broken auxiliary file must not fail the merge: %v", err)
	}
	f, err := tecplot.ParseFile(out)
	if err != nil {
		t.Fatal(err)
	}
	// Only the Cp column is added.
	if n := len(f.Variables); n != 7 {
		t.Errorf("got %d variables, want 7", n)
	}
}

func TestMergeFilesMissingBase(t *testing.T) {
	dir := t.TempDir()
	err := MergeFiles(filepath.Join(dir, "missing.dat"), filepath.Join(dir, "out.dat"),
		nil, nil, nil, false, 0, 0)
	if err == nil {
		t.Error("expected an error for a missing base file")
	}
}
