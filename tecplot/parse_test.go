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

package tecplot

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseFile(t *testing.T) {
	f, err := ParseFile("testdata/soln.dat")
	if err != nil {
		t.Fatal(err)
	}

	wantVars := []string{"X", "Y", "Z", "Pressure (N/m^2)"}
	if !reflect.DeepEqual(f.Variables, wantVars) {
		t.Errorf("variables: got %v, want %v", f.Variables, wantVars)
	}
	if len(f.Zones) != 2 {
		t.Fatalf("got %d zones, want 2", len(f.Zones))
	}

	z := f.Zones[0]
	if z.Title != "wall body" {
		t.Errorf("zone 0 title: got %q, want %q", z.Title, "wall body")
	}
	if z.Type != FELineSeg {
		t.Errorf("zone 0 type: got %v, want %v", z.Type, FELineSeg)
	}
	if z.N != 4 || z.E != 3 {
		t.Errorf("zone 0 size: got N=%d E=%d, want N=4 E=3", z.N, z.E)
	}
	// "1.0130+05" carries the bare FENSAP exponent.
	if got := z.Nodes.At(0, 3); got != 101300 {
		t.Errorf("zone 0 pressure: got %g, want 101300", got)
	}
	wantConn := []Edge{{0, 1}, {1, 2}, {2, 3}}
	if !reflect.DeepEqual(z.Conn, wantConn) {
		t.Errorf("zone 0 connectivity: got %v, want %v", z.Conn, wantConn)
	}

	z = f.Zones[1]
	if z.Title != "inlet" || z.Type != Point || z.N != 2 {
		t.Errorf("zone 1: got T=%q type=%v N=%d, want T=\"inlet\" type=POINT N=2", z.Title, z.Type, z.N)
	}
	if z.Conn != nil {
		t.Errorf("zone 1 connectivity: got %v, want none", z.Conn)
	}
	if got := z.Nodes.At(1, 0); got != -10 {
		t.Errorf("zone 1 x: got %g, want -10", got)
	}
}

func TestParseMissingVariables(t *testing.T) {
	_, err := Parse(strings.NewReader("ZONE T=\"a\", N=1\n1 2\n"), "mem")
	if err == nil {
		t.Fatal("expected an error for input without a VARIABLES line")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("got %T, want *ParseError", err)
	}
	if !strings.Contains(pe.Msg, "variables") {
		t.Errorf("error message %q does not mention variables", pe.Msg)
	}
}

func TestParseInferredNodeCount(t *testing.T) {
	const in = `VARIABLES = "X" "Y"
ZONE T="slice"
0 0
1 1
2 4
`
	f, err := Parse(strings.NewReader(in), "mem")
	if err != nil {
		t.Fatal(err)
	}
	z := f.Zones[0]
	if z.N != 3 {
		t.Errorf("got N=%d, want 3", z.N)
	}
	if got := z.Nodes.At(2, 1); got != 4 {
		t.Errorf("got node (2,1)=%g, want 4", got)
	}
}

func TestParseTruncatedNodeData(t *testing.T) {
	const in = `VARIABLES = "X" "Y"
ZONE T="short", N=3
0 0
1 1
`
	_, err := Parse(strings.NewReader(in), "mem")
	if err == nil || !strings.Contains(err.Error(), "node data too short") {
		t.Errorf("got %v, want a node-data-too-short error", err)
	}
}

func TestParseQuadBoundary(t *testing.T) {
	const in = `VARIABLES = "X" "Y" "Z"
ZONE T="ice surface", N=6, E=2, ZONETYPE=FEQUADRILATERAL
0 0 0
1 0 0
2 0 0
0 1 0
1 1 0
2 1 0
1 2 5 4
2 3 6 5
`
	f, err := Parse(strings.NewReader(in), "mem")
	if err != nil {
		t.Fatal(err)
	}
	// The edge shared between the two quadrilaterals is interior; the six
	// others form the boundary.
	want := []Edge{{0, 1}, {3, 4}, {0, 3}, {1, 2}, {2, 5}, {4, 5}}
	if got := f.Zones[0].Conn; !reflect.DeepEqual(got, want) {
		t.Errorf("boundary edges: got %v, want %v", got, want)
	}
}

func TestParseWrappedZoneHeader(t *testing.T) {
	const in = `VARIABLES = "X" "Y"
ZONE T="wall",
 N=2, E=1,
 ZONETYPE=FELINESEG
0 0
1 0
1 2
`
	f, err := Parse(strings.NewReader(in), "mem")
	if err != nil {
		t.Fatal(err)
	}
	z := f.Zones[0]
	if z.Title != "wall" || z.N != 2 || z.E != 1 || z.Type != FELineSeg {
		t.Errorf("got T=%q N=%d E=%d type=%v after header wrap", z.Title, z.N, z.E, z.Type)
	}
}

func TestFixExponent(t *testing.T) {
	tests := []struct{ in, want string }{
		{"1.23+05", "1.23e+05"},
		{"-2.5-10", "-2.5e-10"},
		{"1.0000e+05", "1.0000e+05"},
		{"12+3", "12+3"},
		{"1.0", "1.0"},
		{"-10.0", "-10.0"},
	}
	for _, test := range tests {
		if got := fixExponent(test.in); got != test.want {
			t.Errorf("fixExponent(%q): got %q, want %q", test.in, got, test.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Pressure (N/m^2)", "pressure"},
		{"  X ", "x"},
		{"V1-velocity; m/s", "v1velocity"},
		{"Density[kg/m^3]", "densitykgm3"},
	}
	for _, test := range tests {
		if got := Normalize(test.in); got != test.want {
			t.Errorf("Normalize(%q): got %q, want %q", test.in, got, test.want)
		}
	}
}
