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

// Package tecplot reads and writes the Tecplot ASCII format exported by the
// FENSAP family of solvers (FENSAP, DROP3D, ICE3D). The exports are not
// strictly conforming: headers wrap across lines, key order varies, and
// scientific notation sometimes omits the 'e' ("1.23+05"). The parser here
// accepts all of those quirks.
package tecplot

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ZoneType identifies the element layout of a zone.
type ZoneType int

const (
	// Point is ordered point data with no element connectivity.
	Point ZoneType = iota
	// FELineSeg is a finite-element zone of 2-node line segments.
	FELineSeg
	// FETriangle is a finite-element surface zone of 3-node triangles.
	FETriangle
	// FEQuadrilateral is a finite-element surface zone of 4-node
	// quadrilaterals.
	FEQuadrilateral
	// UnknownZoneType is any ZONETYPE value not listed above.
	UnknownZoneType
)

// ParseZoneType interprets a ZONETYPE header value. An empty value means
// ordered point data.
func ParseZoneType(s string) ZoneType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "POINT", "ORDERED":
		return Point
	case "FELINESEG":
		return FELineSeg
	case "FETRIANGLE":
		return FETriangle
	case "FEQUADRILATERAL":
		return FEQuadrilateral
	default:
		return UnknownZoneType
	}
}

func (t ZoneType) String() string {
	switch t {
	case Point:
		return "POINT"
	case FELineSeg:
		return "FELINESEG"
	case FETriangle:
		return "FETRIANGLE"
	case FEQuadrilateral:
		return "FEQUADRILATERAL"
	default:
		return "UNKNOWN"
	}
}

// nodesPerElement returns how many node indices each element of this zone
// type carries, or zero for types without elements.
func (t ZoneType) nodesPerElement() int {
	switch t {
	case FELineSeg:
		return 2
	case FETriangle:
		return 3
	case FEQuadrilateral:
		return 4
	default:
		return 0
	}
}

// surface reports whether t is a 2D surface element type whose faces must be
// reduced to boundary edges.
func (t ZoneType) surface() bool {
	return t == FETriangle || t == FEQuadrilateral
}

// Edge is an undirected connection between two zero-based node indices.
type Edge struct {
	I, J int
}

// Zone is one zone of a Tecplot ASCII file: header metadata, an N×V node
// matrix (V = number of file variables), and, for line and surface zone
// types, the boundary edges derived from the raw element connectivity.
type Zone struct {
	Title  string
	Type   ZoneType
	N, E   int
	Header string // assembled raw header text, for fallback heuristics

	// Nodes has one row per node and one column per file variable.
	Nodes *mat.Dense

	// Conn holds the undirected boundary edges of the zone, or nil when
	// the zone carries no usable connectivity. For surface zone types
	// only edges referenced by exactly one element are kept.
	Conn []Edge
}

// File is a parsed Tecplot ASCII file.
type File struct {
	Path      string
	Variables []string
	Zones     []*Zone

	vars VarTable
}

// VarTable returns the normalized-name lookup table for the file variables.
func (f *File) VarTable() VarTable {
	if f.vars == nil {
		f.vars = NewVarTable(f.Variables)
	}
	return f.vars
}

// ParseError describes a structural problem in a Tecplot file, such as a
// missing VARIABLES line or truncated node data. Lookup misses (absent
// columns or zone titles) are not ParseErrors; those degrade to NaN values
// downstream.
type ParseError struct {
	Path string
	Line int // 1-based line number, or 0 when not attributable
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("tecplot: %s:%d: %s", e.Path, e.Line, e.Msg)
	}
	return fmt.Sprintf("tecplot: %s: %s", e.Path, e.Msg)
}
