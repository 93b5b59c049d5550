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

// Package icepost post-processes airfoil icing simulations: it merges
// Tecplot ASCII wall zones from FENSAP-family solver output into a single
// ordered surface polyline and performs Richardson-extrapolation-based
// grid-convergence analysis across mesh refinement levels.
package icepost

// Version is the version of this software.
const Version = "0.3.1"
