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

package wall

import (
	"math"
	"testing"
)

func TestInferFreestream(t *testing.T) {
	fs := InferFreestream(parseString(t, baseDat))
	if fs.P != 101325 || fs.Rho != 1.2 || fs.V != 50 || fs.Q != 1500 {
		t.Errorf("got %+v, want p=101325 rho=1.2 V=50 q=1500", fs)
	}
}

func TestInferFreestreamIgnoresHeaderMentions(t *testing.T) {
	// A zone whose header merely mentions "inlet" in auxiliary data is not
	// an inlet; only the zone title identifies one.
	f := parseString(t, `VARIABLES = "X" "Y" "Z" "Pressure (N/m^2)" "Density (kg/m^3)" "V1-velocity (m/s)"
ZONE T="wall body", N=2, AUXDATA Common.Note="near inlet"
-10 0 0 101325 1.2 50
-10 1 0 101325 1.2 50
`)
	fs := InferFreestream(f)
	if !math.IsNaN(fs.P) || !math.IsNaN(fs.Q) {
		t.Errorf("got %+v, want all NaN without an inlet-titled zone", fs)
	}
}
