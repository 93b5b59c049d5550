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
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// ExecutionTime extracts the solver wall-clock time in seconds from a
// FENSAP solver log. The log reports either
//
//	total simulation = 01:23:45.67
//	Wall time for calculations:      123.456 s.
//
// near the end of the file; the last occurrence wins. NaN is returned with
// an error when no timing line is present.
func ExecutionTime(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return math.NaN(), err
	}
	defer f.Close()

	found := math.NaN()
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if i := strings.Index(line, "total simulation ="); i >= 0 {
			if v, err := parseClock(line[i+len("total simulation ="):]); err == nil {
				found = v
			}
		} else if i := strings.Index(line, "Wall time for calculations:"); i >= 0 {
			if v, err := parseSeconds(line[i+len("Wall time for calculations:"):]); err == nil {
				found = v
			}
		}
	}
	if err := sc.Err(); err != nil {
		return math.NaN(), err
	}
	if math.IsNaN(found) {
		return found, fmt.Errorf("convergence: %s: no solver timing line found", path)
	}
	return found, nil
}

// parseClock converts "01:23:45.67" to seconds.
func parseClock(s string) (float64, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty clock value")
	}
	parts := strings.Split(strings.Trim(fields[0], "|"), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("bad clock value %q", fields[0])
	}
	total := 0.0
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, err
		}
		total = total*60 + v
	}
	return total, nil
}

// parseSeconds converts "123.456 s." to seconds.
func parseSeconds(s string) (float64, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty time value")
	}
	return strconv.ParseFloat(fields[0], 64)
}
