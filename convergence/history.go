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
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/GaryBoone/GoStats/stats"
)

// DefaultTailRows is how many trailing iterations of a convergence history
// are averaged for the reported coefficients.
const DefaultTailRows = 15

// History is a parsed FENSAP-style convergence history file: '#'-prefixed
// header lines of the form "# <index> <label>" followed by whitespace-
// separated numeric rows. Fortran 'D' exponents are accepted.
type History struct {
	Labels []string
	Rows   [][]float64
}

// ReadHistory parses the convergence history at path.
func ReadHistory(path string) (*History, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h := &History{}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	inHeader := true
	for sc.Scan() {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			if inHeader {
				if label, ok := headerLabel(trimmed); ok {
					h.Labels = append(h.Labels, label)
				}
			}
			continue
		}
		inHeader = false
		fields := strings.Fields(trimmed)
		row := make([]float64, 0, len(fields))
		for _, fld := range fields {
			fld = strings.Replace(strings.Replace(fld, "D", "E", 1), "d", "e", 1)
			v, err := strconv.ParseFloat(fld, 64)
			if err != nil {
				return nil, fmt.Errorf("convergence: %s: bad value %q in history", path, fld)
			}
			row = append(row, v)
		}
		h.Rows = append(h.Rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("convergence: %s: %v", path, err)
	}
	return h, nil
}

// headerLabel extracts the label from a "# <index> <label>" header line.
func headerLabel(line string) (string, bool) {
	s := strings.TrimSpace(strings.TrimPrefix(line, "#"))
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return "", false
	}
	if _, err := strconv.Atoi(s[:i]); err != nil {
		return "", false
	}
	return strings.TrimSpace(s[i+1:]), true
}

// Column returns the zero-based index of the column whose label equals
// name, compared case-insensitively.
func (h *History) Column(name string) (int, bool) {
	for i, l := range h.Labels {
		if strings.EqualFold(strings.TrimSpace(l), name) {
			return i, true
		}
	}
	return 0, false
}

// TailStats returns the column-wise mean and population standard deviation
// of the last n rows (all rows when n <= 0). Short rows contribute to the
// columns they have.
func (h *History) TailStats(n int) (mean, std []float64) {
	rows := h.Rows
	if n > 0 && len(rows) > n {
		rows = rows[len(rows)-n:]
	}
	ncol := 0
	for _, r := range rows {
		if len(r) > ncol {
			ncol = len(r)
		}
	}
	mean = make([]float64, ncol)
	std = make([]float64, ncol)
	for j := 0; j < ncol; j++ {
		var col []float64
		for _, r := range rows {
			if j < len(r) {
				col = append(col, r[j])
			}
		}
		if len(col) == 0 {
			mean[j], std[j] = math.NaN(), math.NaN()
			continue
		}
		mean[j] = stats.StatsMean(col)
		if len(col) > 1 {
			std[j] = stats.StatsPopulationStandardDeviation(col)
		}
	}
	return mean, std
}

// Coefficients returns the mean lift and drag coefficients over the last n
// iterations, located by the standard FENSAP column labels.
func (h *History) Coefficients(n int) (cl, cd float64, err error) {
	clIdx, okCL := h.Column("lift coefficient")
	cdIdx, okCD := h.Column("drag coefficient")
	if !okCL || !okCD {
		return math.NaN(), math.NaN(), fmt.Errorf("convergence: history has no lift/drag coefficient columns")
	}
	mean, _ := h.TailStats(n)
	if clIdx >= len(mean) || cdIdx >= len(mean) {
		return math.NaN(), math.NaN(), fmt.Errorf("convergence: history rows shorter than header")
	}
	return mean[clIdx], mean[cdIdx], nil
}

// CoefficientStats averages lift and drag over every "converg.fensap.*"
// history in dir (one per multishot stage), returning the grand mean and
// the population standard deviation across stages. Files without the
// coefficient columns are skipped.
func CoefficientStats(dir string, n int) (clMean, clStd, cdMean, cdStd float64, err error) {
	nan := math.NaN()
	files, err := filepath.Glob(filepath.Join(dir, "converg.fensap.*"))
	if err != nil {
		return nan, nan, nan, nan, err
	}
	sort.Strings(files)

	var cls, cds []float64
	for _, file := range files {
		h, err := ReadHistory(file)
		if err != nil {
			return nan, nan, nan, nan, err
		}
		cl, cd, err := h.Coefficients(n)
		if err != nil {
			continue
		}
		cls = append(cls, cl)
		cds = append(cds, cd)
	}
	if len(cls) == 0 {
		return nan, nan, nan, nan, fmt.Errorf("convergence: no usable convergence histories in %s", dir)
	}
	clMean, cdMean = stats.StatsMean(cls), stats.StatsMean(cds)
	if len(cls) > 1 {
		clStd = stats.StatsPopulationStandardDeviation(cls)
		cdStd = stats.StatsPopulationStandardDeviation(cds)
	}
	return clMean, clStd, cdMean, cdStd, nil
}
