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
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/icingtools/icepost/tecplot"
	"github.com/icingtools/icepost/wall"
)

// MergeFiles merges the wall zones of the base solution file into one
// ordered polyline, augments it with columns from the aux files, adds
// the derived, arc-length and pressure-coefficient columns, and writes
// the result to out. A prefix may be given for each aux file; files
// without one are prefixed with their base name.
func MergeFiles(base, out string, aux, prefixes []string, derive map[string]string, arc bool, zThreshold, tol float64) error {
	baseFile, err := tecplot.ParseFile(base)
	if err != nil {
		return fmt.Errorf("icepost: reading base solution: %w", err)
	}
	m, err := wall.Merge(baseFile, zThreshold, tol)
	if err != nil {
		return fmt.Errorf("icepost: merging wall zones: %w", err)
	}
	logrus.Infof("merged %d wall nodes from %s", len(m.Origins), base)

	for i, path := range aux {
		auxFile, err := tecplot.ParseFile(path)
		if err != nil {
			// A broken auxiliary file costs its columns, not the run.
			logrus.Warnf("skipping auxiliary file %s: %v", path, err)
			continue
		}
		prefix := filePrefix(path)
		if i < len(prefixes) && prefixes[i] != "" {
			prefix = prefixes[i]
		}
		if err := m.Augment(auxFile, prefix, zThreshold, tol); err != nil {
			logrus.Warnf("skipping auxiliary file %s: %v", path, err)
			continue
		}
		logrus.Infof("appended columns from %s as %s:*", path, prefix)
	}

	if len(derive) > 0 {
		if err := m.Derive(derive); err != nil {
			return fmt.Errorf("icepost: deriving columns: %w", err)
		}
	}

	if arc {
		m.AppendArc()
	}

	fs := m.AppendCp(baseFile)
	if math.IsNaN(fs.Q) || fs.Q == 0 {
		logrus.Warn("no usable freestream state; Cp column is NaN")
	} else {
		logrus.Infof("freestream p=%g Pa, rho=%g kg/m3, V=%g m/s, q=%g Pa",
			fs.P, fs.Rho, fs.V, fs.Q)
	}

	if err := tecplot.WriteFile(out, "MergedWall", m.Variables, m.Nodes, m.Conn); err != nil {
		return fmt.Errorf("icepost: writing merged file: %w", err)
	}
	logrus.Infof("wrote %s", out)
	return nil
}

// filePrefix is the file name without directory or extensions, lowercased.
func filePrefix(path string) string {
	name := filepath.Base(path)
	if i := strings.Index(name, "."); i > 0 {
		name = name[:i]
	}
	return strings.ToLower(name)
}
