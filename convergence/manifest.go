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
	"fmt"
	"math"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

// Manifest lists the runs of a grid-dependency study. Each entry either
// states a quantity directly or points at the artifact it can be recovered
// from.
type Manifest struct {
	// TailRows is how many trailing history iterations are averaged for
	// the coefficients. Zero means DefaultTailRows.
	TailRows int

	Runs []ManifestRun `toml:"runs"`
}

// ManifestRun describes one run. H, CL/CD and Runtime may be given
// directly; otherwise MergedFile, HistoryDir and SolverLog name the files
// they are derived from. A zero value means "not given": a zero H or a
// zero CL/CD pair is re-derived from its artifact when one is named, and a
// zero Runtime falls back to the solver log, or to NaN without one. A run
// whose true runtime is zero cannot be stated literally, but no real solver
// run completes in zero seconds.
type ManifestRun struct {
	Name string

	H          float64
	MergedFile string

	CL         float64
	CD         float64
	HistoryDir string

	Runtime   float64
	SolverLog string
}

// LoadManifest reads a TOML run manifest.
func LoadManifest(path string) (*Manifest, error) {
	m := new(Manifest)
	if _, err := toml.DecodeFile(path, m); err != nil {
		return nil, fmt.Errorf("convergence: %s: %v", path, err)
	}
	if len(m.Runs) == 0 {
		return nil, fmt.Errorf("convergence: %s: manifest lists no runs", path)
	}
	return m, nil
}

// Resolve turns the manifest into analyzer input, deriving spacing,
// coefficients and runtime from the referenced artifacts where they are not
// stated directly. Failures to derive a value are logged and leave NaN; the
// analyzer's validity gating handles the rest.
func (m *Manifest) Resolve() []Run {
	n := m.TailRows
	if n <= 0 {
		n = DefaultTailRows
	}

	runs := make([]Run, 0, len(m.Runs))
	for _, mr := range m.Runs {
		r := Run{Name: mr.Name, H: mr.H, CL: mr.CL, CD: mr.CD, Runtime: mr.Runtime}

		if r.H == 0 && mr.MergedFile != "" {
			r.H = MeanSpacing(mr.MergedFile)
			if math.IsNaN(r.H) {
				logrus.Warnf("convergence: run %q: could not estimate spacing from %s", mr.Name, mr.MergedFile)
			}
		}
		if r.CL == 0 && r.CD == 0 && mr.HistoryDir != "" {
			cl, _, cd, _, err := CoefficientStats(mr.HistoryDir, n)
			if err != nil {
				logrus.Warnf("convergence: run %q: %v", mr.Name, err)
			}
			r.CL, r.CD = cl, cd
		}
		if r.Runtime == 0 {
			if mr.SolverLog != "" {
				t, err := ExecutionTime(mr.SolverLog)
				if err != nil {
					logrus.Warnf("convergence: run %q: %v", mr.Name, err)
				}
				r.Runtime = t
			} else {
				r.Runtime = math.NaN()
			}
		}
		runs = append(runs, r)
	}
	return runs
}
