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
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/icingtools/icepost/convergence"
)

// GCIStudy runs the grid-convergence analysis described by the manifest
// and writes report tables and, optionally, plots into outDir.
func GCIStudy(manifest, outDir string, plots bool) error {
	man, err := convergence.LoadManifest(manifest)
	if err != nil {
		return fmt.Errorf("icepost: reading manifest: %w", err)
	}
	runs := man.Resolve()
	res, err := convergence.Analyze(runs)
	if err != nil {
		return fmt.Errorf("icepost: analyzing runs: %w", err)
	}
	logrus.Info(convergence.Summary(res))

	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		return fmt.Errorf("icepost: creating output directory: %v", err)
	}
	csvPath := filepath.Join(outDir, "gci_report.csv")
	f, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("icepost: creating report: %v", err)
	}
	if err := convergence.WriteCSV(f, runs, res); err != nil {
		f.Close()
		return fmt.Errorf("icepost: writing report: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	logrus.Infof("wrote %s", csvPath)

	xlsxPath := filepath.Join(outDir, "grid_convergence_report.xlsx")
	if err := convergence.WriteXLSX(xlsxPath, runs, res); err != nil {
		return fmt.Errorf("icepost: writing workbook: %w", err)
	}
	logrus.Infof("wrote %s", xlsxPath)

	if plots {
		if err := convergence.SavePlots(outDir, runs, res); err != nil {
			return fmt.Errorf("icepost: writing plots: %w", err)
		}
		logrus.Infof("wrote plots to %s", outDir)
	}
	return nil
}

// HistorySummary prints the tail-averaged lift and drag coefficients of
// every convergence history file in dir.
func HistorySummary(cmd *cobra.Command, dir string, tailRows int) error {
	clMean, clStd, cdMean, cdStd, err := convergence.CoefficientStats(dir, tailRows)
	if err != nil {
		return fmt.Errorf("icepost: reading histories: %w", err)
	}
	cmd.Printf("CL = %.6g (std %.3g)\n", clMean, clStd)
	cmd.Printf("CD = %.6g (std %.3g)\n", cdMean, cdStd)
	return nil
}
