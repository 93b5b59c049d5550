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
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/tealeg/xlsx"
)

var tripletHeader = []string{
	"h1", "h2", "h3",
	"CL1", "CL2", "CL3",
	"CD1", "CD2", "CD3",
	"p_CL", "p_CD", "CL_ext", "CD_ext",
	"GCI_CL%", "GCI_CD%", "runtime_s", "E_CL", "E_CD",
	"valid_CL", "valid_CD",
}

func tripletRow(t *Triplet) []float64 {
	return []float64{
		t.H[0], t.H[1], t.H[2],
		t.CL[0], t.CL[1], t.CL[2],
		t.CD[0], t.CD[1], t.CD[2],
		t.PCL, t.PCD, t.CLExt, t.CDExt,
		t.GCICL, t.GCICD, t.Runtime, t.ECL, t.ECD,
	}
}

// WriteCSV writes the run table followed by the sliding-triplet table.
func WriteCSV(w io.Writer, runs []Run, res *Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"name", "h", "CL", "CD", "runtime_s"}); err != nil {
		return err
	}
	for _, r := range runs {
		rec := []string{
			r.Name,
			formatFloat(r.H), formatFloat(r.CL), formatFloat(r.CD), formatFloat(r.Runtime),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	if err := cw.Write(nil); err != nil {
		return err
	}
	if err := cw.Write(tripletHeader); err != nil {
		return err
	}
	for i := range res.Triplets {
		t := &res.Triplets[i]
		rec := make([]string, 0, len(tripletHeader))
		for _, v := range tripletRow(t) {
			rec = append(rec, formatFloat(v))
		}
		rec = append(rec, strconv.FormatBool(t.ValidCL), strconv.FormatBool(t.ValidCD))
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the study report as a spreadsheet: a run sheet, the
// triplet table, and a summary sheet naming the recommended grid.
func WriteXLSX(path string, runs []Run, res *Result) error {
	file := xlsx.NewFile()

	rs, err := file.AddSheet("Runs")
	if err != nil {
		return err
	}
	hdr := rs.AddRow()
	for _, h := range []string{"name", "h", "CL", "CD", "runtime_s"} {
		hdr.AddCell().SetString(h)
	}
	for _, r := range runs {
		row := rs.AddRow()
		row.AddCell().SetString(r.Name)
		row.AddCell().SetFloat(r.H)
		row.AddCell().SetFloat(r.CL)
		row.AddCell().SetFloat(r.CD)
		row.AddCell().SetFloat(r.Runtime)
	}

	ts, err := file.AddSheet("Triplets")
	if err != nil {
		return err
	}
	hdr = ts.AddRow()
	for _, h := range tripletHeader {
		hdr.AddCell().SetString(h)
	}
	for i := range res.Triplets {
		t := &res.Triplets[i]
		row := ts.AddRow()
		for _, v := range tripletRow(t) {
			row.AddCell().SetFloat(v)
		}
		row.AddCell().SetBool(t.ValidCL)
		row.AddCell().SetBool(t.ValidCD)
	}

	ss, err := file.AddSheet("Summary")
	if err != nil {
		return err
	}
	add := func(k, v string) {
		row := ss.AddRow()
		row.AddCell().SetString(k)
		row.AddCell().SetString(v)
	}
	b := res.Best
	add("recommended h", formatFloat(b.H[0]))
	if res.BestRun != nil {
		add("recommended run", res.BestRun.Name)
	}
	add("p (CL)", formatFloat(b.PCL))
	add("p (CD)", formatFloat(b.PCD))
	add("CL_inf", formatFloat(b.CLExt))
	add("CD_inf", formatFloat(b.CDExt))
	add("GCI (CL) %", formatFloat(b.GCICL))
	add("GCI (CD) %", formatFloat(b.GCICD))
	add("E (CL)", formatFloat(b.ECL))
	add("E (CD)", formatFloat(b.ECD))
	if res.Fallback {
		add("note", "no triplet was valid for lift; finest triplet reported as fallback")
	}

	return file.Save(path)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// Summary returns a short human-readable recommendation line for logging.
func Summary(res *Result) string {
	b := res.Best
	return fmt.Sprintf("p(CL)=%.3f p(CD)=%.3f CLinf=%.6f CDinf=%.6f GCI(CL)=%.2f%% GCI(CD)=%.2f%% time=%.1fs E(CL)=%.2f E(CD)=%.2f",
		b.PCL, b.PCD, b.CLExt, b.CDExt, b.GCICL, b.GCICD, b.Runtime, b.ECL, b.ECD)
}
