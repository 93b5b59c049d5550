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
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// Write serializes a single FELINESEG zone in POINT packing: the VARIABLES
// line, one ZONE header, the node rows, then the edges as 1-based index
// pairs.
func Write(w io.Writer, title string, vars []string, nodes *mat.Dense, conn []Edge) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "TITLE = %q\n", "Merged Wall Data"); err != nil {
		return err
	}
	fmt.Fprint(bw, "VARIABLES =")
	for _, v := range vars {
		fmt.Fprintf(bw, " %q", v)
	}
	fmt.Fprintln(bw)

	n, c := 0, 0
	if nodes != nil {
		n, c = nodes.Dims()
	}
	if c != len(vars) && n > 0 {
		return fmt.Errorf("tecplot: node matrix has %d columns for %d variables", c, len(vars))
	}
	fmt.Fprintf(bw, "ZONE T=%q, N=%d, E=%d, DATAPACKING=POINT, ZONETYPE=FELINESEG\n", title, n, len(conn))

	for i := 0; i < n; i++ {
		for j := 0; j < c; j++ {
			if j > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.FormatFloat(nodes.At(i, j), 'g', -1, 64))
		}
		bw.WriteByte('\n')
	}
	for _, e := range conn {
		fmt.Fprintf(bw, "%d %d\n", e.I+1, e.J+1)
	}
	return bw.Flush()
}

// WriteFile writes the zone to path, creating parent directories as needed.
func WriteFile(path, title string, vars []string, nodes *mat.Dense, conn []Edge) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, title, vars, nodes, conn); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
