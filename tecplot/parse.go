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
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// The parser is a line-oriented state machine:
//
//	seekVariables -> inHeader -> inNodes -> inConnectivity
//
// seekVariables scans for the VARIABLES line and accumulates its
// continuation lines. inHeader assembles a wrapped ZONE header until numeric
// data begins. inNodes consumes exactly N×V floats, and inConnectivity
// consumes the element indices that follow.

// ParseFile reads and parses the Tecplot ASCII file at path.
func ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, path)
}

// Parse parses Tecplot ASCII text from r. path is used only in error
// messages.
func Parse(r io.Reader, path string) (*File, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("tecplot: %s: %v", path, err)
	}

	names, err := parseVariables(lines, path)
	if err != nil {
		return nil, err
	}

	starts := zoneStarts(lines)
	f := &File{Path: path, Variables: names}
	for zi, start := range starts {
		end := len(lines)
		if zi+1 < len(starts) {
			end = starts[zi+1]
		}
		z, err := parseZone(lines, start, end, len(names), path)
		if err != nil {
			return nil, err
		}
		f.Zones = append(f.Zones, z)
	}
	return f, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

// parseVariables locates the VARIABLES line, concatenates its continuation
// lines up to the first ZONE line, and extracts the double-quoted names.
func parseVariables(lines []string, path string) ([]string, error) {
	start := -1
	for i, ln := range lines {
		if hasPrefixFold(strings.TrimLeft(ln, " \t"), "VARIABLES") {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, &ParseError{Path: path, Msg: "variables not found"}
	}
	var b strings.Builder
	b.WriteString(lines[start])
	for j := start + 1; j < len(lines); j++ {
		if isZoneLine(lines[j]) {
			break
		}
		b.WriteByte(' ')
		b.WriteString(lines[j])
	}
	names := quotedStrings(b.String())
	if len(names) == 0 {
		return nil, &ParseError{Path: path, Line: start + 1, Msg: "variables not found"}
	}
	for i, n := range names {
		names[i] = strings.TrimSpace(n)
	}
	return names, nil
}

func zoneStarts(lines []string) []int {
	var starts []int
	for i, ln := range lines {
		if isZoneLine(ln) {
			starts = append(starts, i)
		}
	}
	return starts
}

func isZoneLine(ln string) bool {
	return hasPrefixFold(strings.TrimLeft(ln, " \t"), "ZONE")
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// quotedStrings returns every double-quoted substring of s, in order.
func quotedStrings(s string) []string {
	var out []string
	for {
		i := strings.IndexByte(s, '"')
		if i < 0 {
			break
		}
		j := strings.IndexByte(s[i+1:], '"')
		if j < 0 {
			break
		}
		out = append(out, s[i+1:i+1+j])
		s = s[i+j+2:]
	}
	return out
}

// isDataStart reports whether a trimmed line begins numeric data (or a bare
// quoted string), which terminates a wrapped ZONE header.
func isDataStart(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	if c == '"' || c == '.' || (c >= '0' && c <= '9') {
		return true
	}
	if (c == '+' || c == '-') && len(s) > 1 {
		d := s[1]
		return d == '.' || (d >= '0' && d <= '9')
	}
	return false
}

func parseZone(lines []string, start, end, nvars int, path string) (*Zone, error) {
	// Assemble the header across wrapped lines.
	header := lines[start]
	dataStart := end
	for j := start + 1; j < end; j++ {
		s := strings.TrimSpace(lines[j])
		if isDataStart(s) {
			dataStart = j
			break
		}
		header += " " + s
	}

	z := &Zone{Header: header, N: -1}
	for _, kv := range headerFields(header) {
		switch strings.ToUpper(kv.key) {
		case "T":
			z.Title = kv.val
		case "ZONETYPE":
			z.Type = ParseZoneType(kv.val)
		case "N", "NODES":
			n, err := strconv.Atoi(strings.TrimSpace(kv.val))
			if err != nil {
				return nil, &ParseError{Path: path, Line: start + 1, Msg: fmt.Sprintf("bad N=%q in zone header", kv.val)}
			}
			z.N = n
		case "E", "ELEMENTS":
			n, err := strconv.Atoi(strings.TrimSpace(kv.val))
			if err != nil {
				return nil, &ParseError{Path: path, Line: start + 1, Msg: fmt.Sprintf("bad E=%q in zone header", kv.val)}
			}
			z.E = n
		}
	}

	toks := tokenize(lines[dataStart:end])
	if err := parseNodes(z, toks, nvars, path, start); err != nil {
		return nil, err
	}
	parseConnectivity(z, toks[usedTokens(z, nvars):])
	return z, nil
}

type headerField struct{ key, val string }

// headerFields splits an assembled ZONE header into key=value pairs.
// Values may be double-quoted (quotes are stripped); unquoted values run to
// the next comma or whitespace.
func headerFields(header string) []headerField {
	var fields []headerField
	s := header
	for {
		eq := strings.IndexByte(s, '=')
		if eq < 0 {
			break
		}
		key := strings.TrimSpace(s[:eq])
		// The key is the last comma/space-separated word before '='.
		if i := strings.LastIndexAny(key, ", \t"); i >= 0 {
			key = key[i+1:]
		}
		s = strings.TrimLeft(s[eq+1:], " \t")
		var val string
		if strings.HasPrefix(s, `"`) {
			if j := strings.IndexByte(s[1:], '"'); j >= 0 {
				val = s[1 : 1+j]
				s = s[j+2:]
			} else { // unterminated quote: take the rest
				val = s[1:]
				s = ""
			}
		} else {
			j := strings.IndexAny(s, ", \t")
			if j < 0 {
				j = len(s)
			}
			val = s[:j]
			s = s[j:]
		}
		fields = append(fields, headerField{key, val})
	}
	return fields
}

// tokenize splits the data lines into whitespace-separated tokens, applying
// the exponent fixup to each.
func tokenize(lines []string) []string {
	var toks []string
	for _, ln := range lines {
		for _, t := range strings.Fields(ln) {
			toks = append(toks, fixExponent(t))
		}
	}
	return toks
}

// fixExponent inserts a missing 'e' before a bare signed exponent of two or
// more digits, a known FENSAP export quirk: "1.23+05" becomes "1.23e+05".
func fixExponent(tok string) string {
	for i := 1; i < len(tok); i++ {
		c := tok[i]
		if c != '+' && c != '-' {
			continue
		}
		prev := tok[i-1]
		if prev < '0' || prev > '9' {
			continue
		}
		// Require at least two trailing digits and nothing else.
		digits := tok[i+1:]
		if len(digits) < 2 {
			continue
		}
		ok := true
		for _, d := range []byte(digits) {
			if d < '0' || d > '9' {
				ok = false
				break
			}
		}
		if ok {
			return tok[:i] + "e" + tok[i:]
		}
	}
	return tok
}

// parseNodes fills z.Nodes from the token stream. When N is absent from the
// header it is inferred from the token count, which is only possible for
// zones without element connectivity.
func parseNodes(z *Zone, toks []string, nvars int, path string, headerLine int) error {
	if z.N < 0 {
		if z.E > 0 {
			return &ParseError{Path: path, Line: headerLine + 1, Msg: "zone header missing N= but has elements"}
		}
		var vals []float64
		for _, t := range toks {
			v, err := strconv.ParseFloat(t, 64)
			if err != nil {
				continue
			}
			vals = append(vals, v)
		}
		if nvars == 0 || len(vals) == 0 || len(vals)%nvars != 0 {
			return &ParseError{Path: path, Line: headerLine + 1, Msg: "cannot infer node count for zone"}
		}
		z.N = len(vals) / nvars
		z.Nodes = mat.NewDense(z.N, nvars, vals)
		return nil
	}

	target := z.N * nvars
	vals := make([]float64, 0, target)
	for _, t := range toks {
		if len(vals) == target {
			break
		}
		v, err := strconv.ParseFloat(t, 64)
		if err != nil {
			continue // stray token inside the node block
		}
		vals = append(vals, v)
	}
	if len(vals) < target {
		return &ParseError{Path: path, Line: headerLine + 1,
			Msg: fmt.Sprintf("node data too short: have %d values, want %d", len(vals), target)}
	}
	if target == 0 {
		z.Nodes = &mat.Dense{}
		return nil
	}
	z.Nodes = mat.NewDense(z.N, nvars, vals)
	return nil
}

// usedTokens counts how many leading tokens of the zone's data stream were
// consumed as node values.
func usedTokens(z *Zone, nvars int) int {
	return z.N * nvars
}

// parseConnectivity derives z.Conn from the element indices following the
// node block. FELINESEG elements are edges already; surface elements are
// reduced to their boundary: per unordered node pair, edges referenced by
// exactly one element are boundary edges, the rest are interior.
func parseConnectivity(z *Zone, toks []string) {
	npe := z.Type.nodesPerElement()
	if z.E <= 0 || npe == 0 {
		return
	}

	idx := make([]int, 0, z.E*npe)
	for _, t := range toks {
		if len(idx) == z.E*npe {
			break
		}
		v, err := strconv.Atoi(t)
		if err != nil {
			continue
		}
		idx = append(idx, v-1) // file indices are 1-based
	}

	if z.Type == FELineSeg {
		for i := 0; i+1 < len(idx); i += 2 {
			a, b := idx[i], idx[i+1]
			if a < 0 || a >= z.N || b < 0 || b >= z.N {
				continue
			}
			z.Conn = append(z.Conn, Edge{a, b})
		}
		return
	}

	// Surface elements: require the full block, then count edge usage.
	if len(idx) < z.E*npe {
		return
	}
	counts := make(map[Edge]int)
	var order []Edge // first-seen order keeps the result deterministic
	for e := 0; e < z.E; e++ {
		elem := idx[e*npe : (e+1)*npe]
		for k := 0; k < npe; k++ {
			a, b := elem[k], elem[(k+1)%npe]
			if a == b || a < 0 || a >= z.N || b < 0 || b >= z.N {
				continue
			}
			if a > b {
				a, b = b, a
			}
			key := Edge{a, b}
			if counts[key] == 0 {
				order = append(order, key)
			}
			counts[key]++
		}
	}
	for _, e := range order {
		if counts[e] == 1 {
			z.Conn = append(z.Conn, e)
		}
	}
}
