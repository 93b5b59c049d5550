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
	"strings"
)

// checkOutputFile makes sure that the output file is specified and its
// directory exists.
func checkOutputFile(o string) (string, error) {
	if o == "" {
		return o, fmt.Errorf("icepost: the OutputFile configuration variable needs to be specified")
	}
	o = os.ExpandEnv(o)
	d := filepath.Dir(o)
	if _, err := os.Stat(d); err != nil {
		if err := os.MkdirAll(d, os.ModePerm); err != nil {
			return o, fmt.Errorf("icepost: creating output directory: %v", err)
		}
	}
	return o, nil
}

// expandStringSlice expands environment variables in a slice of strings,
// and splits any entries that contain commas.
func expandStringSlice(s []string) []string {
	var o []string
	for _, ss := range s {
		for _, sss := range strings.Split(ss, ",") {
			sss = strings.TrimSpace(sss)
			if sss == "" {
				continue
			}
			o = append(o, os.ExpandEnv(sss))
		}
	}
	return o
}

// parseDerive converts "name=expression" entries into a map from column
// name to expression.
func parseDerive(s []string) (map[string]string, error) {
	if len(s) == 0 {
		return nil, nil
	}
	o := make(map[string]string, len(s))
	for _, ss := range s {
		i := strings.Index(ss, "=")
		if i <= 0 {
			return nil, fmt.Errorf("icepost: invalid derived column %q; want name=expression", ss)
		}
		name := strings.TrimSpace(ss[:i])
		expr := strings.TrimSpace(ss[i+1:])
		if name == "" || expr == "" {
			return nil, fmt.Errorf("icepost: invalid derived column %q; want name=expression", ss)
		}
		o[name] = expr
	}
	return o, nil
}
