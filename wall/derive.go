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
	"fmt"
	"math"
	"sort"

	"github.com/Knetic/govaluate"
)

// deriveFuncs are the functions available inside derived-column
// expressions.
var deriveFuncs = map[string]govaluate.ExpressionFunction{
	"abs": func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("wall: got %d arguments for function 'abs', but needs 1", len(arg))
		}
		return math.Abs(arg[0].(float64)), nil
	},
	"sqrt": func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("wall: got %d arguments for function 'sqrt', but needs 1", len(arg))
		}
		return math.Sqrt(arg[0].(float64)), nil
	},
	"exp": func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("wall: got %d arguments for function 'exp', but needs 1", len(arg))
		}
		return math.Exp(arg[0].(float64)), nil
	},
	"log": func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("wall: got %d arguments for function 'log', but needs 1", len(arg))
		}
		return math.Log(arg[0].(float64)), nil
	},
}

// Derive appends user-defined columns computed from expressions over the
// existing columns. Expression variables are matched against normalized
// column names, so "pressure" resolves the same column as the file's
// "Pressure (N/m^2)". Columns are appended in sorted name order for
// deterministic output.
func (m *Merged) Derive(exprs map[string]string) error {
	names := make([]string, 0, len(exprs))
	for name := range exprs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		expr, err := govaluate.NewEvaluableExpressionWithFunctions(exprs[name], deriveFuncs)
		if err != nil {
			return fmt.Errorf("wall: derived column %q: %v", name, err)
		}

		// Resolve every referenced variable to a column up front.
		cols := make(map[string][]float64)
		for _, v := range expr.Vars() {
			vals, ok := m.Column(v)
			if !ok {
				return fmt.Errorf("wall: derived column %q: no column matching %q", name, v)
			}
			cols[v] = vals
		}

		n, _ := m.Nodes.Dims()
		out := make([]float64, n)
		params := make(map[string]interface{}, len(cols))
		for i := 0; i < n; i++ {
			for v, vals := range cols {
				params[v] = vals[i]
			}
			res, err := expr.Evaluate(params)
			if err != nil {
				out[i] = math.NaN()
				continue
			}
			if f, ok := res.(float64); ok {
				out[i] = f
			} else {
				out[i] = math.NaN()
			}
		}
		m.appendColumn(name, out)
	}
	return nil
}
