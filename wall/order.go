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
	"gonum.org/v1/gonum/floats"

	"github.com/icingtools/icepost/tecplot"
)

// Order returns a permutation of z's node indices forming a walk along its
// boundary connectivity. Zones without connectivity are assumed to already
// be in walk order and get the identity permutation. Nodes unreachable from
// the walk (disconnected fragments) are appended in ascending index order so
// none are dropped. The result is deterministic.
func Order(z *tecplot.Zone) []int {
	order := make([]int, 0, z.N)
	if len(z.Conn) == 0 {
		for i := 0; i < z.N; i++ {
			order = append(order, i)
		}
		return order
	}

	adj := make(map[int][]int, z.N)
	for _, e := range z.Conn {
		adj[e.I] = append(adj[e.I], e.J)
		adj[e.J] = append(adj[e.J], e.I)
	}

	start := startNode(adj)
	order = append(order, start)
	used := make(map[tecplot.Edge]bool, len(z.Conn))
	cur := start
	for {
		next := -1
		for _, nb := range adj[cur] {
			e := undirected(cur, nb)
			if !used[e] {
				used[e] = true
				next = nb
				break
			}
		}
		if next < 0 || next == start {
			break
		}
		order = append(order, next)
		cur = next
	}

	if len(order) < z.N {
		seen := make([]bool, z.N)
		for _, i := range order {
			seen[i] = true
		}
		for i := 0; i < z.N; i++ {
			if !seen[i] {
				order = append(order, i)
			}
		}
	}
	return order
}

func undirected(a, b int) tecplot.Edge {
	if a > b {
		a, b = b, a
	}
	return tecplot.Edge{I: a, J: b}
}

// startNode picks where the walk begins: the smallest open endpoint (degree
// one) when the polyline is open, otherwise the smallest-index node of the
// largest connected component.
func startNode(adj map[int][]int) int {
	endpoint := -1
	for n, nbs := range adj {
		if len(nbs) == 1 && (endpoint < 0 || n < endpoint) {
			endpoint = n
		}
	}
	if endpoint >= 0 {
		return endpoint
	}

	visited := make(map[int]bool, len(adj))
	bestSize, bestMin := 0, -1
	for n := range adj {
		if visited[n] {
			continue
		}
		size, min := 0, n
		stack := []int{n}
		visited[n] = true
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			size++
			if u < min {
				min = u
			}
			for _, v := range adj[u] {
				if !visited[v] {
					visited[v] = true
					stack = append(stack, v)
				}
			}
		}
		if size > bestSize || (size == bestSize && (bestMin < 0 || min < bestMin)) {
			bestSize, bestMin = size, min
		}
	}
	return bestMin
}

// normalizeOrientation rotates order so the node of maximum x comes first
// and reverses it when the closed path is counter-clockwise, re-rotating
// afterwards so both rules hold together. x and y are indexed by node.
func normalizeOrientation(order []int, x, y []float64) []int {
	if len(order) == 0 {
		return order
	}
	order = rotateStartMaxX(order, x)
	if len(order) >= 3 && signedArea(order, x, y) > 0 { // counter-clockwise
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
		order = rotateStartMaxX(order, x)
	}
	return order
}

// rotateStartMaxX rotates order so that the node with the largest x
// coordinate is first.
func rotateStartMaxX(order []int, x []float64) []int {
	xo := make([]float64, len(order))
	for i, n := range order {
		xo[i] = x[n]
	}
	k := floats.MaxIdx(xo)
	if k == 0 {
		return order
	}
	return append(order[k:len(order):len(order)], order[:k]...)
}

// signedArea is the shoelace area of the path treated as a closed polygon;
// positive means counter-clockwise.
func signedArea(order []int, x, y []float64) float64 {
	a := 0.0
	for i := range order {
		p, q := order[i], order[(i+1)%len(order)]
		a += x[p]*y[q] - x[q]*y[p]
	}
	return a / 2
}
