/*
 * assign.go, part of gomolymod.
 *
 * Copyright 2025 The gomolymod authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package assign solves the minimum-cost bipartite assignment problem for
//small dense cost matrices, as needed to match template hole vectors to
//bond directions.
//
//Two algorithms are provided: a Jonker-Volgenant style shortest
//augmenting path solver (polynomial, the default) and an exhaustive
//permutation search. Both are exact; the exhaustive one exists as an
//independently verifiable fallback and is only tractable for the small
//matrices this package is meant for (a handful of holes and bonds per
//atom, never more than about six).
package assign

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

//Algorithm selects the assignment algorithm of a Solver.
type Algorithm int

const (
	//ShortestPath is the Jonker-Volgenant style augmenting path
	//algorithm of the Hungarian family. Exact, O(n^3).
	ShortestPath Algorithm = iota
	//Exhaustive enumerates all injective assignments over the smaller
	//dimension. Exact, factorial; only for small inputs and testing.
	Exhaustive
)

var (
	//ErrEmptyMatrix is returned when the cost matrix has zero rows or
	//columns. Callers are expected to guard against ever presenting one.
	ErrEmptyMatrix = errors.New("assign: cost matrix has zero rows or columns")
	//ErrUnknownAlgorithm is returned by NewSolver for an Algorithm
	//value it does not know.
	ErrUnknownAlgorithm = errors.New("assign: unknown algorithm")
)

//Solver computes minimum-cost assignments. The algorithm is fixed at
//construction; a Solver is stateless and may be reused across solves.
type Solver struct {
	alg Algorithm
}

//NewSolver returns a Solver using the algorithm given.
func NewSolver(alg Algorithm) (*Solver, error) {
	if alg != ShortestPath && alg != Exhaustive {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, alg)
	}
	return &Solver{alg: alg}, nil
}

//Solve returns the minimum-cost injective assignment of rows to columns
//of the cost matrix, covering min(rows,cols) pairs. The returned slices
//are parallel (rows[k] is assigned to cols[k]), ordered along the
//smaller dimension; total is the summed cost of the assignment.
//Rectangular matrices are accepted in either orientation.
func (s *Solver) Solve(cost mat.Matrix) (rows, cols []int, total float64, err error) {
	r, c := cost.Dims()
	if r == 0 || c == 0 {
		return nil, nil, 0, ErrEmptyMatrix
	}
	if r > c {
		//solve over the smaller dimension and swap back
		cols, rows, total, err = s.Solve(cost.T())
		return rows, cols, total, err
	}
	switch s.alg {
	case Exhaustive:
		rows, cols = bruteForce(cost)
	default:
		rows, cols = augmentingPath(cost)
	}
	for k := range rows {
		total += cost.At(rows[k], cols[k])
	}
	return rows, cols, total, nil
}

//augmentingPath is the standard shortest-augmenting-path formulation of
//the Hungarian/Jonker-Volgenant algorithm with dual potentials, for
//m rows <= n columns. Indices are 1-based internally, with 0 as the
//virtual unmatched slot.
func augmentingPath(cost mat.Matrix) (rows, cols []int) {
	m, n := cost.Dims()
	u := make([]float64, m+1)
	v := make([]float64, n+1)
	match := make([]int, n+1) //match[j] = row assigned to column j, 0 if free
	way := make([]int, n+1)
	for i := 1; i <= m; i++ {
		match[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		used := make([]bool, n+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}
		for {
			used[j0] = true
			i0 := match[j0]
			delta := math.Inf(1)
			j1 := 0
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := cost.At(i0-1, j-1) - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[match[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if match[j0] == 0 {
				break
			}
		}
		//walk the augmenting path back, flipping the matching
		for j0 != 0 {
			j1 := way[j0]
			match[j0] = match[j1]
			j0 = j1
		}
	}
	rows = make([]int, m)
	cols = make([]int, m)
	for j := 1; j <= n; j++ {
		if match[j] > 0 {
			rows[match[j]-1] = match[j] - 1
			cols[match[j]-1] = j - 1
		}
	}
	return rows, cols
}

//bruteForce enumerates every injective mapping of the m rows into the n
//columns (m <= n) and keeps the cheapest.
func bruteForce(cost mat.Matrix) (rows, cols []int) {
	m, n := cost.Dims()
	best := math.Inf(1)
	bestCols := make([]int, m)
	cur := make([]int, m)
	usedCol := make([]bool, n)
	var rec func(row int, acc float64)
	rec = func(row int, acc float64) {
		if acc >= best {
			return //cannot improve, costs are non-negative
		}
		if row == m {
			best = acc
			copy(bestCols, cur)
			return
		}
		for j := 0; j < n; j++ {
			if usedCol[j] {
				continue
			}
			usedCol[j] = true
			cur[row] = j
			rec(row+1, acc+cost.At(row, j))
			usedCol[j] = false
		}
	}
	rec(0, 0)
	rows = make([]int, m)
	for i := range rows {
		rows[i] = i
	}
	return rows, bestCols
}
