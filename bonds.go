/*
 * bonds.go, part of gomolymod.
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

package molymod

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

//constants from DOI:10.1186/1758-2946-3-33
const (
	tooClose = 0.63
	bondTol  = 0.45
)

//candidate is a bond candidate during inference, before pruning.
type candidate struct {
	bond Bond
	dist float64
}

//InferBonds assigns bonds to the topology based on a simple distance
//criterium, similar to that described in DOI:10.1186/1758-2946-3-33:
//two atoms bond when their distance is below the sum of their covalent
//radii plus a tolerance, and above a too-close floor. Atoms with a
//tabulated maximum bond count get their longest excess bonds pruned.
//The pairwise scan may get slow for very large systems; it is really not
//thought for proteins or macromolecules.
func InferBonds(T *Topology) error {
	tot := T.Len()
	cands := make([]candidate, 0, tot)
	for i := 0; i < tot; i++ {
		at1 := T.Atom(i)
		cov1 := symbolCovrad[at1.Symbol]
		if cov1 == 0 {
			return fmt.Errorf("%w: %s (atom %d)", ErrUnknownElement, at1.Symbol, at1.ID)
		}
		for j := i + 1; j < tot; j++ {
			at2 := T.Atom(j)
			cov2 := symbolCovrad[at2.Symbol]
			if cov2 == 0 {
				return fmt.Errorf("%w: %s (atom %d)", ErrUnknownElement, at2.Symbol, at2.ID)
			}
			d := r3.Norm(r3.Sub(at2.Pos, at1.Pos))
			if d < cov1+cov2+bondTol && d > tooClose {
				cands = append(cands, candidate{bond: NewBond(at1.ID, at2.ID), dist: d})
			}
		}
	}
	//Now we check that no atom has too many bonds.
	//The longest bonds of each over-bonded atom get dropped.
	perAtom := make(map[int][]int, tot) //indexes into cands
	for i, c := range cands {
		perAtom[c.bond.A] = append(perAtom[c.bond.A], i)
		perAtom[c.bond.B] = append(perAtom[c.bond.B], i)
	}
	dropped := make(map[int]bool)
	for i := 0; i < tot; i++ {
		at := T.Atom(i)
		max := symbolMaxBonds[at.Symbol]
		if max == 0 { //means there is no specified number of bonds for this atom.
			continue
		}
		mine := perAtom[at.ID]
		sort.SliceStable(mine, func(a, b int) bool { return cands[mine[a]].dist < cands[mine[b]].dist })
		kept := 0
		for _, ci := range mine {
			if dropped[ci] {
				continue
			}
			kept++
			if kept > max {
				dropped[ci] = true
			}
		}
	}
	bonds := make([]Bond, 0, len(cands))
	for i, c := range cands {
		if !dropped[i] {
			bonds = append(bonds, c.bond)
		}
	}
	T.SetBonds(bonds)
	return nil
}
