/*
 * atom.go, part of gomolymod.
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
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

//Vectors shorter than this are considered zero and discarded wherever a
//direction is needed.
const appzero = 1e-9

var (
	//ErrNoAtoms is returned when a topology with no atoms is supplied
	//or parsed. This is the only fatal input condition of the package.
	ErrNoAtoms = errors.New("molymod: topology contains no atoms")
	//ErrUnknownElement is returned by bond inference when an element
	//has no tabulated covalent radius.
	ErrUnknownElement = errors.New("molymod: no covalent radius for element")
)

//Atom is one atom of the parsed structure. Positions are kept in the
//units of the input file; scaling to scene units happens at placement.
type Atom struct {
	ID     int //stable, 1-based
	Symbol string
	Pos    r3.Vec
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	at := *A
	return &at
}

//Bond is an unordered pair of atom ids in canonical form: A < B always.
type Bond struct {
	A, B int
}

//NewBond returns the canonical bond for the pair (a,b), regardless of the
//order given. Panics on a self-bond, which got to be a programming error.
func NewBond(a, b int) Bond {
	if a == b {
		panic(fmt.Sprintf("Atom %d bonded to itself", a))
	}
	if a > b {
		a, b = b, a
	}
	return Bond{A: a, B: b}
}

//Cross returns the id at the other end of the bond from the atom with
//the id given. Panics if that atom is not part of the bond.
func (B Bond) Cross(id int) int {
	switch id {
	case B.A:
		return B.B
	case B.B:
		return B.A
	}
	panic("Trying to cross a bond from an atom not present in it")
}

//Topology holds the atoms and canonical bonds of one structure, plus the
//neighbor map derived from the bonds. Atoms and bonds are immutable once
//set; a new build starts from a new Topology.
type Topology struct {
	atoms     []*Atom
	byID      map[int]*Atom
	bonds     []Bond
	neighbors map[int][]int
}

//NewTopology makes a Topology from the atoms given, in order. It returns
//ErrNoAtoms if the slice is empty or nil.
func NewTopology(atoms []*Atom) (*Topology, error) {
	if len(atoms) == 0 {
		return nil, ErrNoAtoms
	}
	T := &Topology{
		atoms: atoms,
		byID:  make(map[int]*Atom, len(atoms)),
	}
	for _, at := range atoms {
		if _, dup := T.byID[at.ID]; dup {
			return nil, fmt.Errorf("molymod: duplicate atom id %d", at.ID)
		}
		T.byID[at.ID] = at
	}
	return T, nil
}

//SetBonds replaces the bond set of the topology. Bonds are canonicalized
//and de-duplicated, so each unordered pair appears exactly once, and the
//neighbor map is rebuilt. Bond order (and with it, the neighbor
//enumeration order) follows the first appearance of each pair.
func (T *Topology) SetBonds(bonds []Bond) {
	seen := make(map[Bond]bool, len(bonds))
	T.bonds = make([]Bond, 0, len(bonds))
	T.neighbors = make(map[int][]int)
	for _, b := range bonds {
		cb := NewBond(b.A, b.B)
		if seen[cb] {
			continue
		}
		seen[cb] = true
		T.bonds = append(T.bonds, cb)
		T.neighbors[cb.A] = append(T.neighbors[cb.A], cb.B)
		T.neighbors[cb.B] = append(T.neighbors[cb.B], cb.A)
	}
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.atoms)
}

//Atom returns the atom at position i (not id i!). Panics if out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() {
		panic("Topology: Requested Atom out of bounds")
	}
	return T.atoms[i]
}

//AtomByID returns the atom with the id given, or nil if there is none.
func (T *Topology) AtomByID(id int) *Atom {
	return T.byID[id]
}

//Bonds returns the canonical bond list.
func (T *Topology) Bonds() []Bond {
	return T.bonds
}

//Neighbors returns the ids bonded to the atom with the id given, in
//neighbor enumeration order. The returned slice is owned by the topology.
func (T *Topology) Neighbors(id int) []int {
	return T.neighbors[id]
}

//BondDirections returns the unit vectors from the atom with the id given
//towards each of its bonded neighbors, in neighbor enumeration order.
//Near-zero raw vectors (overlapping atoms) are silently skipped, so the
//result may be shorter than the neighbor count.
func (T *Topology) BondDirections(id int) []r3.Vec {
	at := T.byID[id]
	if at == nil {
		return nil
	}
	neighs := T.neighbors[id]
	dirs := make([]r3.Vec, 0, len(neighs))
	for _, n := range neighs {
		other := T.byID[n]
		if other == nil {
			continue
		}
		v := r3.Sub(other.Pos, at.Pos)
		if r3.Norm(v) <= appzero {
			continue
		}
		dirs = append(dirs, r3.Unit(v))
	}
	return dirs
}
