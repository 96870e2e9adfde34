/*
 * place.go, part of gomolymod.
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
	"io"
	"math"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/molbuild/gomolymod/align"
	"github.com/molbuild/gomolymod/assign"
)

//A bond cylinder never collapses below this length, whatever the gaps
//and offsets eat away.
const minBondLength = 0.01

//RigidTransform is a proper rotation plus a translation, the placement
//of one scene element.
type RigidTransform struct {
	Rot   *mat.Dense //3x3, determinant +1
	Trans r3.Vec
}

//OrientBranch says which rule of the orientation policy placed an atom.
//Mostly of diagnostic value.
type OrientBranch int

const (
	BranchMonovalent OrientBranch = iota //single bond, H or halogen
	BranchAssignment                     //hole/bond matching plus best-fit rotation
	BranchBestHole                       //single bond, best hole aligned to it
	BranchFirstHole                      //sparse data, first hole to first bond
	BranchIdentity                       //no usable directional information
)

func (b OrientBranch) String() string {
	switch b {
	case BranchMonovalent:
		return "monovalent"
	case BranchAssignment:
		return "assignment"
	case BranchBestHole:
		return "best-hole"
	case BranchFirstHole:
		return "first-hole"
	}
	return "identity"
}

//AtomPlacement is the placement of one atom template instance.
type AtomPlacement struct {
	Atom      *Atom
	Class     GeometryClass
	Branch    OrientBranch
	Transform RigidTransform
}

//BondPlacement is the placement of one bond cylinder. Length is the
//effective cylinder length after gaps, offsets and the length factor.
type BondPlacement struct {
	Bond      Bond
	Transform RigidTransform
	Length    float64
	Radius    float64
	Vertices  int
}

//CapPlacement is the placement of one bond end cap. End is 0 for the
//cap at the bond's A side, 1 for the B side. The two caps of a bond
//face opposite directions.
type CapPlacement struct {
	Bond      Bond
	End       int
	Transform RigidTransform
	Radius    float64
	Length    float64
}

//Result is everything one build emits for the external scene builder.
type Result struct {
	Atoms []AtomPlacement
	Bonds []BondPlacement
	Caps  []CapPlacement
}

//HoleProvider supplies the raw hole vectors of a geometry class, as
//found in the template assets. Vectors may be unnormalized; the builder
//normalizes them and discards near-zero ones. Returning an empty slice
//(or an error) for a class is not fatal: atoms of that class degrade to
//the sparse placement branches.
type HoleProvider interface {
	HoleVectors(class GeometryClass) ([]r3.Vec, error)
}

//Builder runs one build. It owns the per-build hole cache, so a Builder
//must not be reused across builds nor shared between goroutines.
type Builder struct {
	set    *Settings
	holes  HoleProvider
	cache  map[GeometryClass][]r3.Vec
	solver *assign.Solver
	log    *log.Logger
}

//NewBuilder returns a Builder for one build with the settings and hole
//provider given. A nil logger discards all build logging.
func NewBuilder(set *Settings, holes HoleProvider, logger *log.Logger) (*Builder, error) {
	if err := set.Validate(); err != nil {
		return nil, err
	}
	solver, err := assign.NewSolver(assign.ShortestPath)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Builder{
		set:    set,
		holes:  holes,
		cache:  make(map[GeometryClass][]r3.Vec),
		solver: solver,
		log:    logger,
	}, nil
}

//holeVectors returns the normalized hole set of a class, loading and
//caching it on first use. A missing or failing template degrades to an
//empty set.
func (B *Builder) holeVectors(class GeometryClass) []r3.Vec {
	if hs, ok := B.cache[class]; ok {
		return hs
	}
	var hs []r3.Vec
	if B.holes != nil {
		raw, err := B.holes.HoleVectors(class)
		if err != nil {
			B.log.Warn("hole template unavailable, degrading", "class", class.TemplateKey(), "err", err)
		}
		for _, v := range raw {
			if r3.Norm(v) <= appzero {
				continue
			}
			hs = append(hs, r3.Unit(v))
		}
	}
	B.log.Debug("hole vectors loaded", "class", class.TemplateKey(), "count", len(hs))
	B.cache[class] = hs
	return hs
}

//scenePos maps an input-file position to scene units.
func (B *Builder) scenePos(p r3.Vec) r3.Vec {
	return r3.Scale(B.set.Scale*B.set.CompactFactor, p)
}

//Build places every atom, bond cylinder and (if enabled) bond cap of
//the topology and returns the transforms. Geometric degeneracies are
//recovered locally and never fail the build; the only fatal condition
//is an empty topology.
func (B *Builder) Build(top *Topology) (*Result, error) {
	if top == nil || top.Len() == 0 {
		return nil, ErrNoAtoms
	}
	res := &Result{
		Atoms: make([]AtomPlacement, 0, top.Len()),
		Bonds: make([]BondPlacement, 0, len(top.Bonds())),
	}
	for i := 0; i < top.Len(); i++ {
		res.Atoms = append(res.Atoms, B.placeAtom(top, top.Atom(i)))
	}
	for _, bond := range top.Bonds() {
		B.placeBond(top, bond, res)
	}
	B.log.Info("build complete", "atoms", len(res.Atoms), "bonds", len(res.Bonds), "caps", len(res.Caps))
	return res, nil
}

//orientation policy, first matching branch wins
func (B *Builder) placeAtom(top *Topology, at *Atom) AtomPlacement {
	nbrs := top.Neighbors(at.ID)
	nn := len(nbrs)
	class := Classify(at.Symbol, nn)
	holes := B.holeVectors(class)
	//Only as many neighbors as the template has holes are considered
	//(but always at least one); the cut happens before degenerate
	//directions are dropped, so an overlapping neighbor still uses up
	//its slot.
	limit := len(holes)
	if limit < 1 {
		limit = 1
	}
	if len(nbrs) > limit {
		nbrs = nbrs[:limit]
	}
	dirs := make([]r3.Vec, 0, len(nbrs))
	for _, id := range nbrs {
		v := r3.Sub(top.AtomByID(id).Pos, at.Pos)
		if r3.Norm(v) <= appzero {
			continue
		}
		dirs = append(dirs, r3.Unit(v))
	}

	var rot *mat.Dense
	var branch OrientBranch
	switch {
	case nn == 1 && IsMonovalent(at.Symbol) && len(dirs) == 1:
		branch = BranchMonovalent
		rot = align.DirectionalFrame(dirs[0], B.set.MonovalentForwardAxis.Vec(), B.set.MonovalentRollDeg)
	case len(holes) >= 2 && len(dirs) >= 2:
		branch = BranchAssignment
		rot = B.fitHoles(holes, dirs)
	case len(dirs) == 1 && len(holes) >= 1:
		branch = BranchBestHole
		h := bestHole(holes, dirs[0])
		rot = align.Single(h, dirs[0])
	case len(holes) >= 1 && len(dirs) >= 1:
		branch = BranchFirstHole
		rot = align.Single(holes[0], dirs[0])
	default:
		branch = BranchIdentity
		rot = align.Identity()
	}
	B.log.Debug("atom placed", "id", at.ID, "symbol", at.Symbol, "class", class, "branch", branch)
	return AtomPlacement{
		Atom:      at,
		Class:     class,
		Branch:    branch,
		Transform: RigidTransform{Rot: rot, Trans: B.scenePos(at.Pos)},
	}
}

//fitHoles matches holes to bond directions at minimum total cost and
//returns the best-fit rotation over the matched pairs.
func (B *Builder) fitHoles(holes, dirs []r3.Vec) *mat.Dense {
	cost := mat.NewDense(len(holes), len(dirs), nil)
	for i, h := range holes {
		for j, d := range dirs {
			dot := r3.Dot(h, d)
			if dot > 1 {
				dot = 1
			} else if dot < -1 {
				dot = -1
			}
			cost.Set(i, j, 1-dot)
		}
	}
	rows, cols, total, err := B.solver.Solve(cost)
	if err != nil || len(rows) < 2 {
		//Cannot happen given the branch guard, but degrade rather
		//than fail if it somehow does.
		B.log.Warn("assignment failed, falling back to single-vector alignment", "err", err)
		return align.Single(holes[0], dirs[0])
	}
	from := make([]r3.Vec, len(rows))
	to := make([]r3.Vec, len(rows))
	for k := range rows {
		from[k] = holes[rows[k]]
		to[k] = dirs[cols[k]]
	}
	rot, err := align.Kabsch(from, to)
	if err != nil {
		B.log.Warn("rotation fit failed, falling back to single-vector alignment", "err", err)
		return align.Single(from[0], to[0])
	}
	B.log.Debug("holes matched", "pairs", len(rows), "cost", fmt.Sprintf("%.6f", total))
	return rot
}

//bestHole picks the hole with the largest dot product against dir,
//flipping its sign when the best agreement is with the opposite
//direction: holes are directionless slots.
func bestHole(holes []r3.Vec, dir r3.Vec) r3.Vec {
	best := holes[0]
	bestDot := r3.Dot(best, dir)
	for _, h := range holes[1:] {
		if d := r3.Dot(h, dir); d > bestDot {
			best, bestDot = h, d
		}
	}
	if bestDot < 0 {
		best = r3.Scale(-1, best)
	}
	return best
}

//placeBond emits the cylinder (and caps) for one bond, or nothing when
//the bond is degenerate.
func (B *Builder) placeBond(top *Topology, bond Bond, res *Result) {
	a1 := top.AtomByID(bond.A)
	a2 := top.AtomByID(bond.B)
	if a1 == nil || a2 == nil {
		return
	}
	p1 := B.scenePos(a1.Pos)
	p2 := B.scenePos(a2.Pos)
	vec := r3.Sub(p2, p1)
	if r3.Norm(vec) <= appzero {
		B.log.Debug("zero-length bond skipped", "a", bond.A, "b", bond.B)
		return
	}
	dirn := r3.Unit(vec)
	set := B.set
	offA := math.Max(0, set.BondGapEachSide) + set.BondStartOffset
	offB := math.Max(0, set.BondGapEachSide) + set.BondEndOffset
	a := r3.Add(p1, r3.Scale(offA, dirn))
	b := r3.Sub(p2, r3.Scale(offB, dirn))
	seg := r3.Sub(b, a)
	length := math.Max(minBondLength, r3.Norm(seg)*set.BondLengthFactor)
	mid := r3.Add(a, r3.Scale(0.5, seg))
	res.Bonds = append(res.Bonds, BondPlacement{
		Bond:      bond,
		Transform: RigidTransform{Rot: align.TrackFrame(dirn), Trans: mid},
		Length:    length,
		Radius:    set.BondRadius * set.Scale / 3.0,
		Vertices:  set.BondVertices,
	})
	if !set.UseCaps {
		return
	}
	aCap := r3.Add(a, r3.Scale(set.CapOffset+set.CapStartOffset, dirn))
	bCap := r3.Sub(b, r3.Scale(set.CapOffset+set.CapEndOffset, dirn))
	res.Caps = append(res.Caps,
		B.capAt(bond, 0, aCap, dirn),
		B.capAt(bond, 1, bCap, r3.Scale(-1, dirn)),
	)
}

//capAt builds the placement of one cap at point, facing along dirn.
func (B *Builder) capAt(bond Bond, end int, point, dirn r3.Vec) CapPlacement {
	set := B.set
	return CapPlacement{
		Bond:      bond,
		End:       end,
		Transform: RigidTransform{Rot: align.DirectionalFrame(dirn, set.CapForwardAxis.Vec(), set.CapRollDeg), Trans: point},
		Radius:    set.CapRadius * set.CapScale,
		Length:    set.CapLength * set.CapScale,
	}
}
