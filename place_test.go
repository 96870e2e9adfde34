/*
 * place_test.go, part of gomolymod.
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

package molymod_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	molymod "github.com/molbuild/gomolymod"
	"github.com/molbuild/gomolymod/align"
)

//holeMap is a test HoleProvider backed by a plain map.
type holeMap map[molymod.GeometryClass][]r3.Vec

func (h holeMap) HoleVectors(class molymod.GeometryClass) ([]r3.Vec, error) {
	return h[class], nil
}

//failingHoles always errors, to exercise the degraded path.
type failingHoles struct{}

func (failingHoles) HoleVectors(molymod.GeometryClass) ([]r3.Vec, error) {
	return nil, errors.New("template library unreadable")
}

//unitSettings returns settings with Scale 1 so scene coordinates equal
//input coordinates, which keeps the geometry checks readable.
func unitSettings() *molymod.Settings {
	s := molymod.DefaultSettings()
	s.Scale = 1.0
	return s
}

func tetraDirs() []r3.Vec {
	return []r3.Vec{
		r3.Unit(r3.Vec{X: 1, Y: 1, Z: 1}),
		r3.Unit(r3.Vec{X: 1, Y: -1, Z: -1}),
		r3.Unit(r3.Vec{X: -1, Y: 1, Z: -1}),
		r3.Unit(r3.Vec{X: -1, Y: -1, Z: 1}),
	}
}

//TestBuild_TetrahedralCenter is the full classification, assignment and
//rotation-fit pipeline on a synthetic methane: the carbon's rotation
//must map every hole onto one of the real bond directions.
func TestBuild_TetrahedralCenter(t *testing.T) {
	dirs := tetraDirs()
	atoms := []*molymod.Atom{{ID: 1, Symbol: "C", Pos: r3.Vec{}}}
	bonds := make([]molymod.Bond, 0, 4)
	for i, d := range dirs {
		atoms = append(atoms, &molymod.Atom{ID: i + 2, Symbol: "H", Pos: r3.Scale(1.09, d)})
		bonds = append(bonds, molymod.Bond{A: 1, B: i + 2})
	}
	top, err := molymod.NewTopology(atoms)
	require.NoError(t, err)
	top.SetBonds(bonds)

	//the same four directions, deliberately in another order
	holes := holeMap{
		molymod.Tetrahedral: {dirs[2], dirs[0], dirs[3], dirs[1]},
		molymod.Linear:      {{X: 1}},
	}
	b, err := molymod.NewBuilder(unitSettings(), holes, nil)
	require.NoError(t, err)
	res, err := b.Build(top)
	require.NoError(t, err)
	require.Len(t, res.Atoms, 5)

	carbon := res.Atoms[0]
	assert.Equal(t, molymod.Tetrahedral, carbon.Class)
	assert.Equal(t, molymod.BranchAssignment, carbon.Branch)
	assert.InDelta(t, 1.0, mat.Det(carbon.Transform.Rot), 1e-9)
	for _, h := range holes[molymod.Tetrahedral] {
		rotated := align.Apply(carbon.Transform.Rot, h)
		best := math.Inf(1)
		for _, d := range dirs {
			if r := vecDist(rotated, d); r < best {
				best = r
			}
		}
		assert.Less(t, best, 1e-6, "hole %v did not land on a bond direction", h)
	}

	//the hydrogens take the monovalent branch and ignore the holes
	for _, a := range res.Atoms[1:] {
		assert.Equal(t, molymod.BranchMonovalent, a.Branch)
	}
}

//TestBuild_MonovalentHydrogen pins the scenario: a hydrogen bonded
//along +Z with forward axis X+ and roll 0 gets the rotation sending
//(1,0,0) to (0,0,1).
func TestBuild_MonovalentHydrogen(t *testing.T) {
	top, err := molymod.NewTopology([]*molymod.Atom{
		{ID: 1, Symbol: "H", Pos: r3.Vec{}},
		{ID: 2, Symbol: "C", Pos: r3.Vec{Z: 1.09}},
	})
	require.NoError(t, err)
	top.SetBonds([]molymod.Bond{{A: 1, B: 2}})

	set := unitSettings()
	set.MonovalentForwardAxis = molymod.XPlus
	set.MonovalentRollDeg = 0
	b, err := molymod.NewBuilder(set, holeMap{}, nil)
	require.NoError(t, err)
	res, err := b.Build(top)
	require.NoError(t, err)

	h := res.Atoms[0]
	assert.Equal(t, molymod.BranchMonovalent, h.Branch)
	assert.Less(t, vecDist(align.Apply(h.Transform.Rot, r3.Vec{X: 1}), r3.Vec{Z: 1}), 1e-9)
	assert.InDelta(t, 1.0, mat.Det(h.Transform.Rot), 1e-9)
}

//TestBuild_SingleBondBestHole checks branch 3: one bond, several holes,
//the best-aligned hole (sign-flipped if needed) is aligned to the bond.
func TestBuild_SingleBondBestHole(t *testing.T) {
	top, err := molymod.NewTopology([]*molymod.Atom{
		{ID: 1, Symbol: "O", Pos: r3.Vec{}},
		{ID: 2, Symbol: "C", Pos: r3.Vec{X: 1.2}},
	})
	require.NoError(t, err)
	top.SetBonds([]molymod.Bond{{A: 1, B: 2}})

	//O with one neighbor routes to the generic linear class; both holes
	//point away from the bond, so the winner gets its sign flipped.
	holes := holeMap{molymod.Linear: {
		r3.Unit(r3.Vec{X: -1, Y: 0.01}),
		r3.Unit(r3.Vec{X: -1, Y: -1}), //larger dot against +X, wins
	}}
	b, err := molymod.NewBuilder(unitSettings(), holes, nil)
	require.NoError(t, err)
	res, err := b.Build(top)
	require.NoError(t, err)

	o := res.Atoms[0]
	assert.Equal(t, molymod.Linear, o.Class)
	assert.Equal(t, molymod.BranchBestHole, o.Branch)
	//the flipped winning hole lands exactly on the bond direction
	flipped := r3.Unit(r3.Vec{X: 1, Y: 1})
	assert.Less(t, vecDist(align.Apply(o.Transform.Rot, flipped), r3.Vec{X: 1}), 1e-9)
}

//TestBuild_MissingTemplateDegrades checks branches 4 and 5: an absent
//or failing hole set must never fail the build.
func TestBuild_MissingTemplateDegrades(t *testing.T) {
	top, err := molymod.NewTopology([]*molymod.Atom{
		{ID: 1, Symbol: "C", Pos: r3.Vec{}},
		{ID: 2, Symbol: "O", Pos: r3.Vec{X: 1.2}},
		{ID: 3, Symbol: "O", Pos: r3.Vec{X: -1.2}},
	})
	require.NoError(t, err)
	top.SetBonds([]molymod.Bond{{A: 1, B: 2}, {A: 1, B: 3}})

	b, err := molymod.NewBuilder(unitSettings(), failingHoles{}, nil)
	require.NoError(t, err)
	res, err := b.Build(top)
	require.NoError(t, err)
	for _, a := range res.Atoms {
		assert.Equal(t, molymod.BranchIdentity, a.Branch)
		assert.InDelta(t, 1.0, mat.Det(a.Transform.Rot), 1e-12)
	}

	//a lone hole caps the usable bond directions at one, so the
	//two-bond carbon drops into the single-bond branch
	b2, err := molymod.NewBuilder(unitSettings(), holeMap{
		molymod.Linear: {{Z: 1}},
	}, nil)
	require.NoError(t, err)
	res2, err := b2.Build(top)
	require.NoError(t, err)
	carbon := res2.Atoms[0]
	assert.Equal(t, molymod.BranchBestHole, carbon.Branch)
	assert.Less(t, vecDist(align.Apply(carbon.Transform.Rot, r3.Vec{Z: 1}), r3.Vec{X: 1}), 1e-9)
}

//TestBuild_BondAndCapPlacement pins the numeric scenario: atoms at
//(0,0,0) and (0,0,2), gap 0.2 each side, offsets 0, length factor 1
//give a cylinder of length 1.6 centered at (0,0,1); caps at offset 0.1
//sit at (0,0,0.3) and (0,0,1.7) facing opposite ways.
func TestBuild_BondAndCapPlacement(t *testing.T) {
	top, err := molymod.NewTopology([]*molymod.Atom{
		{ID: 1, Symbol: "C", Pos: r3.Vec{}},
		{ID: 2, Symbol: "C", Pos: r3.Vec{Z: 2}},
	})
	require.NoError(t, err)
	top.SetBonds([]molymod.Bond{{A: 1, B: 2}})

	set := unitSettings()
	set.BondGapEachSide = 0.2
	set.BondStartOffset = 0
	set.BondEndOffset = 0
	set.BondLengthFactor = 1.0
	set.UseCaps = true
	set.CapOffset = 0.1
	set.CapStartOffset = 0
	set.CapEndOffset = 0

	b, err := molymod.NewBuilder(set, holeMap{}, nil)
	require.NoError(t, err)
	res, err := b.Build(top)
	require.NoError(t, err)

	require.Len(t, res.Bonds, 1)
	cyl := res.Bonds[0]
	assert.InDelta(t, 1.6, cyl.Length, 1e-12)
	assert.Less(t, vecDist(cyl.Transform.Trans, r3.Vec{Z: 1.0}), 1e-12)
	//the cylinder's local Z tracks the bond direction
	assert.Less(t, vecDist(align.Apply(cyl.Transform.Rot, r3.Vec{Z: 1}), r3.Vec{Z: 1}), 1e-9)
	assert.InDelta(t, set.BondRadius*set.Scale/3.0, cyl.Radius, 1e-12)

	require.Len(t, res.Caps, 2)
	capA, capB := res.Caps[0], res.Caps[1]
	assert.Equal(t, 0, capA.End)
	assert.Equal(t, 1, capB.End)
	assert.Less(t, vecDist(capA.Transform.Trans, r3.Vec{Z: 0.3}), 1e-12)
	assert.Less(t, vecDist(capB.Transform.Trans, r3.Vec{Z: 1.7}), 1e-12)
	//caps face outward along +/- the bond direction
	assert.Less(t, vecDist(align.Apply(capA.Transform.Rot, r3.Vec{Z: 1}), r3.Vec{Z: 1}), 1e-9)
	assert.Less(t, vecDist(align.Apply(capB.Transform.Rot, r3.Vec{Z: 1}), r3.Vec{Z: -1}), 1e-9)
}

//TestBuild_OverlappingNeighborUsesSlot pins the neighbor-cut order: the
//hole budget is spent on neighbors before degenerate directions drop,
//so an overlapping first neighbor leaves a one-hole atom with no usable
//direction at all.
func TestBuild_OverlappingNeighborUsesSlot(t *testing.T) {
	top, err := molymod.NewTopology([]*molymod.Atom{
		{ID: 1, Symbol: "C", Pos: r3.Vec{}},
		{ID: 2, Symbol: "C", Pos: r3.Vec{}}, //right on top of atom 1
		{ID: 3, Symbol: "O", Pos: r3.Vec{X: 1.2}},
	})
	require.NoError(t, err)
	top.SetBonds([]molymod.Bond{{A: 1, B: 2}, {A: 1, B: 3}})

	b, err := molymod.NewBuilder(unitSettings(), holeMap{
		molymod.Linear: {{Z: 1}},
	}, nil)
	require.NoError(t, err)
	res, err := b.Build(top)
	require.NoError(t, err)
	assert.Equal(t, molymod.BranchIdentity, res.Atoms[0].Branch)
}

//TestBuild_ZeroLengthBondSkipped checks the degenerate-bond policy:
//skip, don't fail.
func TestBuild_ZeroLengthBondSkipped(t *testing.T) {
	top, err := molymod.NewTopology([]*molymod.Atom{
		{ID: 1, Symbol: "C", Pos: r3.Vec{X: 1}},
		{ID: 2, Symbol: "C", Pos: r3.Vec{X: 1}},
	})
	require.NoError(t, err)
	top.SetBonds([]molymod.Bond{{A: 1, B: 2}})

	b, err := molymod.NewBuilder(unitSettings(), holeMap{}, nil)
	require.NoError(t, err)
	res, err := b.Build(top)
	require.NoError(t, err)
	assert.Empty(t, res.Bonds)
	assert.Empty(t, res.Caps)
	assert.Len(t, res.Atoms, 2)
}

//TestBuild_ScaleAndCompact checks that atom translations carry the
//scaled, compacted position.
func TestBuild_ScaleAndCompact(t *testing.T) {
	top, err := molymod.NewTopology([]*molymod.Atom{
		{ID: 1, Symbol: "C", Pos: r3.Vec{X: 1, Y: -2, Z: 0.5}},
	})
	require.NoError(t, err)
	top.SetBonds(nil)

	set := molymod.DefaultSettings()
	set.Scale = 3.0
	set.CompactFactor = 0.5
	b, err := molymod.NewBuilder(set, holeMap{}, nil)
	require.NoError(t, err)
	res, err := b.Build(top)
	require.NoError(t, err)
	assert.Less(t, vecDist(res.Atoms[0].Transform.Trans, r3.Vec{X: 1.5, Y: -3, Z: 0.75}), 1e-12)
}

//TestBuild_Errors covers the fatal paths: invalid settings at
//construction, empty topology at build.
func TestBuild_Errors(t *testing.T) {
	bad := molymod.DefaultSettings()
	bad.Scale = -1
	_, err := molymod.NewBuilder(bad, holeMap{}, nil)
	assert.ErrorIs(t, err, molymod.ErrBadScale)

	b, err := molymod.NewBuilder(molymod.DefaultSettings(), holeMap{}, nil)
	require.NoError(t, err)
	_, err = b.Build(nil)
	assert.ErrorIs(t, err, molymod.ErrNoAtoms)
}
