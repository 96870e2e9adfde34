/*
 * config_test.go, part of gomolymod.
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
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	molymod "github.com/molbuild/gomolymod"
)

func TestDefaultSettings_Validate(t *testing.T) {
	assert.NoError(t, molymod.DefaultSettings().Validate())
}

func TestSettings_ValidateErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*molymod.Settings)
		want   error
	}{
		{"negative scale", func(s *molymod.Settings) { s.Scale = -1 }, molymod.ErrBadScale},
		{"zero scale", func(s *molymod.Settings) { s.Scale = 0 }, molymod.ErrBadScale},
		{"zero compact", func(s *molymod.Settings) { s.CompactFactor = 0 }, molymod.ErrBadCompact},
		{"huge compact", func(s *molymod.Settings) { s.CompactFactor = 2.5 }, molymod.ErrBadCompact},
		{"zero bond radius", func(s *molymod.Settings) { s.BondRadius = 0 }, molymod.ErrBadBondGeometry},
		{"negative gap", func(s *molymod.Settings) { s.BondGapEachSide = -0.1 }, molymod.ErrBadBondGeometry},
		{"zero length factor", func(s *molymod.Settings) { s.BondLengthFactor = 0 }, molymod.ErrBadBondGeometry},
		{"too few vertices", func(s *molymod.Settings) { s.BondVertices = 2 }, molymod.ErrBadBondGeometry},
		{"bad cap radius", func(s *molymod.Settings) { s.UseCaps = true; s.CapRadius = 0 }, molymod.ErrBadCapGeometry},
		{"negative cap offset", func(s *molymod.Settings) { s.UseCaps = true; s.CapOffset = -0.1 }, molymod.ErrBadCapGeometry},
		{"out-of-range cap axis", func(s *molymod.Settings) { s.CapForwardAxis = molymod.Axis(9) }, molymod.ErrBadAxis},
		{"out-of-range monovalent axis", func(s *molymod.Settings) { s.MonovalentForwardAxis = molymod.Axis(-1) }, molymod.ErrBadAxis},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := molymod.DefaultSettings()
			c.mutate(s)
			assert.ErrorIs(t, s.Validate(), c.want)
		})
	}
	//cap values are only checked when caps are on
	s := molymod.DefaultSettings()
	s.CapRadius = 0
	assert.NoError(t, s.Validate())
}

func TestAxis_VecAndLabels(t *testing.T) {
	want := map[molymod.Axis]r3.Vec{
		molymod.XPlus:  {X: 1},
		molymod.XMinus: {X: -1},
		molymod.YPlus:  {Y: 1},
		molymod.YMinus: {Y: -1},
		molymod.ZPlus:  {Z: 1},
		molymod.ZMinus: {Z: -1},
	}
	for ax, v := range want {
		assert.Equal(t, v, ax.Vec())
		parsed, err := molymod.ParseAxis(ax.String())
		require.NoError(t, err)
		assert.Equal(t, ax, parsed)
	}
	_, err := molymod.ParseAxis("W+")
	assert.Error(t, err)
}

func TestSettings_TOMLRoundTrip(t *testing.T) {
	src := `
scale = 2.5
compact_factor = 0.8
bond_radius = 0.15
use_caps = true
cap_forward_axis = "Y-"
monovalent_forward_axis = "Z+"
monovalent_roll_deg = 45.0
`
	s := molymod.DefaultSettings()
	_, err := toml.Decode(src, s)
	require.NoError(t, err)
	assert.Equal(t, 2.5, s.Scale)
	assert.Equal(t, 0.8, s.CompactFactor)
	assert.Equal(t, 0.15, s.BondRadius)
	assert.True(t, s.UseCaps)
	assert.Equal(t, molymod.YMinus, s.CapForwardAxis)
	assert.Equal(t, molymod.ZPlus, s.MonovalentForwardAxis)
	assert.Equal(t, 45.0, s.MonovalentRollDeg)
	//untouched keys keep their defaults
	assert.Equal(t, 30, s.BondVertices)
	require.NoError(t, s.Validate())

	_, err = toml.Decode(`cap_forward_axis = "sideways"`, molymod.DefaultSettings())
	assert.Error(t, err)
}
