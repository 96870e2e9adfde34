/*
 * config.go, part of gomolymod.
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

//Errors returned by Settings.Validate.
var (
	ErrBadScale        = errors.New("molymod: scale must be positive")
	ErrBadCompact      = errors.New("molymod: compact factor must be in (0,2]")
	ErrBadBondGeometry = errors.New("molymod: invalid bond geometry settings")
	ErrBadCapGeometry  = errors.New("molymod: invalid cap geometry settings")
	ErrBadAxis         = errors.New("molymod: forward axis out of range")
)

//Axis labels one of the six canonical template forward directions.
type Axis int

const (
	XPlus Axis = iota
	XMinus
	YPlus
	YMinus
	ZPlus
	ZMinus
)

var axisNames = [...]string{"X+", "X-", "Y+", "Y-", "Z+", "Z-"}

var axisVecs = [...]r3.Vec{
	{X: 1}, {X: -1},
	{Y: 1}, {Y: -1},
	{Z: 1}, {Z: -1},
}

func (a Axis) valid() bool {
	return a >= XPlus && a <= ZMinus
}

func (a Axis) String() string {
	if !a.valid() {
		return "invalid"
	}
	return axisNames[a]
}

//Vec returns the unit vector the axis stands for.
func (a Axis) Vec() r3.Vec {
	if !a.valid() {
		panic("invalid axis")
	}
	return axisVecs[a]
}

//ParseAxis parses one of the labels X+, X-, Y+, Y-, Z+, Z-.
func ParseAxis(s string) (Axis, error) {
	for i, n := range axisNames {
		if n == s {
			return Axis(i), nil
		}
	}
	return XPlus, fmt.Errorf("molymod: unknown axis label %q", s)
}

//MarshalText implements encoding.TextMarshaler, so axes round-trip
//through TOML and JSON configuration.
func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

//UnmarshalText implements encoding.TextUnmarshaler.
func (a *Axis) UnmarshalText(text []byte) error {
	ax, err := ParseAxis(string(text))
	if err != nil {
		return err
	}
	*a = ax
	return nil
}

//Settings holds the per-build configuration. The zero value is not
//useful; start from DefaultSettings and call Validate before building.
//All lengths are in scene units, after the input coordinates have had
//Scale and CompactFactor applied.
type Settings struct {
	Scale         float64 `toml:"scale"`
	CompactFactor float64 `toml:"compact_factor"`

	//Bond cylinders
	BondRadius       float64 `toml:"bond_radius"`
	BondGapEachSide  float64 `toml:"bond_gap_each_side"`
	BondStartOffset  float64 `toml:"bond_start_offset"`
	BondEndOffset    float64 `toml:"bond_end_offset"`
	BondLengthFactor float64 `toml:"bond_length_factor"`
	BondVertices     int     `toml:"bond_vertices"`

	//Bond end caps
	UseCaps        bool    `toml:"use_caps"`
	CapScale       float64 `toml:"cap_scale"`
	CapRadius      float64 `toml:"cap_radius"`
	CapLength      float64 `toml:"cap_length"`
	CapRollDeg     float64 `toml:"cap_roll_deg"`
	CapForwardAxis Axis    `toml:"cap_forward_axis"`
	CapOffset      float64 `toml:"cap_offset"`
	CapStartOffset float64 `toml:"cap_start_offset"`
	CapEndOffset   float64 `toml:"cap_end_offset"`

	//Hydrogens and halogens
	MonovalentForwardAxis Axis    `toml:"monovalent_forward_axis"`
	MonovalentRollDeg     float64 `toml:"monovalent_roll_deg"`

	Debug bool `toml:"debug"`
}

//DefaultSettings returns the reference defaults, matching the original
//Molymod template library conventions.
func DefaultSettings() *Settings {
	return &Settings{
		Scale:                 3.0,
		CompactFactor:         1.0,
		BondRadius:            0.1,
		BondGapEachSide:       0.2,
		BondStartOffset:       0.0,
		BondEndOffset:         0.0,
		BondLengthFactor:      1.0,
		BondVertices:          30,
		UseCaps:               false,
		CapScale:              1.0,
		CapRadius:             0.06,
		CapLength:             0.20,
		CapRollDeg:            0.0,
		CapForwardAxis:        ZPlus,
		CapOffset:             0.10,
		CapStartOffset:        0.0,
		CapEndOffset:          0.0,
		MonovalentForwardAxis: XPlus,
		MonovalentRollDeg:     0.0,
		Debug:                 false,
	}
}

//Validate checks the settings for values the placement math cannot work
//with. It does not mutate the receiver.
func (s *Settings) Validate() error {
	if s.Scale <= 0 {
		return fmt.Errorf("%w: got %v", ErrBadScale, s.Scale)
	}
	if s.CompactFactor <= 0 || s.CompactFactor > 2 {
		return fmt.Errorf("%w: got %v", ErrBadCompact, s.CompactFactor)
	}
	if s.BondRadius <= 0 || s.BondGapEachSide < 0 || s.BondLengthFactor <= 0 || s.BondVertices < 3 {
		return fmt.Errorf("%w: radius %v, gap %v, length factor %v, vertices %d",
			ErrBadBondGeometry, s.BondRadius, s.BondGapEachSide, s.BondLengthFactor, s.BondVertices)
	}
	if s.UseCaps && (s.CapRadius <= 0 || s.CapLength <= 0 || s.CapScale <= 0 || s.CapOffset < 0) {
		return fmt.Errorf("%w: radius %v, length %v, scale %v, offset %v",
			ErrBadCapGeometry, s.CapRadius, s.CapLength, s.CapScale, s.CapOffset)
	}
	if !s.CapForwardAxis.valid() || !s.MonovalentForwardAxis.valid() {
		return fmt.Errorf("%w: cap %d, monovalent %d",
			ErrBadAxis, s.CapForwardAxis, s.MonovalentForwardAxis)
	}
	return nil
}
