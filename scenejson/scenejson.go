/*
 * scenejson.go, part of gomolymod.
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

//Package scenejson is the JSON boundary of gomolymod: it serializes
//build results for an external scene-building program, which may well
//not be written in Go, and reads hole-template documents produced by
//the asset pipeline. It plays the role the template library and the
//scene graph play inside a 3D host application.
package scenejson

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	molymod "github.com/molbuild/gomolymod"
)

//Transform is a ready-to-serialize rigid transform: the rotation saved
//row-major as 9 floats, plus the translation.
type Transform struct {
	Rotation    [9]float64 `json:"rotation"`
	Translation [3]float64 `json:"translation"`
}

func newTransform(t molymod.RigidTransform) Transform {
	var out Transform
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.Rotation[3*i+j] = t.Rot.At(i, j)
		}
	}
	out.Translation = [3]float64{t.Trans.X, t.Trans.Y, t.Trans.Z}
	return out
}

//AtomJSON is a ready-to-serialize atom placement.
type AtomJSON struct {
	ID        int       `json:"id"`
	Symbol    string    `json:"symbol"`
	Template  string    `json:"template"`
	Branch    string    `json:"branch"`
	Transform Transform `json:"transform"`
}

//BondJSON is a ready-to-serialize bond cylinder placement.
type BondJSON struct {
	A         int       `json:"a"`
	B         int       `json:"b"`
	Transform Transform `json:"transform"`
	Length    float64   `json:"length"`
	Radius    float64   `json:"radius"`
	Vertices  int       `json:"vertices"`
}

//CapJSON is a ready-to-serialize bond cap placement.
type CapJSON struct {
	A         int       `json:"a"`
	B         int       `json:"b"`
	End       int       `json:"end"`
	Transform Transform `json:"transform"`
	Radius    float64   `json:"radius"`
	Length    float64   `json:"length"`
}

//Scene is one serialized build. BuildID is a fresh UUID so downstream
//tooling can tell rebuilds of the same structure apart.
type Scene struct {
	BuildID string     `json:"build_id"`
	Atoms   []AtomJSON `json:"atoms"`
	Bonds   []BondJSON `json:"bonds"`
	Caps    []CapJSON  `json:"caps,omitempty"`
}

//FromResult converts a build result into its serializable form.
func FromResult(res *molymod.Result) *Scene {
	s := &Scene{
		BuildID: uuid.NewString(),
		Atoms:   make([]AtomJSON, 0, len(res.Atoms)),
		Bonds:   make([]BondJSON, 0, len(res.Bonds)),
	}
	for _, a := range res.Atoms {
		s.Atoms = append(s.Atoms, AtomJSON{
			ID:        a.Atom.ID,
			Symbol:    a.Atom.Symbol,
			Template:  a.Class.TemplateKey(),
			Branch:    a.Branch.String(),
			Transform: newTransform(a.Transform),
		})
	}
	for _, b := range res.Bonds {
		s.Bonds = append(s.Bonds, BondJSON{
			A:         b.Bond.A,
			B:         b.Bond.B,
			Transform: newTransform(b.Transform),
			Length:    b.Length,
			Radius:    b.Radius,
			Vertices:  b.Vertices,
		})
	}
	for _, c := range res.Caps {
		s.Caps = append(s.Caps, CapJSON{
			A:         c.Bond.A,
			B:         c.Bond.B,
			End:       c.End,
			Transform: newTransform(c.Transform),
			Radius:    c.Radius,
			Length:    c.Length,
		})
	}
	return s
}

//Write serializes the scene to w, indented so the other side of the
//boundary (often a human first) can read it.
func (s *Scene) Write(w io.Writer) error {
	buf := bufio.NewWriter(w)
	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("scenejson: %w", err)
	}
	return buf.Flush()
}

//HoleFile is a hole-template document: a map from template keys
//(Atom_sp3 and friends) to raw hole points as [x,y,z] triplets. It
//implements molymod.HoleProvider; vectors are handed over raw, the
//builder does the normalization and filtering.
type HoleFile map[string][][3]float64

//ReadHoles loads a hole-template document from a JSON file.
func ReadHoles(name string) (HoleFile, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadHolesFrom(f)
}

//ReadHolesFrom loads a hole-template document from r.
func ReadHolesFrom(r io.Reader) (HoleFile, error) {
	var hf HoleFile
	if err := json.NewDecoder(bufio.NewReader(r)).Decode(&hf); err != nil {
		return nil, fmt.Errorf("scenejson: decoding holes: %w", err)
	}
	return hf, nil
}

//HoleVectors implements molymod.HoleProvider. A class absent from the
//document yields an empty set, which the builder treats as a missing
//template rather than an error.
func (h HoleFile) HoleVectors(class molymod.GeometryClass) ([]r3.Vec, error) {
	raw := h[class.TemplateKey()]
	out := make([]r3.Vec, 0, len(raw))
	for _, p := range raw {
		out = append(out, r3.Vec{X: p[0], Y: p[1], Z: p[2]})
	}
	return out, nil
}
