/*
 * classify.go, part of gomolymod.
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

//GeometryClass is the coordination geometry assigned to an atom, which
//selects the template (and with it, the hole vector set) used to place it.
type GeometryClass int

const (
	Linear GeometryClass = iota //sp
	TrigonalPlanar              //sp2
	Tetrahedral                 //sp3
	Bent
	Octahedral //sp3d2
)

//String returns the short hybridization-style label of the class.
func (g GeometryClass) String() string {
	switch g {
	case Linear:
		return "sp"
	case TrigonalPlanar:
		return "sp2"
	case Tetrahedral:
		return "sp3"
	case Bent:
		return "bent"
	case Octahedral:
		return "sp3d2"
	}
	return "unknown"
}

//TemplateKey returns the name under which the template assets for this
//class (the template itself and its hole markers) are looked up.
func (g GeometryClass) TemplateKey() string {
	return "Atom_" + g.String()
}

//Classify maps an element symbol and its neighbor count to a geometry
//class. It is total: anything not covered by the element-specific rules
//falls through to a neighbor-count-only default. The rule order matters
//and the first match wins.
//The nn==5 and nn>=6 cases of the generic fallback both map to
//Octahedral on purpose; that is how the reference templates are meant
//to be (ab)used for 5-coordinate centers.
func Classify(element string, nn int) GeometryClass {
	e := element
	switch {
	case nn <= 1 && (e == "H" || halogens[e]):
		return Linear
	case nn == 2 && (e == "O" || e == "S" || e == "Se" || e == "Te"):
		return Bent
	case nn == 3 && (e == "N" || e == "P" || e == "As" || e == "Sb"):
		return Tetrahedral
	case e == "S" && nn >= 6:
		return Octahedral
	case e == "C":
		switch {
		case nn >= 4:
			return Tetrahedral
		case nn == 3:
			return TrigonalPlanar
		default: //nn <= 2
			return Linear
		}
	case nn >= 6:
		return Octahedral
	case nn == 5:
		return Octahedral
	case nn == 4:
		return Tetrahedral
	case nn == 3:
		return TrigonalPlanar
	}
	return Linear
}
