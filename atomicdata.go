/*
 * atomicdata.go, part of gomolymod.
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

//A map for assigning covalent radii to elements
//Values from Cordero et al., 2008 (DOI:10.1039/B801115J)
//Note that just common "bio-elements" are present
var symbolCovrad = map[string]float64{
	"H":  0.4, //0.31. H has at most one bond anyway, so a longer radius is harmless: the extra bonds get pruned later.
	"C":  0.76, //the sp3 radius
	"O":  0.66,
	"N":  0.71,
	"P":  1.07,
	"S":  1.05,
	"Se": 1.2,
	"Te": 1.38,
	"K":  2.03,
	"Ca": 1.76,
	"Mg": 1.41,
	"Cl": 1.02,
	"Na": 1.66,
	"Cu": 1.32,
	"Zn": 1.22,
	"Co": 1.5,  //hs
	"Fe": 1.52, //hs
	"Mn": 1.61, //hs
	"Cr": 1.39,
	"Si": 1.11,
	"Be": 0.96,
	"B":  0.84,
	"F":  0.57,
	"Br": 1.2,
	"I":  1.39,
	"As": 1.19,
	"Sb": 1.39,
}

//A map for checking that atoms don't get too many bonds
//assigned. A value of 0 means undefined, i.e. that the
//atom shouldn't be checked for max bonds.
var symbolMaxBonds = map[string]int{
	"H":  1, //this is the only one truly important.
	"C":  4,
	"O":  2,
	"N":  0, //undefined
	"P":  0,
	"S":  0,
	"Se": 0,
	"Be": 0,
	"B":  0,
	"F":  1,
	"Cl": 1,
	"Br": 1,
	"I":  1,
}

//The elements treated as halogens by the classifier and by the
//monovalent placement branch.
var halogens = map[string]bool{
	"F":  true,
	"Cl": true,
	"Br": true,
	"I":  true,
}

//IsHalogen returns whether the element symbol given is a halogen.
func IsHalogen(symbol string) bool {
	return halogens[symbol]
}

//IsMonovalent returns whether symbol belongs to the elements that get the
//special single-bond orientation treatment (hydrogen and the halogens).
func IsMonovalent(symbol string) bool {
	return symbol == "H" || halogens[symbol]
}
