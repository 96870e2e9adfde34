/*
 * doc.go, part of gomolymod.
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

/*Package molymod builds ball-and-stick molecular models by fitting pre-made
atom templates to the bond geometry of a parsed structure.

Each atom template exposes a fixed set of "hole" directions, the idealized
bonding directions of its coordination class. Given the real bond directions
around an atom, the package computes the rigid rotation that best maps holes
onto bonds, and the placement transforms for the bond cylinders and their
optional end caps.


	**Capabilities**

    Reads XYZ files, plain or gzip-compressed.

    Infers bonds from interatomic distances and covalent radii,
	storing each bond once in canonical (smaller id first) form.

    Classifies atoms into coordination geometry classes (sp, sp2,
	sp3, bent, sp3d2) from the element and neighbor count.

    Matches template holes to bond directions by minimum-cost
	bipartite assignment (see the assign subpackage).

    Computes best-fit proper rotations by the Kabsch algorithm,
	with quaternion fallbacks for single-direction cases (see the
	align subpackage).

    Emits one rigid transform per atom, per bond cylinder and,
	optionally, per bond cap, for an external scene builder to
	consume (see the scenejson subpackage).

The package does not render anything, nor does it talk to any particular 3D
host; scene construction, materials and persistence are left to whatever
consumes the emitted transforms.
*/
package molymod
