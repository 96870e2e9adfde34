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

//Package align computes rigid rotations aligning sets of directions.
//
//Kabsch solves the least-squares fit of two equally long, paired
//sequences of unit vectors, always returning a proper rotation
//(determinant +1, never a reflection). Single returns the shortest-arc
//rotation between two single directions, DirectionalFrame the oriented
//frame of a template whose forward axis must point along a direction
//with a given roll, and TrackFrame a stable frame for cylinders.
//
//Rotations are returned as 3x3 *mat.Dense matrices in column-vector
//convention: rotated = R * v.
package align
