/*
 * frames.go, part of gomolymod.
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

package align

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

const collinear = 1e-12 //squared-ish tolerance for parallel/antiparallel unit vectors

//RotationMatrix returns the 3x3 matrix of a unit quaternion, in
//column-vector convention.
func RotationMatrix(q quat.Number) *mat.Dense {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return mat.NewDense(3, 3, []float64{
		1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y),
		2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x),
		2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y),
	})
}

//normalize scales q to unit norm.
func normalize(q quat.Number) quat.Number {
	return quat.Scale(1/quat.Abs(q), q)
}

//axisAngle returns the unit quaternion rotating by angle radians around
//the unit axis given.
func axisAngle(axis r3.Vec, angle float64) quat.Number {
	s := math.Sin(angle / 2)
	return quat.Number{
		Real: math.Cos(angle / 2),
		Imag: axis.X * s,
		Jmag: axis.Y * s,
		Kmag: axis.Z * s,
	}
}

//perpendicular returns a unit vector perpendicular to the unit vector
//given, with a fixed, deterministic choice.
func perpendicular(v r3.Vec) r3.Vec {
	p := r3.Cross(v, r3.Vec{X: 1})
	if r3.Norm(p) <= collinear {
		p = r3.Cross(v, r3.Vec{Y: 1})
	}
	return r3.Unit(p)
}

//between returns the shortest-arc unit quaternion taking the unit vector
//src onto the unit vector dst (the half-angle construction). For the
//180-degree degenerate case (src == -dst) it rotates around a
//deterministic axis perpendicular to src; any such axis would do, but
//the choice must be stable and never NaN.
func between(src, dst r3.Vec) quat.Number {
	d := r3.Dot(src, dst)
	if d <= -1+1e-9 {
		ax := perpendicular(src)
		return quat.Number{Imag: ax.X, Jmag: ax.Y, Kmag: ax.Z} //180 degrees
	}
	c := r3.Cross(src, dst)
	return normalize(quat.Number{Real: 1 + d, Imag: c.X, Jmag: c.Y, Kmag: c.Z})
}

//Single returns the minimal (shortest-arc) rotation taking the unit
//vector src exactly onto the unit vector dst.
func Single(src, dst r3.Vec) *mat.Dense {
	return RotationMatrix(between(src, dst))
}

//DirectionalFrame returns the rotation orienting a template so that its
//local forward axis points along dir, rolled by rollDeg degrees around
//dir. It composes three rotations: forward onto the canonical Z axis,
//canonical Z onto dir, and the roll about dir, applied in that order
//(roll outermost). Both dir and forward must be unit vectors.
func DirectionalFrame(dir, forward r3.Vec, rollDeg float64) *mat.Dense {
	qPre := between(forward, r3.Vec{Z: 1})
	qAlign := between(r3.Vec{Z: 1}, dir)
	qRoll := axisAngle(dir, rollDeg*math.Pi/180)
	return RotationMatrix(quat.Mul(qRoll, quat.Mul(qAlign, qPre)))
}

//TrackFrame returns a rotation taking the local Z axis onto the unit
//vector dir. The remaining freedom (the roll around dir) is fixed by a
//deterministic "up" reference: world Z, or world Y when dir is within
//about a degree of the Z axis, so frames do not flip for directions
//near the reference. Meant for cylinders, where the roll is invisible.
func TrackFrame(dir r3.Vec) *mat.Dense {
	up := r3.Vec{Z: 1}
	if math.Abs(r3.Dot(dir, up)) > 0.9999 {
		up = r3.Vec{Y: 1}
	}
	x := r3.Unit(r3.Cross(up, dir))
	y := r3.Cross(dir, x)
	//columns are the images of the local axes
	return mat.NewDense(3, 3, []float64{
		x.X, y.X, dir.X,
		x.Y, y.Y, dir.Y,
		x.Z, y.Z, dir.Z,
	})
}
