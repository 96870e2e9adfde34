/*
 * kabsch.go, part of gomolymod.
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
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	//ErrSizeMismatch is returned when the from and to sequences differ
	//in length.
	ErrSizeMismatch = errors.New("align: from and to vector sets differ in length")
	//ErrTooFewVectors is returned when less than two vector pairs are
	//given; a single pair is underdetermined and callers should use
	//Single instead.
	ErrTooFewVectors = errors.New("align: need at least two vector pairs")
	//ErrSVDFailed is returned when the SVD of the cross-covariance
	//does not converge. It should not happen for finite input.
	ErrSVDFailed = errors.New("align: SVD of cross-covariance failed")
)

//Identity returns a 3x3 identity rotation.
func Identity() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
}

//Apply returns R*v for a 3x3 rotation R.
func Apply(R *mat.Dense, v r3.Vec) r3.Vec {
	return r3.Vec{
		X: R.At(0, 0)*v.X + R.At(0, 1)*v.Y + R.At(0, 2)*v.Z,
		Y: R.At(1, 0)*v.X + R.At(1, 1)*v.Y + R.At(1, 2)*v.Z,
		Z: R.At(2, 0)*v.X + R.At(2, 1)*v.Y + R.At(2, 2)*v.Z,
	}
}

//Kabsch returns the proper rotation R minimizing the sum of squared
//residuals |R*from_i - to_i|^2 over the paired unit vectors given.
//It builds the cross-covariance H = sum from_i (x) to_i, takes its SVD
//H = U S Vt and forms R = V Ut. If that candidate is a reflection
//(negative determinant), the last column of V is negated and R
//recomputed, so the result always has determinant +1.
//At least two non-collinear pairs are needed for the fit to be well
//conditioned; with exactly one pair use Single.
func Kabsch(from, to []r3.Vec) (*mat.Dense, error) {
	if len(from) != len(to) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrSizeMismatch, len(from), len(to))
	}
	if len(from) < 2 {
		return nil, ErrTooFewVectors
	}
	h := mat.NewDense(3, 3, nil)
	for k := range from {
		f := [3]float64{from[k].X, from[k].Y, from[k].Z}
		t := [3]float64{to[k].X, to[k].Y, to[k].Z}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				h.Set(i, j, h.At(i, j)+f[i]*t[j])
			}
		}
	}
	var svd mat.SVD
	if ok := svd.Factorize(h, mat.SVDFull); !ok {
		return nil, ErrSVDFailed
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	r := mat.NewDense(3, 3, nil)
	r.Mul(&v, u.T())
	if mat.Det(r) < 0 {
		//The unconstrained optimum is a reflection; flip the axis of
		//the smallest singular value (last column of V) to get the
		//best proper rotation instead.
		for i := 0; i < 3; i++ {
			v.Set(i, 2, -v.At(i, 2))
		}
		r.Mul(&v, u.T())
	}
	return r, nil
}
