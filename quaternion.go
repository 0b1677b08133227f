/*
 * quaternion.go, part of gogist.
 *
 * Copyright 2023 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

package gist

import "math"

//The orientation quaternion encodes the rigid-body orientation of a solvent
//molecule relative to the lab frame, given the positions of its three rigid
//atoms (head, H1, H2 for water). It is built from two successive rotations:
//one taking the lab x axis onto the head->H1 unit vector, and one aligning
//the normal of the (rotated) H1/H2 plane with the lab z axis. The signed
//half-angle convention follows the original GIST code: the half angle is
//positive iff (v x u).v exceeds a small positive tolerance.

var xLab = [3]float64{1, 0, 0}
var zLab = [3]float64{0, 0, 1}

func dot3(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross3(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

//normalize3 scales v to unit length and returns its original norm. A
//near-zero vector is replaced by the lab z axis, which only happens for the
//rotation axis of a zero-angle rotation, where the axis is irrelevant.
func normalize3(v [3]float64) [3]float64 {
	n := math.Sqrt(dot3(v, v))
	if n < small {
		return zLab
	}
	return [3]float64{v[0] / n, v[1] / n, v[2] / n}
}

//quatRotate applies the unit quaternion q to the vector v.
func quatRotate(q [4]float64, v [3]float64) [3]float64 {
	w, x, y, z := q[0], q[1], q[2], q[3]
	var r [3]float64
	r[0] = ((w*w+x*x)-(y*y+z*z))*v[0] + 2*(x*y+w*z)*v[1] + 2*(x*z-w*y)*v[2]
	r[1] = 2*(x*y-w*z)*v[0] + (w*w-x*x+y*y-z*z)*v[1] + 2*(y*z+w*x)*v[2]
	r[2] = 2*(x*z+w*y)*v[0] + 2*(y*z-w*x)*v[1] + (w*w-x*x-y*y+z*z)*v[2]
	return r
}

//quatMul is the Hamilton product a*b.
func quatMul(a, b [4]float64) [4]float64 {
	return [4]float64{
		a[0]*b[0] - a[1]*b[1] - a[2]*b[2] - a[3]*b[3],
		a[0]*b[1] + a[1]*b[0] + a[2]*b[3] - a[3]*b[2],
		a[0]*b[2] - a[1]*b[3] + a[2]*b[0] + a[3]*b[1],
		a[0]*b[3] + a[1]*b[2] - a[2]*b[1] + a[3]*b[0],
	}
}

//orientation builds the orientation quaternion (w,x,y,z) from the lab-frame
//positions of the head atom and the two rigid hydrogens.
func orientation(o, h1, h2 [3]float64) [4]float64 {
	a := normalize3([3]float64{h1[0] - o[0], h1[1] - o[1], h1[2] - o[2]})
	b := normalize3([3]float64{h2[0] - o[0], h2[1] - o[1], h2[2] - o[2]})

	//First rotation: lab x onto a.
	sar := cross3(a, xLab)
	ax1 := normalize3(sar)
	theta := math.Acos(dot3(xLab, a))
	if dot3(sar, a) > small {
		theta /= 2.0
	} else {
		theta /= -2.0
	}
	sin := math.Sin(theta)
	q1 := [4]float64{math.Cos(theta), ax1[0] * sin, ax1[1] * sin, ax1[2] * sin}

	aR := quatRotate(q1, a)
	bR := quatRotate(q1, b)

	//Second rotation: the a/b plane normal onto lab z, about the x axis.
	ar2 := normalize3(cross3(aR, bR))
	theta = math.Acos(dot3(ar2, zLab))
	sar = cross3(ar2, zLab)
	if dot3(sar, aR) < 0 {
		theta /= 2.0
	} else {
		theta /= -2.0
	}
	sin = math.Sin(theta)
	q2 := [4]float64{math.Cos(theta), sin, 0, 0} //axis is lab x

	return quatMul(q1, q2)
}

//quatDist is the angular distance 2*acos(|a.b|) between two orientations.
//The absolute value folds the double cover of rotation space; the dot
//product is clamped so roundoff cannot push acos out of domain.
func quatDist(aw, ax, ay, az, bw, bx, by, bz float64) float64 {
	d := math.Abs(aw*bw + ax*bx + ay*by + az*bz)
	if d > 1 {
		d = 1
	}
	return 2.0 * math.Acos(d)
}
