/*
 * quaternion_test.go, part of gogist.
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

import (
	"math"
	"testing"
)

//The orientation quaternion must bring the molecular frame onto the lab
//frame: the head->H1 direction onto x, and the normal of the H1/H2 plane
//onto z.
func TestOrientationFrame(Te *testing.T) {
	o := [3]float64{1.0, -2.0, 0.5}
	h1 := [3]float64{1.7, -1.5, 1.1}
	h2 := [3]float64{0.3, -1.4, 0.2}
	q := orientation(o, h1, h2)
	if n := q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3]; math.Abs(n-1) > 1e-9 {
		Te.Fatalf("orientation quaternion not normalized: |q|^2 = %g", n)
	}
	a := normalize3([3]float64{h1[0] - o[0], h1[1] - o[1], h1[2] - o[2]})
	b := normalize3([3]float64{h2[0] - o[0], h2[1] - o[1], h2[2] - o[2]})
	ra := quatRotate(q, a)
	if math.Abs(ra[0]-1) > 1e-9 || math.Abs(ra[1]) > 1e-9 || math.Abs(ra[2]) > 1e-9 {
		Te.Errorf("head->H1 not mapped to x: %v", ra)
	}
	n := normalize3(cross3(a, b))
	rn := quatRotate(q, n)
	if math.Abs(rn[2]-1) > 1e-9 || math.Abs(rn[0]) > 1e-9 || math.Abs(rn[1]) > 1e-9 {
		Te.Errorf("plane normal not mapped to z: %v", rn)
	}
}

//A global rotation of both molecules must leave their relative angular
//distance unchanged.
func TestOrientationGlobalRotation(Te *testing.T) {
	o1 := [3]float64{0, 0, 0}
	h11 := [3]float64{0.9572, 0, 0}
	h12 := [3]float64{-0.2397, 0.9266, 0}
	o2 := [3]float64{0, 0, 0}
	h21 := [3]float64{0, 0.9572, 0}
	h22 := [3]float64{0.9266, -0.2397, 0}
	qa := orientation(o1, h11, h12)
	qb := orientation(o2, h21, h22)
	d := quatDist(qa[0], qa[1], qa[2], qa[3], qb[0], qb[1], qb[2], qb[3])
	//rotate everything by 2*acos(0.8) about an arbitrary axis
	ax := normalize3([3]float64{1, 2, 3})
	s := math.Sqrt(1 - 0.8*0.8)
	rot := [4]float64{0.8, ax[0] * s, ax[1] * s, ax[2] * s}
	qa2 := orientation(quatRotate(rot, o1), quatRotate(rot, h11), quatRotate(rot, h12))
	qb2 := orientation(quatRotate(rot, o2), quatRotate(rot, h21), quatRotate(rot, h22))
	d2 := quatDist(qa2[0], qa2[1], qa2[2], qa2[3], qb2[0], qb2[1], qb2[2], qb2[3])
	if math.Abs(d-d2) > 1e-9 {
		Te.Errorf("angular distance not rotation invariant: %g vs %g", d, d2)
	}
}

func TestQuatDist(Te *testing.T) {
	id := [4]float64{1, 0, 0, 0}
	for _, theta := range []float64{0.1, 0.5, 1.0, 2.0} {
		q := [4]float64{math.Cos(theta / 2), 0, 0, math.Sin(theta / 2)}
		d := quatDist(id[0], id[1], id[2], id[3], q[0], q[1], q[2], q[3])
		if math.Abs(d-theta) > 1e-10 {
			Te.Errorf("distance to a %g rotation: got %g", theta, d)
		}
	}
	//q and -q are the same rotation
	q := [4]float64{0.5, 0.5, 0.5, 0.5}
	d := quatDist(q[0], q[1], q[2], q[3], -q[0], -q[1], -q[2], -q[3])
	if d != 0 {
		Te.Errorf("double cover not folded: %g", d)
	}
}
