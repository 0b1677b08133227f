/*
 * entropy_test.go, part of gogist.
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

func TestSixVolume(Te *testing.T) {
	//for small radii the exact volume must converge to the small-angle
	//limit pi*r^6/48
	for _, r := range []float64{0.001, 0.01, 0.05} {
		exact := sixVolume(r, true)
		limit := sixVolume(r, false)
		if math.Abs(exact/limit-1.0) > 1e-4 {
			Te.Errorf("r=%g: exact %g vs limit %g", r, exact, limit)
		}
	}
	//(1-cos w) <= w^2/2, so the exact volume can never exceed the limit
	for _, r := range []float64{0.5, 1.0, 2.0, 3.0, 4.0} {
		if sixVolume(r, true) > sixVolume(r, false) {
			Te.Errorf("r=%g: exact volume above the small-angle limit", r)
		}
	}
	//volume must keep growing with r, also past the pi angular cap
	last := 0.0
	for r := 0.5; r < 6; r += 0.5 {
		v := sixVolume(r, true)
		if v <= last {
			Te.Errorf("six-volume not monotonic at r=%g", r)
		}
		last = v
	}
}

//entropyEngine builds an engine with an empty 3x3x3 grid of 1 A voxels,
//ready to have samples injected.
func entropyEngine(Te *testing.T, exact bool) *Engine {
	o := DefaultOptions()
	o.GridDim(3, 3, 3)
	o.GridSpacing(1.0)
	o.SkipEnergy(true)
	o.ExactNnVolume(exact)
	o.Cpus(2)
	E, err := NewEngine(o)
	if err != nil {
		Te.Fatal(err)
	}
	return E
}

func TestOrientVoxel(Te *testing.T) {
	E := entropyEngine(Te, false)
	phi := 0.5
	q := []float64{
		1, 0, 0, 0,
		math.Cos(phi / 2), math.Sin(phi / 2), 0, 0,
	}
	//each sample's nearest neighbor is the other one, at angular
	//distance phi; legacy formula
	want := 2.0 * math.Log(phi*phi*phi*2.0/(3.0*2.0*math.Pi))
	got := E.orientVoxel(q)
	if math.Abs(got-want) > 1e-10 {
		Te.Errorf("orientational log-term sum: want %g, got %g", want, got)
	}
	if E.orientVoxel(q[:4]) != 0 {
		Te.Errorf("a single sample cannot have an orientational term")
	}
	//two identical orientations: zero distance, sample skipped
	same := []float64{1, 0, 0, 0, 1, 0, 0, 0}
	if E.orientVoxel(same) != 0 {
		Te.Errorf("coincident orientations should contribute nothing")
	}
}

func TestTransVoxel(Te *testing.T) {
	E := entropyEngine(Te, false)
	E.nframes = 1
	v := E.grid.Index(1, 1, 1) //the only interior voxel
	d := 0.3
	phi := 0.2
	E.nWaters[v] = 2
	E.voxXYZ[v] = []float64{0.2, 0.2, 0.2, 0.2 + d, 0.2, 0.2}
	E.voxQ[v] = []float64{
		1, 0, 0, 0,
		math.Cos(phi / 2), 0, 0, math.Sin(phi / 2),
	}
	strans, ssix, cnt := E.transVoxel(v, 1, 1, 1)
	if cnt != 2 {
		Te.Fatalf("both waters should contribute, got %d", cnt)
	}
	rho := E.o.bulkDens
	wantTrans := 2.0 * math.Log(sphereVolume(d)*rho)
	if math.Abs(strans-wantTrans) > 1e-10 {
		Te.Errorf("translational sum: want %g, got %g", wantTrans, strans)
	}
	nns := math.Sqrt(d*d + phi*phi)
	wantSix := 2.0 * math.Log(sixVolume(nns, false)*rho)
	if math.Abs(ssix-wantSix) > 1e-10 {
		Te.Errorf("six-dimensional sum: want %g, got %g", wantSix, ssix)
	}
}

//A neighbor in an adjacent voxel must be seen by the one-layer search.
func TestTransVoxelLayers(Te *testing.T) {
	E := entropyEngine(Te, false)
	E.nframes = 1
	v := E.grid.Index(1, 1, 1)
	v2 := E.grid.Index(2, 1, 1)
	E.nWaters[v] = 1
	E.voxXYZ[v] = []float64{0.4, 0, 0}
	E.voxQ[v] = []float64{1, 0, 0, 0}
	E.nWaters[v2] = 1
	E.voxXYZ[v2] = []float64{0.6, 0, 0}
	E.voxQ[v2] = []float64{1, 0, 0, 0}
	strans, _, cnt := E.transVoxel(v, 1, 1, 1)
	if cnt != 1 {
		Te.Fatalf("the neighbor in the next voxel was not found")
	}
	want := math.Log(sphereVolume(0.2) * E.o.bulkDens)
	if math.Abs(strans-want) > 1e-9 {
		Te.Errorf("cross-voxel NN distance: want %g, got %g", want, strans)
	}
}

//Waters in boundary voxels must not enter the translational or 6D
//estimates, as their search volume would be truncated.
func TestEntropyBoundarySkip(Te *testing.T) {
	E := entropyEngine(Te, true)
	E.nframes = 1
	corner := E.grid.Index(0, 0, 0)
	E.nWaters[corner] = 2
	E.voxXYZ[corner] = []float64{-1.4, -1.4, -1.4, -1.2, -1.4, -1.4}
	E.voxQ[corner] = []float64{1, 0, 0, 0, 0, 1, 0, 0}
	t := E.estimateEntropy()
	if t.nwts != 0 {
		Te.Errorf("boundary waters counted in the translational estimate")
	}
	for v, s := range t.trans {
		if s != 0 || t.six[v] != 0 {
			Te.Errorf("nonzero translational/6D term in voxel %d", v)
		}
	}
	//the orientational estimate has no boundary restriction
	if t.orient[corner] == 0 {
		Te.Errorf("orientational term missing for the boundary voxel")
	}
}
