/*
 * entropy.go, part of gogist.
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

//Nearest-neighbor entropy estimators, run once over the accumulated
//per-voxel samples after the last frame. Three estimates per voxel:
//orientational (quaternion distances within the voxel), translational
//(spatial distances over the surrounding voxel layers) and the combined
//six-dimensional one. The per-voxel sums of the log terms are kept raw
//here; the Euler-Mascheroni bias correction and the kT prefactor are
//applied at normalization.

//distFloor keeps a coincident sample pair from producing a -Inf log term.
const distFloor = 1e-10

//entropyTotals carries the per-voxel log-term sums plus the count of
//waters that took part in the translational search (boundary voxels are
//excluded from it, so this differs from the total water count).
type entropyTotals struct {
	orient   []float64
	trans    []float64
	six      []float64
	transCnt []int //waters per voxel that found a neighbor
	nwts     int
}

//sphereVolume is the volume of a 3D ball.
func sphereVolume(r float64) float64 {
	return 4.0 * math.Pi * r * r * r / 3.0
}

//sixVolume is the volume of a ball of radius r in the combined
//translation-orientation space, with the orientational measure scaled so
//the small-radius limit is pi*r^6/48. exact evaluates the volume by
//quadrature, which matters once r is not small against pi; otherwise the
//small-angle limit is used, matching the legacy estimator.
func sixVolume(r float64, exact bool) float64 {
	if !exact {
		r2 := r * r
		return math.Pi * r2 * r2 * r2 / 48.0
	}
	upper := r
	if upper > math.Pi {
		upper = math.Pi
	}
	//Simpson quadrature of (1-cos(w))*(r^2-w^2)^(3/2) over [0,upper].
	const panels = 96
	h := upper / panels
	f := func(w float64) float64 {
		d := r*r - w*w
		if d < 0 {
			d = 0
		}
		return (1.0 - math.Cos(w)) * d * math.Sqrt(d)
	}
	sum := f(0) + f(upper)
	for i := 1; i < panels; i++ {
		w := float64(i) * h
		if i%2 == 1 {
			sum += 4.0 * f(w)
		} else {
			sum += 2.0 * f(w)
		}
	}
	return (4.0 / 3.0) * sum * h / 3.0
}

//orientVoxel sums the orientational NN log terms of one voxel. q is the
//flat wxyz quaternion sample of the voxel.
func (E *Engine) orientVoxel(q []float64) float64 {
	nw := len(q) / 4
	if nw < 2 {
		return 0
	}
	fnw := float64(nw)
	s := 0.0
	for i := 0; i < nw; i++ {
		nnr := math.MaxFloat64
		for j := 0; j < nw; j++ {
			if j == i {
				continue
			}
			d := quatDist(q[4*i], q[4*i+1], q[4*i+2], q[4*i+3],
				q[4*j], q[4*j+1], q[4*j+2], q[4*j+3])
			if d < nnr {
				nnr = d
			}
		}
		if nnr < small {
			continue
		}
		if E.o.exactNnVol {
			s += math.Log((nnr - math.Sin(nnr)) * fnw / math.Pi)
		} else {
			s += math.Log(nnr * nnr * nnr * fnw / (3.0 * 2.0 * math.Pi))
		}
	}
	return s
}

//transVoxel sums the translational and 6D NN log terms of the waters of one
//interior voxel at (i,j,k), searching the surrounding nnLayers layers.
func (E *Engine) transVoxel(v, i, j, k int) (strans, ssix float64, cnt int) {
	nw := E.nWaters[v]
	if nw == 0 {
		return 0, 0, 0
	}
	L := E.o.nnLayers
	xyz := E.voxXYZ[v]
	q := E.voxQ[v]
	nf := float64(E.nframes)
	rho := E.o.bulkDens
	for w := 0; w < nw; w++ {
		ax, ay, az := xyz[3*w], xyz[3*w+1], xyz[3*w+2]
		nnd2 := math.MaxFloat64
		nns2 := math.MaxFloat64
		for di := -L; di <= L; di++ {
			for dj := -L; dj <= L; dj++ {
				for dk := -L; dk <= L; dk++ {
					v2 := E.grid.Index(i+di, j+dj, k+dk)
					xyz2 := E.voxXYZ[v2]
					q2 := E.voxQ[v2]
					for w2 := 0; w2 < E.nWaters[v2]; w2++ {
						if v2 == v && w2 == w {
							continue
						}
						dd := Dist2NoImage(ax, ay, az,
							xyz2[3*w2], xyz2[3*w2+1], xyz2[3*w2+2])
						if dd < nnd2 {
							nnd2 = dd
						}
						ds := quatDist(q[4*w], q[4*w+1], q[4*w+2], q[4*w+3],
							q2[4*w2], q2[4*w2+1], q2[4*w2+2], q2[4*w2+3])
						s6 := dd + ds*ds
						if s6 < nns2 {
							nns2 = s6
						}
					}
				}
			}
		}
		if nnd2 == math.MaxFloat64 { //no neighbor anywhere in the layers
			continue
		}
		nnd := math.Sqrt(nnd2)
		if nnd < distFloor {
			nnd = distFloor
		}
		strans += math.Log(sphereVolume(nnd) * nf * rho)
		nns := math.Sqrt(nns2)
		if nns < distFloor {
			nns = distFloor
		}
		ssix += math.Log(sixVolume(nns, E.o.exactNnVol) * nf * rho)
		cnt++
	}
	return strans, ssix, cnt
}

//estimateEntropy runs both estimators over the whole grid, one goroutine
//per CPU over disjoint voxel ranges. Workers only write their own voxels,
//so the merge is just summing the per-worker water counts.
func (E *Engine) estimateEntropy() *entropyTotals {
	nvox := E.grid.Nvox()
	t := &entropyTotals{
		orient:   make([]float64, nvox),
		trans:    make([]float64, nvox),
		six:      make([]float64, nvox),
		transCnt: make([]int, nvox),
	}
	L := E.o.nnLayers
	nx, ny, nz := E.grid.Dim()
	ncpu := E.o.cpus
	if ncpu > nvox {
		ncpu = 1
	}
	chunk := nvox/ncpu + 1
	counts := make(chan int, ncpu)
	for c := 0; c < ncpu; c++ {
		lo := c * chunk
		hi := lo + chunk
		if hi > nvox {
			hi = nvox
		}
		go func(lo, hi int) {
			nwts := 0
			for v := lo; v < hi; v++ {
				t.orient[v] = E.orientVoxel(E.voxQ[v])
				i, j, k := E.grid.ReverseIndex(v)
				if i < L || j < L || k < L ||
					i >= nx-L || j >= ny-L || k >= nz-L {
					continue
				}
				strans, ssix, cnt := E.transVoxel(v, i, j, k)
				t.trans[v] = strans
				t.six[v] = ssix
				t.transCnt[v] = cnt
				nwts += cnt
			}
			counts <- nwts
		}(lo, hi)
	}
	for c := 0; c < ncpu; c++ {
		t.nwts += <-counts
	}
	return t
}
