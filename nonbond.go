/*
 * nonbond.go, part of gogist.
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

	v3 "github.com/rmera/gochem/v3"
)

//The nonbond kernel accumulates, per frame, the solute-solvent (Esw) and
//solvent-solvent (Eww) LJ+Coulomb energies into the voxel of each on-grid
//solvent atom. Each solvent pair is visited once: the inner atom must
//either come after the outer one or sit off the grid, so a pair of two
//on-grid atoms is only taken from its lower-index side, which then credits
//the full pair energy to both voxels (the double count is undone at
//normalization). O-O contacts under the neighbor cutoff are counted in the
//same pass.

//eijSample is one voxel-pair energy contribution, buffered per worker and
//flushed into the shared matrix after the frame.
type eijSample struct {
	a, b int
	e    float64
}

//nbWorker holds the private accumulators of one nonbond goroutine, reused
//across frames.
type nbWorker struct {
	eswVdw []float64
	eswEl  []float64
	ewwVdw []float64
	ewwEl  []float64
	nbr    []float64
	eijBuf []eijSample
	images [][3]float64
}

func newNbWorker(nvox int, doEij bool) *nbWorker {
	w := &nbWorker{
		eswVdw: make([]float64, nvox),
		eswEl:  make([]float64, nvox),
		ewwVdw: make([]float64, nvox),
		ewwEl:  make([]float64, nvox),
		nbr:    make([]float64, nvox),
	}
	if doEij {
		w.eijBuf = make([]eijSample, 0, 1024)
	}
	return w
}

func (w *nbWorker) reset() {
	for i := range w.eswVdw {
		w.eswVdw[i] = 0
		w.eswEl[i] = 0
		w.ewwVdw[i] = 0
		w.ewwEl[i] = 0
		w.nbr[i] = 0
	}
	w.eijBuf = w.eijBuf[:0]
}

//ljCoulomb evaluates one pair interaction. qq is the product of the
//pre-scaled charges, A and B the Lennard-Jones parameters of the pair.
func ljCoulomb(r2, qq, A, B float64) (evdw, eelec float64) {
	ri2 := 1.0 / r2
	ri6 := ri2 * ri2 * ri2
	evdw = A*ri6*ri6 - B*ri6
	eelec = qq / math.Sqrt(r2)
	return evdw, eelec
}

//nonbondFrame runs the kernel for the current frame, splitting the on-grid
//atoms among the workers and merging their accumulators at the end. By the
//time it returns the frame is fully merged, so the per-voxel energy arrays
//are never read while a worker still writes.
func (E *Engine) nonbondFrame(coord *v3.Matrix, b *Box) {
	if b.Type() == TriclinicCell {
		b.WrapSlice(E.onGridXYZ)
	}
	non := len(E.onGridIdxs)
	ncpu := len(E.workers)
	if non < ncpu {
		ncpu = 1
	}
	chunk := non/ncpu + 1
	done := make(chan int, ncpu)
	for c := 0; c < ncpu; c++ {
		lo := c * chunk
		hi := lo + chunk
		if hi > non {
			hi = non
		}
		go func(w *nbWorker, lo, hi int) {
			w.reset()
			E.nbRange(w, b, coord, lo, hi)
			done <- 1
		}(E.workers[c], lo, hi)
	}
	for c := 0; c < ncpu; c++ {
		<-done
	}
	for c := 0; c < ncpu; c++ {
		w := E.workers[c]
		for v := 0; v < E.grid.Nvox(); v++ {
			E.eSwVdw[v] += w.eswVdw[v]
			E.eSwEl[v] += w.eswEl[v]
			E.eWwVdw[v] += w.ewwVdw[v]
			E.eWwEl[v] += w.ewwEl[v]
			E.neighbor[v] += w.nbr[v]
		}
		for _, s := range w.eijBuf {
			E.eij.Update(s.a, s.b, s.e)
		}
	}
}

//nbRange processes the on-grid atoms with indexes [lo,hi) against every
//atom of the system.
func (E *Engine) nbRange(w *nbWorker, b *Box, coord *v3.Matrix, lo, hi int) {
	cut2 := E.o.neighborCut * E.o.neighborCut
	natoms := E.top.Len()
	triclinic := b.Type() == TriclinicCell
	for k := lo; k < hi; k++ {
		a1 := E.onGridIdxs[k]
		v1 := E.atomVoxel[a1]
		ax, ay, az := E.onGridXYZ[3*k], E.onGridXYZ[3*k+1], E.onGridXYZ[3*k+2]
		var images [][3]float64
		if triclinic {
			w.images = b.ImageVecs(ax, ay, az, w.images)
			images = w.images
		}
		m1 := E.top.MolIndex(a1)
		q1 := E.qs[a1]
		o1 := E.atomIsSolventO[a1]
		for a2 := 0; a2 < natoms; a2++ {
			if E.top.MolIndex(a2) == m1 {
				continue
			}
			bx, by, bz := coord.At(a2, 0), coord.At(a2, 1), coord.At(a2, 2)
			if E.atomIsSolute[a2] {
				r2 := b.dist2(ax, ay, az, bx, by, bz, images)
				A, B := E.top.LJPair(a1, a2)
				evdw, eel := ljCoulomb(r2, q1*E.qs[a2], A, B)
				w.eswVdw[v1] += evdw
				w.eswEl[v1] += eel
			} else if a2 != a1 && (a2 > a1 || E.atomVoxel[a2] == offGrid) {
				r2 := b.dist2(ax, ay, az, bx, by, bz, images)
				A, B := E.top.LJPair(a1, a2)
				evdw, eel := ljCoulomb(r2, q1*E.qs[a2], A, B)
				w.ewwVdw[v1] += evdw
				w.ewwEl[v1] += eel
				v2 := E.atomVoxel[a2]
				if v2 != offGrid {
					w.ewwVdw[v2] += evdw
					w.ewwEl[v2] += eel
					if E.eij != nil && v1 != v2 {
						w.eijBuf = append(w.eijBuf, eijSample{a: v1, b: v2, e: evdw + eel})
					}
				}
				if o1 && E.atomIsSolventO[a2] && r2 < cut2 {
					w.nbr[v1]++
					if v2 != offGrid {
						w.nbr[v2]++
					}
				}
			}
		}
	}
}
