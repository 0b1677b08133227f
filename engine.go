/*
 * engine.go, part of gogist.
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
	"fmt"
	"log"

	chem "github.com/rmera/gochem"
	v3 "github.com/rmera/gochem/v3"
)

// Engine runs a GIST analysis. Lifecycle: NewEngine -> Setup -> one
// NextFrame per trajectory frame (or Run) -> Finalize. The engine owns the
// grid, the voxel accumulators and the per-frame sample buffers; topologies
// and coordinates are only borrowed.
type Engine struct {
	o    *Options
	grid *Grid
	top  Topology
	solv *Solvent

	atomIsSolute   []bool
	atomIsSolventO []bool
	qs             []float64 //charges pre-scaled to Amber units
	oIdxs          []int //first atom of each solvent molecule
	uIdxs          []int //solute atoms
	orderOK        bool

	//Run-long voxel accumulators. Zeroed at Setup, filled across frames,
	//consumed exactly once by Finalize.
	nframes  int
	maxNwat  int
	nWaters  []int
	nSolute  []int
	voxXYZ   [][]float64 //molecule centers per voxel, flat xyz
	voxQ     [][]float64 //orientation quaternions per voxel, flat wxyz
	eSwVdw   []float64
	eSwEl    []float64
	eWwVdw   []float64
	eWwEl    []float64
	neighbor []float64
	dipX     []float64
	dipY     []float64
	dipZ     []float64
	orderSum []float64
	orderCnt []int
	elemDens [][]float64 //per element bucket, per voxel
	eij      *EijMatrix

	//Per-frame sample buffers, cleared at the start of every frame.
	atomVoxel  []int
	onGridIdxs []int
	onGridXYZ  []float64

	workers   []*nbWorker
	finalized bool
}

// NewEngine validates the options and allocates the grid and voxel storage.
func NewEngine(o *Options) (*Engine, error) {
	if o == nil {
		o = DefaultOptions()
	}
	if err := o.validate(); err != nil {
		return nil, errDecorate(err, "NewEngine")
	}
	E := new(Engine)
	E.o = o
	E.grid = NewGrid(o.center, o.dim, o.spacing)
	n := E.grid.Nvox()
	E.nWaters = make([]int, n)
	E.nSolute = make([]int, n)
	E.voxXYZ = make([][]float64, n)
	E.voxQ = make([][]float64, n)
	if !o.skipE {
		E.eSwVdw = make([]float64, n)
		E.eSwEl = make([]float64, n)
		E.eWwVdw = make([]float64, n)
		E.eWwEl = make([]float64, n)
		E.neighbor = make([]float64, n)
	}
	E.dipX = make([]float64, n)
	E.dipY = make([]float64, n)
	E.dipZ = make([]float64, n)
	if o.doOrder {
		E.orderSum = make([]float64, n)
		E.orderCnt = make([]int, n)
	}
	if o.doEij {
		E.eij = NewEijMatrix(n)
	}
	return E, nil
}

// Grid returns the engine's grid.
func (E *Engine) Grid() *Grid { return E.grid }

// Setup classifies the atoms of the topology into solute and solvent,
// records the solvent template from the first solvent molecule and checks
// the rest against it. Must be called once, before the first frame.
func (E *Engine) Setup(top Topology) error {
	natoms := top.Len()
	E.atomIsSolute = make([]bool, natoms)
	E.atomIsSolventO = make([]bool, natoms)
	if E.o.soluteMask != "" {
		sel, err := ParseMask(E.o.soluteMask, top)
		if err != nil {
			return errDecorate(err, "Setup")
		}
		copy(E.atomIsSolute, sel)
	} else {
		for m := 0; m < top.NMol(); m++ {
			if top.IsSolvent(m) {
				continue
			}
			first, n := top.Mol(m)
			for i := first; i < first+n; i++ {
				E.atomIsSolute[i] = true
			}
		}
	}
	for i := 0; i < natoms; i++ {
		if E.atomIsSolute[i] {
			E.uIdxs = append(E.uIdxs, i)
		}
	}
	for m := 0; m < top.NMol(); m++ {
		first, n := top.Mol(m)
		if E.atomIsSolute[first] {
			continue
		}
		if E.solv == nil {
			s, err := newSolvent(top, first, n, E.o.rigid)
			if err != nil {
				return errDecorate(err, "Setup")
			}
			E.solv = s
			E.elemDens = make([][]float64, len(s.Elements()))
			for e := range E.elemDens {
				E.elemDens[e] = make([]float64, E.grid.Nvox())
			}
		} else if err := E.solv.check(top, first, n); err != nil {
			return errDecorate(err, "Setup")
		}
		E.oIdxs = append(E.oIdxs, first)
		E.atomIsSolventO[first+E.solv.head()] = true
	}
	if E.solv == nil {
		return topologyError("no solvent molecules in the topology")
	}
	E.orderOK = len(E.oIdxs) >= 5
	if E.o.doOrder && !E.orderOK {
		log.Printf("gogist: Warning: less than 5 solvent molecules, the order calculation is disabled")
	}
	E.qs = make([]float64, natoms)
	for i := 0; i < natoms; i++ {
		E.qs[i] = top.Atom(i).Charge * ElecToAmber
	}
	E.atomVoxel = make([]int, natoms)
	E.onGridIdxs = make([]int, 0, len(E.oIdxs)*E.solv.NAtoms())
	E.onGridXYZ = make([]float64, 0, 3*cap(E.onGridIdxs))
	if !E.o.skipE {
		E.workers = make([]*nbWorker, E.o.cpus)
		for w := range E.workers {
			E.workers[w] = newNbWorker(E.grid.Nvox(), E.o.doEij)
		}
	}
	E.top = top
	return nil
}

// NSolvent returns the number of solvent molecules found at Setup.
func (E *Engine) NSolvent() int { return len(E.oIdxs) }

//molCenter returns the binning center of the molecule starting at atom
//first: its center of mass, or the head atom position if useCOM is off.
func (E *Engine) molCenter(coord *v3.Matrix, first int) [3]float64 {
	if !E.o.useCOM {
		h := first + E.solv.head()
		return [3]float64{coord.At(h, 0), coord.At(h, 1), coord.At(h, 2)}
	}
	var c [3]float64
	var mtot float64
	for i := first; i < first+E.solv.NAtoms(); i++ {
		m := E.top.Atom(i).Mass
		c[0] += m * coord.At(i, 0)
		c[1] += m * coord.At(i, 1)
		c[2] += m * coord.At(i, 2)
		mtot += m
	}
	if mtot < small { //massless topology, fall back to the geometric center
		n := float64(E.solv.NAtoms())
		var g [3]float64
		for i := first; i < first+E.solv.NAtoms(); i++ {
			g[0] += coord.At(i, 0)
			g[1] += coord.At(i, 1)
			g[2] += coord.At(i, 2)
		}
		return [3]float64{g[0] / n, g[1] / n, g[2] / n}
	}
	return [3]float64{c[0] / mtot, c[1] / mtot, c[2] / mtot}
}

//boxMissing tells whether a box slice carries no cell at all.
func boxMissing(box []float64) bool {
	if len(box) < 9 {
		return true
	}
	for _, v := range box[:9] {
		if v != 0 {
			return false
		}
	}
	return true
}

// NextFrame processes one trajectory frame: voxel assignment and the
// orientation/dipole/density accumulators, then the order kernel, then the
// nonbond kernel. Frames must be fed in sequence; the engine is not
// reentrant across frames because the nonbond pass may wrap the on-grid
// sample buffer in place.
func (E *Engine) NextFrame(coord *v3.Matrix, box []float64) error {
	if E.top == nil {
		panic(ErrNotSetup)
	}
	if coord == nil {
		panic(ErrNilCoordinates)
	}
	if E.finalized {
		return Error{message: ErrFinalized + ": NextFrame called after Finalize", critical: true}
	}
	if coord.NVecs() != E.top.Len() {
		return topologyError("frame has %d coordinates for %d atoms", coord.NVecs(), E.top.Len())
	}
	missing := boxMissing(box)
	if missing && !E.o.noImage {
		return topologyError("frame %d carries no periodic box; explicit solvent needs one (or the no-image option)", E.nframes)
	}
	var b *Box
	var err error
	if missing {
		b, err = NewBox(nil, true)
	} else {
		b, err = NewBox(box, E.o.noImage)
	}
	if err != nil {
		return errDecorate(err, fmt.Sprintf("NextFrame: frame %d", E.nframes))
	}
	E.nframes++
	E.onGridIdxs = E.onGridIdxs[:0]
	E.onGridXYZ = E.onGridXYZ[:0]
	for i := range E.atomVoxel {
		E.atomVoxel[i] = offGrid
	}

	nmol := E.solv.NAtoms()
	for _, oidx := range E.oIdxs {
		c := E.molCenter(coord, oidx)
		if !E.grid.InWindow(c[0], c[1], c[2]) {
			continue
		}
		voxel := E.grid.Locate(c[0], c[1], c[2])
		if voxel != offGrid {
			for i := 0; i < nmol; i++ {
				E.atomVoxel[oidx+i] = voxel
				E.onGridIdxs = append(E.onGridIdxs, oidx+i)
				E.onGridXYZ = append(E.onGridXYZ, coord.At(oidx+i, 0), coord.At(oidx+i, 1), coord.At(oidx+i, 2))
			}
			E.nWaters[voxel]++
			if E.nWaters[voxel] > E.maxNwat {
				E.maxNwat = E.nWaters[voxel]
			}
			E.voxXYZ[voxel] = append(E.voxXYZ[voxel], c[0], c[1], c[2])
			o := atomPos(coord, oidx+E.o.rigid[0])
			h1 := atomPos(coord, oidx+E.o.rigid[1])
			h2 := atomPos(coord, oidx+E.o.rigid[2])
			q := orientation(o, h1, h2)
			E.voxQ[voxel] = append(E.voxQ[voxel], q[0], q[1], q[2], q[3])
			var dp [3]float64
			for i := 0; i < nmol; i++ {
				qi := E.solv.charges[i]
				dp[0] += qi * coord.At(oidx+i, 0)
				dp[1] += qi * coord.At(oidx+i, 1)
				dp[2] += qi * coord.At(oidx+i, 2)
			}
			E.dipX[voxel] += dp[0]
			E.dipY[voxel] += dp[1]
			E.dipZ[voxel] += dp[2]
		}
		//The molecule is at most 1.5 A from the grid, so individual atoms
		//can be on it even when the center is not.
		for i := 0; i < nmol; i++ {
			av := E.grid.Locate(coord.At(oidx+i, 0), coord.At(oidx+i, 1), coord.At(oidx+i, 2))
			if av != offGrid {
				E.elemDens[E.solv.elemIdx[i]][av]++
			}
		}
	}
	for _, u := range E.uIdxs {
		x, y, z := coord.At(u, 0), coord.At(u, 1), coord.At(u, 2)
		if !E.grid.InWindow(x, y, z) {
			continue
		}
		if v := E.grid.Locate(x, y, z); v != offGrid {
			E.atomVoxel[u] = v
			E.nSolute[v]++
		}
	}
	//Order before nonbond: the nonbond pass wraps onGridXYZ for triclinic
	//cells and the order parameter needs the original geometry.
	if E.o.doOrder && E.orderOK {
		E.orderFrame(coord)
	}
	if !E.o.skipE {
		E.nonbondFrame(coord, b)
	}
	return nil
}

//atomPos reads one atom position out of a goChem coordinate matrix.
func atomPos(coord *v3.Matrix, i int) [3]float64 {
	return [3]float64{coord.At(i, 0), coord.At(i, 1), coord.At(i, 2)}
}

// Run drains a goChem trajectory through NextFrame, stopping cleanly at the
// last frame.
func (E *Engine) Run(traj chem.Traj) error {
	coords := v3.Zeros(traj.Len())
	box := make([]float64, 9)
	for i := 0; ; i++ {
		for j := range box {
			box[j] = 0
		}
		err := traj.Next(coords, box)
		if err != nil {
			switch err := err.(type) {
			case chem.LastFrameError:
				return nil
			case chem.Error:
				err.Decorate(fmt.Sprintf("Run: failed while reading the %d th frame", i))
				return err
			default:
				return trajReadError("frame %d: %v", i, err)
			}
		}
		if err := E.NextFrame(coords, box); err != nil {
			return errDecorate(err, fmt.Sprintf("Run: frame %d", i))
		}
	}
}

// Nframes returns the number of frames processed so far.
func (E *Engine) Nframes() int { return E.nframes }

// Finalize runs the entropy estimators, normalizes every accumulator and
// returns the per-voxel results. The engine cannot accept frames afterwards.
func (E *Engine) Finalize() (*Results, error) {
	if E.top == nil {
		panic(ErrNotSetup)
	}
	if E.finalized {
		return nil, Error{message: ErrFinalized + ": Finalize called twice", critical: true}
	}
	if E.nframes == 0 {
		return nil, topologyError("no frames were processed")
	}
	E.finalized = true
	var ent *entropyTotals
	if !E.o.skipS {
		ent = E.estimateEntropy()
	}
	return E.normalize(ent), nil
}
