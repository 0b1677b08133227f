/*
 * normalize.go, part of gogist.
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

	"gonum.org/v1/gonum/floats"
)

// Results holds the normalized per-voxel GIST quantities of a finished run.
// The *Dens fields are per unit volume, averaged over the frames; the *Norm
// fields are per water found in the voxel. Energies are kcal/mol; the
// entropy fields are -TdS terms, also kcal/mol; dipole densities are
// Debye/A^3. Voxels that never saw a water carry zeros in the normalized
// fields.
type Results struct {
	Grid        *Grid
	Nframes     int
	Temperature float64

	//Unique solvent element symbols, indexing the first axis of GElem.
	Elements []string

	Pop     []int //waters seen per voxel, over all frames
	NSolute []int //on-grid solute atom sightings per voxel

	//GElem[e][v] is the density of element e in voxel v relative to its
	//bulk density.
	GElem [][]float64

	EswDens, EswNorm []float64
	EwwDens, EwwNorm []float64

	DTStransDens, DTStransNorm   []float64
	DTSorientDens, DTSorientNorm []float64
	DTSsixDens, DTSsixNorm       []float64

	DipoleX, DipoleY, DipoleZ []float64
	Dipole                    []float64

	NeighborDens, NeighborNorm []float64
	Order                      []float64

	//Eij is nil unless the voxel-pair matrix was requested.
	Eij *EijMatrix

	//Whole-grid totals, per frame, for the summary output.
	EswTotal       float64
	EwwTotal       float64
	DTStransTotal  float64
	DTSorientTotal float64
	DTSsixTotal    float64
	NwTotal        int //water sightings on the grid
	Nwts           int //water sightings in the translational estimate
	MaxNwat        int //largest single-voxel population
}

//normalize turns the raw accumulators into a Results. ent may be nil when
//the entropy estimate was skipped. The engine arrays are handed over, not
//copied; Finalize guarantees they will not be touched again.
func (E *Engine) normalize(ent *entropyTotals) *Results {
	nvox := E.grid.Nvox()
	nf := float64(E.nframes)
	densFac := 1.0 / (nf * E.grid.VoxelVolume())
	kT := GasKcal * E.o.temperature
	rho := E.o.bulkDens

	r := new(Results)
	r.Grid = E.grid
	r.Nframes = E.nframes
	r.Temperature = E.o.temperature
	r.Elements = E.solv.Elements()
	r.Pop = E.nWaters
	r.NSolute = E.nSolute
	r.MaxNwat = E.maxNwat

	r.GElem = make([][]float64, len(E.elemDens))
	cnt := E.solv.ElemsPerMol()
	for e := range E.elemDens {
		r.GElem[e] = make([]float64, nvox)
		copy(r.GElem[e], E.elemDens[e])
		floats.Scale(densFac/(rho*float64(cnt[e])), r.GElem[e])
	}

	r.EswDens = make([]float64, nvox)
	r.EswNorm = make([]float64, nvox)
	r.EwwDens = make([]float64, nvox)
	r.EwwNorm = make([]float64, nvox)
	r.DTStransDens = make([]float64, nvox)
	r.DTStransNorm = make([]float64, nvox)
	r.DTSorientDens = make([]float64, nvox)
	r.DTSorientNorm = make([]float64, nvox)
	r.DTSsixDens = make([]float64, nvox)
	r.DTSsixNorm = make([]float64, nvox)
	r.DipoleX = make([]float64, nvox)
	r.DipoleY = make([]float64, nvox)
	r.DipoleZ = make([]float64, nvox)
	r.Dipole = make([]float64, nvox)
	r.NeighborDens = make([]float64, nvox)
	r.NeighborNorm = make([]float64, nvox)
	r.Order = make([]float64, nvox)

	dipFac := densFac / DebyeEA
	for v := 0; v < nvox; v++ {
		nw := float64(E.nWaters[v])
		if !E.o.skipE {
			esw := E.eSwVdw[v] + E.eSwEl[v]
			eww := E.eWwVdw[v] + E.eWwEl[v]
			r.EswDens[v] = esw * densFac
			r.EwwDens[v] = 0.5 * eww * densFac //each pair was credited twice
			if nw > 0 {
				r.EswNorm[v] = esw / nw
				r.EwwNorm[v] = 0.5 * eww / nw
				r.NeighborNorm[v] = E.neighbor[v] / nw
			}
			r.NeighborDens[v] = E.neighbor[v] * densFac
		}
		if ent != nil {
			if E.nWaters[v] > 1 {
				raw := kT * (ent.orient[v] + nw*EulerMasc)
				r.DTSorientDens[v] = raw * densFac
				r.DTSorientNorm[v] = raw / nw
				r.DTSorientTotal += raw
			}
			if c := float64(ent.transCnt[v]); c > 0 {
				raw := kT * (ent.trans[v] + c*EulerMasc)
				r.DTStransDens[v] = raw * densFac
				r.DTStransNorm[v] = raw / c
				r.DTStransTotal += raw
				raw = kT * (ent.six[v] + c*EulerMasc)
				r.DTSsixDens[v] = raw * densFac
				r.DTSsixNorm[v] = raw / c
				r.DTSsixTotal += raw
			}
		}
		r.DipoleX[v] = E.dipX[v] * dipFac
		r.DipoleY[v] = E.dipY[v] * dipFac
		r.DipoleZ[v] = E.dipZ[v] * dipFac
		r.Dipole[v] = math.Sqrt(r.DipoleX[v]*r.DipoleX[v] +
			r.DipoleY[v]*r.DipoleY[v] + r.DipoleZ[v]*r.DipoleZ[v])
		if E.o.doOrder && E.orderCnt != nil && E.orderCnt[v] > 0 {
			r.Order[v] = E.orderSum[v] / float64(E.orderCnt[v])
		}
		r.NwTotal += E.nWaters[v]
	}
	if !E.o.skipE {
		r.EswTotal = (floats.Sum(E.eSwVdw) + floats.Sum(E.eSwEl)) / nf
		r.EwwTotal = 0.5 * (floats.Sum(E.eWwVdw) + floats.Sum(E.eWwEl)) / nf
	}
	if ent != nil {
		r.DTSorientTotal /= nf
		r.DTStransTotal /= nf
		r.DTSsixTotal /= nf
		r.Nwts = ent.nwts
	}
	if E.eij != nil {
		E.eij.scale(0.5/nf, small)
		r.Eij = E.eij
	}
	return r
}
