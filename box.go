/*
 * box.go, part of gogist.
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

	"gonum.org/v1/gonum/mat"
)

// CellType classifies the periodic cell of a frame.
type CellType int

const (
	//NoCell means distances are not imaged.
	NoCell CellType = iota
	//OrthoCell is an X-aligned orthogonal cell.
	OrthoCell
	//TriclinicCell is a general cell.
	TriclinicCell
)

// Box describes the periodic cell of one frame, built from the 9-float
// box slice goChem trajectories hand out (the three cell vectors, row by
// row). It provides the minimum-image squared-distance routines used by the
// nonbond kernel.
type Box struct {
	ctype CellType
	lx    [3]float64 //orthogonal edge lengths
	ucell [9]float64 //cell vectors, rows
	frac  [9]float64 //inverse of ucell
}

// NewBox builds a Box from a goChem box slice. A nil or short slice yields a
// NoCell box; noImage forces NoCell regardless. Returns an error for a
// singular cell matrix.
func NewBox(box []float64, noImage bool) (*Box, error) {
	b := new(Box)
	if noImage || len(box) < 9 {
		b.ctype = NoCell
		return b, nil
	}
	copy(b.ucell[:], box[:9])
	offdiag := math.Abs(box[1]) + math.Abs(box[2]) + math.Abs(box[3]) +
		math.Abs(box[5]) + math.Abs(box[6]) + math.Abs(box[7])
	if offdiag < small {
		if box[0] <= 0 || box[4] <= 0 || box[8] <= 0 {
			return nil, topologyError("degenerate orthogonal cell: %v", box[:9])
		}
		b.ctype = OrthoCell
		b.lx = [3]float64{box[0], box[4], box[8]}
		return b, nil
	}
	b.ctype = TriclinicCell
	u := mat.NewDense(3, 3, box[:9])
	var inv mat.Dense
	if err := inv.Inverse(u); err != nil {
		return nil, topologyError("singular unit cell matrix: %v", box[:9])
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			b.frac[3*i+j] = inv.At(i, j)
		}
	}
	return b, nil
}

// Type returns the cell classification.
func (b *Box) Type() CellType { return b.ctype }

// Dist2NoImage is the plain squared Euclidean distance.
func Dist2NoImage(ax, ay, az, bx, by, bz float64) float64 {
	dx := ax - bx
	dy := ay - by
	dz := az - bz
	return dx*dx + dy*dy + dz*dz
}

// Dist2Ortho is the minimum-image squared distance for an orthogonal cell.
func (b *Box) Dist2Ortho(ax, ay, az, bx, by, bz float64) float64 {
	dx := ax - bx
	dy := ay - by
	dz := az - bz
	dx -= b.lx[0] * math.Round(dx/b.lx[0])
	dy -= b.lx[1] * math.Round(dy/b.lx[1])
	dz -= b.lx[2] * math.Round(dz/b.lx[2])
	return dx*dx + dy*dy + dz*dz
}

//toFrac converts a Cartesian vector to fractional coordinates.
func (b *Box) toFrac(x, y, z float64) (float64, float64, float64) {
	return b.frac[0]*x + b.frac[1]*y + b.frac[2]*z,
		b.frac[3]*x + b.frac[4]*y + b.frac[5]*z,
		b.frac[6]*x + b.frac[7]*y + b.frac[8]*z
}

//toCart converts fractional coordinates back to Cartesian. The cell vectors
//are rows of ucell, so this is the transpose product.
func (b *Box) toCart(fx, fy, fz float64) (float64, float64, float64) {
	return b.ucell[0]*fx + b.ucell[3]*fy + b.ucell[6]*fz,
		b.ucell[1]*fx + b.ucell[4]*fy + b.ucell[7]*fz,
		b.ucell[2]*fx + b.ucell[5]*fy + b.ucell[8]*fz
}

// Dist2NonOrtho is the canonical minimum-image squared distance for a
// general triclinic cell: the fractional-space difference is wrapped and the
// closest of the adjacent lattice translations is taken.
func (b *Box) Dist2NonOrtho(ax, ay, az, bx, by, bz float64) float64 {
	fax, fay, faz := b.toFrac(ax, ay, az)
	fbx, fby, fbz := b.toFrac(bx, by, bz)
	dfx := fax - math.Floor(fax) - (fbx - math.Floor(fbx))
	dfy := fay - math.Floor(fay) - (fby - math.Floor(fby))
	dfz := faz - math.Floor(faz) - (fbz - math.Floor(fbz))
	min := math.MaxFloat64
	for ix := -1.0; ix <= 1; ix++ {
		for iy := -1.0; iy <= 1; iy++ {
			for iz := -1.0; iz <= 1; iz++ {
				x, y, z := b.toCart(dfx+ix, dfy+iy, dfz+iz)
				d2 := x*x + y*y + z*z
				if d2 < min {
					min = d2
				}
			}
		}
	}
	return min
}

// ImageVecs returns the 27 Cartesian lattice images of a point, after
// wrapping it into the primary cell. The nonbond kernel enumerates these
// once per outer atom instead of calling Dist2NonOrtho per pair.
func (b *Box) ImageVecs(x, y, z float64, dst [][3]float64) [][3]float64 {
	fx, fy, fz := b.toFrac(x, y, z)
	fx -= math.Floor(fx)
	fy -= math.Floor(fy)
	fz -= math.Floor(fz)
	dst = dst[:0]
	for ix := -1.0; ix <= 1; ix++ {
		for iy := -1.0; iy <= 1; iy++ {
			for iz := -1.0; iz <= 1; iz++ {
				cx, cy, cz := b.toCart(fx+ix, fy+iy, fz+iz)
				dst = append(dst, [3]float64{cx, cy, cz})
			}
		}
	}
	return dst
}

// WrapSlice wraps a flat XYZ coordinate slice into the primary cell, in
// place. Used once per frame on the on-grid sample before the nonbond
// kernel runs on a triclinic cell.
func (b *Box) WrapSlice(xyz []float64) {
	for i := 0; i+2 < len(xyz); i += 3 {
		fx, fy, fz := b.toFrac(xyz[i], xyz[i+1], xyz[i+2])
		fx -= math.Floor(fx)
		fy -= math.Floor(fy)
		fz -= math.Floor(fz)
		xyz[i], xyz[i+1], xyz[i+2] = b.toCart(fx, fy, fz)
	}
}

//dist2 dispatches on the cell type. images, when non-nil, are the
//precomputed lattice images of point a for the triclinic case.
func (b *Box) dist2(ax, ay, az, bx, by, bz float64, images [][3]float64) float64 {
	switch b.ctype {
	case OrthoCell:
		return b.Dist2Ortho(ax, ay, az, bx, by, bz)
	case TriclinicCell:
		if images == nil {
			return b.Dist2NonOrtho(ax, ay, az, bx, by, bz)
		}
		min := math.MaxFloat64
		for _, v := range images {
			d2 := Dist2NoImage(v[0], v[1], v[2], bx, by, bz)
			if d2 < min {
				min = d2
			}
		}
		return min
	default:
		return Dist2NoImage(ax, ay, az, bx, by, bz)
	}
}
