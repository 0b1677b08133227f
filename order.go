/*
 * order.go, part of gogist.
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

//The tetrahedral order parameter of a water is built from its four nearest
//water head atoms: q = 1 - 3/8 * sum over the six neighbor pairs of
//(cos(theta)+1/3)^2, with theta the angle subtended at the central atom. A
//perfectly tetrahedral environment gives 1, an ideal gas averages 0. Runs
//before the nonbond kernel, on unwrapped coordinates; neighbor ranking
//uses plain distances, so the cell should be large enough that the four
//nearest neighbors are not images. Needs at least 5 solvent molecules.

func (E *Engine) orderFrame(coord *v3.Matrix) {
	h := E.solv.head()
	for _, oidx := range E.oIdxs {
		a1 := oidx + h
		voxel := E.atomVoxel[a1]
		if voxel == offGrid {
			continue
		}
		cx, cy, cz := coord.At(a1, 0), coord.At(a1, 1), coord.At(a1, 2)
		best := [4]float64{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64, math.MaxFloat64}
		var nn [4][3]float64
		for _, o2 := range E.oIdxs {
			if o2 == oidx {
				continue
			}
			a2 := o2 + h
			x, y, z := coord.At(a2, 0), coord.At(a2, 1), coord.At(a2, 2)
			d2 := Dist2NoImage(cx, cy, cz, x, y, z)
			for s := 0; s < 4; s++ {
				if d2 < best[s] {
					for t := 3; t > s; t-- {
						best[t] = best[t-1]
						nn[t] = nn[t-1]
					}
					best[s] = d2
					nn[s] = [3]float64{x, y, z}
					break
				}
			}
		}
		sum := 0.0
		for i := 0; i < 3; i++ {
			vi := [3]float64{nn[i][0] - cx, nn[i][1] - cy, nn[i][2] - cz}
			ni := math.Sqrt(dot3(vi, vi))
			for j := i + 1; j < 4; j++ {
				vj := [3]float64{nn[j][0] - cx, nn[j][1] - cy, nn[j][2] - cz}
				cos := dot3(vi, vj) / (ni * math.Sqrt(dot3(vj, vj)))
				d := cos + 1.0/3.0
				sum += d * d
			}
		}
		E.orderSum[voxel] += 1.0 - 0.375*sum
		E.orderCnt[voxel]++
	}
}
