/*
 * eij.go, part of gogist.
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
	"math"
	"sort"
)

// EijMatrix accumulates the voxel-pair water-water interaction energy. It is
// symmetric and extremely sparse (most voxel pairs never see an interacting
// water pair within the run), so it is stored as a map over the upper
// triangle rather than as an nvox*nvox array.
type EijMatrix struct {
	nvox int
	m    map[int64]float64
}

// NewEijMatrix returns an empty matrix over nvox voxels.
func NewEijMatrix(nvox int) *EijMatrix {
	return &EijMatrix{nvox: nvox, m: make(map[int64]float64)}
}

func (e *EijMatrix) key(a, b int) int64 {
	if a < 0 || a >= e.nvox || b < 0 || b >= e.nvox {
		panic(fmt.Sprintf("%s: (%d,%d) in a %d-voxel matrix", ErrVoxelOutOfRange, a, b, e.nvox))
	}
	if a > b {
		a, b = b, a
	}
	return int64(a)*int64(e.nvox) + int64(b)
}

// Update adds v to the (a,b) element. The matrix is symmetric, so the order
// of a and b does not matter. Not safe for concurrent use; the nonbond
// kernel buffers per-worker samples and flushes them from a single
// goroutine.
func (e *EijMatrix) Update(a, b int, v float64) {
	e.m[e.key(a, b)] += v
}

// At returns the (a,b) element, zero if never updated.
func (e *EijMatrix) At(a, b int) float64 {
	return e.m[e.key(a, b)]
}

// NVox returns the dimension of the matrix.
func (e *EijMatrix) NVox() int { return e.nvox }

// Len returns the number of stored (nonzero) upper-triangle elements.
func (e *EijMatrix) Len() int { return len(e.m) }

// RowSum returns the sum of row a over the full (symmetrized) matrix.
func (e *EijMatrix) RowSum(a int) float64 {
	s := 0.0
	for b := 0; b < e.nvox; b++ {
		if b == a {
			continue
		}
		if v, ok := e.m[e.key(a, b)]; ok {
			s += v
		}
	}
	return s
}

//scale multiplies every stored element by f, dropping the ones that end up
//below tiny in magnitude. Called once, at Finalize, with 1/(2*nframes).
func (e *EijMatrix) scale(f, tiny float64) {
	for k, v := range e.m {
		v *= f
		if math.Abs(v) < tiny {
			delete(e.m, k)
			continue
		}
		e.m[k] = v
	}
}

// EijElement is one stored element of the upper triangle.
type EijElement struct {
	A, B int
	E    float64
}

// Elements returns the stored upper-triangle elements sorted by (A,B), the
// order in which they are written out.
func (e *EijMatrix) Elements() []EijElement {
	out := make([]EijElement, 0, len(e.m))
	for k, v := range e.m {
		a := int(k / int64(e.nvox))
		b := int(k % int64(e.nvox))
		out = append(out, EijElement{A: a, B: b, E: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}
