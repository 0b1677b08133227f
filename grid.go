/*
 * grid.go, part of gogist.
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

// Grid is the fixed, orthogonal voxel lattice on which GIST quantities are
// accumulated. Voxels are cubes of edge h; the linear index of voxel
// (i,j,k) is i*Ny*Nz + j*Nz + k.
type Grid struct {
	origin  [3]float64
	dim     [3]int
	h       float64
	nvox    int
	windMax [3]float64 //extended interaction window, per axis
}

// NewGrid builds a grid from its Cartesian center, per-axis voxel counts and
// spacing. The caller must have validated dim and spacing.
func NewGrid(center [3]float64, dim [3]int, spacing float64) *Grid {
	g := new(Grid)
	g.dim = dim
	g.h = spacing
	g.nvox = dim[0] * dim[1] * dim[2]
	for a := 0; a < 3; a++ {
		g.origin[a] = center[a] - float64(dim[a])*spacing/2.0
		g.windMax[a] = float64(dim[a])*spacing + 1.5
	}
	return g
}

// Nvox returns the total number of voxels.
func (g *Grid) Nvox() int { return g.nvox }

// Dim returns the voxel counts along each axis.
func (g *Grid) Dim() (int, int, int) { return g.dim[0], g.dim[1], g.dim[2] }

// Spacing returns the voxel edge length.
func (g *Grid) Spacing() float64 { return g.h }

// Origin returns the Cartesian position of the grid corner, i.e. the lower
// corner of voxel (0,0,0).
func (g *Grid) Origin() (float64, float64, float64) {
	return g.origin[0], g.origin[1], g.origin[2]
}

// VoxelVolume returns h^3.
func (g *Grid) VoxelVolume() float64 { return g.h * g.h * g.h }

// Locate maps a Cartesian point to its linear voxel index, or offGrid (-1)
// if any component falls outside the lattice. Floor semantics: a point
// exactly on a voxel face belongs to the voxel whose lower face it is.
func (g *Grid) Locate(x, y, z float64) int {
	i := int(math.Floor((x - g.origin[0]) / g.h))
	j := int(math.Floor((y - g.origin[1]) / g.h))
	k := int(math.Floor((z - g.origin[2]) / g.h))
	if i < 0 || i >= g.dim[0] || j < 0 || j >= g.dim[1] || k < 0 || k >= g.dim[2] {
		return offGrid
	}
	return g.Index(i, j, k)
}

// InWindow tells whether a point lies within 1.5 A of the grid on every
// axis. Molecules inside this window get their individual atoms tested for
// density accounting even when the center itself is off-grid.
func (g *Grid) InWindow(x, y, z float64) bool {
	dx := x - g.origin[0]
	dy := y - g.origin[1]
	dz := z - g.origin[2]
	return dx <= g.windMax[0] && dx >= -1.5 &&
		dy <= g.windMax[1] && dy >= -1.5 &&
		dz <= g.windMax[2] && dz >= -1.5
}

// Index returns the linear index of voxel (i,j,k). No bounds checking.
func (g *Grid) Index(i, j, k int) int {
	return i*g.dim[1]*g.dim[2] + j*g.dim[2] + k
}

// ReverseIndex recovers (i,j,k) from a linear voxel index.
func (g *Grid) ReverseIndex(v int) (int, int, int) {
	nyz := g.dim[1] * g.dim[2]
	i := v / nyz
	j := (v / g.dim[2]) % g.dim[1]
	k := v % g.dim[2]
	return i, j, k
}

// Center returns the Cartesian center of voxel (i,j,k).
func (g *Grid) Center(i, j, k int) (float64, float64, float64) {
	return g.origin[0] + g.h*(float64(i)+0.5),
		g.origin[1] + g.h*(float64(j)+0.5),
		g.origin[2] + g.h*(float64(k)+0.5)
}

// OnBoundary tells whether the voxel touches the grid surface. Boundary
// voxels are excluded from the translational and 6D entropy estimates, as
// their nearest-neighbor search volume would be truncated.
func (g *Grid) OnBoundary(v int) bool {
	i, j, k := g.ReverseIndex(v)
	return i == 0 || j == 0 || k == 0 ||
		i == g.dim[0]-1 || j == g.dim[1]-1 || k == g.dim[2]-1
}
