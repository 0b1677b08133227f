/*
 * table.go, part of gogist.
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

package report

import (
	"bufio"
	"fmt"
	"io"

	gist "github.com/rmera/gogist"
)

// WriteTable writes the per-voxel result table, one voxel per row, in the
// v4 text layout: a header line with the grid geometry, a column title
// line, then one row per voxel with the voxel index, its center, the
// population and every normalized quantity.
func WriteTable(w io.Writer, r *gist.Results) error {
	bw := bufio.NewWriter(w)
	g := r.Grid
	nx, ny, nz := g.Dim()
	ox, oy, oz := g.Origin()
	h := g.Spacing()
	cx := ox + float64(nx)*h/2.0
	cy := oy + float64(ny)*h/2.0
	cz := oz + float64(nz)*h/2.0
	fmt.Fprintf(bw, "GIST Output v4 spacing=%.10g center=%.10g,%.10g,%.10g dims=%d,%d,%d \n",
		h, cx, cy, cz, nx, ny, nz)
	fmt.Fprintf(bw, "voxel xcoord ycoord zcoord population")
	for _, e := range r.Elements {
		fmt.Fprintf(bw, " g_%s", e)
	}
	fmt.Fprintf(bw, " dTStrans-dens(kcal/mol/A^3) dTStrans-norm(kcal/mol)")
	fmt.Fprintf(bw, " dTSorient-dens(kcal/mol/A^3) dTSorient-norm(kcal/mol)")
	fmt.Fprintf(bw, " dTSsix-dens(kcal/mol/A^3) dTSsix-norm(kcal/mol)")
	fmt.Fprintf(bw, " Esw-dens(kcal/mol/A^3) Esw-norm(kcal/mol)")
	fmt.Fprintf(bw, " Eww-dens(kcal/mol/A^3) Eww-norm(kcal/mol)")
	fmt.Fprintf(bw, " Dipole_x-dens(D/A^3) Dipole_y-dens(D/A^3) Dipole_z-dens(D/A^3) Dipole-dens(D/A^3)")
	fmt.Fprintf(bw, " neighbor-dens(1/A^3) neighbor-norm order-norm\n")
	for v := 0; v < g.Nvox(); v++ {
		i, j, k := g.ReverseIndex(v)
		x, y, z := g.Center(i, j, k)
		fmt.Fprintf(bw, "%d %g %g %g %d", v, x, y, z, r.Pop[v])
		for e := range r.Elements {
			fmt.Fprintf(bw, " %g", r.GElem[e][v])
		}
		fmt.Fprintf(bw, " %g %g %g %g %g %g",
			r.DTStransDens[v], r.DTStransNorm[v],
			r.DTSorientDens[v], r.DTSorientNorm[v],
			r.DTSsixDens[v], r.DTSsixNorm[v])
		fmt.Fprintf(bw, " %g %g %g %g",
			r.EswDens[v], r.EswNorm[v], r.EwwDens[v], r.EwwNorm[v])
		fmt.Fprintf(bw, " %g %g %g %g",
			r.DipoleX[v], r.DipoleY[v], r.DipoleZ[v], r.Dipole[v])
		fmt.Fprintf(bw, " %g %g %g\n",
			r.NeighborDens[v], r.NeighborNorm[v], r.Order[v])
	}
	return bw.Flush()
}

// WriteEij writes the nonzero upper-triangle elements of the voxel-pair
// water-water energy matrix, one "i j Eij" row per element.
func WriteEij(w io.Writer, m *gist.EijMatrix) error {
	bw := bufio.NewWriter(w)
	for _, el := range m.Elements() {
		fmt.Fprintf(bw, "%10d %10d %12.5E\n", el.A, el.B, el.E)
	}
	return bw.Flush()
}

// WriteInfo writes the whole-grid summary of a run.
func WriteInfo(w io.Writer, r *gist.Results) error {
	bw := bufio.NewWriter(w)
	g := r.Grid
	nx, ny, nz := g.Dim()
	fmt.Fprintf(bw, "GIST summary: %d frames, %dx%dx%d voxels of %g A^3\n",
		r.Nframes, nx, ny, nz, g.VoxelVolume())
	fmt.Fprintf(bw, "Temperature: %g K\n", r.Temperature)
	fmt.Fprintf(bw, "Water sightings on the grid: %d (max %d in one voxel)\n",
		r.NwTotal, r.MaxNwat)
	fmt.Fprintf(bw, "Total solute-water energy of the grid: Esw = %g kcal/mol\n", r.EswTotal)
	fmt.Fprintf(bw, "Total water-water energy of the grid: Eww = %g kcal/mol\n", r.EwwTotal)
	fmt.Fprintf(bw, "Total referenced orientational entropy of the grid: dTSorient = %g kcal/mol\n",
		r.DTSorientTotal)
	fmt.Fprintf(bw, "Total referenced translational entropy of the grid: dTStrans = %g kcal/mol, nwts = %d\n",
		r.DTStransTotal, r.Nwts)
	fmt.Fprintf(bw, "Total referenced six-dimensional entropy of the grid: dTSsix = %g kcal/mol\n",
		r.DTSsixTotal)
	return bw.Flush()
}
