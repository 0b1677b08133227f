/*
 * dx.go, part of gogist.
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

// WriteDX writes one per-voxel field as an OpenDX grid, the format VMD and
// PyMOL read for isosurfaces. The voxel ordering of the engine (z fastest)
// is the same one DX uses, so data is written as is.
func WriteDX(w io.Writer, name string, data []float64, g *gist.Grid) error {
	if len(data) != g.Nvox() {
		return fmt.Errorf("field %s has %d values for %d voxels", name, len(data), g.Nvox())
	}
	bw := bufio.NewWriter(w)
	nx, ny, nz := g.Dim()
	ox, oy, oz := g.Origin()
	h := g.Spacing()
	fmt.Fprintf(bw, "object 1 class gridpositions counts %d %d %d\n", nx, ny, nz)
	fmt.Fprintf(bw, "origin %g %g %g\n", ox, oy, oz)
	fmt.Fprintf(bw, "delta %g 0 0\n", h)
	fmt.Fprintf(bw, "delta 0 %g 0\n", h)
	fmt.Fprintf(bw, "delta 0 0 %g\n", h)
	fmt.Fprintf(bw, "object 2 class gridconnections counts %d %d %d\n", nx, ny, nz)
	fmt.Fprintf(bw, "object 3 class array type double rank 0 items %d data follows\n", g.Nvox())
	for i, v := range data {
		if i%3 == 2 || i == len(data)-1 {
			fmt.Fprintf(bw, "%g\n", v)
		} else {
			fmt.Fprintf(bw, "%g ", v)
		}
	}
	fmt.Fprintf(bw, "object \"%s\" class field\n", name)
	return bw.Flush()
}

// DXSink writes fields handed to it as OpenDX files named
// <prefix>-<field><ext>. It implements the engine's Sink interface. Ext
// must include the dot; ".dx.gz" gives compressed files.
type DXSink struct {
	Prefix string
	Ext    string
}

// WriteField writes one field.
func (s *DXSink) WriteField(name string, data []float64, g *gist.Grid) error {
	ext := s.Ext
	if ext == "" {
		ext = ".dx"
	}
	w, err := Create(fmt.Sprintf("%s-%s%s", s.Prefix, name, ext))
	if err != nil {
		return err
	}
	if err := WriteDX(w, name, data, g); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// WriteAll writes the standard output set of a run under the given prefix:
// the per-voxel table, the summary, OpenDX grids of the most used fields
// and, if present, the voxel-pair energy matrix.
func WriteAll(prefix string, r *gist.Results) error {
	w, err := Create(prefix + "-output.dat")
	if err != nil {
		return err
	}
	if err := WriteTable(w, r); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	w, err = Create(prefix + "-info.dat")
	if err != nil {
		return err
	}
	if err := WriteInfo(w, r); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	sink := &DXSink{Prefix: prefix}
	fields := []struct {
		name string
		data []float64
	}{
		{"Esw-dens", r.EswDens},
		{"Eww-dens", r.EwwDens},
		{"dTStrans-dens", r.DTStransDens},
		{"dTSorient-dens", r.DTSorientDens},
		{"dTSsix-dens", r.DTSsixDens},
		{"neighbor-norm", r.NeighborNorm},
		{"order-norm", r.Order},
	}
	for _, f := range fields {
		if err := sink.WriteField(f.name, f.data, r.Grid); err != nil {
			return err
		}
	}
	for e, sym := range r.Elements {
		if err := sink.WriteField("g"+sym, r.GElem[e], r.Grid); err != nil {
			return err
		}
	}
	if r.Eij != nil {
		w, err = Create(prefix + "-Eww_ij.dat")
		if err != nil {
			return err
		}
		if err := WriteEij(w, r.Eij); err != nil {
			w.Close()
			return err
		}
		return w.Close()
	}
	return nil
}
