/*
 * report.go, part of gogist.
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

//Package report writes the results of a GIST run to disk: the per-voxel
//text table, OpenDX grids of single fields, the voxel-pair energy matrix,
//a run summary and quick histograms. File names ending in .gz or .zst are
//compressed transparently.
package report

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//wc wraps a file and its optional compressor so both get closed.
type wc struct {
	comp io.Closer
	f    *os.File
	w    io.Writer
}

func (c *wc) Write(p []byte) (int, error) { return c.w.Write(p) }

func (c *wc) Close() error {
	if c.comp != nil {
		if err := c.comp.Close(); err != nil {
			c.f.Close()
			return err
		}
	}
	return c.f.Close()
}

// Create opens name for writing, layering a gzip or zstd compressor on top
// when the name ends in .gz or .zst.
func Create(name string) (io.WriteCloser, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(name, ".gz"):
		z := gzip.NewWriter(f)
		return &wc{comp: z, f: f, w: z}, nil
	case strings.HasSuffix(name, ".zst"):
		z, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &wc{comp: z, f: f, w: z}, nil
	default:
		return &wc{f: f, w: f}, nil
	}
}
