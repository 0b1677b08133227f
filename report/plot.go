/*
 * plot.go, part of gogist.
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
	"fmt"

	gist "github.com/rmera/gogist"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// HistogramPNG plots a histogram of the nonzero values of a per-voxel field
// and saves it to fname (the extension selects the format, normally .png).
// A quick way of eyeballing whether a run converged to sane distributions.
func HistogramPNG(name, fname string, data []float64, bins int) error {
	vals := make(plotter.Values, 0, len(data))
	for _, v := range data {
		if v != 0 {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return fmt.Errorf("field %s has no nonzero values to plot", name)
	}
	p := plot.New()
	p.Title.Text = name
	p.X.Label.Text = name
	p.Y.Label.Text = "voxels"
	h, err := plotter.NewHist(vals, bins)
	if err != nil {
		return err
	}
	p.Add(h)
	return p.Save(5*vg.Inch, 4*vg.Inch, fname)
}

// QCPlots writes histograms of the per-water energies and entropies under
// the given prefix.
func QCPlots(prefix string, r *gist.Results, bins int) error {
	if bins <= 0 {
		bins = 50
	}
	fields := []struct {
		name string
		data []float64
	}{
		{"Esw-norm", r.EswNorm},
		{"Eww-norm", r.EwwNorm},
		{"dTStrans-norm", r.DTStransNorm},
		{"dTSorient-norm", r.DTSorientNorm},
		{"order-norm", r.Order},
	}
	for _, f := range fields {
		err := HistogramPNG(f.name, fmt.Sprintf("%s-%s.png", prefix, f.name), f.data, bins)
		if err != nil {
			//a field can be legitimately empty (say, a skipped estimate)
			continue
		}
	}
	return nil
}
