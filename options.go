/*
 * options.go, part of gogist.
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
	"log"
	"os"
	"runtime"

	"github.com/pelletier/go-toml"
)

// Options holds every knob of the engine. Zero values are not meaningful;
// always start from DefaultOptions. As in goChem/solv, each option has a
// single accessor that returns the current value and, if given an argument,
// sets it.
type Options struct {
	prefix      string
	center      [3]float64
	dim         [3]int
	spacing     float64
	bulkDens    float64
	temperature float64
	neighborCut float64
	doOrder     bool
	doEij       bool
	skipE       bool
	skipS       bool
	rigid       [3]int
	useCOM      bool
	exactNnVol  bool
	nnLayers    int
	soluteMask  string
	noImage     bool
	cpus        int
}

// DefaultOptions returns the option set cpptraj's gist action would use with
// no keywords: a 40x40x40 grid of 0.5 A spacing centered at the origin,
// T=300 K, water bulk density, 3.5 A neighbor cutoff, center-of-mass
// binning, the exact NN-volume formula and one NN search layer.
func DefaultOptions() *Options {
	o := new(Options)
	o.prefix = "gist"
	o.center = [3]float64{0, 0, 0}
	o.dim = [3]int{40, 40, 40}
	o.spacing = 0.5
	o.bulkDens = BulkDensWater
	o.temperature = 300.0
	o.neighborCut = 3.5
	o.rigid = [3]int{0, 1, 2}
	o.useCOM = true
	o.exactNnVol = true
	o.nnLayers = 1
	o.cpus = runtime.NumCPU()
	return o
}

// Prefix is the output filename prefix.
func (o *Options) Prefix(p ...string) string {
	if len(p) > 0 {
		o.prefix = p[0]
	}
	return o.prefix
}

// GridCenter is the Cartesian center of the grid, in A.
func (o *Options) GridCenter(c ...float64) (float64, float64, float64) {
	if len(c) >= 3 {
		o.center = [3]float64{c[0], c[1], c[2]}
	}
	return o.center[0], o.center[1], o.center[2]
}

// GridDim is the number of voxels along each axis.
func (o *Options) GridDim(d ...int) (int, int, int) {
	if len(d) >= 3 {
		o.dim = [3]int{d[0], d[1], d[2]}
	}
	return o.dim[0], o.dim[1], o.dim[2]
}

// GridSpacing is the voxel edge length, in A.
func (o *Options) GridSpacing(s ...float64) float64 {
	if len(s) > 0 && s[0] > 0 {
		o.spacing = s[0]
	}
	return o.spacing
}

// BulkDens is the reference solvent number density, in molecules/A^3.
func (o *Options) BulkDens(d ...float64) float64 {
	if len(d) > 0 && d[0] > 0 {
		o.bulkDens = d[0]
	}
	return o.bulkDens
}

// Temperature is the simulation temperature, in K.
func (o *Options) Temperature(t ...float64) float64 {
	if len(t) > 0 {
		o.temperature = t[0]
	}
	return o.temperature
}

// NeighborCut is the O-O neighbor cutoff, in A.
func (o *Options) NeighborCut(c ...float64) float64 {
	if len(c) > 0 && c[0] > 0 {
		o.neighborCut = c[0]
	}
	return o.neighborCut
}

// DoOrder enables the tetrahedral order parameter calculation.
func (o *Options) DoOrder(b ...bool) bool {
	if len(b) > 0 {
		o.doOrder = b[0]
	}
	return o.doOrder
}

// DoEij enables the sparse water-water voxel-pair energy matrix.
func (o *Options) DoEij(b ...bool) bool {
	if len(b) > 0 {
		o.doEij = b[0]
	}
	return o.doEij
}

// SkipEnergy disables the nonbond kernel.
func (o *Options) SkipEnergy(b ...bool) bool {
	if len(b) > 0 {
		o.skipE = b[0]
	}
	return o.skipE
}

// SkipEntropy disables the entropy estimators.
func (o *Options) SkipEntropy(b ...bool) bool {
	if len(b) > 0 {
		o.skipS = b[0]
	}
	return o.skipS
}

// RigidAtoms are the three in-molecule atom offsets defining the molecular
// reference frame (head atom first; O, H1, H2 for water).
func (o *Options) RigidAtoms(r ...int) (int, int, int) {
	if len(r) >= 3 {
		o.rigid = [3]int{r[0], r[1], r[2]}
	}
	return o.rigid[0], o.rigid[1], o.rigid[2]
}

// UseCOM selects center-of-mass binning; if false, the head atom position is
// the molecule center.
func (o *Options) UseCOM(b ...bool) bool {
	if len(b) > 0 {
		o.useCOM = b[0]
	}
	return o.useCOM
}

// ExactNnVolume selects the exact nearest-neighbor volume formulas for the
// entropy estimators; if false the legacy small-angle formulas are used.
func (o *Options) ExactNnVolume(b ...bool) bool {
	if len(b) > 0 {
		o.exactNnVol = b[0]
	}
	return o.exactNnVol
}

// NnLayers is the number of voxel layers around a voxel searched for
// translational/6D nearest neighbors.
func (o *Options) NnLayers(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		o.nnLayers = n[0]
	}
	return o.nnLayers
}

// SoluteMask overrides the topology solute/solvent classification with a
// selection (see ParseMask for the syntax). Empty means no override.
func (o *Options) SoluteMask(m ...string) string {
	if len(m) > 0 {
		o.soluteMask = m[0]
	}
	return o.soluteMask
}

// NoImage disables minimum-image distances even if a box is present.
func (o *Options) NoImage(b ...bool) bool {
	if len(b) > 0 {
		o.noImage = b[0]
	}
	return o.noImage
}

// Cpus is the number of goroutines used by the nonbond and entropy kernels.
func (o *Options) Cpus(c ...int) int {
	if len(c) > 0 && c[0] > 0 {
		o.cpus = c[0]
	}
	return o.cpus
}

//tomlOptions mirrors Options for file parsing, molsolvent-style.
type tomlOptions struct {
	Prefix        string    `toml:"gist.prefix"`
	GridCenter    []float64 `toml:"gist.grid_center"`
	GridDim       []int64   `toml:"gist.grid_dim"`
	GridSpacing   float64   `toml:"gist.grid_spacing"`
	BulkDens      float64   `toml:"gist.bulk_density"`
	Temperature   *float64  `toml:"gist.temperature"`
	NeighborCut   float64   `toml:"gist.neighbor_cutoff"`
	DoOrder       bool      `toml:"gist.do_order"`
	DoEij         bool      `toml:"gist.do_eij"`
	SkipEnergy    bool      `toml:"gist.skip_energy"`
	SkipEntropy   bool      `toml:"gist.skip_entropy"`
	RigidAtoms    []int64   `toml:"gist.rigid_atom_indices"`
	NoCOM         bool      `toml:"gist.no_com"`
	OldNnVolume   bool      `toml:"gist.old_nn_volume"`
	NnLayers      int64     `toml:"gist.nn_search_layers"`
	SoluteMask    string    `toml:"gist.solute_mask"`
	NoImage       bool      `toml:"gist.no_image"`
	Cpus          int64     `toml:"gist.cpus"`
}

// ReadOptions reads options from a TOML file. Keys not present keep their
// default values. The negative keys (no_com, old_nn_volume) follow the
// original keywords (nocom, oldnnvolume), so an empty file means defaults.
func ReadOptions(path string) (*Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Error{message: ErrConfig + ": " + err.Error(), critical: true}
	}
	defer f.Close()
	t := tomlOptions{GridSpacing: -1, BulkDens: -1, NeighborCut: -1, NnLayers: -1, Cpus: -1}
	if err := toml.NewDecoder(f).Decode(&t); err != nil {
		return nil, Error{message: ErrConfig + ": " + err.Error(), critical: true}
	}
	o := DefaultOptions()
	if t.Prefix != "" {
		o.Prefix(t.Prefix)
	}
	if len(t.GridCenter) >= 3 {
		o.GridCenter(t.GridCenter...)
	}
	if len(t.GridDim) >= 3 {
		o.GridDim(int(t.GridDim[0]), int(t.GridDim[1]), int(t.GridDim[2]))
	}
	o.GridSpacing(t.GridSpacing) //the accessors ignore non-positive values
	o.BulkDens(t.BulkDens)
	if t.Temperature != nil { //the value may be nonsense, validate catches it
		o.Temperature(*t.Temperature)
	}
	o.NeighborCut(t.NeighborCut)
	o.DoOrder(t.DoOrder)
	o.DoEij(t.DoEij)
	o.SkipEnergy(t.SkipEnergy)
	o.SkipEntropy(t.SkipEntropy)
	if len(t.RigidAtoms) >= 3 {
		o.RigidAtoms(int(t.RigidAtoms[0]), int(t.RigidAtoms[1]), int(t.RigidAtoms[2]))
	}
	o.UseCOM(!t.NoCOM)
	o.ExactNnVolume(!t.OldNnVolume)
	o.NnLayers(int(t.NnLayers))
	if t.SoluteMask != "" {
		o.SoluteMask(t.SoluteMask)
	}
	o.NoImage(t.NoImage)
	o.Cpus(int(t.Cpus))
	return o, nil
}

//validate applies the fatal option checks and emits the one-shot numerical
//warnings. Called by NewEngine.
func (o *Options) validate() error {
	if o.dim[0] < 1 || o.dim[1] < 1 || o.dim[2] < 1 {
		return configError("grid dimensions must be >0, but are %d %d %d", o.dim[0], o.dim[1], o.dim[2])
	}
	if o.spacing <= 0 {
		return configError("grid spacing must be positive, got %f", o.spacing)
	}
	if o.temperature < 0 {
		return configError("negative temperature: %f", o.temperature)
	}
	if o.doEij && o.skipE {
		return configError("the Eij matrix cannot be requested together with skipping the energy calculation")
	}
	if o.bulkDens > BulkDensWater*1.2 {
		log.Printf("gogist: Warning: solvent reference density %f is high, consider %f for 1g/cc water", o.bulkDens, BulkDensWater)
	} else if o.bulkDens < BulkDensWater*0.8 {
		log.Printf("gogist: Warning: solvent reference density %f is low, consider %f for 1g/cc water", o.bulkDens, BulkDensWater)
	}
	return nil
}
