/*
 * engine_test.go, part of gogist.
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
	"errors"
	"math"
	"strings"
	"testing"

	chem "github.com/rmera/gochem"
	v3 "github.com/rmera/gochem/v3"
	"gonum.org/v1/gonum/mat"
)

//TIP3P-ish parameters for the test systems. Type 0 is water O, type 1 is
//water H, type 2 a generic solute atom with the O LJ parameters.
const (
	tstQO  = -0.834
	tstQH  = 0.417
	tstLJA = 582000.0
	tstLJB = 595.0
)

func testLJTables() (*mat.SymDense, *mat.SymDense) {
	A := mat.NewSymDense(3, nil)
	B := mat.NewSymDense(3, nil)
	A.SetSym(0, 0, tstLJA)
	B.SetSym(0, 0, tstLJB)
	A.SetSym(0, 2, tstLJA)
	B.SetSym(0, 2, tstLJB)
	A.SetSym(2, 2, tstLJA)
	B.SetSym(2, 2, tstLJB)
	return A, B
}

//testTop builds nwat 3-site waters plus, optionally, one single-atom
//neutral-LJ solute at the end.
func testTop(nwat int, solute bool) *Top {
	var atoms []*chem.Atom
	var types []int
	var mols [][2]int
	var isSolv []bool
	for i := 0; i < nwat; i++ {
		atoms = append(atoms,
			&chem.Atom{Name: "O", Symbol: "O", Mass: 16.0, Charge: tstQO, MolID: i + 1},
			&chem.Atom{Name: "H1", Symbol: "H", Mass: 1.0, Charge: tstQH, MolID: i + 1},
			&chem.Atom{Name: "H2", Symbol: "H", Mass: 1.0, Charge: tstQH, MolID: i + 1})
		types = append(types, 0, 1, 1)
		mols = append(mols, [2]int{3 * i, 3})
		isSolv = append(isSolv, true)
	}
	if solute {
		atoms = append(atoms, &chem.Atom{Name: "C", Symbol: "C", Mass: 12.0, Charge: 0.2, MolID: nwat + 1})
		types = append(types, 2)
		mols = append(mols, [2]int{3 * nwat, 1})
		isSolv = append(isSolv, false)
	}
	A, B := testLJTables()
	return NewTop(atoms, types, A, B, mols, isSolv)
}

//setWater puts the water starting at atom first with its O at (x,y,z), in
//the TIP3P geometry, lying on the xy plane.
func setWater(c *v3.Matrix, first int, x, y, z float64) {
	c.Set(first, 0, x)
	c.Set(first, 1, y)
	c.Set(first, 2, z)
	c.Set(first+1, 0, x+0.9572)
	c.Set(first+1, 1, y)
	c.Set(first+1, 2, z)
	c.Set(first+2, 0, x-0.2397)
	c.Set(first+2, 1, y+0.9266)
	c.Set(first+2, 2, z)
}

func testOptions() *Options {
	o := DefaultOptions()
	o.Cpus(2)
	o.NoImage(true)
	o.UseCOM(false) //so the binning point is just the O position
	return o
}

func TestVoxelAssignment(Te *testing.T) {
	o := testOptions()
	o.SkipEnergy(true)
	o.SkipEntropy(true)
	E, err := NewEngine(o)
	if err != nil {
		Te.Fatal(err)
	}
	top := testTop(2, true)
	if err := E.Setup(top); err != nil {
		Te.Fatal(err)
	}
	if E.NSolvent() != 2 {
		Te.Errorf("expected 2 solvent molecules, got %d", E.NSolvent())
	}
	c := v3.Zeros(top.Len())
	setWater(c, 0, 0.25, 0.25, 0.25) //inside the default grid
	setWater(c, 3, 100, 100, 100)    //far off it
	c.Set(6, 0, -0.25)               //the solute atom, on grid
	c.Set(6, 1, 0.25)
	c.Set(6, 2, 0.25)
	if err := E.NextFrame(c, nil); err != nil {
		Te.Fatal(err)
	}
	r, err := E.Finalize()
	if err != nil {
		Te.Fatal(err)
	}
	g := E.Grid()
	want := g.Index(20, 20, 20) //the default grid spans [-10,10) at h=0.5
	if r.Pop[want] != 1 {
		Te.Errorf("water not found in voxel %d", want)
	}
	if r.NwTotal != 1 {
		Te.Errorf("expected 1 water sighting in total, got %d", r.NwTotal)
	}
	if r.NSolute[g.Index(19, 20, 20)] != 1 {
		Te.Errorf("solute atom not counted in its voxel")
	}
	//per-element density: 1 O and 2 H sightings of the on-grid water
	sumO, sumH := 0.0, 0.0
	densFac := 1.0 / g.VoxelVolume() //1 frame
	for v := 0; v < g.Nvox(); v++ {
		sumO += r.GElem[0][v]
		sumH += r.GElem[1][v]
	}
	if math.Abs(sumO-densFac/o.BulkDens()) > 1e-8 {
		Te.Errorf("O density off: %v", sumO)
	}
	if math.Abs(sumH-2*densFac/(o.BulkDens()*2)) > 1e-8 {
		Te.Errorf("H density off: %v", sumH)
	}
}

//The dipole of a voxel with a single water must point along the molecular
//dipole, and its magnitude must follow the Debye conversion.
func TestDipole(Te *testing.T) {
	o := testOptions()
	o.SkipEnergy(true)
	o.SkipEntropy(true)
	E, err := NewEngine(o)
	if err != nil {
		Te.Fatal(err)
	}
	top := testTop(1, false)
	if err := E.Setup(top); err != nil {
		Te.Fatal(err)
	}
	c := v3.Zeros(top.Len())
	setWater(c, 0, 0.25, 0.25, 0.25)
	if err := E.NextFrame(c, nil); err != nil {
		Te.Fatal(err)
	}
	r, err := E.Finalize()
	if err != nil {
		Te.Fatal(err)
	}
	v := E.Grid().Index(20, 20, 20)
	var want [3]float64
	for i := 0; i < 3; i++ {
		q := top.Atom(i).Charge
		want[0] += q * c.At(i, 0)
		want[1] += q * c.At(i, 1)
		want[2] += q * c.At(i, 2)
	}
	fac := 1.0 / (DebyeEA * E.Grid().VoxelVolume())
	if math.Abs(r.DipoleX[v]-want[0]*fac) > 1e-10 || math.Abs(r.DipoleY[v]-want[1]*fac) > 1e-10 {
		Te.Errorf("dipole mismatch: got (%g,%g,%g)", r.DipoleX[v], r.DipoleY[v], r.DipoleZ[v])
	}
	m := math.Sqrt(r.DipoleX[v]*r.DipoleX[v] + r.DipoleY[v]*r.DipoleY[v] + r.DipoleZ[v]*r.DipoleZ[v])
	if math.Abs(r.Dipole[v]-m) > 1e-12 {
		Te.Errorf("dipole magnitude inconsistent")
	}
}

//pairEnergy sums the nonbond energy between two molecules of the topology,
//with plain distances.
func pairEnergy(top *Top, c *v3.Matrix, m1, m2 int) float64 {
	f1, n1 := top.Mol(m1)
	f2, n2 := top.Mol(m2)
	e := 0.0
	for i := f1; i < f1+n1; i++ {
		for j := f2; j < f2+n2; j++ {
			r2 := Dist2NoImage(c.At(i, 0), c.At(i, 1), c.At(i, 2),
				c.At(j, 0), c.At(j, 1), c.At(j, 2))
			A, B := top.LJPair(i, j)
			qq := top.Atom(i).Charge * top.Atom(j).Charge * QFac
			evdw, eel := ljCoulomb(r2, qq, A, B)
			e += evdw + eel
		}
	}
	return e
}

func TestLJCoulomb(Te *testing.T) {
	evdw, eel := ljCoulomb(4.0, 2.0, 4096.0, 64.0)
	if math.Abs(evdw-0.0) > 1e-12 { //4096/4^6 - 64/4^3 = 1 - 1
		Te.Errorf("vdW term: got %g", evdw)
	}
	if math.Abs(eel-1.0) > 1e-12 { //2/sqrt(4)
		Te.Errorf("Coulomb term: got %g", eel)
	}
}

func TestWaterWaterEnergy(Te *testing.T) {
	o := testOptions()
	o.SkipEntropy(true)
	o.DoEij(true)
	E, err := NewEngine(o)
	if err != nil {
		Te.Fatal(err)
	}
	top := testTop(2, false)
	if err := E.Setup(top); err != nil {
		Te.Fatal(err)
	}
	c := v3.Zeros(top.Len())
	setWater(c, 0, 0.1, 0.1, 0.1)
	setWater(c, 3, 3.1, 0.1, 0.1) //different voxel, within the 3.5 A cutoff
	if err := E.NextFrame(c, nil); err != nil {
		Te.Fatal(err)
	}
	r, err := E.Finalize()
	if err != nil {
		Te.Fatal(err)
	}
	g := E.Grid()
	v1 := g.Locate(0.1, 0.1, 0.1)
	v2 := g.Locate(3.1, 0.1, 0.1)
	epair := pairEnergy(top, c, 0, 1)
	if math.Abs(r.EwwNorm[v1]-0.5*epair) > 1e-9 || math.Abs(r.EwwNorm[v2]-0.5*epair) > 1e-9 {
		Te.Errorf("Eww: each voxel should get half the pair energy %g, got %g and %g",
			epair, r.EwwNorm[v1], r.EwwNorm[v2])
	}
	if math.Abs(r.EwwDens[v1]-0.5*epair/g.VoxelVolume()) > 1e-9 {
		Te.Errorf("Eww density does not match the per-water value")
	}
	for v := 0; v < g.Nvox(); v++ {
		if r.EswDens[v] != 0 {
			Te.Errorf("nonzero Esw with no solute, voxel %d", v)
		}
	}
	//the O atoms are 3 A apart, each water is the other's neighbor
	if r.NeighborNorm[v1] != 1 || r.NeighborNorm[v2] != 1 {
		Te.Errorf("O-O neighbor count: got %g and %g", r.NeighborNorm[v1], r.NeighborNorm[v2])
	}
	if r.Eij == nil {
		Te.Fatal("no Eij matrix in the results")
	}
	if math.Abs(r.Eij.At(v1, v2)-0.5*epair) > 1e-9 {
		Te.Errorf("Eij(%d,%d): want %g, got %g", v1, v2, 0.5*epair, r.Eij.At(v1, v2))
	}
	if r.Eij.At(v2, v1) != r.Eij.At(v1, v2) {
		Te.Errorf("Eij not symmetric")
	}
}

func TestSoluteWaterEnergy(Te *testing.T) {
	o := testOptions()
	o.SkipEntropy(true)
	E, err := NewEngine(o)
	if err != nil {
		Te.Fatal(err)
	}
	top := testTop(1, true)
	if err := E.Setup(top); err != nil {
		Te.Fatal(err)
	}
	c := v3.Zeros(top.Len())
	setWater(c, 0, 0.1, 0.1, 0.1)
	c.Set(3, 0, 3.1)
	c.Set(3, 1, 0.1)
	c.Set(3, 2, 0.1)
	if err := E.NextFrame(c, nil); err != nil {
		Te.Fatal(err)
	}
	r, err := E.Finalize()
	if err != nil {
		Te.Fatal(err)
	}
	v1 := E.Grid().Locate(0.1, 0.1, 0.1)
	epair := pairEnergy(top, c, 0, 1)
	if math.Abs(r.EswNorm[v1]-epair) > 1e-9 {
		Te.Errorf("Esw: want the full pair energy %g, got %g", epair, r.EswNorm[v1])
	}
	if math.Abs(r.EswTotal-epair) > 1e-9 {
		Te.Errorf("Esw total: want %g, got %g", epair, r.EswTotal)
	}
}

//A water at the center of a perfect tetrahedron of waters must have a
//tetrahedral order parameter of exactly 1.
func TestOrderTetrahedron(Te *testing.T) {
	o := testOptions()
	o.SkipEnergy(true)
	o.SkipEntropy(true)
	o.DoOrder(true)
	E, err := NewEngine(o)
	if err != nil {
		Te.Fatal(err)
	}
	top := testTop(5, false)
	if err := E.Setup(top); err != nil {
		Te.Fatal(err)
	}
	c := v3.Zeros(top.Len())
	cx, cy, cz := 0.25, 0.25, 0.25
	setWater(c, 0, cx, cy, cz)
	d := 2.8 / math.Sqrt(3.0)
	dirs := [4][3]float64{{1, 1, 1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1}}
	for i, dir := range dirs {
		setWater(c, 3*(i+1), cx+d*dir[0], cy+d*dir[1], cz+d*dir[2])
	}
	if err := E.NextFrame(c, nil); err != nil {
		Te.Fatal(err)
	}
	r, err := E.Finalize()
	if err != nil {
		Te.Fatal(err)
	}
	v := E.Grid().Locate(cx, cy, cz)
	if math.Abs(r.Order[v]-1.0) > 1e-6 {
		Te.Errorf("tetrahedral order parameter: want 1.0, got %g", r.Order[v])
	}
}

//in-memory trajectory for the Run driver.
type memTraj struct {
	frames []*v3.Matrix
	box    []float64
	at     int
	natoms int
}

func (M *memTraj) Readable() bool { return M.at < len(M.frames) }

func (M *memTraj) Len() int { return M.natoms }

func (M *memTraj) Next(out *v3.Matrix, box ...[]float64) error {
	if M.at >= len(M.frames) {
		return tstLastFrame{}
	}
	if out != nil {
		out.Copy(M.frames[M.at])
	}
	if len(box) > 0 && box[0] != nil && M.box != nil {
		copy(box[0], M.box)
	}
	M.at++
	return nil
}

type tstLastFrame struct{}

func (e tstLastFrame) Error() string                { return "EOF" }
func (e tstLastFrame) Critical() bool               { return false }
func (e tstLastFrame) Decorate(string) []string     { return nil }
func (e tstLastFrame) FileName() string             { return "" }
func (e tstLastFrame) Format() string               { return "mem" }
func (e tstLastFrame) NormalLastFrameTermination() {}

func TestRunDriver(Te *testing.T) {
	o := testOptions()
	o.SkipEnergy(true)
	o.SkipEntropy(true)
	E, err := NewEngine(o)
	if err != nil {
		Te.Fatal(err)
	}
	top := testTop(1, false)
	if err := E.Setup(top); err != nil {
		Te.Fatal(err)
	}
	c := v3.Zeros(top.Len())
	setWater(c, 0, 0.25, 0.25, 0.25)
	traj := &memTraj{frames: []*v3.Matrix{c, c, c}, natoms: top.Len()}
	if err := E.Run(traj); err != nil {
		Te.Fatal(err)
	}
	if E.Nframes() != 3 {
		Te.Errorf("expected 3 frames, got %d", E.Nframes())
	}
	r, err := E.Finalize()
	if err != nil {
		Te.Fatal(err)
	}
	if r.Pop[E.Grid().Index(20, 20, 20)] != 3 {
		Te.Errorf("water not seen in all frames")
	}
}

//trajectory whose reads always fail with a plain error.
type brokenTraj struct{ natoms int }

func (M *brokenTraj) Readable() bool { return true }

func (M *brokenTraj) Len() int { return M.natoms }

func (M *brokenTraj) Next(out *v3.Matrix, box ...[]float64) error {
	return errors.New("truncated frame record")
}

func TestRunReadFailure(Te *testing.T) {
	o := testOptions()
	o.SkipEnergy(true)
	o.SkipEntropy(true)
	E, err := NewEngine(o)
	if err != nil {
		Te.Fatal(err)
	}
	top := testTop(1, false)
	if err := E.Setup(top); err != nil {
		Te.Fatal(err)
	}
	err = E.Run(&brokenTraj{natoms: top.Len()})
	if err == nil {
		Te.Fatal("a failing trajectory read should abort the run")
	}
	if !strings.Contains(err.Error(), ErrTrajRead) {
		Te.Errorf("read failure not reported as a trajectory error: %v", err)
	}
}

func TestMolCenterMassless(Te *testing.T) {
	o := testOptions()
	o.UseCOM(true)
	o.SkipEnergy(true)
	o.SkipEntropy(true)
	E, err := NewEngine(o)
	if err != nil {
		Te.Fatal(err)
	}
	top := testTop(1, false)
	for i := 0; i < top.Len(); i++ {
		top.Atom(i).Mass = 3e-11 //under the total-mass floor
	}
	if err := E.Setup(top); err != nil {
		Te.Fatal(err)
	}
	c := v3.Zeros(top.Len())
	c.Set(0, 0, 0)
	c.Set(1, 0, 3)
	c.Set(2, 1, 3)
	got := E.molCenter(c, 0)
	want := [3]float64{1, 1, 0} //geometric center, the residual m*r sums do not leak in
	for d := 0; d < 3; d++ {
		if math.Abs(got[d]-want[d]) > 1e-12 {
			Te.Fatalf("massless center: want %v, got %v", want, got)
		}
	}
}

func TestLifecycle(Te *testing.T) {
	o := testOptions()
	o.SkipEnergy(true)
	o.SkipEntropy(true)
	E, err := NewEngine(o)
	if err != nil {
		Te.Fatal(err)
	}
	func() {
		defer func() {
			if recover() == nil {
				Te.Errorf("NextFrame before Setup should panic")
			}
		}()
		E.NextFrame(v3.Zeros(3), nil)
	}()
	top := testTop(1, false)
	if err := E.Setup(top); err != nil {
		Te.Fatal(err)
	}
	if _, err := E.Finalize(); err == nil {
		Te.Errorf("Finalize with no frames should fail")
	}
}

func TestFinalizeTwice(Te *testing.T) {
	o := testOptions()
	o.SkipEnergy(true)
	o.SkipEntropy(true)
	E, err := NewEngine(o)
	if err != nil {
		Te.Fatal(err)
	}
	top := testTop(1, false)
	if err := E.Setup(top); err != nil {
		Te.Fatal(err)
	}
	c := v3.Zeros(top.Len())
	setWater(c, 0, 0.25, 0.25, 0.25)
	if err := E.NextFrame(c, nil); err != nil {
		Te.Fatal(err)
	}
	if _, err := E.Finalize(); err != nil {
		Te.Fatal(err)
	}
	if _, err := E.Finalize(); err == nil {
		Te.Errorf("second Finalize should fail")
	}
	if err := E.NextFrame(c, nil); err == nil {
		Te.Errorf("NextFrame after Finalize should fail")
	}
}

func TestMissingBox(Te *testing.T) {
	o := testOptions()
	o.NoImage(false) //imaging requested, so a box is mandatory
	o.SkipEnergy(true)
	o.SkipEntropy(true)
	E, err := NewEngine(o)
	if err != nil {
		Te.Fatal(err)
	}
	top := testTop(1, false)
	if err := E.Setup(top); err != nil {
		Te.Fatal(err)
	}
	c := v3.Zeros(top.Len())
	setWater(c, 0, 0.25, 0.25, 0.25)
	if err := E.NextFrame(c, nil); err == nil {
		Te.Errorf("a frame without a box should be rejected when imaging is on")
	}
	if err := E.NextFrame(c, make([]float64, 9)); err == nil {
		Te.Errorf("an all-zero box should be rejected when imaging is on")
	}
}
