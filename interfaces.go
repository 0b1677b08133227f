/*
 * interfaces.go, part of gogist.
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
	chem "github.com/rmera/gochem"
	"gonum.org/v1/gonum/mat"
)

// Topology is the capability the engine needs from a parameterized system:
// goChem atoms (which carry name, symbol, mass and charge) plus the molecule
// partition, the solvent classification and the Lennard-Jones pair table.
// Trajectory input is handled separately, through the goChem chem.Traj
// interface.
type Topology interface {
	chem.Atomer

	//LJPair returns the Lennard-Jones A (r^-12) and B (r^-6) coefficients,
	//in kcal/mol*A^n, for the atom pair i,j.
	LJPair(i, j int) (A, B float64)

	//MolIndex returns the index of the molecule to which the atom i belongs.
	MolIndex(i int) int

	//NMol returns the number of molecules in the system.
	NMol() int

	//Mol returns the first atom of the mol-th molecule and the number of
	//atoms in it.
	Mol(mol int) (first, natoms int)

	//IsSolvent tells whether the mol-th molecule is solvent.
	IsSolvent(mol int) bool
}

// Sink consumes the per-voxel scalar fields produced by the engine. The
// report package implements it for text tables and OpenDX files.
type Sink interface {
	//WriteField stores or writes one value per voxel for the named field.
	WriteField(name string, data []float64, g *Grid) error
}

// Top is a simple concrete Topology backed by a slice of goChem atoms, a
// per-atom type index and symmetric A/B coefficient tables, the way Amber
// topologies store them.
type Top struct {
	atoms   []*chem.Atom
	types   []int
	ljA     *mat.SymDense
	ljB     *mat.SymDense
	mols    [][2]int //first atom, natoms
	molOf   []int
	solvent []bool
}

// NewTop builds a Top. types has one LJ type index per atom; ljA and ljB are
// indexed by type pair. mols lists each molecule as {first atom, natoms}, in
// atom order, and solvent flags each molecule. NewTop panics on inconsistent
// slices, as a topology that does not describe its own atoms is a programmer
// error.
func NewTop(atoms []*chem.Atom, types []int, ljA, ljB *mat.SymDense, mols [][2]int, solvent []bool) *Top {
	if len(types) != len(atoms) || len(mols) != len(solvent) {
		panic(PanicMsg("gogist: inconsistent slices given to NewTop"))
	}
	molOf := make([]int, len(atoms))
	covered := 0
	for m, v := range mols {
		for i := v[0]; i < v[0]+v[1]; i++ {
			molOf[i] = m
		}
		covered += v[1]
	}
	if covered != len(atoms) {
		panic(PanicMsg("gogist: molecule partition does not cover all atoms in NewTop"))
	}
	return &Top{atoms: atoms, types: types, ljA: ljA, ljB: ljB, mols: mols, molOf: molOf, solvent: solvent}
}

// Atom returns the i-th atom. Panics if out of range, per the goChem Atomer
// contract.
func (T *Top) Atom(i int) *chem.Atom { return T.atoms[i] }

// Len returns the number of atoms.
func (T *Top) Len() int { return len(T.atoms) }

func (T *Top) LJPair(i, j int) (float64, float64) {
	ti, tj := T.types[i], T.types[j]
	return T.ljA.At(ti, tj), T.ljB.At(ti, tj)
}

func (T *Top) MolIndex(i int) int { return T.molOf[i] }

func (T *Top) NMol() int { return len(T.mols) }

func (T *Top) Mol(mol int) (int, int) { return T.mols[mol][0], T.mols[mol][1] }

func (T *Top) IsSolvent(mol int) bool { return T.solvent[mol] }
