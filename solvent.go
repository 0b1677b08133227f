/*
 * solvent.go, part of gogist.
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
	"math"
)

//chargeTol is the tolerance for the solvent net-charge warning; qSmall the
//one for comparing individual charges between molecules.
const (
	chargeTol = 1e-4
	qSmall    = 1e-8
)

// Solvent is the stoichiometry template recorded from the first solvent
// molecule of the run. Every later solvent molecule must match it.
type Solvent struct {
	natoms   int
	charges  []float64
	elements []string //unique element symbols, stable insertion order
	elemIdx  []int    //per in-molecule atom, index into elements
	elemCnt  []int    //atoms of each element per molecule
	rigid    [3]int
}

//newSolvent records the stoichiometry template from the molecule starting
//at atom first, with n atoms. It warns once if the molecule is not
//water-like or its charges do not sum to zero.
func newSolvent(top Topology, first, n int, rigid [3]int) (*Solvent, error) {
	s := new(Solvent)
	s.natoms = n
	s.rigid = rigid
	for _, r := range rigid {
		if r < 0 || r >= n {
			return nil, configError("rigid atom index %d outside the %d-atom solvent molecule", r, n)
		}
	}
	qsum := 0.0
	s.charges = make([]float64, 0, n)
	for i := 0; i < n; i++ {
		at := top.Atom(first + i)
		s.charges = append(s.charges, at.Charge)
		qsum += at.Charge
		found := false
		for e, sym := range s.elements {
			if sym == at.Symbol {
				s.elemIdx = append(s.elemIdx, e)
				s.elemCnt[e]++
				found = true
				break
			}
		}
		if !found {
			s.elements = append(s.elements, at.Symbol)
			s.elemIdx = append(s.elemIdx, len(s.elements)-1)
			s.elemCnt = append(s.elemCnt, 1)
		}
	}
	if math.Abs(qsum) > chargeTol {
		log.Printf("gogist: Warning: charges on solvent do not sum to 0 (%g)", qsum)
	}
	if n < 3 || top.Atom(first).Symbol != "O" {
		log.Printf("gogist: first solvent molecule (atom %d) does not look like water", first)
	}
	return s, nil
}

//check validates a later solvent molecule against the template: differing
//atom counts are fatal, differing charges only warned about.
func (s *Solvent) check(top Topology, first, n int) error {
	if n != s.natoms {
		return topologyError("all solvent molecules must have the same number of atoms: got %d, expected %d (molecule starting at atom %d)", n, s.natoms, first)
	}
	for i := 0; i < n; i++ {
		q := top.Atom(first + i).Charge
		if math.Abs(q-s.charges[i]) > qSmall {
			log.Printf("gogist: Warning: charge on solvent atom %d (%g) does not match the first solvent molecule (%g)", first+i, q, s.charges[i])
		}
	}
	return nil
}

// NAtoms returns the atoms per solvent molecule.
func (s *Solvent) NAtoms() int { return s.natoms }

// Elements returns the unique element symbols of the solvent, in the order
// they appear within a molecule.
func (s *Solvent) Elements() []string { return s.elements }

// ElemsPerMol returns how many atoms of each element a molecule has, in
// Elements order.
func (s *Solvent) ElemsPerMol() []int { return s.elemCnt }

//head returns the in-molecule offset of the head (first rigid) atom.
func (s *Solvent) head() int { return s.rigid[0] }
