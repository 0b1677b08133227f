/*
 * mask_test.go, part of gogist.
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

import "testing"

func TestParseMask(Te *testing.T) {
	top := testTop(3, true) //waters are MolID 1-3, the solute atom MolID 4
	sel, err := ParseMask(":4", top)
	if err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < top.Len(); i++ {
		want := i == 9
		if sel[i] != want {
			Te.Errorf("atom %d: selected %v", i, sel[i])
		}
	}
	sel, err = ParseMask("@O", top)
	if err != nil {
		Te.Fatal(err)
	}
	n := 0
	for i, s := range sel {
		if s {
			n++
			if top.Atom(i).Name != "O" {
				Te.Errorf("atom %d is not an O", i)
			}
		}
	}
	if n != 3 {
		Te.Errorf("expected 3 O atoms, got %d", n)
	}
	sel, err = ParseMask(":1-2@H1", top)
	if err != nil {
		Te.Fatal(err)
	}
	if !sel[1] || !sel[4] || sel[7] {
		Te.Errorf("residue+name selection wrong: %v", sel)
	}
	if _, err = ParseMask("O,CA", top); err == nil {
		Te.Errorf("a mask without : or @ should be rejected")
	}
	if _, err = ParseMask(":5-2", top); err == nil {
		Te.Errorf("an inverted range should be rejected")
	}
}
