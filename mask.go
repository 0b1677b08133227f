/*
 * mask.go, part of gogist.
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
	"strconv"
	"strings"
)

// ParseMask evaluates a small subset of the Amber mask syntax against a
// topology, returning one flag per atom. Supported:
//
//	:1-5,8     atoms whose MolID falls in the listed values/ranges
//	@O,CA      atoms with one of the listed names
//	:1-5@CA    both conditions
//
// This stands in for the topology solvent/solute classification when the
// solute must be picked by hand.
func ParseMask(mask string, top Topology) ([]bool, error) {
	sel := make([]bool, top.Len())
	mask = strings.TrimSpace(mask)
	if mask == "" {
		return sel, nil
	}
	var molPart, namePart string
	rest := mask
	if strings.HasPrefix(rest, ":") {
		rest = rest[1:]
		if at := strings.Index(rest, "@"); at >= 0 {
			molPart = rest[:at]
			namePart = rest[at+1:]
		} else {
			molPart = rest
		}
	} else if strings.HasPrefix(rest, "@") {
		namePart = rest[1:]
	} else {
		return nil, configError("mask %q must start with ':' or '@'", mask)
	}
	type span struct{ lo, hi int }
	var spans []span
	if molPart != "" {
		for _, tok := range strings.Split(molPart, ",") {
			lo, hi, ok := parseSpan(tok)
			if !ok {
				return nil, configError("bad residue range %q in mask %q", tok, mask)
			}
			spans = append(spans, span{lo, hi})
		}
	}
	var names []string
	if namePart != "" {
		names = strings.Split(namePart, ",")
	}
	for i := 0; i < top.Len(); i++ {
		at := top.Atom(i)
		ok := true
		if spans != nil {
			ok = false
			for _, s := range spans {
				if at.MolID >= s.lo && at.MolID <= s.hi {
					ok = true
					break
				}
			}
		}
		if ok && names != nil {
			ok = false
			for _, n := range names {
				if at.Name == n {
					ok = true
					break
				}
			}
		}
		sel[i] = ok
	}
	return sel, nil
}

func parseSpan(tok string) (int, int, bool) {
	tok = strings.TrimSpace(tok)
	if dash := strings.Index(tok, "-"); dash > 0 {
		lo, err1 := strconv.Atoi(tok[:dash])
		hi, err2 := strconv.Atoi(tok[dash+1:])
		if err1 != nil || err2 != nil || hi < lo {
			return 0, 0, false
		}
		return lo, hi, true
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, 0, false
	}
	return v, v, true
}
