/*
 * doc.go, part of gogist.
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

/*Package gist implements Grid Inhomogeneous Solvation Theory (GIST) analysis
of explicit-solvent molecular dynamics trajectories, as a companion library to
goChem (github.com/rmera/gochem).

A fixed Cartesian grid is embedded in the simulation box and, frame by frame,
every solvent molecule whose center falls in a voxel contributes to that
voxel's accumulators: water population, rigid-body orientation (as a unit
quaternion), dipole components, per-element atom counts, solute-water and
water-water nonbonded energies, oxygen-oxygen neighbor counts and the
tetrahedral order parameter. After the last frame, translational,
orientational and six-dimensional entropies are estimated from
nearest-neighbor statistics (Kozachenko-Leonenko, k=1) in position,
quaternion and combined space, and all accumulators are normalized into
densities and per-water averages.

The usual workflow is

	o := gist.DefaultOptions()
	o.GridDim(40, 40, 40)
	o.Temperature(300)
	e, err := gist.NewEngine(o)
	//handle the error
	err = e.Setup(top) //top implements gist.Topology
	//Either feed frames one by one with e.NextFrame(coords, box),
	//or let the engine drain a goChem trajectory:
	err = e.Run(traj)
	res, err := e.Finalize()

res is a *gist.Results, which the sibling package report turns into the
per-voxel text table, OpenDX grids and the (optional) water-water Eij matrix
file.

Energies are in kcal/mol, distances in Angstrom, charges in electron units
(the Amber conversion constant is applied inside the nonbond kernel) and
entropies are reported as -TdS in kcal/mol, referenced to the bulk.*/
package gist
