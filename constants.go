/*
 * constants.go, part of gogist.
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

//Physical constants, in the Amber unit system the engine works in
//(kcal/mol, Angstrom, electron charges, Kelvin).
const (
	//ElecToAmber converts charges in electron units to Amber units.
	//Its square is the Coulomb prefactor in kcal/mol*A.
	ElecToAmber = 18.2223
	//QFac is the Coulomb prefactor for charges kept in electron units.
	QFac = ElecToAmber * ElecToAmber
	//GasKcal is the gas constant in kcal/mol/K.
	GasKcal = 0.0019872041
	//EulerMasc is the Euler-Mascheroni constant, the bias correction of the
	//k=1 nearest-neighbor entropy estimator.
	EulerMasc = 0.5772156649015328606
	//DebyeEA is one Debye in electron*Angstrom.
	DebyeEA = 0.20822678
	//BulkDensWater is the number density of liquid water at 1 g/cc, in
	//molecules per cubic Angstrom. The default reference density.
	BulkDensWater = 0.0334
)

//small is the tolerance used for "is this zero?" floating point decisions.
const small = 1e-10

//offGrid marks an atom or molecule center that did not fall in any voxel.
const offGrid = -1
