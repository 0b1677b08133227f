/*
 * errors.go, part of gogist.
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

import "fmt"

//This module uses the goChem error conventions: a decorable error type
//so information can be added as the error goes up the call stack, without
//wrapping it into something else.

// Error is a gogist error. It implements the goChem chem.Error interface.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("gogist: %s", err.message)
}

// Decorate adds dec to the decoration slice of the error and returns the
// resulting slice. If dec is empty, it only returns the current slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical returns whether the error can be recovered from.
func (err Error) Critical() bool { return err.critical }

// The error kinds of the engine. Configuration and topology problems are
// fatal at setup time; numerical conditions are only warned about, once.
const (
	ErrConfig    = "ConfigurationError"
	ErrTopology  = "TopologyError"
	ErrTrajRead  = "TrajectoryError"
	ErrFinalized = "EngineFinalized"
)

func configError(format string, a ...interface{}) Error {
	return Error{message: fmt.Sprintf(ErrConfig+": "+format, a...), critical: true}
}

func topologyError(format string, a ...interface{}) Error {
	return Error{message: fmt.Sprintf(ErrTopology+": "+format, a...), critical: true}
}

func trajReadError(format string, a ...interface{}) Error {
	return Error{message: fmt.Sprintf(ErrTrajRead+": "+format, a...), critical: true}
}

//errDecorate asserts that err implements the goChem Error interface and
//decorates it with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2, ok := err.(interface{ Decorate(string) []string })
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err
}

// PanicMsg is the type used for the message of panics raised by gogist on
// programmer errors, in the goChem tradition. It satisfies error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNilCoordinates  = PanicMsg("gogist: nil coordinates given to the engine")
	ErrNotSetup        = PanicMsg("gogist: NextFrame called before Setup")
	ErrVoxelOutOfRange = PanicMsg("gogist: voxel index out of range")
)
