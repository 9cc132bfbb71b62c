/*
 * interfaces.go, part of openqube
 *
 * Copyright 2024 The openqube developers
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

package openqube

import "sync"

// FieldType tags the kind of scalar field a grid holds.
type FieldType int

const (
	FieldUnknown FieldType = iota
	//FieldMO marks a molecular-orbital amplitude field.
	FieldMO
	//FieldDensity marks an electron-density field.
	FieldDensity
)

func (f FieldType) String() string {
	switch f {
	case FieldMO:
		return "MO"
	case FieldDensity:
		return "Density"
	}
	return "Unknown"
}

//Grid is the contract with the volumetric container the evaluation writes
//into. The evaluation takes the write lock for the full duration of a run,
//so any reader holding the read lock is guaranteed to see either the
//previous complete field or the new one, never a partial mix.
type Grid interface {

	//Len returns the number of points in the grid.
	Len() int

	//Position returns the cartesian position, in Å, of the i-th point.
	//Should panic if out of range.
	Position(i int) [3]float64

	//SetValue sets the scalar value at the i-th point.
	SetValue(i int, v float64)

	//SetFieldType tags the content of the grid.
	SetFieldType(t FieldType)

	//Lock returns the lock guarding the grid's data.
	Lock() *sync.RWMutex
}

//Atomer is the read-only contract with the atom store: position lookup
//(in bohr) by index, atomic number lookup and atom count.
type Atomer interface {
	AtomPos(i int) [3]float64
	AtomicNumber(i int) int
	Len() int
}

//Errors

// Error is the interface for errors that the packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Adds information when passing the error up. Each call also returns the current "decoration" slice of strings. If passed an empty string, it just returns the current value without adding anything.
}

//CError is the concrete error type of the root package.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

//Decorate adds new information to the error and returns the "decoration" slice.
func (err CError) Decorate(deco string) []string {
	//Even though this method does not use a pointer receiver and tries to alter the receiver,
	//it works, since err.deco is a slice, and hence a pointer itself.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//errDecorate asserts that err implements Error and decorates it with the
//caller's name before returning it. Panics on a non-Error error.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//For errors use CError.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrAtomOutOfRange  = PanicMsg("openqube: Requested atom out of range")
	ErrShellOutOfRange = PanicMsg("openqube: Requested shell out of range")
)
