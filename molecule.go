/*
 * molecule.go, part of openqube
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

/**Note: Several functions here panic instead of returning errors. This is because they are "fundamental"
 * functions. If something goes wrong here, the program is way-most likely wrong and should crash.
 * The panics are related to out-of-bounds access on a nil or shorter-than-expected molecule.**/

//Atom holds the information the evaluation needs about one atom: its
//position, in bohr, and its atomic number.
type Atom struct {
	Pos [3]float64
	Z   int
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	return &Atom{Pos: A.Pos, Z: A.Z}
}

//Molecule is a minimal atom store: positions and atomic numbers, in the
//order the atoms were added. It implements Atomer.
type Molecule struct {
	atoms []*Atom
}

//NewMolecule returns an empty Molecule.
func NewMolecule() *Molecule {
	return &Molecule{atoms: make([]*Atom, 0, 10)}
}

//AddAtom appends an atom with the given position (bohr) and atomic number,
//returning its index.
func (M *Molecule) AddAtom(pos [3]float64, z int) int {
	M.atoms = append(M.atoms, &Atom{Pos: pos, Z: z})
	return len(M.atoms) - 1
}

//Atom returns the i-th atom. Panics if out of range.
func (M *Molecule) Atom(i int) *Atom {
	if i >= M.Len() {
		panic(ErrAtomOutOfRange)
	}
	return M.atoms[i]
}

//AtomPos returns the position, in bohr, of the i-th atom.
//Panics if out of range.
func (M *Molecule) AtomPos(i int) [3]float64 {
	if i >= M.Len() {
		panic(ErrAtomOutOfRange)
	}
	return M.atoms[i].Pos
}

//AtomicNumber returns the atomic number of the i-th atom.
//Panics if out of range.
func (M *Molecule) AtomicNumber(i int) int {
	if i >= M.Len() {
		panic(ErrAtomOutOfRange)
	}
	return M.atoms[i].Z
}

//Len returns the number of atoms in the molecule.
func (M *Molecule) Len() int {
	return len(M.atoms)
}

//Copy returns a deep copy of the molecule.
func (M *Molecule) Copy() *Molecule {
	N := &Molecule{atoms: make([]*Atom, M.Len())}
	for i, v := range M.atoms {
		N.atoms[i] = v.Copy()
	}
	return N
}
