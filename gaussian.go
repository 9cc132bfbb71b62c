/*
 * gaussian.go, part of openqube
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

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/mat"
)

//Length unit conversion. Atom positions and all the evaluation math are in
//bohr; grids speak Å.
const (
	BohrToAngstrom = 0.529177249
	AngstromToBohr = 1.0 / BohrToAngstrom
)

var logger = slog.Default()

//SetLogger replaces the structured logger used for diagnostics. Diagnostics
//never affect computed values. A nil argument is ignored.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

//Symmetry is the angular-momentum class of a shell. It determines the
//number of independent basis-function components the shell contributes.
type Symmetry int

const (
	S Symmetry = iota
	P
	SP
	D  //cartesian, 6 components, order xx, yy, zz, xy, xz, yz
	D5 //spherical, 5 components, order d0, d+1, d-1, d+2, d-2
	F
	F7
	G
	G9
	H
	H11
	I
	I13
)

//Components returns the number of independent basis functions a shell of
//this symmetry contributes. Each type has its own explicit count; there is
//no shared fallback.
func (s Symmetry) Components() int {
	switch s {
	case S:
		return 1
	case P:
		return 3
	case SP:
		return 4
	case D:
		return 6
	case D5:
		return 5
	case F:
		return 10
	case F7:
		return 7
	case G:
		return 15
	case G9:
		return 9
	case H:
		return 21
	case H11:
		return 11
	case I:
		return 28
	case I13:
		return 13
	}
	panic(PanicMsg(fmt.Sprintf("openqube: unknown shell symmetry %d", int(s))))
}

//Implemented returns whether shells of this symmetry are analytically
//normalized and evaluated. The remaining types only advance the offset
//bookkeeping and contribute zero to any field.
func (s Symmetry) Implemented() bool {
	switch s {
	case S, P, D, D5:
		return true
	}
	return false
}

func (s Symmetry) String() string {
	names := []string{"S", "P", "SP", "D", "D5", "F", "F7", "G", "G9", "H", "H11", "I", "I13"}
	if int(s) < 0 || int(s) >= len(names) {
		return fmt.Sprintf("Symmetry(%d)", int(s))
	}
	return names[s]
}

//Normalization constants used in JMol.
//S:        (8 α³/π³)^0.25 exp(-α r²)
//P:        (128 α⁵/π³)^0.25 [x|y|z] exp(-α r²)
//D xx|yy|zz: (2048 α⁷/9π³)^0.25 [xx|yy|zz] exp(-α r²)
//D xy|xz|yz: (2048 α⁷/π³)^0.25 [xy|xz|yz] exp(-α r²)
const (
	normS  = 0.71270547
	normP  = 1.425410941
	normD1 = 1.645922781
	normD2 = 2.850821881
)

//GaussianSet is the mutable, append-only description of a Gaussian basis
//set: shells, their contracted primitives, and the raw MO and density
//coefficients. It is meant to be populated incrementally by a file-format
//reader and then frozen for evaluation. It is not safe for concurrent
//mutation.
type GaussianSet struct {
	mol         *Molecule
	symmetry    []Symmetry
	atomIndices []int //per shell, the atom it is centered on
	gtoIndices  []int //per shell, the offset of its first primitive in gtoA/gtoC
	gtoA        []float64
	gtoC        []float64
	numMOs      int //total number of basis functions added so far
	moMatrix    *mat.Dense
	moColumns   int
	density     *mat.SymDense
	frozen      *Frozen //cached snapshot; nil whenever a builder call ran since the last Freeze
}

//NewGaussianSet returns an empty basis set.
func NewGaussianSet() *GaussianSet {
	return &GaussianSet{
		mol:         NewMolecule(),
		symmetry:    make([]Symmetry, 0, 10),
		atomIndices: make([]int, 0, 10),
		gtoIndices:  make([]int, 0, 10),
		gtoA:        make([]float64, 0, 30),
		gtoC:        make([]float64, 0, 30),
	}
}

//Molecule returns the atom store the shells are centered on.
func (g *GaussianSet) Molecule() *Molecule { return g.mol }

//NumMOs returns the total number of basis functions (and hence of possible
//molecular orbitals) in the set.
func (g *GaussianSet) NumMOs() int { return g.numMOs }

//NumShells returns the number of shells added so far.
func (g *GaussianSet) NumShells() int { return len(g.symmetry) }

//Shell returns the symmetry of the i-th shell and the atom it is centered
//on. Panics if out of range.
func (g *GaussianSet) Shell(i int) (Symmetry, int) {
	if i < 0 || i >= len(g.symmetry) {
		panic(ErrShellOutOfRange)
	}
	return g.symmetry[i], g.atomIndices[i]
}

//AddAtom appends an atom at pos (in bohr) with the given atomic number and
//returns its index.
func (g *GaussianSet) AddAtom(pos [3]float64, atomicNumber int) int {
	g.frozen = nil
	return g.mol.AddAtom(pos, atomicNumber)
}

//AddShell appends a shell of the given symmetry centered on atom, and
//returns the shell index. Primitives added afterwards with AddGTO belong to
//this shell, until the next AddShell call.
func (g *GaussianSet) AddShell(atom int, sym Symmetry) int {
	g.numMOs += sym.Components()
	g.frozen = nil
	g.symmetry = append(g.symmetry, sym)
	g.atomIndices = append(g.atomIndices, atom)
	return len(g.symmetry) - 1
}

//AddGTO appends one Gaussian primitive, with contraction coefficient c and
//exponent a, to the most recently added shell, and returns the primitive
//index.
func (g *GaussianSet) AddGTO(c, a float64) int {
	if len(g.gtoIndices) < len(g.atomIndices) {
		//First GTO added for this shell - record where its range starts
		g.gtoIndices = append(g.gtoIndices, len(g.gtoA))
	}
	g.frozen = nil
	g.gtoA = append(g.gtoA, a)
	g.gtoC = append(g.gtoC, c)
	return len(g.gtoA) - 1
}

//SetMOs reshapes a flat, column-major sequence of MO coefficients into the
//square MO matrix. Some programs don't output all MOs, so the column count
//is taken as len(mos) divided by the number of basis functions; columns
//beyond that remain invalid. Returns an error if no shell has been added
//yet, or if more columns are supplied than there are basis functions.
func (g *GaussianSet) SetMOs(mos []float64) error {
	if g.numMOs == 0 {
		return CError{"can't set MO coefficients: no basis functions have been defined", []string{"SetMOs"}}
	}
	columns := len(mos) / g.numMOs
	if columns > g.numMOs {
		return CError{fmt.Sprintf("%d MO columns supplied but the basis only spans %d functions", columns, g.numMOs), []string{"SetMOs"}}
	}
	logger.Debug("adding MO coefficients", "basisFunctions", g.numMOs, "columns", columns)
	g.frozen = nil
	g.moMatrix = mat.NewDense(g.numMOs, g.numMOs, nil)
	g.moColumns = columns
	for j := 0; j < columns; j++ {
		for i := 0; i < g.numMOs; i++ {
			g.moMatrix.Set(i, j, mos[i+j*g.numMOs])
		}
	}
	return nil
}

//SetDensity stores a copy of the density matrix, needed only for
//electron-density evaluation. Returns an error if the matrix dimension
//does not match the number of basis functions.
func (g *GaussianSet) SetDensity(d *mat.SymDense) error {
	if d == nil {
		return CError{"given a nil density matrix", []string{"SetDensity"}}
	}
	if n := d.SymmetricDim(); n != g.numMOs {
		return CError{fmt.Sprintf("density matrix spans %d basis functions, want %d", n, g.numMOs), []string{"SetDensity"}}
	}
	g.frozen = nil
	m := mat.NewSymDense(d.SymmetricDim(), nil)
	m.CopySym(d)
	g.density = m
	return nil
}

//Clone returns a deep copy of the set. The copies are fully independent:
//builder calls on one never affect the other. A frozen snapshot, being
//immutable, is shared.
func (g *GaussianSet) Clone() *GaussianSet {
	n := &GaussianSet{
		mol:         g.mol.Copy(),
		symmetry:    append([]Symmetry{}, g.symmetry...),
		atomIndices: append([]int{}, g.atomIndices...),
		gtoIndices:  append([]int{}, g.gtoIndices...),
		gtoA:        append([]float64{}, g.gtoA...),
		gtoC:        append([]float64{}, g.gtoC...),
		numMOs:      g.numMOs,
		moColumns:   g.moColumns,
		frozen:      g.frozen,
	}
	if g.moMatrix != nil {
		n.moMatrix = mat.DenseCopyOf(g.moMatrix)
	}
	if g.density != nil {
		n.density = mat.NewSymDense(g.density.SymmetricDim(), nil)
		n.density.CopySym(g.density)
	}
	return n
}

//Frozen is an immutable, normalized snapshot of a GaussianSet: the offset
//tables plus the normalized coefficients, ready for evaluation. Workers
//share one Frozen without any locking; builder calls on the originating set
//never touch an already-produced snapshot.
type Frozen struct {
	symmetry    []Symmetry
	atomIndices []int
	moIndices   []int //per shell, base row in the MO matrix
	cIndices    []int //per shell, base offset in gtoCN
	gtoIndices  []int //len(symmetry)+1 entries, sentinel at the end
	gtoA        []float64
	gtoC        []float64
	gtoCN       []float64 //one entry per (primitive × component)
	numMOs      int
	moColumns   int
	moMatrix    *mat.Dense
	density     *mat.SymDense
	atomPos     [][3]float64 //bohr
}

//Freeze normalizes the contraction coefficients, builds the offset tables
//and returns the resulting immutable snapshot. Freezing is idempotent: if
//no builder call ran since the last Freeze, the cached snapshot is returned
//as-is. Shell types without an analytic normalization (SP and everything
//beyond D5) advance the offsets by their component count so downstream
//shells stay correctly indexed, but contribute zero numerically; a warning
//is logged for each such shell.
func (g *GaussianSet) Freeze() (*Frozen, error) {
	if g.frozen != nil {
		return g.frozen, nil
	}
	nshells := len(g.symmetry)
	if len(g.gtoIndices) != nshells {
		return nil, CError{fmt.Sprintf("%d shells added but only %d have primitives", nshells, len(g.gtoIndices)), []string{"Freeze"}}
	}
	f := &Frozen{
		symmetry:    append([]Symmetry{}, g.symmetry...),
		atomIndices: append([]int{}, g.atomIndices...),
		moIndices:   make([]int, nshells),
		cIndices:    make([]int, nshells),
		gtoIndices:  make([]int, nshells, nshells+1),
		gtoA:        append([]float64{}, g.gtoA...),
		gtoC:        append([]float64{}, g.gtoC...),
		gtoCN:       make([]float64, 0, 3*len(g.gtoA)),
		numMOs:      g.numMOs,
		moColumns:   g.moColumns,
	}
	copy(f.gtoIndices, g.gtoIndices)
	f.gtoIndices = append(f.gtoIndices, len(g.gtoA)) //sentinel
	if g.moMatrix != nil {
		f.moMatrix = mat.DenseCopyOf(g.moMatrix)
	}
	if g.density != nil {
		f.density = mat.NewSymDense(g.density.SymmetricDim(), nil)
		f.density.CopySym(g.density)
	}
	f.atomPos = make([][3]float64, g.mol.Len())
	for i := range f.atomPos {
		f.atomPos[i] = g.mol.AtomPos(i)
	}

	indexMO := 0
	for i := 0; i < nshells; i++ {
		f.moIndices[i] = indexMO
		f.cIndices[i] = len(f.gtoCN)
		switch f.symmetry[i] {
		case S:
			for j := f.gtoIndices[i]; j < f.gtoIndices[i+1]; j++ {
				f.gtoCN = append(f.gtoCN, f.gtoC[j]*math.Pow(f.gtoA[j], 0.75)*normS)
			}
		case P:
			//x, y and z share the radial normalization; the angular factor
			//is applied at evaluation time.
			for j := f.gtoIndices[i]; j < f.gtoIndices[i+1]; j++ {
				v := f.gtoC[j] * math.Pow(f.gtoA[j], 1.25) * normP
				f.gtoCN = append(f.gtoCN, v, v, v)
			}
		case D:
			for j := f.gtoIndices[i]; j < f.gtoIndices[i+1]; j++ {
				diag := f.gtoC[j] * math.Pow(f.gtoA[j], 1.75) * normD1
				cross := f.gtoC[j] * math.Pow(f.gtoA[j], 1.75) * normD2
				f.gtoCN = append(f.gtoCN, diag, diag, diag, cross, cross, cross)
			}
		case D5:
			//Form d(z²-r²), dxz, dyz, d(x²-y²), dxy
			pi3 := math.Pi * math.Pi * math.Pi
			for j := f.gtoIndices[i]; j < f.gtoIndices[i+1]; j++ {
				a7 := math.Pow(f.gtoA[j], 7.0)
				d0 := f.gtoC[j] * math.Pow(2048*a7/(9.0*pi3), 0.25)
				d1 := f.gtoC[j] * math.Pow(2048*a7/pi3, 0.25)
				d2p := f.gtoC[j] * math.Pow(128*a7/pi3, 0.25)
				d2n := f.gtoC[j] * math.Pow(2048*a7/pi3, 0.25)
				f.gtoCN = append(f.gtoCN, d0, d1, d1, d2p, d2n)
			}
		default:
			//No analytic normalization for this type. The offsets still
			//advance so the shells after this one stay consistent.
			logger.Warn("shell type not implemented, its contribution to any field is zero",
				"shell", i, "symmetry", f.symmetry[i].String())
		}
		indexMO += f.symmetry[i].Components()
	}
	g.frozen = f
	return f, nil
}

//NumMOs returns the total number of basis functions in the snapshot.
func (f *Frozen) NumMOs() int { return f.numMOs }

//NumShells returns the number of shells in the snapshot.
func (f *Frozen) NumShells() int { return len(f.symmetry) }

//HasDensity returns whether a density matrix was set before freezing.
func (f *Frozen) HasDensity() bool { return f.density != nil }

//LogSummary dumps the frozen tables through the structured logger, at debug
//level. Purely diagnostic.
func (f *Frozen) LogSummary() {
	logger.Debug("gaussian basis set", "atoms", len(f.atomPos), "shells", len(f.symmetry),
		"basisFunctions", f.numMOs, "moColumns", f.moColumns, "primitives", len(f.gtoA),
		"normalizedCoefficients", len(f.gtoCN))
	for i := range f.symmetry {
		logger.Debug("shell", "index", i, "atom", f.atomIndices[i],
			"symmetry", f.symmetry[i].String(), "moIndex", f.moIndices[i],
			"gtoIndex", f.gtoIndices[i], "cIndex", f.cIndices[i])
	}
}
