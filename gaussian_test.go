/*
 * gaussian_test.go, part of openqube
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
	"math"
	"reflect"
	"testing"
)

//A single S shell with one unit primitive on one atom at the origin, with
//one orbital whose only coefficient is 1. The simplest basis set there is.
func singleS() *GaussianSet {
	g := NewGaussianSet()
	at := g.AddAtom([3]float64{0, 0, 0}, 1)
	g.AddShell(at, S)
	g.AddGTO(1.0, 1.0)
	if err := g.SetMOs([]float64{1.0}); err != nil {
		panic(err.Error())
	}
	return g
}

//A small mixed set: S, P, D and D5 shells spread over two atoms, with two
//primitives per shell and a full (identity) MO matrix.
func mixedSet() *GaussianSet {
	g := NewGaussianSet()
	a0 := g.AddAtom([3]float64{0, 0, 0}, 6)
	a1 := g.AddAtom([3]float64{0, 0, 2.0}, 8)
	for _, sh := range []struct {
		at  int
		sym Symmetry
	}{{a0, S}, {a0, P}, {a1, S}, {a1, D}, {a1, D5}} {
		g.AddShell(sh.at, sh.sym)
		g.AddGTO(0.7, 1.3)
		g.AddGTO(0.3, 0.4)
	}
	n := g.NumMOs()
	mos := make([]float64, n*n)
	for i := 0; i < n; i++ {
		mos[i+i*n] = 1.0
	}
	if err := g.SetMOs(mos); err != nil {
		panic(err.Error())
	}
	return g
}

func TestComponents(Te *testing.T) {
	counts := map[Symmetry]int{S: 1, P: 3, SP: 4, D: 6, D5: 5, F: 10, F7: 7,
		G: 15, G9: 9, H: 21, H11: 11, I: 28, I13: 13}
	for sym, want := range counts {
		if got := sym.Components(); got != want {
			Te.Errorf("Components(%v) = %d; want %d", sym, got, want)
		}
	}
}

func TestOffsetTables(Te *testing.T) {
	g := mixedSet()
	f, err := g.Freeze()
	if err != nil {
		Te.Fatal(err)
	}
	if len(f.gtoIndices) != len(f.symmetry)+1 {
		Te.Errorf("gtoIndices has %d entries for %d shells; want %d", len(f.gtoIndices), len(f.symmetry), len(f.symmetry)+1)
	}
	for i := 0; i < len(f.gtoIndices)-1; i++ {
		if f.gtoIndices[i] > f.gtoIndices[i+1] {
			Te.Errorf("gtoIndices decreases at %d: %v", i, f.gtoIndices)
		}
	}
	for i, sym := range f.symmetry {
		if f.moIndices[i]+sym.Components() > f.numMOs {
			Te.Errorf("shell %d (%v): moIndex %d + %d components exceeds %d basis functions",
				i, sym, f.moIndices[i], sym.Components(), f.numMOs)
		}
	}
	//each implemented shell's normalized range spans components×primitives
	for i, sym := range f.symmetry {
		if !sym.Implemented() {
			continue
		}
		nprim := f.gtoIndices[i+1] - f.gtoIndices[i]
		end := len(f.gtoCN)
		if i+1 < len(f.symmetry) {
			end = f.cIndices[i+1]
		}
		if got, want := end-f.cIndices[i], sym.Components()*nprim; got != want {
			Te.Errorf("shell %d (%v): %d normalized coefficients; want %d", i, sym, got, want)
		}
	}
}

//Shell types without analytic normalization must still advance the offsets
//so the shells after them stay correctly indexed.
func TestUnimplementedShellBookkeeping(Te *testing.T) {
	g := NewGaussianSet()
	at := g.AddAtom([3]float64{0, 0, 0}, 26)
	g.AddShell(at, S)
	g.AddGTO(1.0, 1.0)
	g.AddShell(at, F7)
	g.AddGTO(1.0, 1.0)
	last := g.AddShell(at, S)
	g.AddGTO(1.0, 1.0)
	if want := 1 + 7 + 1; g.NumMOs() != want {
		Te.Fatalf("numMOs = %d; want %d", g.NumMOs(), want)
	}
	f, err := g.Freeze()
	if err != nil {
		Te.Fatal(err)
	}
	if f.moIndices[last] != 8 {
		Te.Errorf("S shell after an F7 shell got moIndex %d; want 8", f.moIndices[last])
	}
	//the unnormalized shell contributes nothing to gtoCN
	if f.cIndices[1] != f.cIndices[2] {
		Te.Errorf("F7 shell contributed normalized coefficients: cIndices %v", f.cIndices)
	}
}

func TestFreezeIdempotent(Te *testing.T) {
	g := mixedSet()
	f1, err := g.Freeze()
	if err != nil {
		Te.Fatal(err)
	}
	f2, err := g.Freeze()
	if err != nil {
		Te.Fatal(err)
	}
	if f1 != f2 {
		Te.Error("second Freeze without mutation built a new snapshot")
	}
	//and a rebuilt snapshot of an identical set is bit-for-bit the same
	f3, err := mixedSet().Freeze()
	if err != nil {
		Te.Fatal(err)
	}
	if !reflect.DeepEqual(f1.moIndices, f3.moIndices) || !reflect.DeepEqual(f1.cIndices, f3.cIndices) ||
		!reflect.DeepEqual(f1.gtoIndices, f3.gtoIndices) || !reflect.DeepEqual(f1.gtoCN, f3.gtoCN) {
		Te.Error("identical sets froze to different tables")
	}
}

func TestFreezeInvalidatedByBuilders(Te *testing.T) {
	g := mixedSet()
	f1, err := g.Freeze()
	if err != nil {
		Te.Fatal(err)
	}
	g.AddShell(0, S)
	g.AddGTO(1.0, 1.0)
	f2, err := g.Freeze()
	if err != nil {
		Te.Fatal(err)
	}
	if f1 == f2 {
		Te.Error("Freeze returned a stale snapshot after AddShell")
	}
	if f2.NumShells() != f1.NumShells()+1 {
		Te.Errorf("new snapshot has %d shells; want %d", f2.NumShells(), f1.NumShells()+1)
	}
}

func TestSNormalizationConstant(Te *testing.T) {
	g := singleS()
	f, err := g.Freeze()
	if err != nil {
		Te.Fatal(err)
	}
	//with c = 1 and α = 1 the normalized coefficient is the bare S constant
	if f.gtoCN[0] != 0.71270547 {
		Te.Errorf("normalized S coefficient = %v; want 0.71270547", f.gtoCN[0])
	}
	if v := f.OrbitalAt([3]float64{0, 0, 0}, 1); math.Abs(v-0.71270547) > 1e-12 {
		Te.Errorf("S amplitude at the shell's own center = %v; want 0.71270547", v)
	}
}

//A lone P shell has a closed-form amplitude, normP·Δx·exp(-α·r²), checked
//here off-center along x.
func TestPAmplitude(Te *testing.T) {
	g := NewGaussianSet()
	at := g.AddAtom([3]float64{0, 0, 0}, 7)
	g.AddShell(at, P)
	g.AddGTO(1.0, 1.0)
	if err := g.SetMOs([]float64{1.0, 0, 0}); err != nil {
		Te.Fatal(err)
	}
	f, err := g.Freeze()
	if err != nil {
		Te.Fatal(err)
	}
	xb := 0.5 * AngstromToBohr
	want := 1.425410941 * xb * math.Exp(-xb*xb)
	if v := f.OrbitalAt([3]float64{0.5, 0, 0}, 1); math.Abs(v-want) > 1e-12 {
		Te.Errorf("P amplitude = %v; want %v", v, want)
	}
}

func TestSetMOsBeforeShells(Te *testing.T) {
	g := NewGaussianSet()
	g.AddAtom([3]float64{0, 0, 0}, 1)
	if err := g.SetMOs([]float64{1.0}); err == nil {
		Te.Error("SetMOs with no shells defined did not fail")
	}
}

func TestSetDensityDimension(Te *testing.T) {
	g := singleS()
	if err := g.SetDensity(nil); err == nil {
		Te.Error("SetDensity(nil) did not fail")
	}
}

func TestFreezeShellWithoutPrimitives(Te *testing.T) {
	g := NewGaussianSet()
	at := g.AddAtom([3]float64{0, 0, 0}, 1)
	g.AddShell(at, S)
	//no AddGTO call for the shell
	if _, err := g.Freeze(); err == nil {
		Te.Error("Freeze with a primitive-less shell did not fail")
	}
}

func TestCloneIndependence(Te *testing.T) {
	g := mixedSet()
	n := g.Clone()
	if n.NumMOs() != g.NumMOs() || n.NumShells() != g.NumShells() {
		Te.Fatalf("clone differs: %d/%d MOs, %d/%d shells", n.NumMOs(), g.NumMOs(), n.NumShells(), g.NumShells())
	}
	n.AddShell(0, D5)
	n.AddGTO(1.0, 1.0)
	if n.NumShells() != g.NumShells()+1 {
		Te.Error("AddShell on the clone did not extend it")
	}
	if g.NumMOs() != mixedSet().NumMOs() {
		Te.Error("AddShell on a clone mutated the original")
	}
}

func TestShellAccessor(Te *testing.T) {
	g := mixedSet()
	sym, at := g.Shell(1)
	if sym != P || at != 0 {
		Te.Errorf("Shell(1) = %v on atom %d; want P on atom 0", sym, at)
	}
	sym, at = g.Shell(4)
	if sym != D5 || at != 1 {
		Te.Errorf("Shell(4) = %v on atom %d; want D5 on atom 1", sym, at)
	}
	for _, i := range []int{-1, g.NumShells()} {
		func() {
			defer func() {
				if r := recover(); r != ErrShellOutOfRange {
					Te.Errorf("Shell(%d) panicked with %v; want %v", i, r, ErrShellOutOfRange)
				}
			}()
			g.Shell(i)
		}()
	}
}
