/*
 * point.go, part of openqube
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

import "math"

//Per-point evaluation. Everything here is reentrant: only the frozen
//tables are read, nothing shared is written, so any number of goroutines
//may evaluate points of the same snapshot at once.

//MO coefficients below this magnitude are treated as exactly zero and the
//radial sums for them are skipped. The pruning is applied to every
//implemented shell family in amplitude mode, and never in
//basis-function-value mode.
func isSmall(v float64) bool {
	return v > -1e-20 && v < 1e-20
}

//OrbitalAt returns the amplitude of the 1-based orbital state at pos, given
//in Å. It allocates scratch space on each call; for evaluating many points
//use EvaluateOrbital, which reuses scratch per worker.
func (f *Frozen) OrbitalAt(pos [3]float64, state int) float64 {
	deltas := make([][3]float64, len(f.atomPos))
	dr2 := make([]float64, len(f.atomPos))
	return f.orbitalAt(pos, state-1, deltas, dr2)
}

//DensityAt returns the electron density at pos, given in Å. Requires a
//density matrix; returns 0 when none was set.
func (f *Frozen) DensityAt(pos [3]float64) float64 {
	if f.density == nil {
		return 0
	}
	deltas := make([][3]float64, len(f.atomPos))
	dr2 := make([]float64, len(f.atomPos))
	values := make([]float64, f.numMOs)
	return f.densityAt(pos, deltas, dr2, values)
}

//orbitalAt computes the orbital amplitude at pos (Å) for the 0-based
//orbital column indexMO, using caller-supplied scratch sized to the number
//of atoms.
func (f *Frozen) orbitalAt(pos [3]float64, indexMO int, deltas [][3]float64, dr2 []float64) float64 {
	f.deltas(pos, deltas, dr2)
	tmp := 0.0
	for i, sym := range f.symmetry {
		at := f.atomIndices[i]
		switch sym {
		case S:
			tmp += f.pointS(i, dr2[at], indexMO)
		case P:
			tmp += f.pointP(i, deltas[at], dr2[at], indexMO)
		case D:
			tmp += f.pointD(i, deltas[at], dr2[at], indexMO)
		case D5:
			tmp += f.pointD5(i, deltas[at], dr2[at], indexMO)
		default:
			//not implemented, zero contribution
		}
	}
	return tmp
}

//densityAt computes the electron density at pos (Å): the per-basis-function
//values are built first, then contracted against the density matrix. The
//values slice must span numMOs entries; deltas and dr2 one entry per atom.
func (f *Frozen) densityAt(pos [3]float64, deltas [][3]float64, dr2 []float64, values []float64) float64 {
	f.deltas(pos, deltas, dr2)
	for i := range values {
		values[i] = 0
	}
	for i, sym := range f.symmetry {
		at := f.atomIndices[i]
		switch sym {
		case S:
			f.valueS(i, dr2[at], values)
		case P:
			f.valueP(i, deltas[at], dr2[at], values)
		case D:
			f.valueD(i, deltas[at], dr2[at], values)
		case D5:
			f.valueD5(i, deltas[at], dr2[at], values)
		default:
			//not implemented, zero contribution
		}
	}
	//ρ = Σ_i D_ii v_i² + 2 Σ_{i<j} D_ij v_i v_j. The factor of two covers
	//the symmetric off-diagonal pairs.
	rho := 0.0
	for i := 0; i < f.numMOs; i++ {
		for j := 0; j < i; j++ {
			rho += 2.0 * f.density.At(i, j) * values[i] * values[j]
		}
		rho += f.density.At(i, i) * values[i] * values[i]
	}
	return rho
}

//deltas fills the displacement (bohr) and squared-distance scratch for a
//point given in Å.
func (f *Frozen) deltas(pos [3]float64, deltas [][3]float64, dr2 []float64) {
	x := pos[0] * AngstromToBohr
	y := pos[1] * AngstromToBohr
	z := pos[2] * AngstromToBohr
	for i, ap := range f.atomPos {
		d := [3]float64{x - ap[0], y - ap[1], z - ap[2]}
		deltas[i] = d
		dr2[i] = d[0]*d[0] + d[1]*d[1] + d[2]*d[2]
	}
}

//Amplitude mode. One function per implemented family; each sums the radial
//parts over the shell's primitives and weighs them with the MO coefficients
//at the shell's row offset.

func (f *Frozen) pointS(shell int, dr2 float64, indexMO int) float64 {
	coeff := f.moMatrix.At(f.moIndices[shell], indexMO)
	if isSmall(coeff) {
		return 0.0
	}
	tmp := 0.0
	cIndex := f.cIndices[shell]
	for i := f.gtoIndices[shell]; i < f.gtoIndices[shell+1]; i++ {
		tmp += f.gtoCN[cIndex] * math.Exp(-f.gtoA[i]*dr2)
		cIndex++
	}
	//there is one MO coefficient per S shell
	return tmp * coeff
}

func (f *Frozen) pointP(shell int, delta [3]float64, dr2 float64, indexMO int) float64 {
	base := f.moIndices[shell]
	px := f.moMatrix.At(base, indexMO)
	py := f.moMatrix.At(base+1, indexMO)
	pz := f.moMatrix.At(base+2, indexMO)
	if isSmall(px) && isSmall(py) && isSmall(pz) {
		return 0.0
	}
	var x, y, z float64
	cIndex := f.cIndices[shell]
	for i := f.gtoIndices[shell]; i < f.gtoIndices[shell+1]; i++ {
		tmpGTO := math.Exp(-f.gtoA[i] * dr2)
		x += f.gtoCN[cIndex] * delta[0] * tmpGTO
		y += f.gtoCN[cIndex+1] * delta[1] * tmpGTO
		z += f.gtoCN[cIndex+2] * delta[2] * tmpGTO
		cIndex += 3
	}
	return px*x + py*y + pz*z
}

func (f *Frozen) pointD(shell int, delta [3]float64, dr2 float64, indexMO int) float64 {
	base := f.moIndices[shell]
	dxx := f.moMatrix.At(base, indexMO)
	dyy := f.moMatrix.At(base+1, indexMO)
	dzz := f.moMatrix.At(base+2, indexMO)
	dxy := f.moMatrix.At(base+3, indexMO)
	dxz := f.moMatrix.At(base+4, indexMO)
	dyz := f.moMatrix.At(base+5, indexMO)
	if isSmall(dxx) && isSmall(dyy) && isSmall(dzz) && isSmall(dxy) && isSmall(dxz) && isSmall(dyz) {
		return 0.0
	}
	var xx, yy, zz, xy, xz, yz float64
	cIndex := f.cIndices[shell]
	for i := f.gtoIndices[shell]; i < f.gtoIndices[shell+1]; i++ {
		tmpGTO := math.Exp(-f.gtoA[i] * dr2)
		xx += f.gtoCN[cIndex] * tmpGTO
		yy += f.gtoCN[cIndex+1] * tmpGTO
		zz += f.gtoCN[cIndex+2] * tmpGTO
		xy += f.gtoCN[cIndex+3] * tmpGTO
		xz += f.gtoCN[cIndex+4] * tmpGTO
		yz += f.gtoCN[cIndex+5] * tmpGTO
		cIndex += 6
	}
	return dxx*delta[0]*delta[0]*xx + dyy*delta[1]*delta[1]*yy + dzz*delta[2]*delta[2]*zz +
		dxy*delta[0]*delta[1]*xy + dxz*delta[0]*delta[2]*xz + dyz*delta[1]*delta[2]*yz
}

func (f *Frozen) pointD5(shell int, delta [3]float64, dr2 float64, indexMO int) float64 {
	base := f.moIndices[shell]
	c0 := f.moMatrix.At(base, indexMO)
	c1p := f.moMatrix.At(base+1, indexMO)
	c1n := f.moMatrix.At(base+2, indexMO)
	c2p := f.moMatrix.At(base+3, indexMO)
	c2n := f.moMatrix.At(base+4, indexMO)
	if isSmall(c0) && isSmall(c1p) && isSmall(c1n) && isSmall(c2p) && isSmall(c2n) {
		return 0.0
	}
	var d0, d1p, d1n, d2p, d2n float64
	cIndex := f.cIndices[shell]
	for i := f.gtoIndices[shell]; i < f.gtoIndices[shell+1]; i++ {
		tmpGTO := math.Exp(-f.gtoA[i] * dr2)
		d0 += f.gtoCN[cIndex] * tmpGTO
		d1p += f.gtoCN[cIndex+1] * tmpGTO
		d1n += f.gtoCN[cIndex+2] * tmpGTO
		d2p += f.gtoCN[cIndex+3] * tmpGTO
		d2n += f.gtoCN[cIndex+4] * tmpGTO
		cIndex += 5
	}
	xx := delta[0] * delta[0]
	yy := delta[1] * delta[1]
	zz := delta[2] * delta[2]
	xy := delta[0] * delta[1]
	xz := delta[0] * delta[2]
	yz := delta[1] * delta[2]
	return c0*(zz-dr2)*d0 + c1p*xz*d1p + c1n*yz*d1n + c2p*(xx-yy)*d2p + c2n*xy*d2n
}

//Basis-function-value mode. Same radial sums and angular factors, written
//into the per-basis-function vector at the shell's offset, without the MO
//weighting. Used to build the vector later contracted against the density
//matrix.

func (f *Frozen) valueS(shell int, dr2 float64, out []float64) {
	tmp := 0.0
	cIndex := f.cIndices[shell]
	for i := f.gtoIndices[shell]; i < f.gtoIndices[shell+1]; i++ {
		tmp += f.gtoCN[cIndex] * math.Exp(-f.gtoA[i]*dr2)
		cIndex++
	}
	out[f.moIndices[shell]] = tmp
}

func (f *Frozen) valueP(shell int, delta [3]float64, dr2 float64, out []float64) {
	var x, y, z float64
	cIndex := f.cIndices[shell]
	for i := f.gtoIndices[shell]; i < f.gtoIndices[shell+1]; i++ {
		tmpGTO := math.Exp(-f.gtoA[i] * dr2)
		x += f.gtoCN[cIndex] * tmpGTO
		y += f.gtoCN[cIndex+1] * tmpGTO
		z += f.gtoCN[cIndex+2] * tmpGTO
		cIndex += 3
	}
	base := f.moIndices[shell]
	out[base] = x * delta[0]
	out[base+1] = y * delta[1]
	out[base+2] = z * delta[2]
}

func (f *Frozen) valueD(shell int, delta [3]float64, dr2 float64, out []float64) {
	var xx, yy, zz, xy, xz, yz float64
	cIndex := f.cIndices[shell]
	for i := f.gtoIndices[shell]; i < f.gtoIndices[shell+1]; i++ {
		tmpGTO := math.Exp(-f.gtoA[i] * dr2)
		xx += f.gtoCN[cIndex] * tmpGTO
		yy += f.gtoCN[cIndex+1] * tmpGTO
		zz += f.gtoCN[cIndex+2] * tmpGTO
		xy += f.gtoCN[cIndex+3] * tmpGTO
		xz += f.gtoCN[cIndex+4] * tmpGTO
		yz += f.gtoCN[cIndex+5] * tmpGTO
		cIndex += 6
	}
	base := f.moIndices[shell]
	out[base] = delta[0] * delta[0] * xx
	out[base+1] = delta[1] * delta[1] * yy
	out[base+2] = delta[2] * delta[2] * zz
	out[base+3] = delta[0] * delta[1] * xy
	out[base+4] = delta[0] * delta[2] * xz
	out[base+5] = delta[1] * delta[2] * yz
}

func (f *Frozen) valueD5(shell int, delta [3]float64, dr2 float64, out []float64) {
	var d0, d1p, d1n, d2p, d2n float64
	cIndex := f.cIndices[shell]
	for i := f.gtoIndices[shell]; i < f.gtoIndices[shell+1]; i++ {
		tmpGTO := math.Exp(-f.gtoA[i] * dr2)
		d0 += f.gtoCN[cIndex] * tmpGTO
		d1p += f.gtoCN[cIndex+1] * tmpGTO
		d1n += f.gtoCN[cIndex+2] * tmpGTO
		d2p += f.gtoCN[cIndex+3] * tmpGTO
		d2n += f.gtoCN[cIndex+4] * tmpGTO
		cIndex += 5
	}
	xx := delta[0] * delta[0]
	yy := delta[1] * delta[1]
	zz := delta[2] * delta[2]
	base := f.moIndices[shell]
	out[base] = (zz - dr2) * d0
	out[base+1] = delta[0] * delta[2] * d1p
	out[base+2] = delta[1] * delta[2] * d1n
	out[base+3] = (xx - yy) * d2p
	out[base+4] = delta[0] * delta[1] * d2n
}
