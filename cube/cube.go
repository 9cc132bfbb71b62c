/*
 * cube.go, part of openqube
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

//Package cube implements a regularly sampled spatial volume holding one
//scalar value per point. It satisfies openqube.Grid, so orbital and density
//fields can be computed straight into it. Point i runs over z fastest, then
//y, then x.
package cube

import (
	"fmt"
	"math"
	"sync"

	"github.com/cryos/openqube"
)

//Cube is a regular 3D grid of scalar values. Its geometry (origin and
//spacing, in Å) is fixed at construction; the data is written point by
//point under the lock returned by Lock.
type Cube struct {
	origin     [3]float64 //Å
	spacing    [3]float64 //Å
	nx, ny, nz int
	data       []float64
	fieldType  openqube.FieldType
	lock       sync.RWMutex
}

//New returns a cube with the given origin and per-axis spacing, in Å, and
//the given number of points along each axis. All values start at zero.
func New(origin, spacing [3]float64, nx, ny, nz int) (*Cube, error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, Error{fmt.Sprintf("invalid dimensions %d×%d×%d", nx, ny, nz), []string{"New"}}
	}
	for i := 0; i < 3; i++ {
		if spacing[i] <= 0 {
			return nil, Error{fmt.Sprintf("non-positive spacing %v", spacing), []string{"New"}}
		}
	}
	return &Cube{
		origin:  origin,
		spacing: spacing,
		nx:      nx,
		ny:      ny,
		nz:      nz,
		data:    make([]float64, nx*ny*nz),
	}, nil
}

//NewFromMolecule returns a cube spanning the bounding box of the molecule's
//atoms plus padding on every side, sampled with the given spacing. Both
//padding and spacing are in Å; atom positions are in bohr and converted.
func NewFromMolecule(mol openqube.Atomer, padding, spacing float64) (*Cube, error) {
	if mol == nil || mol.Len() == 0 {
		return nil, Error{"given a nil or empty molecule", []string{"NewFromMolecule"}}
	}
	if spacing <= 0 {
		return nil, Error{fmt.Sprintf("non-positive spacing %g", spacing), []string{"NewFromMolecule"}}
	}
	min := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	max := [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for i := 0; i < mol.Len(); i++ {
		p := mol.AtomPos(i)
		for k := 0; k < 3; k++ {
			a := p[k] * openqube.BohrToAngstrom
			min[k] = math.Min(min[k], a)
			max[k] = math.Max(max[k], a)
		}
	}
	var origin [3]float64
	var n [3]int
	for k := 0; k < 3; k++ {
		origin[k] = min[k] - padding
		n[k] = int(math.Ceil((max[k]+padding-origin[k])/spacing)) + 1
	}
	return New(origin, [3]float64{spacing, spacing, spacing}, n[0], n[1], n[2])
}

//Len returns the number of points in the cube.
func (c *Cube) Len() int { return len(c.data) }

//Dims returns the number of points along x, y and z.
func (c *Cube) Dims() (nx, ny, nz int) { return c.nx, c.ny, c.nz }

//Origin returns the position, in Å, of point 0.
func (c *Cube) Origin() [3]float64 { return c.origin }

//Spacing returns the per-axis distance between neighboring points, in Å.
func (c *Cube) Spacing() [3]float64 { return c.spacing }

//Position returns the cartesian position, in Å, of the i-th point.
//Panics if out of range.
func (c *Cube) Position(i int) [3]float64 {
	if i < 0 || i >= len(c.data) {
		panic(fmt.Sprintf("cube: point %d out of range (%d points)", i, len(c.data)))
	}
	x := i / (c.ny * c.nz)
	y := (i / c.nz) % c.ny
	z := i % c.nz
	return [3]float64{
		c.origin[0] + float64(x)*c.spacing[0],
		c.origin[1] + float64(y)*c.spacing[1],
		c.origin[2] + float64(z)*c.spacing[2],
	}
}

//Index returns the flat point index of grid coordinates (x, y, z).
//Panics if out of range.
func (c *Cube) Index(x, y, z int) int {
	if x < 0 || x >= c.nx || y < 0 || y >= c.ny || z < 0 || z >= c.nz {
		panic(fmt.Sprintf("cube: coordinates (%d, %d, %d) out of range (%d×%d×%d)", x, y, z, c.nx, c.ny, c.nz))
	}
	return (x*c.ny+y)*c.nz + z
}

//SetValue sets the scalar value at the i-th point. Panics if out of range.
func (c *Cube) SetValue(i int, v float64) {
	c.data[i] = v
}

//Value returns the scalar value at the i-th point. Panics if out of range.
//Callers racing against a running evaluation must hold the read lock.
func (c *Cube) Value(i int) float64 {
	return c.data[i]
}

//SetData replaces the whole data slice. The length must match Len.
func (c *Cube) SetData(data []float64) error {
	if len(data) != len(c.data) {
		return Error{fmt.Sprintf("%d values given for a %d-point cube", len(data), len(c.data)), []string{"SetData"}}
	}
	copy(c.data, data)
	return nil
}

//Data returns the underlying data slice, z running fastest. The slice is
//not a copy.
func (c *Cube) Data() []float64 { return c.data }

//SetFieldType tags the kind of field the cube holds.
func (c *Cube) SetFieldType(t openqube.FieldType) { c.fieldType = t }

//FieldType returns the kind of field the cube holds.
func (c *Cube) FieldType() openqube.FieldType { return c.fieldType }

//Lock returns the lock guarding the cube's data. An evaluation holds the
//write lock for its full duration; readers wanting a consistent view take
//the read lock.
func (c *Cube) Lock() *sync.RWMutex { return &c.lock }

//MinMax returns the smallest and largest value in the cube.
func (c *Cube) MinMax() (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range c.data {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	return min, max
}

//Copy returns a deep copy of the cube, including its data and tag, but
//with a fresh, unheld lock.
func (c *Cube) Copy() *Cube {
	n := &Cube{
		origin:    c.origin,
		spacing:   c.spacing,
		nx:        c.nx,
		ny:        c.ny,
		nz:        c.nz,
		data:      make([]float64, len(c.data)),
		fieldType: c.fieldType,
	}
	copy(n.data, c.data)
	return n
}

//Error is the error type of the cube package.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return fmt.Sprintf("cube error: %s", err.message) }

//Decorate adds new information to the error and returns the "decoration" slice.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}
