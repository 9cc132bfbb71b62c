/*
 * cubeplot.go, part of openqube
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

//Package cubeplot renders axis-aligned slices of a computed volumetric
//field as heat-map images, for quick visual inspection of orbital and
//density cubes.
package cubeplot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cryos/openqube/cube"
)

//Axes, for selecting the slicing direction.
const (
	X = iota
	Y
	Z
)

var axisNames = []string{"X", "Y", "Z"}

//sliceGrid adapts one plane of a cube to plotter.GridXYZ. The two in-plane
//axes keep their cartesian order; coordinates are in Å.
type sliceGrid struct {
	c      *cube.Cube
	axis   int //the fixed axis
	index  int //the plane's grid coordinate along axis
	u, v   int //the in-plane axes
	nu, nv int
}

func (s *sliceGrid) Dims() (int, int) { return s.nu, s.nv }

func (s *sliceGrid) Z(i, j int) float64 {
	var xyz [3]int
	xyz[s.axis] = s.index
	xyz[s.u] = i
	xyz[s.v] = j
	return s.c.Value(s.c.Index(xyz[0], xyz[1], xyz[2]))
}

func (s *sliceGrid) X(i int) float64 {
	return s.c.Origin()[s.u] + float64(i)*s.c.Spacing()[s.u]
}

func (s *sliceGrid) Y(j int) float64 {
	return s.c.Origin()[s.v] + float64(j)*s.c.Spacing()[s.v]
}

//Slice renders the plane index of the cube, taken perpendicular to axis
//(X, Y or Z), as a heat map, and saves it as plotname.png. The color scale
//spans the value range of the slice.
func Slice(c *cube.Cube, axis, index int, title, plotname string) error {
	if c == nil {
		return fmt.Errorf("cubeplot: given a nil cube")
	}
	if axis < X || axis > Z {
		return fmt.Errorf("cubeplot: invalid axis %d", axis)
	}
	dims := [3]int{}
	dims[0], dims[1], dims[2] = c.Dims()
	if index < 0 || index >= dims[axis] {
		return fmt.Errorf("cubeplot: slice %d out of range, axis %s spans %d points", index, axisNames[axis], dims[axis])
	}
	u, v := inPlane(axis)
	g := &sliceGrid{c: c, axis: axis, index: index, u: u, v: v, nu: dims[u], nv: dims[v]}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = axisNames[u] + " (Å)"
	p.Y.Label.Text = axisNames[v] + " (Å)"
	pal := moreland.SmoothBlueRed().Palette(255)
	hm := plotter.NewHeatMap(g, pal)
	p.Add(hm)
	filename := fmt.Sprintf("%s.png", plotname)
	if err := p.Save(15*vg.Centimeter, 15*vg.Centimeter, filename); err != nil {
		return err
	}
	return nil
}

//inPlane returns the two axes spanning the plane perpendicular to axis, in
//cartesian order.
func inPlane(axis int) (int, int) {
	switch axis {
	case X:
		return Y, Z
	case Y:
		return X, Z
	}
	return X, Y
}
