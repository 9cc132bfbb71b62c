/*
 * cubeplot_test.go, part of openqube
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

package cubeplot

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryos/openqube/cube"
)

//gaussianCube builds a small cube holding an isotropic gaussian centered
//at the origin, a stand-in for a computed orbital field.
func gaussianCube(t *testing.T) *cube.Cube {
	t.Helper()
	c, err := cube.New([3]float64{-1, -1, -1}, [3]float64{0.25, 0.25, 0.25}, 9, 9, 9)
	require.NoError(t, err)
	for i := 0; i < c.Len(); i++ {
		p := c.Position(i)
		c.SetValue(i, math.Exp(-(p[0]*p[0]+p[1]*p[1]+p[2]*p[2])))
	}
	return c
}

func TestSlice(t *testing.T) {
	c := gaussianCube(t)
	for _, axis := range []int{X, Y, Z} {
		name := filepath.Join(t.TempDir(), "slice")
		require.NoError(t, Slice(c, axis, 4, "midplane", name))
		fi, err := os.Stat(name + ".png")
		require.NoError(t, err)
		assert.Greater(t, fi.Size(), int64(0))
	}
}

func TestSliceErrors(t *testing.T) {
	c := gaussianCube(t)
	name := filepath.Join(t.TempDir(), "slice")
	assert.Error(t, Slice(nil, X, 0, "", name))
	assert.Error(t, Slice(c, -1, 0, "", name))
	assert.Error(t, Slice(c, Z+1, 0, "", name))
	assert.Error(t, Slice(c, Y, -1, "", name))
	assert.Error(t, Slice(c, Y, 9, "", name))
}

func TestInPlane(t *testing.T) {
	u, v := inPlane(X)
	assert.Equal(t, [2]int{Y, Z}, [2]int{u, v})
	u, v = inPlane(Y)
	assert.Equal(t, [2]int{X, Z}, [2]int{u, v})
	u, v = inPlane(Z)
	assert.Equal(t, [2]int{X, Y}, [2]int{u, v})
}
