/*
 * cubeio.go, part of openqube
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

//Package cubeio persists computed volumetric fields in cvf, a simple
//zstd-compressed text format: a geometry header followed by one value per
//line, z running fastest. It is meant for caching computed fields between
//runs, not for exchange with other programs.
package cubeio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/cryos/openqube"
	"github.com/cryos/openqube/cube"
)

const magic = "CVF1"

//Write stores the cube, including its geometry and field-type tag, in the
//file name. The cube's read lock is held while its values are copied out,
//so writing during a running evaluation blocks until the field is complete.
func Write(name string, c *cube.Cube) error {
	if c == nil {
		return Error{NilCube, name, []string{"Write"}, true}
	}
	f, err := os.Create(name)
	if err != nil {
		return Error{UnableToOpen + ": " + err.Error(), name, []string{"Write"}, true}
	}
	defer f.Close()
	h, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return Error{err.Error(), name, []string{"Write"}, true}
	}
	c.Lock().RLock()
	defer c.Lock().RUnlock()
	nx, ny, nz := c.Dims()
	o := c.Origin()
	s := c.Spacing()
	fmt.Fprintf(h, "%s %d %d %d %d\n", magic, nx, ny, nz, int(c.FieldType()))
	fmt.Fprintf(h, "%.10g %.10g %.10g\n", o[0], o[1], o[2])
	fmt.Fprintf(h, "%.10g %.10g %.10g\n", s[0], s[1], s[2])
	for i := 0; i < c.Len(); i++ {
		fmt.Fprintf(h, "%.10g\n", c.Value(i))
	}
	if err := h.Close(); err != nil {
		return Error{err.Error(), name, []string{"Write"}, true}
	}
	return nil
}

//zstd.Decoder doesn't implement io.ReadCloser, as its Close returns
//nothing, hence this wrapper.
type zstdql struct {
	closeql func()
	*zstd.Decoder
}

func (z zstdql) Close() error {
	z.closeql()
	return nil
}

//Read recovers a cube previously stored with Write.
func Read(name string) (*cube.Cube, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"Read"}, true}
	}
	defer f.Close()
	d, err := zstd.NewReader(f)
	if err != nil {
		return nil, Error{err.Error(), name, []string{"Read"}, true}
	}
	var h io.ReadCloser = zstdql{d.Close, d}
	defer h.Close()
	r := bufio.NewReader(h)

	var nx, ny, nz, ft int
	var m string
	line, err := r.ReadString('\n')
	if err != nil {
		return nil, Error{WrongFormat + ": " + err.Error(), name, []string{"Read"}, true}
	}
	if n, err := fmt.Sscanf(line, "%s %d %d %d %d", &m, &nx, &ny, &nz, &ft); n != 5 || err != nil || m != magic {
		return nil, Error{WrongFormat + ": bad header " + strings.TrimSpace(line), name, []string{"Read"}, true}
	}
	origin, err := readVector(r)
	if err != nil {
		return nil, errDecorate(err, "Read", name)
	}
	spacing, err := readVector(r)
	if err != nil {
		return nil, errDecorate(err, "Read", name)
	}
	c, err := cube.New(origin, spacing, nx, ny, nz)
	if err != nil {
		return nil, errDecorate(err, "Read", name)
	}
	c.SetFieldType(openqube.FieldType(ft))
	data := make([]float64, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, Error{fmt.Sprintf("%s: %d values expected, got %d", WrongFormat, c.Len(), i), name, []string{"Read"}, true}
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err != nil {
			return nil, Error{WrongFormat + ": " + err.Error(), name, []string{"Read"}, true}
		}
		data = append(data, v)
	}
	if err := c.SetData(data); err != nil {
		return nil, errDecorate(err, "Read", name)
	}
	return c, nil
}

func readVector(r *bufio.Reader) ([3]float64, error) {
	var v [3]float64
	line, err := r.ReadString('\n')
	if err != nil {
		return v, Error{WrongFormat + ": " + err.Error(), "", []string{"readVector"}, true}
	}
	if n, err := fmt.Sscanf(line, "%g %g %g", &v[0], &v[1], &v[2]); n != 3 || err != nil {
		return v, Error{WrongFormat + ": bad vector " + strings.TrimSpace(line), "", []string{"readVector"}, true}
	}
	return v, nil
}

//errDecorate decorates an error from this or the cube package with the
//caller's name, wrapping foreign errors into a cubeio Error.
func errDecorate(err error, caller, filename string) error {
	if e, ok := err.(interface{ Decorate(string) []string }); ok {
		e.Decorate(caller)
		return err
	}
	return Error{err.Error(), filename, []string{caller}, true}
}

//Error is the error type of the cubeio package.
type Error struct {
	message  string
	filename string //the file with problems, or the empty string if none
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("cvf file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error and returns the "decoration" slice.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file associated to the error.
func (err Error) FileName() string { return err.filename }

//Format returns the format of the file associated to the error (always "cvf").
func (err Error) Format() string { return "cvf" }

//Critical returns true if the error is critical, false otherwise.
func (err Error) Critical() bool { return err.critical }

//Messages
const (
	UnableToOpen = "Unable to open file"
	WrongFormat  = "Wrong format in the CVF file"
	NilCube      = "Given a nil cube"
)
