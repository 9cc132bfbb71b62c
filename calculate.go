/*
 * calculate.go, part of openqube
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
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

//Options holds the tunables of a grid evaluation run.
type Options struct {
	cpus int
}

//DefaultOptions returns an Options with the default values.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.cpus = runtime.NumCPU()
	return ret
}

//Cpus returns the current number of worker goroutines used for a grid
//evaluation, and sets it, if a valid value is given.
func (o *Options) Cpus(cpus ...int) int {
	ret := o.cpus
	if len(cpus) > 0 && cpus[0] > 0 {
		o.cpus = cpus[0]
	}
	return ret
}

//pointJob is one work item: a single grid point, plus, for orbital runs,
//the requested 1-based state.
type pointJob struct {
	pos   int
	state int
}

//Calculation is the completion token of a grid evaluation. The grid stays
//write-locked, and its previous contents must be treated as undefined by
//any other reader, until Done fires.
type Calculation struct {
	done   chan struct{}
	cancel context.CancelFunc
	err    error
}

//Done returns a channel closed once every point value has been committed
//and the grid lock released. It can be awaited or polled.
func (c *Calculation) Done() <-chan struct{} { return c.done }

//Wait blocks until the run finishes and returns its error, which is nil on
//normal completion and context.Canceled after a Cancel call.
func (c *Calculation) Wait() error {
	<-c.done
	return c.err
}

//Cancel aborts the remaining work items. Points already computed stay
//written; the grid lock is still released and Done still fires. Cancelling
//a finished run does nothing.
func (c *Calculation) Cancel() { c.cancel() }

//EvaluateOrbital freezes the set if needed and computes the amplitude field
//of the 1-based orbital state over every point of grid. See the method on
//Frozen for the concurrency contract.
func (g *GaussianSet) EvaluateOrbital(grid Grid, state int, options ...*Options) (*Calculation, error) {
	f, err := g.Freeze()
	if err != nil {
		return nil, errDecorate(err, "EvaluateOrbital")
	}
	return f.EvaluateOrbital(grid, state, options...)
}

//EvaluateDensity freezes the set if needed and computes the electron
//density field over every point of grid. See the method on Frozen for the
//concurrency contract.
func (g *GaussianSet) EvaluateDensity(grid Grid, options ...*Options) (*Calculation, error) {
	f, err := g.Freeze()
	if err != nil {
		return nil, errDecorate(err, "EvaluateDensity")
	}
	return f.EvaluateDensity(grid, options...)
}

//EvaluateOrbital computes the amplitude of the 1-based orbital state at
//every point of grid, concurrently. Precondition failures (no MO
//coefficients, state out of [1, NumMOs()]) are reported synchronously,
//before the grid is touched. On success the grid is already write-locked
//and tagged when the call returns; the returned token reports completion.
func (f *Frozen) EvaluateOrbital(grid Grid, state int, options ...*Options) (*Calculation, error) {
	if f.moMatrix == nil {
		return nil, CError{"no MO coefficients have been set", []string{"EvaluateOrbital"}}
	}
	if state < 1 || state > f.numMOs {
		return nil, CError{fmt.Sprintf("orbital state %d out of range [1, %d]", state, f.numMOs), []string{"EvaluateOrbital"}}
	}
	if state > f.moColumns {
		//the matrix spans numMOs columns but only moColumns carry
		//supplied coefficients, the rest are zero-filled
		logger.Warn("orbital state beyond the supplied MO columns, computing a zero field",
			"state", state, "columns", f.moColumns)
	}
	return f.run(grid, FieldMO, state, evalOpts(options)), nil
}

//EvaluateDensity computes the electron density at every point of grid,
//concurrently. Fails synchronously if no density matrix was set before
//freezing. On success the grid is already write-locked and tagged when the
//call returns; the returned token reports completion.
func (f *Frozen) EvaluateDensity(grid Grid, options ...*Options) (*Calculation, error) {
	if f.density == nil {
		return nil, CError{"can't calculate density: density matrix not set", []string{"EvaluateDensity"}}
	}
	return f.run(grid, FieldDensity, 0, evalOpts(options)), nil
}

func evalOpts(options []*Options) *Options {
	//a zero-value Options would start no workers and stall the feeder
	if len(options) > 0 && options[0] != nil && options[0].cpus > 0 {
		return options[0]
	}
	return DefaultOptions()
}

//run does the actual map over the grid points: it takes the write lock,
//tags the field, builds one work item per point and dispatches them over a
//bounded worker group. Point results are independent and each lands in a
//distinct location, so no ordering is enforced between workers. The lock is
//held from here until every write is committed (or the run is cancelled),
//and only then the token fires.
func (f *Frozen) run(grid Grid, ft FieldType, state int, o *Options) *Calculation {
	ctx, cancel := context.WithCancel(context.Background())
	calc := &Calculation{done: make(chan struct{}), cancel: cancel}
	jobs := make([]pointJob, grid.Len())
	for i := range jobs {
		jobs[i] = pointJob{pos: i, state: state}
	}
	grid.Lock().Lock()
	grid.SetFieldType(ft)
	natoms := len(f.atomPos)
	feed := make(chan pointJob)
	go func() {
		defer close(calc.done)
		defer cancel()
		defer grid.Lock().Unlock()
		eg, ctx := errgroup.WithContext(ctx)
		for w := 0; w < o.cpus; w++ {
			eg.Go(func() error {
				//scratch is per worker, never shared
				deltas := make([][3]float64, natoms)
				dr2 := make([]float64, natoms)
				var values []float64
				if ft == FieldDensity {
					values = make([]float64, f.numMOs)
				}
				for job := range feed {
					var v float64
					if ft == FieldDensity {
						v = f.densityAt(grid.Position(job.pos), deltas, dr2, values)
					} else {
						v = f.orbitalAt(grid.Position(job.pos), job.state-1, deltas, dr2)
					}
					grid.SetValue(job.pos, v)
				}
				return nil
			})
		}
		eg.Go(func() error {
			defer close(feed)
			for _, j := range jobs {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case feed <- j:
				}
			}
			return nil
		})
		calc.err = eg.Wait()
	}()
	return calc
}
