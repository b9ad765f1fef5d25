// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gif

import "github.com/emer/emergent/v2/etime"

// gif.Context contains the timing state and parameters for stepping a model.
// The simulation loop owns it: call Unit.Step for every unit, then StepInc,
// so that all units sharing a Context advance together.
type Context struct {

	// accumulated amount of simulation time, in msec.
	Time float32

	// step counter: number of timesteps taken since last Reset.
	Step int

	// integration timestep h, in msec, for all units run under this
	// context.  Units are recalibrated automatically when this changes.
	TimeStep float32 `def:"0.1" min:"0"`

	// current evaluation mode, e.g., Train, Test, for logging.
	Mode etime.Modes
}

// NewContext returns a new Context with default parameters.
func NewContext() *Context {
	ctx := &Context{}
	ctx.Defaults()
	return ctx
}

// Defaults sets default values
func (ctx *Context) Defaults() {
	ctx.TimeStep = 0.1
}

// Reset resets the counters all back to zero
func (ctx *Context) Reset() {
	ctx.Time = 0
	ctx.Step = 0
	if ctx.TimeStep == 0 {
		ctx.Defaults()
	}
}

// StepInc increments the step counter and accumulated time by one timestep.
func (ctx *Context) StepInc() {
	ctx.Step++
	ctx.Time += ctx.TimeStep
}
