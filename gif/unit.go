// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gif

import (
	"encoding/json"
	"fmt"
	"strings"

	"cogentcore.org/core/base/randx"
	"github.com/emer/emergent/v2/params"
	"github.com/emer/gif/adapt"
)

// Unit is a single generalized integrate-and-fire neuron: the full
// parameter set, the propagators calibrated from it for a given timestep,
// the dynamical state, and the pending-input buffers.  The embedded Params
// gives parameter paths of the form "Unit.Mem.GL" for style sheets.
// Construct with NewUnit, then Calibrate against a Context before stepping.
type Unit struct {

	// Name of the unit, matched by "#name" selectors in style sheets
	Name string

	// Class is a space-separated list of class tags, matched by ".class"
	// selectors in style sheets
	Class string

	// Params is the full set of model parameters.  Mutate only through
	// SetParams or ApplyParams, which validate before committing.
	Params

	// Calib has the propagators and step-sampled decay factors derived
	// from the current parameters at the calibrated timestep.
	// nil until Calibrate is called.
	Calib *Calib `display:"-"`

	// Neuron is the dynamical state, advanced by every Step
	Neuron Neuron

	// Ins holds the delay-buffered inputs pending for this and future steps
	Ins Inputs

	// Rnd is the random source for the stochastic spike decision.
	// Defaults to the global source; set to e.g. randx.NewSysRand(seed)
	// for reproducible runs.
	Rnd randx.Rand `display:"-"`

	// OnSpike, if non-nil, is called with the Context step index after
	// every step on which the unit spiked.
	OnSpike func(step int) `display:"-" json:"-"`
}

// NewUnit returns a new named Unit with default parameters and initialized
// state.  Call Calibrate against a Context before the first Step.
func NewUnit(name string) *Unit {
	un := &Unit{Name: name}
	un.Defaults()
	un.InitState()
	return un
}

// Defaults sets default parameter values, overwriting any existing ones,
// and ensures the unit has a random source.  State is untouched: call
// InitState separately.
func (un *Unit) Defaults() {
	un.Params.Defaults()
	if un.Rnd == nil {
		un.Rnd = randx.NewGlobalRand()
	}
}

// UpdateParams updates all params given any changes that might have been
// made to individual values.
func (un *Unit) UpdateParams() {
	un.Params.Update()
}

// InitState resets the dynamical state to initial conditions and discards
// any pending buffered inputs.  Parameters and calibration are preserved.
func (un *Unit) InitState() {
	un.Params.InitState(&un.Neuron)
	un.Ins.Init()
}

// Calibrate derives the propagator set from the current parameters at the
// Context timestep and installs it on the unit.  It must be called before
// the first Step; Step itself recalibrates if the timestep changes later.
func (un *Unit) Calibrate(ctx *Context) error {
	cb, err := un.Params.Calibrate(ctx.TimeStep)
	if err != nil {
		return err
	}
	un.Calib = cb
	return nil
}

// Step consumes the buffered inputs due this step and advances the neuron
// state by one timestep, returning whether a spike was emitted.  The unit
// must have been calibrated; if the Context timestep has changed since
// calibration, Step recalibrates first.  The caller advances the Context
// clock (StepInc) after stepping all units.
func (un *Unit) Step(ctx *Context) (bool, error) {
	if un.Calib == nil {
		return false, fmt.Errorf("%w: unit %s stepped before calibration", ErrStep, un.Name)
	}
	if un.Calib.H != ctx.TimeStep {
		if err := un.Calibrate(ctx); err != nil {
			return false, err
		}
	}
	if len(un.Neuron.SfaElems) != un.Params.Sfa.N() || len(un.Neuron.StcElems) != un.Params.Stc.N() {
		return false, fmt.Errorf("%w: unit %s adaptation state does not match parameter banks", ErrStep, un.Name)
	}
	wE := un.Ins.SpikesE.Take()
	wI := un.Ins.SpikesI.Take()
	cur := un.Ins.Currents.Take()
	spiked := un.Params.StepNeuron(un.Calib, &un.Neuron, wE, wI, cur, un.Rnd)
	if spiked && un.OnSpike != nil {
		un.OnSpike(ctx.Step)
	}
	return spiked, nil
}

// SetParams applies fun to a working copy of the parameters and commits the
// result only if it validates (and, once the unit has been calibrated,
// recalibrates) cleanly.  On error the unit's parameters, calibration, and
// state are all left exactly as they were.
func (un *Unit) SetParams(fun func(pr *Params)) error {
	pr := un.Params.Clone()
	fun(&pr)
	pr.Update()
	return un.commit(&pr)
}

// commit installs a candidate parameter set atomically: validate (through
// recalibration if the unit was calibrated), then swap in the parameters
// and new calibration, resize the adaptation state vectors to the possibly
// changed bank sizes, and recompute the aggregates.
func (un *Unit) commit(pr *Params) error {
	cb := un.Calib
	if cb != nil {
		ncb, err := pr.Calibrate(cb.H)
		if err != nil {
			return err
		}
		cb = ncb
	} else if err := pr.Validate(); err != nil {
		return err
	}
	un.Params = *pr
	un.Calib = cb
	un.Neuron.SfaElems = adapt.FitState(un.Neuron.SfaElems, pr.Sfa.N())
	un.Neuron.StcElems = adapt.FitState(un.Neuron.StcElems, pr.Stc.N())
	un.Neuron.Sfa = adapt.Sum(un.Neuron.SfaElems)
	un.Neuron.Stc = adapt.Sum(un.Neuron.StcElems)
	return nil
}

// unitStyle is the params.Styler target for ApplyParams: sheets are applied
// to a copy of the parameters so the commit stays transactional.
type unitStyle struct {
	Params
	name  string
	class string
}

func (us *unitStyle) StyleType() string  { return "Unit" }
func (us *unitStyle) StyleClass() string { return us.class }
func (us *unitStyle) StyleName() string  { return us.name }

// ApplyParams applies given parameter style Sheet to this unit, using
// parameter paths of the form "Unit.Mem.GL".  The sheet is applied to a
// working copy and committed only if the result validates, so a bad sheet
// leaves the unit untouched.  If setMsg is true, a message is printed to
// confirm each parameter that is set.
// returns true if any params were set, and error if there were any errors.
func (un *Unit) ApplyParams(pars *params.Sheet, setMsg bool) (bool, error) {
	us := &unitStyle{Params: un.Params.Clone(), name: un.Name, class: un.Class}
	app, err := pars.Apply(us, setMsg)
	if err != nil {
		return app, err
	}
	if !app {
		return false, nil
	}
	us.Params.Update()
	if err := un.commit(&us.Params); err != nil {
		return app, err
	}
	return app, nil
}

// VmAbs returns the membrane potential in absolute terms (mV), adding the
// resting potential back onto the relative Vm state variable.
func (un *Unit) VmAbs() float32 {
	return un.Params.Mem.EL + un.Neuron.Vm
}

// VarByName returns the value of the named neuron state variable, returning
// NaN and an error if the name is not valid.
func (un *Unit) VarByName(varNm string) (float32, error) {
	return un.Neuron.VarByName(varNm)
}

// JsonToParams reformates json output to suitable params display output
func JsonToParams(b []byte) string {
	br := strings.Replace(string(b), `"`, ``, -1)
	br = strings.Replace(br, ",\n", "", -1)
	br = strings.Replace(br, "{\n", "{", -1)
	br = strings.Replace(br, "} ", "}\n  ", -1)
	br = strings.Replace(br, "\n }", " }", -1)
	br = strings.Replace(br, "\n  }\n", " }", -1)
	return br[1:] + "\n"
}

// AllParams returns a listing of all parameters in the Unit
func (un *Unit) AllParams() string {
	str := "/////////////////////////////////////////////////\nUnit: " + un.Name + "\n"
	b, _ := json.MarshalIndent(&un.Params.Mem, "", " ")
	str += "Mem: {\n " + JsonToParams(b)
	b, _ = json.MarshalIndent(&un.Params.Syn, "", " ")
	str += "Syn: {\n " + JsonToParams(b)
	b, _ = json.MarshalIndent(&un.Params.Hazard, "", " ")
	str += "Hazard: {\n " + JsonToParams(b)
	b, _ = json.MarshalIndent(&un.Params.Spike, "", " ")
	str += "Spike: {\n " + JsonToParams(b)
	b, _ = json.MarshalIndent(&un.Params.Sfa, "", " ")
	str += "Sfa: {\n " + JsonToParams(b)
	b, _ = json.MarshalIndent(&un.Params.Stc, "", " ")
	str += "Stc: {\n " + JsonToParams(b)
	return str
}
