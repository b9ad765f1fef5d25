// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gif

import (
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/emer/gif/adapt"
	"github.com/emer/gif/hazard"
)

///////////////////////////////////////////////////////////////////////
//  params.go contains the parameter groups for the GIF neuron

// MembraneParams are the passive membrane, reset, and refractory parameters.
// All potentials are in mV relative to the leak reversal EL; see Neuron.Vm.
type MembraneParams struct {

	// leak conductance, in nS.  Must be > 0.  Together with CM this sets
	// the membrane time constant TauM = CM / GL.
	GL float32 `def:"4" min:"0"`

	// leak (resting) reversal potential, in mV, absolute.  The dynamical
	// state Vm is expressed relative to this origin, so EL never enters the
	// update itself; it is kept for converting readouts to absolute
	// potentials.
	EL float32 `def:"-70"`

	// membrane potential immediately after a spike and throughout the
	// refractory period, in mV relative to EL.
	VReset float32 `def:"15"`

	// membrane capacitance, in pF.  Must be > 0.
	CM float32 `def:"80" min:"0"`

	// absolute refractory period, in msec.  Must be >= 0.  Rounded to whole
	// steps at calibration; a positive TRef that rounds to zero steps is a
	// calibration error rather than being silently ignored.
	TRef float32 `def:"4" min:"0"`

	// constant bias current injected on every step, in pA, added to
	// whatever the input buffers deliver.
	IE float32 `def:"0"`
}

func (mp *MembraneParams) Defaults() {
	mp.GL = 4
	mp.EL = -70
	mp.VReset = 15
	mp.CM = 80
	mp.TRef = 4
	mp.IE = 0
}

func (mp *MembraneParams) Update() {
}

// TauM returns the membrane time constant CM / GL, in msec.
func (mp *MembraneParams) TauM() float32 {
	return mp.CM / mp.GL
}

// Validate returns an error naming the first violated parameter constraint,
// or nil if all parameters are in range.
func (mp *MembraneParams) Validate() error {
	switch {
	case badNum(mp.GL) || !(mp.GL > 0):
		return fmt.Errorf("membrane: GL = %g must be a positive finite conductance", mp.GL)
	case badNum(mp.EL):
		return fmt.Errorf("membrane: EL = %g must be finite", mp.EL)
	case badNum(mp.VReset):
		return fmt.Errorf("membrane: VReset = %g must be finite", mp.VReset)
	case badNum(mp.CM) || !(mp.CM > 0):
		return fmt.Errorf("membrane: CM = %g must be a positive finite capacitance", mp.CM)
	case badNum(mp.TRef) || mp.TRef < 0:
		return fmt.Errorf("membrane: TRef = %g must be a non-negative finite duration", mp.TRef)
	case badNum(mp.IE):
		return fmt.Errorf("membrane: IE = %g must be finite", mp.IE)
	}
	return nil
}

// SynParams are the exponential postsynaptic current parameters.  Each
// incoming spike weight is added to the matching accumulator, which then
// decays exponentially, so overlapping inputs superpose linearly.
type SynParams struct {

	// decay time constant of the excitatory synaptic current, in msec.
	// Must be > 0.
	TauE float32 `def:"2" min:"0"`

	// decay time constant of the inhibitory synaptic current, in msec.
	// Must be > 0.
	TauI float32 `def:"2" min:"0"`
}

func (sp *SynParams) Defaults() {
	sp.TauE = 2
	sp.TauI = 2
}

func (sp *SynParams) Update() {
}

// Validate returns an error naming the first violated parameter constraint,
// or nil if all parameters are in range.
func (sp *SynParams) Validate() error {
	switch {
	case badNum(sp.TauE) || !(sp.TauE > 0):
		return fmt.Errorf("synapse: TauE = %g must be a positive finite time constant", sp.TauE)
	case badNum(sp.TauI) || !(sp.TauI > 0):
		return fmt.Errorf("synapse: TauI = %g must be a positive finite time constant", sp.TauI)
	}
	return nil
}

// SpikeParams are the spike bookkeeping parameters: the integration
// constant for the running average inter-spike interval, which gives an
// instantaneous firing rate estimate as 1 / ISIAvg.
type SpikeParams struct {

	// constant for integrating the spiking interval in estimating spiking
	// rate, in intervals.  Must be >= 1.
	ISITau float32 `def:"5" min:"1"`

	// rate = 1 / tau
	ISIDt float32 `display:"-"`
}

func (sk *SpikeParams) Defaults() {
	sk.ISITau = 5
	sk.Update()
}

func (sk *SpikeParams) Update() {
	sk.ISIDt = 1 / sk.ISITau
}

// AvgFromISI updates the running average inter-spike interval from the
// latest interval value.
func (sk *SpikeParams) AvgFromISI(avg *float32, isi float32) {
	if *avg <= 0 {
		*avg = isi
	} else if isi < 0.8**avg {
		*avg = isi // if significantly less, just take it
	} else { // integrate on slower time scale
		*avg += sk.ISIDt * (isi - *avg)
	}
}

// Validate returns an error naming the first violated parameter constraint,
// or nil if all parameters are in range.
func (sk *SpikeParams) Validate() error {
	if badNum(sk.ISITau) || sk.ISITau < 1 {
		return fmt.Errorf("spike: ISITau = %g must be a finite integration constant >= 1", sk.ISITau)
	}
	return nil
}

// gif.Params bundles all parameters of a GIF unit.  A Unit only ever
// commits a Params as a validated whole: use Unit.SetParams (or
// Unit.ApplyParams for style sheets) rather than mutating a committed
// bundle in place, so validation, recalibration, and adaptation state
// resizing stay atomic.
type Params struct {

	// passive membrane, reset, refractory, and bias current parameters
	Mem MembraneParams `display:"inline"`

	// exponential postsynaptic current parameters
	Syn SynParams `display:"inline"`

	// escape-noise stochastic firing parameters
	Hazard hazard.Params `display:"inline"`

	// spike bookkeeping parameters for the inter-spike-interval average
	Spike SpikeParams `display:"inline"`

	// spike-frequency adaptation kernels: spike-triggered, exponentially
	// decaying increments to the effective firing threshold, in mV
	Sfa adapt.Params

	// spike-triggered current kernels: spike-triggered, exponentially
	// decaying adaptation currents opposing the membrane drive, in pA
	Stc adapt.Params
}

func (pr *Params) Defaults() {
	pr.Mem.Defaults()
	pr.Syn.Defaults()
	pr.Hazard.Defaults()
	pr.Spike.Defaults()
	pr.Sfa.Defaults()
	pr.Stc.Defaults()
	pr.Update()
}

// Update must be called after any changes to parameters
func (pr *Params) Update() {
	pr.Mem.Update()
	pr.Syn.Update()
	pr.Hazard.Update()
	pr.Spike.Update()
	pr.Sfa.Update()
	pr.Stc.Update()
}

// Validate checks every parameter against its declared constraint.  It
// returns nil if all hold, otherwise an error wrapping ErrConfig that names
// the first violated constraint.
func (pr *Params) Validate() error {
	if err := pr.Mem.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if err := pr.Syn.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if err := pr.Hazard.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if err := pr.Spike.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if err := pr.Sfa.Validate("sfa"); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if err := pr.Stc.Validate("stc"); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return nil
}

// Clone returns a deep copy of the parameters, with the adaptation kernel
// vectors copied rather than shared.
func (pr *Params) Clone() Params {
	cp := *pr
	cp.Sfa = pr.Sfa.Clone()
	cp.Stc = pr.Stc.Clone()
	return cp
}

func badNum(x float32) bool {
	return math32.IsNaN(x) || math32.IsInf(x, 0)
}
