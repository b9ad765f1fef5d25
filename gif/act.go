// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gif

import (
	"cogentcore.org/core/base/randx"
	"github.com/emer/gif/adapt"
)

///////////////////////////////////////////////////////////////////////
//  act.go contains the per-step state machine for the GIF neuron

///////////////////////////////////////////////////////////////////////
//  Init

// InitState initializes the dynamical state to post-construction values:
// membrane at rest, no synaptic or adaptation state, not refractory.
// The adaptation component vectors are sized to match the parameter banks.
func (pr *Params) InitState(nrn *Neuron) {
	nrn.SfaElems = make([]float32, pr.Sfa.N())
	nrn.StcElems = make([]float32, pr.Stc.N())
	nrn.I0 = 0
	nrn.Vm = 0
	nrn.Sfa = 0
	nrn.Stc = 0
	nrn.IsynE = 0
	nrn.IsynI = 0
	nrn.Lambda = 0
	nrn.Spike = 0
	nrn.Ref = 0
	nrn.ISI = -1
	nrn.ISIAvg = -1
}

///////////////////////////////////////////////////////////////////////
//  Step

// SynFromInput advances both synaptic current accumulators by their exact
// one-step decay and adds this step's incoming spike weights, so arriving
// spikes take effect on the membrane within the same step.
func (pr *Params) SynFromInput(cb *Calib, nrn *Neuron, wE, wI float32) {
	nrn.IsynE = nrn.IsynE*cb.P11E + wE
	nrn.IsynI = nrn.IsynI*cb.P11I + wI
}

// VmFromInputs propagates the membrane potential exactly over one step,
// driven by the injected current (cached in I0) plus the constant bias, the
// aggregate adaptation current (opposing), and both synaptic currents.
// Only valid outside the refractory period.
func (pr *Params) VmFromInputs(cb *Calib, nrn *Neuron) {
	nrn.Vm = cb.P30*(nrn.I0+pr.Mem.IE) - cb.P31*nrn.Stc + cb.P33*nrn.Vm +
		cb.P21E*nrn.IsynE + cb.P21I*nrn.IsynI
}

// RefracStep holds the membrane at the reset potential and counts down one
// refractory step.
func (pr *Params) RefracStep(nrn *Neuron) {
	nrn.Vm = pr.Mem.VReset
	nrn.Ref--
}

// AdaptStep decays every adaptation component by its per-component factor
// and recomputes the aggregate sums.
func (pr *Params) AdaptStep(cb *Calib, nrn *Neuron) {
	adapt.DecayComps(nrn.SfaElems, cb.DSfa)
	adapt.DecayComps(nrn.StcElems, cb.DStc)
	nrn.Sfa = adapt.Sum(nrn.SfaElems)
	nrn.Stc = adapt.Sum(nrn.StcElems)
}

// FireFromVm evaluates the escape-noise intensity from the current membrane
// potential and effective threshold, and draws the stochastic spike decision
// for this step.  On a spike it resets the membrane, arms the refractory
// countdown, and applies the adaptation jumps, keeping the aggregates in
// sync.  Returns whether a spike was emitted.
func (pr *Params) FireFromVm(cb *Calib, nrn *Neuron, rnd randx.Rand) bool {
	nrn.Lambda = pr.Hazard.Rate(nrn.Vm, nrn.Sfa)
	if !pr.Hazard.Spike(nrn.Lambda, cb.H, rnd) {
		return false
	}
	nrn.Vm = pr.Mem.VReset
	nrn.Ref = float32(cb.RefSteps)
	adapt.JumpComps(nrn.SfaElems, pr.Sfa.Q)
	adapt.JumpComps(nrn.StcElems, pr.Stc.Q)
	nrn.Sfa = adapt.Sum(nrn.SfaElems)
	nrn.Stc = adapt.Sum(nrn.StcElems)
	return true
}

// SpikeFromFired records the spike outcome and the inter-spike-interval
// bookkeeping for this step.  ISIAvg integrates each completed interval;
// between spikes it is dragged up once the current interval clearly
// exceeds it, so the rate estimate tracks a slowdown.
func (pr *Params) SpikeFromFired(nrn *Neuron, spiked bool) {
	if spiked {
		nrn.Spike = 1
		if nrn.ISIAvg == -1 {
			nrn.ISIAvg = -2
		} else if nrn.ISI > 0 { // must have spiked before to have a full interval
			pr.Spike.AvgFromISI(&nrn.ISIAvg, nrn.ISI+1)
		}
		nrn.ISI = 0
	} else {
		nrn.Spike = 0
		if nrn.ISI >= 0 {
			nrn.ISI++
		}
		if nrn.ISIAvg >= 0 && nrn.ISI > 0 && nrn.ISI > 1.2*nrn.ISIAvg {
			pr.Spike.AvgFromISI(&nrn.ISIAvg, nrn.ISI)
		}
	}
}

// StepNeuron runs one full timestep of the neuron state machine on the
// given per-step inputs: decay-and-accumulate the synaptic currents,
// propagate or pin the membrane, decay the adaptation components, then make
// the stochastic firing decision.  A step that begins refractory never
// evaluates the hazard, even if the countdown reaches zero within it, so
// the refractory lock lasts exactly RefSteps steps after a spike.
// Returns whether a spike was emitted.
func (pr *Params) StepNeuron(cb *Calib, nrn *Neuron, wE, wI, cur float32, rnd randx.Rand) bool {
	nrn.I0 = cur
	pr.SynFromInput(cb, nrn, wE, wI)
	wasRef := nrn.Refractory()
	if wasRef {
		pr.RefracStep(nrn)
	} else {
		pr.VmFromInputs(cb, nrn)
	}
	pr.AdaptStep(cb, nrn)
	spiked := false
	if wasRef {
		nrn.Lambda = 0
	} else {
		spiked = pr.FireFromVm(cb, nrn, rnd)
	}
	pr.SpikeFromFired(nrn, spiked)
	return spiked
}
