// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package hazard implements the exponential escape-noise firing law used by
stochastic integrate-and-fire neurons (Gerstner & Kistler escape noise;
Jolivet et al. 2006; Mensi et al. 2012).

Instead of a hard threshold, the neuron fires stochastically with an
instantaneous intensity that grows exponentially with the distance between
the membrane potential and the effective threshold:

	lambda(t) = Lambda0 * exp((Vm - Thr - thrOff) / DeltaU)

where thrOff is the summed spike-frequency adaptation of the moment.  Over a
timestep of h msec the intensity is treated as constant, giving a spike
probability of 1 - exp(-lambda*h/1000) for the step, with at most one spike
emitted per step.  As DeltaU shrinks toward zero the law approaches a
deterministic hard threshold at Thr + thrOff.
*/
package hazard

import (
	"fmt"

	"cogentcore.org/core/base/randx"
	"cogentcore.org/core/math32"
)

// Params are the escape-noise stochastic firing parameters.
type Params struct {

	// baseline firing threshold, in mV, in the same relative-to-rest frame
	// as the membrane potential.  Spike-frequency adaptation adds to this.
	Thr float32 `def:"35"`

	// stochasticity level, in mV: the exponential slope of firing intensity
	// as a function of distance to threshold.  Larger values give noisier,
	// more graded firing; small values approach a hard threshold.
	// Must be > 0.
	DeltaU float32 `def:"1.5" min:"0"`

	// firing intensity when the membrane potential sits exactly at the
	// effective threshold, in Hz.  Must be >= 0; zero silences the neuron.
	Lambda0 float32 `def:"10000" min:"0"`
}

func (hp *Params) Defaults() {
	hp.Thr = 35
	hp.DeltaU = 1.5
	hp.Lambda0 = 10000
	hp.Update()
}

func (hp *Params) Update() {
}

// Validate returns an error naming the first violated parameter constraint,
// or nil if all parameters are in range.
func (hp *Params) Validate() error {
	if badNum(hp.Thr) {
		return fmt.Errorf("hazard: Thr = %g must be finite", hp.Thr)
	}
	if badNum(hp.DeltaU) || !(hp.DeltaU > 0) {
		return fmt.Errorf("hazard: DeltaU = %g must be a positive finite voltage", hp.DeltaU)
	}
	if badNum(hp.Lambda0) || hp.Lambda0 < 0 {
		return fmt.Errorf("hazard: Lambda0 = %g must be a non-negative finite rate", hp.Lambda0)
	}
	return nil
}

// Rate returns the instantaneous firing intensity in Hz for membrane
// potential vm and additional threshold offset thrOff (the summed
// spike-frequency adaptation), both in mV.
func (hp *Params) Rate(vm, thrOff float32) float32 {
	return hp.Lambda0 * math32.Exp((vm-hp.Thr-thrOff)/hp.DeltaU)
}

// SpikeP returns the probability of spiking within one timestep of h msec
// at intensity lambda in Hz: 1 - exp(-lambda*h/1000).
func (hp *Params) SpikeP(lambda, h float32) float32 {
	return -math32.Expm1(-lambda * h * 0.001)
}

// Spike draws whether a spike occurs this step, at intensity lambda (Hz)
// over timestep h (msec), using the given random source.
func (hp *Params) Spike(lambda, h float32, rnd randx.Rand) bool {
	p := hp.SpikeP(lambda, h)
	if p <= 0 {
		return false
	}
	return randx.BoolP32(p, rnd)
}

func badNum(x float32) bool {
	return math32.IsNaN(x) || math32.IsInf(x, 0)
}
