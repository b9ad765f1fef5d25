// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package adapt implements banks of independent single-exponential
spike-triggered adaptation kernels.

A bank is a pair of parallel vectors: per-component decay time constants
(Tau) and per-spike jump amplitudes (Q).  Each component's state decays as
exp(-h/tau) every step and jumps by its q when the neuron spikes; the bank's
total effect on the neuron is the plain sum over components.  Superposing a
handful of such kernels approximates the power-law adaptation observed in
cortical neurons over several orders of magnitude in time (Pozzorini et al.
2013), which is why the number of components is left open rather than fixed.

The same bank type serves two roles in a GIF neuron: spike-frequency
adaptation (q in mV, added to the effective firing threshold) and
spike-triggered currents (q in pA, opposing the membrane drive).
*/
package adapt

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// Params specifies one bank of adaptation kernels as parallel vectors of
// decay time constants and spike-triggered jump amplitudes.  An empty bank
// is valid and contributes nothing.
type Params struct {

	// Tau is the decay time constant of each component, in msec.
	// Each must be > 0.  Same length as Q.
	Tau []float32

	// Q is the amount added to each component's state when a spike occurs.
	// Units depend on what the bank drives: mV for threshold adaptation,
	// pA for spike-triggered currents.  Same length as Tau.
	Q []float32
}

// Defaults leaves the bank empty, which is valid and inert.
func (ap *Params) Defaults() {
	ap.Tau = nil
	ap.Q = nil
}

func (ap *Params) Update() {
}

// N returns the number of components in the bank.
func (ap *Params) N() int {
	return len(ap.Tau)
}

// Set replaces the bank with copies of the given vectors.
func (ap *Params) Set(tau, q []float32) {
	ap.Tau = append([]float32(nil), tau...)
	ap.Q = append([]float32(nil), q...)
}

// Clone returns a deep copy of the bank.
func (ap *Params) Clone() Params {
	cp := Params{}
	cp.Tau = append([]float32(nil), ap.Tau...)
	cp.Q = append([]float32(nil), ap.Q...)
	return cp
}

// Validate returns an error if Tau and Q differ in length, any time constant
// is not a positive finite number, or any jump amplitude is not finite.
// name identifies the bank in error messages.
func (ap *Params) Validate(name string) error {
	if len(ap.Tau) != len(ap.Q) {
		return fmt.Errorf("%s: Tau and Q vectors differ in length: %d != %d", name, len(ap.Tau), len(ap.Q))
	}
	for i, tau := range ap.Tau {
		if badNum(tau) || !(tau > 0) {
			return fmt.Errorf("%s: Tau[%d] = %g must be a positive finite time constant", name, i, tau)
		}
	}
	for i, q := range ap.Q {
		if badNum(q) {
			return fmt.Errorf("%s: Q[%d] = %g must be finite", name, i, q)
		}
	}
	return nil
}

// Decays returns the per-component one-step decay factors exp(-h/tau) for
// timestep h in msec.
func (ap *Params) Decays(h float32) []float32 {
	dk := make([]float32, len(ap.Tau))
	for i, tau := range ap.Tau {
		dk[i] = math32.Exp(-h / tau)
	}
	return dk
}

// DecayComps multiplies each component of state st by the matching decay
// factor in dk.  Slices must be the same length.
func DecayComps(st, dk []float32) {
	for i := range st {
		st[i] *= dk[i]
	}
}

// JumpComps adds each jump amplitude in q to the matching component of st.
// Slices must be the same length.
func JumpComps(st, q []float32) {
	for i := range st {
		st[i] += q[i]
	}
}

// Sum returns the sum over all components of st, the bank's aggregate effect.
func Sum(st []float32) float32 {
	var sum float32
	for _, v := range st {
		sum += v
	}
	return sum
}

// FitState returns a component state slice sized for n components: if st
// already has length n it is returned as-is, preserving per-component state,
// otherwise a new zeroed slice is returned.
func FitState(st []float32, n int) []float32 {
	if len(st) == n {
		return st
	}
	return make([]float32, n)
}

func badNum(x float32) bool {
	return math32.IsNaN(x) || math32.IsInf(x, 0)
}
