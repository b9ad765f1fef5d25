// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package psc computes the exact one-step update coefficients (propagators) for
a leaky membrane driven by exponentially-decaying postsynaptic currents
(PSCs), over a fixed timestep h.

Because both the membrane and the synaptic currents are linear first-order
systems, the subthreshold dynamics have a closed-form solution over any
interval, and a fixed-step integrator can advance the state exactly (to
floating precision) by multiplying with precomputed coefficients instead of
discretizing the differential equations.  The coefficients here are for the
membrane equation

	C * dV/dt = -(C/tauM) * V + I(t)

with V relative to the leak reversal, driven by a constant current over the
step (Decay, DCGain) and by a current decaying as exp(-t/tauS) (SynGain).

The cross coefficient SynGain degenerates when tauS == tauM; the analytic
limit h*exp(-h/tauM)/c is used there, and within EqTol of it, where the
generic expression loses precision to cancellation.
*/
package psc

import "cogentcore.org/core/math32"

// EqTol is the relative difference |tauS-tauM|/tauM below which the synaptic
// and membrane time constants are treated as equal and SynGain returns the
// singular-limit form.
const EqTol = 0.01

// Decay returns exp(-h/tau), the exact one-step decay factor for a
// first-order exponential with time constant tau.  Both h and tau in msec.
func Decay(h, tau float32) float32 {
	return math32.Exp(-h / tau)
}

// DCGain returns the exact one-step transfer coefficient from a current that
// is constant over the step (pA) onto the membrane potential (mV):
// (tauM/c) * (1 - exp(-h/tauM)), with capacitance c in pF and times in msec.
func DCGain(h, tauM, c float32) float32 {
	return -tauM / c * math32.Expm1(-h/tauM)
}

// SynGain returns the exact one-step transfer coefficient from an
// exponentially-decaying synaptic current with time constant tauS (its value
// taken at the start of the step, in pA) onto the membrane potential (mV):
// (tauM*tauS)/(c*(tauS-tauM)) * (exp(-h/tauS) - exp(-h/tauM)).
// When tauS is within EqTol of tauM the analytic limit h*exp(-h/tauM)/c is
// returned instead.
func SynGain(h, tauS, tauM, c float32) float32 {
	if math32.Abs(tauS-tauM) < EqTol*tauM {
		return h / c * math32.Exp(-h/tauM)
	}
	return tauM * tauS / (c * (tauS - tauM)) * (math32.Exp(-h/tauS) - math32.Exp(-h/tauM))
}
