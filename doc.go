// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package gif is the overall repository for the generalized integrate-and-fire
(GIF) stochastic spiking neuron model (Mensi et al. 2012, Pozzorini et al.
2015), implemented in the Go language (golang).

This top-level of the repository has no functional code -- everything is
organized into the following sub-repositories:

* gif: the core per-neuron engine: validated parameters, exact per-step
propagation of the membrane and synaptic currents, multi-timescale
spike-triggered adaptation, escape-noise stochastic firing, and the
refractory state machine.

* psc: the exact update coefficients (propagators) for a leaky membrane
driven by exponentially-decaying postsynaptic currents, including the
singular equal-time-constant case.

* adapt: banks of independent single-exponential adaptation kernels, used
for both spike-frequency (threshold) adaptation and spike-triggered
currents.

* hazard: the exponential escape-noise firing law that converts distance to
threshold into a per-step spiking probability.

* examples: these compile into runnable programs.  examples/fi records a
voltage trace and sweeps an f-I curve for a single unit, writing the results
as tabular data files.
*/
package gif
