// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gif

import (
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/emer/gif/psc"
)

// Calib holds the exact per-step update coefficients derived from a Params
// bundle and an integration timestep.  It is a pure function of those two
// inputs: no random or stateful quantities live here.  A Calib is treated as
// immutable once built; Unit rebuilds it whenever parameters or the timestep
// change, before any subsequent step.
type Calib struct {

	// timestep the coefficients were computed for, in msec
	H float32

	// membrane decay over one step: exp(-h/TauM)
	P33 float32

	// transfer from a constant current (pA) onto the membrane potential
	// (mV) over one step: (TauM/CM)*(1-exp(-h/TauM))
	P30 float32

	// transfer from the aggregate spike-triggered adaptation current onto
	// the membrane potential; same form as P30, applied subtractively since
	// the adaptation current opposes the drive
	P31 float32

	// excitatory synaptic current decay over one step: exp(-h/TauE)
	P11E float32

	// inhibitory synaptic current decay over one step: exp(-h/TauI)
	P11I float32

	// transfer from the excitatory synaptic current onto the membrane
	// potential over one step
	P21E float32

	// transfer from the inhibitory synaptic current onto the membrane
	// potential over one step
	P21I float32

	// per-component spike-frequency adaptation decay factors exp(-h/tau_i)
	DSfa []float32

	// per-component spike-triggered current decay factors exp(-h/tau_i)
	DStc []float32

	// number of whole steps the refractory period lasts: round(TRef/h)
	RefSteps int32
}

// Calibrate computes the exact update coefficients for the given timestep h
// (msec).  It returns an error wrapping ErrCalib if h is not a positive
// finite number or if a positive refractory period rounds to zero steps, and
// an error wrapping ErrConfig if the parameters themselves are invalid.
func (pr *Params) Calibrate(h float32) (*Calib, error) {
	if err := pr.Validate(); err != nil {
		return nil, err
	}
	if badNum(h) || !(h > 0) {
		return nil, fmt.Errorf("%w: timestep h = %g must be a positive finite duration", ErrCalib, h)
	}
	tauM := pr.Mem.TauM()
	cb := &Calib{H: h}
	cb.P33 = psc.Decay(h, tauM)
	cb.P30 = psc.DCGain(h, tauM, pr.Mem.CM)
	cb.P31 = cb.P30
	cb.P11E = psc.Decay(h, pr.Syn.TauE)
	cb.P11I = psc.Decay(h, pr.Syn.TauI)
	cb.P21E = psc.SynGain(h, pr.Syn.TauE, tauM, pr.Mem.CM)
	cb.P21I = psc.SynGain(h, pr.Syn.TauI, tauM, pr.Mem.CM)
	cb.DSfa = pr.Sfa.Decays(h)
	cb.DStc = pr.Stc.Decays(h)
	cb.RefSteps = int32(math32.Round(pr.Mem.TRef / h))
	if pr.Mem.TRef > 0 && cb.RefSteps == 0 {
		return nil, fmt.Errorf("%w: refractory period TRef = %g rounds to zero steps at h = %g", ErrCalib, pr.Mem.TRef, h)
	}
	return cb, nil
}
