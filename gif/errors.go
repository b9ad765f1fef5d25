// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gif

import "errors"

// Sentinel errors for the three failure classes of the engine.  Every error
// returned by this package wraps one of these, so callers can classify
// failures with errors.Is without parsing messages.
var (
	// ErrConfig is a rejected parameter configuration: some parameter
	// violated its declared constraint.  The committed configuration is
	// left unchanged.
	ErrConfig = errors.New("gif: invalid configuration")

	// ErrCalib means calibration could not derive usable update
	// coefficients: a non-positive timestep, or a positive refractory
	// period that rounds to zero whole steps.
	ErrCalib = errors.New("gif: calibration failed")

	// ErrStep is a stepping contract violation, such as stepping a unit
	// that was never calibrated or whose state vectors are out of sync
	// with its parameters.
	ErrStep = errors.New("gif: step contract violation")
)
