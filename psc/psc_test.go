// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package psc

import (
	"math"
	"testing"

	"cogentcore.org/core/math32"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-6)

func TestDecay(t *testing.T) {
	hs := []float32{0.01, 0.1, 0.5, 1}
	taus := []float32{0.5, 2, 10, 20, 25}
	for _, h := range hs {
		for _, tau := range taus {
			got := Decay(h, tau)
			trg := float32(math.Exp(float64(-h / tau)))
			dif := math32.Abs(got - trg)
			if dif > difTol {
				t.Errorf("Decay err: h: %v, tau: %v, got: %v, trg: %v, dif: %v\n", h, tau, got, trg, dif)
			}
		}
	}
}

func TestDCGain(t *testing.T) {
	hs := []float32{0.01, 0.1, 1}
	taus := []float32{2, 20, 25}
	cms := []float32{80, 250}
	for _, h := range hs {
		for _, tau := range taus {
			for _, c := range cms {
				got := DCGain(h, tau, c)
				trg := float32(float64(tau) / float64(c) * (1 - math.Exp(float64(-h/tau))))
				dif := math32.Abs(got - trg)
				if dif > difTol {
					t.Errorf("DCGain err: h: %v, tau: %v, c: %v, got: %v, trg: %v, dif: %v\n", h, tau, c, got, trg, dif)
				}
			}
		}
	}
}

func TestSynGain(t *testing.T) {
	h := float32(0.1)
	c := float32(80)
	tauM := float32(20)
	tauSs := []float32{0.5, 2, 5, 10, 40}
	for _, tauS := range tauSs {
		got := SynGain(h, tauS, tauM, c)
		trg := float32(float64(tauM) * float64(tauS) / (float64(c) * float64(tauS-tauM)) *
			(math.Exp(float64(-h/tauS)) - math.Exp(float64(-h/tauM))))
		dif := math32.Abs(got - trg)
		if dif > difTol {
			t.Errorf("SynGain err: tauS: %v, got: %v, trg: %v, dif: %v\n", tauS, got, trg, dif)
		}
	}
}

func TestSynGainSingular(t *testing.T) {
	h := float32(0.1)
	c := float32(80)
	tauM := float32(20)

	got := SynGain(h, tauM, tauM, c)
	trg := h / c * math32.Exp(-h/tauM)
	if got != trg {
		t.Errorf("SynGain singular err: got: %v, trg: %v\n", got, trg)
	}

	// within EqTol of equal, the singular limit is used and stays close to
	// the true value
	near := SynGain(h, tauM*(1+0.5*EqTol), tauM, c)
	if near != trg {
		t.Errorf("SynGain near-singular err: got: %v, trg: %v\n", near, trg)
	}

	// just outside EqTol, the generic form applies and must agree with the
	// singular limit to within a small relative difference
	out := SynGain(h, tauM*(1+2*EqTol), tauM, c)
	rdif := math32.Abs(out-trg) / trg
	if rdif > 0.05 {
		t.Errorf("SynGain continuity err: outside: %v, singular: %v, rel dif: %v\n", out, trg, rdif)
	}
}
