// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gif

import (
	"errors"
	"math"
	"testing"

	"cogentcore.org/core/base/randx"
	"github.com/emer/emergent/v2/params"
)

var ParamSets = params.Sets{
	"Base": {
		{Sel: "Unit", Desc: "slower membrane for all units",
			Params: params.Params{
				"Unit.Mem.GL": "10",
				"Unit.Mem.CM": "250",
			}},
		{Sel: ".pyr", Desc: "slower excitatory synapses on tagged units only",
			Params: params.Params{
				"Unit.Syn.TauE": "5",
			}},
	},
	"Bad": {
		{Sel: "Unit", Desc: "conductance must be positive",
			Params: params.Params{
				"Unit.Mem.GL": "-4",
			}},
	},
}

func TestSetParamsTransaction(t *testing.T) {
	un := NewUnit("txn")
	err := un.SetParams(func(pr *Params) { pr.Mem.GL = -1 })
	if err == nil {
		t.Fatal("expected config error")
	}
	if !errors.Is(err, ErrConfig) {
		t.Errorf("error must wrap ErrConfig: %v", err)
	}
	if un.Params.Mem.GL != 4 {
		t.Errorf("failed SetParams must not change params: GL = %v", un.Params.Mem.GL)
	}
	if un.Calib != nil {
		t.Error("uncalibrated unit gained a calibration")
	}

	// adaptation vectors of unequal length are a config error too
	err = un.SetParams(func(pr *Params) { pr.Stc.Set([]float32{50, 100}, []float32{10}) })
	if !errors.Is(err, ErrConfig) {
		t.Errorf("mismatched stc vectors must fail with ErrConfig, got %v", err)
	}
	if un.Params.Stc.N() != 0 || len(un.Neuron.StcElems) != 0 {
		t.Error("failed SetParams must not change the stc bank or its state")
	}

	ctx := NewContext()
	if err := un.Calibrate(ctx); err != nil {
		t.Fatal(err)
	}
	cb := un.Calib
	// a refractory period that rounds to zero steps fails recalibration
	// and must roll the whole change back
	err = un.SetParams(func(pr *Params) { pr.Mem.TRef = 0.01 })
	if err == nil {
		t.Fatal("expected calibration error")
	}
	if !errors.Is(err, ErrCalib) {
		t.Errorf("error must wrap ErrCalib: %v", err)
	}
	if un.Params.Mem.TRef != 4 {
		t.Errorf("failed SetParams must not change params: TRef = %v", un.Params.Mem.TRef)
	}
	if un.Calib != cb {
		t.Error("failed SetParams must keep the existing calibration")
	}

	err = un.SetParams(func(pr *Params) { pr.Mem.TRef = 2 })
	if err != nil {
		t.Fatal(err)
	}
	if un.Calib.RefSteps != 20 || un.Calib.H != 0.1 {
		t.Errorf("committed change must recalibrate in place: RefSteps %v H %v", un.Calib.RefSteps, un.Calib.H)
	}
}

func TestStateResize(t *testing.T) {
	un := NewUnit("resize")
	err := un.SetParams(func(pr *Params) {
		pr.Sfa.Set([]float32{100, 50}, []float32{5, 2})
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(un.Neuron.SfaElems) != 2 {
		t.Fatalf("state not sized to bank: %v", un.Neuron.SfaElems)
	}
	un.Neuron.SfaElems[0] = 3
	un.Neuron.SfaElems[1] = 4
	// a change that keeps the bank size preserves accumulated state
	err = un.SetParams(func(pr *Params) { pr.Mem.IE = 10 })
	if err != nil {
		t.Fatal(err)
	}
	CmprFloats([]float32{un.Neuron.SfaElems[0], un.Neuron.SfaElems[1], un.Neuron.Sfa},
		[]float32{3, 4, 7}, "preserved adaptation state", t)
	// a change in bank size starts the state over at zero
	err = un.SetParams(func(pr *Params) { pr.Sfa.Set([]float32{80}, []float32{1}) })
	if err != nil {
		t.Fatal(err)
	}
	if len(un.Neuron.SfaElems) != 1 || un.Neuron.SfaElems[0] != 0 || un.Neuron.Sfa != 0 {
		t.Errorf("resized state must start at zero: %v sum %v", un.Neuron.SfaElems, un.Neuron.Sfa)
	}
}

func TestApplyParams(t *testing.T) {
	un := NewUnit("u1")
	ctx := NewContext()
	if err := un.Calibrate(ctx); err != nil {
		t.Fatal(err)
	}
	app, err := un.ApplyParams(ParamSets["Base"], false)
	if err != nil {
		t.Fatal(err)
	}
	if !app {
		t.Error("no params applied from Base sheet")
	}
	CmprFloats([]float32{un.Params.Mem.GL, un.Params.Mem.CM, un.Params.Mem.TauM()},
		[]float32{10, 250, 25}, "sheet values", t)
	CmprFloats([]float32{un.Calib.P33}, []float32{float32(math.Exp(-0.1 / 25))}, "recalibrated P33", t)
	if un.Params.Syn.TauE != 2 {
		t.Errorf("class selector must not apply without the tag: TauE = %v", un.Params.Syn.TauE)
	}

	pyr := NewUnit("u2")
	pyr.Class = "pyr"
	if _, err := pyr.ApplyParams(ParamSets["Base"], false); err != nil {
		t.Fatal(err)
	}
	if pyr.Params.Syn.TauE != 5 {
		t.Errorf("class selector must apply to tagged unit: TauE = %v", pyr.Params.Syn.TauE)
	}

	// a sheet that fails validation leaves the unit untouched
	_, err = un.ApplyParams(ParamSets["Bad"], false)
	if err == nil {
		t.Fatal("expected validation error from Bad sheet")
	}
	if !errors.Is(err, ErrConfig) {
		t.Errorf("error must wrap ErrConfig: %v", err)
	}
	if un.Params.Mem.GL != 10 {
		t.Errorf("failed sheet must not change params: GL = %v", un.Params.Mem.GL)
	}
}

func TestStepContract(t *testing.T) {
	un := NewUnit("contract")
	un.Rnd = &detRand{Draw: 0.5}
	ctx := NewContext()
	if _, err := un.Step(ctx); !errors.Is(err, ErrStep) {
		t.Errorf("step before calibration must fail with ErrStep, got %v", err)
	}
	if err := un.Calibrate(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := un.Step(ctx); err != nil {
		t.Errorf("calibrated step: %v", err)
	}
	ctx.StepInc()

	// externally broken adaptation state is refused, not repaired
	un.Neuron.SfaElems = make([]float32, 3)
	if _, err := un.Step(ctx); !errors.Is(err, ErrStep) {
		t.Errorf("mismatched state must fail with ErrStep, got %v", err)
	}
	un.InitState()
	if _, err := un.Step(ctx); err != nil {
		t.Errorf("step after InitState: %v", err)
	}
	ctx.StepInc()

	// a changed timestep recalibrates before the step runs
	ctx2 := NewContext()
	ctx2.TimeStep = 0.05
	if _, err := un.Step(ctx2); err != nil {
		t.Fatal(err)
	}
	if un.Calib.H != 0.05 || un.Calib.RefSteps != 80 {
		t.Errorf("timestep change: H %v RefSteps %v", un.Calib.H, un.Calib.RefSteps)
	}
}

func TestSeedDeterminism(t *testing.T) {
	run := func(seed int64) []int {
		un := NewUnit("det")
		un.Rnd = randx.NewSysRand(seed)
		err := un.SetParams(func(pr *Params) { pr.Mem.IE = 300 }) // drives steady firing
		if err != nil {
			t.Fatal(err)
		}
		ctx := NewContext()
		if err := un.Calibrate(ctx); err != nil {
			t.Fatal(err)
		}
		var spikes []int
		for i := 0; i < 2000; i++ {
			spk, err := un.Step(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if spk {
				spikes = append(spikes, i)
			}
			ctx.StepInc()
		}
		return spikes
	}
	a := run(42)
	b := run(42)
	if len(a) == 0 {
		t.Fatal("expected spikes under strong drive")
	}
	if len(a) != len(b) {
		t.Fatalf("same seed, different spike counts: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("same seed, spike %d at step %d vs %d", i, a[i], b[i])
		}
	}
	c := run(17)
	same := len(a) == len(c)
	if same {
		for i := range a {
			if a[i] != c[i] {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("different seeds produced identical spike trains")
	}
}

func TestOnSpike(t *testing.T) {
	un := NewUnit("cb")
	un.Rnd = &detRand{Draw: 0.999999}
	var got []int
	un.OnSpike = func(step int) { got = append(got, step) }
	ctx := NewContext()
	if err := un.Calibrate(ctx); err != nil {
		t.Fatal(err)
	}
	un.Neuron.Vm = 60 // one forced spike on step 0, then the refractory lock
	for i := 0; i < 5; i++ {
		if _, err := un.Step(ctx); err != nil {
			t.Fatal(err)
		}
		ctx.StepInc()
	}
	if len(got) != 1 || got[0] != 0 {
		t.Errorf("OnSpike steps: got %v, trg [0]", got)
	}
}

func TestContextClock(t *testing.T) {
	ctx := NewContext()
	if ctx.TimeStep != 0.1 {
		t.Errorf("default TimeStep: got %v, trg 0.1", ctx.TimeStep)
	}
	for i := 0; i < 3; i++ {
		ctx.StepInc()
	}
	if ctx.Step != 3 {
		t.Errorf("Step after 3 incs: got %v", ctx.Step)
	}
	CmprFloats([]float32{ctx.Time}, []float32{0.3}, "clock time", t)
	ctx.Reset()
	if ctx.Step != 0 || ctx.Time != 0 {
		t.Errorf("Reset: Step %v Time %v", ctx.Step, ctx.Time)
	}
}
