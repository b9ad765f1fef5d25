// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gif

import (
	"math"
	"testing"
)

func TestRingBuf(t *testing.T) {
	rb := RingBuf{}
	if v := rb.Take(); v != 0 {
		t.Errorf("empty take: got %v", v)
	}
	rb.Add(0, 2.5)
	if v := rb.Take(); v != 2.5 {
		t.Errorf("zero-delay delivery: got %v", v)
	}
	rb.Add(3, 5)
	for i := 0; i < 3; i++ {
		if v := rb.Take(); v != 0 {
			t.Errorf("early delivery at step %d: got %v", i, v)
		}
	}
	if v := rb.Take(); v != 5 {
		t.Errorf("delay-3 delivery: got %v", v)
	}
	// deliveries landing on the same step accumulate
	rb.Add(1, 2)
	rb.Add(1, 3)
	if v := rb.Take(); v != 0 {
		t.Errorf("step before delivery: got %v", v)
	}
	if v := rb.Take(); v != 5 {
		t.Errorf("same-step deliveries must sum: got %v", v)
	}
	// negative delays clamp to the current step
	rb.Add(-4, 7)
	if v := rb.Take(); v != 7 {
		t.Errorf("negative delay: got %v", v)
	}
	// a slot is consumed exactly once
	if v := rb.Take(); v != 0 {
		t.Errorf("slot consumed twice: got %v", v)
	}
}

func TestRingBufGrow(t *testing.T) {
	rb := RingBuf{}
	rb.Init(2)
	rb.Add(1, 3)
	rb.Add(6, 7) // beyond capacity: grows, keeping the pending value
	seq := []float32{0, 3, 0, 0, 0, 0, 7}
	for i, trg := range seq {
		if v := rb.Take(); v != trg {
			t.Errorf("step %d: got %v, trg %v", i, v, trg)
		}
	}
}

func TestInputsRouting(t *testing.T) {
	in := Inputs{}
	in.AddSpike(2.5, 0)
	in.AddSpike(-1.5, 0) // inhibitory weights keep their sign
	in.AddCurrent(200, 1)
	if v := in.SpikesE.Take(); v != 2.5 {
		t.Errorf("excitatory routing: got %v", v)
	}
	if v := in.SpikesI.Take(); v != -1.5 {
		t.Errorf("inhibitory routing: got %v", v)
	}
	if v := in.Currents.Take(); v != 0 {
		t.Errorf("current arrived a step early: got %v", v)
	}
	if v := in.Currents.Take(); v != 200 {
		t.Errorf("current delivery: got %v", v)
	}
	in.AddSpike(1, 2)
	in.Init()
	if v := in.SpikesE.Take(); v != 0 {
		t.Errorf("Init must drop pending input: got %v", v)
	}
}

func TestInputDelivery(t *testing.T) {
	un := NewUnit("in")
	un.Rnd = &detRand{Draw: 0.5}
	ctx := NewContext()
	if err := un.Calibrate(ctx); err != nil {
		t.Fatal(err)
	}
	un.Ins.AddSpike(100, 0)  // arrives on the step about to run
	un.Ins.AddCurrent(80, 2) // injected current two steps out
	un.Ins.AddSpike(-50, 1)  // inhibitory, next step

	p21 := 40.0 / (80.0 * -18.0) * (math.Exp(-0.05) - math.Exp(-0.005))
	if _, err := un.Step(ctx); err != nil {
		t.Fatal(err)
	}
	// the spike weight lands on the accumulator and moves Vm this same step
	CmprFloats([]float32{un.Neuron.IsynE, un.Neuron.Vm, un.Neuron.I0},
		[]float32{100, float32(p21 * 100), 0}, "arrival step", t)
	ctx.StepInc()

	if _, err := un.Step(ctx); err != nil {
		t.Fatal(err)
	}
	CmprFloats([]float32{un.Neuron.IsynE, un.Neuron.IsynI},
		[]float32{float32(100 * math.Exp(-0.05)), -50}, "decay and inhibitory arrival", t)
	ctx.StepInc()

	if _, err := un.Step(ctx); err != nil {
		t.Fatal(err)
	}
	if un.Neuron.I0 != 80 {
		t.Errorf("delayed current in I0: got %v, trg 80", un.Neuron.I0)
	}
	ctx.StepInc()

	// nothing further pending: the injected current was one step only
	if _, err := un.Step(ctx); err != nil {
		t.Fatal(err)
	}
	if un.Neuron.I0 != 0 {
		t.Errorf("current must be consumed after its step: got %v", un.Neuron.I0)
	}
}
