// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gif

import (
	"fmt"
	"unsafe"

	"cogentcore.org/core/math32"
	"github.com/emer/emergent/v2/emer"
)

// NeuronVarStart is the byte offset of fields in the Neuron structure
// where the float32 named variables start.
// Note: all non-float32 infrastructure variables must be at the start!
const NeuronVarStart = unsafe.Offsetof(Neuron{}.I0)

// gif.Neuron holds all of the dynamical state for one GIF neuron.  All
// variables accessible by name must be float32 and contiguous, after the
// adaptation component slices at the top.  The per-component slices always
// have the same lengths as the committed Sfa / Stc parameter banks; Unit
// keeps them in sync across reconfigurations.
type Neuron struct {

	// per-component spike-frequency adaptation state, in mV; Sfa is the sum
	SfaElems []float32

	// per-component spike-triggered current state, in pA; Stc is the sum
	StcElems []float32

	// injected current consumed from the input buffer this step, in pA
	// (not including the constant bias IE)
	I0 float32

	// membrane potential, in mV relative to the leak reversal EL, so 0 is
	// rest.  Pinned at VReset throughout the refractory period.
	Vm float32

	// aggregate spike-frequency adaptation: the summed threshold offset of
	// all SfaElems components, in mV.  The effective firing threshold is
	// Hazard.Thr + Sfa; the baseline Thr itself is not included here.
	Sfa float32

	// aggregate spike-triggered adaptation current: the sum of all StcElems
	// components, in pA, opposing the membrane drive.
	Stc float32

	// excitatory synaptic current accumulator, in pA, decaying with TauE
	IsynE float32

	// inhibitory synaptic current accumulator, in pA (negative-going),
	// decaying with TauI
	IsynI float32

	// firing intensity evaluated this step, in Hz; zero during the
	// refractory period, when the hazard is never consulted
	Lambda float32

	// whether the neuron spiked this step (0 or 1)
	Spike float32

	// integer-valued refractory countdown, in steps; the neuron is
	// refractory while this is > 0
	Ref float32

	// current inter-spike interval: counts up the steps since the last
	// spike.  Starts at -1 when initialized, and is 0 on the spike step.
	ISI float32

	// running average inter-spike interval, in steps, integrated with the
	// Spike.ISITau constant.  Starts at -1, goes to -2 after the first
	// spike, and is only valid once a full interval has been seen.
	ISIAvg float32
}

var NeuronVars = []string{"I0", "Vm", "Sfa", "Stc", "IsynE", "IsynI", "Lambda", "Spike", "Ref", "ISI", "ISIAvg"}

var NeuronVarsMap map[string]int

var VarCategories = []emer.VarCategory{
	{Cat: "Mem", Doc: "membrane potential and the currents driving it"},
	{Cat: "Adapt", Doc: "aggregate spike-triggered adaptation state"},
	{Cat: "Fire", Doc: "stochastic firing and refractory state"},
}

var NeuronVarProps = map[string]string{
	"I0":     `cat:"Mem" doc:"injected current consumed this step, in pA"`,
	"Vm":     `cat:"Mem" doc:"membrane potential in mV relative to the leak reversal, 0 = rest"`,
	"IsynE":  `cat:"Mem" doc:"excitatory synaptic current, in pA"`,
	"IsynI":  `cat:"Mem" doc:"inhibitory synaptic current, in pA"`,
	"Sfa":    `cat:"Adapt" doc:"summed spike-frequency adaptation threshold offset, in mV"`,
	"Stc":    `cat:"Adapt" doc:"summed spike-triggered adaptation current, in pA"`,
	"Lambda": `cat:"Fire" doc:"firing intensity this step, in Hz"`,
	"Spike":  `cat:"Fire" doc:"whether the neuron spiked this step (0 or 1)"`,
	"Ref":    `cat:"Fire" doc:"refractory countdown in steps"`,
	"ISI":    `cat:"Fire" doc:"steps since last spike, -1 before the first"`,
	"ISIAvg": `cat:"Fire" doc:"running average inter-spike interval in steps, valid after two spikes"`,
}

func init() {
	NeuronVarsMap = make(map[string]int, len(NeuronVars))
	for i, v := range NeuronVars {
		NeuronVarsMap[v] = i
	}
}

func (nrn *Neuron) VarNames() []string {
	return NeuronVars
}

// NeuronVarIndexByName returns the index of the variable in the Neuron, or error
func NeuronVarIndexByName(varNm string) (int, error) {
	i, ok := NeuronVarsMap[varNm]
	if !ok {
		return -1, fmt.Errorf("Neuron VarByName: variable name: %v not valid", varNm)
	}
	return i, nil
}

// VarByIndex returns variable using index (0 = first variable in NeuronVars list)
func (nrn *Neuron) VarByIndex(idx int) float32 {
	fv := (*float32)(unsafe.Pointer(uintptr(unsafe.Pointer(nrn)) + NeuronVarStart + uintptr(4*idx)))
	return *fv
}

// VarByName returns variable by name, or error
func (nrn *Neuron) VarByName(varNm string) (float32, error) {
	i, err := NeuronVarIndexByName(varNm)
	if err != nil {
		return math32.NaN(), err
	}
	return nrn.VarByIndex(i), nil
}

// Refractory returns whether the neuron is currently in its refractory period.
func (nrn *Neuron) Refractory() bool {
	return nrn.Ref > 0
}
