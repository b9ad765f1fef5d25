// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gif

// RingBuf is a step-aligned delivery buffer: senders accumulate weighted
// events at a whole-step delay into the future, and the engine consumes
// exactly one slot per step.  Within a step all Add calls must complete
// before the consuming Take (single writer phase, then single reader phase);
// across that boundary no synchronization is provided here.
// The zero value is usable: it grows on demand.
type RingBuf struct {

	// Buf holds one accumulation slot per deliverable future step,
	// indexed circularly from Off.
	Buf []float32

	// Off is the index of the current step's slot.
	Off int
}

// Init sizes the buffer to hold delays of up to maxSteps whole steps,
// dropping anything pending.
func (rb *RingBuf) Init(maxSteps int) {
	rb.Buf = make([]float32, maxSteps+1)
	rb.Off = 0
}

// Add accumulates v into the slot that Take will consume delay whole steps
// from now; delay 0 targets the very next Take.  Negative delays are
// treated as 0.  The buffer grows as needed to hold the given delay.
func (rb *RingBuf) Add(delay int, v float32) {
	if delay < 0 {
		delay = 0
	}
	if delay >= len(rb.Buf) {
		rb.grow(delay + 1)
	}
	i := rb.Off + delay
	if i >= len(rb.Buf) {
		i -= len(rb.Buf)
	}
	rb.Buf[i] += v
}

// grow resizes to n slots, preserving pending values by their delay.
func (rb *RingBuf) grow(n int) {
	nb := make([]float32, n)
	for d := 0; d < len(rb.Buf); d++ {
		i := rb.Off + d
		if i >= len(rb.Buf) {
			i -= len(rb.Buf)
		}
		nb[d] = rb.Buf[i]
	}
	rb.Buf = nb
	rb.Off = 0
}

// Take returns and zeroes the current step's slot, advancing to the next.
func (rb *RingBuf) Take() float32 {
	if len(rb.Buf) == 0 {
		return 0
	}
	v := rb.Buf[rb.Off]
	rb.Buf[rb.Off] = 0
	rb.Off++
	if rb.Off >= len(rb.Buf) {
		rb.Off = 0
	}
	return v
}

// Inputs bundles the three delivery buffers feeding a unit each step:
// weighted excitatory and inhibitory spike inputs and injected current.
// Inhibitory spike weights are carried with their negative sign; both
// synaptic accumulators then enter the membrane update additively.
type Inputs struct {

	// excitatory spike weights (positive, pA jumps onto IsynE)
	SpikesE RingBuf

	// inhibitory spike weights (negative, pA jumps onto IsynI)
	SpikesI RingBuf

	// injected currents, in pA, constant over their step
	Currents RingBuf
}

// AddSpike adds a weighted spike arriving delay whole steps from now,
// routed by sign: positive weights drive the excitatory accumulator,
// negative the inhibitory one.
func (in *Inputs) AddSpike(w float32, delay int) {
	if w >= 0 {
		in.SpikesE.Add(delay, w)
	} else {
		in.SpikesI.Add(delay, w)
	}
}

// AddCurrent adds an injected current contribution, in pA, for the step
// arriving delay whole steps from now.
func (in *Inputs) AddCurrent(i float32, delay int) {
	in.Currents.Add(delay, i)
}

// Init drops anything pending in all three buffers.
func (in *Inputs) Init() {
	in.SpikesE = RingBuf{}
	in.SpikesI = RingBuf{}
	in.Currents = RingBuf{}
}
