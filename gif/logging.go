// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gif

import (
	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/tensor/table"
)

// TraceLog records neuron state variables over steps into a table.Table,
// one row per recorded step, for plotting or saving with SaveCSV.
type TraceLog struct {

	// Table holds the recorded trace
	Table *table.Table `display:"no-inline"`

	// Vars are the neuron state variables recorded as columns, in order.
	// Set before Config; empty selects all of NeuronVars.
	Vars []string
}

// NewTraceLog returns a TraceLog configured to record the given variables,
// or all of NeuronVars if none are given.
func NewTraceLog(vars ...string) (*TraceLog, error) {
	tl := &TraceLog{Vars: vars}
	if err := tl.Config(); err != nil {
		return nil, err
	}
	return tl, nil
}

// Config builds the table: Time and Step columns, then one column per
// recorded variable.  Returns an error if any variable name is not valid.
func (tl *TraceLog) Config() error {
	if len(tl.Vars) == 0 {
		tl.Vars = NeuronVars
	}
	for _, vn := range tl.Vars {
		if _, err := NeuronVarIndexByName(vn); err != nil {
			return err
		}
	}
	dt := &table.Table{}
	dt.SetMetaData("name", "Trace")
	dt.SetMetaData("desc", "Per-step neuron state trace")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", "4")
	dt.SetMetaData("XAxis", "Time")
	dt.SetMetaData("Vm:On", "+")
	dt.SetMetaData("Spike:On", "+")
	dt.AddFloat32Column("Time")
	dt.AddIntColumn("Step")
	for _, vn := range tl.Vars {
		dt.AddFloat32Column(vn)
	}
	tl.Table = dt
	return nil
}

// Record appends one row with the Context clock and the unit's current
// variable values.  Call after Unit.Step and before Context.StepInc so the
// row is stamped with the step just taken.
func (tl *TraceLog) Record(ctx *Context, un *Unit) {
	dt := tl.Table
	row := dt.Rows
	dt.SetNumRows(row + 1)
	dt.SetFloat("Time", row, float64(ctx.Time))
	dt.SetFloat("Step", row, float64(ctx.Step))
	for _, vn := range tl.Vars {
		vl := errors.Log1(un.Neuron.VarByName(vn))
		dt.SetFloat(vn, row, float64(vl))
	}
}

// Reset discards all recorded rows, keeping the column configuration.
func (tl *TraceLog) Reset() {
	tl.Table.SetNumRows(0)
}
