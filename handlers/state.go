// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package handlers

import "code.hybscloud.com/algeff"

// GetEffect reads the current cell value.
type GetEffect struct{}

func (GetEffect) EffectTag() string { return "state.get" }

// PutEffect overwrites the cell with V.
type PutEffect struct{ V kont.Value }

func (PutEffect) EffectTag() string { return "state.put" }

// ModifyEffect replaces the cell with F applied to its current value and
// resumes with the new value.
type ModifyEffect struct{ F func(kont.Value) kont.Value }

func (ModifyEffect) EffectTag() string { return "state.modify" }

// Get performs GetEffect.
func Get() kont.Program { return kont.Perform(GetEffect{}) }

// Put performs PutEffect.
func Put(v kont.Value) kont.Program { return kont.Perform(PutEffect{V: v}) }

// Modify performs ModifyEffect.
func Modify(f func(kont.Value) kont.Value) kont.Program {
	return kont.Perform(ModifyEffect{F: f})
}

// State builds a handler for a single mutable cell seeded with initial.
// Effects it does not recognize are forwarded to the next-outer handler.
func State(initial kont.Value) kont.Handler {
	cell := initial
	return func(e kont.Effect) kont.Program {
		switch eff := e.(type) {
		case GetEffect:
			return kont.Resume(cell)
		case PutEffect:
			cell = eff.V
			return kont.Resume(kont.Unit{})
		case ModifyEffect:
			cell = eff.F(cell)
			return kont.Resume(cell)
		default:
			return kont.Forward(e)
		}
	}
}
