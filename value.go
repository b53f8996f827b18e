// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kont

import "code.hybscloud.com/algeff/env"

// Value is the type-erased runtime value flowing through the machine:
// lexical bindings, effect payloads, resumption values, and results are
// all Value. Concrete types are recovered at the boundaries that need
// them (handler dispatch, program combinators) via type assertions.
type Value = any

// Env is the lexical environment (E in the CESK tuple). It is immutable:
// every extension produces a new Env sharing structure with its parent.
// See the env package for the persistent-radix-tree implementation.
type Env = env.Env

// ControlKind tags which of the three Control variants a [Control] value
// holds, plus the machine-internal fourth shape ([CtrlEffectYield]) that
// Level 2 consumes on the step right after it appears.
type ControlKind uint8

const (
	// CtrlProgram holds a not-yet-started computation.
	CtrlProgram ControlKind = iota
	// CtrlValue holds a fully evaluated result.
	CtrlValue
	// CtrlError holds a propagating error.
	CtrlError
	// CtrlEffectYield holds a value yielded by a running computation,
	// pending classification by the dispatch engine. [Step] returns it in
	// the successor state of a step whose computation yielded; the next
	// [Step] always classifies it, so it never appears in two consecutive
	// states.
	CtrlEffectYield
)

// Control is the C component of the CESK tuple. Exactly one field is
// meaningful, selected by Kind.
type Control struct {
	Kind  ControlKind
	Prog  Program
	Val   Value
	Err   error
	Yield Value
}

// ProgramControl wraps a not-yet-run [Program] as a Control.
func ProgramControl(p Program) Control { return Control{Kind: CtrlProgram, Prog: p} }

// ValueControl wraps a finished value as a Control.
func ValueControl(v Value) Control { return Control{Kind: CtrlValue, Val: v} }

// ErrorControl wraps a propagating error as a Control.
func ErrorControl(err error) Control { return Control{Kind: CtrlError, Err: err} }

// EffectYieldControl wraps a value yielded by a running computation, not
// yet classified by the dispatch engine.
func EffectYieldControl(y Value) Control { return Control{Kind: CtrlEffectYield, Yield: y} }

// State is the full CESK tuple: Control, Environment, Store, and
// Continuation (the frame stack K).
type State struct {
	C Control
	E *Env
	S *Store
	K []KFrame
}

// Unit is the canonical "no useful value" result, used where the machine
// needs to set C to a value without the value itself carrying meaning
// (e.g. immediately after a dispatch is started).
type Unit struct{}
