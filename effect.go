// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kont

// Effect is a value a running [Program] performs, carrying its own
// identity (EffectTag) and whatever payload its concrete type holds.
// User code defines concrete effect types; only EffectTag needs
// implementing, since handlers recover the payload via a type switch on
// the concrete type itself.
//
// Example:
//
//	type Ask struct{ Key string }
//	func (Ask) EffectTag() string { return "ask" }
type Effect interface {
	EffectTag() string
}

// HandlerID uniquely identifies a handler installation. It is assigned
// when the handler is pushed onto K via [WithHandler] and used instead
// of pointer identity so two installations of the same *Handler value
// are still distinguishable (and so a Handler can be a plain function
// value, not necessarily comparable).
type HandlerID uint64

// Handler interprets one dispatched [Effect] and returns the [Program]
// that runs in its place. A handler resumes the original computation by
// yielding [Resume] from within that program; it may also yield
// [Forward] or [Delegate] to pass the effect to an enclosing handler, or
// simply return without resuming to abandon the continuation.
type Handler func(Effect) Program

// HandlerRef pairs an installed Handler with the HandlerID assigned to
// it, the unit [visibleHandlers] and the dispatch frame deal in.
type HandlerRef struct {
	ID      HandlerID
	Handler Handler
}

// Perform yields effect as the machine's next EffectYield control,
// suspending the current program until a handler dispatches it.
func Perform(effect Effect) Program {
	return ProgYield(effect)
}
