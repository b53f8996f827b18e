// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kont

// visibleHandlers computes the ordered handler list a dispatch starting
// right now would see, per §4.4: index 0 is outermost, the last index is
// innermost. Walking K top to bottom, every [WithHandlerKFrame] is
// collected until a [DispatchingKFrame] D is reached — at that point the
// busy boundary applies: D's own handler and everything inner to it
// (D.Handlers[D.Idx:]) are excluded, so the result is D's outer handlers
// followed by whatever has been installed above D since it started.
func visibleHandlers(k []KFrame) []HandlerRef {
	var above []HandlerRef
	for _, f := range k {
		switch fr := f.(type) {
		case *WithHandlerKFrame:
			above = append(above, fr.Ref)
		case *DispatchingKFrame:
			outer := fr.Handlers[:fr.Idx]
			result := make([]HandlerRef, 0, len(outer)+len(above))
			result = append(result, outer...)
			result = append(result, reverseHandlerRefs(above)...)
			return result
		}
	}
	return reverseHandlerRefs(above)
}

// reverseHandlerRefs reverses in without mutating it; WithHandlerKFrame
// frames are collected innermost-first during a top-down K walk, and the
// outer-to-inner convention needs them in the opposite order.
func reverseHandlerRefs(in []HandlerRef) []HandlerRef {
	out := make([]HandlerRef, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}

// startDispatch implements §4.4's start_dispatch: compute the visible
// handler set for effect, and push a fresh [DispatchingKFrame] selecting
// the innermost one. An empty handler set is an [UnhandledEffect], folded
// into C rather than returned as a Go error so it propagates through K
// like any other error (§7).
func startDispatch(state State, effect Effect) State {
	handlers := visibleHandlers(state.K)
	if len(handlers) == 0 {
		state.C = ErrorControl(newUnhandledEffect(effect))
		return state
	}
	df := &DispatchingKFrame{Effect: effect, Idx: len(handlers) - 1, Handlers: handlers, Started: false}
	state.K = append([]KFrame{df}, state.K...)
	state.C = ValueControl(Unit{})
	return state
}

// findNearestDispatching returns the first [DispatchingKFrame] found
// scanning k top to bottom, and its index.
func findNearestDispatching(k []KFrame) (*DispatchingKFrame, int, bool) {
	for i, f := range k {
		if d, ok := f.(*DispatchingKFrame); ok {
			return d, i, true
		}
	}
	return nil, -1, false
}

// findMatchingWithHandler returns the index, within k, of the first
// [WithHandlerKFrame] whose installed handler carries id (I7: handler
// identity is the HandlerID assigned at installation, not a Go pointer).
func findMatchingWithHandler(k []KFrame, id HandlerID) (int, bool) {
	for i, f := range k {
		if wh, ok := f.(*WithHandlerKFrame); ok && wh.Ref.ID == id {
			return i, true
		}
	}
	return -1, false
}
