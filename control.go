// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kont

// Control primitives (§4.3). Each is a [Program] constructor that yields
// a tagged marker value; [level2Step] recognizes the marker and performs
// the corresponding pure transition on (C, E, S, K). None of them may run
// user code directly — they only rearrange state.

type withHandlerMarker struct {
	h Handler
	p Program
}

// WithHandler installs h as the innermost handler for the dynamic extent
// of p: a fresh [WithHandlerKFrame] is pushed and p starts running inside
// it.
func WithHandler(h Handler, p Program) Program {
	return ProgYield(withHandlerMarker{h: h, p: p})
}

type resumeMarker struct{ v Value }

// Resume returns control to the point of the yield that this handler is
// currently servicing, with v as the effect's result. It must be yielded
// from a program running as a handler body (i.e. from inside the
// [Program] a [Handler] returned).
func Resume(v Value) Program {
	return ProgYield(resumeMarker{v: v})
}

type forwardMarker struct {
	effect Effect
	tail   bool
}

// Forward asks the next-outer handler to service effect, without
// discarding the current handler's own continuation: once the outer
// handler resumes, control returns to the point right after this yield
// in the current handler's code.
func Forward(effect Effect) Program {
	return ProgYield(forwardMarker{effect: effect, tail: false})
}

// Delegate asks the next-outer handler to service effect in tail
// position: the current handler's own Return frame and the frames
// between its dispatch and its [WithHandler] installation are cleared,
// so the outer handler's result flows directly to the outer caller
// instead of back through this handler. Pass nil to delegate the
// effect currently being dispatched unchanged.
func Delegate(effect Effect) Program {
	return ProgYield(forwardMarker{effect: effect, tail: true})
}

type getContinuationMarker struct{}

// GetContinuation captures the user computation suspended between the
// current dispatch and its owning [WithHandler] as a one-shot
// [Continuation] value, without altering K. The handler may resume it
// later via [ResumeContinuation], or let it be reclaimed unused.
func GetContinuation() Program {
	return ProgYield(getContinuationMarker{})
}

type createContinuationMarker struct {
	program  Program
	handlers []HandlerRef
}

// CreateContinuation builds an unstarted [Continuation] from program,
// to be run under handlers once resumed. Unlike [GetContinuation] it
// captures nothing from the current dispatch.
func CreateContinuation(program Program, handlers []HandlerRef) Program {
	return ProgYield(createContinuationMarker{program: program, handlers: handlers})
}

type resumeContinuationMarker struct {
	k *Continuation
	v Value
}

// ResumeContinuation resumes k with value v. k may be consumed at most
// once (I6); a second attempt yields [OneShotViolation].
func ResumeContinuation(k *Continuation, v Value) Program {
	return ProgYield(resumeContinuationMarker{k: k, v: v})
}

type getHandlersMarker struct{}

// GetHandlers returns the handler snapshot of the [DispatchingKFrame]
// currently in progress — the set visible from the yielding user
// computation's perspective, not the handler's own outer scope.
func GetHandlers() Program {
	return ProgYield(getHandlersMarker{})
}

type envLookupMarker struct{ name string }

// EnvLookupResult is the value [EnvLookup] resumes with.
type EnvLookupResult struct {
	Value Value
	Found bool
}

// EnvLookup looks name up in the current lexical environment (E). It is
// a pure read: E and K are left untouched, so it carries no scoping
// semantics of its own — whatever put name into E (driver.WithEnvBinding,
// typically) controls its lifetime.
func EnvLookup(name string) Program {
	return ProgYield(envLookupMarker{name: name})
}

// handleEnvLookup implements EnvLookup.
func handleEnvLookup(state State, m envLookupMarker) State {
	v, ok := state.E.Lookup(m.name)
	state.C = ValueControl(EnvLookupResult{Value: v, Found: ok})
	return state
}

// handleWithHandler pushes a fresh handler scope and starts p inside it.
func handleWithHandler(state State, m withHandlerMarker) State {
	ref := HandlerRef{ID: state.S.AllocHandlerID(), Handler: m.h}
	state.K = append([]KFrame{&WithHandlerKFrame{Ref: ref}}, state.K...)
	state.C = ProgramControl(m.p)
	return state
}

// handleResume implements §4.3's Resume rule.
func handleResume(state State, m resumeMarker) (State, *MachineError) {
	if len(state.K) == 0 {
		return state, newInvariantViolation("Resume: empty continuation stack")
	}
	r, ok := state.K[0].(*ReturnKFrame)
	if !ok {
		return state, newInvariantViolation("Resume: top of K is not a Return frame")
	}
	d, dIdx, ok := findNearestDispatching(state.K)
	if !ok {
		return state, newInvariantViolation("Resume: no enclosing Dispatching frame")
	}
	target := d.Handlers[d.Idx]
	suffix := state.K[dIdx+1:]
	j, ok := findMatchingWithHandler(suffix, target.ID)
	if !ok {
		return state, newInvariantViolation("Resume: no WithHandler matching the dispatching handler")
	}
	newK := make([]KFrame, 0, len(suffix)+1)
	newK = append(newK, suffix[:j]...)
	newK = append(newK, r)
	newK = append(newK, suffix[j:]...)
	state.K = newK
	state.C = ValueControl(m.v)
	return state, nil
}

// handleForward implements §4.3's Forward/Delegate rule.
func handleForward(state State, m forwardMarker) (State, *MachineError) {
	if len(state.K) == 0 {
		return state, newInvariantViolation("Forward: empty continuation stack")
	}
	d, dIdx, ok := findNearestDispatching(state.K)
	if !ok {
		return state, newInvariantViolation("Forward: no enclosing Dispatching frame")
	}
	outer := d.Handlers[:d.Idx]
	if len(outer) == 0 {
		state.C = ErrorControl(newUnhandledEffect(d.Effect))
		return state, nil
	}
	effect := m.effect
	if effect == nil {
		effect = d.Effect
	}
	newD := &DispatchingKFrame{Effect: effect, Idx: len(outer) - 1, Handlers: outer, Started: false}

	if !m.tail {
		state.K = append([]KFrame{newD}, state.K...)
		state.C = ValueControl(Unit{})
		return state, nil
	}

	// Delegate: tail semantics. Clear the current handler's Return frame
	// (K[0]) and everything through its own WithHandler installation, so
	// the outer handler's eventual result bypasses this handler entirely.
	target := d.Handlers[d.Idx]
	suffix := state.K[dIdx+1:]
	j, ok := findMatchingWithHandler(suffix, target.ID)
	if !ok {
		return state, newInvariantViolation("Delegate: no WithHandler matching the dispatching handler")
	}
	state.K = append([]KFrame{newD}, suffix[j+1:]...)
	state.C = ValueControl(Unit{})
	return state, nil
}

// handleGetContinuation captures, without modifying K, the frames
// between the current dispatch and its owning WithHandler.
func handleGetContinuation(state State) (State, *MachineError) {
	d, dIdx, ok := findNearestDispatching(state.K)
	if !ok {
		return state, newInvariantViolation("GetContinuation: no enclosing Dispatching frame")
	}
	target := d.Handlers[d.Idx]
	suffix := state.K[dIdx+1:]
	j, ok := findMatchingWithHandler(suffix, target.ID)
	if !ok {
		return state, newInvariantViolation("GetContinuation: no WithHandler matching the dispatching handler")
	}
	captured := make([]KFrame, j)
	copy(captured, suffix[:j])
	cont := &Continuation{ID: newContinuationID(), Frames: captured, Started: true}
	state.C = ValueControl(cont)
	return state, nil
}

// handleCreateContinuation builds an unstarted Continuation without
// touching K.
func handleCreateContinuation(state State, m createContinuationMarker) State {
	cont := &Continuation{
		ID:       newContinuationID(),
		Program:  &m.program,
		Handlers: m.handlers,
		Started:  false,
	}
	state.C = ValueControl(cont)
	return state
}

// handleResumeContinuation implements §4.3's ResumeContinuation rule.
func handleResumeContinuation(state State, m resumeContinuationMarker) (State, *MachineError) {
	if !state.S.MarkConsumed(m.k.ID) {
		state.C = ErrorControl(newOneShotViolation("continuation " + m.k.ID.String() + " already resumed"))
		return state, nil
	}
	if len(state.K) == 0 {
		return state, newInvariantViolation("ResumeContinuation: empty continuation stack")
	}
	r, ok := state.K[0].(*ReturnKFrame)
	if !ok {
		return state, newInvariantViolation("ResumeContinuation: top of K is not a Return frame")
	}
	d, dIdx, ok := findNearestDispatching(state.K)
	if !ok {
		return state, newInvariantViolation("ResumeContinuation: no enclosing Dispatching frame")
	}
	target := d.Handlers[d.Idx]
	suffix := state.K[dIdx+1:]
	j, ok := findMatchingWithHandler(suffix, target.ID)
	if !ok {
		return state, newInvariantViolation("ResumeContinuation: no WithHandler matching the dispatching handler")
	}

	if m.k.Started {
		newK := make([]KFrame, 0, len(m.k.Frames)+1+len(suffix)-j)
		newK = append(newK, m.k.Frames...)
		newK = append(newK, r)
		newK = append(newK, suffix[j:]...)
		state.K = newK
		state.C = ValueControl(m.v)
		return state, nil
	}

	// Unstarted: install the continuation's own handlers and start its
	// program. The resume value has no slot in an already-built Program,
	// so it is not threaded into k.Program's input and is discarded.
	splice := make([]KFrame, 0, len(m.k.Handlers)+1)
	for i := len(m.k.Handlers) - 1; i >= 0; i-- {
		splice = append(splice, &WithHandlerKFrame{Ref: m.k.Handlers[i]})
	}
	newK := make([]KFrame, 0, len(splice)+1+len(suffix)-j)
	newK = append(newK, splice...)
	newK = append(newK, r)
	newK = append(newK, suffix[j:]...)
	state.K = newK
	state.C = ProgramControl(*m.k.Program)
	return state, nil
}

// handleGetHandlers returns the current dispatch's handler snapshot.
func handleGetHandlers(state State) (State, *MachineError) {
	d, _, ok := findNearestDispatching(state.K)
	if !ok {
		return state, newInvariantViolation("GetHandlers: no enclosing Dispatching frame")
	}
	handlers := make([]HandlerRef, len(d.Handlers))
	copy(handlers, d.Handlers)
	state.C = ValueControl(handlers)
	return state, nil
}
