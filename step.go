// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kont

// StepOutcome tags which terminal shape a [StepResult] holds.
type StepOutcome uint8

const (
	// StepContinue carries a successor [State]; the driver should call
	// [Step] again.
	StepContinue StepOutcome = iota
	// StepDone means the run completed normally.
	StepDone
	// StepFailed means the run ended in an error (possibly
	// [InvariantViolation], which the driver must not continue past).
	StepFailed
	// StepAsyncEscape carries an [AsyncEscapeAction] for an async-aware
	// driver to run and feed back in.
	StepAsyncEscape
)

// StepResult is what [Step] returns: exactly one field besides Outcome
// is meaningful, selected by Outcome.
type StepResult struct {
	Outcome StepOutcome
	State   State
	Value   Value
	Err     error
	Action  AsyncEscapeAction
}

func continueWith(s State) StepResult { return StepResult{Outcome: StepContinue, State: s} }
func doneResult(v Value) StepResult   { return StepResult{Outcome: StepDone, Value: v} }
func failedResult(err error) StepResult {
	return StepResult{Outcome: StepFailed, Err: err}
}

// Step applies exactly one machine transition (§6's step contract): it
// inspects C and K[0] and applies the first matching rule between Level 2
// ([level2Step]) and, by delegation, Level 1 ([CeskStep]).
func Step(state State) StepResult {
	return level2Step(state)
}

// CeskStep is the pure Level 1 stepper (§4.1). Its precondition is that C
// is Program, Value, or Error. For Value and Error it additionally
// requires that — if K is non-empty — K[0] is a [ReturnKFrame]; a Program
// control may legitimately sit atop a [WithHandlerKFrame] or
// [DispatchingKFrame] (handleWithHandler and stepDispatching both start a
// Program that way), so the check does not apply there. Violating it is
// always a machine bug (I2), reported as [InvariantViolation] rather than
// a panic, so the driver can surface it through the normal [StepResult]
// channel.
func CeskStep(state State) StepResult {
	if (state.C.Kind == CtrlValue || state.C.Kind == CtrlError) && len(state.K) > 0 {
		if _, ok := state.K[0].(*ReturnKFrame); !ok {
			return failedResult(newInvariantViolation("cesk_step: precondition violated, K[0] is not a Return frame"))
		}
	}

	switch state.C.Kind {
	case CtrlProgram:
		comp := state.C.Prog.ToSuspended()
		out := comp.Start()
		switch out.Kind {
		case SuspendYield:
			next := state
			next.C = EffectYieldControl(out.Yield)
			next.K = append([]KFrame{&ReturnKFrame{Gen: comp}}, state.K...)
			return continueWith(next)
		case SuspendReturn:
			next := state
			next.C = ValueControl(out.ReturnValue)
			return continueWith(next)
		default: // SuspendError
			next := state
			next.C = ErrorControl(out.Err)
			return continueWith(next)
		}

	case CtrlValue:
		if len(state.K) == 0 {
			return doneResult(state.C.Val)
		}
		r := state.K[0].(*ReturnKFrame)
		return applySuspendOutcome(state, r.Gen.Send(state.C.Val))

	case CtrlError:
		if len(state.K) == 0 {
			return failedResult(state.C.Err)
		}
		r := state.K[0].(*ReturnKFrame)
		return applySuspendOutcome(state, r.Gen.Throw(state.C.Err))

	default: // CtrlEffectYield: Level 2 consumes this, Level 1 passes it through.
		return continueWith(state)
	}
}

// applySuspendOutcome folds a SuspendedComputation's Start/Send/Throw
// result back into state, popping the top Return frame only when the
// generator has actually finished (normally or with an error).
func applySuspendOutcome(state State, out SuspendOutcome) StepResult {
	switch out.Kind {
	case SuspendYield:
		next := state
		next.C = EffectYieldControl(out.Yield)
		return continueWith(next)
	case SuspendReturn:
		next := state
		next.C = ValueControl(out.ReturnValue)
		next.K = state.K[1:]
		return continueWith(next)
	default: // SuspendError
		next := state
		next.C = ErrorControl(out.Err)
		next.K = state.K[1:]
		return continueWith(next)
	}
}

// level2Step is the Level 2 rule dispatcher (§4.2). Rules are checked in
// order; the first match wins. Error propagation through WithHandler and
// Dispatching frames (§4.5) is checked ahead of the value rules numbered
// first in §4.2, since both share the same frame-popping shape and must
// run before CeskStep ever sees a K[0] that isn't a Return frame.
func level2Step(state State) StepResult {
	if state.C.Kind == CtrlError && len(state.K) > 0 {
		switch state.K[0].(type) {
		case *WithHandlerKFrame, *DispatchingKFrame:
			next := state
			next.K = state.K[1:]
			return continueWith(next)
		}
	}

	if state.C.Kind == CtrlValue && len(state.K) > 0 {
		switch f := state.K[0].(type) {
		case *WithHandlerKFrame:
			next := state
			next.K = state.K[1:]
			return continueWith(next)
		case *DispatchingKFrame:
			return stepDispatching(state, f)
		}
	}

	if state.C.Kind == CtrlEffectYield {
		return classifyYield(state)
	}

	return CeskStep(state)
}

// stepDispatching implements rule 2 of §4.2: either invoke the selected
// handler for the first time, or — if it already ran and returned
// without resuming — perform implicit abandonment (§4.4).
func stepDispatching(state State, d *DispatchingKFrame) StepResult {
	if !d.Started {
		if d.Idx < 0 {
			next := state
			next.C = ErrorControl(newUnhandledEffect(d.Effect))
			return continueWith(next)
		}
		handler := d.Handlers[d.Idx].Handler
		p := handler(d.Effect)
		d.Started = true
		next := state
		next.C = ProgramControl(p)
		return continueWith(next)
	}
	return implicitAbandon(state, d)
}

// implicitAbandon drops the handler's scope (D and every frame through
// its owning WithHandler) and substitutes the handler's own return value
// as the result of the scoped computation.
func implicitAbandon(state State, d *DispatchingKFrame) StepResult {
	v := state.C.Val
	target := d.Handlers[d.Idx]
	suffix := state.K[1:]
	j, ok := findMatchingWithHandler(suffix, target.ID)
	if !ok {
		return failedResult(newInvariantViolation("implicit abandonment: no WithHandler matching the dispatching handler"))
	}
	for _, f := range suffix[:j] {
		if r, ok := f.(*ReturnKFrame); ok {
			closeBestEffort(r.Gen)
		}
	}
	next := state
	next.K = suffix[j+1:]
	next.C = ValueControl(v)
	return continueWith(next)
}

// closeBestEffort finalizes a suspended computation being dropped
// without ever resuming, absorbing any panic Close raises (§9: "current"
// behavior per spec.md's open question on this point).
func closeBestEffort(gen SuspendedComputation) {
	defer func() { _ = recover() }()
	gen.Close()
}

// classifyYield implements rule 3 of §4.2: recognize which of the
// control-primitive markers, a nested [Program], or an [Effect] value y
// is, and apply the corresponding transition.
func classifyYield(state State) StepResult {
	y := state.C.Yield
	switch m := y.(type) {
	case withHandlerMarker:
		return continueWith(handleWithHandler(state, m))
	case resumeMarker:
		return fromPrimitive(handleResume(state, m))
	case forwardMarker:
		return fromPrimitive(handleForward(state, m))
	case getContinuationMarker:
		return fromPrimitive(handleGetContinuation(state))
	case createContinuationMarker:
		return continueWith(handleCreateContinuation(state, m))
	case resumeContinuationMarker:
		return fromPrimitive(handleResumeContinuation(state, m))
	case getHandlersMarker:
		return fromPrimitive(handleGetHandlers(state))
	case envLookupMarker:
		return continueWith(handleEnvLookup(state, m))
	case asyncAwaitMarker:
		return StepResult{Outcome: StepAsyncEscape, Action: wrapAsyncEscape(state, m)}
	}

	if effect, ok := y.(Effect); ok {
		return continueWith(startDispatch(state, effect))
	}
	if p, ok := y.(Program); ok {
		next := state
		next.C = ProgramControl(p)
		return continueWith(next)
	}
	return failedResult(newInvariantViolation("unclassifiable value yielded from a suspended computation"))
}

func fromPrimitive(state State, ierr *MachineError) StepResult {
	if ierr != nil {
		return failedResult(ierr)
	}
	return continueWith(state)
}
