// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package kont implements a small-step abstract machine for algebraic
// effects and one-shot delimited continuations.
//
// The machine is a CESK interpreter — Control, Environment, Store,
// Continuation — split into two layers:
//
//   - Level 1 ([CeskStep]) is a pure small-step stepper over the three
//     Control variants ([ProgramControl], [ValueControl], [ErrorControl])
//     and the suspended-computation contract carried by [Program] /
//     [SuspendedComputation]. It knows nothing about effects, handlers,
//     or dispatch.
//   - Level 2 (level2Step, exposed as [Step]) adds dynamically scoped
//     handler lookup, effect dispatch with forwarding/delegation, resume
//     and implicit-abandonment semantics, and one-shot continuation
//     capture and resumption.
//
// # Programs
//
// A [Program] is a defunctionalized, CPS-style computation: constructors
// such as [ProgReturn], [ProgBind], [ProgMap], [ProgThen], and [ProgError]
// build a chain of frames that [Program.ToSuspended] walks iteratively, with
// no Go stack growth, through Start/Send/Throw/Close — the same shape as
// the "suspended computation" contract the machine consumes at its edge.
//
// User and handler code performs effects with [Perform] and manipulates
// control with [WithHandler], [Resume], [Forward], [Delegate],
// [GetContinuation], [CreateContinuation], [ResumeContinuation], and
// [GetHandlers]. Each of these is just a [Program] that yields a tagged
// marker value; only level2Step interprets the marker and touches the
// continuation stack.
//
// # Driving the machine
//
// [Step] applies exactly one transition and returns a [StepResult]: a
// successor [State], a terminal value, a terminal error, or an async-escape
// request for an external runtime to fulfill and feed back in. Running a
// program to completion — the synchronous and asynchronous driver loops —
// is an external concern; see the sibling driver package.
//
// # What this package does not do
//
// It defines no standard handler library (state, reader, writer, a
// cooperative scheduler — see the sibling handlers package) and no
// integration with any specific async runtime. Those are peripheral
// collaborators built on top of this package's exported surface; this
// package is the core: the frame model, the continuation stack, the two
// steppers, the dispatch engine, and the control primitives.
package kont
