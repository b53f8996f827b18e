// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kont

import "github.com/google/uuid"

// KFrame is an element of the continuation stack K, the fourth component
// of the CESK tuple. It is one of the three variants §3 names:
// [ReturnKFrame], [WithHandlerKFrame], and [DispatchingKFrame]. K[0] is
// always the top of stack.
//
// KFrame is unrelated to [Frame], which is [Program]'s own internal frame
// chain — a ReturnKFrame's Gen field is exactly one [SuspendedComputation]
// built from a Program, but K itself never holds a Program frame chain
// directly.
type KFrame interface {
	kframe() // unexported marker method
}

// ReturnKFrame owns a suspended user or handler computation. It is
// pushed when a [Program] starts and popped when that computation
// completes, normally or with an error.
type ReturnKFrame struct {
	Gen SuspendedComputation
}

func (*ReturnKFrame) kframe() {}

// WithHandlerKFrame marks the dynamic scope boundary installed by
// [WithHandler]: Ref is the handler installed at this point, visible to
// every dispatch below any nested [DispatchingKFrame] until this frame
// pops.
type WithHandlerKFrame struct {
	Ref HandlerRef
}

func (*WithHandlerKFrame) kframe() {}

// DispatchingKFrame carries in-progress dispatch state for one effect
// performance. Handlers is the snapshot [visibleHandlers] computed at
// dispatch-start time (I4: never recomputed). Idx selects the handler
// being tried and is fixed once the frame is built; [Forward] and
// [Delegate] push a new DispatchingKFrame over the outer handlers
// instead of changing it. Started distinguishes "about to invoke the handler" from
// "handler is running and has not yet resumed".
type DispatchingKFrame struct {
	Effect   Effect
	Idx      int
	Handlers []HandlerRef
	Started  bool
}

func (*DispatchingKFrame) kframe() {}

// Continuation is a first-class, one-shot delimited continuation: either
// captured from an in-progress user computation ([GetContinuation]) or
// built from a program and handler list that has not run yet
// ([CreateContinuation]). ID is assigned at construction and is the key
// the consumed-continuation set in [Store] tracks (I6).
type Continuation struct {
	ID       uuid.UUID
	Frames   []KFrame     // captured frames, meaningful when Started
	Program  *Program     // unstarted program, meaningful when !Started
	Handlers []HandlerRef // handlers to install around Program, when !Started
	Started  bool
}

func newContinuationID() uuid.UUID {
	return uuid.New()
}
