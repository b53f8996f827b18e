// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kont

import "context"

// AsyncAction is a value-producing async thunk: the shape an external
// async runtime fulfills when a program performs [AsyncAwait]. It is the
// Go rendering of §4.3's "PythonAsyncSyntaxEscape" primitive — named for
// what it does (await an external async call) rather than the source
// language it replaces.
type AsyncAction func(ctx context.Context) (Value, error)

// AsyncEscapeAction is the wrapped thunk [Step] surfaces when a program
// performs [AsyncAwait]: running it drives the original action and folds
// its result back into the captured (E, S, K), producing the successor
// State the driver should resume stepping from.
type AsyncEscapeAction func(ctx context.Context) (State, error)

// asyncAwaitMarker is the yielded value classified by [level2Step] into
// an [StepAsyncEscape] terminal.
type asyncAwaitMarker struct{ action AsyncAction }

// AsyncAwait suspends the machine so an external async runtime can run
// action and feed its result back in. The synchronous driver rejects
// this as [AsyncEscapeInSyncDriver]; an async-aware driver awaits action
// and resumes stepping with the value it produced, bound as the result
// of this yield.
func AsyncAwait(action AsyncAction) Program {
	return ProgYield(asyncAwaitMarker{action: action})
}

// wrapAsyncEscape closes over state and marker.action so awaiting it
// outside the machine reproduces exactly the step §4.3 describes: the
// awaited value becomes C, (E, S, K) carry over unchanged.
func wrapAsyncEscape(state State, marker asyncAwaitMarker) AsyncEscapeAction {
	return func(ctx context.Context) (State, error) {
		v, err := marker.action(ctx)
		if err != nil {
			state.C = ErrorControl(NewHandlerUserError(err))
			return state, nil
		}
		state.C = ValueControl(v)
		return state, nil
	}
}
