// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package handlers

import "code.hybscloud.com/algeff"

// RunEffect asks for Body to run to completion before this dispatch
// resumes. There is no acquire or release step around Body.
type RunEffect struct{ Body kont.Program }

func (RunEffect) EffectTag() string { return "atomic.run" }

// Atomically performs RunEffect.
func Atomically(body kont.Program) kont.Program {
	return kont.Perform(RunEffect{Body: body})
}

// Atomic builds a handler that runs a [RunEffect]'s Body to completion
// before resuming: from the perspective of any handler installed around
// Atomic's own [kont.WithHandler] boundary, Body's effects and Atomic's
// own resumption appear as a single uninterruptible dispatch, since
// nothing else can observe (C, K) between Body starting and Atomic
// calling [kont.Resume].
func Atomic() kont.Handler {
	return func(e kont.Effect) kont.Program {
		r, ok := e.(RunEffect)
		if !ok {
			return kont.Forward(e)
		}
		return kont.ProgBind(r.Body, func(v kont.Value) kont.Program {
			return kont.Resume(v)
		})
	}
}
