// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import "code.hybscloud.com/algeff"

// demoEffect is the minimal Effect every built-in scenario performs:
// just a name, since none of the seven end-to-end scenarios need a
// richer payload.
type demoEffect struct{ name string }

func (e demoEffect) EffectTag() string { return e.name }

func asInt(v kont.Value) int { return v.(int) }

// scenario bundles a runnable program with the handler set the CLI
// installs around it, outermost first.
type scenario struct {
	name        string
	description string
	program     kont.Program
	handlerSet  []kont.Handler
}

// scenarios lists the seven concrete end-to-end cases, in the same
// order and with the same expected results a careful reviewer could
// check by hand.
func scenarios() []scenario {
	e1 := demoEffect{name: "E1"}
	yieldEffect := demoEffect{name: "Yield"}

	identity := kont.Handler(func(e kont.Effect) kont.Program {
		if e.EffectTag() == e1.EffectTag() {
			return kont.Resume(7)
		}
		return kont.Forward(e)
	})

	abandoning := kont.Handler(func(kont.Effect) kont.Program {
		return kont.ProgReturn(42)
	})

	outerForward := kont.Handler(func(kont.Effect) kont.Program {
		return kont.Resume(42)
	})
	innerForward := kont.Handler(func(e kont.Effect) kont.Program {
		return kont.ProgBind(kont.Forward(e), func(v kont.Value) kont.Program {
			return kont.Resume(v)
		})
	})
	innerReyield := kont.Handler(func(e kont.Effect) kont.Program {
		return kont.ProgBind(kont.Perform(e), func(v kont.Value) kont.Program {
			return kont.Resume(v)
		})
	})

	captureResume := kont.Handler(func(kont.Effect) kont.Program {
		return kont.ProgBind(kont.GetContinuation(), func(kv kont.Value) kont.Program {
			k := kv.(*kont.Continuation)
			return kont.ResumeContinuation(k, 42)
		})
	})
	doubleResume := kont.Handler(func(kont.Effect) kont.Program {
		return kont.ProgBind(kont.GetContinuation(), func(kv kont.Value) kont.Program {
			k := kv.(*kont.Continuation)
			return kont.ProgBind(kont.ResumeContinuation(k, 42), func(kont.Value) kont.Program {
				return kont.ResumeContinuation(k, 42)
			})
		})
	})

	incrementAfter := func(effect demoEffect) kont.Program {
		return kont.ProgBind(kont.Perform(effect), func(v kont.Value) kont.Program {
			return kont.ProgReturn(asInt(v) + 1)
		})
	}

	return []scenario{
		{
			name:        "identity",
			description: "program yields E1, handler resumes with 7, outer adds 1 -> Done(8)",
			program:     incrementAfter(e1),
			handlerSet:  []kont.Handler{identity},
		},
		{
			name:        "abandon",
			description: "handler returns 42 without resuming -> Done(42)",
			program: kont.ProgBind(kont.Perform(e1), func(kont.Value) kont.Program {
				return kont.ProgReturn(99)
			}),
			handlerSet: []kont.Handler{abandoning},
		},
		{
			name:        "forward",
			description: "inner handler yields Forward(E1), outer resumes with 42 -> Done(43)",
			program:     incrementAfter(e1),
			handlerSet:  []kont.Handler{outerForward, innerForward},
		},
		{
			name:        "reyield",
			description: "inner handler re-performs E1 instead of Forward -> Done(43), same as forward",
			program:     incrementAfter(e1),
			handlerSet:  []kont.Handler{outerForward, innerReyield},
		},
		{
			name:        "capture",
			description: "handler captures and immediately resumes the continuation with 42 -> Done(43)",
			program:     incrementAfter(yieldEffect),
			handlerSet:  []kont.Handler{captureResume},
		},
		{
			name:        "oneshot",
			description: "handler resumes the same captured continuation twice -> Failed(OneShotViolation)",
			program:     incrementAfter(yieldEffect),
			handlerSet:  []kont.Handler{doubleResume},
		},
		{
			name:        "unhandled",
			description: "program yields E2 with no installed handler -> Failed(UnhandledEffect)",
			program:     kont.Perform(demoEffect{name: "E2"}),
			handlerSet:  nil,
		},
	}
}
