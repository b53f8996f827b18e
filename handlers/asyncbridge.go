// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package handlers

import "code.hybscloud.com/algeff"

// CallEffect asks for Action to be run by whatever async runtime the
// installed [AsyncBridge] handler bridges to.
type CallEffect struct{ Action kont.AsyncAction }

func (CallEffect) EffectTag() string { return "async.call" }

// Call performs CallEffect.
func Call(action kont.AsyncAction) kont.Program {
	return kont.Perform(CallEffect{Action: action})
}

// AsyncBridge builds a handler translating [Call] effects into the
// core's own async-escape primitive, so ordinary handler-authoring code
// never has to know whether it is running under [driver.Run] or
// [driver.RunAsync] — only the driver cares whether any AsyncEscape
// terminal ever actually occurs.
func AsyncBridge() kont.Handler {
	return func(e kont.Effect) kont.Program {
		c, ok := e.(CallEffect)
		if !ok {
			return kont.Forward(e)
		}
		return kont.ProgBind(kont.AsyncAwait(c.Action), func(v kont.Value) kont.Program {
			return kont.Resume(v)
		})
	}
}
