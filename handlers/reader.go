// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package handlers

import (
	"errors"

	"code.hybscloud.com/algeff"
)

// AskKey is the name [Reader] looks up in the machine's lexical
// environment (E) to answer an [AskEffect]. Install the value it
// resolves to via driver.WithEnvBinding(handlers.AskKey, v), or
// driver.WithEnvBindings for several at once.
const AskKey = "reader.ask"

var errUnboundAsk = errors.New("handlers: reader: no value bound for handlers.AskKey")

// AskEffect reads the environment value bound under [AskKey].
type AskEffect struct{}

func (AskEffect) EffectTag() string { return "reader.ask" }

// Ask performs AskEffect.
func Ask() kont.Program { return kont.Perform(AskEffect{}) }

// Reader builds a handler that answers every [AskEffect] by looking up
// [AskKey] in E — the machine's own lexical environment — rather than
// closing over a Go value, so its answer comes from whatever the driver
// bound for this run. Anything else is forwarded. A missing binding
// errors rather than resuming with nil, since "ask with nothing bound"
// is a setup mistake, not a valid reader value.
func Reader() kont.Handler {
	return func(e kont.Effect) kont.Program {
		if _, ok := e.(AskEffect); !ok {
			return kont.Forward(e)
		}
		return kont.ProgBind(kont.EnvLookup(AskKey), func(v kont.Value) kont.Program {
			res := v.(kont.EnvLookupResult)
			if !res.Found {
				return kont.ProgError(kont.NewHandlerUserError(errUnboundAsk))
			}
			return kont.Resume(res.Value)
		})
	}
}
