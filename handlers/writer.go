// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package handlers

import "code.hybscloud.com/algeff"

// TellEffect appends V to the accumulated output.
type TellEffect struct{ V kont.Value }

func (TellEffect) EffectTag() string { return "writer.tell" }

// ListenEffect runs Body and reports its output alongside its result.
type ListenEffect struct{ Body kont.Program }

func (ListenEffect) EffectTag() string { return "writer.listen" }

// CensorEffect runs Body and rewrites the output it produced with F.
type CensorEffect struct {
	F    func([]kont.Value) []kont.Value
	Body kont.Program
}

func (CensorEffect) EffectTag() string { return "writer.censor" }

// Pair holds a result alongside the output observed while producing it.
type Pair struct {
	Fst kont.Value
	Snd []kont.Value
}

// Tell performs TellEffect.
func Tell(v kont.Value) kont.Program { return kont.Perform(TellEffect{V: v}) }

// Listen performs ListenEffect.
func Listen(body kont.Program) kont.Program { return kont.Perform(ListenEffect{Body: body}) }

// Censor performs CensorEffect.
func Censor(f func([]kont.Value) []kont.Value, body kont.Program) kont.Program {
	return kont.Perform(CensorEffect{F: f, Body: body})
}

// Writer builds a handler accumulating output from [Tell], [Listen], and
// [Censor], and an accessor for everything accumulated so far. Listen and
// Censor reinstall the same handler around Body so nested Tells still
// land in the shared accumulator.
func Writer() (kont.Handler, func() []kont.Value) {
	output := new([]kont.Value)
	var h kont.Handler
	h = func(e kont.Effect) kont.Program {
		switch eff := e.(type) {
		case TellEffect:
			*output = append(*output, eff.V)
			return kont.Resume(kont.Unit{})
		case ListenEffect:
			start := len(*output)
			return kont.ProgBind(kont.WithHandler(h, eff.Body), func(result kont.Value) kont.Program {
				written := append([]kont.Value(nil), (*output)[start:]...)
				return kont.Resume(Pair{Fst: result, Snd: written})
			})
		case CensorEffect:
			start := len(*output)
			return kont.ProgBind(kont.WithHandler(h, eff.Body), func(result kont.Value) kont.Program {
				rewritten := eff.F(append([]kont.Value(nil), (*output)[start:]...))
				*output = append((*output)[:start], rewritten...)
				return kont.Resume(result)
			})
		default:
			return kont.Forward(e)
		}
	}
	return h, func() []kont.Value { return *output }
}
