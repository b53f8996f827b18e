// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package handlers

import "code.hybscloud.com/algeff"

// FetchEffect asks for the value keyed by Key, computing it with Load on
// a miss. Load is invoked at most once per Key for the lifetime of the
// handler.
type FetchEffect struct {
	Key  string
	Load func() kont.Value
}

func (FetchEffect) EffectTag() string { return "cache.fetch" }

// Fetch performs FetchEffect.
func Fetch(key string, load func() kont.Value) kont.Program {
	return kont.Perform(FetchEffect{Key: key, Load: load})
}

// Cache builds a memoizing handler for [Fetch]. The single-step
// invariant (§5: only one step is ever active at a time) means the
// backing map needs no locking, the same justification [Store] relies on
// for its own mutable fields.
func Cache() kont.Handler {
	m := make(map[string]kont.Value)
	return func(e kont.Effect) kont.Program {
		f, ok := e.(FetchEffect)
		if !ok {
			return kont.Forward(e)
		}
		if v, hit := m[f.Key]; hit {
			return kont.Resume(v)
		}
		v := f.Load()
		m[f.Key] = v
		return kont.Resume(v)
	}
}
