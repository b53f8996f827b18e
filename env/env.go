// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package env implements the machine's lexical Environment (E) as a
// persistent radix tree, so extending a scope never mutates an ancestor.
package env

import radix "github.com/hashicorp/go-immutable-radix/v2"

// Value is the type-erased value an Env binds names to.
type Value = any

// Env is an immutable lexical environment. The zero value is an empty
// environment ready to use.
type Env struct {
	tree *radix.Tree[Value]
}

// New returns an empty environment.
func New() *Env {
	return &Env{tree: radix.New[Value]()}
}

// Extend returns a new environment with name bound to v, leaving the
// receiver (and every environment derived from it) untouched.
func (e *Env) Extend(name string, v Value) *Env {
	t := e.treeOrEmpty()
	next, _, _ := t.Insert([]byte(name), v)
	return &Env{tree: next}
}

// ExtendAll binds every name in names to the corresponding value in
// values, in order, returning the resulting environment. Mismatched
// lengths bind only the shorter of the two.
func (e *Env) ExtendAll(names []string, values []Value) *Env {
	cur := e
	n := len(names)
	if len(values) < n {
		n = len(values)
	}
	for i := 0; i < n; i++ {
		cur = cur.Extend(names[i], values[i])
	}
	return cur
}

// Lookup returns the value bound to name and true, or (nil, false) if
// name is unbound in this environment.
func (e *Env) Lookup(name string) (Value, bool) {
	t := e.treeOrEmpty()
	return t.Get([]byte(name))
}

// Len reports how many names are bound.
func (e *Env) Len() int {
	return e.treeOrEmpty().Len()
}

func (e *Env) treeOrEmpty() *radix.Tree[Value] {
	if e == nil || e.tree == nil {
		return radix.New[Value]()
	}
	return e.tree
}
