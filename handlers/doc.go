// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package handlers is a small library of standard [kont.Handler] values
// built entirely on the root package's exported surface: State, Reader,
// Writer, Cache, Atomic, Scheduler, and AsyncBridge. None of this is part
// of the core machine — each handler here is just a plain Go function
// matching the kont.Handler shape, installed with kont.WithHandler like
// any handler a caller might write themselves.
package handlers
