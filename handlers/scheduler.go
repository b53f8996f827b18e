// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package handlers

import (
	"context"

	"code.hybscloud.com/algeff"
	"golang.org/x/sync/errgroup"
)

// YieldEffect cooperatively hands control back to the scheduler, asking
// to be resumed once whichever task finishes next is ready.
type YieldEffect struct{}

func (YieldEffect) EffectTag() string { return "scheduler.yield" }

// Yield performs YieldEffect.
func Yield() kont.Program { return kont.Perform(YieldEffect{}) }

// Task is one unit of work the [Scheduler] runs concurrently; it reports
// the value a pending [Yield] resumes with.
type Task func(ctx context.Context) (kont.Value, error)

// Scheduler launches every task in tasks on its own goroutine (joined
// with an [errgroup.Group] so the first task error cancels the rest),
// and builds a handler that resolves each [Yield] with whichever task
// result becomes available next, round-robin by arrival order rather
// than index. The returned Wait func must be called once every Yield it
// will service has been performed, to observe the group's first error
// (if any) and release its goroutines.
func Scheduler(ctx context.Context, tasks []Task) (handler kont.Handler, wait func() error) {
	g, gctx := errgroup.WithContext(ctx)
	results := make(chan kont.Value, len(tasks))
	for _, t := range tasks {
		t := t
		g.Go(func() error {
			v, err := t(gctx)
			if err != nil {
				return err
			}
			select {
			case results <- v:
			case <-gctx.Done():
			}
			return nil
		})
	}

	h := func(e kont.Effect) kont.Program {
		if _, ok := e.(YieldEffect); !ok {
			return kont.Forward(e)
		}
		await := kont.AsyncAwait(func(ctx context.Context) (kont.Value, error) {
			select {
			case v := <-results:
				return v, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		})
		return kont.ProgBind(await, func(v kont.Value) kont.Program {
			return kont.Resume(v)
		})
	}
	return h, g.Wait
}
