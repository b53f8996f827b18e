// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package driver implements the two loops §6 asks a caller to provide:
// a synchronous stepper that rejects async escapes outright, and an
// async-aware stepper that awaits them and resumes. Neither loop is part
// of the machine itself — both are built entirely on [kont.Step].
package driver

import (
	"context"

	"code.hybscloud.com/algeff"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Option configures a driver run.
type Option func(*config)

type envPatch func(*kont.Env) *kont.Env

type config struct {
	logger     *log.Logger
	envPatches []envPatch
}

// WithLogger attaches a charmbracelet/log Logger the driver reports
// step-loop milestones to. When unset, the driver runs silently — the
// core itself never logs (§11), and a driver with no logger configured
// inherits that silence rather than defaulting one in.
func WithLogger(logger *log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithEnvBinding extends the run's initial environment with name bound
// to value via [kont.Env.Extend], before the first step. Handlers such
// as [handlers.Reader] read it back out with [kont.EnvLookup].
func WithEnvBinding(name string, value kont.Value) Option {
	return func(c *config) {
		c.envPatches = append(c.envPatches, func(e *kont.Env) *kont.Env {
			return e.Extend(name, value)
		})
	}
}

// WithEnvBindings extends the run's initial environment with every
// name/value pair in bindings via [kont.Env.ExtendAll].
func WithEnvBindings(bindings map[string]kont.Value) Option {
	return func(c *config) {
		names := make([]string, 0, len(bindings))
		values := make([]kont.Value, 0, len(bindings))
		for name, value := range bindings {
			names = append(names, name)
			values = append(values, value)
		}
		c.envPatches = append(c.envPatches, func(e *kont.Env) *kont.Env {
			return e.ExtendAll(names, values)
		})
	}
}

func (c *config) applyEnv(e *kont.Env) *kont.Env {
	for _, patch := range c.envPatches {
		e = patch(e)
	}
	return e
}

func newConfig(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *config) log(msg string, kvs ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Info(msg, kvs...)
}

// wrapHandlers installs handlerSet around program, outermost first:
// handlerSet[0] ends up furthest from any effect a dispatch starts at,
// handlerSet[len-1] nearest.
func wrapHandlers(program kont.Program, handlerSet []kont.Handler) kont.Program {
	wrapped := program
	for i := len(handlerSet) - 1; i >= 0; i-- {
		wrapped = kont.WithHandler(handlerSet[i], wrapped)
	}
	return wrapped
}

// Run drives program to completion synchronously. It returns
// [kont.MachineError] with Kind [kont.AsyncEscapeInSyncDriver] if the
// machine ever produces an async escape — this loop has no runtime to
// fulfill one.
func Run(ctx context.Context, program kont.Program, handlerSet []kont.Handler, initialEnv *kont.Env, initialStore *kont.Store, opts ...Option) (kont.Value, error) {
	cfg := newConfig(opts)
	env := cfg.applyEnv(initialEnv)
	state := kont.State{
		C: kont.ProgramControl(wrapHandlers(program, handlerSet)),
		E: env,
		S: initialStore,
	}
	cfg.log("run starting", "handlers", len(handlerSet), "bindings", env.Len())

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result := kont.Step(state)
		switch result.Outcome {
		case kont.StepContinue:
			state = result.State
		case kont.StepDone:
			cfg.log("run done", "value", result.Value)
			return result.Value, nil
		case kont.StepFailed:
			cfg.log("run failed", "err", result.Err)
			return nil, result.Err
		case kont.StepAsyncEscape:
			err := &kont.MachineError{
				Kind:    kont.AsyncEscapeInSyncDriver,
				Message: "program performed an async-aware effect under the synchronous driver",
			}
			cfg.log("run failed", "err", err)
			return nil, err
		}
	}
}

// RunAsync drives program to completion, awaiting any async escape on
// its own goroutine (joined with an [errgroup.Group] so the first
// failure cancels ctx for everything else in flight) and resuming
// stepping with the state it produces.
func RunAsync(ctx context.Context, program kont.Program, handlerSet []kont.Handler, initialEnv *kont.Env, initialStore *kont.Store, opts ...Option) (kont.Value, error) {
	cfg := newConfig(opts)
	env := cfg.applyEnv(initialEnv)
	state := kont.State{
		C: kont.ProgramControl(wrapHandlers(program, handlerSet)),
		E: env,
		S: initialStore,
	}
	cfg.log("async run starting", "handlers", len(handlerSet), "bindings", env.Len())

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result := kont.Step(state)
		switch result.Outcome {
		case kont.StepContinue:
			state = result.State
		case kont.StepDone:
			cfg.log("async run done", "value", result.Value)
			return result.Value, nil
		case kont.StepFailed:
			cfg.log("async run failed", "err", result.Err)
			return nil, result.Err
		case kont.StepAsyncEscape:
			next, err := awaitEscape(ctx, result.Action)
			if err != nil {
				cfg.log("async run failed", "err", err)
				return nil, err
			}
			cfg.log("async escape resolved")
			state = next
		}
	}
}

// awaitEscape runs action on its own goroutine via an errgroup so a
// context cancellation elsewhere propagates into it, and reports the
// resulting state back to the caller's stepping loop.
func awaitEscape(ctx context.Context, action kont.AsyncEscapeAction) (kont.State, error) {
	g, gctx := errgroup.WithContext(ctx)
	var next kont.State
	g.Go(func() error {
		s, err := action(gctx)
		if err != nil {
			return err
		}
		next = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return kont.State{}, err
	}
	return next, nil
}
