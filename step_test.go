// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kont_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/algeff"
	"code.hybscloud.com/algeff/env"
	"github.com/stretchr/testify/require"
)

// e1Effect is the demo effect most of the concrete end-to-end scenarios
// perform.
type e1Effect struct{}

func (e1Effect) EffectTag() string { return "E1" }

type yieldEffect struct{}

func (yieldEffect) EffectTag() string { return "Yield" }

type e2Effect struct{}

func (e2Effect) EffectTag() string { return "E2" }

// runToEnd drives program (already wrapped in every handler it needs)
// to a terminal [kont.StepResult], failing the test if it never
// terminates within a generous step budget.
func runToEnd(t *testing.T, program kont.Program) kont.StepResult {
	t.Helper()
	state := kont.State{C: kont.ProgramControl(program), E: env.New(), S: kont.NewStore()}
	for i := 0; i < 10_000; i++ {
		result := kont.Step(state)
		if result.Outcome != kont.StepContinue {
			return result
		}
		state = result.State
	}
	t.Fatal("program did not terminate within the step budget")
	return kont.StepResult{}
}

func incrementAfter(effect kont.Effect) kont.Program {
	return kont.ProgBind(kont.Perform(effect), func(v kont.Value) kont.Program {
		return kont.ProgReturn(v.(int) + 1)
	})
}

// TestScenarioIdentityHandler is spec scenario 1.
func TestScenarioIdentityHandler(t *testing.T) {
	handler := kont.Handler(func(e kont.Effect) kont.Program {
		if _, ok := e.(e1Effect); ok {
			return kont.Resume(7)
		}
		return kont.Forward(e)
	})
	result := runToEnd(t, kont.WithHandler(handler, incrementAfter(e1Effect{})))
	require.Equal(t, kont.StepDone, result.Outcome)
	require.Equal(t, 8, result.Value)
}

// TestScenarioImplicitAbandonment is spec scenario 2.
func TestScenarioImplicitAbandonment(t *testing.T) {
	handler := kont.Handler(func(kont.Effect) kont.Program { return kont.ProgReturn(42) })
	program := kont.ProgBind(kont.Perform(e1Effect{}), func(kont.Value) kont.Program {
		return kont.ProgReturn(99)
	})
	result := runToEnd(t, kont.WithHandler(handler, program))
	require.Equal(t, kont.StepDone, result.Outcome)
	require.Equal(t, 42, result.Value)
}

// TestScenarioForwardTwoLevel is spec scenario 3.
func TestScenarioForwardTwoLevel(t *testing.T) {
	outer := kont.Handler(func(kont.Effect) kont.Program { return kont.Resume(42) })
	inner := kont.Handler(func(e kont.Effect) kont.Program {
		return kont.ProgBind(kont.Forward(e), func(v kont.Value) kont.Program {
			return kont.Resume(v)
		})
	})
	program := kont.WithHandler(outer, kont.WithHandler(inner, incrementAfter(e1Effect{})))
	result := runToEnd(t, program)
	require.Equal(t, kont.StepDone, result.Outcome)
	require.Equal(t, 43, result.Value)
}

// TestScenarioForwardViaReyield is spec scenario 4: identical result to
// scenario 3, reached by re-performing the effect instead of Forward.
func TestScenarioForwardViaReyield(t *testing.T) {
	outer := kont.Handler(func(kont.Effect) kont.Program { return kont.Resume(42) })
	inner := kont.Handler(func(e kont.Effect) kont.Program {
		return kont.ProgBind(kont.Perform(e), func(v kont.Value) kont.Program {
			return kont.Resume(v)
		})
	})
	program := kont.WithHandler(outer, kont.WithHandler(inner, incrementAfter(e1Effect{})))
	result := runToEnd(t, program)
	require.Equal(t, kont.StepDone, result.Outcome)
	require.Equal(t, 43, result.Value)
}

// TestScenarioCaptureAndResume is spec scenario 5.
func TestScenarioCaptureAndResume(t *testing.T) {
	handler := kont.Handler(func(kont.Effect) kont.Program {
		return kont.ProgBind(kont.GetContinuation(), func(kv kont.Value) kont.Program {
			k := kv.(*kont.Continuation)
			return kont.ResumeContinuation(k, 42)
		})
	})
	program := kont.WithHandler(handler, incrementAfter(yieldEffect{}))
	result := runToEnd(t, program)
	require.Equal(t, kont.StepDone, result.Outcome)
	require.Equal(t, 43, result.Value)
}

// TestScenarioOneShotViolation is spec scenario 6.
func TestScenarioOneShotViolation(t *testing.T) {
	handler := kont.Handler(func(kont.Effect) kont.Program {
		return kont.ProgBind(kont.GetContinuation(), func(kv kont.Value) kont.Program {
			k := kv.(*kont.Continuation)
			return kont.ProgBind(kont.ResumeContinuation(k, 42), func(kont.Value) kont.Program {
				return kont.ResumeContinuation(k, 42)
			})
		})
	})
	program := kont.WithHandler(handler, incrementAfter(yieldEffect{}))
	result := runToEnd(t, program)
	require.Equal(t, kont.StepFailed, result.Outcome)
	var merr *kont.MachineError
	require.True(t, errors.As(result.Err, &merr))
	require.Equal(t, kont.OneShotViolation, merr.Kind)
}

// TestScenarioUnhandledEffect is spec scenario 7.
func TestScenarioUnhandledEffect(t *testing.T) {
	result := runToEnd(t, kont.Perform(e2Effect{}))
	require.Equal(t, kont.StepFailed, result.Outcome)
	var merr *kont.MachineError
	require.True(t, errors.As(result.Err, &merr))
	require.Equal(t, kont.UnhandledEffect, merr.Kind)
}
