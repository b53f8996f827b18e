// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package driver_test

import (
	"context"
	"errors"
	"testing"

	"code.hybscloud.com/algeff"
	"code.hybscloud.com/algeff/driver"
	"code.hybscloud.com/algeff/env"
	"github.com/stretchr/testify/require"
)

type probeEffect struct{}

func (probeEffect) EffectTag() string { return "probe" }

func TestRunWrapsHandlersOutermostFirst(t *testing.T) {
	var called []string
	mark := func(name string) kont.Handler {
		return func(kont.Effect) kont.Program {
			called = append(called, name)
			return kont.Resume(nil)
		}
	}

	program := kont.ProgThen(kont.Perform(probeEffect{}), kont.ProgReturn(kont.Unit{}))
	_, err := driver.Run(context.Background(), program, []kont.Handler{mark("outer"), mark("inner")}, env.New(), kont.NewStore())
	require.NoError(t, err)
	require.Equal(t, []string{"inner"}, called, "innermost installed handler must win the dispatch")
}

func TestRunRejectsAsyncEscape(t *testing.T) {
	action := func(ctx context.Context) (kont.Value, error) { return nil, nil }
	program := kont.AsyncAwait(action)
	_, err := driver.Run(context.Background(), program, nil, env.New(), kont.NewStore())
	require.Error(t, err)
	var merr *kont.MachineError
	require.True(t, errors.As(err, &merr))
	require.Equal(t, kont.AsyncEscapeInSyncDriver, merr.Kind)
}

func TestRunAsyncAwaitsEscape(t *testing.T) {
	action := func(ctx context.Context) (kont.Value, error) { return 99, nil }
	program := kont.AsyncAwait(action)
	result, err := driver.RunAsync(context.Background(), program, nil, env.New(), kont.NewStore())
	require.NoError(t, err)
	require.Equal(t, 99, result)
}

func TestRunEnvBindings(t *testing.T) {
	program := kont.ProgBind(kont.EnvLookup("region"), func(v kont.Value) kont.Program {
		res := v.(kont.EnvLookupResult)
		require.True(t, res.Found)
		return kont.ProgBind(kont.EnvLookup("tier"), func(v kont.Value) kont.Program {
			res := v.(kont.EnvLookupResult)
			require.True(t, res.Found)
			return kont.ProgReturn([]kont.Value{res.Value})
		})
	})
	_, err := driver.Run(context.Background(), program, nil, env.New(), kont.NewStore(),
		driver.WithEnvBinding("region", "us-east"),
		driver.WithEnvBindings(map[string]kont.Value{"tier": "gold"}))
	require.NoError(t, err)
}
