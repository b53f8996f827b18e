// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package handlers_test

import (
	"testing"

	"code.hybscloud.com/algeff"
	"code.hybscloud.com/algeff/driver"
	"code.hybscloud.com/algeff/env"
	"code.hybscloud.com/algeff/handlers"
	"github.com/stretchr/testify/require"
)

type config struct {
	port int
}

func TestReaderAsk(t *testing.T) {
	program := kont.ProgMap(handlers.Ask(), func(v kont.Value) kont.Value {
		return v.(config).port
	})
	result, err := driver.Run(t.Context(), program, []kont.Handler{handlers.Reader()}, env.New(), kont.NewStore(),
		driver.WithEnvBinding(handlers.AskKey, config{port: 8080}))
	require.NoError(t, err)
	require.Equal(t, 8080, result)
}

func TestReaderAskUnbound(t *testing.T) {
	result, err := driver.Run(t.Context(), handlers.Ask(), []kont.Handler{handlers.Reader()}, env.New(), kont.NewStore())
	require.Nil(t, result)
	var merr *kont.MachineError
	require.ErrorAs(t, err, &merr)
	require.Equal(t, kont.HandlerUserError, merr.Kind)
}
