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

func TestWriterTell(t *testing.T) {
	writer, output := handlers.Writer()
	program := kont.ProgThen(handlers.Tell("a"), kont.ProgThen(handlers.Tell("b"), kont.ProgReturn(kont.Unit{})))
	_, err := driver.Run(t.Context(), program, []kont.Handler{writer}, env.New(), kont.NewStore())
	require.NoError(t, err)
	require.Equal(t, []kont.Value{"a", "b"}, output())
}

func TestWriterListen(t *testing.T) {
	writer, output := handlers.Writer()
	body := kont.ProgThen(handlers.Tell("inner"), kont.ProgReturn(7))
	program := handlers.Listen(body)
	result, err := driver.Run(t.Context(), program, []kont.Handler{writer}, env.New(), kont.NewStore())
	require.NoError(t, err)
	pair := result.(handlers.Pair)
	require.Equal(t, 7, pair.Fst)
	require.Equal(t, []kont.Value{"inner"}, pair.Snd)
	require.Equal(t, []kont.Value{"inner"}, output())
}

func TestWriterCensor(t *testing.T) {
	writer, output := handlers.Writer()
	body := kont.ProgThen(handlers.Tell("secret"), kont.ProgReturn(kont.Unit{}))
	program := handlers.Censor(func(ws []kont.Value) []kont.Value {
		redacted := make([]kont.Value, len(ws))
		for i := range ws {
			redacted[i] = "***"
		}
		return redacted
	}, body)
	_, err := driver.Run(t.Context(), program, []kont.Handler{writer}, env.New(), kont.NewStore())
	require.NoError(t, err)
	require.Equal(t, []kont.Value{"***"}, output())
}
