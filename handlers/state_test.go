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

func TestStateGetPut(t *testing.T) {
	program := kont.ProgBind(handlers.Get(), func(v kont.Value) kont.Program {
		return kont.ProgBind(handlers.Put(v.(int)+1), func(kont.Value) kont.Program {
			return handlers.Get()
		})
	})
	result, err := driver.Run(t.Context(), program, []kont.Handler{handlers.State(10)}, env.New(), kont.NewStore())
	require.NoError(t, err)
	require.Equal(t, 11, result)
}

func TestStateModify(t *testing.T) {
	program := handlers.Modify(func(v kont.Value) kont.Value { return v.(int) * 2 })
	result, err := driver.Run(t.Context(), program, []kont.Handler{handlers.State(21)}, env.New(), kont.NewStore())
	require.NoError(t, err)
	require.Equal(t, 42, result)
}
