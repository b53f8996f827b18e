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

func TestAtomicRunsBodyToCompletion(t *testing.T) {
	body := kont.ProgBind(handlers.Get(), func(v kont.Value) kont.Program {
		return handlers.Put(v.(int) + 1)
	})
	program := kont.ProgThen(handlers.Atomically(body), handlers.Get())
	result, err := driver.Run(t.Context(), program, []kont.Handler{handlers.State(0), handlers.Atomic()}, env.New(), kont.NewStore())
	require.NoError(t, err)
	require.Equal(t, 1, result)
}
