// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package handlers_test

import (
	"context"
	"testing"

	"code.hybscloud.com/algeff"
	"code.hybscloud.com/algeff/driver"
	"code.hybscloud.com/algeff/env"
	"code.hybscloud.com/algeff/handlers"
	"github.com/stretchr/testify/require"
)

func TestAsyncBridgeCall(t *testing.T) {
	action := func(ctx context.Context) (kont.Value, error) { return "answer", nil }
	program := handlers.Call(action)
	result, err := driver.RunAsync(t.Context(), program, []kont.Handler{handlers.AsyncBridge()}, env.New(), kont.NewStore())
	require.NoError(t, err)
	require.Equal(t, "answer", result)
}
