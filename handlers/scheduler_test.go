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

func TestSchedulerRoundRobin(t *testing.T) {
	tasks := []handlers.Task{
		func(context.Context) (kont.Value, error) { return 1, nil },
		func(context.Context) (kont.Value, error) { return 2, nil },
	}
	scheduler, wait := handlers.Scheduler(t.Context(), tasks)

	program := kont.ProgBind(handlers.Yield(), func(a kont.Value) kont.Program {
		return kont.ProgBind(handlers.Yield(), func(b kont.Value) kont.Program {
			return kont.ProgReturn(a.(int) + b.(int))
		})
	})

	result, err := driver.RunAsync(t.Context(), program, []kont.Handler{scheduler}, env.New(), kont.NewStore())
	require.NoError(t, err)
	require.Equal(t, 3, result)
	require.NoError(t, wait())
}
