package clock

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	clockconfig "github.com/weisyn/advclock/internal/config/clock"
	logimpl "github.com/weisyn/advclock/internal/core/infrastructure/log"
	"github.com/weisyn/advclock/pkg/advclock"
	infraClock "github.com/weisyn/advclock/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/advclock/pkg/utils/timeutil"
)

func TestModule_Deterministic(t *testing.T) {
	defer timeutil.ResetClock()

	reg := prometheus.NewPedanticRegistry()
	var (
		factory *Factory
		clk     infraClock.Clock
		epoch   *advclock.Epoch[time.Time]
	)
	app := fxtest.New(t,
		fx.NopLogger,
		fx.Supply(zap.NewNop()),
		fx.Supply(&clockconfig.ClockOptions{
			Type:                  clockconfig.TypeDeterministic,
			DeterministicBaseUnix: 1_700_000_000,
			DeterministicStep:     time.Second,
		}),
		fx.Provide(func() prometheus.Registerer { return reg }),
		Module(),
		fx.Populate(&factory, &clk, &epoch),
	)
	app.RequireStart()
	defer app.RequireStop()

	require.IsType(t, &DeterministicClock{}, clk)

	// 零点占用第 1 次读数
	assert.Equal(t, time.Unix(1_700_000_001, 0), epoch.At())

	// 秒表创建读第 2 次，Elapsed 读第 3 次
	sw := factory.New()
	assert.Equal(t, time.Second, sw.Elapsed())

	// 注入的时钟同时作为 timeutil 的时间来源（第 4 次读数）
	assert.Equal(t, time.Unix(1_700_000_004, 0), timeutil.Now())

	n, err := testutil.GatherAndCount(reg, "advclock_process_uptime_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	factory.Measure("noop", func() {})
	n, err = testutil.GatherAndCount(reg, "advclock_stopwatch_elapsed_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestModule_SystemUsesProcessEpoch(t *testing.T) {
	defer timeutil.ResetClock()

	var (
		epoch *advclock.Epoch[time.Time]
		src   infraClock.Source[time.Time]
	)
	app := fxtest.New(t,
		fx.NopLogger,
		logimpl.Module(),
		fx.Provide(func() prometheus.Registerer { return prometheus.NewRegistry() }),
		Module(),
		fx.Populate(&epoch, &src),
	)
	app.RequireStart()
	defer app.RequireStop()

	assert.Same(t, advclock.ProcessEpoch(), epoch)
	assert.IsType(t, advclock.SystemClock{}, src)
}

func TestModule_InvalidConfig(t *testing.T) {
	app := fx.New(
		fx.NopLogger,
		fx.Supply(&clockconfig.ClockOptions{Type: "sundial"}),
		fx.Provide(func() prometheus.Registerer { return prometheus.NewRegistry() }),
		Module(),
	)
	err := app.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown clock type")
}

func TestModule_RestartWithSameRegistry(t *testing.T) {
	defer timeutil.ResetClock()

	reg := prometheus.NewRegistry()
	newApp := func() *fxtest.App {
		return fxtest.New(t,
			fx.NopLogger,
			fx.Supply(&clockconfig.ClockOptions{Type: clockconfig.TypeMock}),
			fx.Provide(func() prometheus.Registerer { return reg }),
			Module(),
		)
	}

	// 停止时注销指标，第二次启动不会因重复注册失败
	newApp().RequireStart().RequireStop()
	newApp().RequireStart().RequireStop()

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
