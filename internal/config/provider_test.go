package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	clockconfig "github.com/weisyn/advclock/internal/config/clock"
	logconfig "github.com/weisyn/advclock/internal/config/log"
	ifconfig "github.com/weisyn/advclock/pkg/interfaces/config"
	"github.com/weisyn/advclock/pkg/types"
)

func TestProvider_Defaults(t *testing.T) {
	p := NewProvider(nil)

	assert.Equal(t, clockconfig.TypeSystem, p.GetClock().Type)
	assert.Equal(t, "milliseconds", p.GetClock().ReportUnit)
	assert.Equal(t, "info", p.GetLog().Level)
}

func TestParseAppConfig(t *testing.T) {
	t.Run("空内容使用默认值", func(t *testing.T) {
		cfg, err := ParseAppConfig(nil)
		require.NoError(t, err)
		assert.Nil(t, cfg.Clock)
		assert.Nil(t, cfg.Log)
	})

	t.Run("覆盖时钟与日志配置", func(t *testing.T) {
		cfg, err := ParseAppConfig([]byte(`{
			"clock": {"type": "deterministic", "report_unit": "us", "deterministic_step": 2000000},
			"log": {"level": "debug", "to_console": false}
		}`))
		require.NoError(t, err)

		p := NewProvider(cfg)
		clk := p.GetClock()
		assert.Equal(t, clockconfig.TypeDeterministic, clk.Type)
		assert.Equal(t, "us", clk.ReportUnit)
		assert.Equal(t, 2*time.Millisecond, clk.DeterministicStep)
		assert.Equal(t, "advclock", clk.MetricsNamespace)

		lg := p.GetLog()
		assert.Equal(t, "debug", lg.Level)
		require.NotNil(t, lg.ToConsole)
		assert.False(t, *lg.ToConsole)
	})

	t.Run("非法 JSON", func(t *testing.T) {
		_, err := ParseAppConfig([]byte(`{"clock":`))
		assert.Error(t, err)
	})
}

type staticOptions struct{ cfg *types.AppConfig }

func (s staticOptions) GetAppConfig() *types.AppConfig { return s.cfg }

func TestModule_ProvidesOptions(t *testing.T) {
	var (
		clk *clockconfig.ClockOptions
		lg  *logconfig.LogOptions
	)
	app := fxtest.New(t,
		fx.Provide(func() ifconfig.AppOptions {
			return staticOptions{cfg: &types.AppConfig{Clock: &clockconfig.ClockOptions{Type: clockconfig.TypeMock}}}
		}),
		Module(),
		fx.Populate(&clk, &lg),
	)
	app.RequireStart().RequireStop()

	assert.Equal(t, clockconfig.TypeMock, clk.Type)
	assert.Equal(t, "info", lg.Level)
}
