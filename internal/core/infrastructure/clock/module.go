// Package clock 提供时钟源选择、秒表工厂与计时上报的基础设施模块
package clock

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"

	clockconfig "github.com/weisyn/advclock/internal/config/clock"
	logimpl "github.com/weisyn/advclock/internal/core/infrastructure/log"
	"github.com/weisyn/advclock/pkg/advclock"
	infraClock "github.com/weisyn/advclock/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/advclock/pkg/utils/timeutil"
)

// ModuleParams 定义时钟模块的依赖参数
type ModuleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Options    *clockconfig.ClockOptions `optional:"true"`
	Logger     *zap.Logger               `optional:"true"`
	Registerer prometheus.Registerer     `optional:"true"` // 未提供时使用默认注册表
}

// ModuleOutput 定义时钟模块的输出结构
type ModuleOutput struct {
	fx.Out

	Clock    infraClock.Clock
	Source   infraClock.Source[time.Time]
	Epoch    *advclock.Epoch[time.Time]
	Factory  *Factory
	Reporter infraClock.Reporter
}

// Module 返回时钟模块
//
// 提供：Clock/Source（按配置选择）、共享零点、秒表工厂、上报器
// 依赖：*zap.Logger（可选）、prometheus.Registerer（可选）、*ClockOptions（可选）
func Module() fx.Option {
	return fx.Module("clock",
		fx.Provide(ProvideServices),
		fx.Invoke(RegisterMetrics),
		fx.Invoke(func(c infraClock.Clock) { timeutil.SetClock(c) }),
	)
}

func registererOrDefault(reg prometheus.Registerer) prometheus.Registerer {
	if reg == nil {
		return prometheus.DefaultRegisterer
	}
	return reg
}

// ProvideServices 根据配置创建时钟源、零点与秒表工厂
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	cfg := clockconfig.New(params.Options)
	if err := cfg.Validate(); err != nil {
		return ModuleOutput{}, fmt.Errorf("时钟配置无效: %w", err)
	}
	opts := cfg.GetOptions()

	logger := logimpl.NewModuleZapLogger(params.Logger, "clock")
	if logger == nil {
		logger = zap.NewNop()
	}

	clk, err := newSource(cfg, logger)
	if err != nil {
		return ModuleOutput{}, err
	}
	if ntpClock, ok := clk.(*NTPClock); ok {
		params.Lifecycle.Append(fx.Hook{
			OnStop: func(context.Context) error { return ntpClock.Close() },
		})
	}

	// 系统时钟共享进程零点；其他时钟的时间点与系统时钟不可比，各自建立零点
	var epoch *advclock.Epoch[time.Time]
	if _, ok := clk.(advclock.SystemClock); ok {
		epoch = advclock.ProcessEpoch()
	} else {
		epoch = advclock.NewEpoch[time.Time](clk)
	}

	promReporter, err := NewPrometheusReporter(registererOrDefault(params.Registerer), opts.MetricsNamespace)
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("注册计时指标失败: %w", err)
	}
	// 停止时注销，同一注册表可被下一次启动复用
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			promReporter.Unregister()
			return nil
		},
	})
	reporter := MultiReporter{NewZapReporter(logger, cfg.ReportUnit()), promReporter}

	logger.Info("时钟源已就绪",
		zap.String("type", opts.Type),
		zap.Stringer("report_unit", cfg.ReportUnit()),
		zap.Duration("process_uptime", advclock.ProcessUptime()),
	)

	return ModuleOutput{
		Clock:    clk,
		Source:   clk,
		Epoch:    epoch,
		Factory:  NewFactory(clk, epoch, reporter),
		Reporter: reporter,
	}, nil
}

// newSource 按配置类型创建时钟源
func newSource(cfg *clockconfig.Config, logger *zap.Logger) (infraClock.Clock, error) {
	opts := cfg.GetOptions()
	switch opts.Type {
	case clockconfig.TypeSystem:
		return advclock.SystemClock{}, nil
	case clockconfig.TypeNTP:
		c, err := NewNTPClock(opts, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	case clockconfig.TypeDeterministic:
		return NewDeterministicClock(cfg.DeterministicBase(), opts.DeterministicStep), nil
	case clockconfig.TypeMock:
		return NewMockClock(cfg.DeterministicBase()), nil
	default:
		return nil, fmt.Errorf("%w: %q", clockconfig.ErrUnknownClockType, opts.Type)
	}
}

// MetricsParams RegisterMetrics 的依赖
type MetricsParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Options    *clockconfig.ClockOptions `optional:"true"`
	Registerer prometheus.Registerer     `optional:"true"`
	Clock      infraClock.Clock
	Factory    *Factory
}

// RegisterMetrics 注册进程运行时长与（NTP 时钟的）同步健康指标
func RegisterMetrics(params MetricsParams) error {
	cfg := clockconfig.New(params.Options)

	var health healthFn
	if ntpClock, ok := params.Clock.(*NTPClock); ok {
		health = ntpClock.Health
	}
	reg := registererOrDefault(params.Registerer)
	collector, err := RegisterClockMetrics(reg, cfg.GetOptions().MetricsNamespace, params.Factory.Uptime, health)
	if err != nil {
		return fmt.Errorf("注册时钟指标失败: %w", err)
	}
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			reg.Unregister(collector)
			return nil
		},
	})
	return nil
}
