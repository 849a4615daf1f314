package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	appconfig "github.com/weisyn/advclock/internal/config"
	"github.com/weisyn/advclock/internal/core/infrastructure/clock"
	"github.com/weisyn/advclock/internal/core/infrastructure/log"
	"github.com/weisyn/advclock/pkg/interfaces/config"
)

// Bootstrap 负责组装并驱动 fx 应用
type Bootstrap struct {
	opts  *options
	fxApp *fx.App
}

// NewBootstrap 创建引导对象
func NewBootstrap(opts *options) *Bootstrap {
	return &Bootstrap{opts: opts}
}

// resolveConfig 合并嵌入配置与显式选项，显式选项优先
func (b *Bootstrap) resolveConfig() error {
	if len(b.opts.embeddedConfig) == 0 {
		return nil
	}
	parsed, err := appconfig.ParseAppConfig(b.opts.embeddedConfig)
	if err != nil {
		return err
	}
	if b.opts.appConfig.Clock == nil {
		b.opts.appConfig.Clock = parsed.Clock
	}
	if b.opts.appConfig.Log == nil {
		b.opts.appConfig.Log = parsed.Log
	}
	return nil
}

// SetupModules 按依赖顺序返回全部模块：配置 -> 日志 -> 时钟
func (b *Bootstrap) SetupModules() []fx.Option {
	return []fx.Option{
		fx.Provide(
			func() config.AppOptions { return b.opts },
			func() prometheus.Registerer { return b.opts.registerer },
		),
		appconfig.Module(),
		log.Module(),
		clock.Module(),
	}
}

// CreateFxApp 创建并配置fx应用，populate 用于取出容器中的对象
func (b *Bootstrap) CreateFxApp(populate ...interface{}) error {
	if err := b.resolveConfig(); err != nil {
		return err
	}

	appOptions := []fx.Option{
		fx.Options(b.SetupModules()...),
		// 禁用fx内部日志
		fx.NopLogger,
	}
	if len(populate) > 0 {
		appOptions = append(appOptions, fx.Populate(populate...))
	}

	b.fxApp = fx.New(appOptions...)
	return b.fxApp.Err()
}

// StartApp 启动应用程序
func (b *Bootstrap) StartApp(ctx context.Context) error {
	if err := b.fxApp.Start(ctx); err != nil {
		return fmt.Errorf("启动应用失败: %w", err)
	}
	return nil
}

// StopApp 停止应用程序
func (b *Bootstrap) StopApp(ctx context.Context) error {
	if err := b.fxApp.Stop(ctx); err != nil {
		return fmt.Errorf("停止应用失败: %w", err)
	}
	return nil
}
