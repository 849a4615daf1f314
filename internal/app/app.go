// Package app 将配置、日志与时钟模块组装为可嵌入的计时服务
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/weisyn/advclock/internal/core/infrastructure/clock"
	"github.com/weisyn/advclock/pkg/advclock"
	infraClock "github.com/weisyn/advclock/pkg/interfaces/infrastructure/clock"
	logInterface "github.com/weisyn/advclock/pkg/interfaces/infrastructure/log"
)

const startTimeout = 30 * time.Second

// App 已启动的计时服务
type App struct {
	bootstrap *Bootstrap

	Clock   infraClock.Clock
	Factory *clock.Factory
	Logger  logInterface.Logger

	// Gatherer 计时指标的读取端；自定义注册表不可读取时为 nil
	Gatherer prometheus.Gatherer
}

// Start 组装并启动应用
func Start(appOptions ...Option) (*App, error) {
	b := NewBootstrap(newOptions(appOptions...))

	a := &App{bootstrap: b}
	if g, ok := b.opts.registerer.(prometheus.Gatherer); ok {
		a.Gatherer = g
	}
	if err := b.CreateFxApp(&a.Clock, &a.Factory, &a.Logger); err != nil {
		return nil, fmt.Errorf("创建应用失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()
	if err := b.StartApp(ctx); err != nil {
		return nil, err
	}

	a.Logger.With("process_uptime", advclock.ProcessUptime()).Info("计时服务已启动")
	return a, nil
}

// Stopwatch 从共享零点创建新秒表
func (a *App) Stopwatch() *advclock.Stopwatch[time.Time] {
	return a.Factory.New()
}

// Stop 停止应用并刷新日志
func (a *App) Stop(ctx context.Context) error {
	err := a.bootstrap.StopApp(ctx)
	_ = a.Logger.Sync()
	return err
}
