package app

import (
	"github.com/prometheus/client_golang/prometheus"

	clockconfig "github.com/weisyn/advclock/internal/config/clock"
	logconfig "github.com/weisyn/advclock/internal/config/log"
	"github.com/weisyn/advclock/pkg/interfaces/config"
	"github.com/weisyn/advclock/pkg/types"
)

// Option 应用程序选项函数类型
type Option func(*options)

// options 应用程序选项
// 实现config.AppOptions接口
type options struct {
	// 嵌入的 JSON 配置内容，先于 WithClock/WithLog 应用
	embeddedConfig []byte

	// 用户配置
	appConfig *types.AppConfig

	// 指标注册表，未设置时每个应用独立创建
	registerer prometheus.Registerer
}

// 编译时校验options是否实现了config.AppOptions接口
var _ config.AppOptions = (*options)(nil)

// WithEmbeddedConfig 设置 JSON 配置内容
func WithEmbeddedConfig(configBytes []byte) Option {
	return func(o *options) {
		o.embeddedConfig = configBytes
	}
}

// WithClock 设置时钟配置，覆盖嵌入配置中的 clock 段
func WithClock(clockOptions *clockconfig.ClockOptions) Option {
	return func(o *options) {
		o.appConfig.Clock = clockOptions
	}
}

// WithLog 设置日志配置，覆盖嵌入配置中的 log 段
func WithLog(logOptions *logconfig.LogOptions) Option {
	return func(o *options) {
		o.appConfig.Log = logOptions
	}
}

// WithRegisterer 设置计时指标的注册表，例如 prometheus.DefaultRegisterer
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// newOptions 创建选项
func newOptions(opts ...Option) *options {
	options := &options{
		appConfig: &types.AppConfig{},
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.registerer == nil {
		options.registerer = prometheus.NewRegistry()
	}
	return options
}

// GetAppConfig 返回应用程序配置
func (o *options) GetAppConfig() *types.AppConfig {
	return o.appConfig
}
