package log

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	logconfig "github.com/weisyn/advclock/internal/config/log"
	logInterface "github.com/weisyn/advclock/pkg/interfaces/infrastructure/log"
)

// ModuleParams 定义日志模块的依赖参数
type ModuleParams struct {
	fx.In

	Options *logconfig.LogOptions `optional:"true"` // 未提供时使用默认配置
}

// ModuleOutput 定义日志模块的输出结构
type ModuleOutput struct {
	fx.Out

	Logger    logInterface.Logger // 日志记录器接口
	ZapLogger *zap.Logger         // zap.Logger 具体类型（供需要 zap 特性的模块使用）
}

// Module 返回日志模块
func Module() fx.Option {
	return fx.Module("log",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 根据配置初始化日志记录器，并替换全局记录器
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	logger, err := New(logconfig.New(params.Options))
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("根据用户配置创建日志记录器失败: %w", err)
	}

	SetLogger(logger)

	return ModuleOutput{
		Logger:    logger,
		ZapLogger: logger.zapLogger,
	}, nil
}

// NewModuleZapLogger 创建带 module 字段的 zap logger
func NewModuleZapLogger(baseLogger *zap.Logger, module string) *zap.Logger {
	if baseLogger == nil {
		return nil
	}
	return baseLogger.With(zap.String("module", module))
}
