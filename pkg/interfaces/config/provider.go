// Package config provides configuration provider interfaces.
package config

import (
	clockconfig "github.com/weisyn/advclock/internal/config/clock"
	logconfig "github.com/weisyn/advclock/internal/config/log"
)

// Provider 配置提供者接口
//
// 返回的选项已合并默认值。
type Provider interface {
	// GetClock 获取时钟配置
	GetClock() *clockconfig.ClockOptions

	// GetLog 获取日志配置
	GetLog() *logconfig.LogOptions
}
