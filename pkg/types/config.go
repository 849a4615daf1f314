package types

import (
	clockconfig "github.com/weisyn/advclock/internal/config/clock"
	logconfig "github.com/weisyn/advclock/internal/config/log"
)

// AppConfig 用户配置（JSON 结构）
//
// 各字段为空时由对应配置包填充默认值。
type AppConfig struct {
	Clock *clockconfig.ClockOptions `json:"clock,omitempty"`
	Log   *logconfig.LogOptions     `json:"log,omitempty"`
}
