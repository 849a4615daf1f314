package config

import (
	"encoding/json"
	"fmt"

	clockconfig "github.com/weisyn/advclock/internal/config/clock"
	logconfig "github.com/weisyn/advclock/internal/config/log"
	"github.com/weisyn/advclock/pkg/interfaces/config"
	"github.com/weisyn/advclock/pkg/types"
)

// Provider 实现配置提供者接口
type Provider struct {
	appConfig *types.AppConfig
}

// NewProvider 创建配置提供者，appConfig 可以为 nil
func NewProvider(appConfig *types.AppConfig) config.Provider {
	return &Provider{
		appConfig: appConfig,
	}
}

// GetClock 获取时钟配置
func (p *Provider) GetClock() *clockconfig.ClockOptions {
	var user *clockconfig.ClockOptions
	if p.appConfig != nil {
		user = p.appConfig.Clock
	}
	return clockconfig.New(user).GetOptions()
}

// GetLog 获取日志配置
func (p *Provider) GetLog() *logconfig.LogOptions {
	var user *logconfig.LogOptions
	if p.appConfig != nil {
		user = p.appConfig.Log
	}
	return logconfig.New(user).GetOptions()
}

// ParseAppConfig 解析 JSON 配置内容
//
// 空内容返回空配置（全部使用默认值）。
func ParseAppConfig(data []byte) (*types.AppConfig, error) {
	cfg := &types.AppConfig{}
	if len(data) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	return cfg, nil
}
