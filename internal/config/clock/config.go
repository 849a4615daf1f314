package clock

import (
	"errors"
	"fmt"
	"time"

	"github.com/weisyn/advclock/pkg/utils/timeutil"
)

// ErrUnknownClockType 未知的时钟类型
var ErrUnknownClockType = errors.New("unknown clock type")

// ClockOptions 时钟配置
type ClockOptions struct {
	Type             string `json:"type"`        // system | ntp | deterministic | mock
	ReportUnit       string `json:"report_unit"` // 日志上报的换算单位，如 ms、seconds
	MetricsNamespace string `json:"metrics_namespace"`

	NTPServer       string        `json:"ntp_server"`
	SyncInterval    time.Duration `json:"sync_interval"`
	OffsetThreshold time.Duration `json:"offset_threshold"` // 判定不健康的偏移阈值

	// 回退与重试
	BackoffInitial time.Duration `json:"backoff_initial"`
	BackoffMax     time.Duration `json:"backoff_max"`

	// Deterministic / Mock 配置
	DeterministicBaseUnix int64         `json:"deterministic_base_unix"`
	DeterministicStep     time.Duration `json:"deterministic_step"`
}

// Config 提供访问选项
type Config struct {
	options *ClockOptions
}

// New 创建配置：先填充默认值，再用 user 中的非零字段覆盖
func New(user *ClockOptions) *Config {
	opts := createDefaultClockOptions()
	if user != nil {
		applyUserClockOptions(opts, user)
	}
	return &Config{options: opts}
}

func createDefaultClockOptions() *ClockOptions {
	return &ClockOptions{
		Type:              defaultType,
		ReportUnit:        defaultReportUnitName,
		MetricsNamespace:  defaultMetricsNamespace,
		NTPServer:         defaultNTPServer,
		SyncInterval:      defaultSyncInterval,
		OffsetThreshold:   defaultOffsetThreshold,
		BackoffInitial:    defaultBackoffInitial,
		BackoffMax:        defaultBackoffMax,
		DeterministicStep: defaultDeterministicStep,
	}
}

func applyUserClockOptions(opts, user *ClockOptions) {
	if user.Type != "" {
		opts.Type = user.Type
	}
	if user.ReportUnit != "" {
		opts.ReportUnit = user.ReportUnit
	}
	if user.MetricsNamespace != "" {
		opts.MetricsNamespace = user.MetricsNamespace
	}
	if user.NTPServer != "" {
		opts.NTPServer = user.NTPServer
	}
	if user.SyncInterval > 0 {
		opts.SyncInterval = user.SyncInterval
	}
	if user.OffsetThreshold > 0 {
		opts.OffsetThreshold = user.OffsetThreshold
	}
	if user.BackoffInitial > 0 {
		opts.BackoffInitial = user.BackoffInitial
	}
	if user.BackoffMax > 0 {
		opts.BackoffMax = user.BackoffMax
	}
	if user.DeterministicBaseUnix != 0 {
		opts.DeterministicBaseUnix = user.DeterministicBaseUnix
	}
	if user.DeterministicStep > 0 {
		opts.DeterministicStep = user.DeterministicStep
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	o := c.options
	switch o.Type {
	case TypeSystem, TypeNTP, TypeDeterministic, TypeMock:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownClockType, o.Type)
	}
	if _, err := timeutil.ParseTimeUnit(o.ReportUnit); err != nil {
		return fmt.Errorf("report_unit: %w", err)
	}
	if o.Type == TypeNTP && o.NTPServer == "" {
		return errors.New("ntp_server 不能为空")
	}
	if o.BackoffInitial > o.BackoffMax {
		return fmt.Errorf("backoff_initial (%s) 大于 backoff_max (%s)", o.BackoffInitial, o.BackoffMax)
	}
	return nil
}

func (c *Config) GetOptions() *ClockOptions { return c.options }

// ReportUnit 解析后的上报单位；无法解析时回退默认单位
func (c *Config) ReportUnit() timeutil.TimeUnit {
	u, err := timeutil.ParseTimeUnit(c.options.ReportUnit)
	if err != nil {
		return defaultReportUnit
	}
	return u
}

// DeterministicBase 确定性/Mock 时钟的基准时间
func (c *Config) DeterministicBase() time.Time {
	return time.Unix(c.options.DeterministicBaseUnix, 0)
}
