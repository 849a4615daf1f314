// Package clock provides default configuration values for clock service.
package clock

import (
	"time"

	"github.com/weisyn/advclock/pkg/utils/timeutil"
)

// 时钟类型
const (
	TypeSystem        = "system"
	TypeNTP           = "ntp"
	TypeDeterministic = "deterministic"
	TypeMock          = "mock"
)

// 时钟服务配置默认值
const (
	// defaultType 默认时钟类型设为"system"
	// 原因：系统时钟携带单调读数，不受墙上时钟调整影响
	defaultType = TypeSystem

	// defaultNTPServer 默认NTP服务器设为"time.google.com"
	defaultNTPServer = "time.google.com"

	// defaultReportUnitName 上报日志时附带的换算单位
	defaultReportUnitName = "milliseconds"

	// defaultMetricsNamespace Prometheus 指标命名空间
	defaultMetricsNamespace = "advclock"
)

var (
	// defaultSyncInterval 默认同步间隔设为5分钟
	defaultSyncInterval = 5 * time.Minute

	// defaultOffsetThreshold 默认偏移阈值设为500毫秒
	defaultOffsetThreshold = 500 * time.Millisecond

	// defaultBackoffInitial 默认初始退避时间设为5秒
	defaultBackoffInitial = 5 * time.Second

	// defaultBackoffMax 默认最大退避时间设为5分钟
	defaultBackoffMax = 5 * time.Minute

	// defaultReportUnit 与 defaultReportUnitName 对应
	defaultReportUnit = timeutil.Milliseconds

	// defaultDeterministicStep 确定性时钟每次读取前进的步长
	defaultDeterministicStep = time.Millisecond
)
