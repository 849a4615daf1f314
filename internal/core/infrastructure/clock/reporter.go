package clock

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	infraClock "github.com/weisyn/advclock/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/advclock/pkg/utils/timeutil"
)

// ZapReporter 以 debug 级别记录每次测量
type ZapReporter struct {
	logger *zap.Logger
	unit   timeutil.TimeUnit
}

// NewZapReporter 创建日志上报器，unit 为日志中附带的换算单位
func NewZapReporter(logger *zap.Logger, unit timeutil.TimeUnit) *ZapReporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapReporter{logger: logger, unit: unit}
}

func (r *ZapReporter) Observe(name string, d time.Duration) {
	r.logger.Debug("计时完成",
		zap.String("name", name),
		zap.Duration("elapsed", d),
		zap.Stringer("unit", r.unit),
		zap.Float64("value", timeutil.Convert(d, r.unit)),
	)
}

// PrometheusReporter 将测量结果写入按名称区分的直方图（单位：秒）
type PrometheusReporter struct {
	reg  prometheus.Registerer
	hist *prometheus.HistogramVec
}

// NewPrometheusReporter 创建直方图并注册到 reg
func NewPrometheusReporter(reg prometheus.Registerer, namespace string) (*PrometheusReporter, error) {
	hist := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "stopwatch_elapsed_seconds",
		Help:      "Elapsed time measured by named stopwatches",
		Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 9), // 1µs .. 100s
	}, []string{"name"})
	if err := reg.Register(hist); err != nil {
		return nil, err
	}
	return &PrometheusReporter{reg: reg, hist: hist}, nil
}

// Unregister 从注册表移除直方图，返回是否确有移除
func (r *PrometheusReporter) Unregister() bool {
	return r.reg.Unregister(r.hist)
}

func (r *PrometheusReporter) Observe(name string, d time.Duration) {
	r.hist.WithLabelValues(name).Observe(timeutil.Convert(d, timeutil.Seconds))
}

// MultiReporter 依次转发给多个上报器
type MultiReporter []infraClock.Reporter

func (m MultiReporter) Observe(name string, d time.Duration) {
	for _, r := range m {
		if r != nil {
			r.Observe(name, d)
		}
	}
}

var (
	_ infraClock.Reporter = (*ZapReporter)(nil)
	_ infraClock.Reporter = (*PrometheusReporter)(nil)
	_ infraClock.Reporter = MultiReporter(nil)
)
