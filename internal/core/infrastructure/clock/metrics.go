package clock

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// healthFn 返回 (ok, offset, lastSync, lastError)
type healthFn func() (bool, time.Duration, time.Time, error)

type clockCollector struct {
	uptime func() time.Duration
	health healthFn // 非 NTP 时钟为 nil

	uptimeSeconds   *prometheus.Desc
	offsetSeconds   *prometheus.Desc
	lastSyncSeconds *prometheus.Desc
	healthy         *prometheus.Desc
}

func newClockCollector(namespace string, uptime func() time.Duration, health healthFn) *clockCollector {
	return &clockCollector{
		uptime: uptime,
		health: health,
		uptimeSeconds: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "process", "uptime_seconds"),
			"Monotonic time since the process epoch was captured",
			nil, nil,
		),
		offsetSeconds: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "clock", "offset_seconds"),
			"Positive means local time is behind NTP time",
			nil, nil,
		),
		lastSyncSeconds: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "clock", "last_sync_unix"),
			"Last successful sync Unix timestamp",
			nil, nil,
		),
		healthy: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "clock", "healthy"),
			"1 if clock is healthy, otherwise 0",
			nil, nil,
		),
	}
}

func (c *clockCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.uptimeSeconds
	if c.health != nil {
		ch <- c.offsetSeconds
		ch <- c.lastSyncSeconds
		ch <- c.healthy
	}
}

func (c *clockCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.uptimeSeconds, prometheus.GaugeValue, c.uptime().Seconds())
	if c.health == nil {
		return
	}
	ok, offset, lastSync, _ := c.health()
	ch <- prometheus.MustNewConstMetric(c.offsetSeconds, prometheus.GaugeValue, offset.Seconds())
	ch <- prometheus.MustNewConstMetric(c.lastSyncSeconds, prometheus.GaugeValue, float64(lastSync.Unix()))
	var healthy float64
	if ok {
		healthy = 1
	}
	ch <- prometheus.MustNewConstMetric(c.healthy, prometheus.GaugeValue, healthy)
}

// RegisterClockMetrics 在 reg 中注册时钟指标采集器；health 为 nil 时只导出进程运行时长
//
// 返回的采集器用于之后的 reg.Unregister。
func RegisterClockMetrics(reg prometheus.Registerer, namespace string, uptime func() time.Duration, health healthFn) (prometheus.Collector, error) {
	c := newClockCollector(namespace, uptime, health)
	if err := reg.Register(c); err != nil {
		return nil, err
	}
	return c, nil
}
