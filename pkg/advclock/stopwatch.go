// Package advclock 提供基于单调时钟的秒表
//
// 秒表记录一个参考时间点，相对于共享的进程零点（Epoch）计算经过时长，
// 并可将结果换算为纳秒到年的十种单位，用于代码段的基准测量与剖析。
//
// 并发约定：Stopwatch 不做同步，多个 goroutine 同时调用 Reset 与 Elapsed
// 属于数据竞争，需调用方自行加锁，或使用 Locked。
package advclock

import (
	"time"

	infraClock "github.com/weisyn/advclock/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/advclock/pkg/utils/timeutil"
)

// Stopwatch 秒表，绑定一个时钟源与一个零点
type Stopwatch[T infraClock.TimePoint[T]] struct {
	source infraClock.Source[T]
	epoch  *Epoch[T]
	ref    T
}

// New 创建绑定系统单调时钟与进程零点的秒表
func New() *Stopwatch[time.Time] {
	return NewWith[time.Time](SystemClock{}, ProcessEpoch())
}

// NewWith 创建绑定指定时钟源与零点的秒表
//
// epoch 为 nil 时以 src 的当前时间新建零点。
func NewWith[T infraClock.TimePoint[T]](src infraClock.Source[T], epoch *Epoch[T]) *Stopwatch[T] {
	if epoch == nil {
		epoch = NewEpoch(src)
	}
	return &Stopwatch[T]{
		source: src,
		epoch:  epoch,
		ref:    src.Now(),
	}
}

// Reference 返回当前参考时间点
func (s *Stopwatch[T]) Reference() T { return s.ref }

// Epoch 返回绑定的零点
func (s *Stopwatch[T]) Epoch() *Epoch[T] { return s.epoch }

// SinceEpoch 参考时间点距零点的时长，即秒表在进程启动后多久创建或最近一次归零
func (s *Stopwatch[T]) SinceEpoch() time.Duration {
	return s.ref.Sub(s.epoch.at)
}

// Uptime 当前时间距零点的时长
func (s *Stopwatch[T]) Uptime() time.Duration {
	return s.epoch.Uptime(s.source)
}

// Elapsed 自参考时间点以来经过的时长
func (s *Stopwatch[T]) Elapsed() time.Duration {
	return s.Uptime() - s.SinceEpoch()
}

// ElapsedTare 返回经过时长；tare 为 true 时随后归零
//
// 返回值基于归零前的参考点。归零重新读取时钟而非复用测量时的读数，
// 两次读数之间的微小间隔不计入任何一次测量。
func (s *Stopwatch[T]) ElapsedTare(tare bool) time.Duration {
	d := s.Elapsed()
	if tare {
		s.Reset()
	}
	return d
}

// Lap 等价于 ElapsedTare(true)
func (s *Stopwatch[T]) Lap() time.Duration { return s.ElapsedTare(true) }

// ElapsedNanos 以 int64 纳秒返回经过时长
func (s *Stopwatch[T]) ElapsedNanos(tare bool) int64 {
	return s.ElapsedTare(tare).Nanoseconds()
}

// Reset 归零：参考时间点设为当前时间
func (s *Stopwatch[T]) Reset() { s.ref = s.source.Now() }

// ElapsedIn 以指定单位返回经过时长
func (s *Stopwatch[T]) ElapsedIn(unit timeutil.TimeUnit) float64 {
	return timeutil.Convert(s.Elapsed(), unit)
}

// SinceEpochIn 以指定单位返回参考时间点距零点的时长
func (s *Stopwatch[T]) SinceEpochIn(unit timeutil.TimeUnit) float64 {
	return timeutil.Convert(s.SinceEpoch(), unit)
}

// UptimeIn 以指定单位返回当前时间距零点的时长
func (s *Stopwatch[T]) UptimeIn(unit timeutil.TimeUnit) float64 {
	return timeutil.Convert(s.Uptime(), unit)
}

// ElapsedAs 以指定单位和数值类型返回经过时长，tare 为 true 时随后归零
//
// Go 方法不能带类型参数，故为包级函数。
func ElapsedAs[R timeutil.Number, T infraClock.TimePoint[T]](s *Stopwatch[T], unit timeutil.TimeUnit, tare bool) R {
	return timeutil.ConvertAs[R](s.ElapsedTare(tare), unit)
}

// Measure 执行 fn 并返回其耗时
func Measure(fn func()) time.Duration {
	sw := New()
	fn()
	return sw.Elapsed()
}

// MeasureTo 执行 fn，并将耗时以 name 上报给 r
func MeasureTo(r infraClock.Reporter, name string, fn func()) time.Duration {
	d := Measure(fn)
	if r != nil {
		r.Observe(name, d)
	}
	return d
}
