// Package clock provides clock source interfaces.
package clock

import "time"

// TimePoint 时钟源产生的不透明时间点
//
// 两个时间点相减得到纳秒精度的有符号时长。time.Time 天然满足该约束
// （其内部携带单调时钟读数，Sub 时优先使用单调读数）。
type TimePoint[T any] interface {
	Sub(T) time.Duration
}

// Source 单调时钟源能力接口
//
// 约定：同一进程内 Now 返回值单调不减。可能回拨的墙上时钟不得作为默认绑定。
type Source[T TimePoint[T]] interface {
	Now() T
}

// Clock 提供统一的时间源接口（基础设施层接口）
//
// 设计目标：
// - 可测试：支持可替换与Mock实现
// - 可扩展：可切换为NTP等时间源
//
// Clock 同时满足 Source[time.Time]，可直接绑定到秒表。
type Clock interface {
	// Now 获取当前时间
	Now() time.Time

	// Since 计算从指定时间到现在的持续时间
	Since(t time.Time) time.Duration

	// Unix 获取当前Unix时间戳（秒）
	Unix() int64

	// UnixNano 获取当前Unix时间戳（纳秒）
	UnixNano() int64
}

// Reporter 计时结果的上报目标（日志、指标等）
type Reporter interface {
	// Observe 记录一次名为 name 的测量结果
	Observe(name string, d time.Duration)
}
