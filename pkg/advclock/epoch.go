package advclock

import (
	"sync"
	"time"

	infraClock "github.com/weisyn/advclock/pkg/interfaces/infrastructure/clock"
)

// Epoch 不可变的参考零点，所有“运行时长”查询都相对于它计算
//
// 创建后只读，多个 goroutine 并发读取无需加锁。
type Epoch[T infraClock.TimePoint[T]] struct {
	at T
}

// NewEpoch 以时钟源当前时间作为零点
func NewEpoch[T infraClock.TimePoint[T]](src infraClock.Source[T]) *Epoch[T] {
	return &Epoch[T]{at: src.Now()}
}

// EpochAt 以指定时间点作为零点（测试注入）
func EpochAt[T infraClock.TimePoint[T]](at T) *Epoch[T] {
	return &Epoch[T]{at: at}
}

// At 返回零点时间
func (e *Epoch[T]) At() T { return e.at }

// Uptime 返回 src 当前时间距零点的时长
func (e *Epoch[T]) Uptime(src infraClock.Source[T]) time.Duration {
	return src.Now().Sub(e.at)
}

// processEpoch 进程级零点，首次使用时采样且仅采样一次
var processEpoch = sync.OnceValue(func() *Epoch[time.Time] {
	return NewEpoch[time.Time](SystemClock{})
})

// ProcessEpoch 返回进程级零点（近似为程序启动时刻）
func ProcessEpoch() *Epoch[time.Time] { return processEpoch() }

// ProcessUptime 返回当前距进程零点的时长
func ProcessUptime() time.Duration {
	return ProcessEpoch().Uptime(SystemClock{})
}
