package advclock

import (
	"sync"
	"time"

	infraClock "github.com/weisyn/advclock/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/advclock/pkg/utils/timeutil"
)

// Locked 并发安全的秒表，读与归零互斥
type Locked[T infraClock.TimePoint[T]] struct {
	mu sync.RWMutex
	sw *Stopwatch[T]
}

// NewLocked 包装一个秒表；包装后不应再直接使用 sw
func NewLocked[T infraClock.TimePoint[T]](sw *Stopwatch[T]) *Locked[T] {
	return &Locked[T]{sw: sw}
}

func (l *Locked[T]) SinceEpoch() time.Duration {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sw.SinceEpoch()
}

func (l *Locked[T]) Uptime() time.Duration {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sw.Uptime()
}

func (l *Locked[T]) Elapsed() time.Duration {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sw.Elapsed()
}

// ElapsedTare 读取与归零在同一把锁内完成，其他调用方看不到中间状态
func (l *Locked[T]) ElapsedTare(tare bool) time.Duration {
	if !tare {
		return l.Elapsed()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sw.ElapsedTare(true)
}

func (l *Locked[T]) Lap() time.Duration { return l.ElapsedTare(true) }

func (l *Locked[T]) Reset() {
	l.mu.Lock()
	l.sw.Reset()
	l.mu.Unlock()
}

func (l *Locked[T]) ElapsedIn(unit timeutil.TimeUnit) float64 {
	return timeutil.Convert(l.Elapsed(), unit)
}

func (l *Locked[T]) SinceEpochIn(unit timeutil.TimeUnit) float64 {
	return timeutil.Convert(l.SinceEpoch(), unit)
}

func (l *Locked[T]) UptimeIn(unit timeutil.TimeUnit) float64 {
	return timeutil.Convert(l.Uptime(), unit)
}
