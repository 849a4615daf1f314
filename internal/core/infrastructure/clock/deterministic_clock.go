package clock

import (
	"sync"
	"time"

	infraClock "github.com/weisyn/advclock/pkg/interfaces/infrastructure/clock"
)

// DeterministicClock 基于固定基准时间和递增序列，提供确定性时间源
//
// 每次读取前进一个固定步长，第 n 次 Now 返回 base + n*step。
type DeterministicClock struct {
	mu       sync.Mutex
	baseTime time.Time
	step     time.Duration
	sequence int64
}

// NewDeterministicClock 创建确定性时钟；step <= 0 时使用 1ms
func NewDeterministicClock(base time.Time, step time.Duration) *DeterministicClock {
	if step <= 0 {
		step = time.Millisecond
	}
	return &DeterministicClock{baseTime: base, step: step}
}

func (c *DeterministicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sequence++
	return c.baseTime.Add(time.Duration(c.sequence) * c.step)
}

func (c *DeterministicClock) Since(t time.Time) time.Duration { return c.Now().Sub(t) }
func (c *DeterministicClock) Unix() int64                     { return c.Now().Unix() }
func (c *DeterministicClock) UnixNano() int64                 { return c.Now().UnixNano() }

// Sequence 返回已读取次数
func (c *DeterministicClock) Sequence() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sequence
}

var _ infraClock.Clock = (*DeterministicClock)(nil)
