package clock

import (
	"sync"
	"time"

	infraClock "github.com/weisyn/advclock/pkg/interfaces/infrastructure/clock"
)

// MockClock 测试用时钟，时间只在 Advance/Set 时变化
type MockClock struct {
	mu          sync.Mutex
	currentTime time.Time
	reads       int
}

func NewMockClock(initial time.Time) *MockClock { return &MockClock{currentTime: initial} }

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reads++
	return c.currentTime
}

func (c *MockClock) Since(t time.Time) time.Duration { return c.Now().Sub(t) }
func (c *MockClock) Unix() int64                     { return c.Now().Unix() }
func (c *MockClock) UnixNano() int64                 { return c.Now().UnixNano() }

// Advance 推进时间；d 为负时忽略，保持单调
func (c *MockClock) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	c.mu.Lock()
	c.currentTime = c.currentTime.Add(d)
	c.mu.Unlock()
}

// Reads 返回 Now 被调用的次数
func (c *MockClock) Reads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}

// Ensure接口实现满足 infraClock.Clock
var _ infraClock.Clock = (*MockClock)(nil)
