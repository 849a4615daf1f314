package clock

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	clockconfig "github.com/weisyn/advclock/internal/config/clock"
	"github.com/weisyn/advclock/pkg/advclock"
)

// scriptedQuery 依次返回预设的偏移或错误
type scriptedQuery struct {
	offsets []time.Duration
	errs    []error
	calls   int
}

func (q *scriptedQuery) query(string) (time.Duration, error) {
	i := q.calls
	q.calls++
	if i < len(q.errs) && q.errs[i] != nil {
		return 0, q.errs[i]
	}
	if i < len(q.offsets) {
		return q.offsets[i], nil
	}
	return q.offsets[len(q.offsets)-1], nil
}

func testNTPOptions() *clockconfig.ClockOptions {
	return clockconfig.New(&clockconfig.ClockOptions{
		Type:            clockconfig.TypeNTP,
		NTPServer:       "ntp.test",
		SyncInterval:    time.Minute,
		OffsetThreshold: time.Second,
		BackoffInitial:  10 * time.Second,
		BackoffMax:      40 * time.Second,
	}).GetOptions()
}

func TestNTPClock_InitialSyncFailureIsFatal(t *testing.T) {
	q := &scriptedQuery{errs: []error{errors.New("timeout")}}
	local := NewMockClock(time.Unix(1000, 0))

	c, err := newNTPClock(testNTPOptions(), q.query, local.Now, nil)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrNTPUnavailable)
}

func TestNTPClock_AppliesOffset(t *testing.T) {
	q := &scriptedQuery{offsets: []time.Duration{250 * time.Millisecond}}
	local := NewMockClock(time.Unix(1000, 0))

	c, err := newNTPClock(testNTPOptions(), q.query, local.Now, nil)
	require.NoError(t, err)

	assert.Equal(t, time.Unix(1000, 0).Add(250*time.Millisecond), c.Now())

	healthy, offset, _, lastErr := c.Health()
	assert.True(t, healthy)
	assert.Equal(t, 250*time.Millisecond, offset)
	assert.NoError(t, lastErr)
}

func TestNTPClock_NeverGoesBackwards(t *testing.T) {
	// 第二次同步把偏移从 +2s 调整为 -70s，校正后的时间早于上一次返回值
	q := &scriptedQuery{offsets: []time.Duration{2 * time.Second, -70 * time.Second}}
	local := NewMockClock(time.Unix(1000, 0))

	c, err := newNTPClock(testNTPOptions(), q.query, local.Now, nil)
	require.NoError(t, err)

	assert.Equal(t, time.Unix(1002, 0), c.Now())

	// 到期读取仍使用旧偏移，同步在后台完成
	local.Advance(time.Minute)
	second := c.Now()
	assert.Equal(t, time.Unix(1062, 0), second)
	require.NoError(t, c.Close())
	assert.Equal(t, 2, q.calls)

	third := c.Now()
	assert.True(t, third.Equal(second), "NTP 时钟不得回退，钳制到上一次返回值")

	local.Advance(100 * time.Second)
	assert.Equal(t, time.Unix(1090, 0), c.Now())
	require.NoError(t, c.Close())
}

func TestNTPClock_ResyncDoesNotBlockReads(t *testing.T) {
	release := make(chan struct{})
	releaseOnce := sync.OnceFunc(func() { close(release) })
	defer releaseOnce()

	var calls atomic.Int32
	query := func(string) (time.Duration, error) {
		if calls.Add(1) > 1 {
			<-release
		}
		return 0, nil
	}
	local := NewMockClock(time.Unix(1000, 0))
	c, err := newNTPClock(testNTPOptions(), query, local.Now, nil)
	require.NoError(t, err)

	sw := advclock.NewWith[time.Time](c, nil)
	local.Advance(time.Minute)

	got := make(chan time.Duration, 1)
	go func() { got <- sw.Elapsed() }()
	select {
	case d := <-got:
		assert.Equal(t, time.Minute, d, "同步耗时不得计入测量")
	case <-time.After(5 * time.Second):
		t.Fatal("Elapsed 等待了网络同步")
	}

	// 同步进行中，不重复发起
	c.Now()
	assert.Equal(t, int32(2), calls.Load())

	releaseOnce()
	require.NoError(t, c.Close())
	healthy, _, lastSync, _ := c.Health()
	assert.True(t, healthy)
	assert.Equal(t, time.Unix(1060, 0), lastSync)
}

func TestNTPClock_BackoffAndHealth(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	q := &scriptedQuery{
		offsets: []time.Duration{0, 0, 0, 3 * time.Second},
		errs:    []error{nil, errors.New("unreachable"), errors.New("unreachable")},
	}
	local := NewMockClock(time.Unix(1000, 0))

	c, err := newNTPClock(testNTPOptions(), q.query, local.Now, zap.New(core))
	require.NoError(t, err)

	tick := func(d time.Duration) {
		local.Advance(d)
		c.Now()
		require.NoError(t, c.Close())
	}

	// 到达同步间隔，同步失败，进入 10s 退避
	tick(time.Minute)
	assert.Equal(t, 2, q.calls)
	healthy, _, _, lastErr := c.Health()
	assert.False(t, healthy)
	assert.Error(t, lastErr)
	assert.Equal(t, 1, logs.Len())

	// 退避期内不重试
	tick(5 * time.Second)
	assert.Equal(t, 2, q.calls)

	// 退避到期后重试，再次失败，退避翻倍为 20s
	tick(5 * time.Second)
	assert.Equal(t, 3, q.calls)
	tick(10 * time.Second)
	assert.Equal(t, 3, q.calls)

	// 重试成功，但偏移超过 1s 阈值
	tick(10 * time.Second)
	assert.Equal(t, 4, q.calls)
	healthy, offset, _, lastErr := c.Health()
	assert.False(t, healthy)
	assert.Equal(t, 3*time.Second, offset)
	assert.NoError(t, lastErr)
}
