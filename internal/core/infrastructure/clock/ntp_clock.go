package clock

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/beevik/ntp"
	"go.uber.org/zap"

	clockconfig "github.com/weisyn/advclock/internal/config/clock"
	infraClock "github.com/weisyn/advclock/pkg/interfaces/infrastructure/clock"
)

// ErrNTPUnavailable 首次同步失败，NTP 时钟不可用
var ErrNTPUnavailable = errors.New("ntp clock unavailable")

// offsetQuery 查询服务器相对本地时钟的偏移
type offsetQuery func(server string) (time.Duration, error)

func queryNTP(server string) (time.Duration, error) {
	resp, err := ntp.Query(server)
	if err != nil {
		return 0, err
	}
	if err := resp.Validate(); err != nil {
		return 0, err
	}
	return resp.ClockOffset, nil
}

// NTPClock 通过NTP周期性校正偏移的时钟实现
//
// 偏移更新可能使校正后的时间回退，Now 会钳制到上一次返回值，保证单调不减。
// 到期的重新同步在后台进行，Now 只读取本地时钟与当前偏移，不等待网络。
type NTPClock struct {
	mu       sync.Mutex
	inflight sync.WaitGroup

	server             string
	query              offsetQuery
	local              func() time.Time
	logger             *zap.Logger
	offset             time.Duration
	lastSync           time.Time
	lastAttempt        time.Time
	lastReturned       time.Time
	syncing            bool
	syncInterval       time.Duration
	backoff            time.Duration
	backoffInitial     time.Duration
	backoffMax         time.Duration
	unhealthyThreshold time.Duration
	lastError          error
}

// NewNTPClock 创建NTP时钟
//
// 首次同步在调用方 goroutine 中完成，失败返回 ErrNTPUnavailable：
// 没有可用的偏移时，该时钟不能给出有意义的时间。
func NewNTPClock(opts *clockconfig.ClockOptions, logger *zap.Logger) (*NTPClock, error) {
	return newNTPClock(opts, queryNTP, time.Now, logger)
}

func newNTPClock(opts *clockconfig.ClockOptions, query offsetQuery, local func() time.Time, logger *zap.Logger) (*NTPClock, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &NTPClock{
		server:             opts.NTPServer,
		query:              query,
		local:              local,
		logger:             logger,
		syncInterval:       opts.SyncInterval,
		backoffInitial:     opts.BackoffInitial,
		backoffMax:         opts.BackoffMax,
		unhealthyThreshold: opts.OffsetThreshold,
	}
	c.lastAttempt = local()
	offset, err := query(c.server)
	if err != nil {
		return nil, fmt.Errorf("%w: 同步 %s 失败: %v", ErrNTPUnavailable, c.server, err)
	}
	c.applyOffset(offset)
	return c, nil
}

func (c *NTPClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.local()
	c.maybeResync(now)
	t := now.Add(c.offset)
	if t.Before(c.lastReturned) {
		t = c.lastReturned
	}
	c.lastReturned = t
	return t
}

func (c *NTPClock) Since(t time.Time) time.Duration { return c.Now().Sub(t) }
func (c *NTPClock) Unix() int64                     { return c.Now().Unix() }
func (c *NTPClock) UnixNano() int64                 { return c.Now().UnixNano() }

// Health 返回当前健康状态与关键指标
// healthy: 最近一次同步无错误，且偏移量在阈值内（阈值为0时不检查）
func (c *NTPClock) Health() (healthy bool, offset time.Duration, lastSync time.Time, lastError error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	offset, lastSync, lastError = c.offset, c.lastSync, c.lastError
	if c.unhealthyThreshold > 0 && (offset < -c.unhealthyThreshold || offset > c.unhealthyThreshold) {
		return false, offset, lastSync, lastError
	}
	if lastError != nil {
		return false, offset, lastSync, lastError
	}
	return true, offset, lastSync, nil
}

// Close 等待进行中的后台同步结束
func (c *NTPClock) Close() error {
	c.inflight.Wait()
	return nil
}

// maybeResync 调用方持有 c.mu；同一时刻至多一个后台同步
func (c *NTPClock) maybeResync(now time.Time) {
	if c.syncing {
		return
	}
	// 动态计算有效同步间隔（含退避）
	effective := c.syncInterval
	if c.backoff > 0 {
		if c.backoff > c.backoffMax {
			c.backoff = c.backoffMax
		}
		effective = c.backoff
	}
	if now.Sub(c.lastAttempt) < effective {
		return
	}
	c.syncing = true
	c.lastAttempt = now
	c.inflight.Add(1)
	go c.resync()
}

// resync 在锁外查询，完成后在锁内应用结果
func (c *NTPClock) resync() {
	defer c.inflight.Done()
	offset, err := c.query(c.server)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.syncing = false
	if err != nil {
		c.lastError = err
		if c.backoff == 0 {
			c.backoff = c.backoffInitial
		} else {
			c.backoff *= 2
		}
		c.logger.Warn("NTP 同步失败，沿用上次偏移",
			zap.String("server", c.server),
			zap.Duration("offset", c.offset),
			zap.Duration("backoff", c.backoff),
			zap.Error(err))
		return
	}
	// 成功，清零退避
	c.backoff = 0
	c.applyOffset(offset)
}

// applyOffset 调用方持有 c.mu（或处于构造阶段）
func (c *NTPClock) applyOffset(offset time.Duration) {
	c.offset = offset
	c.lastSync = c.lastAttempt
	c.lastError = nil
	c.logger.Debug("NTP 同步完成", zap.String("server", c.server), zap.Duration("offset", offset))
}

var _ infraClock.Clock = (*NTPClock)(nil)
