package advclock

import (
	"time"

	infraClock "github.com/weisyn/advclock/pkg/interfaces/infrastructure/clock"
)

// SystemClock 默认时钟源：time.Now() 携带单调时钟读数，Sub 不受墙上时钟调整影响
type SystemClock struct{}

// NewSystemClock 创建系统时钟
func NewSystemClock() infraClock.Clock { return SystemClock{} }

func (SystemClock) Now() time.Time                  { return time.Now() }
func (SystemClock) Since(t time.Time) time.Duration { return time.Since(t) }
func (SystemClock) Unix() int64                     { return time.Now().Unix() }
func (SystemClock) UnixNano() int64                 { return time.Now().UnixNano() }

var _ infraClock.Clock = SystemClock{}

// monoBase 单调计数的任意零点，本进程之外没有意义
var monoBase = time.Now()

// Ticks 自 monoBase 起的单调纳秒计数
type Ticks int64

// Sub 返回 t-u
func (t Ticks) Sub(u Ticks) time.Duration { return time.Duration(t - u) }

// MonoClock 以纯整数 Ticks 为时间点的单调时钟源，不携带墙上时间
type MonoClock struct{}

func (MonoClock) Now() Ticks { return Ticks(time.Since(monoBase)) }

var _ infraClock.Source[Ticks] = MonoClock{}
