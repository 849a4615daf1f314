package clock

import (
	"time"

	"github.com/weisyn/advclock/pkg/advclock"
	infraClock "github.com/weisyn/advclock/pkg/interfaces/infrastructure/clock"
)

// Factory 创建绑定同一时钟源与零点的秒表，并把命名测量交给上报器
type Factory struct {
	source   infraClock.Source[time.Time]
	epoch    *advclock.Epoch[time.Time]
	reporter infraClock.Reporter
}

// NewFactory 创建工厂；epoch 必须取自 source，reporter 可为 nil
func NewFactory(source infraClock.Source[time.Time], epoch *advclock.Epoch[time.Time], reporter infraClock.Reporter) *Factory {
	if epoch == nil {
		epoch = advclock.NewEpoch(source)
	}
	return &Factory{source: source, epoch: epoch, reporter: reporter}
}

// New 创建秒表
func (f *Factory) New() *advclock.Stopwatch[time.Time] {
	return advclock.NewWith(f.source, f.epoch)
}

// NewLocked 创建并发安全的秒表
func (f *Factory) NewLocked() *advclock.Locked[time.Time] {
	return advclock.NewLocked(f.New())
}

// Epoch 返回共享零点
func (f *Factory) Epoch() *advclock.Epoch[time.Time] { return f.epoch }

// Uptime 当前时间距零点的时长
func (f *Factory) Uptime() time.Duration { return f.epoch.Uptime(f.source) }

// Measure 执行 fn 并以 name 上报耗时
func (f *Factory) Measure(name string, fn func()) time.Duration {
	sw := f.New()
	fn()
	d := sw.Elapsed()
	f.observe(name, d)
	return d
}

// Track 开始一次命名测量，返回的函数结束测量并上报，适合 defer 使用：
//
//	defer factory.Track("load")()
func (f *Factory) Track(name string) func() time.Duration {
	sw := f.New()
	return func() time.Duration {
		d := sw.Elapsed()
		f.observe(name, d)
		return d
	}
}

func (f *Factory) observe(name string, d time.Duration) {
	if f.reporter != nil {
		f.reporter.Observe(name, d)
	}
}
