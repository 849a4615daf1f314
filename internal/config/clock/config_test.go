package clock

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/advclock/pkg/utils/timeutil"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New(nil)
	opts := cfg.GetOptions()

	assert.Equal(t, TypeSystem, opts.Type)
	assert.Equal(t, timeutil.Milliseconds, cfg.ReportUnit())
	assert.Equal(t, "advclock", opts.MetricsNamespace)
	assert.Equal(t, 5*time.Minute, opts.SyncInterval)
	assert.Equal(t, time.Millisecond, opts.DeterministicStep)
	require.NoError(t, cfg.Validate())
}

func TestNew_UserOverrides(t *testing.T) {
	var user ClockOptions
	require.NoError(t, json.Unmarshal([]byte(`{
		"type": "deterministic",
		"report_unit": "seconds",
		"deterministic_base_unix": 1700000000,
		"deterministic_step": 2000000
	}`), &user))

	cfg := New(&user)
	opts := cfg.GetOptions()

	assert.Equal(t, TypeDeterministic, opts.Type)
	assert.Equal(t, timeutil.Seconds, cfg.ReportUnit())
	assert.Equal(t, 2*time.Millisecond, opts.DeterministicStep)
	assert.Equal(t, time.Unix(1_700_000_000, 0), cfg.DeterministicBase())
	assert.Equal(t, "time.google.com", opts.NTPServer, "未设置的字段保留默认值")
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	t.Run("未知时钟类型", func(t *testing.T) {
		err := New(&ClockOptions{Type: "sundial"}).Validate()
		assert.ErrorIs(t, err, ErrUnknownClockType)
	})

	t.Run("未知单位", func(t *testing.T) {
		err := New(&ClockOptions{ReportUnit: "fortnights"}).Validate()
		assert.ErrorIs(t, err, timeutil.ErrUnknownTimeUnit)
	})

	t.Run("退避区间颠倒", func(t *testing.T) {
		err := New(&ClockOptions{BackoffInitial: time.Hour, BackoffMax: time.Minute}).Validate()
		assert.Error(t, err)
	})
}
