package timeutil

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTimeUnit 无法识别的时间单位名称
var ErrUnknownTimeUnit = errors.New("unknown time unit")

// TimeUnit 时长换算的目标单位
//
// 序号固定，表驱动换算依赖该顺序，不得调整。
type TimeUnit uint8

const (
	Nanoseconds TimeUnit = iota
	Microseconds
	Milliseconds
	Seconds
	Minutes
	Hours
	Days
	Weeks
	Months
	Years
)

var unitNames = [...]string{
	Nanoseconds:  "nanoseconds",
	Microseconds: "microseconds",
	Milliseconds: "milliseconds",
	Seconds:      "seconds",
	Minutes:      "minutes",
	Hours:        "hours",
	Days:         "days",
	Weeks:        "weeks",
	Months:       "months",
	Years:        "years",
}

// 常见缩写
var unitAliases = map[string]TimeUnit{
	"ns":   Nanoseconds,
	"us":   Microseconds,
	"µs":   Microseconds,
	"ms":   Milliseconds,
	"s":    Seconds,
	"sec":  Seconds,
	"m":    Minutes,
	"min":  Minutes,
	"h":    Hours,
	"d":    Days,
	"w":    Weeks,
	"mo":   Months,
	"y":    Years,
	"yr":   Years,
	"secs": Seconds,
	"mins": Minutes,
}

// Valid 是否为已定义的单位
func (u TimeUnit) Valid() bool { return int(u) < len(unitNames) }

func (u TimeUnit) String() string {
	if !u.Valid() {
		return fmt.Sprintf("TimeUnit(%d)", uint8(u))
	}
	return unitNames[u]
}

// Units 按序号顺序返回全部单位
func Units() []TimeUnit {
	units := make([]TimeUnit, len(unitNames))
	for i := range unitNames {
		units[i] = TimeUnit(i)
	}
	return units
}

// ParseTimeUnit 解析单位名称（全称、单数形式或缩写，大小写不敏感）
func ParseTimeUnit(s string) (TimeUnit, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range unitNames {
		if name == n || name == strings.TrimSuffix(n, "s") {
			return TimeUnit(i), nil
		}
	}
	if u, ok := unitAliases[name]; ok {
		return u, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTimeUnit, s)
}

// MarshalText 以单位名称序列化（用于 JSON 配置）
func (u TimeUnit) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTimeUnit, uint8(u))
	}
	return []byte(u.String()), nil
}

// UnmarshalText 从单位名称反序列化
func (u *TimeUnit) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
