package timeutil

import (
	"time"

	"golang.org/x/exp/constraints"
)

// 近似换算比例，仅用于粗略的可读时长展示，不做日历精确计算
const (
	nanosPerMicro = 1000.0
	secsInMin     = 60.0
	minsInHour    = 60.0
	hoursInDay    = 24.0
	daysInWeek    = 7.0
	daysInYear    = 365.24
	monthsInYear  = 12.0
)

// Number 换算结果允许的数值类型
type Number interface {
	constraints.Integer | constraints.Float
}

// Convert 将时长换算为指定单位下的 float64 数值
//
// 未定义的单位返回原始纳秒数。
func Convert(d time.Duration, unit TimeUnit) float64 {
	nanos := d.Nanoseconds()

	micros := float64(nanos) / nanosPerMicro
	millis := micros / nanosPerMicro
	secs := millis / nanosPerMicro
	mins := secs / secsInMin
	hours := mins / minsInHour
	days := hours / hoursInDay
	weeks := days / daysInWeek
	years := days / daysInYear
	months := years / monthsInYear

	switch unit {
	case Nanoseconds:
		return float64(nanos)
	case Microseconds:
		return micros
	case Milliseconds:
		return millis
	case Seconds:
		return secs
	case Minutes:
		return mins
	case Hours:
		return hours
	case Days:
		return days
	case Weeks:
		return weeks
	case Months:
		return months
	case Years:
		return years
	default:
		return float64(nanos)
	}
}

// ConvertAs 与 Convert 相同，结果转换为调用方指定的数值类型
//
// 整数类型会截断小数部分，精度损失由调用方负责。Nanoseconds 与未定义单位
// 直接返回纳秒整数，不经过 float64，避免大数值丢失精度。
func ConvertAs[R Number](d time.Duration, unit TimeUnit) R {
	if unit == Nanoseconds || !unit.Valid() {
		return R(d.Nanoseconds())
	}
	return R(Convert(d, unit))
}

// Readout 返回同一时长在全部单位下的数值
func Readout(d time.Duration) map[TimeUnit]float64 {
	out := make(map[TimeUnit]float64, len(unitNames))
	for _, u := range Units() {
		out[u] = Convert(d, u)
	}
	return out
}
