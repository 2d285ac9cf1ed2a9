// Package timeutil 提供时刻与区间的纯函数运算
//
// 所有函数均为全函数：不校验输入格式，畸形的 "HH:MM" 字符串
// 属于调用方错误，产生的数值结果未定义。
package timeutil

import "fmt"

// MinutesPerDay 一天的分钟数
const MinutesPerDay = 24 * 60

// MinutesPerWeek 一周的分钟数
const MinutesPerWeek = 7 * MinutesPerDay

// ToMinutes 将 "HH:MM" 转换为自午夜起的分钟数
func ToMinutes(hhmm string) int {
	var h, m int
	fmt.Sscanf(hhmm, "%d:%d", &h, &m)
	return h*60 + m
}

// ValidClock 检查字符串是否为合法的 "HH:MM" 时刻
func ValidClock(hhmm string) bool {
	var h, m int
	if n, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil || n != 2 {
		return false
	}
	return h >= 0 && h <= 23 && m >= 0 && m <= 59
}

// FromMinutes 将分钟数转换回 "HH:MM"（对一天取模）
func FromMinutes(minutes int) string {
	minutes = ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DurationMinutes 计算两个时刻之间的时长（分钟）
// end < start 视为跨午夜班次，时长为 end - start + 1440
func DurationMinutes(start, end string) int {
	d := ToMinutes(end) - ToMinutes(start)
	if d < 0 {
		d += MinutesPerDay
	}
	return d
}

// EffectiveMinutes 计算有效工作分钟数：时长减去休息时间，下限为 0
func EffectiveMinutes(start, end string, breakMinutes int) int {
	m := DurationMinutes(start, end) - breakMinutes
	if m < 0 {
		return 0
	}
	return m
}

// Overlaps 判断两个 [start,end) 区间是否重叠
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// Contains 判断区间 [inStart,inEnd) 是否完全包含于 [outStart,outEnd)
func Contains(inStart, inEnd, outStart, outEnd int) bool {
	return inStart >= outStart && inEnd <= outEnd
}

// ContainsInstant 判断时刻是否落在 [start,end) 区间内
func ContainsInstant(instant, start, end int) bool {
	return instant >= start && instant < end
}
