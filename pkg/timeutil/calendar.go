// Package timeutil 提供时刻与区间的纯函数运算
package timeutil

import "time"

// DateLayout 日期字符串格式
const DateLayout = "2006-01-02"

// ParseDate 解析 "YYYY-MM-DD" 日期，失败返回零值
func ParseDate(date string) time.Time {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ValidDate 检查字符串是否为合法的 "YYYY-MM-DD" 日期
func ValidDate(date string) bool {
	_, err := time.Parse(DateLayout, date)
	return err == nil
}

// AddDays 日期加减天数
func AddDays(date string, days int) string {
	return ParseDate(date).AddDate(0, 0, days).Format(DateLayout)
}

// DaysBetween 计算两个日期相差的天数（date2 - date1）
func DaysBetween(date1, date2 string) int {
	t1 := ParseDate(date1)
	t2 := ParseDate(date2)
	return int(t2.Sub(t1).Hours() / 24)
}

// DatesBetween 生成 [start, end] 闭区间内的所有日期
func DatesBetween(start, end string) []string {
	s := ParseDate(start)
	e := ParseDate(end)
	if s.IsZero() || e.IsZero() || e.Before(s) {
		return nil
	}
	var dates []string
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates
}

// Weekday 返回日期的星期
func Weekday(date string) time.Weekday {
	return ParseDate(date).Weekday()
}

// IsSunday 判断日期是否为星期日
func IsSunday(date string) bool {
	return Weekday(date) == time.Sunday
}

// WeekStart 返回日期所在周的周一
func WeekStart(date string) string {
	t := ParseDate(date)
	// Go 的 Weekday 以周日为 0，法定周以周一为起点
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset).Format(DateLayout)
}

// WeekEnd 返回日期所在周的周日
func WeekEnd(date string) string {
	return AddDays(WeekStart(date), 6)
}

// ISOWeek 返回日期的 ISO 年份与周序号
func ISOWeek(date string) (year, week int) {
	return ParseDate(date).ISOWeek()
}

// DayOfWeekIndex 返回日期在周内的序号（周一为 0）
func DayOfWeekIndex(date string) int {
	return (int(ParseDate(date).Weekday()) + 6) % 7
}

// MinuteOfWeek 计算日期加时刻在周时间线上的分钟偏移
// 周一 00:00 为 0，周日 24:00 为 10080
func MinuteOfWeek(date, hhmm string) int {
	return DayOfWeekIndex(date)*MinutesPerDay + ToMinutes(hhmm)
}

// IsConsecutive 判断 date2 是否为 date1 的次日
func IsConsecutive(date1, date2 string) bool {
	return DaysBetween(date1, date2) == 1
}
