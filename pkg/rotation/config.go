// Package rotation 实现值班（garde）公平轮值引擎
package rotation

import (
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/timeutil"
)

// DutyType 值班类型
// 字面量沿用上游应用的法语类型代码
type DutyType string

const (
	DutyNuit     DutyType = "nuit"     // 夜间值班
	DutyDimanche DutyType = "dimanche" // 周日值班
	DutyFerie    DutyType = "ferie"    // 法定节假日值班
)

// Config 轮值生成配置
// Holidays 为窗口内的法定节假日日期（YYYY-MM-DD）
type Config struct {
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Holidays  []string `json:"holidays,omitempty"`

	NightEnabled   bool `json:"night_enabled"`
	SundayEnabled  bool `json:"sunday_enabled"`
	HolidayEnabled bool `json:"holiday_enabled"`

	NightStart   string `json:"night_start"`   // HH:MM
	NightEnd     string `json:"night_end"`     // 跨午夜
	SundayStart  string `json:"sunday_start"`
	SundayEnd    string `json:"sunday_end"`
	HolidayStart string `json:"holiday_start"`
	HolidayEnd   string `json:"holiday_end"`
}

// DefaultConfig 返回缺省轮值配置（三类值班全部启用）
func DefaultConfig(startDate, endDate string) Config {
	return Config{
		StartDate:      startDate,
		EndDate:        endDate,
		NightEnabled:   true,
		SundayEnabled:  true,
		HolidayEnabled: true,
		NightStart:     "20:00",
		NightEnd:       "08:00",
		SundayStart:    "09:00",
		SundayEnd:      "19:00",
		HolidayStart:   "09:00",
		HolidayEnd:     "19:00",
	}
}

// Window 返回指定值班类型的起止时刻
func (c Config) Window(t DutyType) (start, end string) {
	switch t {
	case DutyNuit:
		return c.NightStart, c.NightEnd
	case DutyFerie:
		return c.HolidayStart, c.HolidayEnd
	default:
		return c.SundayStart, c.SundayEnd
	}
}

// IsHoliday 判断日期是否为配置的节假日
func (c Config) IsHoliday(date string) bool {
	for _, h := range c.Holidays {
		if h == date {
			return true
		}
	}
	return false
}

// DutyDate 需要值班覆盖的日期记录
type DutyDate struct {
	Date      string   `json:"date"`
	Type      DutyType `json:"type"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
}

// GenerateDutyDates 从配置展开值班日期，按时间顺序返回
// 同一天节假日优先于周日（避免同日双类别重复占用）；夜间值班与
// 日间值班独立叠加，同日的日间记录先于夜间记录
func GenerateDutyDates(cfg Config) []DutyDate {
	var out []DutyDate

	for _, date := range timeutil.DatesBetween(cfg.StartDate, cfg.EndDate) {
		switch {
		case cfg.HolidayEnabled && cfg.IsHoliday(date):
			start, end := cfg.Window(DutyFerie)
			out = append(out, DutyDate{Date: date, Type: DutyFerie, StartTime: start, EndTime: end})
		case cfg.SundayEnabled && timeutil.IsSunday(date):
			start, end := cfg.Window(DutyDimanche)
			out = append(out, DutyDate{Date: date, Type: DutyDimanche, StartTime: start, EndTime: end})
		}

		if cfg.NightEnabled {
			start, end := cfg.Window(DutyNuit)
			out = append(out, DutyDate{Date: date, Type: DutyNuit, StartTime: start, EndTime: end})
		}
	}

	return out
}
