package timeutil

import "testing"

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		date string
		want string
	}{
		{"周三归到周一", "2025-03-05", "2025-03-03"},
		{"周一本身", "2025-03-03", "2025-03-03"},
		{"周日归到上周一", "2025-03-09", "2025-03-03"},
		{"跨月", "2025-03-01", "2025-02-24"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekStart(tt.date); got != tt.want {
				t.Errorf("WeekStart(%q) = %q, want %q", tt.date, got, tt.want)
			}
		})
	}
}

func TestDatesBetween(t *testing.T) {
	dates := DatesBetween("2025-03-01", "2025-03-04")
	if len(dates) != 4 {
		t.Fatalf("应生成 4 个日期, got %d", len(dates))
	}
	if dates[0] != "2025-03-01" || dates[3] != "2025-03-04" {
		t.Errorf("日期范围端点错误: %v", dates)
	}

	if DatesBetween("2025-03-04", "2025-03-01") != nil {
		t.Error("倒序区间应返回 nil")
	}
}

func TestMinuteOfWeek(t *testing.T) {
	tests := []struct {
		name string
		date string
		hhmm string
		want int
	}{
		{"周一零点", "2025-03-03", "00:00", 0},
		{"周一早班", "2025-03-03", "08:30", 510},
		{"周六收班", "2025-03-08", "19:30", 5*MinutesPerDay + 1170},
		{"周日午夜前", "2025-03-09", "23:59", 6*MinutesPerDay + 1439},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MinuteOfWeek(tt.date, tt.hhmm); got != tt.want {
				t.Errorf("MinuteOfWeek(%q, %q) = %d, want %d", tt.date, tt.hhmm, got, tt.want)
			}
		})
	}
}

func TestIsConsecutive(t *testing.T) {
	if !IsConsecutive("2025-02-28", "2025-03-01") {
		t.Error("跨月相邻日期应连续")
	}
	if IsConsecutive("2025-03-01", "2025-03-03") {
		t.Error("隔天不应连续")
	}
}

func TestIsSunday(t *testing.T) {
	if !IsSunday("2025-03-09") {
		t.Error("2025-03-09 是星期日")
	}
	if IsSunday("2025-03-08") {
		t.Error("2025-03-08 是星期六")
	}
}

func TestISOWeek(t *testing.T) {
	year, week := ISOWeek("2025-01-01")
	if year != 2025 || week != 1 {
		t.Errorf("ISOWeek(2025-01-01) = %d/%d, want 2025/1", year, week)
	}
}
