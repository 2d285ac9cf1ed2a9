// Package model 定义合规校验与轮值引擎的核心数据模型
package model

// LegalLimits 劳动法规阈值
// 调用方可在请求级覆盖单项阈值，缺省值来自 DefaultLegalLimits
type LegalLimits struct {
	MaxDailyHours       float64 `json:"max_daily_hours"`        // 每日有效工时上限
	MaxWeeklyHours      float64 `json:"max_weekly_hours"`       // 每周有效工时上限
	MinWeeklyRestHours  float64 `json:"min_weekly_rest_hours"`  // 每周最长连续休息下限
	MinDailyRestHours   float64 `json:"min_daily_rest_hours"`   // 两个工作日之间的休息下限
	BreakThresholdHours float64 `json:"break_threshold_hours"`  // 触发强制休息的连续工时
	MinBreakMinutes     int     `json:"min_break_minutes"`      // 强制休息的最短时长
	MinPharmacists      int     `json:"min_pharmacists"`        // 营业期间每时刻的最少药师数
	CoverageStepMinutes int     `json:"coverage_step_minutes"`  // 覆盖扫描的离散步长
}

// DefaultLegalLimits 返回法定缺省阈值
func DefaultLegalLimits() LegalLimits {
	return LegalLimits{
		MaxDailyHours:       10,
		MaxWeeklyHours:      48,
		MinWeeklyRestHours:  35,
		MinDailyRestHours:   11,
		BreakThresholdHours: 6,
		MinBreakMinutes:     20,
		MinPharmacists:      1,
		CoverageStepMinutes: 15,
	}
}

// Merge 用非零覆盖项生成新的阈值集合
// 零值字段保持原阈值不变
func (l LegalLimits) Merge(override LegalLimits) LegalLimits {
	out := l
	if override.MaxDailyHours > 0 {
		out.MaxDailyHours = override.MaxDailyHours
	}
	if override.MaxWeeklyHours > 0 {
		out.MaxWeeklyHours = override.MaxWeeklyHours
	}
	if override.MinWeeklyRestHours > 0 {
		out.MinWeeklyRestHours = override.MinWeeklyRestHours
	}
	if override.MinDailyRestHours > 0 {
		out.MinDailyRestHours = override.MinDailyRestHours
	}
	if override.BreakThresholdHours > 0 {
		out.BreakThresholdHours = override.BreakThresholdHours
	}
	if override.MinBreakMinutes > 0 {
		out.MinBreakMinutes = override.MinBreakMinutes
	}
	if override.MinPharmacists > 0 {
		out.MinPharmacists = override.MinPharmacists
	}
	if override.CoverageStepMinutes > 0 {
		out.CoverageStepMinutes = override.CoverageStepMinutes
	}
	return out
}
