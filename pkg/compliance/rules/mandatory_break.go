package rules

import (
	"fmt"
	"sort"

	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/compliance"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/model"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/timeutil"
)

// MandatoryBreakRule 强制休息规则
// 每日工时超过阈值且当天既无足长的班内休息、也无足长的班间空档时告警
// 与每日工时上限规则相互独立，同一天可同时触发
type MandatoryBreakRule struct {
	*BaseRule
	thresholdHours  float64
	minBreakMinutes int
}

// NewMandatoryBreakRule 创建强制休息规则
func NewMandatoryBreakRule(thresholdHours float64, minBreakMinutes int) *MandatoryBreakRule {
	return &MandatoryBreakRule{
		BaseRule: NewBaseRule(
			"Pause obligatoire",
			compliance.TypeBreak,
			compliance.SeverityWarning,
		),
		thresholdHours:  thresholdHours,
		minBreakMinutes: minBreakMinutes,
	}
}

// Evaluate 评估整个快照
func (r *MandatoryBreakRule) Evaluate(ctx *compliance.Context) []compliance.Violation {
	var violations []compliance.Violation

	for _, emp := range ctx.Employees {
		byDate := ctx.WorkedShiftsByDate(emp.ID)

		dates := make([]string, 0, len(byDate))
		for d := range byDate {
			dates = append(dates, d)
		}
		sort.Strings(dates)

		for _, date := range dates {
			shifts := byDate[date]
			totalMin := 0
			for _, s := range shifts {
				totalMin += s.EffectiveMinutes()
			}

			if float64(totalMin)/60 <= r.thresholdHours {
				continue
			}
			if r.hasBreak(shifts) {
				continue
			}

			longest := longestRecordedBreak(shifts)
			violations = append(violations, compliance.Violation{
				Rule:       r.Type(),
				Severity:   r.Severity(),
				EmployeeID: emp.ID,
				ShiftIDs:   shiftIDsFor([]string{date}, byDate),
				Dates:      []string{date},
				Message: fmt.Sprintf(
					"%s : %.1f h travaillées le %s sans pause d'au moins %d min",
					emp.Name, float64(totalMin)/60, date, r.minBreakMinutes,
				),
				Actual: float64(longest),
				Limit:  float64(r.minBreakMinutes),
				Unit:   "min",
			})
		}
	}

	return violations
}

// hasBreak 判断当天是否存在满足时长的休息：
// 任一班次记录的休息达标，或任意两个班次之间的空档达标
func (r *MandatoryBreakRule) hasBreak(shifts []*model.Shift) bool {
	for _, s := range shifts {
		if s.BreakMinutes >= r.minBreakMinutes {
			return true
		}
	}

	// 班次已按开始时刻排序（上下文索引保证）
	for i := 0; i < len(shifts)-1; i++ {
		gap := timeutil.ToMinutes(shifts[i+1].StartTime) - timeutil.ToMinutes(shifts[i].EndTime)
		if gap >= r.minBreakMinutes {
			return true
		}
	}
	return false
}

// longestRecordedBreak 返回当天最长的记录休息或班间空档（分钟）
func longestRecordedBreak(shifts []*model.Shift) int {
	longest := 0
	for _, s := range shifts {
		if s.BreakMinutes > longest {
			longest = s.BreakMinutes
		}
	}
	for i := 0; i < len(shifts)-1; i++ {
		gap := timeutil.ToMinutes(shifts[i+1].StartTime) - timeutil.ToMinutes(shifts[i].EndTime)
		if gap > longest {
			longest = gap
		}
	}
	return longest
}
