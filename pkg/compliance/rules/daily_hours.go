package rules

import (
	"fmt"
	"sort"

	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/compliance"
)

// DailyHoursRule 每日工时上限规则
type DailyHoursRule struct {
	*BaseRule
	maxHours float64
}

// NewDailyHoursRule 创建每日工时上限规则
func NewDailyHoursRule(maxHours float64) *DailyHoursRule {
	return &DailyHoursRule{
		BaseRule: NewBaseRule(
			"Durée journalière maximale",
			compliance.TypeDailyHours,
			compliance.SeverityCritical,
		),
		maxHours: maxHours,
	}
}

// Evaluate 评估整个快照
// 按日期聚合有效工时，超过上限的每一天产生一条严重违规
func (r *DailyHoursRule) Evaluate(ctx *compliance.Context) []compliance.Violation {
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

			hours := float64(totalMin) / 60
			if hours <= r.maxHours {
				continue
			}

			violations = append(violations, compliance.Violation{
				Rule:       r.Type(),
				Severity:   r.Severity(),
				EmployeeID: emp.ID,
				ShiftIDs:   shiftIDsFor([]string{date}, byDate),
				Dates:      []string{date},
				Message: fmt.Sprintf(
					"%s : %.1f h effectives le %s, maximum légal %.0f h",
					emp.Name, hours, date, r.maxHours,
				),
				Actual: hours,
				Limit:  r.maxHours,
				Unit:   "h",
			})
		}
	}

	return violations
}
