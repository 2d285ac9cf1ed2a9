package rules

import (
	"fmt"
	"sort"

	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/compliance"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/timeutil"
)

// WeeklyHoursRule 周工时上限规则
// 自然周（周一至周日）内有效工时不得超过 maxHours 小时
type WeeklyHoursRule struct {
	*BaseRule
	maxHours float64
}

// NewWeeklyHoursRule 创建周工时上限规则
func NewWeeklyHoursRule(maxHours float64) *WeeklyHoursRule {
	return &WeeklyHoursRule{
		BaseRule: NewBaseRule(
			"Durée hebdomadaire maximale",
			compliance.TypeWeeklyHours,
			compliance.SeverityCritical,
		),
		maxHours: maxHours,
	}
}

// Evaluate 评估整个快照
func (r *WeeklyHoursRule) Evaluate(ctx *compliance.Context) []compliance.Violation {
	var violations []compliance.Violation

	for _, emp := range ctx.Employees {
		byDate := ctx.WorkedShiftsByDate(emp.ID)

		weekDates := make(map[string][]string)
		for _, date := range ctx.WorkedDates(emp.ID) {
			ws := timeutil.WeekStart(date)
			weekDates[ws] = append(weekDates[ws], date)
		}

		weeks := make([]string, 0, len(weekDates))
		for ws := range weekDates {
			weeks = append(weeks, ws)
		}
		sort.Strings(weeks)

		for _, ws := range weeks {
			totalMin := 0
			for _, date := range weekDates[ws] {
				for _, s := range byDate[date] {
					totalMin += s.EffectiveMinutes()
				}
			}

			totalHours := float64(totalMin) / 60
			if totalHours <= r.maxHours {
				continue
			}

			violations = append(violations, compliance.Violation{
				Rule:       r.Type(),
				Severity:   r.Severity(),
				EmployeeID: emp.ID,
				ShiftIDs:   shiftIDsFor(weekDates[ws], byDate),
				Dates:      []string{ws, timeutil.WeekEnd(ws)},
				Message: fmt.Sprintf(
					"%s : %.1f h effectives sur la semaine du %s, maximum légal %.0f h",
					emp.Name, totalHours, ws, r.maxHours,
				),
				Actual: totalHours,
				Limit:  r.maxHours,
				Unit:   "h",
			})
		}
	}

	return violations
}
