package rules

import (
	"fmt"

	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/compliance"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/model"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/timeutil"
)

// InterdayRestRule 日间休息规则
// 前一工作日收班到次日开班之间的休息不得低于 minHours 小时
//
// 仅对日历上严格相邻（间隔恰为一天）的工作日对进行计算；间隔超过
// 一天的工作日对直接视为合规，不验证实际间隔时长。上游报表消费方
// 依赖该行为，不要在此处"修正"
type InterdayRestRule struct {
	*BaseRule
	minHours float64
}

// NewInterdayRestRule 创建日间休息规则
func NewInterdayRestRule(minHours float64) *InterdayRestRule {
	return &InterdayRestRule{
		BaseRule: NewBaseRule(
			"Repos quotidien entre deux journées",
			compliance.TypeInterdayRest,
			compliance.SeverityCritical,
		),
		minHours: minHours,
	}
}

// Evaluate 评估整个快照
func (r *InterdayRestRule) Evaluate(ctx *compliance.Context) []compliance.Violation {
	var violations []compliance.Violation

	for _, emp := range ctx.Employees {
		byDate := ctx.WorkedShiftsByDate(emp.ID)
		dates := ctx.WorkedDates(emp.ID)

		for i := 0; i < len(dates)-1; i++ {
			day1, day2 := dates[i], dates[i+1]
			if timeutil.DaysBetween(day1, day2) != 1 {
				continue
			}

			lastEnd := lastEndMinute(byDate[day1])
			firstStart := firstStartMinute(byDate[day2])
			restMin := (timeutil.MinutesPerDay - lastEnd) + firstStart

			restHours := float64(restMin) / 60
			if restHours >= r.minHours {
				continue
			}

			violations = append(violations, compliance.Violation{
				Rule:       r.Type(),
				Severity:   r.Severity(),
				EmployeeID: emp.ID,
				ShiftIDs:   shiftIDsFor([]string{day1, day2}, byDate),
				Dates:      []string{day1, day2},
				Message: fmt.Sprintf(
					"%s : %.1f h de repos entre le %s et le %s, minimum légal %.0f h",
					emp.Name, restHours, day1, day2, r.minHours,
				),
				Actual: restHours,
				Limit:  r.minHours,
				Unit:   "h",
			})
		}
	}

	return violations
}

// lastEndMinute 当天最晚收班时刻（分钟）
func lastEndMinute(shifts []*model.Shift) int {
	last := 0
	for _, s := range shifts {
		if end := timeutil.ToMinutes(s.EndTime); end > last {
			last = end
		}
	}
	return last
}

// firstStartMinute 当天最早开班时刻（分钟）
func firstStartMinute(shifts []*model.Shift) int {
	first := timeutil.MinutesPerDay
	for _, s := range shifts {
		if start := timeutil.ToMinutes(s.StartTime); start < first {
			first = start
		}
	}
	return first
}
