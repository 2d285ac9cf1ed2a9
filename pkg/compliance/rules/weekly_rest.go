package rules

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/compliance"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/model"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/timeutil"
)

// WeeklyRestRule 每周连续休息规则
// 法定要求：每周至少一段连续休息不低于 minHours 小时
type WeeklyRestRule struct {
	*BaseRule
	minHours float64
}

// NewWeeklyRestRule 创建每周连续休息规则
func NewWeeklyRestRule(minHours float64) *WeeklyRestRule {
	return &WeeklyRestRule{
		BaseRule: NewBaseRule(
			"Repos hebdomadaire consécutif",
			compliance.TypeWeeklyRest,
			compliance.SeverityCritical,
		),
		minHours: minHours,
	}
}

// Evaluate 评估整个快照
// 以周为单位：取各候选休息段（首个工作日之前、相邻工作日之间、末个工作日之后）
// 的最大值；员工一周工作 6 天及以上且该最大值低于阈值时产生一条违规
// 无班次的员工整周休息，恒定合规
func (r *WeeklyRestRule) Evaluate(ctx *compliance.Context) []compliance.Violation {
	var violations []compliance.Violation

	for _, emp := range ctx.Employees {
		byDate := ctx.WorkedShiftsByDate(emp.ID)
		if len(byDate) == 0 {
			continue
		}

		// 按周分组工作日期
		byWeek := make(map[string][]string)
		for date := range byDate {
			week := timeutil.WeekStart(date)
			byWeek[week] = append(byWeek[week], date)
		}

		weeks := make([]string, 0, len(byWeek))
		for w := range byWeek {
			weeks = append(weeks, w)
		}
		sort.Strings(weeks)

		for _, week := range weeks {
			dates := byWeek[week]
			sort.Strings(dates)
			if len(dates) < 6 {
				continue
			}

			maxRest := maxWeeklyRest(dates, byDate)
			limitMin := int(r.minHours * 60)
			if maxRest >= limitMin {
				continue
			}

			violations = append(violations, compliance.Violation{
				Rule:       r.Type(),
				Severity:   r.Severity(),
				EmployeeID: emp.ID,
				ShiftIDs:   shiftIDsFor(dates, byDate),
				Dates:      []string{week, timeutil.WeekEnd(week)},
				Message: fmt.Sprintf(
					"%s : repos hebdomadaire maximal de %.1f h, minimum légal %.0f h (semaine du %s)",
					emp.Name, float64(maxRest)/60, r.minHours, week,
				),
				Actual: float64(maxRest) / 60,
				Limit:  r.minHours,
				Unit:   "h",
			})
		}
	}

	return violations
}

// maxWeeklyRest 计算一周时间线上最长的连续休息段（分钟）
// 候选段：周起点到首个工作日开工、相邻工作日收工到次个开工、末个收工到周终点
func maxWeeklyRest(dates []string, byDate map[string][]*model.Shift) int {
	type dayBound struct {
		firstStart int // 周内分钟偏移
		lastEnd    int
	}

	bounds := make([]dayBound, 0, len(dates))
	for _, date := range dates {
		shifts := byDate[date]
		first := timeutil.MinutesPerDay
		last := 0
		for _, s := range shifts {
			start := timeutil.ToMinutes(s.StartTime)
			end := timeutil.ToMinutes(s.EndTime)
			if start < first {
				first = start
			}
			if end > last {
				last = end
			}
		}
		bounds = append(bounds, dayBound{
			firstStart: timeutil.MinuteOfWeek(date, "00:00") + first,
			lastEnd:    timeutil.MinuteOfWeek(date, "00:00") + last,
		})
	}

	maxRest := bounds[0].firstStart
	for i := 1; i < len(bounds); i++ {
		rest := bounds[i].firstStart - bounds[i-1].lastEnd
		if rest > maxRest {
			maxRest = rest
		}
	}
	if tail := timeutil.MinutesPerWeek - bounds[len(bounds)-1].lastEnd; tail > maxRest {
		maxRest = tail
	}
	return maxRest
}

// shiftIDsFor 收集给定日期下的全部班次 ID（日期升序）
func shiftIDsFor(dates []string, byDate map[string][]*model.Shift) []uuid.UUID {
	var ids []uuid.UUID
	for _, date := range dates {
		for _, s := range byDate[date] {
			ids = append(ids, s.ID)
		}
	}
	return ids
}
