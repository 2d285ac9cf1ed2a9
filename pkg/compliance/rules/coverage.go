package rules

import (
	"fmt"
	"sort"

	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/compliance"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/model"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/timeutil"
)

// UncoveredSpan 药师覆盖缺口时段
type UncoveredSpan struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Minutes int    `json:"minutes"`
}

// PharmacistCoverageRule 药师在岗覆盖规则
// 营业时段的每个采样点至少需要 minRequired 名药师在岗
type PharmacistCoverageRule struct {
	*BaseRule
	minRequired int
	stepMinutes int
}

// NewPharmacistCoverageRule 创建药师覆盖规则
func NewPharmacistCoverageRule(minRequired, stepMinutes int) *PharmacistCoverageRule {
	if stepMinutes <= 0 {
		stepMinutes = 15
	}
	return &PharmacistCoverageRule{
		BaseRule: NewBaseRule(
			"Couverture pharmacien pendant l'ouverture",
			compliance.TypeCoverage,
			compliance.SeverityCritical,
		),
		minRequired: minRequired,
		stepMinutes: stepMinutes,
	}
}

// Evaluate 评估整个快照
func (r *PharmacistCoverageRule) Evaluate(ctx *compliance.Context) []compliance.Violation {
	var violations []compliance.Violation

	for _, date := range ctx.Dates() {
		intervals := ctx.OpeningsOn(date)
		if len(intervals) == 0 {
			continue
		}

		shifts := ctx.PharmacistShiftsOn(date)
		spans := UncoveredSpans(intervals, shifts, r.minRequired, r.stepMinutes)

		for _, span := range spans {
			violations = append(violations, compliance.Violation{
				Rule:     r.Type(),
				Severity: r.Severity(),
				Dates:    []string{date},
				Message: fmt.Sprintf(
					"Aucune couverture pharmacien suffisante le %s de %s à %s (%d min)",
					date, span.Start, span.End, span.Minutes,
				),
				Actual: float64(span.Minutes),
				Limit:  0,
				Unit:   "min",
			})
		}
	}

	return violations
}

// UncoveredSpans 计算营业时段内药师不足的连续缺口
// 以 stepMinutes 为步长对每个营业时段采样，合并相邻的不足采样点；
// 返回的缺口按时段顺序排列，互不重叠
func UncoveredSpans(intervals []model.OpeningInterval, shifts []*model.Shift, minRequired, stepMinutes int) []UncoveredSpan {
	if minRequired <= 0 {
		return nil
	}
	if stepMinutes <= 0 {
		stepMinutes = 15
	}

	sorted := make([]model.OpeningInterval, len(intervals))
	copy(sorted, intervals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return timeutil.ToMinutes(sorted[i].Start) < timeutil.ToMinutes(sorted[j].Start)
	})

	var spans []UncoveredSpan

	for _, iv := range sorted {
		open := timeutil.ToMinutes(iv.Start)
		closeAt := timeutil.ToMinutes(iv.End)
		if closeAt <= open {
			closeAt += timeutil.MinutesPerDay
		}

		spanStart := -1
		for t := open; t < closeAt; t += stepMinutes {
			if countOnDuty(shifts, t) >= minRequired {
				if spanStart >= 0 {
					spans = append(spans, newSpan(spanStart, t))
					spanStart = -1
				}
				continue
			}
			if spanStart < 0 {
				spanStart = t
			}
		}
		if spanStart >= 0 {
			spans = append(spans, newSpan(spanStart, closeAt))
		}
	}

	return spans
}

// countOnDuty 统计在指定时刻（分钟）在岗的班次数
func countOnDuty(shifts []*model.Shift, minute int) int {
	n := 0
	for _, s := range shifts {
		start := timeutil.ToMinutes(s.StartTime)
		end := timeutil.ToMinutes(s.EndTime)
		if end <= start {
			end += timeutil.MinutesPerDay
		}
		if minute >= start && minute < end {
			n++
		}
	}
	return n
}

func newSpan(start, end int) UncoveredSpan {
	return UncoveredSpan{
		Start:   timeutil.FromMinutes(start),
		End:     timeutil.FromMinutes(end),
		Minutes: end - start,
	}
}
