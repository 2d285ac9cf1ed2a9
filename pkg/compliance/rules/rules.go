package rules

import (
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/compliance"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/model"
)

// Defaults 按固定顺序构造全部内置规则
// 报告中的违规编号依赖该顺序，调整顺序属于破坏性变更
func Defaults(limits model.LegalLimits) []compliance.Rule {
	return []compliance.Rule{
		NewWeeklyRestRule(limits.MinWeeklyRestHours),
		NewDailyHoursRule(limits.MaxDailyHours),
		NewMandatoryBreakRule(limits.BreakThresholdHours, limits.MinBreakMinutes),
		NewInterdayRestRule(limits.MinDailyRestHours),
		NewWeeklyHoursRule(limits.MaxWeeklyHours),
		NewPharmacistCoverageRule(limits.MinPharmacists, limits.CoverageStepMinutes),
	}
}
