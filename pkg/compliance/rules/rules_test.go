package rules

import (
	"testing"

	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/compliance"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/model"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/timeutil"
)

func newEmployee(name string, role model.Role) *model.Employee {
	return &model.Employee{
		BaseModel: model.NewBaseModel(),
		Name:      name,
		Role:      role,
		Active:    true,
	}
}

func newShift(emp *model.Employee, date, start, end string, breakMin int) *model.Shift {
	return &model.Shift{
		BaseModel:    model.NewBaseModel(),
		EmployeeID:   emp.ID,
		Date:         date,
		StartTime:    start,
		EndTime:      end,
		BreakMinutes: breakMin,
		Type:         model.ShiftTravail,
		Status:       model.StatusPlanifie,
	}
}

func newCtx(start, end string, emps []*model.Employee, shifts []*model.Shift) *compliance.Context {
	return compliance.NewContext(start, end, emps, shifts, model.DefaultLegalLimits())
}

func TestWeeklyRestRule(t *testing.T) {
	emp := newEmployee("Claire Dubois", model.RolePreparateur)
	rule := NewWeeklyRestRule(35)

	t.Run("连续六天工作休息不足", func(t *testing.T) {
		// 周一至周六 08:30-19:30，周六收班到周一只剩 28.5 小时
		var shifts []*model.Shift
		for _, d := range []string{"2025-03-03", "2025-03-04", "2025-03-05", "2025-03-06", "2025-03-07", "2025-03-08"} {
			shifts = append(shifts, newShift(emp, d, "08:30", "19:30", 60))
		}
		vs := rule.Evaluate(newCtx("2025-03-03", "2025-03-09", []*model.Employee{emp}, shifts))
		if len(vs) != 1 {
			t.Fatalf("期望 1 条违规，实际 %d", len(vs))
		}
		if vs[0].Rule != compliance.TypeWeeklyRest {
			t.Errorf("规则标签 = %s", vs[0].Rule)
		}
		if vs[0].Severity != compliance.SeverityCritical {
			t.Errorf("严重级别 = %s", vs[0].Severity)
		}
		if vs[0].Actual != 28.5 {
			t.Errorf("实际休息 = %.1f h，期望 28.5", vs[0].Actual)
		}
	})

	t.Run("五天工作不触发", func(t *testing.T) {
		var shifts []*model.Shift
		for _, d := range []string{"2025-03-03", "2025-03-04", "2025-03-05", "2025-03-06", "2025-03-07"} {
			shifts = append(shifts, newShift(emp, d, "08:30", "19:30", 60))
		}
		vs := rule.Evaluate(newCtx("2025-03-03", "2025-03-09", []*model.Employee{emp}, shifts))
		if len(vs) != 0 {
			t.Errorf("期望 0 条违规，实际 %d", len(vs))
		}
	})

	t.Run("六天工作周中休息足够", func(t *testing.T) {
		// 周六 12:00 收班，到周终点剩 36 小时
		var shifts []*model.Shift
		for _, d := range []string{"2025-03-03", "2025-03-04", "2025-03-05", "2025-03-06", "2025-03-07"} {
			shifts = append(shifts, newShift(emp, d, "08:30", "19:30", 60))
		}
		shifts = append(shifts, newShift(emp, "2025-03-08", "08:30", "12:00", 0))
		// 周六 12:00 到周终点 = 36 小时
		vs := rule.Evaluate(newCtx("2025-03-03", "2025-03-09", []*model.Employee{emp}, shifts))
		if len(vs) != 0 {
			t.Errorf("期望 0 条违规，实际 %d", len(vs))
		}
	})

	t.Run("无班次恒定合规", func(t *testing.T) {
		vs := rule.Evaluate(newCtx("2025-03-03", "2025-03-09", []*model.Employee{emp}, nil))
		if len(vs) != 0 {
			t.Errorf("期望 0 条违规，实际 %d", len(vs))
		}
	})
}

func TestDailyHoursRule(t *testing.T) {
	emp := newEmployee("Marc Petit", model.RolePreparateur)
	rule := NewDailyHoursRule(10)

	t.Run("十一小时有效工时", func(t *testing.T) {
		// 07:30-19:30 休息 60 分钟 = 11 h 有效
		shifts := []*model.Shift{newShift(emp, "2025-03-05", "07:30", "19:30", 60)}
		vs := rule.Evaluate(newCtx("2025-03-03", "2025-03-09", []*model.Employee{emp}, shifts))
		if len(vs) != 1 {
			t.Fatalf("期望 1 条违规，实际 %d", len(vs))
		}
		if vs[0].Actual != 11 {
			t.Errorf("实际工时 = %.1f h，期望 11", vs[0].Actual)
		}
	})

	t.Run("刚好达到上限不触发", func(t *testing.T) {
		shifts := []*model.Shift{newShift(emp, "2025-03-05", "08:00", "19:00", 60)}
		vs := rule.Evaluate(newCtx("2025-03-03", "2025-03-09", []*model.Employee{emp}, shifts))
		if len(vs) != 0 {
			t.Errorf("期望 0 条违规，实际 %d", len(vs))
		}
	})

	t.Run("同日多班次合计", func(t *testing.T) {
		shifts := []*model.Shift{
			newShift(emp, "2025-03-05", "08:00", "14:00", 0),
			newShift(emp, "2025-03-05", "15:00", "20:00", 0),
		}
		vs := rule.Evaluate(newCtx("2025-03-03", "2025-03-09", []*model.Employee{emp}, shifts))
		if len(vs) != 1 {
			t.Fatalf("期望 1 条违规，实际 %d", len(vs))
		}
		if vs[0].Actual != 11 {
			t.Errorf("实际工时 = %.1f h，期望 11", vs[0].Actual)
		}
	})

	t.Run("取消班次不计入", func(t *testing.T) {
		s := newShift(emp, "2025-03-05", "07:30", "19:30", 60)
		s.Status = model.StatusAnnule
		vs := rule.Evaluate(newCtx("2025-03-03", "2025-03-09", []*model.Employee{emp}, []*model.Shift{s}))
		if len(vs) != 0 {
			t.Errorf("期望 0 条违规，实际 %d", len(vs))
		}
	})
}

func TestMandatoryBreakRule(t *testing.T) {
	emp := newEmployee("Sophie Laurent", model.RoleRayonniste)
	rule := NewMandatoryBreakRule(6, 20)

	t.Run("七小时无休息告警", func(t *testing.T) {
		shifts := []*model.Shift{newShift(emp, "2025-03-05", "09:00", "16:30", 0)}
		vs := rule.Evaluate(newCtx("2025-03-03", "2025-03-09", []*model.Employee{emp}, shifts))
		if len(vs) != 1 {
			t.Fatalf("期望 1 条违规，实际 %d", len(vs))
		}
		if vs[0].Severity != compliance.SeverityWarning {
			t.Errorf("严重级别 = %s", vs[0].Severity)
		}
	})

	t.Run("班内休息达标不触发", func(t *testing.T) {
		shifts := []*model.Shift{newShift(emp, "2025-03-05", "09:00", "17:00", 30)}
		vs := rule.Evaluate(newCtx("2025-03-03", "2025-03-09", []*model.Employee{emp}, shifts))
		if len(vs) != 0 {
			t.Errorf("期望 0 条违规，实际 %d", len(vs))
		}
	})

	t.Run("班间空档达标不触发", func(t *testing.T) {
		shifts := []*model.Shift{
			newShift(emp, "2025-03-05", "08:00", "12:00", 0),
			newShift(emp, "2025-03-05", "12:30", "16:00", 0),
		}
		vs := rule.Evaluate(newCtx("2025-03-03", "2025-03-09", []*model.Employee{emp}, shifts))
		if len(vs) != 0 {
			t.Errorf("期望 0 条违规，实际 %d", len(vs))
		}
	})

	t.Run("超时但工时合规时仍触发", func(t *testing.T) {
		// 与每日工时规则独立：11 小时违反日上限，同时缺少休息
		daily := NewDailyHoursRule(10)
		shifts := []*model.Shift{newShift(emp, "2025-03-05", "08:00", "19:00", 10)}
		ctx := newCtx("2025-03-03", "2025-03-09", []*model.Employee{emp}, shifts)
		if vs := rule.Evaluate(ctx); len(vs) != 1 {
			t.Errorf("休息规则期望 1 条违规，实际 %d", len(vs))
		}
		if vs := daily.Evaluate(ctx); len(vs) != 1 {
			t.Errorf("日工时规则期望 1 条违规，实际 %d", len(vs))
		}
	})
}

func TestInterdayRestRule(t *testing.T) {
	emp := newEmployee("Luc Moreau", model.RolePreparateur)
	rule := NewInterdayRestRule(11)

	t.Run("相邻两天休息不足", func(t *testing.T) {
		shifts := []*model.Shift{
			newShift(emp, "2025-03-05", "14:00", "22:00", 0),
			newShift(emp, "2025-03-06", "08:00", "16:00", 0),
		}
		vs := rule.Evaluate(newCtx("2025-03-03", "2025-03-09", []*model.Employee{emp}, shifts))
		if len(vs) != 1 {
			t.Fatalf("期望 1 条违规，实际 %d", len(vs))
		}
		if vs[0].Actual != 10 {
			t.Errorf("实际休息 = %.1f h，期望 10", vs[0].Actual)
		}
		if len(vs[0].Dates) != 2 || vs[0].Dates[0] != "2025-03-05" || vs[0].Dates[1] != "2025-03-06" {
			t.Errorf("违规日期 = %v", vs[0].Dates)
		}
	})

	t.Run("间隔超过一天视为合规", func(t *testing.T) {
		shifts := []*model.Shift{
			newShift(emp, "2025-03-05", "14:00", "23:59", 0),
			newShift(emp, "2025-03-07", "00:30", "08:00", 0),
		}
		vs := rule.Evaluate(newCtx("2025-03-03", "2025-03-09", []*model.Employee{emp}, shifts))
		if len(vs) != 0 {
			t.Errorf("期望 0 条违规，实际 %d", len(vs))
		}
	})

	t.Run("休息刚好达标不触发", func(t *testing.T) {
		shifts := []*model.Shift{
			newShift(emp, "2025-03-05", "13:00", "21:00", 0),
			newShift(emp, "2025-03-06", "08:00", "16:00", 0),
		}
		vs := rule.Evaluate(newCtx("2025-03-03", "2025-03-09", []*model.Employee{emp}, shifts))
		if len(vs) != 0 {
			t.Errorf("期望 0 条违规，实际 %d", len(vs))
		}
	})
}

func TestWeeklyHoursRule(t *testing.T) {
	emp := newEmployee("Anne Girard", model.RolePreparateur)
	rule := NewWeeklyHoursRule(48)

	t.Run("周工时超限", func(t *testing.T) {
		// 6 天 × 8.5 h = 51 h
		var shifts []*model.Shift
		for _, d := range []string{"2025-03-03", "2025-03-04", "2025-03-05", "2025-03-06", "2025-03-07", "2025-03-08"} {
			shifts = append(shifts, newShift(emp, d, "09:00", "18:00", 30))
		}
		vs := rule.Evaluate(newCtx("2025-03-03", "2025-03-09", []*model.Employee{emp}, shifts))
		if len(vs) != 1 {
			t.Fatalf("期望 1 条违规，实际 %d", len(vs))
		}
		if vs[0].Actual != 51 {
			t.Errorf("实际周工时 = %.1f h，期望 51", vs[0].Actual)
		}
	})

	t.Run("跨两周分别统计", func(t *testing.T) {
		// 跨周日/周一边界，各周都不超限
		shifts := []*model.Shift{
			newShift(emp, "2025-03-08", "09:00", "18:00", 30),
			newShift(emp, "2025-03-09", "09:00", "18:00", 30),
			newShift(emp, "2025-03-10", "09:00", "18:00", 30),
		}
		vs := rule.Evaluate(newCtx("2025-03-03", "2025-03-16", []*model.Employee{emp}, shifts))
		if len(vs) != 0 {
			t.Errorf("期望 0 条违规，实际 %d", len(vs))
		}
	})
}

func TestPharmacistCoverageRule(t *testing.T) {
	titulaire := newEmployee("Dr Anas Bendaikha", model.RoleTitulaire)
	prep := newEmployee("Julie Renard", model.RolePreparateur)
	rule := NewPharmacistCoverageRule(1, 15)

	openings := []model.OpeningHours{
		{Date: "2025-03-05", Intervals: []model.OpeningInterval{{Start: "08:00", End: "20:00"}}},
	}

	t.Run("全天无药师", func(t *testing.T) {
		shifts := []*model.Shift{newShift(prep, "2025-03-05", "08:00", "20:00", 60)}
		ctx := newCtx("2025-03-05", "2025-03-05", []*model.Employee{titulaire, prep}, shifts)
		ctx.SetOpenings(openings)
		vs := rule.Evaluate(ctx)
		if len(vs) != 1 {
			t.Fatalf("期望 1 条违规，实际 %d", len(vs))
		}
		if vs[0].Actual != 720 {
			t.Errorf("缺口时长 = %.0f min，期望 720", vs[0].Actual)
		}
	})

	t.Run("部分覆盖产生首尾缺口", func(t *testing.T) {
		shifts := []*model.Shift{newShift(titulaire, "2025-03-05", "09:00", "18:00", 0)}
		ctx := newCtx("2025-03-05", "2025-03-05", []*model.Employee{titulaire}, shifts)
		ctx.SetOpenings(openings)
		vs := rule.Evaluate(ctx)
		if len(vs) != 2 {
			t.Fatalf("期望 2 条违规，实际 %d", len(vs))
		}
	})

	t.Run("全程覆盖不触发", func(t *testing.T) {
		shifts := []*model.Shift{newShift(titulaire, "2025-03-05", "08:00", "20:00", 0)}
		ctx := newCtx("2025-03-05", "2025-03-05", []*model.Employee{titulaire}, shifts)
		ctx.SetOpenings(openings)
		if vs := rule.Evaluate(ctx); len(vs) != 0 {
			t.Errorf("期望 0 条违规，实际 %d", len(vs))
		}
	})

	t.Run("无营业时段跳过", func(t *testing.T) {
		ctx := newCtx("2025-03-05", "2025-03-05", []*model.Employee{titulaire}, nil)
		if vs := rule.Evaluate(ctx); len(vs) != 0 {
			t.Errorf("期望 0 条违规，实际 %d", len(vs))
		}
	})
}

func TestUncoveredSpansCompleteness(t *testing.T) {
	// 任一采样点要么覆盖达标，要么落在某个缺口内
	titulaire := newEmployee("Dr Paul Mercier", model.RoleTitulaire)
	intervals := []model.OpeningInterval{
		{Start: "08:00", End: "12:30"},
		{Start: "14:00", End: "20:00"},
	}
	shifts := []*model.Shift{
		newShift(titulaire, "2025-03-05", "09:00", "12:00", 0),
		newShift(titulaire, "2025-03-05", "15:30", "19:00", 0),
	}

	spans := UncoveredSpans(intervals, shifts, 1, 15)
	if len(spans) == 0 {
		t.Fatal("期望存在缺口")
	}

	inSpan := func(minute int) bool {
		for _, sp := range spans {
			if minute >= timeutil.ToMinutes(sp.Start) && minute < timeutil.ToMinutes(sp.End) {
				return true
			}
		}
		return false
	}

	for _, iv := range intervals {
		for m := timeutil.ToMinutes(iv.Start); m < timeutil.ToMinutes(iv.End); m += 15 {
			covered := false
			for _, s := range shifts {
				if m >= timeutil.ToMinutes(s.StartTime) && m < timeutil.ToMinutes(s.EndTime) {
					covered = true
				}
			}
			if covered == inSpan(m) {
				t.Errorf("采样点 %s：covered=%v 与缺口归属冲突", timeutil.FromMinutes(m), covered)
			}
		}
	}
}

func TestScoreMonotonicity(t *testing.T) {
	limits := model.DefaultLegalLimits()
	emp := newEmployee("Claire Dubois", model.RolePreparateur)
	idle := newEmployee("Marc Petit", model.RolePreparateur)

	// 基线：周一至周五 08:00-18:00（午休60分钟），每日9小时、每周45小时，全部合规
	var base []*model.Shift
	for _, d := range []string{"2025-03-03", "2025-03-04", "2025-03-05", "2025-03-06", "2025-03-07"} {
		base = append(base, newShift(emp, d, "08:00", "18:00", 60))
	}

	checker := compliance.NewChecker(Defaults(limits)...)
	emps := []*model.Employee{emp, idle}

	before := checker.FullReport(newCtx("2025-03-03", "2025-03-09", emps, base))
	if len(before.Violations) != 0 || before.Score.Global != 100 {
		t.Fatalf("基线应无违规且评分100，实际 %d 条 / %.0f", len(before.Violations), before.Score.Global)
	}

	// 追加周六 09:00-12:15（3.25小时）：周工时 48.25h 超过 48h 上限，
	// 其余规则仍合规（周休尾段 35.75h，日间休息 15h）
	extra := append(append([]*model.Shift{}, base...), newShift(emp, "2025-03-08", "09:00", "12:15", 0))

	after := checker.FullReport(newCtx("2025-03-03", "2025-03-09", emps, extra))
	if len(after.Violations) != 1 {
		t.Fatalf("追加超限班次应恰好产生 1 条违规，实际 %d: %+v", len(after.Violations), after.Violations)
	}
	if after.Violations[0].Rule != compliance.TypeWeeklyHours {
		t.Errorf("违规规则 = %s，期望 %s", after.Violations[0].Rule, compliance.TypeWeeklyHours)
	}
	if after.Violations[0].Actual != 48.25 {
		t.Errorf("实测周工时 = %.2f h，期望 48.25", after.Violations[0].Actual)
	}
	if after.Score.Global != 85 {
		t.Errorf("追加后全局评分 = %.0f，期望 85", after.Score.Global)
	}

	// 单调性：追加班次后该员工的个人评分不得上升
	var empBefore, empAfter, idleAfter *compliance.EmployeeCompliance
	for i := range before.ByEmployee {
		if before.ByEmployee[i].EmployeeID == emp.ID {
			empBefore = &before.ByEmployee[i]
		}
	}
	for i := range after.ByEmployee {
		switch after.ByEmployee[i].EmployeeID {
		case emp.ID:
			empAfter = &after.ByEmployee[i]
		case idle.ID:
			idleAfter = &after.ByEmployee[i]
		}
	}
	if empBefore == nil || empAfter == nil || idleAfter == nil {
		t.Fatal("员工明细缺失")
	}
	if empAfter.Score.Global > empBefore.Score.Global {
		t.Errorf("追加班次后个人评分上升：%.0f -> %.0f", empBefore.Score.Global, empAfter.Score.Global)
	}
	if empAfter.Score.Global != 85 {
		t.Errorf("违规员工个人评分 = %.0f，期望 85", empAfter.Score.Global)
	}

	// 无班次员工恒为满分零违规，且不受他人违规影响
	if idleAfter.Score.Global != 100 || len(idleAfter.Violations) != 0 {
		t.Errorf("无班次员工应为 100 分零违规，实际 %.0f / %d 条",
			idleAfter.Score.Global, len(idleAfter.Violations))
	}
}

func TestDefaults(t *testing.T) {
	list := Defaults(model.DefaultLegalLimits())
	if len(list) != 6 {
		t.Fatalf("期望 6 条规则，实际 %d", len(list))
	}
	want := []compliance.RuleType{
		compliance.TypeWeeklyRest,
		compliance.TypeDailyHours,
		compliance.TypeBreak,
		compliance.TypeInterdayRest,
		compliance.TypeWeeklyHours,
		compliance.TypeCoverage,
	}
	for i, r := range list {
		if r.Type() != want[i] {
			t.Errorf("规则[%d] = %s，期望 %s", i, r.Type(), want[i])
		}
	}
}
