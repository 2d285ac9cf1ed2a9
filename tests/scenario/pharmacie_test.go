// Package scenario 提供场景测试
package scenario

import (
	"testing"

	"github.com/google/uuid"

	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/compliance"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/compliance/rules"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/model"
)

// newPharmacie 构造一家典型社区药房的人员
func newPharmacie() (titulaire, adjoint, preparateur *model.Employee) {
	titulaire = &model.Employee{
		BaseModel:     model.BaseModel{ID: uuid.New()},
		Name:          "Dr Martin",
		Role:          model.RoleTitulaire,
		ContractHours: 35,
		Active:        true,
	}
	adjoint = &model.Employee{
		BaseModel:     model.BaseModel{ID: uuid.New()},
		Name:          "Dr Lefebvre",
		Role:          model.RoleAdjoint,
		ContractHours: 35,
		Active:        true,
	}
	preparateur = &model.Employee{
		BaseModel:     model.BaseModel{ID: uuid.New()},
		Name:          "Sophie Durand",
		Role:          model.RolePreparateur,
		ContractHours: 35,
		Active:        true,
	}
	return
}

// weekShifts 为某员工生成一段连续日期的班次
func weekShifts(emp *model.Employee, dates []string, start, end string, breakMin int) []*model.Shift {
	var out []*model.Shift
	for _, d := range dates {
		out = append(out, &model.Shift{
			BaseModel:    model.BaseModel{ID: uuid.New()},
			EmployeeID:   emp.ID,
			Date:         d,
			StartTime:    start,
			EndTime:      end,
			BreakMinutes: breakMin,
			Type:         model.ShiftTravail,
			Status:       model.StatusConfirme,
		})
	}
	return out
}

// TestPharmacieSemaineConforme 测试标准合规周
// 周一至周五 09:00-17:00（含1小时午休），每日7小时、每周35小时
func TestPharmacieSemaineConforme(t *testing.T) {
	titulaire, adjoint, preparateur := newPharmacie()

	semaine := []string{"2025-03-03", "2025-03-04", "2025-03-05", "2025-03-06", "2025-03-07"}

	var shifts []*model.Shift
	shifts = append(shifts, weekShifts(titulaire, semaine, "09:00", "17:00", 60)...)
	shifts = append(shifts, weekShifts(adjoint, semaine, "09:00", "17:00", 60)...)
	shifts = append(shifts, weekShifts(preparateur, semaine, "09:00", "17:00", 60)...)

	var openings []model.OpeningHours
	for _, d := range semaine {
		openings = append(openings, model.OpeningHours{
			Date:      d,
			Intervals: []model.OpeningInterval{{Start: "09:00", End: "17:00"}},
		})
	}

	limits := model.DefaultLegalLimits()
	ctx := compliance.NewContext("2025-03-03", "2025-03-09",
		[]*model.Employee{titulaire, adjoint, preparateur}, shifts, limits)
	ctx.SetOpenings(openings)

	checker := compliance.NewChecker(rules.Defaults(limits)...)
	report := checker.FullReport(ctx)

	t.Logf("评分: %.0f (%s), 违规数: %d",
		report.Score.Global, report.Score.Label, len(report.Violations))

	if len(report.Violations) != 0 {
		for _, v := range report.Violations {
			t.Logf("  违规: [%s] %s", v.Rule, v.Message)
		}
		t.Errorf("标准周不应产生违规，实际产生 %d 条", len(report.Violations))
	}
	if report.Score.Global != 100 {
		t.Errorf("标准周评分应为100，实际 %.0f", report.Score.Global)
	}
	if report.Score.Label != "Excellent" {
		t.Errorf("标准周标签应为Excellent，实际 %s", report.Score.Label)
	}
	if len(report.ByEmployee) != 3 {
		t.Errorf("应有3个员工明细，实际 %d", len(report.ByEmployee))
	}
}

// TestPharmacieSemaineSurchargee 测试严重超载周
// 单个药师周一至周六 08:00-20:00（仅30分钟休息）
func TestPharmacieSemaineSurchargee(t *testing.T) {
	_, adjoint, _ := newPharmacie()

	semaine := []string{
		"2025-03-03", "2025-03-04", "2025-03-05",
		"2025-03-06", "2025-03-07", "2025-03-08",
	}
	shifts := weekShifts(adjoint, semaine, "08:00", "20:00", 30)

	limits := model.DefaultLegalLimits()
	ctx := compliance.NewContext("2025-03-03", "2025-03-09",
		[]*model.Employee{adjoint}, shifts, limits)

	checker := compliance.NewChecker(rules.Defaults(limits)...)
	report := checker.FullReport(ctx)

	t.Logf("评分: %.0f (%s), 违规数: %d",
		report.Score.Global, report.Score.Label, len(report.Violations))
	for _, v := range report.Violations {
		t.Logf("  [%s/%s] %s", v.Rule, v.Severity, v.Message)
	}

	// 每日 11.5h > 10h：6条；每周 69h > 48h：1条；
	// 每周最长连续休息 28h < 35h：1条；日间休息 12h ≥ 11h 合规
	byRule := map[compliance.RuleType]int{}
	for _, v := range report.Violations {
		byRule[v.Rule]++
	}

	if byRule[compliance.TypeDailyHours] != 6 {
		t.Errorf("应有6条日工时违规，实际 %d", byRule[compliance.TypeDailyHours])
	}
	if byRule[compliance.TypeWeeklyHours] != 1 {
		t.Errorf("应有1条周工时违规，实际 %d", byRule[compliance.TypeWeeklyHours])
	}
	if byRule[compliance.TypeWeeklyRest] != 1 {
		t.Errorf("应有1条周休违规，实际 %d", byRule[compliance.TypeWeeklyRest])
	}
	if byRule[compliance.TypeInterdayRest] != 0 {
		t.Errorf("日间休息12小时不应违规，实际 %d 条", byRule[compliance.TypeInterdayRest])
	}

	// 8条critical：100 - 8*15 截断为0
	if report.Score.Global != 0 {
		t.Errorf("超载周评分应截断为0，实际 %.0f", report.Score.Global)
	}
	if report.Score.Label != "Critique" {
		t.Errorf("超载周标签应为Critique，实际 %s", report.Score.Label)
	}
}

// TestPharmacieCouverturePharmacien 测试药师在岗覆盖缺口
// 营业 09:00-19:00，药师仅上午在岗，技师全天在岗不计入覆盖
func TestPharmacieCouverturePharmacien(t *testing.T) {
	titulaire, _, preparateur := newPharmacie()

	shifts := []*model.Shift{
		{
			BaseModel:  model.BaseModel{ID: uuid.New()},
			EmployeeID: titulaire.ID,
			Date:       "2025-03-03",
			StartTime:  "09:00",
			EndTime:    "14:00",
			Type:       model.ShiftTravail,
			Status:     model.StatusConfirme,
		},
		{
			BaseModel:  model.BaseModel{ID: uuid.New()},
			EmployeeID: preparateur.ID,
			Date:       "2025-03-03",
			StartTime:  "09:00",
			EndTime:    "19:00",
			Type:       model.ShiftTravail,
			Status:     model.StatusConfirme,
		},
	}

	openings := []model.OpeningHours{
		{Date: "2025-03-03", Intervals: []model.OpeningInterval{{Start: "09:00", End: "19:00"}}},
	}

	limits := model.DefaultLegalLimits()
	ctx := compliance.NewContext("2025-03-03", "2025-03-03",
		[]*model.Employee{titulaire, preparateur}, shifts, limits)
	ctx.SetOpenings(openings)

	checker := compliance.NewChecker(rules.Defaults(limits)...)
	report := checker.FullReport(ctx)

	var couverture []compliance.Violation
	for _, v := range report.Violations {
		if v.Rule == compliance.TypeCoverage {
			couverture = append(couverture, v)
		}
	}

	if len(couverture) != 1 {
		t.Fatalf("应有1条覆盖违规（14:00-19:00），实际 %d", len(couverture))
	}

	v := couverture[0]
	t.Logf("覆盖违规: %s (%.0f %s)", v.Message, v.Actual, v.Unit)

	if v.EmployeeID != uuid.Nil {
		t.Errorf("覆盖违规应为组织级（EmployeeID为零值），实际 %s", v.EmployeeID)
	}
	if v.Actual != 300 {
		t.Errorf("缺口时长应为300分钟，实际 %.0f", v.Actual)
	}

	// 组织级违规不应归入任何员工明细
	for _, ec := range report.ByEmployee {
		for _, ev := range ec.Violations {
			if ev.Rule == compliance.TypeCoverage {
				t.Errorf("覆盖违规不应出现在员工 %s 的明细中", ec.EmployeeName)
			}
		}
	}
}

// TestPharmacieCongesMaladie 测试休假与病假不计入工时
// 超长"班次"若为休假类型，不应触发任何工时违规
func TestPharmacieCongesMaladie(t *testing.T) {
	titulaire, _, _ := newPharmacie()

	shifts := []*model.Shift{
		{
			BaseModel:  model.BaseModel{ID: uuid.New()},
			EmployeeID: titulaire.ID,
			Date:       "2025-03-03",
			StartTime:  "08:00",
			EndTime:    "20:00",
			Type:       model.ShiftConge,
			Status:     model.StatusConfirme,
		},
		{
			BaseModel:  model.BaseModel{ID: uuid.New()},
			EmployeeID: titulaire.ID,
			Date:       "2025-03-04",
			StartTime:  "08:00",
			EndTime:    "20:00",
			Type:       model.ShiftMaladie,
			Status:     model.StatusConfirme,
		},
	}

	limits := model.DefaultLegalLimits()
	ctx := compliance.NewContext("2025-03-03", "2025-03-09",
		[]*model.Employee{titulaire}, shifts, limits)

	checker := compliance.NewChecker(rules.Defaults(limits)...)
	score := checker.QuickCheck(ctx)

	if score.Global != 100 {
		t.Errorf("休假与病假不应产生违规，评分应为100，实际 %.0f", score.Global)
	}
}
