package scenario

import (
	"testing"

	"github.com/google/uuid"

	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/model"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/rotation"
)

// newPharmaciens 构造n个可值班药师
func newPharmaciens(names ...string) []*model.Employee {
	var out []*model.Employee
	for i, name := range names {
		role := model.RoleAdjoint
		if i == 0 {
			role = model.RoleTitulaire
		}
		out = append(out, &model.Employee{
			BaseModel: model.BaseModel{ID: uuid.New()},
			Name:      name,
			Role:      role,
			Active:    true,
		})
	}
	return out
}

// TestGardeMoisComplet 测试整月周日值班轮值
// 2025年3月含5个周日，3个药师轮流，值班数差距不得超过1
func TestGardeMoisComplet(t *testing.T) {
	pharmaciens := newPharmaciens("Dr Martin", "Dr Lefebvre", "Dr Bernard")

	cfg := rotation.DefaultConfig("2025-03-01", "2025-03-31")
	cfg.NightEnabled = false
	cfg.HolidayEnabled = false

	engine := rotation.NewEngine()
	result := engine.Generate(cfg, pharmaciens, nil, nil, "2025-03-31")

	t.Logf("分配数: %d, 冲突数: %d", len(result.Assignments), len(result.Conflicts))
	for _, a := range result.Assignments {
		t.Logf("  %s %s -> %s", a.Date, a.Type, a.EmployeeName)
	}

	if len(result.Assignments) != 5 {
		t.Fatalf("3月应有5个周日值班，实际 %d", len(result.Assignments))
	}
	if len(result.Conflicts) != 0 {
		t.Errorf("无班表无历史时不应产生冲突，实际 %d", len(result.Conflicts))
	}

	counts := map[uuid.UUID]int{}
	for _, a := range result.Assignments {
		counts[a.EmployeeID]++
	}
	min, max := 99, 0
	for _, p := range pharmaciens {
		n := counts[p.ID]
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}
	if max-min > 1 {
		t.Errorf("值班数差距应不超过1，实际 min=%d max=%d", min, max)
	}

	fairness := rotation.AnalyzeFairness(result.Stats)
	t.Logf("公平性: Gini=%.3f, spread=%d, avg=%.2f",
		fairness.Gini, fairness.Spread, fairness.Average)
	if fairness.Gini > 0.2 {
		t.Errorf("轮流分配的Gini系数应接近0，实际 %.3f", fairness.Gini)
	}
}

// TestGardeFerieEtDimanche 测试节假日优先于周日
// 复活节周一（2025-04-21）为节假日，当周周日照常为周日值班
func TestGardeFerieEtDimanche(t *testing.T) {
	pharmaciens := newPharmaciens("Dr Martin", "Dr Lefebvre")

	cfg := rotation.DefaultConfig("2025-04-20", "2025-04-21")
	cfg.NightEnabled = false
	cfg.Holidays = []string{"2025-04-21"}

	engine := rotation.NewEngine()
	result := engine.Generate(cfg, pharmaciens, nil, nil, "2025-04-21")

	if len(result.Assignments) != 2 {
		t.Fatalf("应有2个值班（周日+节假日），实际 %d", len(result.Assignments))
	}

	types := map[string]rotation.DutyType{}
	for _, a := range result.Assignments {
		types[a.Date] = a.Type
	}
	if types["2025-04-20"] != rotation.DutyDimanche {
		t.Errorf("2025-04-20应为周日值班，实际 %s", types["2025-04-20"])
	}
	if types["2025-04-21"] != rotation.DutyFerie {
		t.Errorf("2025-04-21应为节假日值班，实际 %s", types["2025-04-21"])
	}
}

// TestGardeHistoriquePondere 测试历史值班数影响轮值起点
// 历史上值班多的药师应排在后面
func TestGardeHistoriquePondere(t *testing.T) {
	pharmaciens := newPharmaciens("Dr Martin", "Dr Lefebvre")
	surcharge := pharmaciens[0]
	repose := pharmaciens[1]

	history := []rotation.Assignment{
		{Date: "2025-02-02", Type: rotation.DutyDimanche, EmployeeID: surcharge.ID, EmployeeName: surcharge.Name},
		{Date: "2025-02-09", Type: rotation.DutyDimanche, EmployeeID: surcharge.ID, EmployeeName: surcharge.Name},
	}

	cfg := rotation.DefaultConfig("2025-03-02", "2025-03-02")
	cfg.NightEnabled = false
	cfg.HolidayEnabled = false

	engine := rotation.NewEngine()
	result := engine.Generate(cfg, pharmaciens, nil, history, "2025-03-02")

	if len(result.Assignments) != 1 {
		t.Fatalf("应有1个值班，实际 %d", len(result.Assignments))
	}
	if result.Assignments[0].EmployeeID != repose.ID {
		t.Errorf("历史值班少的药师应优先，期望 %s，实际 %s",
			repose.Name, result.Assignments[0].EmployeeName)
	}
}

// TestGardeConflitPlanning 测试排班冲突记录
// 当日已有班次的药师被跳过，冲突被记录并由下一位顶上
func TestGardeConflitPlanning(t *testing.T) {
	pharmaciens := newPharmaciens("Dr Martin", "Dr Lefebvre")
	occupe := pharmaciens[0]

	shifts := []*model.Shift{
		{
			BaseModel:  model.BaseModel{ID: uuid.New()},
			EmployeeID: occupe.ID,
			Date:       "2025-03-02",
			StartTime:  "09:00",
			EndTime:    "17:00",
			Type:       model.ShiftTravail,
			Status:     model.StatusConfirme,
		},
	}

	cfg := rotation.DefaultConfig("2025-03-02", "2025-03-02")
	cfg.NightEnabled = false
	cfg.HolidayEnabled = false

	engine := rotation.NewEngine()
	result := engine.Generate(cfg, pharmaciens, shifts, nil, "2025-03-02")

	if len(result.Assignments) != 1 {
		t.Fatalf("应有1个值班，实际 %d", len(result.Assignments))
	}
	if result.Assignments[0].EmployeeID == occupe.ID {
		t.Errorf("有排班冲突的药师不应被分配")
	}

	if len(result.Conflicts) != 1 {
		t.Fatalf("应记录1条冲突，实际 %d", len(result.Conflicts))
	}
	c := result.Conflicts[0]
	t.Logf("冲突: [%s] %s", c.Category, c.Description)
	if c.Category != rotation.ConflictPlanning {
		t.Errorf("冲突类别应为planning，实际 %s", c.Category)
	}
}

// TestGardeStatistiques 测试值班统计与参照日期
func TestGardeStatistiques(t *testing.T) {
	pharmaciens := newPharmaciens("Dr Martin", "Dr Lefebvre", "Dr Bernard")

	cfg := rotation.DefaultConfig("2025-03-01", "2025-03-31")
	cfg.NightEnabled = false
	cfg.HolidayEnabled = false

	engine := rotation.NewEngine()
	result := engine.Generate(cfg, pharmaciens, nil, nil, "2025-03-15")

	// asOf=2025-03-15：3月2日与9日已过，16/23/30为将来
	for _, s := range result.Stats {
		t.Logf("%s: total=%d last=%s next=%s", s.Name, s.Total, s.LastDuty, s.NextDuty)
		if s.LastDuty > "2025-03-15" {
			t.Errorf("%s 的最近值班不应晚于参照日期", s.Name)
		}
		if s.NextDuty != "" && s.NextDuty <= "2025-03-15" {
			t.Errorf("%s 的下次值班应晚于参照日期", s.Name)
		}
	}

	if len(result.Stats) != 3 {
		t.Errorf("应有3条统计记录，实际 %d", len(result.Stats))
	}
}
