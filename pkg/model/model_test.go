package model

import "testing"

func TestRole_IsPharmacist(t *testing.T) {
	tests := []struct {
		name string
		role Role
		want bool
	}{
		{"业主药师", RoleTitulaire, true},
		{"雇员药师", RoleAdjoint, true},
		{"药剂技师", RolePreparateur, false},
		{"理货员", RoleRayonniste, false},
		{"学徒", RoleApprenti, false},
		{"药学学生", RoleEtudiant, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.role.IsPharmacist(); got != tt.want {
				t.Errorf("IsPharmacist() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range AllRoles() {
		if !r.Valid() {
			t.Errorf("角色 %s 应合法", r)
		}
	}
	if Role("pharmacien").Valid() {
		t.Error("集合外字符串不应合法")
	}
}

func TestShiftType_CountsAsWork(t *testing.T) {
	tests := []struct {
		typ  ShiftType
		want bool
	}{
		{ShiftTravail, true},
		{ShiftConge, false},
		{ShiftMaladie, false},
		{ShiftFormation, true},
		{ShiftGarde, true},
		{ShiftAstreinte, true},
	}

	for _, tt := range tests {
		if got := tt.typ.CountsAsWork(); got != tt.want {
			t.Errorf("CountsAsWork(%s) = %v, want %v", tt.typ, got, tt.want)
		}
	}
}

func TestShift_EffectiveHours(t *testing.T) {
	s := &Shift{StartTime: "07:30", EndTime: "19:30", BreakMinutes: 60}
	if got := s.EffectiveHours(); got != 11 {
		t.Errorf("EffectiveHours() = %v, want 11", got)
	}

	// 跨午夜班次
	night := &Shift{StartTime: "20:00", EndTime: "08:00", BreakMinutes: 0}
	if got := night.EffectiveHours(); got != 12 {
		t.Errorf("跨午夜 EffectiveHours() = %v, want 12", got)
	}
}

func TestShift_IsWorked(t *testing.T) {
	work := &Shift{Type: ShiftTravail, Status: StatusPlanifie}
	if !work.IsWorked() {
		t.Error("普通班次应计入工时")
	}

	leave := &Shift{Type: ShiftConge, Status: StatusConfirme}
	if leave.IsWorked() {
		t.Error("休假不应计入工时")
	}

	cancelled := &Shift{Type: ShiftTravail, Status: StatusAnnule}
	if cancelled.IsWorked() {
		t.Error("已取消班次不应计入工时")
	}
}

func TestDefaultLegalLimits_Merge(t *testing.T) {
	limits := DefaultLegalLimits()
	merged := limits.Merge(LegalLimits{MaxDailyHours: 12, MinPharmacists: 2})

	if merged.MaxDailyHours != 12 {
		t.Errorf("覆盖后的每日上限 = %v, want 12", merged.MaxDailyHours)
	}
	if merged.MinPharmacists != 2 {
		t.Errorf("覆盖后的最少药师数 = %v, want 2", merged.MinPharmacists)
	}
	if merged.MaxWeeklyHours != 48 {
		t.Errorf("未覆盖项应保持缺省, got %v", merged.MaxWeeklyHours)
	}
}
