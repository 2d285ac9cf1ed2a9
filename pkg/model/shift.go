// Package model 定义合规校验与轮值引擎的核心数据模型
package model

import (
	"github.com/google/uuid"

	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/timeutil"
)

// ShiftType 班次类型（闭合枚举）
type ShiftType string

const (
	ShiftTravail   ShiftType = "travail"   // 普通工作
	ShiftConge     ShiftType = "conge"     // 休假
	ShiftMaladie   ShiftType = "maladie"   // 病假
	ShiftFormation ShiftType = "formation" // 培训
	ShiftGarde     ShiftType = "garde"     // 值班
	ShiftAstreinte ShiftType = "astreinte" // 待命
)

// CountsAsWork 检查该类型是否计入工时约束
// 休假与病假不计入工时运算，但在覆盖分析中按缺席处理
func (t ShiftType) CountsAsWork() bool {
	return t != ShiftConge && t != ShiftMaladie
}

// ShiftStatus 班次生命周期状态
type ShiftStatus string

const (
	StatusPlanifie ShiftStatus = "planifie" // 已排班
	StatusConfirme ShiftStatus = "confirme" // 已确认
	StatusAnnule   ShiftStatus = "annule"   // 已取消
)

// Shift 工作班次
type Shift struct {
	BaseModel
	PharmacyID   uuid.UUID   `json:"pharmacy_id" db:"pharmacy_id"`
	EmployeeID   uuid.UUID   `json:"employee_id" db:"employee_id"`
	Date         string      `json:"date" db:"date"`               // YYYY-MM-DD
	StartTime    string      `json:"start_time" db:"start_time"`   // HH:MM
	EndTime      string      `json:"end_time" db:"end_time"`       // HH:MM
	BreakMinutes int         `json:"break_minutes" db:"break_minutes"`
	Type         ShiftType   `json:"type" db:"type"`
	Status       ShiftStatus `json:"status" db:"status"`
	Notes        string      `json:"notes,omitempty" db:"notes"`
}

// DurationMinutes 返回班次时长（分钟），支持跨午夜
func (s *Shift) DurationMinutes() int {
	return timeutil.DurationMinutes(s.StartTime, s.EndTime)
}

// EffectiveMinutes 返回有效工作分钟数（扣除休息，下限为 0）
func (s *Shift) EffectiveMinutes() int {
	return timeutil.EffectiveMinutes(s.StartTime, s.EndTime, s.BreakMinutes)
}

// EffectiveHours 返回有效工时（小时）
func (s *Shift) EffectiveHours() float64 {
	return float64(s.EffectiveMinutes()) / 60.0
}

// IsCancelled 检查班次是否已取消
func (s *Shift) IsCancelled() bool {
	return s.Status == StatusAnnule
}

// IsWorked 检查班次是否计入工时约束
// 已取消的班次与休假/病假一律不计入
func (s *Shift) IsWorked() bool {
	return !s.IsCancelled() && s.Type.CountsAsWork()
}
