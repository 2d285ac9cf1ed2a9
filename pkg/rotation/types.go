package rotation

import (
	"github.com/google/uuid"
)

// 冲突类别
const (
	ConflictPlanning       = "planning"        // 当日已有普通排班
	ConflictGardeExistante = "garde_existante" // 当日已持有值班
)

// Assignment 值班分配结果
// 冲突一律通过 Result.Conflicts 上报，分配记录本身不携带冲突状态
type Assignment struct {
	Date         string    `json:"date"`
	Type         DutyType  `json:"type"`
	EmployeeID   uuid.UUID `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
}

// Conflict 分配冲突记录
// 每次被拒绝的分配尝试产生一条记录，全员被拒的日期以这些记录留痕
type Conflict struct {
	Date         string    `json:"date"`
	Type         DutyType  `json:"type"`
	EmployeeID   uuid.UUID `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Category     string    `json:"category"` // planning / garde_existante
	Description  string    `json:"description"`
}

// PharmacienStats 药师值班统计
// 每次调用从完整分配历史重算，引擎自身不持久化
type PharmacienStats struct {
	EmployeeID uuid.UUID        `json:"employee_id"`
	Name       string           `json:"name"`
	Total      int              `json:"total"`
	ByType     map[DutyType]int `json:"by_type"`
	LastDuty   string           `json:"last_duty,omitempty"` // asOf 之前最近的值班
	NextDuty   string           `json:"next_duty,omitempty"` // asOf 之后最近的值班
}

// Result 单次轮值生成的完整结果
// 非事务性：部分日期分配成功、部分冲突时两者一并返回
type Result struct {
	Assignments []Assignment      `json:"assignments"`
	Conflicts   []Conflict        `json:"conflicts"`
	Stats       []PharmacienStats `json:"stats"`
}
