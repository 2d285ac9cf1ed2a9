// Package compliance 定义劳动合规校验框架：规则接口、违规记录与评分
package compliance

import (
	"github.com/google/uuid"
)

// RuleType 规则类型标识
// 标识沿用上游应用的法语规则代码，报表消费方依赖这些字面量
type RuleType string

const (
	TypeWeeklyRest    RuleType = "repos_hebdomadaire"    // 每周连续休息
	TypeDailyHours    RuleType = "duree_journaliere"     // 每日工时上限
	TypeBreak         RuleType = "pause_obligatoire"     // 强制休息
	TypeInterdayRest  RuleType = "repos_quotidien"       // 日间休息
	TypeWeeklyHours   RuleType = "duree_hebdomadaire"    // 每周工时上限
	TypeCoverage      RuleType = "couverture_pharmacien" // 药师在岗覆盖
)

// Severity 违规严重级别
type Severity string

const (
	SeverityCritical Severity = "critical" // 严重（法定红线）
	SeverityWarning  Severity = "warning"  // 警告
	SeverityInfo     Severity = "info"     // 提示
)

// Violation 违规记录
// ID 为单次报告内的顺序编号，跨报告不唯一，保证同一快照重跑结果逐位一致
// 一经产生不可变更
type Violation struct {
	ID         string      `json:"id"`
	Rule       RuleType    `json:"rule"`
	Severity   Severity    `json:"severity"`
	EmployeeID uuid.UUID   `json:"employee_id,omitempty"` // 组织级违规为零值
	ShiftIDs   []uuid.UUID `json:"shift_ids,omitempty"`
	Dates      []string    `json:"dates,omitempty"`
	Message    string      `json:"message"` // 面向用户的法语描述
	Actual     float64     `json:"actual"`  // 实测值
	Limit      float64     `json:"limit"`   // 法定阈值
	Unit       string      `json:"unit"`    // h / min / pharmaciens
}

// Rule 合规规则接口
type Rule interface {
	// Name 返回规则名称（法语，用于展示）
	Name() string

	// Type 返回规则类型
	Type() RuleType

	// Severity 返回该规则产生违规的严重级别
	Severity() Severity

	// Evaluate 评估整个数据快照，返回违规列表（不含 ID，由 Checker 统一编号）
	// 评估顺序必须确定：员工按输入顺序，日期升序
	Evaluate(ctx *Context) []Violation
}
