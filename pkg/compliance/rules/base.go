// Package rules 提供内置劳动合规规则实现
package rules

import (
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/compliance"
)

// BaseRule 规则基类
type BaseRule struct {
	name     string
	typ      compliance.RuleType
	severity compliance.Severity
}

// NewBaseRule 创建基础规则
func NewBaseRule(name string, typ compliance.RuleType, severity compliance.Severity) *BaseRule {
	return &BaseRule{
		name:     name,
		typ:      typ,
		severity: severity,
	}
}

// Name 返回规则名称
func (r *BaseRule) Name() string { return r.name }

// Type 返回规则类型
func (r *BaseRule) Type() compliance.RuleType { return r.typ }

// Severity 返回严重级别
func (r *BaseRule) Severity() compliance.Severity { return r.severity }
