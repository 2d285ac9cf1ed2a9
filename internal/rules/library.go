// Package rules 法定规则目录
package rules

// RuleParam 规则参数定义
type RuleParam struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // int, float, string, bool
	Description string `json:"description"`
	Default     string `json:"default,omitempty"`
	Min         string `json:"min,omitempty"`
	Max         string `json:"max,omitempty"`
}

// RuleDefinition 规则定义
type RuleDefinition struct {
	Name        string      `json:"name"`
	DisplayName string      `json:"display_name"`
	Severity    string      `json:"severity"` // critical, warning, info
	Category    string      `json:"category"`
	Description string      `json:"description"`
	LegalRef    string      `json:"legal_ref,omitempty"` // 法条出处
	Params      []RuleParam `json:"params"`
}

// LibraryResponse 规则库响应
type LibraryResponse struct {
	Library []RuleDefinition `json:"library"`
}

// GetLibrary 获取完整的法定规则库
func GetLibrary() []RuleDefinition {
	return []RuleDefinition{
		{
			Name:        "repos_hebdomadaire",
			DisplayName: "Repos hebdomadaire",
			Severity:    "critical",
			Category:    "休息保障",
			Description: "员工每周至少一段不低于 35 小时的连续休息；一周工作不足六天时默认满足。",
			LegalRef:    "Code du travail L3132-2",
			Params: []RuleParam{
				{Name: "min_hours", Type: "float", Description: "最短连续休息(小时)", Default: "35", Min: "24", Max: "48"},
			},
		},
		{
			Name:        "duree_journaliere",
			DisplayName: "Durée journalière maximale",
			Severity:    "critical",
			Category:    "工时限制",
			Description: "员工单日有效工时（扣除休息）不得超过上限。",
			LegalRef:    "Code du travail L3121-18",
			Params: []RuleParam{
				{Name: "max_hours", Type: "float", Description: "每日工时上限(小时)", Default: "10", Min: "6", Max: "12"},
			},
		},
		{
			Name:        "pause_obligatoire",
			DisplayName: "Pause obligatoire",
			Severity:    "warning",
			Category:    "休息保障",
			Description: "单日工时超过阈值时必须存在一段达标的班内休息或班间空档。",
			LegalRef:    "Code du travail L3121-16",
			Params: []RuleParam{
				{Name: "threshold_hours", Type: "float", Description: "触发阈值(小时)", Default: "6", Min: "4", Max: "8"},
				{Name: "min_break_minutes", Type: "int", Description: "最短休息(分钟)", Default: "20", Min: "15", Max: "60"},
			},
		},
		{
			Name:        "repos_quotidien",
			DisplayName: "Repos quotidien",
			Severity:    "critical",
			Category:    "休息保障",
			Description: "相邻两个工作日之间的休息不得低于下限；只校验日历上严格相邻的工作日。",
			LegalRef:    "Code du travail L3131-1",
			Params: []RuleParam{
				{Name: "min_hours", Type: "float", Description: "最短休息(小时)", Default: "11", Min: "9", Max: "14"},
			},
		},
		{
			Name:        "duree_hebdomadaire",
			DisplayName: "Durée hebdomadaire maximale",
			Severity:    "critical",
			Category:    "工时限制",
			Description: "员工自然周（周一至周日）内有效工时不得超过上限。",
			LegalRef:    "Code du travail L3121-20",
			Params: []RuleParam{
				{Name: "max_hours", Type: "float", Description: "每周工时上限(小时)", Default: "48", Min: "35", Max: "60"},
			},
		},
		{
			Name:        "couverture_pharmacien",
			DisplayName: "Couverture pharmacien",
			Severity:    "critical",
			Category:    "在岗覆盖",
			Description: "营业时段内每个时刻至少需要指定数量的药师（titulaire 或 adjoint）在岗。",
			LegalRef:    "Code de la santé publique L5125-20",
			Params: []RuleParam{
				{Name: "min_pharmacists", Type: "int", Description: "最少药师数", Default: "1", Min: "1", Max: "3"},
				{Name: "step_minutes", Type: "int", Description: "覆盖扫描步长(分钟)", Default: "15", Min: "5", Max: "60"},
			},
		},
	}
}
