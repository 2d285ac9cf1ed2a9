// Package compliance 定义劳动合规校验框架
package compliance

// 各严重级别的扣分值
const (
	PenaltyCritical = 15
	PenaltyWarning  = 5
	PenaltyInfo     = 1
)

// ComplianceScore 合规评分
// 由违规集合派生的无状态聚合，每次从头重算，从不修改
type ComplianceScore struct {
	Global        float64          `json:"global"` // 0-100
	Label         string           `json:"label"`
	CriticalCount int              `json:"critical_count"`
	WarningCount  int              `json:"warning_count"`
	InfoCount     int              `json:"info_count"`
	ByRule        map[RuleType]int `json:"by_rule"`
}

// ScoreViolations 从违规集合计算评分
// 全局与单员工评分使用同一公式，区别仅在于传入的违规子集
func ScoreViolations(violations []Violation) ComplianceScore {
	score := ComplianceScore{
		ByRule: make(map[RuleType]int),
	}

	for _, v := range violations {
		score.ByRule[v.Rule]++
		switch v.Severity {
		case SeverityCritical:
			score.CriticalCount++
		case SeverityWarning:
			score.WarningCount++
		case SeverityInfo:
			score.InfoCount++
		}
	}

	penalty := PenaltyCritical*score.CriticalCount +
		PenaltyWarning*score.WarningCount +
		PenaltyInfo*score.InfoCount

	global := 100 - float64(penalty)
	if global < 0 {
		global = 0
	}
	if global > 100 {
		global = 100
	}

	score.Global = global
	score.Label = scoreLabel(global)
	return score
}

// scoreLabel 评分区间标签（下界闭区间，互不重叠）
func scoreLabel(score float64) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 70:
		return "Bon"
	case score >= 50:
		return "À surveiller"
	case score >= 30:
		return "Non conforme"
	default:
		return "Critique"
	}
}
