package rotation

import (
	"math"
	"sort"
)

// FairnessMetrics 值班分布公平性指标
type FairnessMetrics struct {
	Gini     float64 `json:"gini"`      // 0=完全公平, 1=完全不公平
	MaxCount int     `json:"max_count"` // 单人最多值班数
	MinCount int     `json:"min_count"` // 单人最少值班数
	Spread   int     `json:"spread"`    // 极差
	Average  float64 `json:"average"`   // 人均值班数
}

// AnalyzeFairness 从统计集合计算值班分布公平性
func AnalyzeFairness(stats []PharmacienStats) FairnessMetrics {
	if len(stats) == 0 {
		return FairnessMetrics{}
	}

	counts := make([]float64, len(stats))
	total := 0
	minCount, maxCount := stats[0].Total, stats[0].Total
	for i, s := range stats {
		counts[i] = float64(s.Total)
		total += s.Total
		if s.Total < minCount {
			minCount = s.Total
		}
		if s.Total > maxCount {
			maxCount = s.Total
		}
	}

	return FairnessMetrics{
		Gini:     gini(counts),
		MaxCount: maxCount,
		MinCount: minCount,
		Spread:   maxCount - minCount,
		Average:  float64(total) / float64(len(stats)),
	}
}

// gini 计算基尼系数
func gini(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	if sum == 0 {
		return 0
	}

	g := 0.0
	for i, v := range sorted {
		g += (2*float64(i+1) - float64(n) - 1) * v
	}

	g = g / (float64(n) * sum)
	return math.Max(0, math.Min(1, g))
}
