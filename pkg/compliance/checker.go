package compliance

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/logger"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/model"
)

// Checker 合规校验器
// 违规编号计数器归属于单次 Run 调用，并发调用互不影响
type Checker struct {
	rules  []Rule
	logger *logger.ComplianceLogger
}

// NewChecker 创建校验器，规则按注册顺序评估
func NewChecker(rules ...Rule) *Checker {
	return &Checker{
		rules:  rules,
		logger: logger.NewComplianceLogger(),
	}
}

// Register 追加规则
func (c *Checker) Register(r Rule) {
	c.rules = append(c.rules, r)
}

// Rules 返回已注册规则
func (c *Checker) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Run 评估全部规则并按产生顺序编号违规
// 同一快照重跑产生逐位一致的违规集合
func (c *Checker) Run(ctx *Context) []Violation {
	violations := make([]Violation, 0)
	counter := 0

	for _, rule := range c.rules {
		for _, v := range rule.Evaluate(ctx) {
			counter++
			v.ID = fmt.Sprintf("VIO-%03d", counter)
			violations = append(violations, v)
			if v.Severity == SeverityCritical {
				c.logger.RuleViolation(string(v.Rule), v.Message)
			}
		}
	}

	return violations
}

// QuickCheck 快速检查：运行全部规则并直接归约为评分
// 与 FullReport 共享同一批规则原语，二者结论不可能分歧
func (c *Checker) QuickCheck(ctx *Context) ComplianceScore {
	return ScoreViolations(c.Run(ctx))
}

// Report 完整合规报告
type Report struct {
	Period      model.DateRange      `json:"period"`
	Score       ComplianceScore      `json:"score"`
	Violations  []Violation          `json:"violations"`
	ByEmployee  []EmployeeCompliance `json:"by_employee"`
	GeneratedAt time.Time            `json:"generated_at"`
}

// EmployeeCompliance 单员工合规明细
type EmployeeCompliance struct {
	EmployeeID   uuid.UUID       `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Score        ComplianceScore `json:"score"`
	Violations   []Violation     `json:"violations"`
}

// FullReport 生成完整报告：全局评分、完整违规列表、按评分升序的员工明细
// 组织级违规（药师覆盖）不计入任何单员工评分
func (c *Checker) FullReport(ctx *Context) *Report {
	start := time.Now()
	c.logger.StartReport(ctx.StartDate, ctx.EndDate, len(ctx.Employees), len(ctx.Shifts))

	violations := c.Run(ctx)

	byEmployee := make([]EmployeeCompliance, 0, len(ctx.Employees))
	for _, emp := range ctx.Employees {
		var own []Violation
		for _, v := range violations {
			if v.EmployeeID == emp.ID {
				own = append(own, v)
			}
		}
		byEmployee = append(byEmployee, EmployeeCompliance{
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			Score:        ScoreViolations(own),
			Violations:   own,
		})
	}

	// 评分升序：最差合规在前，平分保持输入顺序
	sort.SliceStable(byEmployee, func(i, j int) bool {
		return byEmployee[i].Score.Global < byEmployee[j].Score.Global
	})

	report := &Report{
		Period:      model.DateRange{StartDate: ctx.StartDate, EndDate: ctx.EndDate},
		Score:       ScoreViolations(violations),
		Violations:  violations,
		ByEmployee:  byEmployee,
		GeneratedAt: start,
	}

	c.logger.ReportComplete(report.Score.Global, len(violations), time.Since(start))
	return report
}
