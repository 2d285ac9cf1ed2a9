package rotation

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/logger"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/model"
)

// Engine 公平轮值引擎
// 对不可变输入快照的纯函数式计算，调用之间不保留任何状态
type Engine struct {
	logger *logger.RotationLogger
}

// NewEngine 创建轮值引擎
func NewEngine() *Engine {
	return &Engine{
		logger: logger.NewRotationLogger(),
	}
}

// Generate 生成窗口内的值班轮值
// shifts 为窗口内的普通排班（用于冲突检测），history 为既有值班分配，
// asOf 为统计的参照日期。无合格药师时返回空结果，不报错
func (e *Engine) Generate(cfg Config, employees []*model.Employee, shifts []*model.Shift, history []Assignment, asOf string) *Result {
	start := time.Now()

	eligible := eligiblePharmacists(employees)
	e.logger.StartRotation(cfg.StartDate, cfg.EndDate, len(eligible))

	result := &Result{
		Assignments: make([]Assignment, 0),
		Conflicts:   make([]Conflict, 0),
		Stats:       make([]PharmacienStats, 0),
	}
	if len(eligible) == 0 {
		return result
	}

	order := rotationOrder(eligible, history)

	// 冲突索引：普通排班日期、已持有值班日期（历史 + 本次新增）
	shiftDates := workedShiftDates(shifts)
	dutyDates := make(map[string]map[uuid.UUID]bool)
	for _, a := range history {
		markDuty(dutyDates, a.Date, a.EmployeeID)
	}

	// 轮值游标跨日期持续推进，每次尝试（无论成败）都前移一位
	cursor := 0

	for _, duty := range GenerateDutyDates(cfg) {
		assigned := false

		for attempt := 0; attempt < len(order); attempt++ {
			candidate := order[cursor%len(order)]
			cursor++

			if shiftDates[candidate.ID][duty.Date] {
				result.Conflicts = append(result.Conflicts, Conflict{
					Date:         duty.Date,
					Type:         duty.Type,
					EmployeeID:   candidate.ID,
					EmployeeName: candidate.Name,
					Category:     ConflictPlanning,
					Description: fmt.Sprintf(
						"%s a déjà un créneau planifié le %s", candidate.Name, duty.Date,
					),
				})
				e.logger.Conflict(duty.Date, ConflictPlanning, candidate.Name)
				continue
			}

			if dutyDates[duty.Date][candidate.ID] {
				result.Conflicts = append(result.Conflicts, Conflict{
					Date:         duty.Date,
					Type:         duty.Type,
					EmployeeID:   candidate.ID,
					EmployeeName: candidate.Name,
					Category:     ConflictGardeExistante,
					Description: fmt.Sprintf(
						"%s est déjà de garde le %s", candidate.Name, duty.Date,
					),
				})
				e.logger.Conflict(duty.Date, ConflictGardeExistante, candidate.Name)
				continue
			}

			result.Assignments = append(result.Assignments, Assignment{
				Date:         duty.Date,
				Type:         duty.Type,
				EmployeeID:   candidate.ID,
				EmployeeName: candidate.Name,
				StartTime:    duty.StartTime,
				EndTime:      duty.EndTime,
			})
			markDuty(dutyDates, duty.Date, candidate.ID)
			assigned = true
			break
		}

		if !assigned {
			e.logger.UnassignedDuty(duty.Date, string(duty.Type))
		}
	}

	result.Stats = ComputeStats(eligible, append(history, result.Assignments...), asOf)

	e.logger.RotationComplete(len(result.Assignments), len(result.Conflicts), time.Since(start))
	return result
}

// eligiblePharmacists 过滤可参与值班的药师，保持输入顺序
func eligiblePharmacists(employees []*model.Employee) []*model.Employee {
	var out []*model.Employee
	for _, e := range employees {
		if e.EligibleForGuard() {
			out = append(out, e)
		}
	}
	return out
}

// rotationOrder 按历史值班次数升序排序，平局保持输入顺序
func rotationOrder(eligible []*model.Employee, history []Assignment) []*model.Employee {
	counts := make(map[uuid.UUID]int)
	for _, a := range history {
		counts[a.EmployeeID]++
	}

	order := make([]*model.Employee, len(eligible))
	copy(order, eligible)
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i].ID] < counts[order[j].ID]
	})
	return order
}

// workedShiftDates 索引每名员工计入工时的排班日期
func workedShiftDates(shifts []*model.Shift) map[uuid.UUID]map[string]bool {
	out := make(map[uuid.UUID]map[string]bool)
	for _, s := range shifts {
		if !s.IsWorked() {
			continue
		}
		if out[s.EmployeeID] == nil {
			out[s.EmployeeID] = make(map[string]bool)
		}
		out[s.EmployeeID][s.Date] = true
	}
	return out
}

func markDuty(dutyDates map[string]map[uuid.UUID]bool, date string, id uuid.UUID) {
	if dutyDates[date] == nil {
		dutyDates[date] = make(map[uuid.UUID]bool)
	}
	dutyDates[date][id] = true
}
