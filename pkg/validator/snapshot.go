// Package validator 提供数据快照校验
// 在合规校验与轮值生成之前执行，拦截引擎无法解释的脏数据
package validator

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/model"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/timeutil"
)

// IssueType 问题类型
type IssueType string

const (
	IssueInvalidRole     IssueType = "role_invalide"     // 未知职位
	IssueInvalidShift    IssueType = "creneau_invalide"  // 班次字段非法
	IssueUnknownEmployee IssueType = "employe_inconnu"   // 班次引用未知员工
	IssueOverlap         IssueType = "chevauchement"     // 同员工同日班次重叠
)

// Issue 快照问题
// 与合规违规不同：问题描述的是数据本身不可用，而非排班不合法
type Issue struct {
	Type       IssueType   `json:"type"`
	EmployeeID uuid.UUID   `json:"employee_id,omitempty"`
	ShiftIDs   []uuid.UUID `json:"shift_ids,omitempty"`
	Date       string      `json:"date,omitempty"`
	Message    string      `json:"message"` // 面向用户的法语描述
}

// ValidateSnapshot 校验员工与班次快照
// 返回全部问题；空切片表示快照可用
func ValidateSnapshot(employees []*model.Employee, shifts []*model.Shift) []Issue {
	issues := []Issue{}

	known := make(map[uuid.UUID]*model.Employee, len(employees))
	for _, emp := range employees {
		known[emp.ID] = emp
		if !emp.Role.Valid() {
			issues = append(issues, Issue{
				Type:       IssueInvalidRole,
				EmployeeID: emp.ID,
				Message:    fmt.Sprintf("Rôle inconnu « %s » pour %s", emp.Role, emp.Name),
			})
		}
	}

	for _, s := range shifts {
		issues = append(issues, validateShift(s, known)...)
	}

	issues = append(issues, detectOverlaps(shifts, known)...)
	return issues
}

// validateShift 校验单个班次的字段
func validateShift(s *model.Shift, known map[uuid.UUID]*model.Employee) []Issue {
	var issues []Issue

	if !timeutil.ValidDate(s.Date) {
		issues = append(issues, Issue{
			Type:       IssueInvalidShift,
			EmployeeID: s.EmployeeID,
			ShiftIDs:   []uuid.UUID{s.ID},
			Date:       s.Date,
			Message:    fmt.Sprintf("Date invalide « %s »", s.Date),
		})
	}
	if !timeutil.ValidClock(s.StartTime) || !timeutil.ValidClock(s.EndTime) {
		issues = append(issues, Issue{
			Type:       IssueInvalidShift,
			EmployeeID: s.EmployeeID,
			ShiftIDs:   []uuid.UUID{s.ID},
			Date:       s.Date,
			Message:    fmt.Sprintf("Horaire invalide « %s-%s » le %s", s.StartTime, s.EndTime, s.Date),
		})
	}
	if s.BreakMinutes < 0 {
		issues = append(issues, Issue{
			Type:       IssueInvalidShift,
			EmployeeID: s.EmployeeID,
			ShiftIDs:   []uuid.UUID{s.ID},
			Date:       s.Date,
			Message:    fmt.Sprintf("Pause négative (%d min) le %s", s.BreakMinutes, s.Date),
		})
	}
	if _, ok := known[s.EmployeeID]; !ok {
		issues = append(issues, Issue{
			Type:       IssueUnknownEmployee,
			EmployeeID: s.EmployeeID,
			ShiftIDs:   []uuid.UUID{s.ID},
			Date:       s.Date,
			Message:    fmt.Sprintf("Créneau du %s rattaché à un employé inconnu", s.Date),
		})
	}

	return issues
}

// detectOverlaps 检测同员工同日的时间重叠
// 只检查计入工时的班次；跨午夜班次将终点折算到次日
func detectOverlaps(shifts []*model.Shift, known map[uuid.UUID]*model.Employee) []Issue {
	type key struct {
		emp  uuid.UUID
		date string
	}

	grouped := map[key][]*model.Shift{}
	for _, s := range shifts {
		if !s.IsWorked() {
			continue
		}
		if !timeutil.ValidClock(s.StartTime) || !timeutil.ValidClock(s.EndTime) {
			continue
		}
		k := key{emp: s.EmployeeID, date: s.Date}
		grouped[k] = append(grouped[k], s)
	}

	var issues []Issue
	for k, group := range grouped {
		if len(group) < 2 {
			continue
		}

		sort.Slice(group, func(i, j int) bool {
			return timeutil.ToMinutes(group[i].StartTime) < timeutil.ToMinutes(group[j].StartTime)
		})

		for i := 0; i < len(group)-1; i++ {
			a, b := group[i], group[i+1]
			aEnd := timeutil.ToMinutes(a.StartTime) + a.DurationMinutes()
			if timeutil.ToMinutes(b.StartTime) < aEnd {
				emp := known[k.emp]
				name := "employé inconnu"
				if emp != nil {
					name = emp.Name
				}
				issues = append(issues, Issue{
					Type:       IssueOverlap,
					EmployeeID: k.emp,
					ShiftIDs:   []uuid.UUID{a.ID, b.ID},
					Date:       k.date,
					Message: fmt.Sprintf("%s a deux créneaux qui se chevauchent le %s (%s-%s et %s-%s)",
						name, k.date, a.StartTime, a.EndTime, b.StartTime, b.EndTime),
				})
			}
		}
	}

	// 分组遍历顺序不确定，排序保证结果可复现
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Date != issues[j].Date {
			return issues[i].Date < issues[j].Date
		}
		return issues[i].Message < issues[j].Message
	})

	return issues
}
