// Package compliance 定义劳动合规校验框架
package compliance

import (
	"sort"

	"github.com/google/uuid"

	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/model"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/timeutil"
)

// Context 合规评估上下文
// 持有评估窗口内的只读数据快照与索引缓存，不做任何 I/O
type Context struct {
	StartDate string             `json:"start_date"`
	EndDate   string             `json:"end_date"`
	Employees []*model.Employee  `json:"employees"`
	Shifts    []*model.Shift     `json:"shifts"`
	Openings  []model.OpeningHours `json:"openings,omitempty"`
	Limits    model.LegalLimits  `json:"limits"`

	// 索引缓存
	employeeMap    map[uuid.UUID]*model.Employee
	shiftsByEmp    map[uuid.UUID][]*model.Shift
	openingsByDate map[string][]model.OpeningInterval
}

// NewContext 创建评估上下文并构建索引
// 快照由调用方提供，引擎不感知其新鲜度
func NewContext(startDate, endDate string, employees []*model.Employee, shifts []*model.Shift, limits model.LegalLimits) *Context {
	ctx := &Context{
		StartDate:      startDate,
		EndDate:        endDate,
		Employees:      employees,
		Shifts:         shifts,
		Limits:         limits,
		employeeMap:    make(map[uuid.UUID]*model.Employee),
		shiftsByEmp:    make(map[uuid.UUID][]*model.Shift),
		openingsByDate: make(map[string][]model.OpeningInterval),
	}

	for _, e := range employees {
		ctx.employeeMap[e.ID] = e
	}
	for _, s := range shifts {
		ctx.shiftsByEmp[s.EmployeeID] = append(ctx.shiftsByEmp[s.EmployeeID], s)
	}

	// 班次排序：日期升序，同日按开始时刻升序，保证评估顺序确定
	for _, list := range ctx.shiftsByEmp {
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].Date != list[j].Date {
				return list[i].Date < list[j].Date
			}
			return timeutil.ToMinutes(list[i].StartTime) < timeutil.ToMinutes(list[j].StartTime)
		})
	}

	return ctx
}

// SetOpenings 设置营业时间（覆盖校验使用）
func (c *Context) SetOpenings(openings []model.OpeningHours) {
	c.Openings = openings
	c.openingsByDate = make(map[string][]model.OpeningInterval)
	for _, o := range openings {
		c.openingsByDate[o.Date] = append(c.openingsByDate[o.Date], o.Intervals...)
	}
}

// GetEmployee 获取员工
func (c *Context) GetEmployee(id uuid.UUID) *model.Employee {
	return c.employeeMap[id]
}

// WorkedShifts 获取员工在窗口内计入工时的班次（已按日期、时刻排序）
func (c *Context) WorkedShifts(empID uuid.UUID) []*model.Shift {
	var out []*model.Shift
	for _, s := range c.shiftsByEmp[empID] {
		if s.IsWorked() {
			out = append(out, s)
		}
	}
	return out
}

// WorkedShiftsByDate 按日期分组员工计入工时的班次
func (c *Context) WorkedShiftsByDate(empID uuid.UUID) map[string][]*model.Shift {
	byDate := make(map[string][]*model.Shift)
	for _, s := range c.WorkedShifts(empID) {
		byDate[s.Date] = append(byDate[s.Date], s)
	}
	return byDate
}

// WorkedDates 获取员工的工作日期（升序去重）
func (c *Context) WorkedDates(empID uuid.UUID) []string {
	seen := make(map[string]bool)
	var dates []string
	for _, s := range c.WorkedShifts(empID) {
		if !seen[s.Date] {
			seen[s.Date] = true
			dates = append(dates, s.Date)
		}
	}
	sort.Strings(dates)
	return dates
}

// OpeningsOn 获取某日期的营业时段
func (c *Context) OpeningsOn(date string) []model.OpeningInterval {
	return c.openingsByDate[date]
}

// PharmacistShiftsOn 获取某日期药师角色的计入工时班次
func (c *Context) PharmacistShiftsOn(date string) []*model.Shift {
	var out []*model.Shift
	for _, s := range c.Shifts {
		if s.Date != date || !s.IsWorked() {
			continue
		}
		emp := c.employeeMap[s.EmployeeID]
		if emp == nil || !emp.Role.IsPharmacist() {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Dates 返回评估窗口内的全部日期
func (c *Context) Dates() []string {
	return timeutil.DatesBetween(c.StartDate, c.EndDate)
}
