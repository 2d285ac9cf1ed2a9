package rotation

import (
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/model"
)

// ComputeStats 从完整分配集合计算每名药师的值班统计
// assignments 为历史与本次新增的合并集合；asOf 为最近/下次值班的参照日期
// 每名合格药师都产生一条统计，即使本次未获得任何分配
func ComputeStats(eligible []*model.Employee, assignments []Assignment, asOf string) []PharmacienStats {
	stats := make([]PharmacienStats, 0, len(eligible))

	for _, emp := range eligible {
		s := PharmacienStats{
			EmployeeID: emp.ID,
			Name:       emp.Name,
			ByType:     make(map[DutyType]int),
		}

		for _, a := range assignments {
			if a.EmployeeID != emp.ID {
				continue
			}
			s.Total++
			s.ByType[a.Type]++

			if a.Date <= asOf && (s.LastDuty == "" || a.Date > s.LastDuty) {
				s.LastDuty = a.Date
			}
			if a.Date > asOf && (s.NextDuty == "" || a.Date < s.NextDuty) {
				s.NextDuty = a.Date
			}
		}

		stats = append(stats, s)
	}

	return stats
}
