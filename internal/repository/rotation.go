package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/rotation"
)

// RotationRepository 值班历史仓储
// 只读：引擎结果的持久化归上游应用，此处仅提供冲突检测与统计所需的历史
type RotationRepository struct {
	db DB
}

// NewRotationRepository 创建值班历史仓储
func NewRotationRepository(db DB) *RotationRepository {
	return &RotationRepository{db: db}
}

// ListHistory 查询药房的既有值班分配历史
func (r *RotationRepository) ListHistory(ctx context.Context, pharmacyID uuid.UUID) ([]rotation.Assignment, error) {
	query := `
		SELECT g.date, g.type, g.employee_id, e.name, g.start_time, g.end_time
		FROM gardes g
		JOIN employees e ON e.id = g.employee_id
		WHERE g.pharmacy_id = $1 AND g.deleted_at IS NULL
		ORDER BY g.date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, pharmacyID)
	if err != nil {
		return nil, fmt.Errorf("查询值班历史失败: %w", err)
	}
	defer rows.Close()

	return scanAssignments(rows)
}

// ListHolidays 查询窗口内配置的法定节假日
func (r *RotationRepository) ListHolidays(ctx context.Context, startDate, endDate string) ([]string, error) {
	query := `
		SELECT date FROM holidays
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("查询节假日失败: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("扫描节假日失败: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// scanAssignments 扫描值班分配结果集
func scanAssignments(rows *sql.Rows) ([]rotation.Assignment, error) {
	var out []rotation.Assignment
	for rows.Next() {
		var a rotation.Assignment
		err := rows.Scan(&a.Date, &a.Type, &a.EmployeeID, &a.EmployeeName, &a.StartTime, &a.EndTime)
		if err != nil {
			return nil, fmt.Errorf("扫描值班数据失败: %w", err)
		}
		out = append(out, a)
	}
	return out, nil
}
