package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/model"
)

// ShiftRepository 班次仓储
type ShiftRepository struct {
	db DB
}

// NewShiftRepository 创建班次仓储
func NewShiftRepository(db DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

// Create 创建班次
func (r *ShiftRepository) Create(ctx context.Context, s *model.Shift) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	query := `
		INSERT INTO shifts (
			id, pharmacy_id, employee_id, date, start_time, end_time,
			break_minutes, type, status, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.PharmacyID, s.EmployeeID, s.Date, s.StartTime, s.EndTime,
		s.BreakMinutes, s.Type, s.Status, s.Notes, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("创建班次失败: %w", err)
	}

	return nil
}

// GetByID 根据ID获取班次
func (r *ShiftRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Shift, error) {
	query := `
		SELECT id, pharmacy_id, employee_id, date, start_time, end_time,
			break_minutes, type, status, notes, created_at, updated_at
		FROM shifts
		WHERE id = $1 AND deleted_at IS NULL
	`

	s := &model.Shift{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.PharmacyID, &s.EmployeeID, &s.Date, &s.StartTime, &s.EndTime,
		&s.BreakMinutes, &s.Type, &s.Status, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("扫描班次数据失败: %w", err)
	}

	return s, nil
}

// Update 更新班次
func (r *ShiftRepository) Update(ctx context.Context, s *model.Shift) error {
	s.UpdatedAt = time.Now()

	query := `
		UPDATE shifts SET
			date = $2, start_time = $3, end_time = $4, break_minutes = $5,
			type = $6, status = $7, notes = $8, updated_at = $9
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		s.ID, s.Date, s.StartTime, s.EndTime, s.BreakMinutes,
		s.Type, s.Status, s.Notes, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("更新班次失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("班次不存在")
	}

	return nil
}

// Delete 软删除班次
func (r *ShiftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE shifts SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("删除班次失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("班次不存在")
	}

	return nil
}

// ListByPeriod 查询药房在指定窗口内的全部班次
// 返回顺序固定为日期、开始时刻升序，供合规评估使用
func (r *ShiftRepository) ListByPeriod(ctx context.Context, pharmacyID uuid.UUID, startDate, endDate string) ([]*model.Shift, error) {
	query := `
		SELECT id, pharmacy_id, employee_id, date, start_time, end_time,
			break_minutes, type, status, notes, created_at, updated_at
		FROM shifts
		WHERE pharmacy_id = $1 AND date >= $2 AND date <= $3 AND deleted_at IS NULL
		ORDER BY date ASC, start_time ASC
	`

	rows, err := r.db.QueryContext(ctx, query, pharmacyID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("查询班次失败: %w", err)
	}
	defer rows.Close()

	return r.scanShifts(rows)
}

// ListByEmployee 查询员工在指定窗口内的班次
func (r *ShiftRepository) ListByEmployee(ctx context.Context, employeeID uuid.UUID, startDate, endDate string) ([]*model.Shift, error) {
	query := `
		SELECT id, pharmacy_id, employee_id, date, start_time, end_time,
			break_minutes, type, status, notes, created_at, updated_at
		FROM shifts
		WHERE employee_id = $1 AND date >= $2 AND date <= $3 AND deleted_at IS NULL
		ORDER BY date ASC, start_time ASC
	`

	rows, err := r.db.QueryContext(ctx, query, employeeID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("查询班次失败: %w", err)
	}
	defer rows.Close()

	return r.scanShifts(rows)
}

// List 查询班次列表
func (r *ShiftRepository) List(ctx context.Context, filter ListFilter) ([]*model.Shift, int, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	conditions = append(conditions, "deleted_at IS NULL")

	if filter.PharmacyID != nil {
		conditions = append(conditions, fmt.Sprintf("pharmacy_id = $%d", argIndex))
		args = append(args, *filter.PharmacyID)
		argIndex++
	}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}

	if filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argIndex))
		args = append(args, filter.StartDate)
		argIndex++
	}

	if filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", argIndex))
		args = append(args, filter.EndDate)
		argIndex++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM shifts WHERE %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("查询总数失败: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, pharmacy_id, employee_id, date, start_time, end_time,
			break_minutes, type, status, notes, created_at, updated_at
		FROM shifts
		WHERE %s
		ORDER BY date ASC, start_time ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)

	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("查询列表失败: %w", err)
	}
	defer rows.Close()

	shifts, err := r.scanShifts(rows)
	if err != nil {
		return nil, 0, err
	}

	return shifts, total, nil
}

// scanShifts 扫描班次结果集
func (r *ShiftRepository) scanShifts(rows *sql.Rows) ([]*model.Shift, error) {
	var shifts []*model.Shift
	for rows.Next() {
		s := &model.Shift{}
		err := rows.Scan(
			&s.ID, &s.PharmacyID, &s.EmployeeID, &s.Date, &s.StartTime, &s.EndTime,
			&s.BreakMinutes, &s.Type, &s.Status, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("扫描班次数据失败: %w", err)
		}
		shifts = append(shifts, s)
	}
	return shifts, nil
}
