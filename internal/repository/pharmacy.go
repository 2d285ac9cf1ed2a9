package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/model"
)

// PharmacyRepository 药房仓储
type PharmacyRepository struct {
	db DB
}

// NewPharmacyRepository 创建药房仓储
func NewPharmacyRepository(db DB) *PharmacyRepository {
	return &PharmacyRepository{db: db}
}

// GetByID 根据ID获取药房
func (r *PharmacyRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Pharmacy, error) {
	query := `
		SELECT id, name, code, address, created_at, updated_at
		FROM pharmacies
		WHERE id = $1 AND deleted_at IS NULL
	`

	p := &model.Pharmacy{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Code, &p.Address, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("扫描药房数据失败: %w", err)
	}

	return p, nil
}

// ListOpeningHours 查询药房在指定窗口内的营业时间
func (r *PharmacyRepository) ListOpeningHours(ctx context.Context, pharmacyID uuid.UUID, startDate, endDate string) ([]model.OpeningHours, error) {
	query := `
		SELECT date, start_time, end_time
		FROM opening_hours
		WHERE pharmacy_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC, start_time ASC
	`

	rows, err := r.db.QueryContext(ctx, query, pharmacyID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("查询营业时间失败: %w", err)
	}
	defer rows.Close()

	// 同日多时段合并到一条记录
	byDate := make(map[string]*model.OpeningHours)
	var order []string
	for rows.Next() {
		var date, start, end string
		if err := rows.Scan(&date, &start, &end); err != nil {
			return nil, fmt.Errorf("扫描营业时间失败: %w", err)
		}
		if byDate[date] == nil {
			byDate[date] = &model.OpeningHours{Date: date}
			order = append(order, date)
		}
		byDate[date].Intervals = append(byDate[date].Intervals, model.OpeningInterval{Start: start, End: end})
	}

	out := make([]model.OpeningHours, 0, len(order))
	for _, date := range order {
		out = append(out, *byDate[date])
	}
	return out, nil
}
