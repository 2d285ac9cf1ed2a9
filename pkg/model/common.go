// Package model 定义合规校验与轮值引擎的核心数据模型
package model

import (
	"time"

	"github.com/google/uuid"
)

// BaseModel 基础模型（包含通用字段）
type BaseModel struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`
}

// NewBaseModel 创建新的基础模型
func NewBaseModel() BaseModel {
	now := time.Now()
	return BaseModel{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Pharmacy 药房/组织
type Pharmacy struct {
	BaseModel
	Name    string `json:"name" db:"name"`
	Code    string `json:"code" db:"code"`
	Address string `json:"address,omitempty" db:"address"`
}

// DateRange 日期范围
type DateRange struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

// OpeningInterval 营业时段（当日 [start,end) 区间）
type OpeningInterval struct {
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`   // HH:MM
}

// OpeningHours 某日期的营业时间，可含多个时段（午休分割为上下午两段）
type OpeningHours struct {
	Date      string            `json:"date" db:"date"` // YYYY-MM-DD
	Intervals []OpeningInterval `json:"intervals" db:"intervals"`
}
