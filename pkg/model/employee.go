// Package model 定义合规校验与轮值引擎的核心数据模型
package model

import (
	"github.com/google/uuid"
)

// Role 员工职位（闭合枚举）
// 角色判定全部通过枚举比较完成，禁止散落的字符串字面量
type Role string

const (
	RoleTitulaire   Role = "pharmacien_titulaire" // 执业药师（业主）
	RoleAdjoint     Role = "pharmacien_adjoint"   // 执业药师（雇员）
	RolePreparateur Role = "preparateur"          // 药剂技师
	RoleRayonniste  Role = "rayonniste"           // 理货员
	RoleApprenti    Role = "apprenti"             // 学徒
	RoleEtudiant    Role = "etudiant"             // 药学学生
)

// AllRoles 返回全部合法角色
func AllRoles() []Role {
	return []Role{
		RoleTitulaire,
		RoleAdjoint,
		RolePreparateur,
		RoleRayonniste,
		RoleApprenti,
		RoleEtudiant,
	}
}

// Valid 检查角色是否在闭合集合内
func (r Role) Valid() bool {
	switch r {
	case RoleTitulaire, RoleAdjoint, RolePreparateur,
		RoleRayonniste, RoleApprenti, RoleEtudiant:
		return true
	}
	return false
}

// IsPharmacist 检查角色是否为执业药师类别
// 只有执业药师可承担夜间/周日/节假日值班并计入在岗覆盖
func (r Role) IsPharmacist() bool {
	return r == RoleTitulaire || r == RoleAdjoint
}

// Employee 员工
// 由上游应用拥有，引擎只读
type Employee struct {
	BaseModel
	PharmacyID    uuid.UUID `json:"pharmacy_id" db:"pharmacy_id"`
	Name          string    `json:"name" db:"name"`
	Role          Role      `json:"role" db:"role"`
	ContractHours float64   `json:"contract_hours" db:"contract_hours"` // 合同周工时
	Active        bool      `json:"active" db:"active"`
	Email         string    `json:"email,omitempty" db:"email"`
	Phone         string    `json:"phone,omitempty" db:"phone"`
}

// IsActive 检查员工是否在职
func (e *Employee) IsActive() bool {
	return e.Active
}

// EligibleForGuard 检查员工是否可参与值班轮值
func (e *Employee) EligibleForGuard() bool {
	return e.Active && e.Role.IsPharmacist()
}
