package models

import "time"

// CompanyRole enumerates the platform role of a company account
type CompanyRole string

const (
	CompanyRoleSuperadmin CompanyRole = "superadmin"
	CompanyRoleStandard   CompanyRole = "standard"
)

// Company represents a collection agency (or the platform itself for superadmin accounts)
type Company struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Name        string      `gorm:"size:255;not null" json:"name"`
	Role        CompanyRole `gorm:"type:company_role;not null;default:'standard';index:idx_companies_role" json:"role"`
	Email       *string     `gorm:"size:255" json:"email,omitempty"`
	AgentNumber *string     `gorm:"size:20" json:"agent_number,omitempty"`
	IsActive    *bool       `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time   `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Company) TableName() string { return "companies" }

// CompanyFilter provides filter fields for repository queries
type CompanyFilter struct {
	ID       *uint
	Name     *string
	Role     *CompanyRole
	IsActive *bool
}
