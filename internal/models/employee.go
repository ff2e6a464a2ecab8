package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee statuses.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Employee is the managed HR entity. Soft deletion is explicit (is_deleted +
// deleted_at) rather than gorm.DeletedAt, so listings can opt into deleted rows
// with a plain predicate instead of Unscoped queries.
type Employee struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	Name               string          `gorm:"size:100;not null" json:"name"`
	Email              string          `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Phone              *string         `gorm:"size:20" json:"phone"`
	Address            *string         `gorm:"size:200" json:"address"`
	Department         string          `gorm:"size:50;index;not null;index:ix_employee_dept_status,priority:1" json:"department"`
	Position           string          `gorm:"size:50;not null" json:"position"`
	Salary             decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"salary"`
	HireDate           time.Time       `gorm:"type:date;not null" json:"hire_date"`
	Status             string          `gorm:"size:20;not null;default:Active;index;index:ix_employee_dept_status,priority:2;index:ix_employee_active,priority:2" json:"status"`
	ProfilePicturePath *string         `gorm:"size:200" json:"profile_picture_path"`

	IsDeleted bool       `gorm:"not null;default:false;index;index:ix_employee_active,priority:1" json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsActive reports whether the employee is active and not soft-deleted.
func (e *Employee) IsActive() bool {
	return !e.IsDeleted && e.Status == StatusActive
}

// SoftDelete marks the employee logically absent. Reversible via Restore.
func (e *Employee) SoftDelete(now time.Time) {
	e.IsDeleted = true
	e.DeletedAt = &now
	e.Status = StatusInactive
}

// Restore reverses a soft delete. Email uniqueness against live rows must be
// re-checked by the caller before persisting.
func (e *Employee) Restore() {
	e.IsDeleted = false
	e.DeletedAt = nil
	e.Status = StatusActive
}
