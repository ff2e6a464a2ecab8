package repository

import (
	"context"
	"errors"

	"github.com/staffdesk/api/internal/models"
	appErr "github.com/staffdesk/api/pkg/errors"
	"gorm.io/gorm"
)

// EmployeeFilter is a conjunction of optional predicates over the employee set.
type EmployeeFilter struct {
	// Search matches name, email, department or position, case-insensitive
	// substring, OR across fields.
	Search string
	// Department is a case-insensitive substring match.
	Department string
	// Status is an exact match ("Active"/"Inactive").
	Status string
	// IncludeDeleted widens the base predicate from live rows to all rows.
	IncludeDeleted bool
}

// DepartmentCount is one row of the per-department breakdown.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

// EmployeeStats aggregates headcounts. The department breakdown covers
// non-deleted rows only.
type EmployeeStats struct {
	Total       int64             `json:"total_employees"`
	Active      int64             `json:"active_employees"`
	Inactive    int64             `json:"inactive_employees"`
	Deleted     int64             `json:"deleted_employees"`
	Departments []DepartmentCount `json:"departments"`
}

type EmployeeRepository interface {
	Create(ctx context.Context, e *models.Employee) error
	Save(ctx context.Context, e *models.Employee) error
	HardDelete(ctx context.Context, e *models.Employee) error
	// FindByID returns a live employee, or any employee when includeDeleted.
	FindByID(ctx context.Context, id uint, includeDeleted bool) (*models.Employee, error)
	// FindDeletedByID returns a soft-deleted employee only.
	FindDeletedByID(ctx context.Context, id uint) (*models.Employee, error)
	// List returns the filtered window ordered by name then id, plus the
	// total number of matching rows.
	List(ctx context.Context, f EmployeeFilter, limit, offset int) ([]models.Employee, int64, error)
	// EmailTaken reports whether another employee (excluding excludeID) holds
	// the email. liveOnly restricts the check to non-deleted rows.
	EmailTaken(ctx context.Context, email string, excludeID uint, liveOnly bool) (bool, error)
	Stats(ctx context.Context) (*EmployeeStats, error)
	// Transaction runs fn against a repository bound to one transaction;
	// any error rolls the whole transaction back.
	Transaction(ctx context.Context, fn func(EmployeeRepository) error) error
}

type employeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, e *models.Employee) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return appErr.Wrap(err, appErr.CodeConflict, "employee with this email already exists")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "create employee failed")
	}
	return nil
}

func (r *employeeRepository) Save(ctx context.Context, e *models.Employee) error {
	if err := r.db.WithContext(ctx).Save(e).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return appErr.Wrap(err, appErr.CodeConflict, "employee with this email already exists")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "save employee failed")
	}
	return nil
}

func (r *employeeRepository) HardDelete(ctx context.Context, e *models.Employee) error {
	res := r.db.WithContext(ctx).Delete(e)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "delete employee failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, "employee not found")
	}
	return nil
}

func (r *employeeRepository) FindByID(ctx context.Context, id uint, includeDeleted bool) (*models.Employee, error) {
	q := r.db.WithContext(ctx)
	if !includeDeleted {
		q = q.Where("is_deleted = ?", false)
	}
	var e models.Employee
	if err := q.First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErr.New(appErr.CodeNotFound, "employee not found")
		}
		return nil, appErr.Wrap(err, appErr.CodeInternal, "get employee failed")
	}
	return &e, nil
}

func (r *employeeRepository) FindDeletedByID(ctx context.Context, id uint) (*models.Employee, error) {
	var e models.Employee
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, true).
		First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErr.New(appErr.CodeNotFound, "deleted employee not found")
		}
		return nil, appErr.Wrap(err, appErr.CodeInternal, "get employee failed")
	}
	return &e, nil
}

func (r *employeeRepository) filtered(ctx context.Context, f EmployeeFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Employee{})
	if !f.IncludeDeleted {
		q = q.Where("is_deleted = ?", false)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where(
			"name ILIKE ? OR email ILIKE ? OR department ILIKE ? OR position ILIKE ?",
			like, like, like, like,
		)
	}
	if f.Department != "" {
		q = q.Where("department ILIKE ?", "%"+f.Department+"%")
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

func (r *employeeRepository) List(ctx context.Context, f EmployeeFilter, limit, offset int) ([]models.Employee, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, appErr.Wrap(err, appErr.CodeInternal, "count employees failed")
	}

	items := []models.Employee{}
	err := r.filtered(ctx, f).
		Order("name ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, appErr.Wrap(err, appErr.CodeInternal, "list employees failed")
	}
	return items, total, nil
}

func (r *employeeRepository) EmailTaken(ctx context.Context, email string, excludeID uint, liveOnly bool) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.Employee{}).
		Where("email = ? AND id <> ?", email, excludeID)
	if liveOnly {
		q = q.Where("is_deleted = ?", false)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, appErr.Wrap(err, appErr.CodeInternal, "email lookup failed")
	}
	return n > 0, nil
}

func (r *employeeRepository) Stats(ctx context.Context) (*EmployeeStats, error) {
	stats := &EmployeeStats{Departments: []DepartmentCount{}}

	model := func() *gorm.DB { return r.db.WithContext(ctx).Model(&models.Employee{}) }
	counts := []struct {
		dst *int64
		q   *gorm.DB
	}{
		{&stats.Total, model()},
		{&stats.Active, model().Where("status = ? AND is_deleted = ?", models.StatusActive, false)},
		{&stats.Inactive, model().Where("status = ? AND is_deleted = ?", models.StatusInactive, false)},
		{&stats.Deleted, model().Where("is_deleted = ?", true)},
	}
	for _, c := range counts {
		if err := c.q.Count(c.dst).Error; err != nil {
			return nil, appErr.Wrap(err, appErr.CodeInternal, "count employees failed")
		}
	}

	err := model().
		Select("department, count(id) AS count").
		Where("is_deleted = ?", false).
		Group("department").
		Order("department ASC").
		Scan(&stats.Departments).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "department stats failed")
	}
	return stats, nil
}

func (r *employeeRepository) Transaction(ctx context.Context, fn func(EmployeeRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&employeeRepository{db: tx})
	})
}
