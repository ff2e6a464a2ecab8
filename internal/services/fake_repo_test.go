package services

import (
	"context"
	"sort"
	"strings"

	"github.com/staffdesk/api/internal/models"
	"github.com/staffdesk/api/internal/repository"
	appErr "github.com/staffdesk/api/pkg/errors"
)

// fakeEmployeeRepo is an in-memory EmployeeRepository with the same filter
// semantics as the SQL implementation. Transactions snapshot the map and
// restore it when the callback errors.
type fakeEmployeeRepo struct {
	rows   map[uint]models.Employee
	nextID uint
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{rows: map[uint]models.Employee{}, nextID: 1}
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e *models.Employee) error {
	for _, row := range f.rows {
		if row.Email == e.Email {
			return appErr.New(appErr.CodeConflict, "employee with this email already exists")
		}
	}
	e.ID = f.nextID
	f.nextID++
	f.rows[e.ID] = *e
	return nil
}

func (f *fakeEmployeeRepo) Save(ctx context.Context, e *models.Employee) error {
	if _, ok := f.rows[e.ID]; !ok {
		return appErr.New(appErr.CodeNotFound, "employee not found")
	}
	f.rows[e.ID] = *e
	return nil
}

func (f *fakeEmployeeRepo) HardDelete(ctx context.Context, e *models.Employee) error {
	if _, ok := f.rows[e.ID]; !ok {
		return appErr.New(appErr.CodeNotFound, "employee not found")
	}
	delete(f.rows, e.ID)
	return nil
}

func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id uint, includeDeleted bool) (*models.Employee, error) {
	row, ok := f.rows[id]
	if !ok || (!includeDeleted && row.IsDeleted) {
		return nil, appErr.New(appErr.CodeNotFound, "employee not found")
	}
	e := row
	return &e, nil
}

func (f *fakeEmployeeRepo) FindDeletedByID(ctx context.Context, id uint) (*models.Employee, error) {
	row, ok := f.rows[id]
	if !ok || !row.IsDeleted {
		return nil, appErr.New(appErr.CodeNotFound, "deleted employee not found")
	}
	e := row
	return &e, nil
}

func matches(e models.Employee, flt repository.EmployeeFilter) bool {
	if !flt.IncludeDeleted && e.IsDeleted {
		return false
	}
	if flt.Search != "" {
		s := strings.ToLower(flt.Search)
		if !strings.Contains(strings.ToLower(e.Name), s) &&
			!strings.Contains(strings.ToLower(e.Email), s) &&
			!strings.Contains(strings.ToLower(e.Department), s) &&
			!strings.Contains(strings.ToLower(e.Position), s) {
			return false
		}
	}
	if flt.Department != "" && !strings.Contains(strings.ToLower(e.Department), strings.ToLower(flt.Department)) {
		return false
	}
	if flt.Status != "" && e.Status != flt.Status {
		return false
	}
	return true
}

func (f *fakeEmployeeRepo) List(ctx context.Context, flt repository.EmployeeFilter, limit, offset int) ([]models.Employee, int64, error) {
	all := []models.Employee{}
	for _, e := range f.rows {
		if matches(e, flt) {
			all = append(all, e)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].ID < all[j].ID
	})
	total := int64(len(all))
	if offset >= len(all) {
		return []models.Employee{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeEmployeeRepo) EmailTaken(ctx context.Context, email string, excludeID uint, liveOnly bool) (bool, error) {
	for _, e := range f.rows {
		if e.ID == excludeID || e.Email != email {
			continue
		}
		if liveOnly && e.IsDeleted {
			continue
		}
		return true, nil
	}
	return false, nil
}

func (f *fakeEmployeeRepo) Stats(ctx context.Context) (*repository.EmployeeStats, error) {
	stats := &repository.EmployeeStats{Departments: []repository.DepartmentCount{}}
	byDept := map[string]int64{}
	for _, e := range f.rows {
		stats.Total++
		switch {
		case e.IsDeleted:
			stats.Deleted++
		case e.Status == models.StatusActive:
			stats.Active++
		default:
			stats.Inactive++
		}
		if !e.IsDeleted {
			byDept[e.Department]++
		}
	}
	depts := make([]string, 0, len(byDept))
	for d := range byDept {
		depts = append(depts, d)
	}
	sort.Strings(depts)
	for _, d := range depts {
		stats.Departments = append(stats.Departments, repository.DepartmentCount{Department: d, Count: byDept[d]})
	}
	return stats, nil
}

func (f *fakeEmployeeRepo) Transaction(ctx context.Context, fn func(repository.EmployeeRepository) error) error {
	snapshot := make(map[uint]models.Employee, len(f.rows))
	for k, v := range f.rows {
		snapshot[k] = v
	}
	if err := fn(f); err != nil {
		f.rows = snapshot
		return err
	}
	return nil
}

var _ repository.EmployeeRepository = (*fakeEmployeeRepo)(nil)
