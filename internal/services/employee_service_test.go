package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/staffdesk/api/internal/models"
	"github.com/staffdesk/api/internal/repository"
	appErr "github.com/staffdesk/api/pkg/errors"
)

// fakeFileStore records calls without touching the filesystem.
type fakeFileStore struct {
	saved   []string
	removed []string
	saveErr error
}

func (f *fakeFileStore) Save(employeeID uint, filename string, r io.Reader) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	rel := fmt.Sprintf("profiles/employee_%d_%s", employeeID, filename)
	f.saved = append(f.saved, rel)
	return rel, nil
}

func (f *fakeFileStore) Remove(relpath string) { f.removed = append(f.removed, relpath) }

func (f *fakeFileStore) Open(relpath string) (io.ReadCloser, string, error) {
	return io.NopCloser(strings.NewReader("img")), "image/png", nil
}

func validInput(name, email string) CreateEmployeeInput {
	return CreateEmployeeInput{
		Name:       name,
		Email:      email,
		Department: "Engineering",
		Position:   "Developer",
		Salary:     75000.50,
		HireDate:   "2023-05-15",
	}
}

func newTestService() (EmployeeService, *fakeEmployeeRepo, *fakeFileStore) {
	repo := newFakeEmployeeRepo()
	files := &fakeFileStore{}
	return NewEmployeeService(repo, files), repo, files
}

func TestCreateEmployee(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	e, err := svc.Create(ctx, validInput("Jane Smith", "JANE.SMITH@Example.com"))
	require.NoError(t, err)
	require.NotZero(t, e.ID)
	require.Equal(t, "jane.smith@example.com", e.Email)
	require.Equal(t, models.StatusActive, e.Status)
	require.Equal(t, "75000.5", e.Salary.String())
}

func TestCreateEmployeeCollectsAllErrors(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateEmployeeInput{
		Name:       "J",
		Email:      "not-an-email",
		Department: "Engineering",
		Position:   "Developer",
		Salary:     "-5",
		HireDate:   "2023-05-15",
	})
	require.Error(t, err)
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))

	fields := appErr.FieldsOf(err)
	require.Len(t, fields, 3)
	require.Contains(t, strings.Join(fields, "; "), "Name:")
	require.Contains(t, strings.Join(fields, "; "), "Email:")
	require.Contains(t, strings.Join(fields, "; "), "Salary:")
}

func TestCreateEmployeeDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, validInput("Jane Smith", "jane@example.com"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, validInput("Other Jane", "jane@example.com"))
	require.True(t, appErr.IsCode(err, appErr.CodeConflict))
}

func TestListPagination(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		_, err := svc.Create(ctx, validInput(fmt.Sprintf("Employee %02d", i), fmt.Sprintf("e%02d@example.com", i)))
		require.NoError(t, err)
	}

	items, meta, err := svc.List(ctx, ListParams{Page: 3, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, items, 5)
	require.Equal(t, int64(25), meta.Total)
	require.Equal(t, 3, meta.Pages)
	require.True(t, meta.HasPrev)
	require.False(t, meta.HasNext)

	// out-of-range pages return an empty window, not an error
	items, meta, err = svc.List(ctx, ListParams{Page: 9, PerPage: 10})
	require.NoError(t, err)
	require.Empty(t, items)
	require.False(t, meta.HasNext)

	// clamping: nonsense paging falls back to defaults
	_, meta, err = svc.List(ctx, ListParams{Page: -4, PerPage: 100000})
	require.NoError(t, err)
	require.Equal(t, 1, meta.Page)
	require.Equal(t, 100, meta.PerPage)
}

func TestListFilters(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	in := validInput("Alice Jones", "alice@example.com")
	_, err := svc.Create(ctx, in)
	require.NoError(t, err)

	in = validInput("Bob Brown", "bob@example.com")
	in.Department = "Sales"
	inactive := models.StatusInactive
	in.Status = &inactive
	_, err = svc.Create(ctx, in)
	require.NoError(t, err)

	items, _, err := svc.List(ctx, ListParams{Filter: repository.EmployeeFilter{Search: "ALICE"}})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Alice Jones", items[0].Name)

	items, _, err = svc.List(ctx, ListParams{Filter: repository.EmployeeFilter{Department: "sale"}})
	require.NoError(t, err)
	require.Len(t, items, 1)

	items, _, err = svc.List(ctx, ListParams{Filter: repository.EmployeeFilter{Status: models.StatusInactive}})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Bob Brown", items[0].Name)
}

func TestUpdateEmployee(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	e, err := svc.Create(ctx, validInput("Jane Smith", "jane@example.com"))
	require.NoError(t, err)

	newName := "Jane Brown"
	newSalary := "$80,000.00"
	updated, err := svc.Update(ctx, e.ID, UpdateEmployeeInput{Name: &newName, Salary: newSalary})
	require.NoError(t, err)
	require.Equal(t, "Jane Brown", updated.Name)
	require.Equal(t, "80000", updated.Salary.String())
	// untouched fields survive
	require.Equal(t, "jane@example.com", updated.Email)
}

func TestUpdateEmployeeAtomicOnValidationFailure(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	e, err := svc.Create(ctx, validInput("Jane Smith", "jane@example.com"))
	require.NoError(t, err)

	// the valid name must not stick when the salary fails
	newName := "Jane Brown"
	_, err = svc.Update(ctx, e.ID, UpdateEmployeeInput{Name: &newName, Salary: "-5"})
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))
	require.Len(t, appErr.FieldsOf(err), 1)

	stored, err := repo.FindByID(ctx, e.ID, false)
	require.NoError(t, err)
	require.Equal(t, "Jane Smith", stored.Name)
}

func TestUpdateEmployeeEmailConflict(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	_, err := svc.Create(ctx, validInput("Jane Smith", "jane@example.com"))
	require.NoError(t, err)
	e2, err := svc.Create(ctx, validInput("Bob Brown", "bob@example.com"))
	require.NoError(t, err)

	taken := "jane@example.com"
	_, err = svc.Update(ctx, e2.ID, UpdateEmployeeInput{Email: &taken})
	require.True(t, appErr.IsCode(err, appErr.CodeConflict))

	// keeping your own email is not a conflict
	same := "bob@example.com"
	_, err = svc.Update(ctx, e2.ID, UpdateEmployeeInput{Email: &same})
	require.NoError(t, err)
}

func TestDeleteAndRestore(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	e, err := svc.Create(ctx, validInput("Jane Smith", "jane@example.com"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, e.ID, false))

	// soft-deleted rows vanish from the default views
	_, err = svc.Get(ctx, e.ID, false)
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
	got, err := svc.Get(ctx, e.ID, true)
	require.NoError(t, err)
	require.True(t, got.IsDeleted)
	require.NotNil(t, got.DeletedAt)
	require.Equal(t, models.StatusInactive, got.Status)

	// deleting twice is a not-found
	err = svc.Delete(ctx, e.ID, false)
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))

	restored, err := svc.Restore(ctx, e.ID)
	require.NoError(t, err)
	require.False(t, restored.IsDeleted)
	require.Nil(t, restored.DeletedAt)
	require.Equal(t, models.StatusActive, restored.Status)

	// restoring a live row is a not-found
	_, err = svc.Restore(ctx, e.ID)
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))

	require.NoError(t, svc.Delete(ctx, e.ID, true))
	_, ok := repo.rows[e.ID]
	require.False(t, ok)
}

func TestRestoreEmailConflict(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	e, err := svc.Create(ctx, validInput("Jane Smith", "jane@example.com"))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, e.ID, false))

	// the address was freed by the soft delete and reused
	_, err = svc.Create(ctx, validInput("New Jane", "jane@example.com"))
	require.NoError(t, err)

	_, err = svc.Restore(ctx, e.ID)
	require.True(t, appErr.IsCode(err, appErr.CodeConflict))
}

func TestStats(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, validInput("Alice Jones", "alice@example.com"))
	require.NoError(t, err)
	in := validInput("Bob Brown", "bob@example.com")
	in.Department = "Sales"
	inactive := models.StatusInactive
	in.Status = &inactive
	_, err = svc.Create(ctx, in)
	require.NoError(t, err)
	gone, err := svc.Create(ctx, validInput("Carol White", "carol@example.com"))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, gone.ID, false))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), stats.Total)
	require.Equal(t, int64(1), stats.Active)
	require.Equal(t, int64(1), stats.Inactive)
	require.Equal(t, int64(1), stats.Deleted)
	require.Equal(t, []repository.DepartmentCount{
		{Department: "Engineering", Count: 1},
		{Department: "Sales", Count: 1},
	}, stats.Departments)
}

func TestSetProfilePicture(t *testing.T) {
	svc, _, files := newTestService()
	ctx := context.Background()
	e, err := svc.Create(ctx, validInput("Jane Smith", "jane@example.com"))
	require.NoError(t, err)

	rel, err := svc.SetProfilePicture(ctx, e.ID, "a.png", strings.NewReader("img"))
	require.NoError(t, err)
	require.NotEmpty(t, rel)
	require.Empty(t, files.removed)

	// replacing drops the previous file
	rel2, err := svc.SetProfilePicture(ctx, e.ID, "b.png", strings.NewReader("img"))
	require.NoError(t, err)
	require.Equal(t, []string{rel}, files.removed)

	got, err := svc.Get(ctx, e.ID, false)
	require.NoError(t, err)
	require.Equal(t, rel2, *got.ProfilePicturePath)
}

func TestProfilePicture(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	e, err := svc.Create(ctx, validInput("Jane Smith", "jane@example.com"))
	require.NoError(t, err)

	// no picture yet
	_, _, err = svc.ProfilePicture(ctx, e.ID)
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))

	_, err = svc.SetProfilePicture(ctx, e.ID, "a.png", strings.NewReader("img"))
	require.NoError(t, err)

	rc, ct, err := svc.ProfilePicture(ctx, e.ID)
	require.NoError(t, err)
	defer rc.Close()
	require.Equal(t, "image/png", ct)

	// still readable after a soft delete
	require.NoError(t, svc.Delete(ctx, e.ID, false))
	rc2, _, err := svc.ProfilePicture(ctx, e.ID)
	require.NoError(t, err)
	rc2.Close()
}
