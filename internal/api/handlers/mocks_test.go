package handlers

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/staffdesk/api/internal/auth"
	"github.com/staffdesk/api/internal/models"
	"github.com/staffdesk/api/internal/repository"
	"github.com/staffdesk/api/internal/services"
)

type mockEmployeeService struct{ mock.Mock }

func (m *mockEmployeeService) List(ctx context.Context, p services.ListParams) ([]models.Employee, services.PageMeta, error) {
	args := m.Called(ctx, p)
	return args.Get(0).([]models.Employee), args.Get(1).(services.PageMeta), args.Error(2)
}

func (m *mockEmployeeService) Get(ctx context.Context, id uint, includeDeleted bool) (*models.Employee, error) {
	args := m.Called(ctx, id, includeDeleted)
	if emp := args.Get(0); emp != nil {
		return emp.(*models.Employee), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEmployeeService) Create(ctx context.Context, in services.CreateEmployeeInput) (*models.Employee, error) {
	args := m.Called(ctx, in)
	if emp := args.Get(0); emp != nil {
		return emp.(*models.Employee), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEmployeeService) Update(ctx context.Context, id uint, in services.UpdateEmployeeInput) (*models.Employee, error) {
	args := m.Called(ctx, id, in)
	if emp := args.Get(0); emp != nil {
		return emp.(*models.Employee), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEmployeeService) Delete(ctx context.Context, id uint, permanent bool) error {
	return m.Called(ctx, id, permanent).Error(0)
}

func (m *mockEmployeeService) Restore(ctx context.Context, id uint) (*models.Employee, error) {
	args := m.Called(ctx, id)
	if emp := args.Get(0); emp != nil {
		return emp.(*models.Employee), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEmployeeService) Stats(ctx context.Context) (*repository.EmployeeStats, error) {
	args := m.Called(ctx)
	if s := args.Get(0); s != nil {
		return s.(*repository.EmployeeStats), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEmployeeService) SetProfilePicture(ctx context.Context, id uint, filename string, r io.Reader) (string, error) {
	args := m.Called(ctx, id, filename, r)
	return args.String(0), args.Error(1)
}

func (m *mockEmployeeService) ProfilePicture(ctx context.Context, id uint) (io.ReadCloser, string, error) {
	args := m.Called(ctx, id)
	if rc := args.Get(0); rc != nil {
		return rc.(io.ReadCloser), args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Login(ctx context.Context, usernameOrEmail, password string) (*models.Admin, *services.TokenPair, error) {
	args := m.Called(ctx, usernameOrEmail, password)
	var admin *models.Admin
	var pair *services.TokenPair
	if v := args.Get(0); v != nil {
		admin = v.(*models.Admin)
	}
	if v := args.Get(1); v != nil {
		pair = v.(*services.TokenPair)
	}
	return admin, pair, args.Error(2)
}

func (m *mockAuthService) Refresh(ctx context.Context, claims *auth.Claims) (string, error) {
	args := m.Called(ctx, claims)
	return args.String(0), args.Error(1)
}

func (m *mockAuthService) Logout(claims *auth.Claims) {
	m.Called(claims)
}

func (m *mockAuthService) Profile(ctx context.Context, adminID uint) (*models.Admin, error) {
	args := m.Called(ctx, adminID)
	if v := args.Get(0); v != nil {
		return v.(*models.Admin), args.Error(1)
	}
	return nil, args.Error(1)
}
