package services

import (
	"context"
	"io"
	"time"

	"github.com/staffdesk/api/internal/models"
	"github.com/staffdesk/api/internal/repository"
	"github.com/staffdesk/api/internal/validation"
	appErr "github.com/staffdesk/api/pkg/errors"
	"github.com/staffdesk/api/pkg/logger"
	"go.uber.org/zap"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// PageMeta describes one page of a listing.
type PageMeta struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasPrev bool  `json:"has_prev"`
	HasNext bool  `json:"has_next"`
}

// NewPageMeta computes paging metadata. perPage must already be clamped.
func NewPageMeta(page, perPage int, total int64) PageMeta {
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	return PageMeta{
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   pages,
		HasPrev: page > 1,
		HasNext: page < pages,
	}
}

// ClampPage normalizes raw paging parameters: page >= 1, perPage in [1,100]
// with a default of 10.
func ClampPage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

// ListParams carries filtering and paging for employee listings.
type ListParams struct {
	Page    int
	PerPage int
	Filter  repository.EmployeeFilter
}

// CreateEmployeeInput is the field set accepted on creation. Salary may be a
// JSON number or a string with currency formatting.
type CreateEmployeeInput struct {
	Name       string
	Email      string
	Department string
	Position   string
	Salary     any
	HireDate   string
	Phone      *string
	Address    *string
	Status     *string
}

// UpdateEmployeeInput is a partial update; nil fields are left untouched.
type UpdateEmployeeInput struct {
	Name       *string
	Email      *string
	Phone      *string
	Address    *string
	Department *string
	Position   *string
	Salary     any
	HireDate   *string
	Status     *string
}

// FileStore is the attachment collaborator: the record store only ever holds
// the relative path it returns.
type FileStore interface {
	// Save validates and persists an upload, returning its relative path.
	Save(employeeID uint, filename string, r io.Reader) (string, error)
	// Remove deletes a previously stored file, best-effort.
	Remove(relpath string)
	// Open streams a stored file and reports its content type.
	Open(relpath string) (io.ReadCloser, string, error)
}

type EmployeeService interface {
	List(ctx context.Context, p ListParams) ([]models.Employee, PageMeta, error)
	Get(ctx context.Context, id uint, includeDeleted bool) (*models.Employee, error)
	Create(ctx context.Context, in CreateEmployeeInput) (*models.Employee, error)
	Update(ctx context.Context, id uint, in UpdateEmployeeInput) (*models.Employee, error)
	Delete(ctx context.Context, id uint, permanent bool) error
	Restore(ctx context.Context, id uint) (*models.Employee, error)
	Stats(ctx context.Context) (*repository.EmployeeStats, error)
	SetProfilePicture(ctx context.Context, id uint, filename string, r io.Reader) (string, error)
	ProfilePicture(ctx context.Context, id uint) (io.ReadCloser, string, error)
}

type employeeService struct {
	repo  repository.EmployeeRepository
	files FileStore
	now   func() time.Time
}

func NewEmployeeService(repo repository.EmployeeRepository, files FileStore) EmployeeService {
	return &employeeService{repo: repo, files: files, now: time.Now}
}

var _ EmployeeService = (*employeeService)(nil)

func (s *employeeService) List(ctx context.Context, p ListParams) ([]models.Employee, PageMeta, error) {
	page, perPage := ClampPage(p.Page, p.PerPage)
	items, total, err := s.repo.List(ctx, p.Filter, perPage, (page-1)*perPage)
	if err != nil {
		return nil, PageMeta{}, err
	}
	return items, NewPageMeta(page, perPage, total), nil
}

func (s *employeeService) Get(ctx context.Context, id uint, includeDeleted bool) (*models.Employee, error) {
	return s.repo.FindByID(ctx, id, includeDeleted)
}

func (s *employeeService) Create(ctx context.Context, in CreateEmployeeInput) (*models.Employee, error) {
	e := &models.Employee{Status: models.StatusActive}
	var errs []string

	if name, err := validation.Name(in.Name); err != nil {
		errs = append(errs, "Name: "+err.Error())
	} else {
		e.Name = name
	}
	if email, err := validation.Email(in.Email); err != nil {
		errs = append(errs, "Email: "+err.Error())
	} else {
		e.Email = email
	}
	if dept, err := validation.Department(in.Department); err != nil {
		errs = append(errs, "Department: "+err.Error())
	} else {
		e.Department = dept
	}
	if pos, err := validation.Position(in.Position); err != nil {
		errs = append(errs, "Position: "+err.Error())
	} else {
		e.Position = pos
	}
	if salary, err := validation.Salary(in.Salary); err != nil {
		errs = append(errs, "Salary: "+err.Error())
	} else {
		e.Salary = salary
	}
	if hireDate, err := validation.HireDate(in.HireDate); err != nil {
		errs = append(errs, "Hire date: "+err.Error())
	} else {
		e.HireDate = hireDate
	}
	if in.Phone != nil {
		if phone, err := validation.Phone(*in.Phone); err != nil {
			errs = append(errs, "Phone: "+err.Error())
		} else if phone != "" {
			e.Phone = &phone
		}
	}
	if in.Address != nil {
		if address, err := validation.Address(*in.Address); err != nil {
			errs = append(errs, "Address: "+err.Error())
		} else if address != "" {
			e.Address = &address
		}
	}
	if in.Status != nil {
		if status, err := validation.Status(*in.Status); err != nil {
			errs = append(errs, "Status: "+err.Error())
		} else {
			e.Status = status
		}
	}
	if len(errs) > 0 {
		return nil, appErr.Validation(errs)
	}

	taken, err := s.repo.EmailTaken(ctx, e.Email, 0, false)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, appErr.New(appErr.CodeConflict, "Employee with this email already exists")
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	logger.L().Info("employee created", zap.Uint("id", e.ID), zap.String("email", e.Email))
	return e, nil
}

func (s *employeeService) Update(ctx context.Context, id uint, in UpdateEmployeeInput) (*models.Employee, error) {
	var updated *models.Employee
	err := s.repo.Transaction(ctx, func(tx repository.EmployeeRepository) error {
		e, err := tx.FindByID(ctx, id, false)
		if err != nil {
			return err
		}

		var errs []string
		if in.Name != nil {
			if name, err := validation.Name(*in.Name); err != nil {
				errs = append(errs, "Name: "+err.Error())
			} else {
				e.Name = name
			}
		}
		var newEmail string
		if in.Email != nil {
			if email, err := validation.Email(*in.Email); err != nil {
				errs = append(errs, "Email: "+err.Error())
			} else {
				newEmail = email
			}
		}
		if in.Phone != nil {
			if phone, err := validation.Phone(*in.Phone); err != nil {
				errs = append(errs, "Phone: "+err.Error())
			} else if phone == "" {
				e.Phone = nil
			} else {
				e.Phone = &phone
			}
		}
		if in.Address != nil {
			if address, err := validation.Address(*in.Address); err != nil {
				errs = append(errs, "Address: "+err.Error())
			} else if address == "" {
				e.Address = nil
			} else {
				e.Address = &address
			}
		}
		if in.Department != nil {
			if dept, err := validation.Department(*in.Department); err != nil {
				errs = append(errs, "Department: "+err.Error())
			} else {
				e.Department = dept
			}
		}
		if in.Position != nil {
			if pos, err := validation.Position(*in.Position); err != nil {
				errs = append(errs, "Position: "+err.Error())
			} else {
				e.Position = pos
			}
		}
		if in.Salary != nil {
			if salary, err := validation.Salary(in.Salary); err != nil {
				errs = append(errs, "Salary: "+err.Error())
			} else {
				e.Salary = salary
			}
		}
		if in.HireDate != nil {
			if hireDate, err := validation.HireDate(*in.HireDate); err != nil {
				errs = append(errs, "Hire date: "+err.Error())
			} else {
				e.HireDate = hireDate
			}
		}
		if in.Status != nil {
			if status, err := validation.Status(*in.Status); err != nil {
				errs = append(errs, "Status: "+err.Error())
			} else {
				e.Status = status
			}
		}
		if len(errs) > 0 {
			return appErr.Validation(errs)
		}

		if newEmail != "" && newEmail != e.Email {
			taken, err := tx.EmailTaken(ctx, newEmail, id, false)
			if err != nil {
				return err
			}
			if taken {
				return appErr.New(appErr.CodeConflict, "Employee with this email already exists")
			}
			e.Email = newEmail
		}

		if err := tx.Save(ctx, e); err != nil {
			return err
		}
		updated = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.L().Info("employee updated", zap.Uint("id", updated.ID))
	return updated, nil
}

func (s *employeeService) Delete(ctx context.Context, id uint, permanent bool) error {
	err := s.repo.Transaction(ctx, func(tx repository.EmployeeRepository) error {
		e, err := tx.FindByID(ctx, id, false)
		if err != nil {
			return err
		}
		if permanent {
			return tx.HardDelete(ctx, e)
		}
		e.SoftDelete(s.now().UTC())
		return tx.Save(ctx, e)
	})
	if err != nil {
		return err
	}
	logger.L().Info("employee deleted", zap.Uint("id", id), zap.Bool("permanent", permanent))
	return nil
}

func (s *employeeService) Restore(ctx context.Context, id uint) (*models.Employee, error) {
	var restored *models.Employee
	err := s.repo.Transaction(ctx, func(tx repository.EmployeeRepository) error {
		e, err := tx.FindDeletedByID(ctx, id)
		if err != nil {
			return err
		}

		taken, err := tx.EmailTaken(ctx, e.Email, id, true)
		if err != nil {
			return err
		}
		if taken {
			return appErr.New(appErr.CodeConflict, "Cannot restore: another active employee with this email exists")
		}

		e.Restore()
		if err := tx.Save(ctx, e); err != nil {
			return err
		}
		restored = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.L().Info("employee restored", zap.Uint("id", restored.ID))
	return restored, nil
}

func (s *employeeService) Stats(ctx context.Context) (*repository.EmployeeStats, error) {
	return s.repo.Stats(ctx)
}

func (s *employeeService) SetProfilePicture(ctx context.Context, id uint, filename string, r io.Reader) (string, error) {
	e, err := s.repo.FindByID(ctx, id, false)
	if err != nil {
		return "", err
	}

	relpath, err := s.files.Save(e.ID, filename, r)
	if err != nil {
		return "", err
	}

	previous := e.ProfilePicturePath
	e.ProfilePicturePath = &relpath
	if err := s.repo.Save(ctx, e); err != nil {
		// The row keeps its old path; drop the orphaned new file.
		s.files.Remove(relpath)
		return "", err
	}

	if previous != nil {
		s.files.Remove(*previous)
	}
	logger.L().Info("profile picture uploaded", zap.Uint("id", e.ID), zap.String("path", relpath))
	return relpath, nil
}

func (s *employeeService) ProfilePicture(ctx context.Context, id uint) (io.ReadCloser, string, error) {
	// Pictures of soft-deleted employees remain retrievable.
	e, err := s.repo.FindByID(ctx, id, true)
	if err != nil {
		return nil, "", err
	}
	if e.ProfilePicturePath == nil || *e.ProfilePicturePath == "" {
		return nil, "", appErr.New(appErr.CodeNotFound, "Profile picture not found")
	}
	return s.files.Open(*e.ProfilePicturePath)
}
