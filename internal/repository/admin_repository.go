package repository

import (
	"context"
	"errors"

	"github.com/staffdesk/api/internal/models"
	appErr "github.com/staffdesk/api/pkg/errors"
	"gorm.io/gorm"
)

type AdminRepository interface {
	BaseRepository[models.Admin]
	// FindByUsernameOrEmail looks up an active admin by either identifier.
	FindByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*models.Admin, error)
	// FindActiveByID looks up an admin that exists and is active.
	FindActiveByID(ctx context.Context, id uint) (*models.Admin, error)
}

type adminRepository struct {
	BaseRepository[models.Admin]
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{BaseRepository: NewBaseRepository[models.Admin](db), db: db}
}

func (r *adminRepository) FindByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*models.Admin, error) {
	var a models.Admin
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("username = ? OR email = ?", usernameOrEmail, usernameOrEmail).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErr.New(appErr.CodeNotFound, "admin not found")
		}
		return nil, appErr.Wrap(err, appErr.CodeInternal, "get admin failed")
	}
	return &a, nil
}

func (r *adminRepository) FindActiveByID(ctx context.Context, id uint) (*models.Admin, error) {
	var a models.Admin
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErr.New(appErr.CodeNotFound, "admin not found or inactive")
		}
		return nil, appErr.Wrap(err, appErr.CodeInternal, "get admin failed")
	}
	return &a, nil
}
