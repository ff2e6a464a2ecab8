package services

import (
	"context"

	"github.com/staffdesk/api/internal/auth"
	"github.com/staffdesk/api/internal/models"
	"github.com/staffdesk/api/internal/repository"
	appErr "github.com/staffdesk/api/pkg/errors"
	"github.com/staffdesk/api/pkg/logger"
	"go.uber.org/zap"
)

// TokenPair is the credential pair returned from a successful login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthService interface {
	// Login verifies credentials and issues an access/refresh token pair.
	Login(ctx context.Context, usernameOrEmail, password string) (*models.Admin, *TokenPair, error)
	// Refresh exchanges valid refresh claims for a new access token, provided
	// the admin still exists and is active.
	Refresh(ctx context.Context, claims *auth.Claims) (string, error)
	// Logout revokes the presented token for the rest of its lifetime.
	Logout(claims *auth.Claims)
	// Profile returns the active admin for the given id.
	Profile(ctx context.Context, adminID uint) (*models.Admin, error)
}

type authService struct {
	admins repository.AdminRepository
	issuer *auth.Issuer
}

func NewAuthService(admins repository.AdminRepository, issuer *auth.Issuer) AuthService {
	return &authService{admins: admins, issuer: issuer}
}

var _ AuthService = (*authService)(nil)

func (s *authService) Login(ctx context.Context, usernameOrEmail, password string) (*models.Admin, *TokenPair, error) {
	admin, err := s.admins.FindByUsernameOrEmail(ctx, usernameOrEmail)
	if err != nil || !admin.CheckPassword(password) {
		logger.L().Warn("failed login attempt", zap.String("identifier", usernameOrEmail))
		return nil, nil, appErr.New(appErr.CodeUnauthorized, "Invalid username or password")
	}

	access, err := s.issuer.IssueAccess(admin.ID)
	if err != nil {
		return nil, nil, err
	}
	refresh, err := s.issuer.IssueRefresh(admin.ID)
	if err != nil {
		return nil, nil, err
	}

	logger.L().Info("admin logged in", zap.String("username", admin.Username))
	return admin, &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authService) Refresh(ctx context.Context, claims *auth.Claims) (string, error) {
	adminID, err := claims.AdminID()
	if err != nil {
		return "", err
	}
	if _, err := s.admins.FindActiveByID(ctx, adminID); err != nil {
		return "", appErr.New(appErr.CodeUnauthorized, "Admin account not found or inactive")
	}
	return s.issuer.IssueAccess(adminID)
}

func (s *authService) Logout(claims *auth.Claims) {
	s.issuer.Revoke(claims.ID)
	logger.L().Info("admin logged out", zap.String("subject", claims.Subject))
}

func (s *authService) Profile(ctx context.Context, adminID uint) (*models.Admin, error) {
	admin, err := s.admins.FindActiveByID(ctx, adminID)
	if err != nil {
		return nil, appErr.New(appErr.CodeUnauthorized, "Admin not found")
	}
	return admin, nil
}
