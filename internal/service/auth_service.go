package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/parcel-service/internal/auth"
	"github.com/spec-kit/parcel-service/internal/config"
	"github.com/spec-kit/parcel-service/internal/domain"
	"github.com/spec-kit/parcel-service/internal/repository"
	apperrors "github.com/spec-kit/parcel-service/pkg/util/errorutil"
)

// ErrInvalidCredentials is returned for any failed login.
var ErrInvalidCredentials = apperrors.NewUnauthorized("could not verify")

// AuthService coordinates login flows and token resolution.
type AuthService struct {
	staff    repository.StaffRepository
	vendors  repository.VendorRepository
	tokenMgr *auth.TokenManager
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	StaffRepo  repository.StaffRepository
	VendorRepo repository.VendorRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		staff:    deps.StaffRepo,
		vendors:  deps.VendorRepo,
		tokenMgr: auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.StaffTokenTTL(), cfg.Auth.VendorTokenTTL()),
	}
}

// LoginStaff verifies staff credentials and issues a staff token.
func (s *AuthService) LoginStaff(ctx context.Context, name, password string) (*domain.Staff, domain.Token, error) {
	staff, err := s.staff.GetByName(ctx, name)
	if err != nil {
		return nil, domain.Token{}, credentialError(err)
	}
	if !auth.VerifyPassword(staff.PasswordHash, password) {
		return nil, domain.Token{}, ErrInvalidCredentials
	}
	token, err := s.tokenMgr.Issue(staff.PublicID, domain.PrincipalStaff)
	if err != nil {
		return nil, domain.Token{}, apperrors.NewInternalError(err)
	}
	return staff, token, nil
}

// LoginVendor verifies vendor credentials and issues a vendor token.
func (s *AuthService) LoginVendor(ctx context.Context, name, password string) (*domain.Vendor, domain.Token, error) {
	vendor, err := s.vendors.GetByName(ctx, name)
	if err != nil {
		return nil, domain.Token{}, credentialError(err)
	}
	if !auth.VerifyPassword(vendor.PasswordHash, password) {
		return nil, domain.Token{}, ErrInvalidCredentials
	}
	token, err := s.tokenMgr.Issue(vendor.PublicID, domain.PrincipalVendor)
	if err != nil {
		return nil, domain.Token{}, apperrors.NewInternalError(err)
	}
	return vendor, token, nil
}

// ResolveStaff loads the live staff record behind a token.
func (s *AuthService) ResolveStaff(ctx context.Context, publicID string) (*domain.Staff, error) {
	return s.staff.GetByPublicID(ctx, publicID)
}

// ResolveVendor loads the live vendor record behind a token.
func (s *AuthService) ResolveVendor(ctx context.Context, publicID string) (*domain.Vendor, error) {
	return s.vendors.GetByPublicID(ctx, publicID)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func credentialError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrInvalidCredentials
	}
	return apperrors.MapError(err)
}
