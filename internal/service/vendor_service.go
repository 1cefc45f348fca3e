package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/parcel-service/internal/auth"
	"github.com/spec-kit/parcel-service/internal/config"
	"github.com/spec-kit/parcel-service/internal/domain"
	"github.com/spec-kit/parcel-service/internal/events"
	"github.com/spec-kit/parcel-service/internal/repository"
	apperrors "github.com/spec-kit/parcel-service/pkg/util/errorutil"
)

// VendorService manages vendor accounts.
type VendorService struct {
	vendors    repository.VendorRepository
	bcryptCost int
	events     publisher
}

// VendorDependencies encapsulates collaborators for vendor management.
type VendorDependencies struct {
	VendorRepo repository.VendorRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewVendorService constructs the service.
func NewVendorService(cfg config.Config, deps VendorDependencies) *VendorService {
	return &VendorService{
		vendors:    deps.VendorRepo,
		bcryptCost: cfg.Auth.BcryptCost,
		events:     publisher{dispatcher: deps.Dispatcher, logger: deps.Logger},
	}
}

// Create registers a vendor account. Only admins may do this.
func (s *VendorService) Create(ctx context.Context, actor *domain.Staff, name, password string) (*domain.Vendor, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if existing, err := s.vendors.GetByName(ctx, name); err == nil && existing != nil {
		return nil, apperrors.NewConflict("vendor name already exists", map[string]any{"name": name})
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := hashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	vendor := &domain.Vendor{
		PublicID:     uuid.NewString(),
		Name:         name,
		PasswordHash: hash,
	}
	if err := s.vendors.Create(ctx, vendor); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.events.publish(ctx, events.EventVendorCreated, vendor.PublicID, staffActor(actor), events.AccountPayload{Name: vendor.Name})
	return vendor, nil
}
