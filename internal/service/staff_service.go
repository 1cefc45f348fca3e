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

// ErrBootstrapNameTaken reports a non-admin account holding the bootstrap admin name
// under different credentials.
var ErrBootstrapNameTaken = apperrors.NewConflict("bootstrap admin name belongs to a non-admin account with different credentials", nil)

// StaffService manages staff accounts.
type StaffService struct {
	staff      repository.StaffRepository
	bcryptCost int
	events     publisher
}

// StaffDependencies encapsulates collaborators for staff management.
type StaffDependencies struct {
	StaffRepo  repository.StaffRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewStaffService constructs the service.
func NewStaffService(cfg config.Config, deps StaffDependencies) *StaffService {
	return &StaffService{
		staff:      deps.StaffRepo,
		bcryptCost: cfg.Auth.BcryptCost,
		events:     publisher{dispatcher: deps.Dispatcher, logger: deps.Logger},
	}
}

func staffActor(actor *domain.Staff) events.Actor {
	return events.Actor{Kind: domain.PrincipalStaff, PublicID: actor.PublicID}
}

// List returns every staff account. Ordering is not guaranteed.
func (s *StaffService) List(ctx context.Context, actor *domain.Staff) ([]domain.Staff, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	staff, err := s.staff.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return staff, nil
}

// Get fetches one staff account by public id.
func (s *StaffService) Get(ctx context.Context, actor *domain.Staff, publicID string) (*domain.Staff, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	staff, err := s.staff.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, notFound(err, "employee", publicID)
	}
	return staff, nil
}

// Create adds a non-admin staff account. Any authenticated staff member may do this.
func (s *StaffService) Create(ctx context.Context, actor *domain.Staff, name, password string) (*domain.Staff, error) {
	if actor == nil {
		return nil, apperrors.NewTokenMissing()
	}
	staff, err := s.create(ctx, name, password, false)
	if err != nil {
		return nil, err
	}
	s.events.publish(ctx, events.EventStaffCreated, staff.PublicID, staffActor(actor), events.AccountPayload{Name: staff.Name})
	return staff, nil
}

// Promote grants admin rights. There is no operation that revokes them.
func (s *StaffService) Promote(ctx context.Context, actor *domain.Staff, publicID string) error {
	if err := auth.RequireAdmin(actor); err != nil {
		return err
	}
	if err := s.staff.Promote(ctx, publicID); err != nil {
		return notFound(err, "employee", publicID)
	}
	s.events.publish(ctx, events.EventStaffPromoted, publicID, staffActor(actor), nil)
	return nil
}

// Delete hard-deletes a staff account and returns the removed record.
func (s *StaffService) Delete(ctx context.Context, actor *domain.Staff, publicID string) (*domain.Staff, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	staff, err := s.staff.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, notFound(err, "employee", publicID)
	}
	if err := s.staff.Delete(ctx, publicID); err != nil {
		return nil, notFound(err, "employee", publicID)
	}
	s.events.publish(ctx, events.EventStaffDeleted, publicID, staffActor(actor), events.AccountPayload{Name: staff.Name})
	return staff, nil
}

// EnsureAdmin makes sure an admin account named name exists, creating or promoting it.
// An existing non-admin account is promoted only when password matches its own; otherwise
// ErrBootstrapNameTaken is returned. The boolean reports whether a new account was created.
func (s *StaffService) EnsureAdmin(ctx context.Context, name, password string) (*domain.Staff, bool, error) {
	existing, err := s.staff.GetByName(ctx, name)
	if err == nil {
		if existing.IsAdmin {
			return existing, false, nil
		}
		if !auth.VerifyPassword(existing.PasswordHash, password) {
			return nil, false, ErrBootstrapNameTaken
		}
		if err := s.staff.Promote(ctx, existing.PublicID); err != nil {
			return nil, false, apperrors.MapError(err)
		}
		existing.IsAdmin = true
		return existing, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, apperrors.MapError(err)
	}
	staff, err := s.create(ctx, name, password, true)
	if err != nil {
		return nil, false, err
	}
	return staff, true, nil
}

func (s *StaffService) create(ctx context.Context, name, password string, admin bool) (*domain.Staff, error) {
	if existing, err := s.staff.GetByName(ctx, name); err == nil && existing != nil {
		return nil, apperrors.NewConflict("employee name already exists", map[string]any{"name": name})
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := hashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	staff := &domain.Staff{
		PublicID:     uuid.NewString(),
		Name:         name,
		PasswordHash: hash,
		IsAdmin:      admin,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		return nil, apperrors.MapError(err)
	}
	return staff, nil
}

func notFound(err error, resource, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	return apperrors.MapError(err)
}

func hashPassword(password string, cost int) (string, error) {
	hash, err := auth.HashPassword(password, cost)
	switch {
	case errors.Is(err, auth.ErrPasswordTooLong):
		return "", apperrors.NewValidationError("password too long", map[string]any{"password": "maxbytes"})
	case err != nil:
		return "", apperrors.NewInternalError(err)
	}
	return hash, nil
}
