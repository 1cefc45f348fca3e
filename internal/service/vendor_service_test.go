package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/parcel-service/internal/auth"
	"github.com/spec-kit/parcel-service/internal/domain"
	"github.com/spec-kit/parcel-service/internal/events"
	apperrors "github.com/spec-kit/parcel-service/pkg/util/errorutil"
)

func TestVendorService_Create(t *testing.T) {
	repo := newMemVendorRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewVendorService(testConfig(), VendorDependencies{VendorRepo: repo, Dispatcher: dispatcher, Logger: zap.NewNop()})
	admin := &domain.Staff{PublicID: "admin-1", Name: "root", IsAdmin: true}

	vendor, err := svc.Create(context.Background(), admin, "acme", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, vendor.PublicID)
	assert.True(t, auth.VerifyPassword(vendor.PasswordHash, "secret"))
	assert.Equal(t, []events.EventType{events.EventVendorCreated}, dispatcher.types())

	_, err = svc.Create(context.Background(), admin, "acme", "again")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
}

func TestVendorService_Create_RequiresAdmin(t *testing.T) {
	repo := newMemVendorRepo()
	svc := NewVendorService(testConfig(), VendorDependencies{VendorRepo: repo})

	_, err := svc.Create(context.Background(), &domain.Staff{PublicID: "s-1", Name: "bob"}, "acme", "secret")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))

	_, err = repo.GetByName(context.Background(), "acme")
	assert.Error(t, err)
}
