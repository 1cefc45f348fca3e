package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/parcel-service/internal/config"
	"github.com/spec-kit/parcel-service/internal/domain"
	"github.com/spec-kit/parcel-service/internal/events"
)

func TestNotificationService_LogsLifecycleEvents(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher()
	NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{WebhookURL: "http://hooks.local/parcels"}).RegisterHandlers()

	staff := NewStaffService(testConfig(), StaffDependencies{StaffRepo: newMemStaffRepo(), Dispatcher: dispatcher, Logger: zap.NewNop()})
	admin, _, err := staff.EnsureAdmin(context.Background(), "root", "rootpw")
	require.NoError(t, err)
	_, err = staff.Create(context.Background(), admin, "alice", "pw1")
	require.NoError(t, err)

	parcels := NewParcelService(ParcelDependencies{
		ParcelRepo: newMemParcelRepo(),
		Locator:    &stubLocator{city: "Porto"},
		Dispatcher: dispatcher,
	})
	_, err = parcels.Intake(context.Background(), &domain.Vendor{PublicID: "v-1", Name: "acme"}, intakeInput())
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("account event").Len())
	parcelLogs := logs.FilterMessage("parcel event").All()
	require.Len(t, parcelLogs, 1)
	assert.Equal(t, "v-1", parcelLogs[0].ContextMap()["vendor"])
	assert.Equal(t, 2, logs.FilterMessage("sendWebhookNotificationStub").Len())
}
