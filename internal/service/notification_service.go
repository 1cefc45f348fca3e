package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/parcel-service/internal/config"
	"github.com/spec-kit/parcel-service/internal/events"
)

// NotificationService records account and parcel lifecycle events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventStaffCreated, n.handleAccountEvent)
	n.dispatcher.Subscribe(events.EventStaffPromoted, n.handleAccountEvent)
	n.dispatcher.Subscribe(events.EventStaffDeleted, n.handleAccountEvent)
	n.dispatcher.Subscribe(events.EventVendorCreated, n.handleAccountEvent)
	n.dispatcher.Subscribe(events.EventParcelRegistered, n.handleParcelEvent)
	n.dispatcher.Subscribe(events.EventParcelRemoved, n.handleParcelEvent)
}

func (n *NotificationService) handleAccountEvent(ctx context.Context, event events.Event) error {
	n.logger.Info("account event",
		zap.String("event_type", string(event.Type)),
		zap.String("subject_id", event.SubjectID),
		zap.String("actor", event.Actor.PublicID))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleParcelEvent(ctx context.Context, event events.Event) error {
	n.logger.Info("parcel event",
		zap.String("event_type", string(event.Type)),
		zap.String("qr_id", event.SubjectID),
		zap.String("vendor", event.Actor.PublicID),
		zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}
