package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"workpackage-be/internal/model"
	"workpackage-be/internal/pkg/apperror"
	"workpackage-be/internal/pkg/logger"
	"workpackage-be/internal/repository/contract"
	"workpackage-be/pkg/events"
	pktNats "workpackage-be/pkg/nats"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const notificationConsumer = "notif-service-worker"

// NotificationDelivery pushes notifications to connected clients.
// Implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
}

type EventSubscriber interface {
	Subscribe(ctx context.Context, subject string, durableName string, handler pktNats.EventHandler) error
}

type NotificationService struct {
	repo       contract.NotificationRepository
	subscriber EventSubscriber
	publisher  events.Publisher
	delivery   NotificationDelivery
	logger     logger.ILogger
}

// NewNotificationService wires the notification channel. Without a publisher
// events are handled in process; without a subscriber Start is a no-op.
func NewNotificationService(repo contract.NotificationRepository, sub EventSubscriber, pub events.Publisher, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		repo:       repo,
		subscriber: sub,
		publisher:  pub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus until ctx is done.
func (s *NotificationService) Start(ctx context.Context) {
	if s.subscriber == nil {
		return
	}
	if err := s.subscriber.Subscribe(ctx, pktNats.SubjectPrefix+">", notificationConsumer, s.HandleEvent); err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

// HandleErrorResponse surfaces a failed request to the user it was made for.
// userID is nil for anonymous callers; the error is still logged.
func (s *NotificationService) HandleErrorResponse(ctx context.Context, err error, userID *uuid.UUID, redirectTo string) {
	data := map[string]interface{}{
		"error_identifier": apperror.IdentifierOf(err),
		"message":          err.Error(),
		"entity_type":      "work_package",
	}
	if userID != nil {
		data["user_id"] = userID.String()
	}
	if redirectTo != "" {
		data["redirect_to"] = redirectTo
	}

	evt := events.BaseEvent{
		Type:       events.TypeWorkPackageError,
		Data:       data,
		OccurredAt: time.Now(),
	}

	if s.publisher != nil {
		pubErr := s.publisher.Publish(ctx, evt)
		if pubErr == nil {
			return
		}
		s.logger.Warn("NotificationService", "Publishing failed, handling in process", map[string]interface{}{"error": pubErr.Error()})
	}
	if handleErr := s.HandleEvent(ctx, evt); handleErr != nil {
		s.logger.Error("NotificationService", "Failed to handle error notification", map[string]interface{}{"error": handleErr.Error()})
	}
}

func (s *NotificationService) HandleEvent(ctx context.Context, event events.Event) error {
	title, message, ok := describe(event)
	if !ok {
		s.logger.Debug("NotificationService", "No notification for event", map[string]interface{}{"type": event.EventType()})
		return nil
	}

	payload := event.Payload()
	rawUser, _ := payload["user_id"].(string)
	userID, err := uuid.Parse(rawUser)
	if err != nil {
		s.logger.Info("NotificationService", "Event without recipient", map[string]interface{}{
			"type":    event.EventType(),
			"message": message,
		})
		return nil
	}

	notif := buildNotification(userID, title, message, event)
	if err := s.repo.CreateNotification(ctx, &notif); err != nil {
		s.logger.Error("NotificationService", fmt.Sprintf("Error saving notification for user %s", userID), map[string]interface{}{"error": err.Error()})
		return err
	}

	if s.delivery != nil {
		s.delivery.Send(userID, notif)
	}
	return nil
}

func describe(event events.Event) (title, message string, ok bool) {
	payload := event.Payload()
	switch event.EventType() {
	case events.TypeWorkPackageCreated:
		subject, _ := payload["subject"].(string)
		return "Work package created", fmt.Sprintf("'%s' was created.", subject), true
	case events.TypeWorkPackageError:
		msg, _ := payload["message"].(string)
		return "Work package could not be created", msg, true
	}
	return "", "", false
}

func buildNotification(userID uuid.UUID, title, message string, event events.Event) model.Notification {
	payload := event.Payload()

	entityType, _ := payload["entity_type"].(string)
	var entityID *uuid.UUID
	if raw, ok := payload["entity_id"].(string); ok {
		if id, err := uuid.Parse(raw); err == nil {
			entityID = &id
		}
	}

	meta := make(map[string]interface{}, len(payload)+1)
	for k, v := range payload {
		meta[k] = v
	}
	if entityType != "" && entityID != nil {
		meta["action_url"] = fmt.Sprintf("/%ss/%s", entityType, entityID.String())
	}
	metaJSON, _ := json.Marshal(meta)

	return model.Notification{
		ID:         uuid.New(),
		UserID:     userID,
		TypeCode:   event.EventType(),
		EntityType: entityType,
		EntityID:   entityID,
		Title:      title,
		Message:    message,
		Metadata:   datatypes.JSON(metaJSON),
		CreatedAt:  time.Now(),
	}
}

// GetNotifications fetches notifications for a user.
func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return s.repo.GetNotificationsByUserID(ctx, userID, limit, offset)
}

func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, userID, id)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
