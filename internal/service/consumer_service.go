package service

import (
	"context"
	"encoding/json"

	"workpackage-be/internal/dto"
	"workpackage-be/internal/entity"
	"workpackage-be/internal/pkg/logger"
	"workpackage-be/internal/repository/specification"
	"workpackage-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// WorkPackageCacheWriter receives persisted work packages.
type WorkPackageCacheWriter interface {
	Update(ctx context.Context, wp *entity.WorkPackage) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	cache      WorkPackageCacheWriter
	logger     logger.ILogger
}

// NewConsumerService follows the draft lifecycle. Committed drafts are put in
// the work package cache together with their parent, so whoever observes the
// parent learns about the new child.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	cache WorkPackageCacheWriter,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		uowFactory: uowFactory,
		cache:      cache,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.DraftEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("DraftConsumer", "Failed to unmarshal draft event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // never retry malformed messages
		return
	}

	switch payload.Kind {
	case dto.DraftEventDiscarded:
		cs.logger.Debug("DraftConsumer", "Draft discarded", map[string]interface{}{
			"scope":      payload.Scope,
			"project_id": payload.ProjectId.String(),
		})
		msg.Ack()

	case dto.DraftEventCommitted:
		// The cache refills itself on the next read, so failures are not retried.
		if err := cs.warm(ctx, payload.WorkPackageId); err != nil {
			cs.logger.Error("DraftConsumer", "Failed to warm work package cache", map[string]interface{}{
				"work_package_id": payload.WorkPackageId.String(),
				"error":           err.Error(),
			})
		}
		msg.Ack()

	default:
		cs.logger.Warn("DraftConsumer", "Unknown draft event", map[string]interface{}{"kind": payload.Kind})
		msg.Ack()
	}
}

func (cs *consumerService) warm(ctx context.Context, id uuid.UUID) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	wp, err := uow.WorkPackageRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if wp == nil {
		return nil
	}
	if err := cs.cache.Update(ctx, wp); err != nil {
		return err
	}

	if wp.ParentId == nil {
		return nil
	}
	parent, err := uow.WorkPackageRepository().FindOne(ctx, specification.ByID{ID: *wp.ParentId})
	if err != nil || parent == nil {
		return err
	}
	return cs.cache.Update(ctx, parent)
}
