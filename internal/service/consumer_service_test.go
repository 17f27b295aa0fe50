package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"workpackage-be/internal/dto"
	"workpackage-be/internal/entity"
	"workpackage-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCache struct {
	mu      sync.Mutex
	updated []uuid.UUID
}

func (c *recordingCache) Update(ctx context.Context, wp *entity.WorkPackage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updated = append(c.updated, wp.Id)
	return nil
}

func (c *recordingCache) ids() []uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]uuid.UUID(nil), c.updated...)
}

func TestConsumerWarmsCommittedWorkPackageAndParent(t *testing.T) {
	f := newFixture()
	parent := &entity.WorkPackage{Id: uuid.New(), ProjectId: f.project.Id, Subject: "Epic"}
	child := &entity.WorkPackage{Id: uuid.New(), ProjectId: f.project.Id, Subject: "Story", ParentId: &parent.Id}
	f.db.workPackages = append(f.db.workPackages, parent, child)

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { pubSub.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cache := &recordingCache{}
	consumer := NewConsumerService(pubSub, "drafts", f.db, cache, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService("drafts", pubSub)
	for _, msg := range []dto.DraftEventMessage{
		{Kind: "garbage"},
		{Kind: dto.DraftEventDiscarded, ProjectId: f.project.Id},
		{Kind: dto.DraftEventCommitted, WorkPackageId: child.Id, ProjectId: f.project.Id},
	} {
		payload, err := json.Marshal(msg)
		require.NoError(t, err)
		require.NoError(t, publisher.Publish(ctx, payload))
	}

	require.Eventually(t, func() bool { return len(cache.ids()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []uuid.UUID{child.Id, parent.Id}, cache.ids())
}

func TestConsumerSkipsUnknownWorkPackage(t *testing.T) {
	f := newFixture()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { pubSub.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cache := &recordingCache{}
	consumer := NewConsumerService(pubSub, "drafts", f.db, cache, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService("drafts", pubSub)
	payload, _ := json.Marshal(dto.DraftEventMessage{Kind: dto.DraftEventCommitted, WorkPackageId: uuid.New()})
	require.NoError(t, publisher.Publish(ctx, []byte("not json")))
	require.NoError(t, publisher.Publish(ctx, payload))

	known := &entity.WorkPackage{Id: uuid.New(), ProjectId: f.project.Id}
	f.db.mu.Lock()
	f.db.workPackages = append(f.db.workPackages, known)
	f.db.mu.Unlock()
	payload, _ = json.Marshal(dto.DraftEventMessage{Kind: dto.DraftEventCommitted, WorkPackageId: known.Id})
	require.NoError(t, publisher.Publish(ctx, payload))

	require.Eventually(t, func() bool { return len(cache.ids()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, known.Id, cache.ids()[0])
}
