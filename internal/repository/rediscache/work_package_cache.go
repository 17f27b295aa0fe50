package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"workpackage-be/internal/entity"
	"workpackage-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	workPackageKeyPrefix     = "wp:"
	workPackageChannelPrefix = "wp-updates:"
)

// Loader reads a work package from the database on a cache miss.
type Loader func(ctx context.Context, id uuid.UUID) (*entity.WorkPackage, error)

// WorkPackageCache caches persisted work packages and announces every update
// on a per work package channel, so observers see changes made anywhere in
// the cluster.
type WorkPackageCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	load   Loader
	logger logger.ILogger
}

func NewWorkPackageCache(rdb *redis.Client, ttl time.Duration, load Loader, log logger.ILogger) *WorkPackageCache {
	return &WorkPackageCache{
		rdb:    rdb,
		ttl:    ttl,
		load:   load,
		logger: log,
	}
}

// Update stores wp and notifies observers.
func (c *WorkPackageCache) Update(ctx context.Context, wp *entity.WorkPackage) error {
	if wp == nil || wp.IsNew() {
		return nil
	}
	data, err := json.Marshal(wp)
	if err != nil {
		return fmt.Errorf("encoding work package %s: %w", wp.Id, err)
	}

	pipe := c.rdb.TxPipeline()
	pipe.Set(ctx, workPackageKeyPrefix+wp.Id.String(), data, c.ttl)
	pipe.Publish(ctx, workPackageChannelPrefix+wp.Id.String(), data)
	_, err = pipe.Exec(ctx)
	return err
}

// Load returns the cached work package, falling back to the loader. A missing
// work package yields nil.
func (c *WorkPackageCache) Load(ctx context.Context, id uuid.UUID) (*entity.WorkPackage, error) {
	data, err := c.rdb.Get(ctx, workPackageKeyPrefix+id.String()).Bytes()
	if err == nil {
		var wp entity.WorkPackage
		if err := json.Unmarshal(data, &wp); err == nil {
			return &wp, nil
		}
		c.logger.Warn("WorkPackageCache", "Dropping undecodable cache entry", map[string]interface{}{"id": id.String()})
	} else if !errors.Is(err, redis.Nil) {
		return nil, err
	}

	if c.load == nil {
		return nil, nil
	}
	wp, err := c.load(ctx, id)
	if err != nil || wp == nil {
		return nil, err
	}

	data, err = json.Marshal(wp)
	if err == nil {
		c.rdb.Set(ctx, workPackageKeyPrefix+id.String(), data, c.ttl)
	}
	return wp, nil
}

// Watch emits the current state of the work package, if it exists, followed
// by every update. The subscription is released and the channel closed when
// ctx is done.
func (c *WorkPackageCache) Watch(ctx context.Context, id uuid.UUID) (<-chan *entity.WorkPackage, error) {
	// Subscribe before loading so no update between the two is missed.
	sub := c.rdb.Subscribe(ctx, workPackageChannelPrefix+id.String())
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("subscribing to work package %s: %w", id, err)
	}

	current, err := c.Load(ctx, id)
	if err != nil {
		sub.Close()
		return nil, err
	}

	out := make(chan *entity.WorkPackage, 1)
	if current != nil {
		out <- current
	}

	go func() {
		defer close(out)
		defer sub.Close()

		messages := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var wp entity.WorkPackage
				if err := json.Unmarshal([]byte(msg.Payload), &wp); err != nil {
					c.logger.Warn("WorkPackageCache", "Ignoring malformed update", map[string]interface{}{"id": id.String()})
					continue
				}
				select {
				case out <- &wp:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
