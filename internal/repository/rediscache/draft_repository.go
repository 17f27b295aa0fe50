package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"workpackage-be/pkg/changeset"

	"github.com/redis/go-redis/v9"
)

const draftKeyPrefix = "draft:"

// DraftRepository keeps drafts in Redis so any instance can continue them.
// Every Get hands out a fresh copy; callers store edits back with Set.
type DraftRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDraftRepository(rdb *redis.Client, ttl time.Duration) *DraftRepository {
	return &DraftRepository{rdb: rdb, ttl: ttl}
}

func (r *DraftRepository) Get(ctx context.Context, key string) (*changeset.Changeset, error) {
	data, err := r.rdb.GetEx(ctx, draftKeyPrefix+key, r.ttl).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading draft %s: %w", key, err)
	}

	cs := changeset.New(nil)
	if err := json.Unmarshal(data, cs); err != nil {
		return nil, fmt.Errorf("decoding draft %s: %w", key, err)
	}
	return cs, nil
}

func (r *DraftRepository) Set(ctx context.Context, key string, cs *changeset.Changeset) error {
	data, err := json.Marshal(cs)
	if err != nil {
		return fmt.Errorf("encoding draft %s: %w", key, err)
	}
	return r.rdb.Set(ctx, draftKeyPrefix+key, data, r.ttl).Err()
}

func (r *DraftRepository) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, draftKeyPrefix+key).Err()
}
