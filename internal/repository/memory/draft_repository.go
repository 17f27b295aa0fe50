package memory

import (
	"context"
	"time"

	"workpackage-be/pkg/changeset"

	"github.com/patrickmn/go-cache"
)

// DraftRepository keeps drafts in process memory. Entries expire after ttl
// of inactivity.
type DraftRepository struct {
	cache *cache.Cache
}

func NewDraftRepository(ttl, cleanupInterval time.Duration) *DraftRepository {
	return &DraftRepository{
		cache: cache.New(ttl, cleanupInterval),
	}
}

func (r *DraftRepository) Get(ctx context.Context, key string) (*changeset.Changeset, error) {
	if x, found := r.cache.Get(key); found {
		cs := x.(*changeset.Changeset)
		// Reading counts as activity.
		r.cache.Set(key, cs, cache.DefaultExpiration)
		return cs, nil
	}
	return nil, nil
}

func (r *DraftRepository) Set(ctx context.Context, key string, cs *changeset.Changeset) error {
	r.cache.Set(key, cs, cache.DefaultExpiration)
	return nil
}

func (r *DraftRepository) Delete(ctx context.Context, key string) error {
	r.cache.Delete(key)
	return nil
}

func (r *DraftRepository) Count() int {
	return r.cache.ItemCount()
}
