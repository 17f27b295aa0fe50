package draft

import (
	"context"
	"errors"
	"sync"

	"workpackage-be/internal/entity"
	"workpackage-be/pkg/changeset"
	"workpackage-be/pkg/filter"

	"github.com/google/uuid"
)

type mapStore struct {
	mu     sync.Mutex
	drafts map[string]*changeset.Changeset
	gets   int
}

func newMapStore() *mapStore {
	return &mapStore{drafts: make(map[string]*changeset.Changeset)}
}

func (s *mapStore) Get(ctx context.Context, key string) (*changeset.Changeset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	return s.drafts[key], nil
}

func (s *mapStore) Set(ctx context.Context, key string, cs *changeset.Changeset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[key] = cs
	return nil
}

func (s *mapStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, key)
	return nil
}

type factoryCall struct {
	projectPath string
	typeId      *int64
}

type fakeFactory struct {
	calls []factoryCall
	err   error
}

func (f *fakeFactory) CreateDraft(ctx context.Context, projectPath string, typeId *int64) (*changeset.Changeset, error) {
	f.calls = append(f.calls, factoryCall{projectPath: projectPath, typeId: typeId})
	if f.err != nil {
		return nil, f.err
	}
	return changeset.New(&entity.WorkPackage{ProjectId: uuid.New(), TypeId: typeId}), nil
}

// filterDefaults applies every "=" filter except the excluded fields.
type filterDefaults struct {
	excluded [][]string
	err      error
}

func (d *filterDefaults) ApplyDefaults(ctx context.Context, cs *changeset.Changeset, filters []filter.Filter, excluded []string) error {
	d.excluded = append(d.excluded, excluded)
	if d.err != nil {
		return d.err
	}
	return filter.NewDefaults(nil, nil).ApplyDefaults(ctx, cs, filters, excluded)
}

var errBoom = errors.New("boom")

func int64Ptr(v int64) *int64 {
	return &v
}

func draftOfType(typeId *int64, changes map[string]string) *changeset.Changeset {
	cs := changeset.New(&entity.WorkPackage{TypeId: typeId})
	for field, value := range changes {
		if err := cs.SetValue(field, value); err != nil {
			panic(err)
		}
	}
	return cs
}
