package draft

import (
	"context"

	"workpackage-be/pkg/changeset"
)

// ContextKey names the slot holding the work package being created.
const ContextKey = "new"

// Store keeps changesets by key. Get returns nil when nothing is stored.
// Setting a key replaces whatever was stored before; concurrent writers to the
// same key resolve as last writer wins.
type Store interface {
	Get(ctx context.Context, key string) (*changeset.Changeset, error)
	Set(ctx context.Context, key string, cs *changeset.Changeset) error
	Delete(ctx context.Context, key string) error
}

// Session is the draft context of one caller (a user, or an anonymous
// browser session). It owns exactly one creation slot in the store.
type Session struct {
	store Store
	scope string
}

func NewSession(store Store, scope string) *Session {
	return &Session{store: store, scope: scope}
}

func (s *Session) Scope() string {
	return s.scope
}

func (s *Session) key() string {
	return s.scope + ":" + ContextKey
}

// Draft returns the in-progress changeset, or nil.
func (s *Session) Draft(ctx context.Context) (*changeset.Changeset, error) {
	return s.store.Get(ctx, s.key())
}

func (s *Session) Remember(ctx context.Context, cs *changeset.Changeset) error {
	return s.store.Set(ctx, s.key(), cs)
}

// Discard stops editing: the slot is emptied.
func (s *Session) Discard(ctx context.Context) error {
	return s.store.Delete(ctx, s.key())
}
