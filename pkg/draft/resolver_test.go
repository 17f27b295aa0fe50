package draft

import (
	"context"
	"testing"

	"workpackage-be/internal/pkg/logger"
	"workpackage-be/pkg/changeset"
	"workpackage-be/pkg/filter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupResolver() (*Resolver, *fakeFactory, *filterDefaults, *Session) {
	factory := &fakeFactory{}
	defaults := &filterDefaults{}
	session := NewSession(newMapStore(), "user:1")
	return NewResolver(factory, defaults, logger.NewNopLogger()), factory, defaults, session
}

func TestResolveReusesDraftWithoutTypes(t *testing.T) {
	resolver, factory, _, session := setupResolver()
	ctx := context.Background()

	existing := draftOfType(nil, map[string]string{changeset.FieldSubject: "Half written"})
	require.NoError(t, session.Remember(ctx, existing))

	cs, err := resolver.Resolve(ctx, session, ParseNavigationParams("", "", "demo"), nil)

	require.NoError(t, err)
	assert.Same(t, existing, cs)
	assert.Equal(t, "Half written", cs.Value(changeset.FieldSubject))
	assert.Empty(t, factory.calls)
}

func TestResolveReusesDraftOfRequestedType(t *testing.T) {
	resolver, factory, defaults, session := setupResolver()
	ctx := context.Background()

	existing := draftOfType(int64Ptr(5), map[string]string{changeset.FieldSubject: "Bug report"})
	require.NoError(t, session.Remember(ctx, existing))

	filters := []filter.Filter{{Name: "status", Operator: filter.OperatorEquals, Values: []string{"2"}}}
	cs, err := resolver.Resolve(ctx, session, ParseNavigationParams("5", "", "demo"), filters)

	require.NoError(t, err)
	assert.Same(t, existing, cs)
	assert.Empty(t, factory.calls)
	assert.Empty(t, defaults.excluded, "a continued draft keeps its values")
	assert.False(t, cs.IsChanged(changeset.FieldStatus))
}

func TestResolveCreatesDraftWhenTypeDiffers(t *testing.T) {
	tests := []struct {
		name         string
		existingType *int64
		rawType      string
	}{
		{name: "other type requested", existingType: int64Ptr(5), rawType: "6"},
		{name: "type requested, draft has none", existingType: nil, rawType: "5"},
		{name: "no type requested, draft has one", existingType: int64Ptr(5), rawType: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver, factory, _, session := setupResolver()
			ctx := context.Background()

			existing := draftOfType(tt.existingType, map[string]string{changeset.FieldSubject: "Old"})
			require.NoError(t, session.Remember(ctx, existing))

			cs, err := resolver.Resolve(ctx, session, ParseNavigationParams(tt.rawType, "", "demo"), nil)

			require.NoError(t, err)
			assert.NotSame(t, existing, cs)
			require.Len(t, factory.calls, 1)
			assert.True(t, cs.Empty())
		})
	}
}

func TestResolveNeverReusesEmptyDraft(t *testing.T) {
	resolver, factory, _, session := setupResolver()
	ctx := context.Background()

	existing := draftOfType(int64Ptr(5), nil)
	require.NoError(t, session.Remember(ctx, existing))

	cs, err := resolver.Resolve(ctx, session, ParseNavigationParams("5", "", "demo"), nil)

	require.NoError(t, err)
	assert.NotSame(t, existing, cs)
	require.Len(t, factory.calls, 1)
	require.NotNil(t, factory.calls[0].typeId)
	assert.Equal(t, int64(5), *factory.calls[0].typeId)
}

func TestResolveWithoutStoredDraft(t *testing.T) {
	resolver, factory, defaults, session := setupResolver()

	filters := []filter.Filter{
		{Name: "type", Operator: filter.OperatorEquals, Values: []string{"9"}},
		{Name: "status", Operator: filter.OperatorEquals, Values: []string{"2"}},
		{Name: "priority", Operator: filter.OperatorNotEquals, Values: []string{"1"}},
	}
	cs, err := resolver.Resolve(context.Background(), session, ParseNavigationParams("", "", "demo"), filters)

	require.NoError(t, err)
	require.Len(t, factory.calls, 1)
	assert.Equal(t, "demo", factory.calls[0].projectPath)
	assert.Nil(t, factory.calls[0].typeId)

	require.Len(t, defaults.excluded, 1)
	assert.Equal(t, []string{changeset.FieldType}, defaults.excluded[0])

	assert.False(t, cs.IsChanged(changeset.FieldType), "type is never taken from filters")
	assert.Equal(t, "2", cs.Value(changeset.FieldStatus))
	assert.False(t, cs.IsChanged(changeset.FieldPriority))
}

func TestResolveDoesNotStoreTheNewDraft(t *testing.T) {
	resolver, _, _, session := setupResolver()
	ctx := context.Background()

	_, err := resolver.Resolve(ctx, session, ParseNavigationParams("3", "", "demo"), nil)
	require.NoError(t, err)

	stored, err := session.Draft(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestResolvePropagatesFactoryErrors(t *testing.T) {
	resolver, factory, defaults, session := setupResolver()
	factory.err = errBoom

	cs, err := resolver.Resolve(context.Background(), session, ParseNavigationParams("5", "", "demo"), nil)

	assert.ErrorIs(t, err, errBoom)
	assert.Nil(t, cs)
	assert.Empty(t, defaults.excluded)
}

func TestResolvePropagatesDefaultsErrors(t *testing.T) {
	resolver, _, defaults, session := setupResolver()
	defaults.err = errBoom

	_, err := resolver.Resolve(context.Background(), session, ParseNavigationParams("", "", "demo"), nil)

	assert.ErrorIs(t, err, errBoom)
}

func TestSessionsAreIsolated(t *testing.T) {
	store := newMapStore()
	ctx := context.Background()
	alice := NewSession(store, "user:alice")
	bob := NewSession(store, "user:bob")

	cs := draftOfType(nil, map[string]string{changeset.FieldSubject: "Alice's"})
	require.NoError(t, alice.Remember(ctx, cs))

	got, err := bob.Draft(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = alice.Draft(ctx)
	require.NoError(t, err)
	assert.Same(t, cs, got)

	require.NoError(t, alice.Discard(ctx))
	got, err = alice.Draft(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRememberReplacesPreviousDraft(t *testing.T) {
	session := NewSession(newMapStore(), "anon:1")
	ctx := context.Background()

	first := draftOfType(nil, map[string]string{changeset.FieldSubject: "first"})
	second := draftOfType(nil, map[string]string{changeset.FieldSubject: "second"})
	require.NoError(t, session.Remember(ctx, first))
	require.NoError(t, session.Remember(ctx, second))

	got, err := session.Draft(ctx)
	require.NoError(t, err)
	assert.Same(t, second, got)
}
