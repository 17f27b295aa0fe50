package service

import (
	"context"
	"testing"

	"workpackage-be/internal/pkg/apperror"
	"workpackage-be/internal/pkg/requestctx"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func TestDraftFactoryRequiresPermission(t *testing.T) {
	f := newFixture()
	factory := NewDraftFactory(f.db)

	tests := []struct {
		name string
		ctx  context.Context
	}{
		{"anonymous", context.Background()},
		{"unknown user", requestctx.WithUserID(context.Background(), uuid.New())},
		{"member without add permission", requestctx.WithUserID(context.Background(), f.outsider.Id)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := factory.CreateDraft(tt.ctx, "demo", nil)
			require.Error(t, err)
			assert.True(t, apperror.Is(err, apperror.IdentifierMissingPermission))
		})
	}
}

func TestDraftFactoryProjectLookup(t *testing.T) {
	f := newFixture()
	factory := NewDraftFactory(f.db)
	ctx := requestctx.WithUserID(context.Background(), f.member.Id)

	_, err := factory.CreateDraft(ctx, "", nil)
	assert.True(t, apperror.Is(err, apperror.IdentifierInvalidQuery))

	_, err = factory.CreateDraft(ctx, "missing", nil)
	assert.True(t, apperror.Is(err, apperror.IdentifierNotFound))

	_, err = factory.CreateDraft(ctx, "archived", nil)
	assert.True(t, apperror.Is(err, apperror.IdentifierNotFound))
}

func TestDraftFactoryBuildsDraftFromSchema(t *testing.T) {
	f := newFixture()
	factory := NewDraftFactory(f.db)
	ctx := requestctx.WithUserID(context.Background(), f.member.Id)

	cs, err := factory.CreateDraft(ctx, "demo", int64Ptr(2))
	require.NoError(t, err)

	wp := cs.WorkPackage()
	assert.True(t, cs.Empty())
	assert.Equal(t, f.project.Id, wp.ProjectId)
	assert.Equal(t, int64(2), *wp.TypeId)
	assert.Equal(t, int64(1), *wp.StatusId)
	assert.Equal(t, int64(2), *wp.PriorityId)
	assert.Equal(t, f.member.Id, *wp.AuthorId)
	assert.True(t, wp.IsNew())
}

func TestDraftFactoryFallsBackToDefaultType(t *testing.T) {
	f := newFixture()
	factory := NewDraftFactory(f.db)
	ctx := requestctx.WithUserID(context.Background(), f.member.Id)

	for name, requested := range map[string]*int64{
		"no type":          nil,
		"type not enabled": int64Ptr(3),
		"unknown type":     int64Ptr(42),
	} {
		t.Run(name, func(t *testing.T) {
			cs, err := factory.CreateDraft(ctx, "demo", requested)
			require.NoError(t, err)
			assert.Equal(t, int64(1), *cs.WorkPackage().TypeId)
		})
	}
}

func TestDraftFactoryFirstEnabledTypeWithoutDefault(t *testing.T) {
	f := newFixture()
	f.project.TypeIds = []int64{3, 2}
	factory := NewDraftFactory(f.db)
	ctx := requestctx.WithUserID(context.Background(), f.member.Id)

	cs, err := factory.CreateDraft(ctx, "demo", nil)
	require.NoError(t, err)
	// Ordered by position, so Bug comes before Milestone.
	assert.Equal(t, int64(2), *cs.WorkPackage().TypeId)
}

func TestDraftFactoryAdminBypassesMembership(t *testing.T) {
	f := newFixture()
	factory := NewDraftFactory(f.db)
	ctx := requestctx.WithUserID(context.Background(), f.admin.Id)

	cs, err := factory.CreateDraft(ctx, "demo", nil)
	require.NoError(t, err)
	assert.Equal(t, f.admin.Id, *cs.WorkPackage().AuthorId)
}

func TestAllowedValues(t *testing.T) {
	f := newFixture()
	allowed := NewAllowedValues(f.db)
	ctx := context.Background()

	tests := []struct {
		field string
		value string
		want  bool
	}{
		{"type", "2", true},
		{"type", "3", false},
		{"type", "bug", false},
		{"status", "2", true},
		{"status", "9", false},
		{"priority", "1", true},
		{"priority", "7", false},
		{"assignee", f.member.Id.String(), true},
		{"assignee", f.admin.Id.String(), false},
		{"responsible", "not-a-uuid", false},
		{"parent", uuid.NewString(), false},
		{"subject", "anything", true},
	}

	for _, tt := range tests {
		t.Run(tt.field+"="+tt.value, func(t *testing.T) {
			ok, err := allowed.Allowed(ctx, f.project.Id, tt.field, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}
