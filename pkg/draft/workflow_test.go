package draft

import (
	"context"
	"testing"
	"time"

	"workpackage-be/internal/entity"
	"workpackage-be/internal/pkg/logger"
	"workpackage-be/pkg/changeset"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWatcher struct {
	updates chan *entity.WorkPackage
	watched []uuid.UUID
	err     error
	stopped chan struct{}
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{
		updates: make(chan *entity.WorkPackage),
		stopped: make(chan struct{}),
	}
}

func (w *fakeWatcher) Watch(ctx context.Context, id uuid.UUID) (<-chan *entity.WorkPackage, error) {
	w.watched = append(w.watched, id)
	if w.err != nil {
		return nil, w.err
	}
	out := make(chan *entity.WorkPackage)
	go func() {
		defer close(w.stopped)
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case wp := <-w.updates:
				select {
				case out <- wp:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func setupWorkflow(ctx context.Context, watcher ParentWatcher) (*CreateWorkflow, *fakeFactory, *Session) {
	factory := &fakeFactory{}
	session := NewSession(newMapStore(), "user:1")
	resolver := NewResolver(factory, &filterDefaults{}, logger.NewNopLogger())
	return NewCreateWorkflow(ctx, resolver, watcher, session, logger.NewNopLogger()), factory, session
}

func waitClosed(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("channel was not closed")
	}
}

func TestWorkflowWithoutParent(t *testing.T) {
	watcher := newFakeWatcher()
	workflow, _, session := setupWorkflow(context.Background(), watcher)

	cs, err := workflow.Run(ParseNavigationParams("4", "", "demo"), nil)
	require.NoError(t, err)

	stored, err := session.Draft(context.Background())
	require.NoError(t, err)
	assert.Same(t, cs, stored)

	waitClosed(t, workflow.Done())
	assert.Empty(t, watcher.watched)
	assert.Nil(t, workflow.Parent())
	workflow.Stop()
}

func TestWorkflowLinksAndObservesParent(t *testing.T) {
	watcher := newFakeWatcher()
	workflow, _, session := setupWorkflow(context.Background(), watcher)
	parentId := uuid.New()

	cs, err := workflow.Run(ParseNavigationParams("", parentId.String(), "demo"), nil)
	require.NoError(t, err)

	assert.Equal(t, parentId.String(), cs.Value(changeset.FieldParent))
	assert.False(t, cs.Empty())
	require.Equal(t, []uuid.UUID{parentId}, watcher.watched)

	stored, err := session.Draft(context.Background())
	require.NoError(t, err)
	assert.Same(t, cs, stored)

	watcher.updates <- &entity.WorkPackage{Id: parentId, Subject: "Epic"}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	parent := workflow.AwaitParent(ctx)
	require.NotNil(t, parent)
	assert.Equal(t, "Epic", parent.Subject)

	workflow.Stop()
	waitClosed(t, workflow.Done())
	waitClosed(t, watcher.stopped)
}

func TestWorkflowStopEndsObservation(t *testing.T) {
	watcher := newFakeWatcher()
	workflow, _, _ := setupWorkflow(context.Background(), watcher)

	_, err := workflow.Run(ParseNavigationParams("", uuid.NewString(), "demo"), nil)
	require.NoError(t, err)

	workflow.Stop()

	select {
	case <-workflow.Done():
	default:
		t.Fatal("Stop returned while the observation was still running")
	}
	waitClosed(t, watcher.stopped)
	assert.Nil(t, workflow.Parent())
}

func TestWorkflowEndsWithParentContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	watcher := newFakeWatcher()
	workflow, _, _ := setupWorkflow(ctx, watcher)

	_, err := workflow.Run(ParseNavigationParams("", uuid.NewString(), "demo"), nil)
	require.NoError(t, err)

	cancel()
	waitClosed(t, workflow.Done())
}

func TestWorkflowRunsOnce(t *testing.T) {
	workflow, _, _ := setupWorkflow(context.Background(), nil)

	_, err := workflow.Run(ParseNavigationParams("", "", "demo"), nil)
	require.NoError(t, err)

	_, err = workflow.Run(ParseNavigationParams("", "", "demo"), nil)
	assert.ErrorIs(t, err, ErrAlreadyStarted)
}

func TestWorkflowResolveErrorAborts(t *testing.T) {
	watcher := newFakeWatcher()
	workflow, factory, session := setupWorkflow(context.Background(), watcher)
	factory.err = errBoom

	cs, err := workflow.Run(ParseNavigationParams("", uuid.NewString(), "demo"), nil)

	assert.ErrorIs(t, err, errBoom)
	assert.Nil(t, cs)
	assert.Empty(t, watcher.watched)
	stored, _ := session.Draft(context.Background())
	assert.Nil(t, stored)
	waitClosed(t, workflow.Done())
	workflow.Stop()
}

func TestWorkflowKeepsDraftWhenParentCannotBeWatched(t *testing.T) {
	watcher := newFakeWatcher()
	watcher.err = errBoom
	workflow, _, _ := setupWorkflow(context.Background(), watcher)

	cs, err := workflow.Run(ParseNavigationParams("", uuid.NewString(), "demo"), nil)

	require.NoError(t, err)
	assert.NotNil(t, cs)
	waitClosed(t, workflow.Done())
	assert.Nil(t, workflow.AwaitParent(context.Background()))
}

func TestStopBeforeRun(t *testing.T) {
	workflow, _, _ := setupWorkflow(context.Background(), nil)
	workflow.Stop()
}
