package draft

import (
	"context"
	"errors"
	"sync"

	"workpackage-be/internal/entity"
	"workpackage-be/internal/pkg/logger"
	"workpackage-be/pkg/changeset"
	"workpackage-be/pkg/filter"

	"github.com/google/uuid"
)

var ErrAlreadyStarted = errors.New("draft: workflow already started")

// ParentWatcher streams the current state of a work package and every later
// change to it. The channel is closed once ctx is done.
type ParentWatcher interface {
	Watch(ctx context.Context, id uuid.UUID) (<-chan *entity.WorkPackage, error)
}

// CreateWorkflow runs the steps behind the create screen in order: resolve
// the draft, remember it in the session, link the requested parent and keep
// observing that parent until Stop is called.
type CreateWorkflow struct {
	resolver *Resolver
	watcher  ParentWatcher
	session  *Session
	logger   logger.ILogger

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu         sync.RWMutex
	parent     *entity.WorkPackage
	parentSeen chan struct{}
	seenOnce   sync.Once
	started    bool
}

// NewCreateWorkflow binds the workflow to ctx; cancelling ctx has the same
// effect as Stop.
func NewCreateWorkflow(ctx context.Context, resolver *Resolver, watcher ParentWatcher, session *Session, log logger.ILogger) *CreateWorkflow {
	wctx, cancel := context.WithCancel(ctx)
	return &CreateWorkflow{
		resolver:   resolver,
		watcher:    watcher,
		session:    session,
		logger:     log,
		ctx:        wctx,
		cancel:     cancel,
		done:       make(chan struct{}),
		parentSeen: make(chan struct{}),
	}
}

// Run executes the workflow once. On error nothing is remembered and the
// workflow is finished.
func (w *CreateWorkflow) Run(params NavigationParams, filters []filter.Filter) (*changeset.Changeset, error) {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil, ErrAlreadyStarted
	}
	w.started = true
	w.mu.Unlock()

	cs, err := w.resolver.Resolve(w.ctx, w.session, params, filters)
	if err != nil {
		close(w.done)
		return nil, err
	}

	if params.ParentId != nil {
		if err := cs.SetValue(changeset.FieldParent, params.ParentId.String()); err != nil {
			close(w.done)
			return nil, err
		}
	}

	if err := w.session.Remember(w.ctx, cs); err != nil {
		close(w.done)
		return nil, err
	}

	if params.ParentId == nil || w.watcher == nil {
		close(w.done)
		return cs, nil
	}

	updates, err := w.watcher.Watch(w.ctx, *params.ParentId)
	if err != nil {
		// The parent is only shown next to the form; the draft stands without it.
		w.logger.Warn("CreateWorkflow", "Failed to observe parent", map[string]interface{}{
			"parent_id": params.ParentId.String(),
			"error":     err.Error(),
		})
		close(w.done)
		return cs, nil
	}

	go w.observe(updates)
	return cs, nil
}

func (w *CreateWorkflow) observe(updates <-chan *entity.WorkPackage) {
	defer close(w.done)
	for {
		select {
		case <-w.ctx.Done():
			return
		case wp, ok := <-updates:
			if !ok {
				return
			}
			w.mu.Lock()
			w.parent = wp
			w.mu.Unlock()
			w.seenOnce.Do(func() { close(w.parentSeen) })
		}
	}
}

// Parent returns the latest observed parent, or nil.
func (w *CreateWorkflow) Parent() *entity.WorkPackage {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.parent
}

// AwaitParent blocks until the parent was observed once, the observation
// ended, or ctx is done.
func (w *CreateWorkflow) AwaitParent(ctx context.Context) *entity.WorkPackage {
	select {
	case <-w.parentSeen:
	case <-w.done:
	case <-ctx.Done():
	}
	return w.Parent()
}

// Stop cancels in-flight work and waits until the parent observation ended.
func (w *CreateWorkflow) Stop() {
	w.cancel()
	w.mu.RLock()
	started := w.started
	w.mu.RUnlock()
	if started {
		<-w.done
	}
}

// Done is closed once the workflow holds no running observation.
func (w *CreateWorkflow) Done() <-chan struct{} {
	return w.done
}
