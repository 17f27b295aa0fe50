package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"workpackage-be/internal/dto"
	"workpackage-be/internal/entity"
	"workpackage-be/internal/pkg/apperror"
	"workpackage-be/internal/pkg/logger"
	"workpackage-be/internal/pkg/requestctx"
	"workpackage-be/internal/repository/specification"
	"workpackage-be/internal/repository/unitofwork"
	"workpackage-be/pkg/changeset"
	"workpackage-be/pkg/draft"
	"workpackage-be/pkg/events"
	"workpackage-be/pkg/filter"

	"github.com/google/uuid"
)

var (
	errSubjectBlank   = errors.New("Subject can't be blank.")
	errParentMissing  = errors.New("Parent does not exist in this project.")
	errDueBeforeStart = errors.New("Finish date must be on or after the start date.")
)

type IWorkPackageCreateService interface {
	New(ctx context.Context, scope string, req *dto.NewWorkPackageRequest) (*dto.DraftResponse, error)
	Update(ctx context.Context, scope string, req *dto.UpdateDraftRequest) (*dto.DraftResponse, error)
	StopEditing(ctx context.Context, scope string) error
	Commit(ctx context.Context, scope string) (*dto.CommitDraftResponse, error)
}

type workPackageCreateService struct {
	uowFactory       unitofwork.RepositoryFactory
	store            draft.Store
	resolver         *draft.Resolver
	watcher          draft.ParentWatcher
	publisherService IPublisherService
	eventPublisher   events.Publisher
	parentWait       time.Duration
	logger           logger.ILogger
}

func NewWorkPackageCreateService(
	uowFactory unitofwork.RepositoryFactory,
	store draft.Store,
	resolver *draft.Resolver,
	watcher draft.ParentWatcher,
	publisherService IPublisherService,
	eventPublisher events.Publisher,
	parentWait time.Duration,
	log logger.ILogger,
) IWorkPackageCreateService {
	return &workPackageCreateService{
		uowFactory:       uowFactory,
		store:            store,
		resolver:         resolver,
		watcher:          watcher,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		parentWait:       parentWait,
		logger:           log,
	}
}

func (s *workPackageCreateService) New(ctx context.Context, scope string, req *dto.NewWorkPackageRequest) (*dto.DraftResponse, error) {
	filters, err := s.activeFilters(ctx, req)
	if err != nil {
		return nil, err
	}

	params := draft.ParseNavigationParams(req.Type, req.ParentId, req.ProjectPath)
	session := draft.NewSession(s.store, scope)

	workflow := draft.NewCreateWorkflow(ctx, s.resolver, s.watcher, session, s.logger)
	defer workflow.Stop()

	cs, err := workflow.Run(params, filters)
	if err != nil {
		return nil, err
	}

	var parent *entity.WorkPackage
	if params.ParentId != nil {
		waitCtx, cancel := context.WithTimeout(ctx, s.parentWait)
		parent = workflow.AwaitParent(waitCtx)
		cancel()
	}

	return toDraftResponse(cs, parent), nil
}

// activeFilters reads the table filters the user came from, either inline or
// from a saved query they can see. Inline filters win.
func (s *workPackageCreateService) activeFilters(ctx context.Context, req *dto.NewWorkPackageRequest) ([]filter.Filter, error) {
	if req.Filters != "" {
		filters, err := filter.Parse(req.Filters)
		if err != nil {
			return nil, apperror.InvalidQuery(err)
		}
		return filters, nil
	}
	if req.QueryId == "" {
		return nil, nil
	}

	queryId, err := uuid.Parse(req.QueryId)
	if err != nil {
		return nil, apperror.InvalidQuery(err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	query, err := uow.QueryRepository().FindOne(ctx,
		specification.ByID{ID: queryId},
		specification.VisibleTo{UserID: requestctx.UserID(ctx)},
	)
	if err != nil {
		return nil, err
	}
	if query == nil {
		return nil, apperror.NotFound("The requested query could not be found")
	}

	filters, err := filter.Parse(string(query.Filters))
	if err != nil {
		// A broken saved query only loses its defaults.
		s.logger.Warn("WorkPackageCreate", "Ignoring unreadable saved filters", map[string]interface{}{
			"query_id": queryId.String(),
			"error":    err.Error(),
		})
		return nil, nil
	}
	return filters, nil
}

func (s *workPackageCreateService) Update(ctx context.Context, scope string, req *dto.UpdateDraftRequest) (*dto.DraftResponse, error) {
	session := draft.NewSession(s.store, scope)

	cs, err := session.Draft(ctx)
	if err != nil {
		return nil, err
	}
	if cs == nil {
		return nil, apperror.NotFound("No work package is being created")
	}

	fields := make([]string, 0, len(req.Values))
	for field := range req.Values {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	// The stored draft may be shared, so nothing is written unless every value is valid.
	for _, field := range fields {
		if err := changeset.Validate(field, req.Values[field]); err != nil {
			return nil, apperror.PropertyConstraintViolation(err)
		}
	}
	for _, field := range fields {
		if err := cs.SetValue(field, req.Values[field]); err != nil {
			return nil, apperror.PropertyConstraintViolation(err)
		}
	}

	if err := session.Remember(ctx, cs); err != nil {
		return nil, err
	}
	return toDraftResponse(cs, nil), nil
}

func (s *workPackageCreateService) StopEditing(ctx context.Context, scope string) error {
	session := draft.NewSession(s.store, scope)

	cs, err := session.Draft(ctx)
	if err != nil {
		return err
	}
	if err := session.Discard(ctx); err != nil {
		return err
	}
	if cs == nil {
		return nil
	}

	wp := cs.WorkPackage()
	s.publishDraftEvent(ctx, dto.DraftEventMessage{
		Kind:      dto.DraftEventDiscarded,
		Scope:     scope,
		UserId:    requestctx.UserID(ctx),
		ProjectId: wp.ProjectId,
	})
	s.publishEvent(ctx, events.TypeDraftDiscarded, map[string]interface{}{
		"project_id": wp.ProjectId.String(),
		"scope":      scope,
	})
	return nil
}

func (s *workPackageCreateService) Commit(ctx context.Context, scope string) (*dto.CommitDraftResponse, error) {
	session := draft.NewSession(s.store, scope)

	cs, err := session.Draft(ctx)
	if err != nil {
		return nil, err
	}
	if cs == nil {
		return nil, apperror.NotFound("No work package is being created")
	}

	wp := cs.Apply()
	wp.Subject = strings.TrimSpace(wp.Subject)
	if wp.Subject == "" {
		return nil, apperror.PropertyConstraintViolation(errSubjectBlank)
	}
	if wp.StartDate != nil && wp.DueDate != nil && wp.DueDate.Before(*wp.StartDate) {
		return nil, apperror.PropertyConstraintViolation(errDueBeforeStart)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	project, err := uow.ProjectRepository().FindOne(ctx,
		specification.ByID{ID: wp.ProjectId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperror.NotFound("The requested project could not be found")
	}

	author, err := authorize(ctx, uow, project, entity.PermissionAddWorkPackages)
	if err != nil {
		return nil, err
	}
	wp.AuthorId = &author.Id

	if wp.ParentId != nil {
		parent, err := uow.WorkPackageRepository().FindOne(ctx,
			specification.ByID{ID: *wp.ParentId},
			specification.ByProjectID{ProjectID: project.Id},
		)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperror.PropertyConstraintViolation(errParentMissing)
		}
	}

	if err := uow.WorkPackageRepository().Create(ctx, wp); err != nil {
		return nil, fmt.Errorf("creating work package: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if err := session.Discard(ctx); err != nil {
		s.logger.Warn("WorkPackageCreate", "Failed to discard committed draft", map[string]interface{}{
			"scope": scope,
			"error": err.Error(),
		})
	}

	s.publishDraftEvent(ctx, dto.DraftEventMessage{
		Kind:          dto.DraftEventCommitted,
		Scope:         scope,
		UserId:        &author.Id,
		WorkPackageId: wp.Id,
		ProjectId:     wp.ProjectId,
		Subject:       wp.Subject,
	})
	s.publishEvent(ctx, events.TypeWorkPackageCreated, map[string]interface{}{
		"user_id":     author.Id.String(),
		"entity_type": "work_package",
		"entity_id":   wp.Id.String(),
		"project_id":  project.Identifier,
		"subject":     wp.Subject,
	})

	s.logger.Info("WorkPackageCreate", "Work package created", map[string]interface{}{
		"work_package_id": wp.Id.String(),
		"project":         project.Identifier,
	})

	return &dto.CommitDraftResponse{
		Id:        wp.Id,
		Subject:   wp.Subject,
		CreatedAt: wp.CreatedAt,
	}, nil
}

func (s *workPackageCreateService) publishDraftEvent(ctx context.Context, msg dto.DraftEventMessage) {
	if s.publisherService == nil {
		return
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("WorkPackageCreate", "Failed to publish draft event", map[string]interface{}{
			"kind":  msg.Kind,
			"error": err.Error(),
		})
	}
}

func (s *workPackageCreateService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("WorkPackageCreate", "Failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

func toDraftResponse(cs *changeset.Changeset, parent *entity.WorkPackage) *dto.DraftResponse {
	values := make(map[string]string)
	for _, field := range changeset.Fields() {
		values[field] = cs.Value(field)
	}

	res := &dto.DraftResponse{
		ProjectId: cs.WorkPackage().ProjectId,
		Values:    values,
		Changes:   cs.Changes(),
		Empty:     cs.Empty(),
	}
	if parent != nil {
		res.Parent = &dto.ParentSummary{
			Id:      parent.Id,
			Subject: parent.Subject,
			TypeId:  parent.TypeId,
		}
	}
	return res
}
