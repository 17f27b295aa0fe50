package service

import (
	"context"
	"errors"

	"workpackage-be/internal/entity"
	"workpackage-be/internal/pkg/apperror"
	"workpackage-be/internal/pkg/requestctx"
	"workpackage-be/internal/repository/specification"
	"workpackage-be/internal/repository/unitofwork"
	"workpackage-be/pkg/changeset"
	"workpackage-be/pkg/draft"
)

var errProjectRequired = errors.New("project is required")

type draftFactory struct {
	uowFactory unitofwork.RepositoryFactory
}

// NewDraftFactory builds new drafts from the project's schema: its enabled
// types and the default status and priority.
func NewDraftFactory(uowFactory unitofwork.RepositoryFactory) draft.Factory {
	return &draftFactory{uowFactory: uowFactory}
}

func (f *draftFactory) CreateDraft(ctx context.Context, projectPath string, typeId *int64) (*changeset.Changeset, error) {
	if projectPath == "" {
		return nil, apperror.InvalidQuery(errProjectRequired)
	}

	uow := f.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindOne(ctx,
		specification.ByIdentifier{Identifier: projectPath},
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

	wp := &entity.WorkPackage{
		ProjectId: project.Id,
		AuthorId:  &author.Id,
	}

	wp.TypeId, err = f.chooseType(ctx, uow, project, typeId)
	if err != nil {
		return nil, err
	}

	status, err := uow.StatusRepository().FindOne(ctx, specification.IsDefault{})
	if err != nil {
		return nil, err
	}
	if status != nil {
		wp.StatusId = &status.Id
	}

	priority, err := uow.PriorityRepository().FindOne(ctx, specification.IsDefault{})
	if err != nil {
		return nil, err
	}
	if priority != nil {
		wp.PriorityId = &priority.Id
	}

	return changeset.New(wp), nil
}

// chooseType keeps the requested type when the project has it enabled and
// falls back to the project's default type, then to its first one.
func (f *draftFactory) chooseType(ctx context.Context, uow unitofwork.UnitOfWork, project *entity.Project, requested *int64) (*int64, error) {
	if requested != nil && project.HasType(*requested) {
		id := *requested
		return &id, nil
	}
	if len(project.TypeIds) == 0 {
		return nil, nil
	}

	types, err := uow.TypeRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var first *int64
	for _, t := range types {
		if !project.HasType(t.Id) {
			continue
		}
		id := t.Id
		if t.IsDefault {
			return &id, nil
		}
		if first == nil {
			first = &id
		}
	}
	return first, nil
}

// authorize returns the current user when they hold permission in project.
// Anonymous callers, inactive users and non members get MissingPermission.
func authorize(ctx context.Context, uow unitofwork.UnitOfWork, project *entity.Project, permission string) (*entity.User, error) {
	userId := requestctx.UserID(ctx)
	if userId == nil {
		return nil, apperror.MissingPermission("You are not authorized to access this resource.")
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: *userId})
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive() {
		return nil, apperror.MissingPermission("You are not authorized to access this resource.")
	}
	if user.Admin {
		return user, nil
	}

	member, err := uow.ProjectRepository().FindMember(ctx, project.Id, user.Id)
	if err != nil {
		return nil, err
	}
	if member == nil || !member.Allowed(permission) {
		return nil, apperror.MissingPermission("You are not authorized to access this resource.")
	}
	return user, nil
}
