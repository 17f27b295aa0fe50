package service

import (
	"context"
	"strconv"

	"workpackage-be/internal/repository/specification"
	"workpackage-be/internal/repository/unitofwork"
	"workpackage-be/pkg/changeset"
	"workpackage-be/pkg/filter"

	"github.com/google/uuid"
)

type allowedValues struct {
	uowFactory unitofwork.RepositoryFactory
}

// NewAllowedValues checks filter defaults against what the project offers.
func NewAllowedValues(uowFactory unitofwork.RepositoryFactory) filter.AllowedValues {
	return &allowedValues{uowFactory: uowFactory}
}

func (a *allowedValues) Allowed(ctx context.Context, projectId uuid.UUID, field, value string) (bool, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)

	switch field {
	case changeset.FieldType:
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return false, nil
		}
		project, err := uow.ProjectRepository().FindOne(ctx, specification.ByID{ID: projectId})
		if err != nil || project == nil {
			return false, err
		}
		return project.HasType(id), nil

	case changeset.FieldStatus:
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return false, nil
		}
		status, err := uow.StatusRepository().FindOne(ctx, specification.ByNumericID{ID: id})
		return status != nil, err

	case changeset.FieldPriority:
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return false, nil
		}
		priority, err := uow.PriorityRepository().FindOne(ctx, specification.ByNumericID{ID: id})
		return priority != nil, err

	case changeset.FieldAssignee, changeset.FieldResponsible:
		userId, err := uuid.Parse(value)
		if err != nil {
			return false, nil
		}
		member, err := uow.ProjectRepository().FindMember(ctx, projectId, userId)
		return member != nil, err

	case changeset.FieldParent:
		id, err := uuid.Parse(value)
		if err != nil {
			return false, nil
		}
		parent, err := uow.WorkPackageRepository().FindOne(ctx,
			specification.ByID{ID: id},
			specification.ByProjectID{ProjectID: projectId},
		)
		return parent != nil, err
	}

	return true, nil
}
