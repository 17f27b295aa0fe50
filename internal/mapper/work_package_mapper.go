package mapper

import (
	"time"

	"workpackage-be/internal/entity"
	"workpackage-be/internal/model"
)

type WorkPackageMapper struct{}

func NewWorkPackageMapper() *WorkPackageMapper {
	return &WorkPackageMapper{}
}

func (m *WorkPackageMapper) ToEntity(w *model.WorkPackage) *entity.WorkPackage {
	if w == nil {
		return nil
	}

	var updatedAt *time.Time
	if !w.UpdatedAt.IsZero() {
		t := w.UpdatedAt
		updatedAt = &t
	}

	return &entity.WorkPackage{
		Id:             w.Id,
		ProjectId:      w.ProjectId,
		TypeId:         w.TypeId,
		StatusId:       w.StatusId,
		PriorityId:     w.PriorityId,
		AuthorId:       w.AuthorId,
		AssigneeId:     w.AssigneeId,
		ResponsibleId:  w.ResponsibleId,
		ParentId:       w.ParentId,
		Subject:        w.Subject,
		Description:    w.Description,
		StartDate:      w.StartDate,
		DueDate:        w.DueDate,
		EstimatedHours: w.EstimatedHours,
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *WorkPackageMapper) ToModel(w *entity.WorkPackage) *model.WorkPackage {
	if w == nil {
		return nil
	}

	var updatedAt time.Time
	if w.UpdatedAt != nil {
		updatedAt = *w.UpdatedAt
	}

	return &model.WorkPackage{
		Id:             w.Id,
		ProjectId:      w.ProjectId,
		TypeId:         w.TypeId,
		StatusId:       w.StatusId,
		PriorityId:     w.PriorityId,
		AuthorId:       w.AuthorId,
		AssigneeId:     w.AssigneeId,
		ResponsibleId:  w.ResponsibleId,
		ParentId:       w.ParentId,
		Subject:        w.Subject,
		Description:    w.Description,
		StartDate:      w.StartDate,
		DueDate:        w.DueDate,
		EstimatedHours: w.EstimatedHours,
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}
