package entity

import (
	"time"

	"github.com/google/uuid"
)

type WorkPackage struct {
	Id             uuid.UUID
	ProjectId      uuid.UUID
	TypeId         *int64
	StatusId       *int64
	PriorityId     *int64
	AuthorId       *uuid.UUID
	AssigneeId     *uuid.UUID
	ResponsibleId  *uuid.UUID
	ParentId       *uuid.UUID
	Subject        string
	Description    string
	StartDate      *time.Time
	DueDate        *time.Time
	EstimatedHours *float64
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// IsNew reports whether the work package has not been persisted yet.
func (w *WorkPackage) IsNew() bool {
	return w.Id == uuid.Nil
}

type Type struct {
	Id          int64
	Name        string
	Position    int
	IsDefault   bool
	IsMilestone bool
}

type Status struct {
	Id        int64
	Name      string
	Position  int
	IsDefault bool
	IsClosed  bool
}

type Priority struct {
	Id        int64
	Name      string
	Position  int
	IsDefault bool
}
