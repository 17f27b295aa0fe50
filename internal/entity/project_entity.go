package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	PermissionAddWorkPackages  = "add_work_packages"
	PermissionViewWorkPackages = "view_work_packages"
)

type Project struct {
	Id         uuid.UUID
	Identifier string
	Name       string
	Active     bool
	TypeIds    []int64 // enabled types
	CreatedAt  time.Time
}

// HasType reports whether typeId is enabled in the project.
func (p *Project) HasType(typeId int64) bool {
	for _, id := range p.TypeIds {
		if id == typeId {
			return true
		}
	}
	return false
}

type Member struct {
	Id          uuid.UUID
	ProjectId   uuid.UUID
	UserId      uuid.UUID
	Permissions []string
	CreatedAt   time.Time
}

func (m *Member) Allowed(permission string) bool {
	for _, p := range m.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}
