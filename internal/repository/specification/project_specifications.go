package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByIdentifier struct {
	Identifier string
}

func (s ByIdentifier) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("identifier = ?", s.Identifier)
}

type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("active = ?", true)
}

type ByProjectID struct {
	ProjectID uuid.UUID
}

func (s ByProjectID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("project_id = ?", s.ProjectID)
}

// VisibleTo limits saved queries to public ones and those owned by the user.
// A nil user only sees public queries.
type VisibleTo struct {
	UserID *uuid.UUID
}

func (s VisibleTo) Apply(db *gorm.DB) *gorm.DB {
	if s.UserID == nil {
		return db.Where("public = ?", true)
	}
	return db.Where("public = ? OR user_id = ?", true, *s.UserID)
}
