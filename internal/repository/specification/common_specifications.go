package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByID filters by ID
type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// ByNumericID filters the integer keyed reference tables.
type ByNumericID struct {
	ID int64
}

func (s ByNumericID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// IsDefault selects the default row of a reference table.
type IsDefault struct{}

func (s IsDefault) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_default = ?", true)
}
