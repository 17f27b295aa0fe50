package scope

import "gorm.io/gorm"

// OrderByPosition sorts reference tables the way they are listed in forms.
func OrderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC").Order("id ASC")
}

func WithEnabledTypes(db *gorm.DB) *gorm.DB {
	return db.Preload("Types", OrderByPosition)
}
