package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Query struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ProjectId *uuid.UUID     `gorm:"type:uuid;index"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name      string         `gorm:"type:varchar(255);not null"`
	Public    bool           `gorm:"default:false"`
	Filters   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (Query) TableName() string {
	return "queries"
}
