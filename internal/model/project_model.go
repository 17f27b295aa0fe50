package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Project struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Identifier string         `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name       string         `gorm:"type:varchar(255);not null"`
	Active     bool           `gorm:"default:true"`
	Types      []Type         `gorm:"many2many:projects_types;"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.Id == uuid.Nil {
		p.Id = uuid.New()
	}
	return nil
}

type Member struct {
	Id          uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	ProjectId   uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_members_project_user,priority:1"`
	UserId      uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_members_project_user,priority:2"`
	Permissions datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	CreatedAt   time.Time                   `gorm:"autoCreateTime"`
}

func (Member) TableName() string {
	return "members"
}

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	return nil
}
