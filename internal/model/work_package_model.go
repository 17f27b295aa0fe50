package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkPackage struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ProjectId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	TypeId         *int64         `gorm:"index"`
	StatusId       *int64         `gorm:"index"`
	PriorityId     *int64         `gorm:"index"`
	AuthorId       *uuid.UUID     `gorm:"type:uuid;index"`
	AssigneeId     *uuid.UUID     `gorm:"type:uuid;index"`
	ResponsibleId  *uuid.UUID     `gorm:"type:uuid"`
	ParentId       *uuid.UUID     `gorm:"type:uuid;index"`
	Subject        string         `gorm:"type:varchar(255);not null"`
	Description    string         `gorm:"type:text"`
	StartDate      *time.Time     `gorm:"type:date"`
	DueDate        *time.Time     `gorm:"type:date"`
	EstimatedHours *float64
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (WorkPackage) TableName() string {
	return "work_packages"
}

func (w *WorkPackage) BeforeCreate(tx *gorm.DB) error {
	if w.Id == uuid.Nil {
		w.Id = uuid.New()
	}
	return nil
}

type Type struct {
	Id          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Position    int    `gorm:"default:1"`
	IsDefault   bool   `gorm:"default:false"`
	IsMilestone bool   `gorm:"default:false"`
}

func (Type) TableName() string {
	return "types"
}

type Status struct {
	Id        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Position  int    `gorm:"default:1"`
	IsDefault bool   `gorm:"default:false"`
	IsClosed  bool   `gorm:"default:false"`
}

func (Status) TableName() string {
	return "statuses"
}

type Priority struct {
	Id        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Position  int    `gorm:"default:1"`
	IsDefault bool   `gorm:"default:false"`
}

func (Priority) TableName() string {
	return "priorities"
}
