package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusLocked  UserStatus = "locked"
	UserStatusInvited UserStatus = "invited"
)

type User struct {
	Id        uuid.UUID
	Login     string
	Name      string
	Email     string
	Admin     bool
	Status    UserStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
