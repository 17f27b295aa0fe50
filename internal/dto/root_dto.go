package dto

import "github.com/google/uuid"

type UserSummary struct {
	Id    uuid.UUID `json:"id"`
	Login string    `json:"login"`
	Name  string    `json:"name"`
	Admin bool      `json:"admin"`
}

// Root describes the caller's session. User is nil for anonymous callers.
type Root struct {
	User *UserSummary `json:"user"`
}
