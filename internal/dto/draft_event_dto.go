package dto

import "github.com/google/uuid"

const (
	DraftEventCommitted = "committed"
	DraftEventDiscarded = "discarded"
)

// DraftEventMessage travels over the in-process draft topic.
type DraftEventMessage struct {
	Kind          string     `json:"kind"`
	Scope         string     `json:"scope"`
	UserId        *uuid.UUID `json:"user_id,omitempty"`
	WorkPackageId uuid.UUID  `json:"work_package_id"`
	ProjectId     uuid.UUID  `json:"project_id"`
	Subject       string     `json:"subject,omitempty"`
}
