package dto

import (
	"time"

	"github.com/google/uuid"
)

// NewWorkPackageRequest carries the navigation parameters of the create
// screen. Type and ParentId are kept raw; unparseable values mean "not given".
type NewWorkPackageRequest struct {
	ProjectPath string `query:"project"`
	Type        string `query:"type"`
	ParentId    string `query:"parent_id"`
	Filters     string `query:"filters"`
	QueryId     string `query:"query_id" validate:"omitempty,uuid"`
}

type UpdateDraftRequest struct {
	Values map[string]string `json:"values" validate:"required,min=1"`
}

type ParentSummary struct {
	Id      uuid.UUID `json:"id"`
	Subject string    `json:"subject"`
	TypeId  *int64    `json:"type_id,omitempty"`
}

type DraftResponse struct {
	ProjectId uuid.UUID         `json:"project_id"`
	Values    map[string]string `json:"values"`
	Changes   map[string]string `json:"changes"`
	Empty     bool              `json:"empty"`
	Parent    *ParentSummary    `json:"parent,omitempty"`
}

type CommitDraftResponse struct {
	Id        uuid.UUID `json:"id"`
	Subject   string    `json:"subject"`
	CreatedAt time.Time `json:"created_at"`
}
