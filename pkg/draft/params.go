package draft

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// NavigationParams describe what the user asked to create.
type NavigationParams struct {
	TypeId      *int64
	ParentId    *uuid.UUID
	ProjectPath string
}

// ParseNavigationParams reads the raw router values. A type that is not a
// positive integer means no type was requested; an unparseable parent is
// dropped the same way.
func ParseNavigationParams(rawType, rawParent, projectPath string) NavigationParams {
	params := NavigationParams{ProjectPath: strings.TrimSpace(projectPath)}

	if id, err := strconv.ParseInt(strings.TrimSpace(rawType), 10, 64); err == nil && id != 0 {
		params.TypeId = &id
	}
	if rawParent = strings.TrimSpace(rawParent); rawParent != "" {
		if id, err := uuid.Parse(rawParent); err == nil {
			params.ParentId = &id
		}
	}
	return params
}

// HasType reports whether a type was requested.
func (p NavigationParams) HasType() bool {
	return p.TypeId != nil
}

// TypeText is the requested type identifier as text, empty when unset.
func (p NavigationParams) TypeText() string {
	if p.TypeId == nil {
		return ""
	}
	return strconv.FormatInt(*p.TypeId, 10)
}
