// Package filter reads the work package table filters a client has active
// and turns them into default values for new work packages.
package filter

import (
	"encoding/json"
	"fmt"
	"strings"

	"workpackage-be/pkg/changeset"
)

const (
	OperatorEquals    = "="
	OperatorNotEquals = "!"
	OperatorAll       = "*"
	OperatorNone      = "!*"
)

type Filter struct {
	Name     string   `json:"name"`
	Operator string   `json:"operator"`
	Values   []string `json:"values"`
}

// Parse reads the table filter notation, a list of single-key objects:
//
//	[{"status":{"operator":"=","values":["1"]}},{"type":{"operator":"=","values":["2"]}}]
//
// An empty input yields no filters.
func Parse(raw string) ([]Filter, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var entries []map[string]struct {
		Operator string   `json:"operator"`
		Values   []string `json:"values"`
	}
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("invalid filter notation: %w", err)
	}

	filters := make([]Filter, 0, len(entries))
	for i, entry := range entries {
		if len(entry) != 1 {
			return nil, fmt.Errorf("invalid filter notation: entry %d must name exactly one filter", i)
		}
		for name, spec := range entry {
			if spec.Operator == "" {
				return nil, fmt.Errorf("invalid filter notation: filter %q has no operator", name)
			}
			filters = append(filters, Filter{
				Name:     name,
				Operator: spec.Operator,
				Values:   spec.Values,
			})
		}
	}
	return filters, nil
}

// fieldFor maps a filter name onto the changeset field it defaults.
func fieldFor(name string) (string, bool) {
	switch name {
	case "type":
		return changeset.FieldType, true
	case "status":
		return changeset.FieldStatus, true
	case "priority":
		return changeset.FieldPriority, true
	case "assignee", "assigned_to":
		return changeset.FieldAssignee, true
	case "responsible":
		return changeset.FieldResponsible, true
	case "parent":
		return changeset.FieldParent, true
	}
	return "", false
}
