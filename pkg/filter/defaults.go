package filter

import (
	"context"
	"fmt"

	"workpackage-be/pkg/changeset"

	"github.com/google/uuid"
)

// MeValue is the filter placeholder for the current user.
const MeValue = "me"

// AllowedValues decides whether a default may be written to a field of the
// draft. Implementations look the value up in the project's schema.
type AllowedValues interface {
	Allowed(ctx context.Context, projectId uuid.UUID, field, value string) (bool, error)
}

// CurrentUserFunc returns the user the request is made for, if any.
type CurrentUserFunc func(ctx context.Context) *uuid.UUID

type Defaults struct {
	allowed     AllowedValues
	currentUser CurrentUserFunc
}

func NewDefaults(allowed AllowedValues, currentUser CurrentUserFunc) *Defaults {
	return &Defaults{
		allowed:     allowed,
		currentUser: currentUser,
	}
}

// ApplyDefaults writes the first value of every "=" filter onto the matching
// changeset field. Fields listed in excluded are never written. Values the
// project does not allow are skipped.
func (d *Defaults) ApplyDefaults(ctx context.Context, cs *changeset.Changeset, filters []Filter, excluded []string) error {
	skip := make(map[string]bool, len(excluded))
	for _, name := range excluded {
		skip[name] = true
	}

	for _, f := range filters {
		field, ok := fieldFor(f.Name)
		if !ok || skip[field] || skip[f.Name] {
			continue
		}
		if f.Operator != OperatorEquals || len(f.Values) == 0 {
			continue
		}

		value := f.Values[0]
		if value == MeValue {
			if d.currentUser == nil {
				continue
			}
			user := d.currentUser(ctx)
			if user == nil {
				continue
			}
			value = user.String()
		}

		if d.allowed != nil {
			ok, err := d.allowed.Allowed(ctx, cs.WorkPackage().ProjectId, field, value)
			if err != nil {
				return fmt.Errorf("checking default %s=%s: %w", field, value, err)
			}
			if !ok {
				continue
			}
		}

		if err := cs.SetValue(field, value); err != nil {
			// Malformed filter values never make it into the draft.
			continue
		}
	}
	return nil
}
