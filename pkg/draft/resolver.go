// Package draft resolves the work package a user is creating: either the
// unsaved draft they left behind or a fresh one.
package draft

import (
	"context"
	"strconv"

	"workpackage-be/internal/pkg/logger"
	"workpackage-be/pkg/changeset"
	"workpackage-be/pkg/filter"
)

// Factory creates a new draft of a type within a project. A nil type lets
// the factory choose.
type Factory interface {
	CreateDraft(ctx context.Context, projectPath string, typeId *int64) (*changeset.Changeset, error)
}

// FilterDefaults writes defaults taken from the active table filters.
type FilterDefaults interface {
	ApplyDefaults(ctx context.Context, cs *changeset.Changeset, filters []filter.Filter, excluded []string) error
}

// excludedDefaults are never taken from filters; the type was requested
// explicitly.
var excludedDefaults = []string{changeset.FieldType}

type Resolver struct {
	factory  Factory
	defaults FilterDefaults
	logger   logger.ILogger
}

func NewResolver(factory Factory, defaults FilterDefaults, log logger.ILogger) *Resolver {
	return &Resolver{
		factory:  factory,
		defaults: defaults,
		logger:   log,
	}
}

// Resolve returns the session's draft when it holds unsaved edits of the
// requested type, and otherwise a new draft with filter defaults applied.
// An untouched draft is never reused. Factory errors are returned as is.
func (r *Resolver) Resolve(ctx context.Context, session *Session, params NavigationParams, filters []filter.Filter) (*changeset.Changeset, error) {
	existing, err := session.Draft(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil && Reusable(existing, params) {
		r.logger.Debug("DraftResolver", "Continuing open draft", map[string]interface{}{
			"scope": session.Scope(),
			"type":  params.TypeText(),
		})
		return existing, nil
	}

	cs, err := r.factory.CreateDraft(ctx, params.ProjectPath, params.TypeId)
	if err != nil {
		return nil, err
	}

	if err := r.defaults.ApplyDefaults(ctx, cs, filters, excludedDefaults); err != nil {
		return nil, err
	}

	r.logger.Debug("DraftResolver", "Created new draft", map[string]interface{}{
		"scope":   session.Scope(),
		"project": params.ProjectPath,
		"type":    params.TypeText(),
	})
	return cs, nil
}

// Reusable applies the resume policy: the draft must hold changes, and its
// type must match the requested one (both unset counts as a match).
func Reusable(existing *changeset.Changeset, params NavigationParams) bool {
	hasChanges := !existing.Empty()

	existingType := existing.WorkPackage().TypeId
	typeEmpty := existingType == nil && !params.HasType()
	typeMatches := existingType != nil && strconv.FormatInt(*existingType, 10) == params.TypeText()

	return hasChanges && (typeEmpty || typeMatches)
}
