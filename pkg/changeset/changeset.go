// Package changeset holds unsaved edits made to a work package.
package changeset

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"workpackage-be/internal/entity"
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrInvalidValue = errors.New("invalid value")
)

// Changeset wraps a work package snapshot and the field values changed on
// top of it. The snapshot itself is never modified; Apply produces the merged
// result. A Changeset is safe for concurrent use.
type Changeset struct {
	mu          sync.RWMutex
	workPackage *entity.WorkPackage
	changes     map[string]string
}

func New(wp *entity.WorkPackage) *Changeset {
	if wp == nil {
		wp = &entity.WorkPackage{}
	}
	return &Changeset{
		workPackage: wp,
		changes:     make(map[string]string),
	}
}

// WorkPackage returns the wrapped snapshot.
func (c *Changeset) WorkPackage() *entity.WorkPackage {
	return c.workPackage
}

// Empty reports whether no field has been changed.
func (c *Changeset) Empty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.changes) == 0
}

// Validate reports whether value may be written to field.
func Validate(field, value string) error {
	kind, ok := fieldKinds[field]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	if err := validate(kind, value); err != nil {
		return fmt.Errorf("%w for %s: %q: %v", ErrInvalidValue, field, value, err)
	}
	return nil
}

func (c *Changeset) SetValue(field, value string) error {
	if err := Validate(field, value); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.changes[field] = value
	return nil
}

// Value returns the changed value of field, or the snapshot value.
func (c *Changeset) Value(field string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.changes[field]; ok {
		return v
	}
	return read(c.workPackage, field)
}

func (c *Changeset) IsChanged(field string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.changes[field]
	return ok
}

// Changes returns a copy of the changed fields.
func (c *Changeset) Changes() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]string, len(c.changes))
	for k, v := range c.changes {
		out[k] = v
	}
	return out
}

// Apply returns a copy of the snapshot with all changes written to it.
func (c *Changeset) Apply() *entity.WorkPackage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	wp := *c.workPackage
	for field, value := range c.changes {
		write(&wp, field, value)
	}
	return &wp
}

type wireChangeset struct {
	WorkPackage *entity.WorkPackage `json:"work_package"`
	Changes     map[string]string   `json:"changes"`
}

func (c *Changeset) MarshalJSON() ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return json.Marshal(wireChangeset{WorkPackage: c.workPackage, Changes: c.changes})
}

func (c *Changeset) UnmarshalJSON(data []byte) error {
	var w wireChangeset
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.WorkPackage == nil {
		w.WorkPackage = &entity.WorkPackage{}
	}
	if w.Changes == nil {
		w.Changes = make(map[string]string)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.workPackage = w.WorkPackage
	c.changes = w.Changes
	return nil
}
