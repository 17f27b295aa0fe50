package changeset

import (
	"fmt"
	"strconv"
	"time"

	"workpackage-be/internal/entity"

	"github.com/google/uuid"
)

// Kind describes how a field value is written as text.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindUUID
	KindDate
	KindDecimal
)

const DateLayout = "2006-01-02"

const (
	FieldSubject       = "subject"
	FieldDescription   = "description"
	FieldType          = "type"
	FieldStatus        = "status"
	FieldPriority      = "priority"
	FieldAssignee      = "assignee"
	FieldResponsible   = "responsible"
	FieldParent        = "parent"
	FieldStartDate     = "startDate"
	FieldDueDate       = "dueDate"
	FieldEstimatedTime = "estimatedTime"
)

var fieldKinds = map[string]Kind{
	FieldSubject:       KindText,
	FieldDescription:   KindText,
	FieldType:          KindInt,
	FieldStatus:        KindInt,
	FieldPriority:      KindInt,
	FieldAssignee:      KindUUID,
	FieldResponsible:   KindUUID,
	FieldParent:        KindUUID,
	FieldStartDate:     KindDate,
	FieldDueDate:       KindDate,
	FieldEstimatedTime: KindDecimal,
}

// KindOf returns the kind of a known field.
func KindOf(field string) (Kind, bool) {
	k, ok := fieldKinds[field]
	return k, ok
}

// Fields lists every writable field name.
func Fields() []string {
	names := make([]string, 0, len(fieldKinds))
	for name := range fieldKinds {
		names = append(names, name)
	}
	return names
}

// validate checks a textual value against the field kind. The empty string
// clears the field and is always accepted.
func validate(kind Kind, value string) error {
	if value == "" {
		return nil
	}
	var err error
	switch kind {
	case KindInt:
		var id int64
		id, err = strconv.ParseInt(value, 10, 64)
		if err == nil && id <= 0 {
			err = fmt.Errorf("id must be positive")
		}
	case KindUUID:
		_, err = uuid.Parse(value)
	case KindDate:
		_, err = time.Parse(DateLayout, value)
	case KindDecimal:
		var f float64
		f, err = strconv.ParseFloat(value, 64)
		if err == nil && f < 0 {
			err = fmt.Errorf("must not be negative")
		}
	}
	return err
}

func formatInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func formatUUID(v *uuid.UUID) string {
	if v == nil {
		return ""
	}
	return v.String()
}

func formatDate(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format(DateLayout)
}

func formatDecimal(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// read returns the textual value of field on the work package.
func read(wp *entity.WorkPackage, field string) string {
	switch field {
	case FieldSubject:
		return wp.Subject
	case FieldDescription:
		return wp.Description
	case FieldType:
		return formatInt(wp.TypeId)
	case FieldStatus:
		return formatInt(wp.StatusId)
	case FieldPriority:
		return formatInt(wp.PriorityId)
	case FieldAssignee:
		return formatUUID(wp.AssigneeId)
	case FieldResponsible:
		return formatUUID(wp.ResponsibleId)
	case FieldParent:
		return formatUUID(wp.ParentId)
	case FieldStartDate:
		return formatDate(wp.StartDate)
	case FieldDueDate:
		return formatDate(wp.DueDate)
	case FieldEstimatedTime:
		return formatDecimal(wp.EstimatedHours)
	}
	return ""
}

func parseInt(value string) *int64 {
	if value == "" {
		return nil
	}
	id, _ := strconv.ParseInt(value, 10, 64)
	return &id
}

func parseUUID(value string) *uuid.UUID {
	if value == "" {
		return nil
	}
	id, _ := uuid.Parse(value)
	return &id
}

func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, _ := time.Parse(DateLayout, value)
	return &t
}

func parseDecimal(value string) *float64 {
	if value == "" {
		return nil
	}
	f, _ := strconv.ParseFloat(value, 64)
	return &f
}

// write stores an already validated value on the work package.
func write(wp *entity.WorkPackage, field, value string) {
	switch field {
	case FieldSubject:
		wp.Subject = value
	case FieldDescription:
		wp.Description = value
	case FieldType:
		wp.TypeId = parseInt(value)
	case FieldStatus:
		wp.StatusId = parseInt(value)
	case FieldPriority:
		wp.PriorityId = parseInt(value)
	case FieldAssignee:
		wp.AssigneeId = parseUUID(value)
	case FieldResponsible:
		wp.ResponsibleId = parseUUID(value)
	case FieldParent:
		wp.ParentId = parseUUID(value)
	case FieldStartDate:
		wp.StartDate = parseDate(value)
	case FieldDueDate:
		wp.DueDate = parseDate(value)
	case FieldEstimatedTime:
		wp.EstimatedHours = parseDecimal(value)
	}
}
