// Package structs defines the todo domain models.
package structs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ncobase/taskdesk/types"
)

// ID is an opaque identifier. The wire sends ids as strings or numbers under
// varying keys; they all end up here as a string.
type ID string

// String returns the id.
func (id ID) String() string { return string(id) }

// IsZero reports whether id is empty.
func (id ID) IsZero() bool { return id == "" }

// UnmarshalJSON accepts strings, numbers and null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || string(b) == "null":
		*id = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("invalid id %s", b)
		}
		*id = ID(n.String())
	}
	return nil
}

// FirstID returns the first non-empty id.
func FirstID(ids ...ID) ID {
	for _, id := range ids {
		if !id.IsZero() {
			return id
		}
	}
	return ""
}

// Priority of a task
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists every priority, highest first.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Label returns the display label, e.g. "High".
func (p Priority) Label() string { return label(string(p)) }

// Status of a task
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusHold       Status = "hold"
	StatusCompleted  Status = "completed"
	StatusRevoked    Status = "revoked"
)

// Statuses lists every status in workflow order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusHold, StatusCompleted, StatusRevoked}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Label returns the display label, e.g. "In progress".
func (s Status) Label() string { return label(string(s)) }

func label(s string) string {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", " ")
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// User is an assignee.
type User struct {
	ID       ID     `json:"id"`
	Username string `json:"username"`
}

// Task is the client projection of a server-owned to-do item.
type Task struct {
	ID            ID         `json:"id"`
	Title         string     `json:"title"`
	ScheduledDate types.Date `json:"scheduled_date"`
	Priority      Priority   `json:"priority"`
	Status        Status     `json:"status"`
	AssigneeID    ID         `json:"user_id"`
	Assignee      string     `json:"assignee,omitempty"`
	Description   string     `json:"description,omitempty"`
}

// Filter holds the list filter criteria. Every field is optional; empty
// fields put no constraint on the list.
type Filter struct {
	Title         string
	AssigneeID    ID
	Status        Status
	Priority      Priority
	ScheduledDate types.Date
	StartDate     types.Date
	EndDate       types.Date
}

// IsEmpty reports whether f equals the empty default.
func (f Filter) IsEmpty() bool { return f == Filter{} }

// TaskBody is the create/update payload. Status is only sent when editing.
type TaskBody struct {
	Title         string     `json:"title" validate:"required"`
	ScheduledDate types.Date `json:"scheduled_date" validate:"required"`
	Priority      Priority   `json:"priority" validate:"required,oneof=high medium low"`
	AssigneeID    ID         `json:"user_id" label:"assignee" validate:"required"`
	Description   string     `json:"description"`
	Status        Status     `json:"status,omitempty" validate:"omitempty,oneof=pending in_progress hold completed revoked"`
}

// BodyOf returns the editable fields of t, status included.
func BodyOf(t *Task) TaskBody {
	return TaskBody{
		Title:         t.Title,
		ScheduledDate: t.ScheduledDate,
		Priority:      t.Priority,
		AssigneeID:    t.AssigneeID,
		Description:   t.Description,
		Status:        t.Status,
	}
}
