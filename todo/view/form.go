package view

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ncobase/taskdesk/todo/service"
	"github.com/ncobase/taskdesk/todo/structs"
	"github.com/ncobase/taskdesk/types"
)

// ErrNoSession is returned when submitting with no form open.
var ErrNoSession = errors.New("no form is open")

// Mode of a form session
type Mode int

const (
	ModeClosed Mode = iota
	ModeCreate
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeEdit:
		return "edit"
	default:
		return "closed"
	}
}

// Form field keys
const (
	FieldTitle         = "title"
	FieldScheduledDate = "date"
	FieldPriority      = "priority"
	FieldAssignee      = "assignee"
	FieldDescription   = "description"
	FieldStatus        = "status"
)

// FormSession is the single create-or-edit form. Opening for create always
// starts blank, opening for edit always reloads from the task, and closing
// always discards the working copy.
type FormSession struct {
	mu      sync.Mutex
	mutator *service.Coordinator
	mode    Mode
	taskID  structs.ID
	body    structs.TaskBody
}

// NewFormSession returns a closed form submitting through mutator.
func NewFormSession(mutator *service.Coordinator) *FormSession {
	return &FormSession{mutator: mutator}
}

// OpenCreate opens a blank form.
func (s *FormSession) OpenCreate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = ModeCreate
	s.taskID = ""
	s.body = structs.TaskBody{}
}

// OpenEdit opens the form prefilled from t, status included.
func (s *FormSession) OpenEdit(t *structs.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = ModeEdit
	s.taskID = t.ID
	s.body = structs.BodyOf(t)
}

// Close discards the working copy.
func (s *FormSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = ModeClosed
	s.taskID = ""
	s.body = structs.TaskBody{}
}

// Mode returns the current mode.
func (s *FormSession) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// IsOpen reports whether a form is open.
func (s *FormSession) IsOpen() bool { return s.Mode() != ModeClosed }

// TaskID returns the id of the task being edited.
func (s *FormSession) TaskID() structs.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.taskID
}

// Values returns a copy of the working copy.
func (s *FormSession) Values() structs.TaskBody {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.body
}

// Set replaces one field of the working copy. Status can only be set while
// editing.
func (s *FormSession) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == ModeClosed {
		return ErrNoSession
	}
	value = strings.TrimSpace(value)
	switch strings.ToLower(key) {
	case FieldTitle:
		s.body.Title = value
	case FieldScheduledDate, "scheduled_date":
		d, err := types.ParseDate(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		s.body.ScheduledDate = d
	case FieldPriority:
		s.body.Priority = structs.Priority(strings.ToLower(value))
	case FieldAssignee, "user_id":
		s.body.AssigneeID = structs.ID(value)
	case FieldDescription:
		s.body.Description = value
	case FieldStatus:
		if s.mode != ModeEdit {
			return errors.New("status can only be changed while editing")
		}
		s.body.Status = structs.Status(strings.ToLower(value))
	default:
		return fmt.Errorf("unknown field %q", key)
	}
	return nil
}

// Submit sends the working copy as a create or an update. On success the
// form is closed; on failure it stays open with its values.
func (s *FormSession) Submit(ctx context.Context) error {
	s.mu.Lock()
	mode, id, body := s.mode, s.taskID, s.body
	s.mu.Unlock()

	switch mode {
	case ModeCreate:
		body.Status = ""
		return s.mutator.Create(ctx, &body, s)
	case ModeEdit:
		return s.mutator.Update(ctx, id, &body, s)
	default:
		return ErrNoSession
	}
}
