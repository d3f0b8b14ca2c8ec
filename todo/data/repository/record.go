package repository

import (
	"github.com/ncobase/taskdesk/todo/structs"
	"github.com/ncobase/taskdesk/types"
)

// taskRecord is a task as the API sends it. Depending on the server
// revision the id arrives as uuid, id or todo_id and the assignee as user_id
// or a nested user.
type taskRecord struct {
	UUID          structs.ID       `json:"uuid"`
	ID            structs.ID       `json:"id"`
	TodoID        structs.ID       `json:"todo_id"`
	Title         string           `json:"title"`
	ScheduledDate types.Date       `json:"scheduled_date"`
	Priority      structs.Priority `json:"priority"`
	Status        structs.Status   `json:"status"`
	UserID        structs.ID       `json:"user_id"`
	User          *userRecord      `json:"user"`
	Description   string           `json:"description"`
}

type userRecord struct {
	UUID     structs.ID `json:"uuid"`
	ID       structs.ID `json:"id"`
	UserID   structs.ID `json:"user_id"`
	Username string     `json:"username"`
	Name     string     `json:"name"`
}

func (r *userRecord) toUser() *structs.User {
	name := r.Username
	if name == "" {
		name = r.Name
	}
	return &structs.User{
		ID:       structs.FirstID(r.ID, r.UUID, r.UserID),
		Username: name,
	}
}

func (r *taskRecord) toTask() *structs.Task {
	t := &structs.Task{
		ID:            structs.FirstID(r.UUID, r.ID, r.TodoID),
		Title:         r.Title,
		ScheduledDate: r.ScheduledDate,
		Priority:      r.Priority,
		Status:        r.Status,
		AssigneeID:    r.UserID,
		Description:   r.Description,
	}
	if r.User != nil {
		u := r.User.toUser()
		t.Assignee = u.Username
		if t.AssigneeID.IsZero() {
			t.AssigneeID = u.ID
		}
	}
	return t
}
