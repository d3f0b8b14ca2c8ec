// Package repository reads and writes tasks through the remote todo API.
package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"

	"github.com/ncobase/taskdesk/cache"
	"github.com/ncobase/taskdesk/config"
	"github.com/ncobase/taskdesk/logging/logger"
	"github.com/ncobase/taskdesk/net/client"
	"github.com/ncobase/taskdesk/net/resp"
	"github.com/ncobase/taskdesk/paging"
	"github.com/ncobase/taskdesk/todo/structs"
)

// ErrMissingID is returned for operations on a task without id.
var ErrMissingID = errors.New("task id is required")

// TodoRepository is the remote task resource.
type TodoRepository interface {
	List(ctx context.Context, query url.Values) (*paging.Result[*structs.Task], error)
	Assignees(ctx context.Context) ([]*structs.User, error)
	Get(ctx context.Context, id structs.ID) (*structs.Task, error)
	Create(ctx context.Context, body *structs.TaskBody) error
	Update(ctx context.Context, id structs.ID, body *structs.TaskBody) error
	Revoke(ctx context.Context, id structs.ID) error
	Delete(ctx context.Context, id structs.ID) error
}

// Doer sends API requests; *client.Client implements it.
type Doer interface {
	Do(ctx context.Context, r *client.Request) (*resp.Envelope, error)
}

type todoRepository struct {
	api       Doer
	endpoints *config.Endpoints
	assignees *cache.Cache[[]*structs.User]
}

const assigneeCacheField = "all"

// NewTodoRepository returns the remote repository. assignees may be nil.
func NewTodoRepository(api Doer, endpoints *config.Endpoints, assignees *cache.Cache[[]*structs.User]) (TodoRepository, error) {
	if api == nil {
		return nil, errors.New("api client is nil")
	}
	if endpoints == nil {
		return nil, errors.New("endpoints are not configured")
	}
	return &todoRepository{api: api, endpoints: endpoints, assignees: assignees}, nil
}

func (r *todoRepository) List(ctx context.Context, query url.Values) (*paging.Result[*structs.Task], error) {
	env, err := r.api.Do(ctx, &client.Request{Method: http.MethodGet, Path: r.endpoints.List, Query: query})
	if err != nil {
		return nil, err
	}
	var records []*taskRecord
	if err := env.Into(&records); err != nil {
		return nil, err
	}

	items := make([]*structs.Task, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		items = append(items, rec.toTask())
	}
	total := env.Total
	if total < len(items) {
		total = len(items)
	}
	return &paging.Result[*structs.Task]{Items: items, Total: total}, nil
}

func (r *todoRepository) Assignees(ctx context.Context) ([]*structs.User, error) {
	if cached, err := r.assignees.Get(ctx, assigneeCacheField); err != nil {
		logger.Warnf(ctx, "assignee cache read failed: %v", err)
	} else if cached != nil {
		return *cached, nil
	}

	env, err := r.api.Do(ctx, &client.Request{Method: http.MethodGet, Path: r.endpoints.Assignee})
	if err != nil {
		return nil, err
	}
	var records []*userRecord
	if err := env.Into(&records); err != nil {
		return nil, err
	}
	users := make([]*structs.User, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		users = append(users, rec.toUser())
	}

	if err := r.assignees.Set(ctx, assigneeCacheField, &users); err != nil {
		logger.Warnf(ctx, "assignee cache write failed: %v", err)
	}
	return users, nil
}

func (r *todoRepository) Get(ctx context.Context, id structs.ID) (*structs.Task, error) {
	p, err := r.itemPath(id)
	if err != nil {
		return nil, err
	}
	env, err := r.api.Do(ctx, &client.Request{Method: http.MethodGet, Path: p})
	if err != nil {
		return nil, err
	}
	var rec taskRecord
	if err := env.Into(&rec); err != nil {
		return nil, err
	}
	task := rec.toTask()
	if task.ID.IsZero() {
		task.ID = id
	}
	return task, nil
}

func (r *todoRepository) Create(ctx context.Context, body *structs.TaskBody) error {
	create := *body
	// status is server-assigned on create
	create.Status = ""
	_, err := r.api.Do(ctx, &client.Request{Method: http.MethodPost, Path: r.endpoints.Todo, JSON: &create})
	return err
}

func (r *todoRepository) Update(ctx context.Context, id structs.ID, body *structs.TaskBody) error {
	p, err := r.itemPath(id)
	if err != nil {
		return err
	}
	_, err = r.api.Do(ctx, &client.Request{Method: http.MethodPut, Path: p, JSON: body})
	return err
}

func (r *todoRepository) Revoke(ctx context.Context, id structs.ID) error {
	p, err := r.itemPath(id)
	if err != nil {
		return err
	}
	_, err = r.api.Do(ctx, &client.Request{Method: http.MethodPut, Path: path.Join(p, "revoke")})
	return err
}

func (r *todoRepository) Delete(ctx context.Context, id structs.ID) error {
	p, err := r.itemPath(id)
	if err != nil {
		return err
	}
	_, err = r.api.Do(ctx, &client.Request{Method: http.MethodDelete, Path: p})
	return err
}

func (r *todoRepository) itemPath(id structs.ID) (string, error) {
	if id.IsZero() {
		return "", ErrMissingID
	}
	return fmt.Sprintf("%s/%s", r.endpoints.Todo, url.PathEscape(id.String())), nil
}
