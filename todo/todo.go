// Package todo wires the task list, the form session and the mutation
// coordinator around one remote repository.
package todo

import (
	"context"
	"errors"

	"github.com/ncobase/taskdesk/logging/logger"
	"github.com/ncobase/taskdesk/todo/data/repository"
	"github.com/ncobase/taskdesk/todo/query"
	"github.com/ncobase/taskdesk/todo/service"
	"github.com/ncobase/taskdesk/todo/structs"
	"github.com/ncobase/taskdesk/todo/view"
)

type Task = structs.Task
type User = structs.User
type Filter = structs.Filter
type TaskBody = structs.TaskBody

type TodoRepository = repository.TodoRepository

// Options configures a Desk.
type Options struct {
	// Dialect of the list query, config.DialectFilter or config.DialectPlain
	Dialect string
	// Limit page size
	Limit int
	// ManualApply stops filter changes from fetching by themselves
	ManualApply bool
	Notifier    service.Notifier
	Logger      *logger.Logger
}

// Desk is one task management session.
type Desk struct {
	repo    TodoRepository
	logger  *logger.Logger
	fetcher *service.Fetcher
	mutator *service.Coordinator
	list    *view.ListView
	form    *view.FormSession
	manual  bool
}

// New creates a desk on page 1 with an empty filter. Nothing is fetched
// until the list is refreshed.
func New(repo TodoRepository, opts Options) (*Desk, error) {
	if repo == nil {
		return nil, errors.New("todo repository is nil")
	}
	l := opts.Logger
	if l == nil {
		l = logger.StdLogger()
	}

	d := &Desk{repo: repo, logger: l, manual: opts.ManualApply}
	d.fetcher = service.NewFetcher(repo, query.NewBuilder(opts.Dialect), l)
	d.mutator = service.NewCoordinator(repo, opts.Notifier, l)

	var vopts []view.Option
	if opts.ManualApply {
		vopts = append(vopts, view.WithManualApply())
	}
	d.list = view.NewListView(d.fetcher, d.mutator, opts.Limit, vopts...)
	d.form = view.NewFormSession(d.mutator)
	return d, nil
}

// List returns the task list.
func (d *Desk) List() *view.ListView { return d.list }

// Form returns the create/edit form.
func (d *Desk) Form() *view.FormSession { return d.form }

// ManualApply reports whether filter changes wait for List().Apply.
func (d *Desk) ManualApply() bool { return d.manual }

// Coordinator returns the mutation coordinator.
func (d *Desk) Coordinator() *service.Coordinator { return d.mutator }

// Assignees returns the users tasks can be assigned to.
func (d *Desk) Assignees(ctx context.Context) ([]*User, error) {
	users, err := d.repo.Assignees(ctx)
	if err != nil {
		d.logger.Errorf(ctx, "error fetching assignees: %v", err)
		return nil, err
	}
	return users, nil
}

// Task fetches one task.
func (d *Desk) Task(ctx context.Context, id structs.ID) (*Task, error) {
	return d.repo.Get(ctx, id)
}

// Edit opens the form on task id, fetched fresh from the server.
func (d *Desk) Edit(ctx context.Context, id structs.ID) (*Task, error) {
	t, err := d.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	d.form.OpenEdit(t)
	return t, nil
}
