// Package service holds the list fetcher and the task mutation coordinator.
package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/ncobase/taskdesk/ecode"
	"github.com/ncobase/taskdesk/logging/logger"
	"github.com/ncobase/taskdesk/todo/data/repository"
	"github.com/ncobase/taskdesk/todo/structs"
	"github.com/ncobase/taskdesk/tracing"
	"github.com/ncobase/taskdesk/validator"
	"go.opentelemetry.io/otel/attribute"
)

// ErrSubmissionPending is returned while another mutation is in flight.
var ErrSubmissionPending = errors.New(ecode.InProgress("a submission"))

// ValidationError lists the fields that stopped a mutation before any
// request was sent.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, k := range slices.Sorted(maps.Keys(e.Fields)) {
		msgs = append(msgs, e.Fields[k])
	}
	return "please fill all required fields: " + strings.Join(msgs, ", ")
}

// Code returns ecode.ParamErr.
func (e *ValidationError) Code() int { return ecode.ParamErr }

// Notifier shows the outcome of a mutation to the user.
type Notifier interface {
	Success(ctx context.Context, msg string)
	Error(ctx context.Context, msg string, err error)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) Success(context.Context, string) {}
func (NopNotifier) Error(context.Context, string, error) {}

// Refresher re-fetches the page currently shown.
type Refresher interface {
	Refresh(ctx context.Context) FetchResult
}

// Closer is the form session a submission came from.
type Closer interface {
	Close()
}

// Coordinator performs create, update, revoke and delete. At most one runs
// at a time; on success the current page is re-fetched and the originating
// form session closed, on failure the user is notified and the session
// stays open.
type Coordinator struct {
	repo      repository.TodoRepository
	notifier  Notifier
	logger    *logger.Logger
	pending   atomic.Bool
	mu        sync.RWMutex
	refresher Refresher
}

// NewCoordinator creates a coordinator; nil notifier and logger use defaults.
func NewCoordinator(repo repository.TodoRepository, n Notifier, l *logger.Logger) *Coordinator {
	if n == nil {
		n = NopNotifier{}
	}
	if l == nil {
		l = logger.StdLogger()
	}
	return &Coordinator{repo: repo, notifier: n, logger: l}
}

// SetRefresher sets the list re-fetched after each successful mutation.
func (c *Coordinator) SetRefresher(r Refresher) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refresher = r
}

// Pending reports whether a mutation is in flight.
func (c *Coordinator) Pending() bool { return c.pending.Load() }

// Create validates body and creates a task.
func (c *Coordinator) Create(ctx context.Context, body *structs.TaskBody, session Closer) error {
	if err := validateBody(body); err != nil {
		return err
	}
	return c.run(ctx, "create", "", session, func(ctx context.Context) error {
		return c.repo.Create(ctx, body)
	})
}

// Update validates body and updates task id, status included.
func (c *Coordinator) Update(ctx context.Context, id structs.ID, body *structs.TaskBody, session Closer) error {
	if id.IsZero() {
		return &ValidationError{Fields: map[string]string{"id": ecode.FieldIsRequired("id")}}
	}
	if err := validateBody(body); err != nil {
		return err
	}
	return c.run(ctx, "update", id, session, func(ctx context.Context) error {
		return c.repo.Update(ctx, id, body)
	})
}

// Revoke moves task id to the revoked status.
func (c *Coordinator) Revoke(ctx context.Context, id structs.ID) error {
	if id.IsZero() {
		return &ValidationError{Fields: map[string]string{"id": ecode.FieldIsRequired("id")}}
	}
	return c.run(ctx, "revoke", id, nil, func(ctx context.Context) error {
		return c.repo.Revoke(ctx, id)
	})
}

// Delete soft-deletes task id.
func (c *Coordinator) Delete(ctx context.Context, id structs.ID) error {
	if id.IsZero() {
		return &ValidationError{Fields: map[string]string{"id": ecode.FieldIsRequired("id")}}
	}
	return c.run(ctx, "delete", id, nil, func(ctx context.Context) error {
		return c.repo.Delete(ctx, id)
	})
}

var pastTense = map[string]string{
	"create": "created",
	"update": "updated",
	"revoke": "revoked",
	"delete": "deleted",
}

func (c *Coordinator) run(ctx context.Context, op string, id structs.ID, session Closer, call func(context.Context) error) (err error) {
	if !c.pending.CompareAndSwap(false, true) {
		return ErrSubmissionPending
	}
	defer c.pending.Store(false)

	ctx, span := tracing.StartSpan(ctx, "todo."+op, attribute.String("todo.id", id.String()))
	defer func() { tracing.End(span, err) }()

	if c.repo == nil {
		err = errors.New("todo repository is not configured")
	} else {
		err = call(ctx)
	}
	if err != nil {
		c.logger.Errorf(ctx, "%s todo %s: %v", op, id, err)
		c.notifier.Error(ctx, fmt.Sprintf("Failed to %s todo", op), err)
		return err
	}

	c.logger.Infof(ctx, "%s todo %s", pastTense[op], id)
	c.notifier.Success(ctx, fmt.Sprintf("Todo %s successfully", pastTense[op]))

	c.mu.RLock()
	r := c.refresher
	c.mu.RUnlock()
	if r != nil {
		r.Refresh(ctx)
	}
	if session != nil {
		session.Close()
	}
	return nil
}

func validateBody(body *structs.TaskBody) error {
	if body == nil {
		return &ValidationError{Fields: map[string]string{"_": ecode.FieldIsRequired("body")}}
	}
	if errs := validator.ValidateStruct(body); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
