package todo

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"testing"

	"github.com/ncobase/taskdesk/paging"
	"github.com/ncobase/taskdesk/todo/structs"
	"github.com/ncobase/taskdesk/todo/view"
	"github.com/ncobase/taskdesk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	mu      sync.Mutex
	tasks   []*structs.Task
	lists   int
	creates []structs.TaskBody
	updates map[structs.ID]structs.TaskBody
}

func (r *stubRepo) List(_ context.Context, q url.Values) (*paging.Result[*structs.Task], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists++
	var offset, limit int
	_, _ = fmt.Sscan(q.Get("offset"), &offset)
	_, _ = fmt.Sscan(q.Get("limit"), &limit)
	end := min(offset+limit, len(r.tasks))
	items := []*structs.Task{}
	if offset < end {
		items = r.tasks[offset:end]
	}
	return &paging.Result[*structs.Task]{Items: items, Total: len(r.tasks)}, nil
}

func (r *stubRepo) Assignees(context.Context) ([]*structs.User, error) {
	return []*structs.User{{ID: "u1", Username: "alice"}}, nil
}

func (r *stubRepo) Get(_ context.Context, id structs.ID) (*structs.Task, error) {
	for _, t := range r.tasks {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("todo %s not found", id)
}

func (r *stubRepo) Create(_ context.Context, b *structs.TaskBody) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates = append(r.creates, *b)
	return nil
}

func (r *stubRepo) Update(_ context.Context, id structs.ID, b *structs.TaskBody) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updates == nil {
		r.updates = map[structs.ID]structs.TaskBody{}
	}
	r.updates[id] = *b
	return nil
}

func (r *stubRepo) Revoke(context.Context, structs.ID) error { return nil }
func (r *stubRepo) Delete(context.Context, structs.ID) error { return nil }

func (r *stubRepo) listCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lists
}

func TestNewRequiresRepository(t *testing.T) {
	_, err := New(nil, Options{})
	assert.Error(t, err)
}

func TestDeskStartsOnFirstPageWithoutFetching(t *testing.T) {
	repo := &stubRepo{}
	d, err := New(repo, Options{Limit: 5})
	require.NoError(t, err)

	s := d.List().Snapshot()
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, 5, s.Limit)
	assert.True(t, s.Filter.IsEmpty())
	assert.Zero(t, repo.listCount())
	assert.False(t, d.ManualApply())
}

func TestDeskCreateRefreshesAndClosesForm(t *testing.T) {
	repo := &stubRepo{}
	d, err := New(repo, Options{})
	require.NoError(t, err)
	ctx := context.Background()

	form := d.Form()
	form.OpenCreate()
	require.NoError(t, form.Set(view.FieldTitle, "Write report"))
	require.NoError(t, form.Set(view.FieldScheduledDate, "2024-03-01"))
	require.NoError(t, form.Set(view.FieldPriority, "High"))
	require.NoError(t, form.Set(view.FieldAssignee, "u1"))
	require.NoError(t, form.Submit(ctx))

	require.Len(t, repo.creates, 1)
	assert.Equal(t, "Write report", repo.creates[0].Title)
	assert.Equal(t, structs.PriorityHigh, repo.creates[0].Priority)
	assert.Equal(t, 1, repo.listCount())
	assert.False(t, form.IsOpen())
}

func TestDeskEditLoadsTaskFromServer(t *testing.T) {
	repo := &stubRepo{tasks: []*structs.Task{{
		ID:            "t1",
		Title:         "Old",
		ScheduledDate: types.NewDate(2024, 1, 2),
		Priority:      structs.PriorityLow,
		Status:        structs.StatusPending,
		AssigneeID:    "u1",
	}}}
	d, err := New(repo, Options{})
	require.NoError(t, err)
	ctx := context.Background()

	task, err := d.Edit(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Old", task.Title)
	assert.Equal(t, view.ModeEdit, d.Form().Mode())
	assert.Equal(t, structs.StatusPending, d.Form().Values().Status)

	require.NoError(t, d.Form().Set(view.FieldStatus, "completed"))
	require.NoError(t, d.Form().Submit(ctx))
	assert.Equal(t, structs.StatusCompleted, repo.updates["t1"].Status)

	_, err = d.Edit(ctx, "missing")
	assert.Error(t, err)
	assert.False(t, d.Form().IsOpen())
}

func TestDeskManualApply(t *testing.T) {
	repo := &stubRepo{}
	d, err := New(repo, Options{ManualApply: true})
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, d.List().SetFilter(ctx, structs.FilterTitle, "report"))
	assert.Zero(t, repo.listCount())

	d.List().Apply(ctx)
	assert.Equal(t, 1, repo.listCount())
	assert.True(t, d.ManualApply())
}

func TestDeskAssignees(t *testing.T) {
	d, err := New(&stubRepo{}, Options{})
	require.NoError(t, err)

	users, err := d.Assignees(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
}
