package service

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"

	"github.com/ncobase/taskdesk/config"
	"github.com/ncobase/taskdesk/paging"
	"github.com/ncobase/taskdesk/todo/query"
	"github.com/ncobase/taskdesk/todo/structs"
	"github.com/ncobase/taskdesk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu      sync.Mutex
	calls   []string
	queries []url.Values
	list    func(url.Values) (*paging.Result[*structs.Task], error)
	err     error
	block   chan struct{}
}

func (r *fakeRepo) record(op string) {
	r.mu.Lock()
	r.calls = append(r.calls, op)
	r.mu.Unlock()
}

func (r *fakeRepo) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *fakeRepo) List(_ context.Context, q url.Values) (*paging.Result[*structs.Task], error) {
	r.record("list")
	r.mu.Lock()
	r.queries = append(r.queries, q)
	r.mu.Unlock()
	if r.list != nil {
		return r.list(q)
	}
	return &paging.Result[*structs.Task]{Items: []*structs.Task{}}, nil
}

func (r *fakeRepo) Assignees(context.Context) ([]*structs.User, error) {
	r.record("assignees")
	return nil, r.err
}

func (r *fakeRepo) Get(_ context.Context, id structs.ID) (*structs.Task, error) {
	r.record("get")
	return &structs.Task{ID: id}, r.err
}

func (r *fakeRepo) Create(context.Context, *structs.TaskBody) error {
	r.record("create")
	if r.block != nil {
		<-r.block
	}
	return r.err
}

func (r *fakeRepo) Update(context.Context, structs.ID, *structs.TaskBody) error {
	r.record("update")
	return r.err
}

func (r *fakeRepo) Revoke(context.Context, structs.ID) error {
	r.record("revoke")
	return r.err
}

func (r *fakeRepo) Delete(context.Context, structs.ID) error {
	r.record("delete")
	return r.err
}

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(_ context.Context, msg string) {
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(_ context.Context, msg string, _ error) {
	n.errors = append(n.errors, msg)
}

type countingRefresher struct{ n int }

func (r *countingRefresher) Refresh(context.Context) FetchResult {
	r.n++
	return Success{}
}

type closer struct{ closed int }

func (c *closer) Close() { c.closed++ }

func validBody() *structs.TaskBody {
	return &structs.TaskBody{
		Title:         "Draft report",
		ScheduledDate: types.NewDate(2024, 6, 1),
		Priority:      structs.PriorityHigh,
		AssigneeID:    "7",
	}
}

func TestFetchSuccess(t *testing.T) {
	repo := &fakeRepo{list: func(q url.Values) (*paging.Result[*structs.Task], error) {
		return &paging.Result[*structs.Task]{Items: []*structs.Task{{ID: "1"}}, Total: 11}, nil
	}}
	f := NewFetcher(repo, query.NewBuilder(config.DialectFilter), nil)

	res := f.Fetch(context.Background(), structs.Filter{Status: structs.StatusPending}, paging.Params{Offset: 10, Limit: 10})
	ok, isSuccess := res.(Success)
	require.True(t, isSuccess)
	assert.Equal(t, 11, ok.Total)
	assert.Equal(t, uint64(1), res.Sequence())
	assert.True(t, f.IsLatest(res.Sequence()))

	require.Len(t, repo.queries, 1)
	assert.Equal(t, "limit=10&offset=10&statusFilter=pending", repo.queries[0].Encode())
}

func TestFetchFailureYieldsEmptyPage(t *testing.T) {
	repo := &fakeRepo{list: func(url.Values) (*paging.Result[*structs.Task], error) {
		return nil, errors.New("connection refused")
	}}
	f := NewFetcher(repo, query.NewBuilder(config.DialectFilter), nil)

	var res FetchResult
	assert.NotPanics(t, func() {
		res = f.Fetch(context.Background(), structs.Filter{}, paging.Params{Limit: 10})
	})
	fail, isFailure := res.(Failure)
	require.True(t, isFailure)
	assert.EqualError(t, fail.Reason, "connection refused")

	items, total := res.Page()
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Zero(t, total)
}

func TestFetchWithoutRepository(t *testing.T) {
	res := NewFetcher(nil, query.NewBuilder(""), nil).Fetch(context.Background(), structs.Filter{}, paging.Params{})
	_, isFailure := res.(Failure)
	assert.True(t, isFailure)
}

func TestSequenceNumbers(t *testing.T) {
	f := NewFetcher(&fakeRepo{}, query.NewBuilder(""), nil)
	first := f.Begin()
	second := f.Begin()
	assert.Less(t, first, second)
	assert.False(t, f.IsLatest(first))
	assert.True(t, f.IsLatest(second))

	res := f.Run(context.Background(), first, structs.Filter{}, paging.Params{Limit: 5})
	assert.Equal(t, first, res.Sequence())
	assert.Equal(t, second, f.Latest())
}

func TestCreateMissingAssigneeMakesNoCall(t *testing.T) {
	repo := &fakeRepo{}
	n := &recordingNotifier{}
	c := NewCoordinator(repo, n, nil)
	session := &closer{}

	body := validBody()
	body.AssigneeID = ""
	err := c.Create(context.Background(), body, session)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "assignee required", verr.Fields["assignee"])
	assert.Contains(t, err.Error(), "assignee required")
	assert.Empty(t, repo.Calls())
	assert.Zero(t, session.closed)
	assert.False(t, c.Pending())
}

func TestCreateValidatesEveryRequiredField(t *testing.T) {
	repo := &fakeRepo{}
	c := NewCoordinator(repo, nil, nil)

	err := c.Create(context.Background(), &structs.TaskBody{}, nil)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 4)
	for _, k := range []string{"title", "scheduled_date", "priority", "assignee"} {
		assert.Contains(t, verr.Fields, k)
	}

	err = c.Create(context.Background(), nil, nil)
	assert.True(t, errors.As(err, &verr))
	assert.Empty(t, repo.Calls())
}

func TestCreateSuccessRefreshesAndCloses(t *testing.T) {
	repo := &fakeRepo{}
	n := &recordingNotifier{}
	r := &countingRefresher{}
	c := NewCoordinator(repo, n, nil)
	c.SetRefresher(r)
	session := &closer{}

	require.NoError(t, c.Create(context.Background(), validBody(), session))
	assert.Equal(t, []string{"create"}, repo.Calls())
	assert.Equal(t, 1, r.n)
	assert.Equal(t, 1, session.closed)
	assert.Equal(t, []string{"Todo created successfully"}, n.successes)
	assert.False(t, c.Pending())
}

func TestUpdateFailureKeepsSessionOpen(t *testing.T) {
	repo := &fakeRepo{err: errors.New("bad gateway")}
	n := &recordingNotifier{}
	r := &countingRefresher{}
	c := NewCoordinator(repo, n, nil)
	c.SetRefresher(r)
	session := &closer{}

	body := validBody()
	body.Status = structs.StatusInProgress
	err := c.Update(context.Background(), "a1", body, session)
	assert.EqualError(t, err, "bad gateway")
	assert.Equal(t, []string{"Failed to update todo"}, n.errors)
	assert.Zero(t, r.n)
	assert.Zero(t, session.closed)
	assert.False(t, c.Pending(), "pending flag must be cleared after a failure")
}

func TestUpdateRejectsBadStatus(t *testing.T) {
	repo := &fakeRepo{}
	body := validBody()
	body.Status = "archived"
	err := NewCoordinator(repo, nil, nil).Update(context.Background(), "a1", body, nil)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "status")
	assert.Empty(t, repo.Calls())
}

func TestRevokeAndDelete(t *testing.T) {
	repo := &fakeRepo{}
	r := &countingRefresher{}
	c := NewCoordinator(repo, nil, nil)
	c.SetRefresher(r)

	require.NoError(t, c.Revoke(context.Background(), "a1"))
	require.NoError(t, c.Revoke(context.Background(), "a1"))
	require.NoError(t, c.Delete(context.Background(), "a1"))
	assert.Equal(t, []string{"revoke", "revoke", "delete"}, repo.Calls())
	assert.Equal(t, 3, r.n)

	var verr *ValidationError
	assert.True(t, errors.As(c.Revoke(context.Background(), ""), &verr))
	assert.True(t, errors.As(c.Delete(context.Background(), ""), &verr))
}

func TestSecondSubmissionWhilePending(t *testing.T) {
	repo := &fakeRepo{block: make(chan struct{})}
	c := NewCoordinator(repo, nil, nil)

	done := make(chan error, 1)
	go func() { done <- c.Create(context.Background(), validBody(), nil) }()

	require.Eventually(t, c.Pending, timeout, tick)
	assert.ErrorIs(t, c.Create(context.Background(), validBody(), nil), ErrSubmissionPending)
	assert.ErrorIs(t, c.Revoke(context.Background(), "a1"), ErrSubmissionPending)

	close(repo.block)
	require.NoError(t, <-done)
	assert.False(t, c.Pending())
	assert.Equal(t, []string{"create"}, repo.Calls())
}
