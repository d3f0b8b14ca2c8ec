// Package view keeps the client side state of the task list and of the
// create/edit form, and keeps it in step with the remote list.
package view

import (
	"context"
	"errors"
	"sync"

	"github.com/ncobase/taskdesk/paging"
	"github.com/ncobase/taskdesk/todo/service"
	"github.com/ncobase/taskdesk/todo/structs"
)

// Row is one displayed task.
type Row struct {
	Number int
	Task   *structs.Task
	// RevokedLocally marks a revoke sent from this session that the list has
	// not confirmed yet.
	RevokedLocally bool
}

// Status returns the status to display, taking the local mark into account.
func (r Row) Status() structs.Status {
	if r.RevokedLocally {
		return structs.StatusRevoked
	}
	return r.Task.Status
}

// Snapshot is a consistent copy of the list state.
type Snapshot struct {
	Rows         []Row
	Filter       structs.Filter
	Page         int
	DisplayPages int
	TotalPages   int
	Total        int
	Limit        int
	HasNext      bool
	HasPrevious  bool
	// Failed is set when the last applied fetch failed.
	Failed error
}

// Empty reports whether there is nothing to show.
func (s Snapshot) Empty() bool { return len(s.Rows) == 0 }

// ListView is the task list: filter criteria, page window and the rows of
// the last applied fetch. Every filter or page change re-fetches, and only
// the answer to the most recently issued fetch is applied.
type ListView struct {
	mu       sync.Mutex
	fetcher  *service.Fetcher
	mutator  *service.Coordinator
	window   *paging.Window
	filter   *FilterState
	tasks    []*structs.Task
	// fetched is the window the rows were fetched under; it differs from
	// window while a filter change waits for Apply.
	fetched  paging.Params
	revoked  map[structs.ID]bool
	failed   error
	reactive bool
}

// Option configures a ListView.
type Option func(*ListView)

// WithManualApply turns off re-fetching on filter changes; Apply fetches.
// Page moves still fetch.
func WithManualApply() Option {
	return func(v *ListView) { v.reactive = false }
}

// NewListView creates a list on page 1 with an empty filter. It registers
// itself as the refresher of mutator.
func NewListView(fetcher *service.Fetcher, mutator *service.Coordinator, limit int, opts ...Option) *ListView {
	w := paging.NewWindow(limit)
	v := &ListView{
		fetcher:  fetcher,
		mutator:  mutator,
		window:   w,
		filter:   NewFilterState(w),
		tasks:    []*structs.Task{},
		revoked:  map[structs.ID]bool{},
		reactive: true,
	}
	for _, opt := range opts {
		opt(v)
	}
	if mutator != nil {
		mutator.SetRefresher(v)
	}
	return v
}

// Refresh re-fetches the current page with the current filter.
func (v *ListView) Refresh(ctx context.Context) service.FetchResult {
	v.mu.Lock()
	seq := v.fetcher.Begin()
	criteria, params := v.filter.Criteria(), v.window.Params()
	v.mu.Unlock()

	res := v.fetcher.Run(ctx, seq, criteria, params)
	v.apply(res, params)
	return res
}

// Apply fetches with the current filter; the same as Refresh.
func (v *ListView) Apply(ctx context.Context) service.FetchResult { return v.Refresh(ctx) }

// apply replaces the rows with res unless a newer fetch was issued since.
func (v *ListView) apply(res service.FetchResult, params paging.Params) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.fetcher.IsLatest(res.Sequence()) {
		return false
	}
	items, total := res.Page()
	v.tasks = items
	v.fetched = params
	v.window.SetTotal(total)
	v.revoked = map[structs.ID]bool{}
	v.failed = nil
	if f, ok := res.(service.Failure); ok {
		v.failed = f.Reason
	}
	return true
}

// SetFilter replaces one filter field, goes back to page 1 and re-fetches.
func (v *ListView) SetFilter(ctx context.Context, key, value string) error {
	v.mu.Lock()
	err := v.filter.Set(key, value)
	v.mu.Unlock()
	if err != nil {
		return err
	}
	if v.reactive {
		v.Refresh(ctx)
	}
	return nil
}

// ReplaceFilter swaps in f, goes back to page 1 and re-fetches.
func (v *ListView) ReplaceFilter(ctx context.Context, f structs.Filter) {
	v.mu.Lock()
	v.filter.Replace(f)
	v.mu.Unlock()
	if v.reactive {
		v.Refresh(ctx)
	}
}

// ResetFilter clears the filter, goes back to page 1 and re-fetches. It
// always fetches, even with manual apply.
func (v *ListView) ResetFilter(ctx context.Context) {
	v.mu.Lock()
	v.filter.Reset()
	v.mu.Unlock()
	v.Refresh(ctx)
}

// GoToPage jumps to page p and re-fetches.
func (v *ListView) GoToPage(ctx context.Context, p int) {
	v.mu.Lock()
	v.window.GoToPage(p)
	v.mu.Unlock()
	v.Refresh(ctx)
}

// Next moves forward one page and re-fetches; false on the last page.
func (v *ListView) Next(ctx context.Context) bool {
	v.mu.Lock()
	moved := v.window.Next()
	v.mu.Unlock()
	if moved {
		v.Refresh(ctx)
	}
	return moved
}

// Previous moves back one page and re-fetches; false on page 1.
func (v *ListView) Previous(ctx context.Context) bool {
	v.mu.Lock()
	moved := v.window.Previous()
	v.mu.Unlock()
	if moved {
		v.Refresh(ctx)
	}
	return moved
}

// Revoke marks id revoked right away and asks the server to revoke it. A
// failure drops the mark; a success re-fetches, which replaces it with the
// server's answer.
func (v *ListView) Revoke(ctx context.Context, id structs.ID) error {
	v.mu.Lock()
	marked := v.revoked[id]
	v.revoked[id] = true
	v.mu.Unlock()

	err := v.mutator.Revoke(ctx, id)
	if err == nil {
		return nil
	}
	// a rejected duplicate keeps the mark of the revoke still in flight
	if errors.Is(err, service.ErrSubmissionPending) && marked {
		return err
	}
	v.mu.Lock()
	delete(v.revoked, id)
	v.mu.Unlock()
	return err
}

// Delete asks the server to delete id; a success re-fetches.
func (v *ListView) Delete(ctx context.Context, id structs.ID) error {
	return v.mutator.Delete(ctx, id)
}

// Task returns the displayed task at 1-based row number n.
func (v *ListView) Task(n int) (*structs.Task, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	i := n - v.fetched.Offset - 1
	if i < 0 || i >= len(v.tasks) {
		return nil, false
	}
	return v.tasks[i], true
}

// Snapshot returns a copy of the current state.
func (v *ListView) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	rows := make([]Row, len(v.tasks))
	for i, t := range v.tasks {
		rows[i] = Row{Number: v.fetched.RowNumber(i), Task: t, RevokedLocally: v.revoked[t.ID]}
	}
	return Snapshot{
		Rows:         rows,
		Filter:       v.filter.Criteria(),
		Page:         v.window.Page(),
		DisplayPages: v.window.DisplayPages(),
		TotalPages:   v.window.TotalPages(),
		Total:        v.window.Total(),
		Limit:        v.window.Limit(),
		HasNext:      v.window.HasNext(),
		HasPrevious:  v.window.HasPrevious(),
		Failed:       v.failed,
	}
}
