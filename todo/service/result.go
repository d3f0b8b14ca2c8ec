package service

import "github.com/ncobase/taskdesk/todo/structs"

// FetchResult is the outcome of one list fetch, either Success or Failure.
type FetchResult interface {
	// Sequence is the number the fetch was issued under.
	Sequence() uint64
	// Page returns what the list should show: the items and total of a
	// Success, an empty page for a Failure.
	Page() ([]*structs.Task, int)
	isFetchResult()
}

// Success is a fetched page.
type Success struct {
	Seq   uint64
	Items []*structs.Task
	Total int
}

func (s Success) Sequence() uint64 { return s.Seq }

func (s Success) Page() ([]*structs.Task, int) {
	items := s.Items
	if items == nil {
		items = []*structs.Task{}
	}
	return items, s.Total
}

func (Success) isFetchResult() {}

// Failure is a fetch that could not produce a page.
type Failure struct {
	Seq    uint64
	Reason error
}

func (f Failure) Sequence() uint64 { return f.Seq }

func (Failure) Page() ([]*structs.Task, int) { return []*structs.Task{}, 0 }

func (Failure) isFetchResult() {}
