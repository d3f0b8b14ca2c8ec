package service

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/ncobase/taskdesk/logging/logger"
	"github.com/ncobase/taskdesk/paging"
	"github.com/ncobase/taskdesk/todo/data/repository"
	"github.com/ncobase/taskdesk/todo/query"
	"github.com/ncobase/taskdesk/todo/structs"
	"github.com/ncobase/taskdesk/tracing"
	"go.opentelemetry.io/otel/attribute"
)

// Fetcher retrieves pages of the task list. Every fetch is issued under a
// new sequence number so callers can drop answers that were overtaken.
type Fetcher struct {
	repo    repository.TodoRepository
	builder *query.Builder
	logger  *logger.Logger
	seq     atomic.Uint64
}

// NewFetcher creates a fetcher; a nil logger uses the standard one.
func NewFetcher(repo repository.TodoRepository, builder *query.Builder, l *logger.Logger) *Fetcher {
	if l == nil {
		l = logger.StdLogger()
	}
	return &Fetcher{repo: repo, builder: builder, logger: l}
}

// Begin issues the next sequence number.
func (f *Fetcher) Begin() uint64 { return f.seq.Add(1) }

// Latest returns the last issued sequence number.
func (f *Fetcher) Latest() uint64 { return f.seq.Load() }

// IsLatest reports whether seq is the last issued sequence number.
func (f *Fetcher) IsLatest(seq uint64) bool { return seq == f.seq.Load() }

// Fetch issues a new sequence number and runs the fetch under it.
func (f *Fetcher) Fetch(ctx context.Context, filter structs.Filter, p paging.Params) FetchResult {
	return f.Run(ctx, f.Begin(), filter, p)
}

// Run fetches one page under seq. It never fails: problems are logged and
// returned as a Failure, which shows as an empty page.
func (f *Fetcher) Run(ctx context.Context, seq uint64, filter structs.Filter, p paging.Params) FetchResult {
	ctx, span := tracing.StartSpan(ctx, "todo.fetch",
		attribute.Int64("todo.fetch.seq", int64(seq)),
		attribute.Int("todo.fetch.offset", p.Offset),
		attribute.Int("todo.fetch.limit", p.Limit),
	)
	var err error
	defer func() { tracing.End(span, err) }()

	if f.repo == nil {
		err = errors.New("todo repository is not configured")
		f.logger.Errorf(ctx, "fetch #%d: %v", seq, err)
		return Failure{Seq: seq, Reason: err}
	}

	q, err := f.builder.Build(filter, paging.NormalizeParams(p))
	if err != nil {
		f.logger.Errorf(ctx, "fetch #%d: %v", seq, err)
		return Failure{Seq: seq, Reason: err}
	}

	res, err := f.repo.List(ctx, q)
	if err != nil {
		f.logger.Errorf(ctx, "fetch #%d: error fetching todos: %v", seq, err)
		return Failure{Seq: seq, Reason: err}
	}

	f.logger.Debugf(ctx, "fetch #%d: %d of %d todos", seq, len(res.Items), res.Total)
	return Success{Seq: seq, Items: res.Items, Total: res.Total}
}
