// Package query turns filter criteria and a page window into the list
// endpoint's query string.
package query

import (
	"fmt"
	"net/url"

	"github.com/google/go-querystring/query"
	"github.com/ncobase/taskdesk/config"
	"github.com/ncobase/taskdesk/paging"
	"github.com/ncobase/taskdesk/todo/structs"
	"github.com/ncobase/taskdesk/types"
)

// filterDialect is the wire form used by the filter-style list endpoint.
type filterDialect struct {
	Title         string           `url:"titleFilter,omitempty"`
	AssigneeID    structs.ID       `url:"assigneeFilter,omitempty"`
	Status        structs.Status   `url:"statusFilter,omitempty"`
	Priority      structs.Priority `url:"priorityFilter,omitempty"`
	ScheduledDate types.Date       `url:"scheduledDateFilter,omitempty"`
	StartDate     types.Date       `url:"start_date,omitempty"`
	EndDate       types.Date       `url:"end_date,omitempty"`
	paging.Params
}

// plainDialect is the wire form used by the search-style list endpoint.
type plainDialect struct {
	Title         string           `url:"search,omitempty"`
	AssigneeID    structs.ID       `url:"user_id,omitempty"`
	Status        structs.Status   `url:"status,omitempty"`
	Priority      structs.Priority `url:"priority,omitempty"`
	ScheduledDate types.Date       `url:"scheduled_date,omitempty"`
	StartDate     types.Date       `url:"start_date,omitempty"`
	EndDate       types.Date       `url:"end_date,omitempty"`
	paging.Params
}

// Builder encodes list queries in one dialect.
type Builder struct {
	dialect string
}

// NewBuilder returns a builder for dialect, config.DialectFilter or
// config.DialectPlain. Anything else falls back to the filter dialect.
func NewBuilder(dialect string) *Builder {
	if dialect != config.DialectPlain {
		dialect = config.DialectFilter
	}
	return &Builder{dialect: dialect}
}

// Dialect returns the dialect in use.
func (b *Builder) Dialect() string { return b.dialect }

// Build returns the query for f and p. Empty filter fields are left out;
// offset and limit are always present.
func (b *Builder) Build(f structs.Filter, p paging.Params) (url.Values, error) {
	var v any
	switch b.dialect {
	case config.DialectPlain:
		v = plainDialect{
			Title: f.Title, AssigneeID: f.AssigneeID, Status: f.Status, Priority: f.Priority,
			ScheduledDate: f.ScheduledDate, StartDate: f.StartDate, EndDate: f.EndDate,
			Params: p,
		}
	default:
		v = filterDialect{
			Title: f.Title, AssigneeID: f.AssigneeID, Status: f.Status, Priority: f.Priority,
			ScheduledDate: f.ScheduledDate, StartDate: f.StartDate, EndDate: f.EndDate,
			Params: p,
		}
	}
	values, err := query.Values(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode list query: %w", err)
	}
	return values, nil
}
