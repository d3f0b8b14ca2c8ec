package structs

import (
	"fmt"
	"strings"

	"github.com/ncobase/taskdesk/ecode"
	"github.com/ncobase/taskdesk/types"
)

// Filter field keys, as typed by users
const (
	FilterTitle         = "title"
	FilterAssignee      = "assignee"
	FilterStatus        = "status"
	FilterPriority      = "priority"
	FilterScheduledDate = "date"
	FilterStartDate     = "from"
	FilterEndDate       = "to"
)

// FilterKeys lists the settable filter keys.
var FilterKeys = []string{
	FilterTitle, FilterAssignee, FilterStatus, FilterPriority,
	FilterScheduledDate, FilterStartDate, FilterEndDate,
}

// Set replaces one field of f. Values are stored as given: only dates are
// parsed, an empty value clears the field.
func (f *Filter) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch strings.ToLower(key) {
	case FilterTitle:
		f.Title = value
	case FilterAssignee:
		f.AssigneeID = ID(value)
	case FilterStatus:
		f.Status = Status(value)
	case FilterPriority:
		f.Priority = Priority(value)
	case FilterScheduledDate, FilterStartDate, FilterEndDate:
		d, err := types.ParseDate(value)
		if err != nil {
			return fmt.Errorf("%s: %w", ecode.FieldIsInvalid(key), err)
		}
		switch strings.ToLower(key) {
		case FilterScheduledDate:
			f.ScheduledDate = d
		case FilterStartDate:
			f.StartDate = d
		default:
			f.EndDate = d
		}
	default:
		return fmt.Errorf("unknown filter %q, expected one of %s", key, strings.Join(FilterKeys, ", "))
	}
	return nil
}

// Fields returns the non-empty fields of f by key.
func (f Filter) Fields() map[string]string {
	m := map[string]string{}
	put := func(k, v string) {
		if v != "" {
			m[k] = v
		}
	}
	put(FilterTitle, f.Title)
	put(FilterAssignee, f.AssigneeID.String())
	put(FilterStatus, string(f.Status))
	put(FilterPriority, string(f.Priority))
	put(FilterScheduledDate, f.ScheduledDate.String())
	put(FilterStartDate, f.StartDate.String())
	put(FilterEndDate, f.EndDate.String())
	return m
}
