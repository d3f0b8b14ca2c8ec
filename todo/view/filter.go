package view

import (
	"github.com/ncobase/taskdesk/paging"
	"github.com/ncobase/taskdesk/todo/structs"
)

// FilterState holds the user's filter criteria and re-anchors the page
// window whenever they change.
type FilterState struct {
	criteria structs.Filter
	window   *paging.Window
}

// NewFilterState returns empty criteria bound to window.
func NewFilterState(window *paging.Window) *FilterState {
	return &FilterState{window: window}
}

// Criteria returns the current criteria.
func (s *FilterState) Criteria() structs.Filter { return s.criteria }

// Set replaces one field and goes back to page 1.
func (s *FilterState) Set(key, value string) error {
	if err := s.criteria.Set(key, value); err != nil {
		return err
	}
	s.window.Reset()
	return nil
}

// Replace swaps in all criteria at once and goes back to page 1.
func (s *FilterState) Replace(f structs.Filter) {
	s.criteria = f
	s.window.Reset()
}

// Reset restores the empty criteria and page 1.
func (s *FilterState) Reset() {
	s.criteria = structs.Filter{}
	s.window.Reset()
}
