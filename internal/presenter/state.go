package presenter

import "strings"

// State is the reader's position in the list: the page being viewed and the
// search term typed so far.
type State struct {
	Page       int
	SearchTerm string
}

// NewState returns the state shown on first load
func NewState() State {
	return State{Page: 1}
}

// Next moves to the following page when the view has one
func (s State) Next(v View) State {
	if v.HasNext {
		s.Page++
	}
	return s
}

// Prev moves to the previous page, never below the first
func (s State) Prev() State {
	if s.Page > 1 {
		s.Page--
	}
	return s
}

// Search replaces the search term and returns to the first page so the
// current page stays inside the new result set.
func (s State) Search(term string) State {
	term = strings.TrimSpace(term)
	if term == s.SearchTerm {
		return s
	}
	return State{Page: 1, SearchTerm: term}
}

// Options builds the ComputeView options for this state
func (s State) Options(perPage int, searchEnabled bool) Options {
	return Options{
		SearchTerm:    s.SearchTerm,
		Page:          s.Page,
		ItemsPerPage:  perPage,
		SearchEnabled: searchEnabled,
	}
}
