package paging

import (
	"context"
)

type Mode int

const (
	// ModeReplace discards the records held so far: random-access pagination.
	ModeReplace Mode = iota
	// ModeAppend concatenates onto the records held so far: infinite scroll.
	ModeAppend
)

func (m Mode) String() string {
	if m == ModeAppend {
		return "append"
	}
	return "replace"
}

// Page is what the remote side returns for one page. TotalPages is computed by the server
// and taken as is.
type Page[T any] struct {
	Records    []T
	TotalItems int
	TotalPages int
}

type Fetcher[T any] interface {
	FetchPage(c context.Context, page int, limit int) (Page[T], error)
}

type FetcherFunc[T any] func(c context.Context, page int, limit int) (Page[T], error)

func (f FetcherFunc[T]) FetchPage(c context.Context, page int, limit int) (Page[T], error) {
	return f(c, page, limit)
}

type State struct {
	Limit      int
	Page       int
	TotalItems int
	TotalPages int
}

func (s State) HasNext() bool {
	return s.Page < s.TotalPages
}

func (s State) HasPrevious() bool {
	return s.Page > 1
}

type Snapshot[T any] struct {
	Records   []T
	State     State
	HasMore   bool
	IsLoading bool
}
