package paging

import (
	"context"
	"fmt"
	"sync"

	"github.com/MarcGrol/shopcart/lib/mylog"
)

const defaultLimit = 10

type Option func(o *options)

type options struct {
	logger     mylog.Logger
	guardStale bool
}

func WithLogger(logger mylog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStaleResponseGuard tags every fetch with a sequence number and drops a response when a
// younger one has already been applied. Without it, the response that lands last wins.
func WithStaleResponseGuard() Option {
	return func(o *options) {
		o.guardStale = true
	}
}

type Listener[T any] func(Snapshot[T])

type subscription[T any] struct {
	id       int
	listener Listener[T]
}

// Synchronizer keeps a local ordered copy of remote records, fetched page by page.
type Synchronizer[T any] struct {
	sync.Mutex
	fetcher    Fetcher[T]
	logger     mylog.Logger
	guardStale bool

	records []T
	state   State
	hasMore bool
	loading bool

	issuedSeq  uint64
	appliedSeq uint64

	subscriptions []subscription[T]
	nextID        int
}

func New[T any](fetcher Fetcher[T], limit int, opts ...Option) *Synchronizer[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = mylog.New("paging")
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	return &Synchronizer[T]{
		fetcher:    fetcher,
		logger:     o.logger,
		guardStale: o.guardStale,
		records:    []T{},
		state: State{
			Limit: limit,
			Page:  1,
		},
	}
}

// LoadPage fetches a page and merges it according to mode. On failure records and state
// are left as they were and the error is returned to the caller.
func (s *Synchronizer[T]) LoadPage(c context.Context, page int, mode Mode) error {
	s.Lock()
	seq, limit := s.startLoading()
	s.Unlock()

	return s.load(c, seq, page, limit, mode)
}

// LoadMore fetches the next page in append mode. It does nothing while a fetch is in
// flight or when the last page has been reached.
func (s *Synchronizer[T]) LoadMore(c context.Context) error {
	s.Lock()
	if s.loading || !s.hasMore {
		s.Unlock()
		return nil
	}
	page := s.state.Page + 1
	seq, limit := s.startLoading()
	s.Unlock()

	return s.load(c, seq, page, limit, ModeAppend)
}

// GoToPage does not validate page: an out of range page is for the server to reject.
func (s *Synchronizer[T]) GoToPage(c context.Context, page int) error {
	return s.LoadPage(c, page, ModeReplace)
}

// Refresh reloads the current page, after a record was created or updated.
func (s *Synchronizer[T]) Refresh(c context.Context) error {
	return s.LoadPage(c, s.State().Page, ModeReplace)
}

// RefreshAfterDelete reloads after a record on the current page was deleted. When that
// record was the only one on a page beyond the first, the page itself is gone and the
// previous page is loaded instead.
func (s *Synchronizer[T]) RefreshAfterDelete(c context.Context) error {
	s.Lock()
	page := s.state.Page
	if len(s.records) == 1 && page > 1 {
		page--
	}
	s.Unlock()

	return s.LoadPage(c, page, ModeReplace)
}

func (s *Synchronizer[T]) Records() []T {
	s.Lock()
	defer s.Unlock()

	return append([]T{}, s.records...)
}

func (s *Synchronizer[T]) State() State {
	s.Lock()
	defer s.Unlock()

	return s.state
}

func (s *Synchronizer[T]) HasMore() bool {
	s.Lock()
	defer s.Unlock()

	return s.hasMore
}

func (s *Synchronizer[T]) IsLoading() bool {
	s.Lock()
	defer s.Unlock()

	return s.loading
}

func (s *Synchronizer[T]) Snapshot() Snapshot[T] {
	s.Lock()
	defer s.Unlock()

	return s.snapshot()
}

// Subscribe registers a listener that receives the state after every change, including
// the start and end of each fetch. The returned func removes the listener again.
func (s *Synchronizer[T]) Subscribe(listener Listener[T]) func() {
	s.Lock()
	defer s.Unlock()

	s.nextID++
	id := s.nextID
	s.subscriptions = append(s.subscriptions, subscription[T]{id: id, listener: listener})

	return func() {
		s.Lock()
		defer s.Unlock()

		for i, sub := range s.subscriptions {
			if sub.id == id {
				s.subscriptions = append(s.subscriptions[:i], s.subscriptions[i+1:]...)
				return
			}
		}
	}
}

// must be called with the lock held
func (s *Synchronizer[T]) startLoading() (uint64, int) {
	s.loading = true
	s.issuedSeq++
	s.notifyLocked()
	return s.issuedSeq, s.state.Limit
}

func (s *Synchronizer[T]) load(c context.Context, seq uint64, page int, limit int, mode Mode) error {
	s.logger.Log(c, "", mylog.SeverityDebug, "Fetch page %d (limit %d, mode %s)", page, limit, mode)

	resp, err := s.fetcher.FetchPage(c, page, limit)

	s.Lock()
	defer s.Unlock()

	defer func() {
		if !s.guardStale || seq == s.issuedSeq {
			s.loading = false
		}
		s.notifyLocked()
	}()

	if err != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "Error fetching page %d: %s", page, err)
		return fmt.Errorf("error fetching page %d: %w", page, err)
	}

	if s.guardStale && seq < s.appliedSeq {
		s.logger.Log(c, "", mylog.SeverityInfo, "Drop stale response for page %d", page)
		return nil
	}
	s.appliedSeq = seq

	if mode == ModeAppend {
		s.records = append(append([]T{}, s.records...), resp.Records...)
		s.hasMore = page < resp.TotalPages
	} else {
		s.records = append([]T{}, resp.Records...)
	}
	s.state = State{
		Limit:      limit,
		Page:       page,
		TotalItems: resp.TotalItems,
		TotalPages: resp.TotalPages,
	}

	return nil
}

func (s *Synchronizer[T]) snapshot() Snapshot[T] {
	return Snapshot[T]{
		Records:   append([]T{}, s.records...),
		State:     s.state,
		HasMore:   s.hasMore,
		IsLoading: s.loading,
	}
}

// Listeners run with the lock held; they get a copy and must not call back into the
// synchronizer.
func (s *Synchronizer[T]) notifyLocked() {
	if len(s.subscriptions) == 0 {
		return
	}
	snapshot := s.snapshot()
	for _, sub := range s.subscriptions {
		sub.listener(snapshot)
	}
}
