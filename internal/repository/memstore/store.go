// Package memstore is an in-memory repository.Store.  It backs the server
// when STORE_DRIVER=memory and the service tests.  All access is
// serialized by one mutex; InTx restores a snapshot when fn fails.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/repository"
)

type bookingRec struct {
	model.Booking
	itemID   int64
	bookerID int64
}

type data struct {
	users    map[int64]model.User
	items    map[int64]model.Item
	bookings map[int64]bookingRec
	comments map[int64]model.Comment
	requests map[int64]model.ItemRequest
	seq      map[string]int64
}

func newData() *data {
	return &data{
		users:    map[int64]model.User{},
		items:    map[int64]model.Item{},
		bookings: map[int64]bookingRec{},
		comments: map[int64]model.Comment{},
		requests: map[int64]model.ItemRequest{},
		seq:      map[string]int64{},
	}
}

func (d *data) clone() *data {
	c := newData()
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.items {
		c.items[k] = v
	}
	for k, v := range d.bookings {
		c.bookings[k] = v
	}
	for k, v := range d.comments {
		c.comments[k] = v
	}
	for k, v := range d.requests {
		c.requests[k] = v
	}
	for k, v := range d.seq {
		c.seq[k] = v
	}
	return c
}

func (d *data) next(table string) int64 {
	d.seq[table]++
	return d.seq[table]
}

// Store is the in-memory repository.Store.
type Store struct {
	mu   *sync.Mutex
	root **data
	tx   bool
}

// New returns an empty Store.
func New() *Store {
	d := newData()
	return &Store{mu: &sync.Mutex{}, root: &d}
}

var _ repository.Store = (*Store)(nil)

// lock serializes access outside a transaction; inside InTx the mutex is
// already held.
func (s *Store) lock() func() {
	if s.tx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) d() *data { return *s.root }

func (s *Store) Users() repository.UserRepository       { return userRepo{s} }
func (s *Store) Items() repository.ItemRepository       { return itemRepo{s} }
func (s *Store) Bookings() repository.BookingRepository { return bookingRepo{s} }
func (s *Store) Comments() repository.CommentRepository { return commentRepo{s} }
func (s *Store) Requests() repository.RequestRepository { return requestRepo{s} }

// InTx runs fn while holding the store lock.  Changes made by fn are
// discarded when it returns an error.
func (s *Store) InTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.tx {
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.d().clone()
	if err := fn(&Store{mu: s.mu, root: s.root, tx: true}); err != nil {
		*s.root = snapshot
		return err
	}
	return nil
}

// window applies LIMIT/OFFSET to an already ordered slice.
func window[T any](in []T, p repository.Page) []T {
	if p.Offset >= len(in) {
		return []T{}
	}
	end := len(in)
	if p.Limit > 0 && p.Offset+p.Limit < end {
		end = p.Offset + p.Limit
	}
	return append([]T{}, in[p.Offset:end]...)
}

func sortByID[T any](in []T, id func(T) int64) {
	sort.Slice(in, func(i, j int) bool { return id(in[i]) < id(in[j]) })
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
