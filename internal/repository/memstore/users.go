package memstore

import (
	"context"
	"strings"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/repository"
)

type userRepo struct{ s *Store }

func (r userRepo) emailTaken(email string, excludeID int64) bool {
	for _, u := range r.s.d().users {
		if u.ID != excludeID && strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			return true
		}
	}
	return false
}

func (r userRepo) Create(_ context.Context, u *model.User) error {
	defer r.s.lock()()
	if r.emailTaken(u.Email, 0) {
		return repository.ErrDuplicateEmail
	}
	u.ID = r.s.d().next("users")
	r.s.d().users[u.ID] = *u
	return nil
}

func (r userRepo) GetByID(_ context.Context, id int64) (model.User, error) {
	defer r.s.lock()()
	u, ok := r.s.d().users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (r userRepo) GetForUpdate(ctx context.Context, id int64) (model.User, error) {
	return r.GetByID(ctx, id)
}

func (r userRepo) List(_ context.Context) ([]model.User, error) {
	defer r.s.lock()()
	out := make([]model.User, 0, len(r.s.d().users))
	for _, u := range r.s.d().users {
		out = append(out, u)
	}
	sortByID(out, func(u model.User) int64 { return u.ID })
	return out, nil
}

func (r userRepo) Update(_ context.Context, u model.User) error {
	defer r.s.lock()()
	if _, ok := r.s.d().users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	if r.emailTaken(u.Email, u.ID) {
		return repository.ErrDuplicateEmail
	}
	r.s.d().users[u.ID] = u
	return nil
}

// Delete removes the user together with everything that references it,
// mirroring the ON DELETE CASCADE foreign keys of the SQL schema.
func (r userRepo) Delete(_ context.Context, id int64) error {
	defer r.s.lock()()
	d := r.s.d()
	if _, ok := d.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(d.users, id)
	for rid, req := range d.requests {
		if req.RequesterID == id {
			delete(d.requests, rid)
			for iid, it := range d.items {
				if it.RequestID != nil && *it.RequestID == rid {
					it.RequestID = nil
					d.items[iid] = it
				}
			}
		}
	}
	for iid, it := range d.items {
		if it.OwnerID == id {
			delete(d.items, iid)
		}
	}
	for bid, b := range d.bookings {
		if _, ok := d.items[b.itemID]; !ok || b.bookerID == id {
			delete(d.bookings, bid)
		}
	}
	for cid, c := range d.comments {
		if _, ok := d.items[c.ItemID]; !ok || c.AuthorID == id {
			delete(d.comments, cid)
		}
	}
	return nil
}

func (r userRepo) EmailTaken(_ context.Context, email string, excludeID int64) (bool, error) {
	defer r.s.lock()()
	return r.emailTaken(email, excludeID), nil
}
