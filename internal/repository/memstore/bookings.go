package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/repository"
)

type bookingRepo struct{ s *Store }

// resolve fills in the current item and booker, like the SQL join does.
func (r bookingRepo) resolve(rec bookingRec) model.Booking {
	b := rec.Booking
	b.Item = r.s.d().items[rec.itemID]
	b.Booker = r.s.d().users[rec.bookerID]
	return b
}

func (r bookingRepo) Create(_ context.Context, itemID, bookerID int64, start, end time.Time, status model.BookingStatus) (int64, error) {
	defer r.s.lock()()
	d := r.s.d()
	if _, ok := d.items[itemID]; !ok {
		return 0, repository.ErrNotFound
	}
	if _, ok := d.users[bookerID]; !ok {
		return 0, repository.ErrNotFound
	}
	id := d.next("bookings")
	d.bookings[id] = bookingRec{
		Booking:  model.Booking{ID: id, Start: start.UTC(), End: end.UTC(), Status: status},
		itemID:   itemID,
		bookerID: bookerID,
	}
	return id, nil
}

func (r bookingRepo) GetByID(_ context.Context, id int64) (model.Booking, error) {
	defer r.s.lock()()
	rec, ok := r.s.d().bookings[id]
	if !ok {
		return model.Booking{}, repository.ErrNotFound
	}
	return r.resolve(rec), nil
}

func (r bookingRepo) GetForUpdate(ctx context.Context, id int64) (model.Booking, error) {
	return r.GetByID(ctx, id)
}

func (r bookingRepo) UpdateStatus(_ context.Context, id int64, status model.BookingStatus) error {
	defer r.s.lock()()
	rec, ok := r.s.d().bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	rec.Status = status
	r.s.d().bookings[id] = rec
	return nil
}

func matchState(b model.Booking, state model.BookingState, now time.Time) (bool, error) {
	switch state {
	case model.StateAll:
		return true, nil
	case model.StateCurrent:
		return b.Start.Before(now) && b.End.After(now), nil
	case model.StateFuture:
		return b.Start.After(now), nil
	case model.StatePast:
		return b.End.Before(now), nil
	case model.StateWaiting:
		return b.Status == model.StatusWaiting, nil
	case model.StateRejected:
		return b.Status == model.StatusRejected, nil
	}
	return false, fmt.Errorf("unsupported booking state %q", state)
}

// collect returns the bookings accepted by keep.
func (r bookingRepo) collect(keep func(model.Booking) bool) []model.Booking {
	out := []model.Booking{}
	for _, rec := range r.s.d().bookings {
		if b := r.resolve(rec); keep(b) {
			out = append(out, b)
		}
	}
	return out
}

func startDesc(out []model.Booking) {
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.After(out[j].Start)
		}
		return out[i].ID > out[j].ID
	})
}

func (r bookingRepo) List(_ context.Context, f repository.BookingFilter) ([]model.Booking, error) {
	defer r.s.lock()()
	var stateErr error
	out := r.collect(func(b model.Booking) bool {
		if f.OwnerID != 0 && b.Item.OwnerID != f.OwnerID {
			return false
		}
		if f.OwnerID == 0 && b.Booker.ID != f.BookerID {
			return false
		}
		ok, err := matchState(b, f.State, f.Now)
		if err != nil {
			stateErr = err
		}
		return ok
	})
	if stateErr != nil {
		return nil, stateErr
	}
	startDesc(out)
	return window(out, f.Page), nil
}

func first(in []model.Booking) (model.Booking, error) {
	if len(in) == 0 {
		return model.Booking{}, repository.ErrNotFound
	}
	return in[0], nil
}

func (r bookingRepo) LastForItem(_ context.Context, itemID int64, now time.Time) (model.Booking, error) {
	defer r.s.lock()()
	out := r.collect(func(b model.Booking) bool {
		return b.Item.ID == itemID && b.Status == model.StatusApproved && b.Start.Before(now)
	})
	startDesc(out)
	return first(out)
}

func (r bookingRepo) NextForItem(_ context.Context, itemID int64, now time.Time) (model.Booking, error) {
	defer r.s.lock()()
	out := r.collect(func(b model.Booking) bool {
		return b.Item.ID == itemID && b.Status == model.StatusApproved && !b.Start.Before(now)
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].ID < out[j].ID
	})
	return first(out)
}

func (r bookingRepo) LatestActiveForBooker(_ context.Context, bookerID int64, now time.Time) (model.Booking, error) {
	defer r.s.lock()()
	out := r.collect(func(b model.Booking) bool {
		return b.Booker.ID == bookerID && b.End.After(now)
	})
	startDesc(out)
	return first(out)
}
