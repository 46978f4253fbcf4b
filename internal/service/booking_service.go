package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/queue"
	"github.com/iliyamo/shareit/internal/repository"
)

// EventPublisher delivers booking events.  queue.Publisher implements it.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, ev queue.BookingEvent) error
}

type nopPublisher struct{}

func (nopPublisher) PublishBookingEvent(context.Context, queue.BookingEvent) error { return nil }

// BookingService creates bookings, moves them through WAITING ->
// APPROVED/REJECTED and lists them for bookers and owners.
type BookingService struct {
	store  repository.Store
	events EventPublisher
	log    *zap.Logger
	now    func() time.Time
}

// NewBookingService builds the service.  events may be nil.
func NewBookingService(store repository.Store, events EventPublisher, log *zap.Logger) *BookingService {
	if events == nil {
		events = nopPublisher{}
	}
	return &BookingService{store: store, events: events, log: log, now: utcNow}
}

// Create books an item for userID.  The booking starts out WAITING.
func (s *BookingService) Create(ctx context.Context, userID int64, in model.NewBooking) (model.Booking, error) {
	var out model.Booking
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Users().GetByID(ctx, userID); err != nil {
			return lookup(err, "user %d not found", userID)
		}
		it, err := tx.Items().GetByID(ctx, in.ItemID)
		if err != nil {
			return lookup(err, "item %d not found", in.ItemID)
		}
		if it.OwnerID == userID {
			return notFoundf("owner cannot book their own item")
		}
		if !it.Available {
			return validationf("item %d is not available for booking", it.ID)
		}
		if err := s.checkWindow(in.Start, in.End); err != nil {
			return err
		}
		id, err := tx.Bookings().Create(ctx, it.ID, userID, in.Start.Time, in.End.Time, model.StatusWaiting)
		if err != nil {
			return err
		}
		out, err = tx.Bookings().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return model.Booking{}, err
	}
	s.log.Info("booking created", zap.Int64("booking_id", out.ID), zap.Int64("item_id", out.Item.ID), zap.Int64("booker_id", userID))
	s.publish(ctx, queue.BookingCreated, out)
	return out, nil
}

func (s *BookingService) checkWindow(start, end *model.Timestamp) error {
	const msg = "booking has an invalid start or end date"
	if start == nil || end == nil {
		return validationf(msg)
	}
	now := s.now()
	switch {
	case start.Equal(end.Time),
		end.Before(start.Time),
		start.Before(now),
		end.Before(now):
		return validationf(msg)
	}
	return nil
}

// Decide approves or rejects a booking.  Only the item owner may decide
// and an APPROVED booking cannot be decided again.
func (s *BookingService) Decide(ctx context.Context, ownerID, bookingID int64, approved bool) (model.Booking, error) {
	var out model.Booking
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		b, err := tx.Bookings().GetForUpdate(ctx, bookingID)
		if err != nil {
			return lookup(err, "booking %d not found", bookingID)
		}
		if b.Item.OwnerID != ownerID {
			return notFoundf("user %d is not the owner of item %d", ownerID, b.Item.ID)
		}
		if b.Status == model.StatusApproved {
			return validationf("booking %d is already approved", bookingID)
		}
		b.Status = model.StatusRejected
		if approved {
			b.Status = model.StatusApproved
		}
		if err := tx.Bookings().UpdateStatus(ctx, b.ID, b.Status); err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return model.Booking{}, err
	}
	s.log.Info("booking decided", zap.Int64("booking_id", out.ID), zap.String("status", string(out.Status)))
	ev := queue.BookingRejected
	if approved {
		ev = queue.BookingApproved
	}
	s.publish(ctx, ev, out)
	return out, nil
}

// Get returns a booking visible to userID, who must be its booker or the
// item owner.
func (s *BookingService) Get(ctx context.Context, userID, bookingID int64) (model.Booking, error) {
	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		return model.Booking{}, lookup(err, "user %d not found", userID)
	}
	b, err := s.store.Bookings().GetByID(ctx, bookingID)
	if err != nil {
		return model.Booking{}, lookup(err, "booking %d not found", bookingID)
	}
	if b.Booker.ID != userID && b.Item.OwnerID != userID {
		return model.Booking{}, notFoundf("booking %d not found", bookingID)
	}
	return b, nil
}

// ListForBooker returns one page of the bookings userID made.
func (s *BookingService) ListForBooker(ctx context.Context, userID int64, state string, from, size int) ([]model.Booking, error) {
	return s.list(ctx, repository.BookingFilter{BookerID: userID}, userID, state, from, size)
}

// ListForOwner returns one page of the bookings of userID's items.
func (s *BookingService) ListForOwner(ctx context.Context, userID int64, state string, from, size int) ([]model.Booking, error) {
	return s.list(ctx, repository.BookingFilter{OwnerID: userID}, userID, state, from, size)
}

func (s *BookingService) list(ctx context.Context, f repository.BookingFilter, userID int64, state string, from, size int) ([]model.Booking, error) {
	p, err := page(from, size)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		return nil, lookup(err, "user %d not found", userID)
	}
	st, ok := model.ParseBookingState(state)
	if !ok {
		return nil, validationf("Unknown state: %s", state)
	}
	f.State, f.Now, f.Page = st, s.now(), p
	return s.store.Bookings().List(ctx, f)
}

// publish sends ev after the transaction committed.  Failures are logged
// and never reach the caller.
func (s *BookingService) publish(ctx context.Context, typ queue.BookingEventType, b model.Booking) {
	ev := queue.BookingEvent{
		Type:       typ,
		BookingID:  b.ID,
		ItemID:     b.Item.ID,
		ItemName:   b.Item.Name,
		OwnerID:    b.Item.OwnerID,
		BookerID:   b.Booker.ID,
		Status:     string(b.Status),
		Start:      b.Start.UTC().Format(time.RFC3339),
		End:        b.End.UTC().Format(time.RFC3339),
		OccurredAt: s.now().Format(time.RFC3339),
	}
	if err := s.events.PublishBookingEvent(context.WithoutCancel(ctx), ev); err != nil {
		s.log.Warn("booking event not published", zap.Int64("booking_id", b.ID), zap.String("type", string(typ)), zap.Error(err))
	}
}
