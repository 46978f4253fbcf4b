package repository

import (
	"context"
	"time"

	"github.com/iliyamo/shareit/internal/model"
)

// Page is a LIMIT/OFFSET window computed by the service layer.
type Page struct {
	Limit  int
	Offset int
}

// BookingFilter selects bookings for the list endpoints.  Exactly one of
// BookerID and OwnerID is set.  Now anchors the time based states.
type BookingFilter struct {
	BookerID int64
	OwnerID  int64
	State    model.BookingState
	Now      time.Time
	Page     Page
}

// UserRepository persists users.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id int64) (model.User, error)
	GetForUpdate(ctx context.Context, id int64) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, u model.User) error
	Delete(ctx context.Context, id int64) error
	// EmailTaken reports whether a user other than excludeID holds email
	// (case-insensitive).  excludeID 0 checks every user.
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
}

// ItemRepository persists items.
type ItemRepository interface {
	Create(ctx context.Context, it *model.Item) error
	GetByID(ctx context.Context, id int64) (model.Item, error)
	GetForUpdate(ctx context.Context, id int64) (model.Item, error)
	Update(ctx context.Context, it model.Item) error
	ListByOwner(ctx context.Context, ownerID int64, p Page) ([]model.Item, error)
	// Search matches text against name or description (case-insensitive)
	// and only returns available items.
	Search(ctx context.Context, text string, p Page) ([]model.Item, error)
	ListByRequest(ctx context.Context, requestID int64) ([]model.Item, error)
	FirstByRequest(ctx context.Context, requestID int64) (model.Item, error)
}

// BookingRepository persists bookings.  Reads always resolve the item
// and the booker.
type BookingRepository interface {
	Create(ctx context.Context, itemID, bookerID int64, start, end time.Time, status model.BookingStatus) (int64, error)
	GetByID(ctx context.Context, id int64) (model.Booking, error)
	GetForUpdate(ctx context.Context, id int64) (model.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error
	List(ctx context.Context, f BookingFilter) ([]model.Booking, error)
	// LastForItem returns the approved booking with the latest start
	// strictly before now.
	LastForItem(ctx context.Context, itemID int64, now time.Time) (model.Booking, error)
	// NextForItem returns the approved booking with the earliest start at
	// or after now.
	NextForItem(ctx context.Context, itemID int64, now time.Time) (model.Booking, error)
	// LatestActiveForBooker returns the booker's booking with the latest
	// start among those ending after now.
	LatestActiveForBooker(ctx context.Context, bookerID int64, now time.Time) (model.Booking, error)
}

// CommentRepository persists comments.
type CommentRepository interface {
	Create(ctx context.Context, c *model.Comment) error
	ListByItem(ctx context.Context, itemID int64) ([]model.Comment, error)
}

// RequestRepository persists item requests.
type RequestRepository interface {
	Create(ctx context.Context, r *model.ItemRequest) error
	GetByID(ctx context.Context, id int64) (model.ItemRequest, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]model.ItemRequest, error)
	// ListOthers returns requests not made by userID, newest first.
	ListOthers(ctx context.Context, userID int64, p Page) ([]model.ItemRequest, error)
}

// Store groups the repositories over one backing store.  InTx runs fn
// with a Store whose repositories share a single transaction; the
// transaction commits when fn returns nil and rolls back otherwise.
type Store interface {
	Users() UserRepository
	Items() ItemRepository
	Bookings() BookingRepository
	Comments() CommentRepository
	Requests() RequestRepository
	InTx(ctx context.Context, fn func(Store) error) error
}
