package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/repository"
)

// ItemService manages items, item search and comments.
type ItemService struct {
	store repository.Store
	log   *zap.Logger
	now   func() time.Time
}

func NewItemService(store repository.Store, log *zap.Logger) *ItemService {
	return &ItemService{store: store, log: log, now: utcNow}
}

func utcNow() time.Time { return time.Now().UTC() }

// Create lists a new item for ownerID.  An unknown RequestID is dropped
// and the item is stored without a request link.
func (s *ItemService) Create(ctx context.Context, ownerID int64, in model.NewItem) (model.Item, error) {
	if strings.TrimSpace(in.Name) == "" || in.Description == nil {
		return model.Item{}, validationf("item name and description must not be empty")
	}
	if in.Available == nil {
		return model.Item{}, validationf("available is required")
	}
	if ownerID == 0 {
		return model.Item{}, validationf("user id was not provided")
	}
	it := model.Item{Name: in.Name, Description: *in.Description, Available: *in.Available, OwnerID: ownerID}
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Users().GetByID(ctx, ownerID); err != nil {
			return lookup(err, "user %d not found", ownerID)
		}
		if in.RequestID != 0 {
			req, err := tx.Requests().GetByID(ctx, in.RequestID)
			switch {
			case err == nil:
				it.RequestID = &req.ID
			case !errors.Is(err, repository.ErrNotFound):
				return err
			}
		}
		return tx.Items().Create(ctx, &it)
	})
	if err != nil {
		return model.Item{}, err
	}
	s.log.Info("item created", zap.Int64("item_id", it.ID), zap.Int64("owner_id", ownerID))
	return it, nil
}

// Update applies p to the item.  Only its owner may change it.
func (s *ItemService) Update(ctx context.Context, ownerID, itemID int64, p model.ItemPatch) (model.Item, error) {
	if ownerID == 0 {
		return model.Item{}, validationf("user id was not provided")
	}
	var out model.Item
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Users().GetByID(ctx, ownerID); err != nil {
			return lookup(err, "user %d not found", ownerID)
		}
		it, err := tx.Items().GetForUpdate(ctx, itemID)
		if err != nil {
			return lookup(err, "item %d not found", itemID)
		}
		if it.OwnerID != ownerID {
			return notFoundf("user %d does not own item %d", ownerID, itemID)
		}
		if v, ok := p.Name.Get(); ok {
			it.Name = v
		}
		if v, ok := p.Description.Get(); ok {
			it.Description = v
		}
		if v, ok := p.Available.Get(); ok {
			it.Available = v
		}
		if err := tx.Items().Update(ctx, it); err != nil {
			return err
		}
		out = it
		return nil
	})
	return out, err
}

// Get returns the item with its comments.  Last and next bookings are
// attached only when userID owns the item.
func (s *ItemService) Get(ctx context.Context, userID, itemID int64) (model.ItemView, error) {
	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		return model.ItemView{}, lookup(err, "user %d not found", userID)
	}
	it, err := s.store.Items().GetByID(ctx, itemID)
	if err != nil {
		return model.ItemView{}, lookup(err, "item %d not found", itemID)
	}
	return s.view(ctx, it, it.OwnerID == userID)
}

// ListOwned returns one page of userID's items.  Each item carries its own
// last and next approved booking.
func (s *ItemService) ListOwned(ctx context.Context, userID int64, from, size int) ([]model.ItemView, error) {
	p, err := page(from, size)
	if err != nil {
		return nil, err
	}
	items, err := s.store.Items().ListByOwner(ctx, userID, p)
	if err != nil {
		return nil, err
	}
	out := make([]model.ItemView, 0, len(items))
	for _, it := range items {
		v, err := s.view(ctx, it, true)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *ItemService) view(ctx context.Context, it model.Item, withBookings bool) (model.ItemView, error) {
	v := model.ItemView{Item: it, Comments: []model.CommentView{}}
	comments, err := s.store.Comments().ListByItem(ctx, it.ID)
	if err != nil {
		return model.ItemView{}, err
	}
	for _, c := range comments {
		v.Comments = append(v.Comments, c.View())
	}
	if !withBookings {
		return v, nil
	}
	now := s.now()
	last, err := s.store.Bookings().LastForItem(ctx, it.ID, now)
	switch {
	case err == nil:
		v.LastBooking = last.Short()
	case !errors.Is(err, repository.ErrNotFound):
		return model.ItemView{}, err
	}
	next, err := s.store.Bookings().NextForItem(ctx, it.ID, now)
	switch {
	case err == nil:
		v.NextBooking = next.Short()
	case !errors.Is(err, repository.ErrNotFound):
		return model.ItemView{}, err
	}
	return v, nil
}

// Search returns available items whose name or description contains
// text.  Blank text matches nothing.
func (s *ItemService) Search(ctx context.Context, text string, from, size int) ([]model.Item, error) {
	p, err := page(from, size)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return []model.Item{}, nil
	}
	return s.store.Items().Search(ctx, text, p)
}

// commentWindow bounds how far in the future the commenter's booking may
// start.
const commentWindow = 72 * time.Hour

// AddComment stores a comment from userID.  The comment is attached to
// the item and booker of the caller's latest booking that has not ended.
func (s *ItemService) AddComment(ctx context.Context, userID, itemID int64, in model.NewComment) (model.CommentView, error) {
	if strings.TrimSpace(in.Text) == "" {
		return model.CommentView{}, validationf("comment text must not be empty")
	}
	now := s.now()
	b, err := s.store.Bookings().LatestActiveForBooker(ctx, userID, now)
	if err != nil {
		return model.CommentView{}, lookup(err, "item %d was never rented by user %d", itemID, userID)
	}
	if b.Booker.ID != userID {
		return model.CommentView{}, validationf("invalid user id: %d", userID)
	}
	if b.Status != model.StatusApproved {
		return model.CommentView{}, validationf("booking must be approved")
	}
	if b.Start.After(now.Add(commentWindow)) {
		return model.CommentView{}, validationf("rental has not started yet")
	}
	c := model.Comment{Text: in.Text, ItemID: b.Item.ID, AuthorID: b.Booker.ID, CreatedAt: now}
	if err := s.store.Comments().Create(ctx, &c); err != nil {
		return model.CommentView{}, err
	}
	c.AuthorName = b.Booker.Name
	s.log.Info("comment created", zap.Int64("comment_id", c.ID), zap.Int64("item_id", c.ItemID))
	return c.View(), nil
}
