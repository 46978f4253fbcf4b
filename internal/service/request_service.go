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

// RequestService manages item requests.
type RequestService struct {
	store repository.Store
	log   *zap.Logger
	now   func() time.Time
}

func NewRequestService(store repository.Store, log *zap.Logger) *RequestService {
	return &RequestService{store: store, log: log, now: utcNow}
}

func (s *RequestService) requireUser(ctx context.Context, userID int64) error {
	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		return lookup(err, "user %d not found", userID)
	}
	return nil
}

func (s *RequestService) Create(ctx context.Context, userID int64, in model.NewItemRequest) (model.ItemRequestView, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return model.ItemRequestView{}, err
	}
	if in.Description == nil || strings.TrimSpace(*in.Description) == "" {
		return model.ItemRequestView{}, validationf("description must not be empty")
	}
	req := model.ItemRequest{Description: *in.Description, RequesterID: userID, CreatedAt: s.now()}
	if err := s.store.Requests().Create(ctx, &req); err != nil {
		return model.ItemRequestView{}, err
	}
	s.log.Info("item request created", zap.Int64("request_id", req.ID), zap.Int64("user_id", userID))
	return req.View(nil), nil
}

// ListOwn returns userID's requests, newest first, with every item that
// answers them.
func (s *RequestService) ListOwn(ctx context.Context, userID int64) ([]model.ItemRequestView, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	reqs, err := s.store.Requests().ListByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, reqs)
}

// ListOthers returns one page of requests made by other users.
func (s *RequestService) ListOthers(ctx context.Context, userID int64, from, size int) ([]model.ItemRequestView, error) {
	p, err := page(from, size)
	if err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	reqs, err := s.store.Requests().ListOthers(ctx, userID, p)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, reqs)
}

func (s *RequestService) withItems(ctx context.Context, reqs []model.ItemRequest) ([]model.ItemRequestView, error) {
	out := make([]model.ItemRequestView, 0, len(reqs))
	for _, r := range reqs {
		items, err := s.store.Items().ListByRequest(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, r.View(items))
	}
	return out, nil
}

// Get returns a single request with at most its first answering item.
func (s *RequestService) Get(ctx context.Context, userID, requestID int64) (model.ItemRequestView, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return model.ItemRequestView{}, err
	}
	req, err := s.store.Requests().GetByID(ctx, requestID)
	if err != nil {
		return model.ItemRequestView{}, lookup(err, "item request %d not found", requestID)
	}
	var items []model.Item
	it, err := s.store.Items().FirstByRequest(ctx, requestID)
	switch {
	case err == nil:
		items = []model.Item{it}
	case !errors.Is(err, repository.ErrNotFound):
		return model.ItemRequestView{}, err
	}
	return req.View(items), nil
}
