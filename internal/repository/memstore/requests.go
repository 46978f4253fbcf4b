package memstore

import (
	"context"
	"sort"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/repository"
)

type requestRepo struct{ s *Store }

func (r requestRepo) Create(_ context.Context, req *model.ItemRequest) error {
	defer r.s.lock()()
	req.ID = r.s.d().next("requests")
	r.s.d().requests[req.ID] = *req
	return nil
}

func (r requestRepo) GetByID(_ context.Context, id int64) (model.ItemRequest, error) {
	defer r.s.lock()()
	req, ok := r.s.d().requests[id]
	if !ok {
		return model.ItemRequest{}, repository.ErrNotFound
	}
	return req, nil
}

func (r requestRepo) newestFirst(keep func(model.ItemRequest) bool) []model.ItemRequest {
	out := []model.ItemRequest{}
	for _, req := range r.s.d().requests {
		if keep(req) {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r requestRepo) ListByRequester(_ context.Context, requesterID int64) ([]model.ItemRequest, error) {
	defer r.s.lock()()
	return r.newestFirst(func(req model.ItemRequest) bool { return req.RequesterID == requesterID }), nil
}

func (r requestRepo) ListOthers(_ context.Context, userID int64, p repository.Page) ([]model.ItemRequest, error) {
	defer r.s.lock()()
	return window(r.newestFirst(func(req model.ItemRequest) bool { return req.RequesterID != userID }), p), nil
}
