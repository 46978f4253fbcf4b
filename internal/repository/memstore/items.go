package memstore

import (
	"context"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/repository"
)

type itemRepo struct{ s *Store }

func (r itemRepo) Create(_ context.Context, it *model.Item) error {
	defer r.s.lock()()
	it.ID = r.s.d().next("items")
	r.s.d().items[it.ID] = *it
	return nil
}

func (r itemRepo) GetByID(_ context.Context, id int64) (model.Item, error) {
	defer r.s.lock()()
	it, ok := r.s.d().items[id]
	if !ok {
		return model.Item{}, repository.ErrNotFound
	}
	return it, nil
}

func (r itemRepo) GetForUpdate(ctx context.Context, id int64) (model.Item, error) {
	return r.GetByID(ctx, id)
}

func (r itemRepo) Update(_ context.Context, it model.Item) error {
	defer r.s.lock()()
	cur, ok := r.s.d().items[it.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.Name, cur.Description, cur.Available = it.Name, it.Description, it.Available
	r.s.d().items[it.ID] = cur
	return nil
}

func (r itemRepo) filter(keep func(model.Item) bool) []model.Item {
	out := []model.Item{}
	for _, it := range r.s.d().items {
		if keep(it) {
			out = append(out, it)
		}
	}
	sortByID(out, func(it model.Item) int64 { return it.ID })
	return out
}

func (r itemRepo) ListByOwner(_ context.Context, ownerID int64, p repository.Page) ([]model.Item, error) {
	defer r.s.lock()()
	return window(r.filter(func(it model.Item) bool { return it.OwnerID == ownerID }), p), nil
}

func (r itemRepo) Search(_ context.Context, text string, p repository.Page) ([]model.Item, error) {
	defer r.s.lock()()
	return window(r.filter(func(it model.Item) bool {
		return it.Available && (containsFold(it.Name, text) || containsFold(it.Description, text))
	}), p), nil
}

func (r itemRepo) ListByRequest(_ context.Context, requestID int64) ([]model.Item, error) {
	defer r.s.lock()()
	return r.filter(func(it model.Item) bool { return it.RequestID != nil && *it.RequestID == requestID }), nil
}

func (r itemRepo) FirstByRequest(ctx context.Context, requestID int64) (model.Item, error) {
	items, _ := r.ListByRequest(ctx, requestID)
	if len(items) == 0 {
		return model.Item{}, repository.ErrNotFound
	}
	return items[0], nil
}
