package memstore

import (
	"context"
	"sort"

	"github.com/iliyamo/shareit/internal/model"
)

type commentRepo struct{ s *Store }

func (r commentRepo) Create(_ context.Context, c *model.Comment) error {
	defer r.s.lock()()
	c.ID = r.s.d().next("comments")
	stored := *c
	stored.AuthorName = ""
	r.s.d().comments[c.ID] = stored
	return nil
}

func (r commentRepo) ListByItem(_ context.Context, itemID int64) ([]model.Comment, error) {
	defer r.s.lock()()
	out := []model.Comment{}
	for _, c := range r.s.d().comments {
		if c.ItemID != itemID {
			continue
		}
		author, ok := r.s.d().users[c.AuthorID]
		if !ok {
			continue
		}
		c.AuthorName = author.Name
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
