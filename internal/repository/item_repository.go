package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/shareit/internal/model"
)

// ItemRepo stores items in the `items` table.
type ItemRepo struct{ q sqlx.ExtContext }

const itemCols = "id, name, description, available, owner_id, request_id"

// Create inserts it and sets its generated id.
func (r *ItemRepo) Create(ctx context.Context, it *model.Item) error {
	res, err := r.q.ExecContext(ctx,
		"INSERT INTO items (name, description, available, owner_id, request_id) VALUES (?, ?, ?, ?, ?)",
		it.Name, it.Description, it.Available, it.OwnerID, it.RequestID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	it.ID = id
	return nil
}

// GetByID fetches an item by id.
func (r *ItemRepo) GetByID(ctx context.Context, id int64) (model.Item, error) {
	return r.get(ctx, "SELECT "+itemCols+" FROM items WHERE id = ?", id)
}

// GetForUpdate fetches an item and locks its row.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id int64) (model.Item, error) {
	return r.get(ctx, "SELECT "+itemCols+" FROM items WHERE id = ? FOR UPDATE", id)
}

func (r *ItemRepo) get(ctx context.Context, q string, args ...any) (model.Item, error) {
	var it model.Item
	if err := sqlx.GetContext(ctx, r.q, &it, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Item{}, ErrNotFound
		}
		return model.Item{}, err
	}
	return it, nil
}

// Update overwrites the mutable fields of an item.
func (r *ItemRepo) Update(ctx context.Context, it model.Item) error {
	_, err := r.q.ExecContext(ctx,
		"UPDATE items SET name = ?, description = ?, available = ? WHERE id = ?",
		it.Name, it.Description, it.Available, it.ID)
	return err
}

// ListByOwner returns one page of the owner's items ordered by id.
func (r *ItemRepo) ListByOwner(ctx context.Context, ownerID int64, p Page) ([]model.Item, error) {
	out := []model.Item{}
	err := sqlx.SelectContext(ctx, r.q, &out,
		"SELECT "+itemCols+" FROM items WHERE owner_id = ? ORDER BY id LIMIT ? OFFSET ?",
		ownerID, p.Limit, p.Offset)
	return out, err
}

// Search returns one page of available items whose name or description
// contains text.
func (r *ItemRepo) Search(ctx context.Context, text string, p Page) ([]model.Item, error) {
	q, args, err := searchItems(text, p).ToSQL()
	if err != nil {
		return nil, err
	}
	out := []model.Item{}
	err = sqlx.SelectContext(ctx, r.q, &out, q, args...)
	return out, err
}

func searchItems(text string, p Page) *goqu.SelectDataset {
	pat := likePattern(text)
	return goqu.Dialect(dialectMySQL).
		From("items").
		Select("id", "name", "description", "available", "owner_id", "request_id").
		Where(
			goqu.C("available").IsTrue(),
			goqu.Or(
				goqu.L("LOWER(`name`) LIKE ?", pat),
				goqu.L("LOWER(`description`) LIKE ?", pat),
			),
		).
		Order(goqu.C("id").Asc()).
		Limit(uint(p.Limit)).
		Offset(uint(p.Offset)).
		Prepared(true)
}

// ListByRequest returns every item created for the request.
func (r *ItemRepo) ListByRequest(ctx context.Context, requestID int64) ([]model.Item, error) {
	out := []model.Item{}
	err := sqlx.SelectContext(ctx, r.q, &out,
		"SELECT "+itemCols+" FROM items WHERE request_id = ? ORDER BY id", requestID)
	return out, err
}

// FirstByRequest returns the earliest item created for the request.
func (r *ItemRepo) FirstByRequest(ctx context.Context, requestID int64) (model.Item, error) {
	return r.get(ctx, "SELECT "+itemCols+" FROM items WHERE request_id = ? ORDER BY id LIMIT 1", requestID)
}
