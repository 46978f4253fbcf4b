package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/shareit/internal/model"
)

// CommentRepo stores comments in the `comments` table.
type CommentRepo struct{ q sqlx.ExtContext }

// Create inserts c and sets its generated id.  AuthorName is not stored;
// callers fill it from the author they already hold.
func (r *CommentRepo) Create(ctx context.Context, c *model.Comment) error {
	res, err := r.q.ExecContext(ctx,
		"INSERT INTO comments (text, item_id, author_id, created_at) VALUES (?, ?, ?, ?)",
		c.Text, c.ItemID, c.AuthorID, c.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// ListByItem returns the item's comments, oldest first, with author names.
func (r *CommentRepo) ListByItem(ctx context.Context, itemID int64) ([]model.Comment, error) {
	const q = `SELECT c.id, c.text, c.item_id, c.author_id, u.name AS author_name, c.created_at
               FROM comments c
               JOIN users u ON u.id = c.author_id
               WHERE c.item_id = ?
               ORDER BY c.created_at, c.id`
	out := []model.Comment{}
	err := sqlx.SelectContext(ctx, r.q, &out, q, itemID)
	return out, err
}
