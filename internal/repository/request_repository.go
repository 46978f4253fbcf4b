package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/shareit/internal/model"
)

// RequestRepo stores item requests in the `requests` table.
type RequestRepo struct{ q sqlx.ExtContext }

const requestCols = "id, description, requester_id, created_at"

// Create inserts r and sets its generated id.
func (r *RequestRepo) Create(ctx context.Context, req *model.ItemRequest) error {
	res, err := r.q.ExecContext(ctx,
		"INSERT INTO requests (description, requester_id, created_at) VALUES (?, ?, ?)",
		req.Description, req.RequesterID, req.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	req.ID = id
	return nil
}

// GetByID fetches a request by id.
func (r *RequestRepo) GetByID(ctx context.Context, id int64) (model.ItemRequest, error) {
	var req model.ItemRequest
	err := sqlx.GetContext(ctx, r.q, &req, "SELECT "+requestCols+" FROM requests WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ItemRequest{}, ErrNotFound
	}
	return req, err
}

// ListByRequester returns the user's own requests, newest first.
func (r *RequestRepo) ListByRequester(ctx context.Context, requesterID int64) ([]model.ItemRequest, error) {
	out := []model.ItemRequest{}
	err := sqlx.SelectContext(ctx, r.q, &out,
		"SELECT "+requestCols+" FROM requests WHERE requester_id = ? ORDER BY created_at DESC, id DESC", requesterID)
	return out, err
}

// ListOthers returns one page of requests made by anyone but userID.
func (r *RequestRepo) ListOthers(ctx context.Context, userID int64, p Page) ([]model.ItemRequest, error) {
	out := []model.ItemRequest{}
	err := sqlx.SelectContext(ctx, r.q, &out,
		"SELECT "+requestCols+" FROM requests WHERE requester_id <> ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		userID, p.Limit, p.Offset)
	return out, err
}
