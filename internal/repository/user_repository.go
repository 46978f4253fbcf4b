package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/shareit/internal/model"
)

// UserRepo stores users in the `users` table.
type UserRepo struct{ q sqlx.ExtContext }

const userCols = "id, name, email"

// Create inserts u and sets its generated id.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	res, err := r.q.ExecContext(ctx, "INSERT INTO users (name, email) VALUES (?, ?)", u.Name, u.Email)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (model.User, error) {
	return r.get(ctx, "SELECT "+userCols+" FROM users WHERE id = ?", id)
}

// GetForUpdate fetches a user by id and locks the row until the
// surrounding transaction ends.
func (r *UserRepo) GetForUpdate(ctx context.Context, id int64) (model.User, error) {
	return r.get(ctx, "SELECT "+userCols+" FROM users WHERE id = ? FOR UPDATE", id)
}

func (r *UserRepo) get(ctx context.Context, q string, args ...any) (model.User, error) {
	var u model.User
	if err := sqlx.GetContext(ctx, r.q, &u, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, err
	}
	return u, nil
}

// List returns every user ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	out := []model.User{}
	if err := sqlx.SelectContext(ctx, r.q, &out, "SELECT "+userCols+" FROM users ORDER BY id"); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites name and email of an existing user.
func (r *UserRepo) Update(ctx context.Context, u model.User) error {
	_, err := r.q.ExecContext(ctx, "UPDATE users SET name = ?, email = ? WHERE id = ?", u.Name, u.Email, u.ID)
	if err != nil && isDuplicateKey(err) {
		return ErrDuplicateEmail
	}
	return err
}

// Delete removes a user.  ErrNotFound is returned when no row matched.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// EmailTaken checks the unique email constraint ahead of a write.
func (r *UserRepo) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	var n int
	err := sqlx.GetContext(ctx, r.q, &n,
		"SELECT COUNT(*) FROM users WHERE LOWER(email) = ? AND id <> ?",
		strings.ToLower(strings.TrimSpace(email)), excludeID)
	return n > 0, err
}
