package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// SQLStore is the MySQL backed Store.  Outside a transaction its
// repositories run against the pool; inside InTx they share one *sqlx.Tx.
type SQLStore struct {
	db *sqlx.DB
	q  sqlx.ExtContext
	tx bool
}

// NewSQLStore returns a Store bound to the given database.
func NewSQLStore(db *sqlx.DB) *SQLStore { return &SQLStore{db: db, q: db} }

func (s *SQLStore) Users() UserRepository       { return &UserRepo{q: s.q} }
func (s *SQLStore) Items() ItemRepository       { return &ItemRepo{q: s.q} }
func (s *SQLStore) Bookings() BookingRepository { return &BookingRepo{q: s.q} }
func (s *SQLStore) Comments() CommentRepository { return &CommentRepo{q: s.q} }
func (s *SQLStore) Requests() RequestRepository { return &RequestRepo{q: s.q} }

// InTx begins a transaction, runs fn and commits.  Nested calls reuse
// the outer transaction.
func (s *SQLStore) InTx(ctx context.Context, fn func(Store) error) (err error) {
	if s.tx {
		return fn(s)
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err = fn(&SQLStore{db: s.db, q: tx, tx: true}); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true
	return nil
}

// isDuplicateKey reports whether err is a MySQL unique-key violation.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// likePattern builds a case-insensitive LIKE pattern matching text as a
// substring; LIKE wildcards in text are escaped.
func likePattern(text string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(text)) + "%"
}
