package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql" // registers the mysql dialect
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/shareit/internal/model"
)

const dialectMySQL = "mysql"

// BookingRepo stores bookings in the `bookings` table.  Reads join the
// booked item and the booker so callers can check ownership.
type BookingRepo struct{ q sqlx.ExtContext }

// bookingRow mirrors one row of the joined booking query.
type bookingRow struct {
	ID            int64               `db:"id"`
	Start         time.Time           `db:"start_date"`
	End           time.Time           `db:"end_date"`
	Status        model.BookingStatus `db:"status"`
	ItemID        int64               `db:"item_id"`
	ItemName      string              `db:"item_name"`
	ItemDesc      string              `db:"item_description"`
	ItemAvailable bool                `db:"item_available"`
	ItemOwnerID   int64               `db:"item_owner_id"`
	ItemRequestID *int64              `db:"item_request_id"`
	BookerID      int64               `db:"booker_id"`
	BookerName    string              `db:"booker_name"`
	BookerEmail   string              `db:"booker_email"`
}

func (r bookingRow) booking() model.Booking {
	return model.Booking{
		ID:     r.ID,
		Start:  r.Start.UTC(),
		End:    r.End.UTC(),
		Status: r.Status,
		Item: model.Item{
			ID:          r.ItemID,
			Name:        r.ItemName,
			Description: r.ItemDesc,
			Available:   r.ItemAvailable,
			OwnerID:     r.ItemOwnerID,
			RequestID:   r.ItemRequestID,
		},
		Booker: model.User{ID: r.BookerID, Name: r.BookerName, Email: r.BookerEmail},
	}
}

// selectBookings is the joined base query every read starts from.
func selectBookings() *goqu.SelectDataset {
	return goqu.Dialect(dialectMySQL).
		From(goqu.T("bookings").As("b")).
		Join(goqu.T("items").As("i"), goqu.On(goqu.I("i.id").Eq(goqu.I("b.item_id")))).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("b.booker_id")))).
		Select(
			goqu.I("b.id"),
			goqu.I("b.start_date"),
			goqu.I("b.end_date"),
			goqu.I("b.status"),
			goqu.I("i.id").As("item_id"),
			goqu.I("i.name").As("item_name"),
			goqu.I("i.description").As("item_description"),
			goqu.I("i.available").As("item_available"),
			goqu.I("i.owner_id").As("item_owner_id"),
			goqu.I("i.request_id").As("item_request_id"),
			goqu.I("u.id").As("booker_id"),
			goqu.I("u.name").As("booker_name"),
			goqu.I("u.email").As("booker_email"),
		).
		Prepared(true)
}

// stateFilter translates a list state into a WHERE expression.  ALL has
// no extra condition.
func stateFilter(state model.BookingState, now time.Time) (exp.Expression, error) {
	switch state {
	case model.StateAll:
		return nil, nil
	case model.StateCurrent:
		return goqu.And(goqu.I("b.start_date").Lt(now), goqu.I("b.end_date").Gt(now)), nil
	case model.StateFuture:
		return goqu.I("b.start_date").Gt(now), nil
	case model.StatePast:
		return goqu.I("b.end_date").Lt(now), nil
	case model.StateWaiting:
		return goqu.I("b.status").Eq(string(model.StatusWaiting)), nil
	case model.StateRejected:
		return goqu.I("b.status").Eq(string(model.StatusRejected)), nil
	}
	return nil, fmt.Errorf("unsupported booking state %q", state)
}

func (r *BookingRepo) selectOne(ctx context.Context, ds *goqu.SelectDataset) (model.Booking, error) {
	q, args, err := ds.Limit(1).ToSQL()
	if err != nil {
		return model.Booking{}, err
	}
	var row bookingRow
	if err := sqlx.GetContext(ctx, r.q, &row, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, ErrNotFound
		}
		return model.Booking{}, err
	}
	return row.booking(), nil
}

func (r *BookingRepo) selectMany(ctx context.Context, ds *goqu.SelectDataset) ([]model.Booking, error) {
	q, args, err := ds.ToSQL()
	if err != nil {
		return nil, err
	}
	var rows []bookingRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, q, args...); err != nil {
		return nil, err
	}
	out := make([]model.Booking, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.booking())
	}
	return out, nil
}

// Create inserts a booking and returns its id.
func (r *BookingRepo) Create(ctx context.Context, itemID, bookerID int64, start, end time.Time, status model.BookingStatus) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		"INSERT INTO bookings (start_date, end_date, item_id, booker_id, status) VALUES (?, ?, ?, ?, ?)",
		start.UTC(), end.UTC(), itemID, bookerID, string(status))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetByID fetches a booking with its item and booker.
func (r *BookingRepo) GetByID(ctx context.Context, id int64) (model.Booking, error) {
	return r.selectOne(ctx, selectBookings().Where(goqu.I("b.id").Eq(id)))
}

// GetForUpdate fetches a booking and locks its row.
func (r *BookingRepo) GetForUpdate(ctx context.Context, id int64) (model.Booking, error) {
	return r.selectOne(ctx, selectBookings().Where(goqu.I("b.id").Eq(id)).ForUpdate(exp.Wait))
}

// UpdateStatus sets the status of a booking.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error {
	res, err := r.q.ExecContext(ctx, "UPDATE bookings SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// MySQL reports 0 when the value is unchanged; confirm the row exists.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// List returns one page of a booker's or an owner's bookings, newest
// start first.
func (r *BookingRepo) List(ctx context.Context, f BookingFilter) ([]model.Booking, error) {
	ds, err := listBookings(f)
	if err != nil {
		return nil, err
	}
	return r.selectMany(ctx, ds)
}

func listBookings(f BookingFilter) (*goqu.SelectDataset, error) {
	ds := selectBookings()
	if f.OwnerID != 0 {
		ds = ds.Where(goqu.I("i.owner_id").Eq(f.OwnerID))
	} else {
		ds = ds.Where(goqu.I("b.booker_id").Eq(f.BookerID))
	}
	cond, err := stateFilter(f.State, f.Now)
	if err != nil {
		return nil, err
	}
	if cond != nil {
		ds = ds.Where(cond)
	}
	return ds.Order(goqu.I("b.start_date").Desc(), goqu.I("b.id").Desc()).
		Limit(uint(f.Page.Limit)).
		Offset(uint(f.Page.Offset)), nil
}

// LastForItem returns the latest approved booking that started before now.
func (r *BookingRepo) LastForItem(ctx context.Context, itemID int64, now time.Time) (model.Booking, error) {
	return r.selectOne(ctx, lastForItem(itemID, now))
}

func lastForItem(itemID int64, now time.Time) *goqu.SelectDataset {
	return selectBookings().
		Where(
			goqu.I("b.item_id").Eq(itemID),
			goqu.I("b.status").Eq(string(model.StatusApproved)),
			goqu.I("b.start_date").Lt(now),
		).
		Order(goqu.I("b.start_date").Desc())
}

// NextForItem returns the earliest approved booking starting at or after now.
func (r *BookingRepo) NextForItem(ctx context.Context, itemID int64, now time.Time) (model.Booking, error) {
	return r.selectOne(ctx, nextForItem(itemID, now))
}

func nextForItem(itemID int64, now time.Time) *goqu.SelectDataset {
	return selectBookings().
		Where(
			goqu.I("b.item_id").Eq(itemID),
			goqu.I("b.status").Eq(string(model.StatusApproved)),
			goqu.I("b.start_date").Gte(now),
		).
		Order(goqu.I("b.start_date").Asc())
}

// LatestActiveForBooker returns the booker's latest-starting booking that
// has not ended yet.
func (r *BookingRepo) LatestActiveForBooker(ctx context.Context, bookerID int64, now time.Time) (model.Booking, error) {
	return r.selectOne(ctx, latestActiveForBooker(bookerID, now))
}

func latestActiveForBooker(bookerID int64, now time.Time) *goqu.SelectDataset {
	return selectBookings().
		Where(
			goqu.I("b.booker_id").Eq(bookerID),
			goqu.I("b.end_date").Gt(now),
		).
		Order(goqu.I("b.start_date").Desc())
}
