package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/repository"
)

func TestInTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := New()
	boom := errors.New("boom")

	err := s.InTx(ctx, func(tx repository.Store) error {
		u := &model.User{Name: "a", Email: "a@x.io"}
		require.NoError(t, tx.Users().Create(ctx, u))
		return boom
	})
	require.ErrorIs(t, err, boom)

	users, err := s.Users().List(ctx)
	require.NoError(t, err)
	require.Empty(t, users)
}

func TestUserEmailUniqueIgnoresCase(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Users().Create(ctx, &model.User{Name: "a", Email: "a@x.io"}))
	err := s.Users().Create(ctx, &model.User{Name: "b", Email: "A@X.IO"})
	require.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestSearchOnlyAvailable(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Items().Create(ctx, &model.Item{Name: "Drill", Description: "cordless", Available: true, OwnerID: 1}))
	require.NoError(t, s.Items().Create(ctx, &model.Item{Name: "Saw", Description: "a DRILL bit too", Available: true, OwnerID: 1}))
	require.NoError(t, s.Items().Create(ctx, &model.Item{Name: "drill press", Description: "", Available: false, OwnerID: 1}))

	got, err := s.Items().Search(ctx, "dRiLl", repository.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Drill", got[0].Name)

	got, err = s.Items().Search(ctx, "drill", repository.Page{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Saw", got[0].Name)
}

func TestSearchKeepsSurroundingSpaces(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Items().Create(ctx, &model.Item{Name: "Drill", Description: "cordless", Available: true, OwnerID: 1}))
	require.NoError(t, s.Items().Create(ctx, &model.Item{Name: "Hammer drill bit", Description: "", Available: true, OwnerID: 1}))

	got, err := s.Items().Search(ctx, " drill ", repository.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Hammer drill bit", got[0].Name)
}

func TestBookingStates(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Date(2030, 1, 10, 12, 0, 0, 0, time.UTC)
	owner := &model.User{Name: "owner", Email: "o@x.io"}
	booker := &model.User{Name: "booker", Email: "b@x.io"}
	require.NoError(t, s.Users().Create(ctx, owner))
	require.NoError(t, s.Users().Create(ctx, booker))
	item := &model.Item{Name: "tent", Available: true, OwnerID: owner.ID}
	require.NoError(t, s.Items().Create(ctx, item))

	past, err := s.Bookings().Create(ctx, item.ID, booker.ID, now.Add(-72*time.Hour), now.Add(-48*time.Hour), model.StatusApproved)
	require.NoError(t, err)
	current, err := s.Bookings().Create(ctx, item.ID, booker.ID, now.Add(-time.Hour), now.Add(time.Hour), model.StatusApproved)
	require.NoError(t, err)
	future, err := s.Bookings().Create(ctx, item.ID, booker.ID, now.Add(24*time.Hour), now.Add(48*time.Hour), model.StatusWaiting)
	require.NoError(t, err)

	list := func(f repository.BookingFilter) []int64 {
		f.Now = now
		out, err := s.Bookings().List(ctx, f)
		require.NoError(t, err)
		ids := []int64{}
		for _, b := range out {
			ids = append(ids, b.ID)
		}
		return ids
	}

	require.Equal(t, []int64{future, current, past}, list(repository.BookingFilter{BookerID: booker.ID, State: model.StateAll}))
	require.Equal(t, []int64{current}, list(repository.BookingFilter{OwnerID: owner.ID, State: model.StateCurrent}))
	require.Equal(t, []int64{future}, list(repository.BookingFilter{OwnerID: owner.ID, State: model.StateFuture}))
	require.Equal(t, []int64{past}, list(repository.BookingFilter{BookerID: booker.ID, State: model.StatePast}))
	require.Equal(t, []int64{future}, list(repository.BookingFilter{BookerID: booker.ID, State: model.StateWaiting}))
	require.Empty(t, list(repository.BookingFilter{BookerID: booker.ID, State: model.StateRejected}))
	require.Empty(t, list(repository.BookingFilter{BookerID: owner.ID, State: model.StateAll}))

	last, err := s.Bookings().LastForItem(ctx, item.ID, now)
	require.NoError(t, err)
	require.Equal(t, current, last.ID)
	_, err = s.Bookings().NextForItem(ctx, item.ID, now)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	s := New()
	owner := &model.User{Name: "owner", Email: "o@x.io"}
	require.NoError(t, s.Users().Create(ctx, owner))
	item := &model.Item{Name: "tent", Available: true, OwnerID: owner.ID}
	require.NoError(t, s.Items().Create(ctx, item))

	require.NoError(t, s.Users().Delete(ctx, owner.ID))
	_, err := s.Items().GetByID(ctx, item.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.ErrorIs(t, s.Users().Delete(ctx, owner.ID), repository.ErrNotFound)
}
