package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/shareit/internal/model"
)

func TestAddComment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner")
	booker := f.user(t, "booker")
	it := f.item(t, owner.ID, "tent")

	_, err := f.items.AddComment(ctx, booker.ID, it.ID, model.NewComment{Text: "great"})
	requireKind(t, KindNotFound, err)

	b := f.booking(t, booker.ID, it.ID, time.Hour, 24*time.Hour)
	_, err = f.items.AddComment(ctx, booker.ID, it.ID, model.NewComment{Text: "great"})
	requireKind(t, KindValidation, err)

	_, err = f.bookings.Decide(ctx, owner.ID, b.ID, true)
	require.NoError(t, err)

	_, err = f.items.AddComment(ctx, booker.ID, it.ID, model.NewComment{Text: "  "})
	requireKind(t, KindValidation, err)

	c, err := f.items.AddComment(ctx, booker.ID, it.ID, model.NewComment{Text: "great"})
	require.NoError(t, err)
	require.Equal(t, "great", c.Text)
	require.Equal(t, "booker", c.AuthorName)
	require.Equal(t, testNow, c.Created)

	v, err := f.items.Get(ctx, owner.ID, it.ID)
	require.NoError(t, err)
	require.Equal(t, []model.CommentView{c}, v.Comments)
}

func TestAddCommentTooEarly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner")
	booker := f.user(t, "booker")
	it := f.item(t, owner.ID, "tent")
	b := f.booking(t, booker.ID, it.ID, 96*time.Hour, 120*time.Hour)
	_, err := f.bookings.Decide(ctx, owner.ID, b.ID, true)
	require.NoError(t, err)

	_, err = f.items.AddComment(ctx, booker.ID, it.ID, model.NewComment{Text: "soon"})
	requireKind(t, KindValidation, err)
}
