package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/shareit/internal/model"
)

func TestCreateUserValidatesEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.Create(ctx, model.NewUser{Name: "a"})
	requireKind(t, KindValidation, err)
	_, err = f.users.Create(ctx, model.NewUser{Name: "a", Email: strp("no-at-sign")})
	requireKind(t, KindValidation, err)
}

func TestEmailUniqueness(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.users.Create(ctx, model.NewUser{Name: "A", Email: strp("a@x.com")})
	require.NoError(t, err)
	_, err = f.users.Create(ctx, model.NewUser{Name: "B", Email: strp("A@X.com")})
	requireKind(t, KindDuplicate, err)

	b, err := f.users.Create(ctx, model.NewUser{Name: "B", Email: strp("b@x.com")})
	require.NoError(t, err)
	_, err = f.users.Patch(ctx, b.ID, model.UserPatch{Email: model.Some("a@x.com")})
	requireKind(t, KindDuplicate, err)

	got, err := f.users.Patch(ctx, a.ID, model.UserPatch{Email: model.Some("a@x.com")})
	require.NoError(t, err)
	require.Equal(t, "a@x.com", got.Email)
}

func TestPatchUserKeepsAbsentFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "alice")

	got, err := f.users.Patch(ctx, u.ID, model.UserPatch{Name: model.Some("Alice")})
	require.NoError(t, err)
	require.Equal(t, "Alice", got.Name)
	require.Equal(t, u.Email, got.Email)

	got, err = f.users.Patch(ctx, u.ID, model.UserPatch{Name: model.Optional[string]{Set: true, Null: true}})
	require.NoError(t, err)
	require.Equal(t, "Alice", got.Name)

	_, err = f.users.Patch(ctx, 999, model.UserPatch{Name: model.Some("x")})
	requireKind(t, KindNotFound, err)
}

func TestGetAndDeleteUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "alice")

	got, err := f.users.Get(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u, got)

	require.NoError(t, f.users.Delete(ctx, u.ID))
	_, err = f.users.Get(ctx, u.ID)
	requireKind(t, KindNotFound, err)
	requireKind(t, KindNotFound, f.users.Delete(ctx, u.ID))

	all, err := f.users.List(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}
