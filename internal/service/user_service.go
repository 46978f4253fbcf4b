package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/repository"
)

// UserService manages user accounts.
type UserService struct {
	store repository.Store
	log   *zap.Logger
}

func NewUserService(store repository.Store, log *zap.Logger) *UserService {
	return &UserService{store: store, log: log}
}

func validEmail(email string) bool {
	return strings.TrimSpace(email) != "" && strings.Contains(email, "@")
}

func (s *UserService) Create(ctx context.Context, in model.NewUser) (model.User, error) {
	if in.Email == nil || !validEmail(*in.Email) {
		return model.User{}, validationf("email must be set and contain '@'")
	}
	u := model.User{Name: in.Name, Email: strings.TrimSpace(*in.Email)}
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		taken, err := tx.Users().EmailTaken(ctx, u.Email, 0)
		if err != nil {
			return err
		}
		if taken {
			return duplicatef("user with email %s already exists", u.Email)
		}
		return s.create(ctx, tx, &u)
	})
	if err != nil {
		return model.User{}, err
	}
	s.log.Info("user created", zap.Int64("user_id", u.ID))
	return u, nil
}

func (s *UserService) create(ctx context.Context, tx repository.Store, u *model.User) error {
	err := tx.Users().Create(ctx, u)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return duplicatef("user with email %s already exists", u.Email)
	}
	return err
}

func (s *UserService) Get(ctx context.Context, id int64) (model.User, error) {
	u, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		return model.User{}, lookup(err, "user %d not found", id)
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.store.Users().List(ctx)
}

// Patch overwrites only the fields present in p.
func (s *UserService) Patch(ctx context.Context, id int64, p model.UserPatch) (model.User, error) {
	var out model.User
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		u, err := tx.Users().GetForUpdate(ctx, id)
		if err != nil {
			return lookup(err, "user %d not found", id)
		}
		if name, ok := p.Name.Get(); ok {
			u.Name = name
		}
		if email, ok := p.Email.Get(); ok {
			if !validEmail(email) {
				return validationf("email must be set and contain '@'")
			}
			email = strings.TrimSpace(email)
			taken, err := tx.Users().EmailTaken(ctx, email, id)
			if err != nil {
				return err
			}
			if taken {
				return duplicatef("user with email %s already exists", email)
			}
			u.Email = email
		}
		err = tx.Users().Update(ctx, u)
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return duplicatef("user with email %s already exists", u.Email)
		}
		if err != nil {
			return err
		}
		out = u
		return nil
	})
	return out, err
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Users().Delete(ctx, id); err != nil {
		return lookup(err, "user %d not found", id)
	}
	s.log.Info("user deleted", zap.Int64("user_id", id))
	return nil
}
