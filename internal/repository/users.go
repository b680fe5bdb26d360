package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmeshcher/gamestore/internal/model"
)

var (
	// ErrUserExists возвращается при попытке создать пользователя с уже занятым email.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound возвращается, если пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
)

// UserRepository хранит каталог пользователей под одним глобальным ключом.
type UserRepository struct {
	kv *KV
}

// NewUserRepository создаёт репозиторий пользователей.
func NewUserRepository(kv *KV) *UserRepository {
	return &UserRepository{kv: kv}
}

// List возвращает всех пользователей. Записи без id или email отбрасываются.
func (r *UserRepository) List(ctx context.Context) []model.User {
	stored := ReadList[model.User](ctx, r.kv, KeyUsers)

	users := make([]model.User, 0, len(stored))
	for _, u := range stored {
		if u.ID == "" || u.Email == "" {
			continue
		}
		users = append(users, u)
	}
	return users
}

// FindByEmail ищет пользователя по уже нормализованному email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.List(ctx) {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

// Create добавляет пользователя. Email должен быть уникален.
func (r *UserRepository) Create(ctx context.Context, user model.User) error {
	users := r.List(ctx)
	for _, u := range users {
		if u.Email == user.Email {
			return fmt.Errorf("%w: %s", ErrUserExists, user.Email)
		}
	}

	users = append(users, user)
	if err := r.kv.Write(ctx, KeyUsers, users); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}
