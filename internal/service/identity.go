package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmeshcher/gamestore/internal/model"
	"github.com/mmeshcher/gamestore/internal/repository"
	"github.com/mmeshcher/gamestore/internal/validation"
)

const (
	msgEmailTaken      = "That email is already registered. Please login."
	msgAccountNotFound = "Account not found. Please signup first."
	msgWrongPassword   = "Invalid password. Please try again."
	msgPasswordTooLong = "Password must be at most 72 bytes."
)

// Signup регистрирует пользователя и открывает для него новую сессию.
func (s *Service) Signup(ctx context.Context, name, email, password string) (*model.Session, error) {
	name = strings.TrimSpace(name)
	email = validation.NormalizeEmail(email)

	if err := validation.ValidateSignup(name, email, password); err != nil {
		return nil, err
	}

	digest, err := s.hasher.Digest(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, model.NewError(model.ErrValidation, msgPasswordTooLong)
		}
		return nil, fmt.Errorf("digest password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := model.User{
		ID:           newUserID(),
		Name:         name,
		Email:        email,
		PasswordHash: digest,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, model.NewError(model.ErrConflict, msgEmailTaken)
		}
		return nil, fmt.Errorf("signup: %w", err)
	}

	s.logger.Info("user registered", zap.String("userID", user.ID))

	return s.startSession(ctx, user)
}

// Login проверяет email и пароль и открывает новую сессию.
func (s *Service) Login(ctx context.Context, email, password string) (*model.Session, error) {
	email = validation.NormalizeEmail(email)

	if err := validation.ValidateLogin(email, password); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, model.NewError(model.ErrNotFound, msgAccountNotFound)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, model.NewError(model.ErrAuth, msgWrongPassword)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.startSession(ctx, *user)
}

// Logout закрывает сессию. Повторный вызов ничего не меняет.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Clear(ctx)
}

// CurrentSession возвращает активную сессию или ErrUnauthenticated.
func (s *Service) CurrentSession(ctx context.Context) (*model.Session, error) {
	session, ok := s.sessions.Get(ctx)
	if !ok {
		return nil, model.NewError(model.ErrUnauthenticated, "Please login first.")
	}
	return session, nil
}

func (s *Service) startSession(ctx context.Context, user model.User) (*model.Session, error) {
	session := model.Session{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Token:     newSessionToken(),
		CreatedAt: s.now().UTC(),
	}

	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	return &session, nil
}
