package repository

import (
	"context"
	"fmt"

	"github.com/mmeshcher/gamestore/internal/model"
)

// SessionStore — единственный на процесс слот сессии. Отсутствие записи означает, что вход не выполнен.
type SessionStore struct {
	kv *KV
}

// NewSessionStore создаёт хранилище сессии.
func NewSessionStore(kv *KV) *SessionStore {
	return &SessionStore{kv: kv}
}

// Get возвращает текущую сессию, если она есть.
func (s *SessionStore) Get(ctx context.Context) (*model.Session, bool) {
	session := Read[*model.Session](ctx, s.kv, KeySession, nil)
	if session == nil || session.UserID == "" {
		return nil, false
	}
	return session, true
}

// Set заменяет текущую сессию.
func (s *SessionStore) Set(ctx context.Context, session model.Session) error {
	if err := s.kv.Write(ctx, KeySession, session); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

// Clear удаляет сессию. Повторный вызов безопасен.
func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, KeySession); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
