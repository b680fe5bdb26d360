// Package middleware содержит HTTP middleware магазина игр.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/gamestore/internal/model"
)

type contextKey string

const userIDKey contextKey = "userID"

const (
	sessionCookieName = "session_token"
	sessionCookieTTL  = 30 * 24 * time.Hour
)

// SessionProvider возвращает активную сессию магазина.
type SessionProvider interface {
	CurrentSession(ctx context.Context) (*model.Session, error)
}

// AuthMiddleware пропускает запрос дальше, только если в хранилище есть активная сессия.
type AuthMiddleware struct {
	sessions SessionProvider
	logger   *zap.Logger
}

// NewAuthMiddleware создаёт новый экземпляр AuthMiddleware.
func NewAuthMiddleware(sessions SessionProvider, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{
		sessions: sessions,
		logger:   logger,
	}
}

// Middleware читает слот сессии и добавляет идентификатор пользователя в контекст запроса.
func (a *AuthMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := a.sessions.CurrentSession(r.Context())
		if err != nil {
			if errors.Is(err, model.ErrUnauthenticated) {
				writeJSONError(w, http.StatusUnauthorized, model.Message(err))
				return
			}
			a.logger.Error("read session", zap.Error(err))
			writeJSONError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), session.UserID)))
	})
}

// SetSessionCookie выставляет cookie с токеном сессии. Для авторизации cookie не используется.
func SetSessionCookie(w http.ResponseWriter, session *model.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  time.Now().Add(sessionCookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie удаляет cookie сессии.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// WithUserID возвращает контекст с идентификатором пользователя.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext извлекает идентификатор пользователя из контекста запроса.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
