// Package handler содержит HTTP-обработчики API магазина игр.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mmeshcher/gamestore/internal/middleware"
	"github.com/mmeshcher/gamestore/internal/model"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	Signup(ctx context.Context, name, email, password string) (*model.Session, error)
	Login(ctx context.Context, email, password string) (*model.Session, error)
	Logout(ctx context.Context) error
	CurrentSession(ctx context.Context) (*model.Session, error)

	Catalog(ctx context.Context) ([]model.Game, error)
	SearchCatalog(ctx context.Context, query string) ([]model.Game, error)
	Game(ctx context.Context, id string) (*model.Game, error)

	AddToCart(ctx context.Context, userID, gameID string) error
	ChangeQty(ctx context.Context, userID, gameID string, delta int) error
	RemoveFromCart(ctx context.Context, userID, gameID string) error
	CartTotals(ctx context.Context, userID string) (*model.CartTotals, error)

	ValidatePayment(form model.PaymentForm) (model.PaymentSummary, error)
	Checkout(ctx context.Context, userID string, form model.PaymentForm) (*model.Order, error)
	Orders(ctx context.Context, userID string) ([]model.Order, error)
	ConsumeLastSuccess(ctx context.Context, userID string) (*model.LastSuccess, bool, error)
}

// Handler реализует HTTP-обработчики API магазина.
type Handler struct {
	service        Service
	logger         *zap.Logger
	authMiddleware *middleware.AuthMiddleware
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger, auth *middleware.AuthMiddleware) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		service:        s,
		logger:         logger,
		authMiddleware: auth,
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changeQtyRequest struct {
	Delta int `json:"delta"`
}

// Register регистрирует пользователя и открывает сессию.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !h.decode(w, r, &req) {
		return
	}

	session, err := h.service.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.writeError(w, "signup", err)
		return
	}

	middleware.SetSessionCookie(w, session)
	h.writeJSON(w, http.StatusOK, session)
}

// Login выполняет вход и открывает сессию.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}

	session, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, "login", err)
		return
	}

	middleware.SetSessionCookie(w, session)
	h.writeJSON(w, http.StatusOK, session)
}

// Logout закрывает сессию.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context()); err != nil {
		h.writeError(w, "logout", err)
		return
	}

	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusOK)
}

// Session возвращает активную сессию.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.CurrentSession(r.Context())
	if err != nil {
		h.writeError(w, "current session", err)
		return
	}
	h.writeJSON(w, http.StatusOK, session)
}

// ListGames возвращает каталог, при наличии параметра q отфильтрованный по названию.
func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	var (
		games []model.Game
		err   error
	)
	if q := r.URL.Query().Get("q"); q != "" {
		games, err = h.service.SearchCatalog(r.Context(), q)
	} else {
		games, err = h.service.Catalog(r.Context())
	}
	if err != nil {
		h.writeError(w, "list games", err)
		return
	}
	h.writeJSON(w, http.StatusOK, games)
}

// GetGame возвращает одну игру каталога.
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := h.service.Game(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, "get game", err)
		return
	}
	h.writeJSON(w, http.StatusOK, game)
}

// GetCart возвращает корзину вместе с итогом.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	h.respondCart(w, r, userID)
}

// AddToCart добавляет игру в корзину.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.service.AddToCart(r.Context(), userID, chi.URLParam(r, "gameID")); err != nil {
		h.writeError(w, "add to cart", err)
		return
	}
	h.respondCart(w, r, userID)
}

// ChangeQty изменяет количество позиции корзины.
func (h *Handler) ChangeQty(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req changeQtyRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.service.ChangeQty(r.Context(), userID, chi.URLParam(r, "gameID"), req.Delta); err != nil {
		h.writeError(w, "change qty", err)
		return
	}
	h.respondCart(w, r, userID)
}

// RemoveFromCart удаляет позицию из корзины.
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.service.RemoveFromCart(r.Context(), userID, chi.URLParam(r, "gameID")); err != nil {
		h.writeError(w, "remove from cart", err)
		return
	}
	h.respondCart(w, r, userID)
}

// ValidatePayment проверяет форму оплаты без оформления заказа.
func (h *Handler) ValidatePayment(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.userID(w, r); !ok {
		return
	}

	var form model.PaymentForm
	if !h.decode(w, r, &form) {
		return
	}

	summary, err := h.service.ValidatePayment(form)
	if err != nil {
		h.writeError(w, "validate payment", err)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

// Checkout проводит оплату и оформляет заказ.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var form model.PaymentForm
	if !h.decode(w, r, &form) {
		return
	}

	order, err := h.service.Checkout(r.Context(), userID, form)
	if err != nil {
		h.writeError(w, "checkout", err)
		return
	}
	h.writeJSON(w, http.StatusOK, order)
}

// GetOrders возвращает историю заказов текущего пользователя.
func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	orders, err := h.service.Orders(r.Context(), userID)
	if err != nil {
		h.writeError(w, "get orders", err)
		return
	}

	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.writeJSON(w, http.StatusOK, orders)
}

// ConsumeLastSuccess возвращает и удаляет отметку о последнем успешном заказе.
func (h *Handler) ConsumeLastSuccess(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	marker, found, err := h.service.ConsumeLastSuccess(r.Context(), userID)
	if err != nil {
		h.writeError(w, "consume last success", err)
		return
	}

	if !found {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.writeJSON(w, http.StatusOK, marker)
}

func (h *Handler) respondCart(w http.ResponseWriter, r *http.Request, userID string) {
	totals, err := h.service.CartTotals(r.Context(), userID)
	if err != nil {
		h.writeError(w, "cart totals", err)
		return
	}
	h.writeJSON(w, http.StatusOK, totals)
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		h.writeJSONError(w, http.StatusUnauthorized, "Please login first.")
		return "", false
	}
	return userID, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeJSONError(w, http.StatusBadRequest, "Invalid request body.")
		return false
	}
	return true
}

func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(op+" error", zap.Error(err))
		h.writeJSONError(w, status, http.StatusText(status))
		return
	}
	h.writeJSONError(w, status, model.Message(err))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, model.ErrAuth), errors.Is(err, model.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrCheckoutInProgress):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("encode response", zap.Error(err))
	}
}
