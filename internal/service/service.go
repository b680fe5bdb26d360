// Package service реализует бизнес-логику магазина игр: аккаунты и сессию, каталог, корзину и оформление заказа.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mmeshcher/gamestore/internal/model"
	"github.com/mmeshcher/gamestore/internal/payment"
	"github.com/mmeshcher/gamestore/internal/repository"
)

// PaymentProcessor проводит платёж по уже проверенной форме оплаты.
type PaymentProcessor interface {
	Charge(ctx context.Context, summary model.PaymentSummary, amount decimal.Decimal) (*payment.Charge, error)
}

// Service содержит бизнес-логику магазина.
//
// Хранилище не поддерживает транзакций, поэтому все изменяющие операции
// выполняются под одним мьютексом: у магазина ровно один писатель.
type Service struct {
	kv        *repository.KV
	users     *repository.UserRepository
	sessions  *repository.SessionStore
	catalog   *repository.CatalogRepository
	carts     *repository.CartRepository
	orders    *repository.OrderRepository
	processor PaymentProcessor
	hasher    *PasswordHasher
	logger    *zap.Logger
	now       func() time.Time

	mu sync.Mutex

	inflightMu sync.Mutex
	inflight   map[string]struct{}
}

// Option настраивает Service.
type Option func(*Service)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService создаёт сервис поверх key-value адаптера.
func NewService(kv *repository.KV, processor PaymentProcessor, hasher *PasswordHasher, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if hasher == nil {
		hasher = NewPasswordHasher(0)
	}

	s := &Service{
		kv:        kv,
		users:     repository.NewUserRepository(kv),
		sessions:  repository.NewSessionStore(kv),
		catalog:   repository.NewCatalogRepository(kv),
		carts:     repository.NewCartRepository(kv),
		orders:    repository.NewOrderRepository(kv),
		processor: processor,
		hasher:    hasher,
		logger:    logger,
		now:       time.Now,
		inflight:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close закрывает хранилище.
func (s *Service) Close() error {
	if s.kv != nil {
		return s.kv.Close()
	}
	return nil
}

func requireUser(userID string) error {
	if userID == "" {
		return model.NewError(model.ErrUnauthenticated, "Please login first.")
	}
	return nil
}
