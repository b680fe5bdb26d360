package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mmeshcher/gamestore/internal/model"
	"github.com/mmeshcher/gamestore/internal/validation"
)

const (
	msgEmptyCart          = "Your cart is empty."
	msgCheckoutInProgress = "Payment is already being processed."
)

// ValidatePayment проверяет форму оплаты на текущую дату.
func (s *Service) ValidatePayment(form model.PaymentForm) (model.PaymentSummary, error) {
	return validation.ValidatePayment(form, s.now())
}

// Checkout проверяет форму, проводит платёж и фиксирует заказ.
//
// Пока платёж пользователя в обработке, повторный вызов возвращает ErrCheckoutInProgress.
// Ожидание процессора идёт без блокировки сервиса, а итог корзины пересчитывается уже при фиксации.
func (s *Service) Checkout(ctx context.Context, userID string, form model.PaymentForm) (*model.Order, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	summary, err := s.ValidatePayment(form)
	if err != nil {
		return nil, err
	}

	if !s.beginCheckout(userID) {
		return nil, model.NewError(model.ErrCheckoutInProgress, msgCheckoutInProgress)
	}
	defer s.endCheckout(userID)

	totals, err := s.cartTotals(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(totals.Lines) == 0 {
		return nil, model.NewError(model.ErrEmptyCart, msgEmptyCart)
	}

	if s.processor != nil {
		charge, err := s.processor.Charge(ctx, summary, totals.Total.Round(2))
		if err != nil {
			s.logger.Warn("payment failed", zap.String("userID", userID), zap.Error(err))
			return nil, err
		}
		if !charge.Approved {
			return nil, model.NewError(model.ErrValidation, "Payment was declined.")
		}
	}

	return s.CommitOrder(ctx, userID, summary)
}

// CommitOrder превращает текущую корзину в заказ.
//
// Порядок шагов: пересчёт итога, создание заказа, запись в историю,
// очистка корзины, отметка об успехе. Пустая корзина отклоняется без побочных эффектов.
func (s *Service) CommitOrder(ctx context.Context, userID string, summary model.PaymentSummary) (*model.Order, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	totals, err := s.cartTotals(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(totals.Lines) == 0 {
		return nil, model.NewError(model.ErrEmptyCart, msgEmptyCart)
	}

	createdAt := s.now().UTC()
	order := model.Order{
		OrderID:   newOrderID(createdAt),
		CreatedAt: createdAt,
		Total:     totals.Total.Round(2),
		Items:     make([]model.OrderItem, 0, len(totals.Lines)),
		Payment:   summary,
	}
	if order.Payment.Method == "" {
		order.Payment.Method = model.PaymentMethodCard
	}
	if n := len(order.Payment.Last4); n > 4 {
		order.Payment.Last4 = order.Payment.Last4[n-4:]
	}
	for _, l := range totals.Lines {
		order.Items = append(order.Items, model.OrderItem{
			GameID: l.GameID,
			Title:  l.Title,
			Price:  l.Price,
			Qty:    l.Qty,
		})
	}

	if err := s.orders.Prepend(ctx, userID, order); err != nil {
		return nil, err
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		s.logger.Error("order saved but cart was not cleared",
			zap.String("userID", userID),
			zap.String("orderID", order.OrderID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("clear cart after order %s: %w", order.OrderID, err)
	}

	marker := model.LastSuccess{
		OrderID:   order.OrderID,
		CreatedAt: order.CreatedAt,
		Total:     order.Total,
	}
	if err := s.orders.SetLastSuccess(ctx, userID, marker); err != nil {
		s.logger.Warn("failed to save last success marker",
			zap.String("orderID", order.OrderID),
			zap.Error(err),
		)
	}

	s.logger.Info("order created",
		zap.String("userID", userID),
		zap.String("orderID", order.OrderID),
		zap.String("total", order.Total.StringFixed(2)),
	)

	return &order, nil
}

// Orders возвращает историю заказов пользователя, самый новый первым.
func (s *Service) Orders(ctx context.Context, userID string) ([]model.Order, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.orders.List(ctx, userID), nil
}

// ConsumeLastSuccess возвращает и удаляет отметку о последнем успешном заказе.
// Второй вызов подряд вернёт false.
func (s *Service) ConsumeLastSuccess(ctx context.Context, userID string) (*model.LastSuccess, bool, error) {
	if err := requireUser(userID); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	marker, ok := s.orders.LastSuccess(ctx, userID)
	if !ok {
		return nil, false, nil
	}
	if err := s.orders.DeleteLastSuccess(ctx, userID); err != nil {
		return nil, false, err
	}
	return marker, true, nil
}

func (s *Service) beginCheckout(userID string) bool {
	s.inflightMu.Lock()
	defer s.inflightMu.Unlock()

	if _, busy := s.inflight[userID]; busy {
		return false
	}
	s.inflight[userID] = struct{}{}
	return true
}

func (s *Service) endCheckout(userID string) {
	s.inflightMu.Lock()
	defer s.inflightMu.Unlock()

	delete(s.inflight, userID)
}
