package repository

import (
	"context"
	"fmt"

	"github.com/mmeshcher/gamestore/internal/model"
)

// OrderRepository хранит историю заказов пользователя (новые первыми) и одноразовую отметку об успехе.
type OrderRepository struct {
	kv *KV
}

// NewOrderRepository создаёт репозиторий заказов.
func NewOrderRepository(kv *KV) *OrderRepository {
	return &OrderRepository{kv: kv}
}

// List возвращает заказы пользователя, самый новый первым.
func (r *OrderRepository) List(ctx context.Context, userID string) []model.Order {
	stored := ReadList[model.Order](ctx, r.kv, OrdersKey(userID))

	orders := make([]model.Order, 0, len(stored))
	for _, o := range stored {
		if o.OrderID == "" {
			continue
		}
		orders = append(orders, o)
	}
	return orders
}

// Prepend добавляет заказ в начало истории пользователя.
func (r *OrderRepository) Prepend(ctx context.Context, userID string, order model.Order) error {
	orders := append([]model.Order{order}, r.List(ctx, userID)...)
	if err := r.kv.Write(ctx, OrdersKey(userID), orders); err != nil {
		return fmt.Errorf("prepend order: %w", err)
	}
	return nil
}

// SetLastSuccess сохраняет отметку об успешном заказе.
func (r *OrderRepository) SetLastSuccess(ctx context.Context, userID string, marker model.LastSuccess) error {
	if err := r.kv.Write(ctx, LastSuccessKey(userID), marker); err != nil {
		return fmt.Errorf("set last success: %w", err)
	}
	return nil
}

// LastSuccess возвращает отметку об успешном заказе, если она есть.
func (r *OrderRepository) LastSuccess(ctx context.Context, userID string) (*model.LastSuccess, bool) {
	marker := Read[*model.LastSuccess](ctx, r.kv, LastSuccessKey(userID), nil)
	if marker == nil || marker.OrderID == "" {
		return nil, false
	}
	return marker, true
}

// DeleteLastSuccess удаляет отметку об успешном заказе.
func (r *OrderRepository) DeleteLastSuccess(ctx context.Context, userID string) error {
	if err := r.kv.Delete(ctx, LastSuccessKey(userID)); err != nil {
		return fmt.Errorf("delete last success: %w", err)
	}
	return nil
}
