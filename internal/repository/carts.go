package repository

import (
	"context"
	"fmt"

	"github.com/mmeshcher/gamestore/internal/model"
)

// CartRepository хранит корзину каждого пользователя под отдельным ключом.
type CartRepository struct {
	kv *KV
}

// NewCartRepository создаёт репозиторий корзин.
func NewCartRepository(kv *KV) *CartRepository {
	return &CartRepository{kv: kv}
}

// Get возвращает строки корзины пользователя в порядке добавления.
func (r *CartRepository) Get(ctx context.Context, userID string) []model.CartLine {
	stored := ReadList[model.CartLine](ctx, r.kv, CartKey(userID))

	lines := make([]model.CartLine, 0, len(stored))
	for _, l := range stored {
		if l.GameID == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// Save перезаписывает корзину пользователя.
func (r *CartRepository) Save(ctx context.Context, userID string, lines []model.CartLine) error {
	if lines == nil {
		lines = []model.CartLine{}
	}
	if err := r.kv.Write(ctx, CartKey(userID), lines); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Clear очищает корзину пользователя.
func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	return r.Save(ctx, userID, nil)
}
