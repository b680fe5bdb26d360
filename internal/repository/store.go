// Package repository содержит адаптер key-value хранилища и типизированные репозитории магазина поверх него.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/mmeshcher/gamestore/internal/model"
)

// Ключи хранилища. Совпадают с ключами, которые пишет фронтенд магазина.
const (
	KeyUsers          = "gs_users_v1"
	KeySession        = "gs_session_v1"
	KeyGames          = "gs_games_v1"
	keyOrdersPrefix   = "gs_orders_v1_user_"
	keyCartPrefix     = "gs_cart_v1_user_"
	keyLastSuccessPfx = "gs_last_success_v1_user_"
)

// CartKey возвращает ключ корзины пользователя.
func CartKey(userID string) string { return keyCartPrefix + userID }

// OrdersKey возвращает ключ списка заказов пользователя.
func OrdersKey(userID string) string { return keyOrdersPrefix + userID }

// LastSuccessKey возвращает ключ одноразовой отметки об успешном заказе.
func LastSuccessKey(userID string) string { return keyLastSuccessPfx + userID }

// Store — плоское строковое key-value хранилище. Set полностью перезаписывает значение.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// KV сериализует записи в JSON и обратно поверх Store.
type KV struct {
	store  Store
	logger *zap.Logger
}

// NewKV создаёт адаптер поверх указанного хранилища.
func NewKV(store Store, logger *zap.Logger) *KV {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KV{
		store:  store,
		logger: logger,
	}
}

// Close закрывает нижележащее хранилище.
func (kv *KV) Close() error {
	return kv.store.Close()
}

// Read читает значение по ключу. Если значения нет, оно не читается или повреждено,
// возвращается fallback: это единственный механизм восстановления после порчи хранилища.
func Read[T any](ctx context.Context, kv *KV, key string, fallback T) T {
	raw, ok, err := kv.store.Get(ctx, key)
	if err != nil {
		kv.logger.Warn("read store value", zap.String("key", key), zap.Error(err))
		return fallback
	}
	if !ok {
		return fallback
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		kv.logger.Warn("stored value replaced with fallback",
			zap.String("key", key),
			zap.Error(fmt.Errorf("%w: %w", model.ErrStoreCorruption, err)),
		)
		return fallback
	}

	return v
}

// ReadList читает JSON-массив по ключу и разбирает каждый элемент отдельно.
// Нечитаемые элементы отбрасываются, остальные сохраняются, так что следующая
// запись списка не теряет целые записи. Если значение вообще не массив,
// возвращается пустой список.
func ReadList[T any](ctx context.Context, kv *KV, key string) []T {
	raws := Read(ctx, kv, key, []json.RawMessage{})

	items := make([]T, 0, len(raws))
	for i, raw := range raws {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			kv.logger.Warn("stored list element dropped",
				zap.String("key", key),
				zap.Int("index", i),
				zap.Error(fmt.Errorf("%w: %w", model.ErrStoreCorruption, err)),
			)
			continue
		}
		items = append(items, item)
	}
	return items
}

// Write сериализует значение и перезаписывает им ключ.
func (kv *KV) Write(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err := kv.store.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Delete удаляет ключ. Отсутствие ключа ошибкой не считается.
func (kv *KV) Delete(ctx context.Context, key string) error {
	if err := kv.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
