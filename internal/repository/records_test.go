package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/gamestore/internal/model"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	kv, _ := newTestKV(t)
	repo := NewUserRepository(kv)

	user := model.User{ID: "u_1", Name: "Ada", Email: "ada@example.com", PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u_1", found.ID)

	_, err = repo.FindByEmail(ctx, "bob@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	err = repo.Create(ctx, model.User{ID: "u_2", Email: "ada@example.com"})
	assert.ErrorIs(t, err, ErrUserExists)
	assert.Len(t, repo.List(ctx), 1)
}

func TestUserRepository_DropsMalformedRecords(t *testing.T) {
	ctx := context.Background()
	kv, store := newTestKV(t)
	repo := NewUserRepository(kv)

	require.NoError(t, store.Set(ctx, KeyUsers, `[{"id":"u_1","email":"ada@example.com"},{"name":"ghost"}]`))

	users := repo.List(ctx)
	require.Len(t, users, 1)
	assert.Equal(t, "u_1", users[0].ID)
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	kv, store := newTestKV(t)
	sessions := NewSessionStore(kv)

	_, ok := sessions.Get(ctx)
	assert.False(t, ok)

	require.NoError(t, sessions.Set(ctx, model.Session{UserID: "u_1", Token: "demo_a"}))
	require.NoError(t, sessions.Set(ctx, model.Session{UserID: "u_2", Token: "demo_b"}))

	current, ok := sessions.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "u_2", current.UserID)

	require.NoError(t, sessions.Clear(ctx))
	require.NoError(t, sessions.Clear(ctx))
	_, ok = sessions.Get(ctx)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, KeySession, `"garbage"`))
	_, ok = sessions.Get(ctx)
	assert.False(t, ok)
}

func TestCatalogRepository_SeedsOnce(t *testing.T) {
	ctx := context.Background()
	kv, _ := newTestKV(t)
	repo := NewCatalogRepository(kv)

	games, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, games, 9)
	assert.Equal(t, "neon-drift", games[0].ID)

	// Изменение встроенного набора не влияет на уже сохранённый каталог.
	repo.seed = func() []model.Game {
		return []model.Game{{ID: "other", Price: decimal.NewFromInt(1)}}
	}
	again, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, again, 9)

	game, ok, err := repo.Find(ctx, "pixel-quest")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, game.Price.Equal(decimal.RequireFromString("9.99")))

	_, ok, err = repo.Find(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCatalogRepository_ReseedsEmptyOrCorrupt(t *testing.T) {
	ctx := context.Background()

	for _, raw := range []string{`[]`, `{oops`} {
		kv, store := newTestKV(t)
		require.NoError(t, store.Set(ctx, KeyGames, raw))

		games, err := NewCatalogRepository(kv).List(ctx)
		require.NoError(t, err)
		assert.Len(t, games, 9)
	}
}

func TestCatalogRepository_SeedWriteError(t *testing.T) {
	kv := NewKV(&failingStore{setErr: errors.New("read-only")}, nil)

	_, err := NewCatalogRepository(kv).List(context.Background())
	assert.Error(t, err)
}

func TestCartRepository(t *testing.T) {
	ctx := context.Background()
	kv, store := newTestKV(t)
	carts := NewCartRepository(kv)

	assert.Empty(t, carts.Get(ctx, "u_1"))

	now := time.Now().UTC()
	require.NoError(t, carts.Save(ctx, "u_1", []model.CartLine{{GameID: "neon-drift", Qty: 2, AddedAt: now}}))
	assert.Len(t, carts.Get(ctx, "u_1"), 1)
	assert.Empty(t, carts.Get(ctx, "u_2"))

	require.NoError(t, carts.Clear(ctx, "u_1"))
	raw, _, _ := store.Get(ctx, CartKey("u_1"))
	assert.Equal(t, "[]", raw)

	require.NoError(t, store.Set(ctx, CartKey("u_1"), `[{"qty":3},{"gameId":"void-echo","qty":1}]`))
	lines := carts.Get(ctx, "u_1")
	require.Len(t, lines, 1)
	assert.Equal(t, "void-echo", lines[0].GameID)
}

func TestOrderRepository(t *testing.T) {
	ctx := context.Background()
	kv, _ := newTestKV(t)
	orders := NewOrderRepository(kv)

	require.NoError(t, orders.Prepend(ctx, "u_1", model.Order{OrderID: "GS-1"}))
	require.NoError(t, orders.Prepend(ctx, "u_1", model.Order{OrderID: "GS-2"}))

	list := orders.List(ctx, "u_1")
	require.Len(t, list, 2)
	assert.Equal(t, "GS-2", list[0].OrderID)
	assert.Empty(t, orders.List(ctx, "u_2"))

	_, ok := orders.LastSuccess(ctx, "u_1")
	assert.False(t, ok)

	require.NoError(t, orders.SetLastSuccess(ctx, "u_1", model.LastSuccess{OrderID: "GS-2"}))
	marker, ok := orders.LastSuccess(ctx, "u_1")
	require.True(t, ok)
	assert.Equal(t, "GS-2", marker.OrderID)

	require.NoError(t, orders.DeleteLastSuccess(ctx, "u_1"))
	_, ok = orders.LastSuccess(ctx, "u_1")
	assert.False(t, ok)
}

func TestUserRepository_CreateKeepsIntactRecordsNextToCorruptOne(t *testing.T) {
	ctx := context.Background()
	kv, store := newTestKV(t)
	repo := NewUserRepository(kv)

	require.NoError(t, store.Set(ctx, KeyUsers, `[`+
		`{"id":"u_1","name":"Ada","email":"ada@example.com","createdAt":"yesterday"},`+
		`{"id":"u_2","name":"Bob","email":"bob@example.com","createdAt":"2026-10-01T10:00:00Z"}]`))

	require.NoError(t, repo.Create(ctx, model.User{ID: "u_3", Name: "Cy", Email: "cy@example.com"}))

	users := repo.List(ctx)
	require.Len(t, users, 2)
	assert.Equal(t, "u_2", users[0].ID)
	assert.Equal(t, "u_3", users[1].ID)

	_, err := repo.FindByEmail(ctx, "bob@example.com")
	assert.NoError(t, err)
}

func TestOrderRepository_PrependKeepsIntactOrdersNextToCorruptOne(t *testing.T) {
	ctx := context.Background()
	kv, store := newTestKV(t)
	orders := NewOrderRepository(kv)

	require.NoError(t, store.Set(ctx, OrdersKey("u_1"), `[`+
		`{"orderId":"GS-BAD","total":"abc"},`+
		`{"orderId":"GS-OLD","createdAt":"2026-10-01T10:00:00Z","total":"19.99"}]`))

	require.NoError(t, orders.Prepend(ctx, "u_1", model.Order{OrderID: "GS-NEW", Total: decimal.RequireFromString("5")}))

	list := orders.List(ctx, "u_1")
	require.Len(t, list, 2)
	assert.Equal(t, "GS-NEW", list[0].OrderID)
	assert.Equal(t, "GS-OLD", list[1].OrderID)
	assert.True(t, list[1].Total.Equal(decimal.RequireFromString("19.99")))
}

func TestCartRepository_KeepsIntactLinesNextToCorruptOne(t *testing.T) {
	ctx := context.Background()
	kv, store := newTestKV(t)
	carts := NewCartRepository(kv)

	require.NoError(t, store.Set(ctx, CartKey("u_1"), `[`+
		`{"gameId":"neon-drift","qty":1,"addedAt":"not a time"},`+
		`{"gameId":"void-echo","qty":2,"addedAt":"2026-10-01T10:00:00Z"}]`))

	lines := carts.Get(ctx, "u_1")
	require.Len(t, lines, 1)
	assert.Equal(t, "void-echo", lines[0].GameID)
	assert.Equal(t, 2, lines[0].Qty)
}
