package service

import (
	"context"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mmeshcher/gamestore/internal/model"
)

// Cart возвращает сохранённые строки корзины пользователя.
func (s *Service) Cart(ctx context.Context, userID string) ([]model.CartLine, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.carts.Get(ctx, userID), nil
}

// CartCount возвращает общее число единиц товара в корзине.
func (s *Service) CartCount(ctx context.Context, userID string) (int, error) {
	if err := requireUser(userID); err != nil {
		return 0, err
	}

	count := 0
	for _, l := range s.carts.Get(ctx, userID) {
		count += max(l.Qty, 0)
	}
	return count, nil
}

// AddToCart добавляет игру в корзину или увеличивает количество на 1 (не выше model.MaxQty).
// Неизвестный gameID молча игнорируется.
func (s *Service) AddToCart(ctx context.Context, userID, gameID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok, err := s.catalog.Find(ctx, gameID)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	lines := s.carts.Get(ctx, userID)
	if i := indexOfGame(lines, gameID); i >= 0 {
		lines[i].Qty = model.ClampQty(model.ClampQty(lines[i].Qty) + 1)
	} else {
		lines = append(lines, model.CartLine{
			GameID:  gameID,
			Qty:     1,
			AddedAt: s.now().UTC(),
		})
	}

	return s.carts.Save(ctx, userID, lines)
}

// ChangeQty изменяет количество на delta с ограничением [model.MinQty, model.MaxQty].
// Уменьшение ниже 1 строку не удаляет. Отсутствующая строка игнорируется.
func (s *Service) ChangeQty(ctx context.Context, userID, gameID string, delta int) error {
	if err := requireUser(userID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts.Get(ctx, userID)
	i := indexOfGame(lines, gameID)
	if i < 0 {
		return nil
	}

	// Обе части суммы ограничены заранее, иначе delta около math.MaxInt переполняет int.
	delta = max(-model.MaxQty, min(model.MaxQty, delta))
	lines[i].Qty = model.ClampQty(model.ClampQty(lines[i].Qty) + delta)
	return s.carts.Save(ctx, userID, lines)
}

// RemoveFromCart удаляет строку корзины. Отсутствующая строка игнорируется без записи в хранилище.
func (s *Service) RemoveFromCart(ctx context.Context, userID, gameID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts.Get(ctx, userID)
	i := indexOfGame(lines, gameID)
	if i < 0 {
		return nil
	}

	return s.carts.Save(ctx, userID, slices.Delete(lines, i, i+1))
}

// CartTotals соединяет корзину с каталогом и считает итог.
// Строки с играми, которых больше нет в каталоге, в расчёт не попадают, но из хранилища не удаляются.
func (s *Service) CartTotals(ctx context.Context, userID string) (*model.CartTotals, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.cartTotals(ctx, userID)
}

func (s *Service) cartTotals(ctx context.Context, userID string) (*model.CartTotals, error) {
	byID, err := s.catalog.Index(ctx)
	if err != nil {
		return nil, err
	}

	totals := computeTotals(s.carts.Get(ctx, userID), byID)
	return &totals, nil
}

func computeTotals(lines []model.CartLine, byID map[string]model.Game) model.CartTotals {
	res := model.CartTotals{
		Lines: make([]model.CartViewLine, 0, len(lines)),
		Total: decimal.Zero,
	}

	for _, l := range lines {
		g, ok := byID[l.GameID]
		if !ok {
			continue
		}

		qty := model.ClampQty(l.Qty)
		lineTotal := g.Price.Mul(decimal.NewFromInt(int64(qty)))

		res.Lines = append(res.Lines, model.CartViewLine{
			GameID:    l.GameID,
			Qty:       qty,
			AddedAt:   l.AddedAt,
			Title:     g.Title,
			Price:     g.Price,
			Genre:     g.Genre,
			Rating:    g.Rating,
			LineTotal: lineTotal,
			AccentA:   g.AccentA,
			AccentB:   g.AccentB,
		})
		res.Total = res.Total.Add(lineTotal)
		res.Count += qty
	}

	return res
}

func indexOfGame(lines []model.CartLine, gameID string) int {
	return slices.IndexFunc(lines, func(l model.CartLine) bool {
		return l.GameID == gameID
	})
}
