package service

import (
	"context"
	"strings"

	"github.com/mmeshcher/gamestore/internal/model"
)

// Catalog возвращает все игры в порядке каталога.
func (s *Service) Catalog(ctx context.Context) ([]model.Game, error) {
	return s.catalog.List(ctx)
}

// SearchCatalog фильтрует каталог по вхождению строки в название без учёта регистра.
// Пустой запрос возвращает весь каталог.
func (s *Service) SearchCatalog(ctx context.Context, query string) ([]model.Game, error) {
	games, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return games, nil
	}

	res := make([]model.Game, 0, len(games))
	for _, g := range games {
		if strings.Contains(strings.ToLower(g.Title), q) {
			res = append(res, g)
		}
	}
	return res, nil
}

// Game возвращает игру по идентификатору или ErrNotFound.
func (s *Service) Game(ctx context.Context, id string) (*model.Game, error) {
	g, ok, err := s.catalog.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.NewError(model.ErrNotFound, "Game not found.")
	}
	return &g, nil
}
