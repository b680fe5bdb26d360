package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmeshcher/gamestore/internal/model"
)

// CatalogRepository хранит общий для процесса каталог игр.
// При первом обращении к пустому хранилищу каталог заполняется встроенным набором.
type CatalogRepository struct {
	kv   *KV
	seed func() []model.Game
}

// NewCatalogRepository создаёт репозиторий каталога со встроенным набором игр.
func NewCatalogRepository(kv *KV) *CatalogRepository {
	return &CatalogRepository{kv: kv, seed: DefaultGames}
}

// List возвращает каталог в порядке заполнения.
func (r *CatalogRepository) List(ctx context.Context) ([]model.Game, error) {
	stored := ReadList[model.Game](ctx, r.kv, KeyGames)

	games := make([]model.Game, 0, len(stored))
	for _, g := range stored {
		if g.ID == "" {
			continue
		}
		games = append(games, g)
	}
	if len(games) > 0 {
		return games, nil
	}

	games = r.seed()
	if err := r.kv.Write(ctx, KeyGames, games); err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	return games, nil
}

// Find ищет игру по идентификатору.
func (r *CatalogRepository) Find(ctx context.Context, id string) (model.Game, bool, error) {
	games, err := r.List(ctx)
	if err != nil {
		return model.Game{}, false, err
	}
	for _, g := range games {
		if g.ID == id {
			return g, true, nil
		}
	}
	return model.Game{}, false, nil
}

// Index возвращает каталог в виде словаря по идентификатору.
func (r *CatalogRepository) Index(ctx context.Context) (map[string]model.Game, error) {
	games, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Game, len(games))
	for _, g := range games {
		byID[g.ID] = g
	}
	return byID, nil
}

// DefaultGames возвращает встроенный набор игр для первого запуска.
func DefaultGames() []model.Game {
	return []model.Game{
		{
			ID:          "neon-drift",
			Title:       "Neon Drift",
			Price:       decimal.RequireFromString("19.99"),
			Genre:       "Racing",
			Rating:      4.6,
			AccentA:     "#7C4DFF",
			AccentB:     "#00D4FF",
			Description: "A high-speed synthwave racer with tight drifting, time trials, and neon cityscapes. Master boost chains and dominate leaderboards.",
		},
		{
			ID:          "iron-legion",
			Title:       "Iron Legion",
			Price:       decimal.RequireFromString("29.99"),
			Genre:       "Action",
			Rating:      4.4,
			AccentA:     "#FF4D6D",
			AccentB:     "#FFB020",
			Description: "Build your loadout, upgrade exo-gear, and fight through cinematic missions. Fast combat, satisfying progression, and co-op arenas.",
		},
		{
			ID:          "void-echo",
			Title:       "Void Echo",
			Price:       decimal.RequireFromString("24.99"),
			Genre:       "Sci-Fi RPG",
			Rating:      4.7,
			AccentA:     "#00D4FF",
			AccentB:     "#35D07F",
			Description: "A story-driven space RPG with branching choices and crew management. Explore derelict stations, negotiate alliances, and shape the galaxy.",
		},
		{
			ID:          "cryptkeeper",
			Title:       "Cryptkeeper",
			Price:       decimal.RequireFromString("14.99"),
			Genre:       "Roguelite",
			Rating:      4.3,
			AccentA:     "#35D07F",
			AccentB:     "#7C4DFF",
			Description: "A roguelite dungeon crawler with bite-sized runs and deep builds. Combine relics, unlock characters, and break the curse run by run.",
		},
		{
			ID:          "skyforge-tactics",
			Title:       "Skyforge Tactics",
			Price:       decimal.RequireFromString("34.99"),
			Genre:       "Strategy",
			Rating:      4.2,
			AccentA:     "#FFB020",
			AccentB:     "#7C4DFF",
			Description: "Turn-based tactical battles above the clouds. Command squads, manage resources, and adapt to dynamic weather and terrain.",
		},
		{
			ID:          "shadow-circuit",
			Title:       "Shadow Circuit",
			Price:       decimal.RequireFromString("21.99"),
			Genre:       "Stealth",
			Rating:      4.5,
			AccentA:     "#7C4DFF",
			AccentB:     "#FF4D6D",
			Description: "Infiltrate megacorp facilities using gadgets, disguises, and silent takedowns. Every mission supports multiple playstyles and routes.",
		},
		{
			ID:          "astral-odyssey",
			Title:       "Astral Odyssey",
			Price:       decimal.RequireFromString("39.99"),
			Genre:       "Open World",
			Rating:      4.8,
			AccentA:     "#00D4FF",
			AccentB:     "#7C4DFF",
			Description: "A massive open-world adventure across floating islands and ancient ruins. Glide, craft, and uncover secrets hidden in the skies.",
		},
		{
			ID:          "pixel-quest",
			Title:       "Pixel Quest DX",
			Price:       decimal.RequireFromString("9.99"),
			Genre:       "Indie",
			Rating:      4.1,
			AccentA:     "#35D07F",
			AccentB:     "#00D4FF",
			Description: "A cozy retro platformer with crisp controls and clever secrets. Perfect for quick sessions and completionists alike.",
		},
		{
			ID:          "mecha-arena",
			Title:       "Mecha Arena",
			Price:       decimal.RequireFromString("27.99"),
			Genre:       "Shooter",
			Rating:      4.0,
			AccentA:     "#FF4D6D",
			AccentB:     "#00D4FF",
			Description: "Fast-paced mech shooter with customizable weapons and maps designed for smart flanks. Play solo modes or team skirmishes.",
		},
	}
}
