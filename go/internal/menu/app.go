package menu

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/grouporder/go/internal/apperrors"
	"github.com/mcdev12/grouporder/go/internal/models"
)

// MenuRepository defines what the app layer needs from the repository
type MenuRepository interface {
	ListMenuItems(ctx context.Context) ([]models.MenuItem, error)
	UpsertMenuItems(ctx context.Context, items []SeedItem) ([]models.MenuItem, error)
}

// App handles menu catalog reads and seeding
type App struct {
	repo MenuRepository
}

// NewApp creates a new menu App
func NewApp(repo MenuRepository) *App {
	return &App{
		repo: repo,
	}
}

// ListMenuItems returns the catalog ordered by name
func (a *App) ListMenuItems(ctx context.Context, _ ListMenuItemsRequest) (*ListMenuItemsResponse, error) {
	items, err := a.repo.ListMenuItems(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return &ListMenuItemsResponse{Items: items}, nil
}

// SeedCatalog loads a YAML catalog file and upserts its items by name.
func (a *App) SeedCatalog(ctx context.Context, path string) ([]models.MenuItem, error) {
	items, err := LoadCatalog(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), err)
	}

	seeded, err := a.repo.UpsertMenuItems(ctx, items)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	log.Info().Int("count", len(seeded)).Str("path", path).Msg("seeded menu catalog")
	return seeded, nil
}
