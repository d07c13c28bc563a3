package menu

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mcdev12/grouporder/go/internal/db"
	"github.com/mcdev12/grouporder/go/internal/models"
	"github.com/mcdev12/grouporder/go/internal/sqlutil"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	ListMenuItems(ctx context.Context) ([]db.MenuItem, error)
	GetMenuItem(ctx context.Context, id uuid.UUID) (db.MenuItem, error)
	ListMenuItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]db.MenuItem, error)
	UpsertMenuItemByName(ctx context.Context, arg db.UpsertMenuItemByNameParams) (db.MenuItem, error)
}

// Repository implements menu data access operations
type Repository struct {
	queries Querier
	txdb    sqlutil.Beginner
}

// NewRepository creates a new menu repository. txdb is used for seeding.
func NewRepository(querier Querier, txdb sqlutil.Beginner) *Repository {
	return &Repository{
		queries: querier,
		txdb:    txdb,
	}
}

// ListMenuItems lists the catalog ordered by name
func (r *Repository) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := r.queries.ListMenuItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListMenuItems: %w", sqlutil.Classify(err))
	}
	return dbMenuItemsToModels(rows), nil
}

// GetMenuItem retrieves a menu item by ID
func (r *Repository) GetMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	row, err := r.queries.GetMenuItem(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("q.GetMenuItem: %w", sqlutil.Classify(err))
	}
	item := dbMenuItemToModel(row)
	return &item, nil
}

// ListMenuItemsByIDs retrieves the menu items that still exist among ids
func (r *Repository) ListMenuItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.MenuItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.queries.ListMenuItemsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("q.ListMenuItemsByIDs: %w", sqlutil.Classify(err))
	}
	return dbMenuItemsToModels(rows), nil
}

// UpsertMenuItems inserts or updates items by name in one transaction
func (r *Repository) UpsertMenuItems(ctx context.Context, items []SeedItem) ([]models.MenuItem, error) {
	return sqlutil.Run(ctx, r.txdb,
		func(tx pgx.Tx) Querier { return db.New(tx) },
		func(q Querier) ([]models.MenuItem, error) {
			out := make([]models.MenuItem, 0, len(items))
			for _, it := range items {
				row, err := q.UpsertMenuItemByName(ctx, db.UpsertMenuItemByNameParams{
					Name:        it.Name,
					Description: it.Description,
					Price:       it.Price,
					ImageUrl:    it.ImageURL,
				})
				if err != nil {
					return nil, fmt.Errorf("q.UpsertMenuItemByName(%s): %w", it.Name, sqlutil.Classify(err))
				}
				out = append(out, dbMenuItemToModel(row))
			}
			return out, nil
		},
	)
}

func dbMenuItemToModel(m db.MenuItem) models.MenuItem {
	return models.MenuItem{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		ImageURL:    m.ImageUrl,
		CreatedAt:   m.CreatedAt,
	}
}

func dbMenuItemsToModels(rows []db.MenuItem) []models.MenuItem {
	out := make([]models.MenuItem, 0, len(rows))
	for _, m := range rows {
		out = append(out, dbMenuItemToModel(m))
	}
	return out
}
