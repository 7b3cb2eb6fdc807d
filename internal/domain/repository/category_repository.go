package repository

import (
	"context"

	"github.com/jhoicas/catalogo-admin-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindByID(ctx context.Context, id string) (*entity.Category, error)
	// ListActive categorías activas ordenadas por nombre.
	ListActive(ctx context.Context) ([]*entity.Category, error)
	FindSummaries(ctx context.Context, ids []string) (map[string]entity.CategorySummary, error)
}
