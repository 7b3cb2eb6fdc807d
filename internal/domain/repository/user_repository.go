package repository

import (
	"context"

	"github.com/jhoicas/catalogo-admin-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos Find* devuelven (nil, nil) si no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindSummaries lectura en lote para enriquecer productos (id -> resumen).
	FindSummaries(ctx context.Context, ids []string) (map[string]entity.UserSummary, error)
	// Upsert usado por el seed: crea o reemplaza por email.
	Upsert(ctx context.Context, user *entity.User) error
}
