package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/catalogo-admin-api/internal/application/dto"
	"github.com/jhoicas/catalogo-admin-api/internal/application/ports"
	"github.com/jhoicas/catalogo-admin-api/internal/domain"
	"github.com/jhoicas/catalogo-admin-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-admin-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-admin-api/pkg/logger"
	"github.com/jhoicas/catalogo-admin-api/pkg/slug"
)

// CategoryUseCase listado y alta de categorías, con cache de lectura opcional.
type CategoryUseCase struct {
	repo  repository.CategoryRepository
	cache ports.CategoryCache
	log   *logger.Logger
	now   func() time.Time
}

// NewCategoryUseCase construye el caso de uso. cache puede ser nil.
func NewCategoryUseCase(repo repository.CategoryRepository, cache ports.CategoryCache, log *logger.Logger) *CategoryUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CategoryUseCase{repo: repo, cache: cache, log: log.Component("categories"), now: time.Now}
}

// ListActive categorías activas ordenadas por nombre. Los errores del cache sólo se registran.
func (uc *CategoryUseCase) ListActive(ctx context.Context) ([]dto.CategoryResponse, error) {
	if uc.cache != nil {
		cached, hit, err := uc.cache.GetActive(ctx)
		if err != nil {
			uc.log.Warn().Err(err).Msg("category cache read failed")
		} else if hit {
			return cached, nil
		}
	}

	list, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, ToCategoryResponse(c))
	}

	if uc.cache != nil {
		if err := uc.cache.SetActive(ctx, out); err != nil {
			uc.log.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return out, nil
}

// Create crea una categoría; el slug se deriva del nombre si no llega. Slug repetido → ErrDuplicate.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	categorySlug := in.Slug
	if categorySlug == "" {
		categorySlug = slug.Make(in.Name)
	}
	if categorySlug == "" {
		return nil, domain.NewValidationError("slug", `"slug" could not be derived from "name"`)
	}
	now := uc.now()
	category := &entity.Category{
		Name:        in.Name,
		Slug:        categorySlug,
		Description: in.Description,
		ParentID:    in.ParentID,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx); err != nil {
			uc.log.Warn().Err(err).Msg("category cache invalidation failed")
		}
	}
	out := ToCategoryResponse(category)
	return &out, nil
}

// ToCategoryResponse proyecta la entidad.
func ToCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ParentID:    c.ParentID,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
