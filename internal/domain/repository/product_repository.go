package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-admin-api/internal/domain/entity"
)

// ProductFilter criterios de listado ya normalizados por el caso de uso.
type ProductFilter struct {
	Search        string
	CategoryID    string
	Status        string
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
	BelowQuantity *int // quantity < valor (reporte de bajo stock)
	SortBy        string
	Ascending     bool
	Skip          int64
	Limit         int64
}

// ProductPatch cambios parciales; nil deja el campo como está.
type ProductPatch struct {
	Name             *string
	Slug             *string
	SKU              *string
	Description      *string
	ShortDescription *string
	Price            *decimal.Decimal
	SalePrice        *decimal.Decimal
	CostPrice        *decimal.Decimal
	Quantity         *int
	CategoryID       *string
	Brand            *string
	Weight           *float64
	Dimensions       *entity.Dimensions
	Images           []string
	Thumbnail        *string
	Status           *string
	IsFeatured       *bool
	SEO              *entity.SEO
	UpdatedBy        string
	UpdatedAt        time.Time
}

// Apply copia sobre p los campos presentes.
func (pp ProductPatch) Apply(p *entity.Product) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Slug != nil {
		p.Slug = *pp.Slug
	}
	if pp.SKU != nil {
		p.SKU = *pp.SKU
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.ShortDescription != nil {
		p.ShortDescription = *pp.ShortDescription
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.SalePrice != nil {
		p.SalePrice = pp.SalePrice
	}
	if pp.CostPrice != nil {
		p.CostPrice = pp.CostPrice
	}
	if pp.Quantity != nil {
		p.Quantity = *pp.Quantity
	}
	if pp.CategoryID != nil {
		p.CategoryID = *pp.CategoryID
	}
	if pp.Brand != nil {
		p.Brand = *pp.Brand
	}
	if pp.Weight != nil {
		p.Weight = pp.Weight
	}
	if pp.Dimensions != nil {
		p.Dimensions = pp.Dimensions
	}
	if pp.Images != nil {
		p.Images = pp.Images
	}
	if pp.Thumbnail != nil {
		p.Thumbnail = *pp.Thumbnail
	}
	if pp.Status != nil {
		p.Status = *pp.Status
	}
	if pp.IsFeatured != nil {
		p.IsFeatured = *pp.IsFeatured
	}
	if pp.SEO != nil {
		p.SEO = pp.SEO
	}
	p.UpdatedBy = pp.UpdatedBy
	p.UpdatedAt = pp.UpdatedAt
}

// PriceGuard condición del update: price y salePrice deben seguir valiendo esto.
type PriceGuard struct {
	Price     decimal.Decimal
	SalePrice *decimal.Decimal
}

// Matches indica si p conserva los importes del guard.
func (g PriceGuard) Matches(p *entity.Product) bool {
	if !p.Price.Equal(g.Price) {
		return false
	}
	if g.SalePrice == nil || p.SalePrice == nil {
		return g.SalePrice == nil && p.SalePrice == nil
	}
	return p.SalePrice.Equal(*g.SalePrice)
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los ids malformados se tratan como inexistentes.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id string) (*entity.Product, error)
	Find(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Count(ctx context.Context, filter ProductFilter) (int64, error)
	// Update aplica sólo los campos del patch en una operación atómica y devuelve
	// el documento resultante. Con guard, sólo aplica si los importes no cambiaron.
	// (nil, nil) si ningún documento coincide.
	Update(ctx context.Context, id string, patch ProductPatch, guard *PriceGuard) (*entity.Product, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteMany(ctx context.Context, ids []string) (int64, error)
	// IncrementQuantity suma delta en una sola operación atómica. Con delta negativo
	// sólo aplica si la cantidad resultante queda ≥ 0; si no, devuelve ErrInsufficientStock.
	IncrementQuantity(ctx context.Context, id string, delta int) (*entity.Product, error)
	Stats(ctx context.Context) (*entity.ProductStats, error)
}
