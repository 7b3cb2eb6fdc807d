package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-admin-api/internal/domain"
)

// DimensionsDTO medidas físicas de un producto.
type DimensionsDTO struct {
	Length *float64 `json:"length,omitempty" validate:"omitempty,gte=0"`
	Width  *float64 `json:"width,omitempty" validate:"omitempty,gte=0"`
	Height *float64 `json:"height,omitempty" validate:"omitempty,gte=0"`
}

// SEODTO metadatos SEO.
type SEODTO struct {
	MetaTitle       string `json:"metaTitle,omitempty" validate:"max=255"`
	MetaDescription string `json:"metaDescription,omitempty" validate:"max=500"`
	MetaKeywords    string `json:"metaKeywords,omitempty"`
}

// CreateProductRequest entrada para crear un producto. Campos desconocidos se descartan al decodificar.
type CreateProductRequest struct {
	Name             string           `json:"name" validate:"required,min=3,max=255"`
	Slug             string           `json:"slug" validate:"omitempty,slug"`
	SKU              string           `json:"sku" validate:"required"`
	Description      string           `json:"description"`
	ShortDescription string           `json:"shortDescription" validate:"max=500"`
	Price            *decimal.Decimal `json:"price" validate:"required,gte=0"`
	SalePrice        *decimal.Decimal `json:"salePrice" validate:"omitempty,gte=0"`
	CostPrice        *decimal.Decimal `json:"costPrice" validate:"omitempty,gte=0"`
	Quantity         *int             `json:"quantity" validate:"omitempty,gte=0"`
	CategoryID       string           `json:"categoryId" validate:"omitempty,objectid"`
	Brand            string           `json:"brand"`
	Weight           *float64         `json:"weight" validate:"omitempty,gte=0"`
	Dimensions       *DimensionsDTO   `json:"dimensions"`
	Images           []string         `json:"images" validate:"omitempty,dive,url"`
	Thumbnail        string           `json:"thumbnail" validate:"omitempty,url"`
	Status           string           `json:"status" validate:"omitempty,oneof=draft published archived"`
	IsFeatured       *bool            `json:"isFeatured"`
	SEO              *SEODTO          `json:"seo"`
}

// Normalize SKU en mayúsculas, slug en minúsculas, nombre recortado.
func (r *CreateProductRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.SKU = strings.ToUpper(strings.TrimSpace(r.SKU))
	r.Slug = strings.ToLower(strings.TrimSpace(r.Slug))
}

// ValidateFields reglas entre campos: salePrice < price.
func (r *CreateProductRequest) ValidateFields() []domain.FieldError {
	return salePriceRule(r.SalePrice, r.Price)
}

// UpdateProductRequest actualización parcial. nil = campo ausente.
type UpdateProductRequest struct {
	Name             *string          `json:"name" validate:"omitempty,min=3,max=255"`
	Slug             *string          `json:"slug" validate:"omitempty,slug"`
	SKU              *string          `json:"sku" validate:"omitempty,min=1"`
	Description      *string          `json:"description"`
	ShortDescription *string          `json:"shortDescription" validate:"omitempty,max=500"`
	Price            *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	SalePrice        *decimal.Decimal `json:"salePrice" validate:"omitempty,gte=0"`
	CostPrice        *decimal.Decimal `json:"costPrice" validate:"omitempty,gte=0"`
	Quantity         *int             `json:"quantity" validate:"omitempty,gte=0"`
	CategoryID       *string          `json:"categoryId" validate:"omitempty,objectid"`
	Brand            *string          `json:"brand"`
	Weight           *float64         `json:"weight" validate:"omitempty,gte=0"`
	Dimensions       *DimensionsDTO   `json:"dimensions"`
	Images           []string         `json:"images" validate:"omitempty,dive,url"`
	Thumbnail        *string          `json:"thumbnail" validate:"omitempty,url"`
	Status           *string          `json:"status" validate:"omitempty,oneof=draft published archived"`
	IsFeatured       *bool            `json:"isFeatured"`
	SEO              *SEODTO          `json:"seo"`
}

// Normalize aplica las mismas normalizaciones que en la creación a los campos presentes.
func (r *UpdateProductRequest) Normalize() {
	if r.Name != nil {
		v := strings.TrimSpace(*r.Name)
		r.Name = &v
	}
	if r.SKU != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.SKU))
		r.SKU = &v
	}
	if r.Slug != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Slug))
		r.Slug = &v
	}
}

// IsEmpty true si no trae ningún campo.
func (r *UpdateProductRequest) IsEmpty() bool {
	return r.Name == nil && r.Slug == nil && r.SKU == nil && r.Description == nil &&
		r.ShortDescription == nil && r.Price == nil && r.SalePrice == nil && r.CostPrice == nil &&
		r.Quantity == nil && r.CategoryID == nil && r.Brand == nil && r.Weight == nil &&
		r.Dimensions == nil && r.Images == nil && r.Thumbnail == nil && r.Status == nil &&
		r.IsFeatured == nil && r.SEO == nil
}

// ValidateFields exige al menos un campo y salePrice < price cuando ambos llegan.
// Si price no llega, el caso de uso compara contra el precio almacenado.
func (r *UpdateProductRequest) ValidateFields() []domain.FieldError {
	if r.IsEmpty() {
		return []domain.FieldError{{Field: "value", Message: `"value" must have at least 1 key`}}
	}
	return salePriceRule(r.SalePrice, r.Price)
}

func salePriceRule(sale, price *decimal.Decimal) []domain.FieldError {
	if sale == nil || price == nil {
		return nil
	}
	if !sale.LessThan(*price) {
		return []domain.FieldError{SalePriceError()}
	}
	return nil
}

// SalePriceError error de campo para salePrice >= price.
func SalePriceError() domain.FieldError {
	return domain.FieldError{Field: "salePrice", Message: `"salePrice" must be less than "price"`}
}

// ProductListQuery parámetros de consulta de GET /products.
type ProductListQuery struct {
	Page       int    `query:"page" validate:"omitempty,min=1,max=100000"`
	Limit      int    `query:"limit" validate:"omitempty,min=1"`
	Search     string `query:"search"`
	CategoryID string `query:"categoryId" validate:"omitempty,objectid"`
	Status     string `query:"status" validate:"omitempty,oneof=draft published archived"`
	MinPrice   string `query:"minPrice" validate:"omitempty,number"`
	MaxPrice   string `query:"maxPrice" validate:"omitempty,number"`
	SortBy     string `query:"sortBy" validate:"omitempty,oneof=createdAt updatedAt name price quantity sku status"`
	SortOrder  string `query:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

// Valores por defecto del listado.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	MaxPage      = 100000
)

// Normalize aplica defaults de paginación y orden; limit se recorta a MaxLimit.
func (q *ProductListQuery) Normalize() {
	q.Search = strings.TrimSpace(q.Search)
	if q.Page == 0 {
		q.Page = DefaultPage
	}
	if q.Limit == 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.SortBy == "" {
		q.SortBy = "createdAt"
	}
	if q.SortOrder == "" {
		q.SortOrder = "desc"
	}
}

// MaxStockDelta magnitud máxima de un ajuste de stock.
const MaxStockDelta = 1000000000

// StockUpdateRequest incremento (o decremento) de existencias.
type StockUpdateRequest struct {
	Quantity *int `json:"quantity" validate:"required,min=-1000000000,max=1000000000"`
}

// BulkDeleteRequest ids a eliminar; una lista vacía es válida y no borra nada.
type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required"`
}

// CategoryRef categoría embebida en un producto.
type CategoryRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// UserRef creador embebido en un producto.
type UserRef struct {
	ID       string `json:"_id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// ProductResponse salida de un producto con category y creator adjuntos.
type ProductResponse struct {
	ID               string           `json:"_id"`
	Name             string           `json:"name"`
	Slug             string           `json:"slug"`
	SKU              string           `json:"sku"`
	Description      string           `json:"description,omitempty"`
	ShortDescription string           `json:"shortDescription,omitempty"`
	Price            decimal.Decimal  `json:"price"`
	SalePrice        *decimal.Decimal `json:"salePrice,omitempty"`
	CostPrice        *decimal.Decimal `json:"costPrice,omitempty"`
	ProfitMargin     decimal.Decimal  `json:"profitMargin"`
	Quantity         int              `json:"quantity"`
	CategoryID       string           `json:"categoryId,omitempty"`
	Category         *CategoryRef     `json:"category,omitempty"`
	Brand            string           `json:"brand,omitempty"`
	Weight           *float64         `json:"weight,omitempty"`
	Dimensions       *DimensionsDTO   `json:"dimensions,omitempty"`
	Images           []string         `json:"images"`
	Thumbnail        string           `json:"thumbnail,omitempty"`
	Status           string           `json:"status"`
	IsFeatured       bool             `json:"isFeatured"`
	SEO              *SEODTO          `json:"seo,omitempty"`
	CreatedBy        string           `json:"createdBy"`
	Creator          *UserRef         `json:"creator,omitempty"`
	UpdatedBy        string           `json:"updatedBy,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// ProductListResponse página de productos.
type ProductListResponse struct {
	Items      []ProductResponse
	Pagination Pagination
}

// StatusStatResponse agregado por estado.
type StatusStatResponse struct {
	Status     string          `json:"status"`
	Count      int64           `json:"count"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

// ProductStatsResponse salida de GET /products/stats.
type ProductStatsResponse struct {
	ByStatus   []StatusStatResponse `json:"byStatus"`
	LowStock   int64                `json:"lowStock"`
	OutOfStock int64                `json:"outOfStock"`
}
