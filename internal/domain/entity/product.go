package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de publicación de un producto.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Statuses enumeración de estados.
var Statuses = []string{StatusDraft, StatusPublished, StatusArchived}

// Umbrales fijos de las estadísticas de stock.
const (
	LowStockThreshold = 10 // quantity < 10
	OutOfStockLevel   = 0  // quantity == 0
)

// Dimensions medidas físicas (todas ≥ 0).
type Dimensions struct {
	Length *float64
	Width  *float64
	Height *float64
}

// SEO metadatos para la ficha pública.
type SEO struct {
	MetaTitle       string
	MetaDescription string
	MetaKeywords    string
}

// Product representa un ítem del catálogo. Slug y SKU son únicos globalmente.
type Product struct {
	ID               string
	Name             string
	Slug             string
	SKU              string // siempre en mayúsculas
	Description      string
	ShortDescription string
	Price            decimal.Decimal
	SalePrice        *decimal.Decimal // < Price cuando existe
	CostPrice        *decimal.Decimal
	Quantity         int
	CategoryID       string
	Brand            string
	Weight           *float64
	Dimensions       *Dimensions
	Images           []string
	Thumbnail        string
	Status           string
	IsFeatured       bool
	SEO              *SEO
	CreatedBy        string
	UpdatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Datos de solo lectura adjuntados después de leer (no se persisten).
	Category *CategorySummary
	Creator  *UserSummary
}

// ProfitMargin margen porcentual sobre el precio de venta; 0 si falta el costo o el precio es 0.
func (p *Product) ProfitMargin() decimal.Decimal {
	if p.CostPrice == nil || p.Price.IsZero() {
		return decimal.Zero
	}
	return p.Price.Sub(*p.CostPrice).Div(p.Price).Mul(decimal.NewFromInt(100))
}

// StatusStat agregado por estado.
type StatusStat struct {
	Status     string
	Count      int64
	TotalValue decimal.Decimal // Σ price * quantity
}

// ProductStats resumen del catálogo.
type ProductStats struct {
	ByStatus   []StatusStat
	LowStock   int64
	OutOfStock int64
}
