package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/catalogo-admin-api/internal/application/dto"
	"github.com/jhoicas/catalogo-admin-api/internal/application/ports"
	"github.com/jhoicas/catalogo-admin-api/internal/domain"
	"github.com/jhoicas/catalogo-admin-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-admin-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-admin-api/pkg/slug"
)

// reportLowStockLimit máximo de productos listados en el reporte PDF.
const reportLowStockLimit = 50

// ProductUseCase casos de uso del catálogo. Sin estado entre peticiones.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	users      repository.UserRepository
	reports    ports.StatsReportGenerator
	now        func() time.Time
}

// NewProductUseCase construye el caso de uso. reports puede ser nil si no se expone el PDF.
func NewProductUseCase(
	repo repository.ProductRepository,
	categories repository.CategoryRepository,
	users repository.UserRepository,
	reports ports.StatsReportGenerator,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories, users: users, reports: reports, now: time.Now}
}

// Create crea un producto con createdBy = updatedBy = actorID.
// Slug o SKU repetidos devuelven domain.ErrDuplicate desde el repositorio.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest, actorID string) (*dto.ProductResponse, error) {
	productSlug := in.Slug
	if productSlug == "" {
		productSlug = slug.Make(in.Name)
	}
	if productSlug == "" {
		return nil, domain.NewValidationError("slug", `"slug" could not be derived from "name"`)
	}
	status := in.Status
	if status == "" {
		status = entity.StatusDraft
	}
	now := uc.now()
	product := &entity.Product{
		Name:             in.Name,
		Slug:             productSlug,
		SKU:              in.SKU,
		Description:      in.Description,
		ShortDescription: in.ShortDescription,
		Price:            *in.Price,
		SalePrice:        in.SalePrice,
		CostPrice:        in.CostPrice,
		CategoryID:       in.CategoryID,
		Brand:            in.Brand,
		Weight:           in.Weight,
		Dimensions:       toDimensions(in.Dimensions),
		Images:           in.Images,
		Thumbnail:        in.Thumbnail,
		Status:           status,
		SEO:              toSEO(in.SEO),
		CreatedBy:        actorID,
		UpdatedBy:        actorID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if in.Quantity != nil {
		product.Quantity = *in.Quantity
	}
	if in.IsFeatured != nil {
		product.IsFeatured = *in.IsFeatured
	}
	if product.Images == nil {
		product.Images = []string{}
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	if err := uc.enrich(ctx, []*entity.Product{product}); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List aplica filtros, orden y paginación. Página y total se consultan en paralelo.
func (uc *ProductUseCase) List(ctx context.Context, q dto.ProductListQuery) (*dto.ProductListResponse, error) {
	filter, err := toFilter(q)
	if err != nil {
		return nil, err
	}

	var (
		products []*entity.Product
		total    int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = uc.repo.Find(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = uc.repo.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := uc.enrich(ctx, products); err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items:      items,
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}, nil
}

// GetByID producto con category y creator adjuntos, o nil si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if err := uc.enrich(ctx, []*entity.Product{product}); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// maxUpdateAttempts reintentos de Update cuando price/salePrice cambian entre la
// lectura y la escritura.
const maxUpdateAttempts = 3

// Update actualización parcial; nil si el id no existe. Sólo se escriben los campos
// enviados. salePrice se compara con el price resultante (el enviado o el
// almacenado); si la comparación usa un importe almacenado, la escritura exige que
// ese importe no haya cambiado y, si cambió, se vuelve a leer y validar.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest, actorID string) (*dto.ProductResponse, error) {
	patch := toPatch(in)
	patch.UpdatedBy = actorID

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		current, err := uc.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, nil
		}
		price, sale := current.Price, current.SalePrice
		if in.Price != nil {
			price = *in.Price
		}
		if in.SalePrice != nil {
			sale = in.SalePrice
		}
		if sale != nil && !sale.LessThan(price) {
			return nil, &domain.ValidationError{Fields: []domain.FieldError{dto.SalePriceError()}}
		}
		var guard *repository.PriceGuard
		if (in.Price == nil) != (in.SalePrice == nil) {
			guard = &repository.PriceGuard{Price: current.Price, SalePrice: current.SalePrice}
		}

		patch.UpdatedAt = uc.now()
		updated, err := uc.repo.Update(ctx, id, patch, guard)
		if err != nil {
			return nil, err
		}
		if updated != nil {
			if err := uc.enrich(ctx, []*entity.Product{updated}); err != nil {
				return nil, err
			}
			return ToProductResponse(updated), nil
		}
		if guard == nil {
			return nil, nil
		}
	}
	return nil, domain.ErrConflict
}

// Delete elimina un producto; false si no existía.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) (bool, error) {
	return uc.repo.Delete(ctx, id)
}

// BulkDelete elimina en una sola operación; devuelve cuántos se borraron.
func (uc *ProductUseCase) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return uc.repo.DeleteMany(ctx, ids)
}

// UpdateStock suma delta a quantity de forma atómica. Un decremento que deje
// quantity < 0 devuelve domain.ErrInsufficientStock; nil si el id no existe.
func (uc *ProductUseCase) UpdateStock(ctx context.Context, id string, delta int) (*dto.ProductResponse, error) {
	if delta < -dto.MaxStockDelta || delta > dto.MaxStockDelta {
		return nil, domain.NewValidationError("quantity", fmt.Sprintf(`"quantity" must be between -%d and %d`, dto.MaxStockDelta, dto.MaxStockDelta))
	}
	product, err := uc.repo.IncrementQuantity(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if err := uc.enrich(ctx, []*entity.Product{product}); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetStats agregados por estado y contadores de bajo stock / agotados.
func (uc *ProductUseCase) GetStats(ctx context.Context) (*dto.ProductStatsResponse, error) {
	stats, err := uc.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return ToStatsResponse(stats), nil
}

// StatsReport genera el PDF de inventario: estadísticas y productos con bajo stock.
func (uc *ProductUseCase) StatsReport(ctx context.Context) ([]byte, error) {
	if uc.reports == nil {
		return nil, fmt.Errorf("stats report: no generator configured")
	}
	stats, err := uc.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	below := entity.LowStockThreshold
	low, err := uc.repo.Find(ctx, repository.ProductFilter{
		BelowQuantity: &below,
		SortBy:        "quantity",
		Ascending:     true,
		Limit:         reportLowStockLimit,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(low))
	for _, p := range low {
		items = append(items, *ToProductResponse(p))
	}
	return uc.reports.GenerateStatsReport(ctx, ports.StatsReport{
		Title:       "Inventory report",
		GeneratedAt: uc.now(),
		Stats:       *stats,
		LowStock:    items,
	})
}

// enrich adjunta category y creator con dos lecturas en lote (después de leer los productos).
func (uc *ProductUseCase) enrich(ctx context.Context, products []*entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	categoryIDs := make([]string, 0, len(products))
	userIDs := make([]string, 0, len(products))
	seenCat, seenUser := map[string]bool{}, map[string]bool{}
	for _, p := range products {
		if p.CategoryID != "" && !seenCat[p.CategoryID] {
			seenCat[p.CategoryID] = true
			categoryIDs = append(categoryIDs, p.CategoryID)
		}
		if p.CreatedBy != "" && !seenUser[p.CreatedBy] {
			seenUser[p.CreatedBy] = true
			userIDs = append(userIDs, p.CreatedBy)
		}
	}

	var (
		cats  map[string]entity.CategorySummary
		users map[string]entity.UserSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	if len(categoryIDs) > 0 {
		g.Go(func() error {
			var err error
			cats, err = uc.categories.FindSummaries(gctx, categoryIDs)
			return err
		})
	}
	if len(userIDs) > 0 {
		g.Go(func() error {
			var err error
			users, err = uc.users.FindSummaries(gctx, userIDs)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, p := range products {
		if c, ok := cats[p.CategoryID]; ok {
			c := c
			p.Category = &c
		}
		if u, ok := users[p.CreatedBy]; ok {
			u := u
			p.Creator = &u
		}
	}
	return nil
}

func toFilter(q dto.ProductListQuery) (repository.ProductFilter, error) {
	if q.Page < 1 || q.Page > dto.MaxPage {
		return repository.ProductFilter{}, domain.NewValidationError("page", fmt.Sprintf(`"page" must be between 1 and %d`, dto.MaxPage))
	}
	if q.Limit < 1 || q.Limit > dto.MaxLimit {
		return repository.ProductFilter{}, domain.NewValidationError("limit", fmt.Sprintf(`"limit" must be between 1 and %d`, dto.MaxLimit))
	}
	filter := repository.ProductFilter{
		Search:     q.Search,
		CategoryID: q.CategoryID,
		Status:     q.Status,
		SortBy:     q.SortBy,
		Ascending:  q.SortOrder == "asc",
		Skip:       int64(q.Page-1) * int64(q.Limit),
		Limit:      int64(q.Limit),
	}
	if q.MinPrice != "" {
		d, err := decimal.NewFromString(q.MinPrice)
		if err != nil {
			return filter, domain.NewValidationError("minPrice", `"minPrice" must be a number`)
		}
		filter.MinPrice = &d
	}
	if q.MaxPrice != "" {
		d, err := decimal.NewFromString(q.MaxPrice)
		if err != nil {
			return filter, domain.NewValidationError("maxPrice", `"maxPrice" must be a number`)
		}
		filter.MaxPrice = &d
	}
	return filter, nil
}

func toPatch(in dto.UpdateProductRequest) repository.ProductPatch {
	return repository.ProductPatch{
		Name:             in.Name,
		Slug:             in.Slug,
		SKU:              in.SKU,
		Description:      in.Description,
		ShortDescription: in.ShortDescription,
		Price:            in.Price,
		SalePrice:        in.SalePrice,
		CostPrice:        in.CostPrice,
		Quantity:         in.Quantity,
		CategoryID:       in.CategoryID,
		Brand:            in.Brand,
		Weight:           in.Weight,
		Dimensions:       toDimensions(in.Dimensions),
		Images:           in.Images,
		Thumbnail:        in.Thumbnail,
		Status:           in.Status,
		IsFeatured:       in.IsFeatured,
		SEO:              toSEO(in.SEO),
	}
}

func toDimensions(d *dto.DimensionsDTO) *entity.Dimensions {
	if d == nil {
		return nil
	}
	return &entity.Dimensions{Length: d.Length, Width: d.Width, Height: d.Height}
}

func toSEO(s *dto.SEODTO) *entity.SEO {
	if s == nil {
		return nil
	}
	return &entity.SEO{MetaTitle: s.MetaTitle, MetaDescription: s.MetaDescription, MetaKeywords: s.MetaKeywords}
}

// ToProductResponse proyecta la entidad a la forma JSON pública.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	out := &dto.ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		SKU:              p.SKU,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Price:            p.Price,
		SalePrice:        p.SalePrice,
		CostPrice:        p.CostPrice,
		ProfitMargin:     p.ProfitMargin().Round(2),
		Quantity:         p.Quantity,
		CategoryID:       p.CategoryID,
		Brand:            p.Brand,
		Weight:           p.Weight,
		Images:           p.Images,
		Thumbnail:        p.Thumbnail,
		Status:           p.Status,
		IsFeatured:       p.IsFeatured,
		CreatedBy:        p.CreatedBy,
		UpdatedBy:        p.UpdatedBy,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if out.Images == nil {
		out.Images = []string{}
	}
	if p.Dimensions != nil {
		out.Dimensions = &dto.DimensionsDTO{Length: p.Dimensions.Length, Width: p.Dimensions.Width, Height: p.Dimensions.Height}
	}
	if p.SEO != nil {
		out.SEO = &dto.SEODTO{MetaTitle: p.SEO.MetaTitle, MetaDescription: p.SEO.MetaDescription, MetaKeywords: p.SEO.MetaKeywords}
	}
	if p.Category != nil {
		out.Category = &dto.CategoryRef{ID: p.Category.ID, Name: p.Category.Name, Slug: p.Category.Slug}
	}
	if p.Creator != nil {
		out.Creator = &dto.UserRef{ID: p.Creator.ID, FullName: p.Creator.FullName, Email: p.Creator.Email}
	}
	return out
}

// ToStatsResponse proyecta las estadísticas; byStatus nunca es null.
func ToStatsResponse(s *entity.ProductStats) *dto.ProductStatsResponse {
	out := &dto.ProductStatsResponse{ByStatus: []dto.StatusStatResponse{}}
	if s == nil {
		return out
	}
	for _, st := range s.ByStatus {
		out.ByStatus = append(out.ByStatus, dto.StatusStatResponse{Status: st.Status, Count: st.Count, TotalValue: st.TotalValue})
	}
	out.LowStock = s.LowStock
	out.OutOfStock = s.OutOfStock
	return out
}
