package usecase_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-admin-api/internal/application/dto"
	"github.com/jhoicas/catalogo-admin-api/internal/application/ports"
	"github.com/jhoicas/catalogo-admin-api/internal/domain"
	"github.com/jhoicas/catalogo-admin-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-admin-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memProducts struct {
	mu    sync.Mutex
	seq   int
	items map[string]*entity.Product
	// beforeUpdate se ejecuta una vez entre la lectura del caso de uso y la escritura.
	beforeUpdate func()
}

func newMemProducts() *memProducts { return &memProducts{items: map[string]*entity.Product{}} }

func clone(p *entity.Product) *entity.Product {
	c := *p
	c.Category, c.Creator = nil, nil
	return &c
}

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.items {
		if e.SKU == p.SKU || e.Slug == p.Slug {
			return fmt.Errorf("insert product: %w", domain.ErrDuplicate)
		}
	}
	m.seq++
	p.ID = fmt.Sprintf("%024x", m.seq)
	m.items[p.ID] = clone(p)
	return nil
}

func (m *memProducts) FindByID(_ context.Context, id string) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return clone(p), nil
}

func (m *memProducts) match(p *entity.Product, f repository.ProductFilter) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(p.Name+" "+p.Description), strings.ToLower(f.Search)) {
		return false
	}
	if f.CategoryID != "" && p.CategoryID != f.CategoryID {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.BelowQuantity != nil && p.Quantity >= *f.BelowQuantity {
		return false
	}
	return true
}

func (m *memProducts) filtered(f repository.ProductFilter) []*entity.Product {
	var out []*entity.Product
	for _, p := range m.items {
		if m.match(p, f) {
			out = append(out, clone(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		var less bool
		switch f.SortBy {
		case "price":
			less = out[i].Price.LessThan(out[j].Price)
		case "quantity":
			less = out[i].Quantity < out[j].Quantity
		case "name":
			less = out[i].Name < out[j].Name
		default:
			less = out[i].ID < out[j].ID
		}
		if f.Ascending {
			return less
		}
		return !less
	})
	return out
}

func (m *memProducts) Find(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.filtered(f)
	if f.Skip >= int64(len(all)) {
		return []*entity.Product{}, nil
	}
	all = all[f.Skip:]
	if f.Limit > 0 && int64(len(all)) > f.Limit {
		all = all[:f.Limit]
	}
	return all, nil
}

func (m *memProducts) Count(_ context.Context, f repository.ProductFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.filtered(f))), nil
}

func (m *memProducts) Update(_ context.Context, id string, patch repository.ProductPatch, guard *repository.PriceGuard) (*entity.Product, error) {
	if hook := m.beforeUpdate; hook != nil {
		m.beforeUpdate = nil
		hook()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok || (guard != nil && !guard.Matches(p)) {
		return nil, nil
	}
	patch.Apply(p)
	return clone(p), nil
}

func (m *memProducts) setPrice(id string, v decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id].Price = v
}

func (m *memProducts) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	delete(m.items, id)
	return true, nil
}

func (m *memProducts) DeleteMany(_ context.Context, ids []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := m.items[id]; ok {
			delete(m.items, id)
			n++
		}
	}
	return n, nil
}

func (m *memProducts) IncrementQuantity(_ context.Context, id string, delta int) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	if p.Quantity+delta < 0 {
		return nil, domain.ErrInsufficientStock
	}
	p.Quantity += delta
	return clone(p), nil
}

func (m *memProducts) Stats(_ context.Context) (*entity.ProductStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byStatus := map[string]*entity.StatusStat{}
	stats := &entity.ProductStats{}
	for _, p := range m.items {
		st, ok := byStatus[p.Status]
		if !ok {
			st = &entity.StatusStat{Status: p.Status, TotalValue: decimal.Zero}
			byStatus[p.Status] = st
		}
		st.Count++
		st.TotalValue = st.TotalValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
		if p.Quantity < entity.LowStockThreshold {
			stats.LowStock++
		}
		if p.Quantity == entity.OutOfStockLevel {
			stats.OutOfStock++
		}
	}
	for _, st := range byStatus {
		stats.ByStatus = append(stats.ByStatus, *st)
	}
	sort.Slice(stats.ByStatus, func(i, j int) bool { return stats.ByStatus[i].Status < stats.ByStatus[j].Status })
	return stats, nil
}

type memCategories struct {
	mu    sync.Mutex
	items []*entity.Category
}

func (m *memCategories) Create(_ context.Context, c *entity.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.items {
		if e.Slug == c.Slug {
			return domain.ErrDuplicate
		}
	}
	c.ID = fmt.Sprintf("%024x", 0xc000+len(m.items))
	cp := *c
	m.items = append(m.items, &cp)
	return nil
}

func (m *memCategories) FindByID(_ context.Context, id string) (*entity.Category, error) {
	for _, c := range m.items {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memCategories) ListActive(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range m.items {
		if c.IsActive {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memCategories) FindSummaries(_ context.Context, ids []string) (map[string]entity.CategorySummary, error) {
	out := map[string]entity.CategorySummary{}
	for _, c := range m.items {
		for _, id := range ids {
			if c.ID == id {
				out[id] = entity.CategorySummary{ID: c.ID, Name: c.Name, Slug: c.Slug}
			}
		}
	}
	return out, nil
}

type memUsers struct {
	items map[string]*entity.User
}

func (m *memUsers) Create(context.Context, *entity.User) error { return nil }
func (m *memUsers) FindByID(_ context.Context, id string) (*entity.User, error) {
	return m.items[id], nil
}
func (m *memUsers) FindByEmail(context.Context, string) (*entity.User, error) { return nil, nil }
func (m *memUsers) Upsert(context.Context, *entity.User) error { return nil }
func (m *memUsers) FindSummaries(_ context.Context, ids []string) (map[string]entity.UserSummary, error) {
	out := map[string]entity.UserSummary{}
	for _, id := range ids {
		if u, ok := m.items[id]; ok {
			out[id] = entity.UserSummary{ID: u.ID, FullName: u.FullName, Email: u.Email}
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Puertos de aplicación
// ──────────────────────────────────────────────────────────────────────────────

type memCache struct {
	data        []dto.CategoryResponse
	hits, sets  int
	invalidated int
	failReads   bool
}

func (c *memCache) GetActive(context.Context) ([]dto.CategoryResponse, bool, error) {
	if c.failReads {
		return nil, false, fmt.Errorf("redis down")
	}
	if c.data == nil {
		return nil, false, nil
	}
	c.hits++
	return c.data, true, nil
}

func (c *memCache) SetActive(_ context.Context, list []dto.CategoryResponse) error {
	c.sets++
	c.data = list
	return nil
}

func (c *memCache) Invalidate(context.Context) error {
	c.invalidated++
	c.data = nil
	return nil
}

type memStorage struct {
	files map[string][]byte
}

func (s *memStorage) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	s.files[key] = buf.Bytes()
	return nil
}

func (s *memStorage) Delete(_ context.Context, key string) error {
	delete(s.files, key)
	return nil
}

func (s *memStorage) URL(key string) string { return "/uploads/" + key }

type captureReport struct {
	got ports.StatsReport
}

func (r *captureReport) GenerateStatsReport(_ context.Context, rep ports.StatsReport) ([]byte, error) {
	r.got = rep
	return []byte("%PDF-1.4"), nil
}
