package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-admin-api/internal/application/auth"
	"github.com/jhoicas/catalogo-admin-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-admin-api/internal/domain"
	"github.com/jhoicas/catalogo-admin-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-admin-api/internal/domain/repository"
	apphttp "github.com/jhoicas/catalogo-admin-api/internal/interfaces/http"
	"github.com/jhoicas/catalogo-admin-api/pkg/jwt"
	"github.com/jhoicas/catalogo-admin-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memUsers struct {
	mu    sync.Mutex
	items map[string]*entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.items {
		if e.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	u.ID = fmt.Sprintf("%024x", 0xaa00+len(m.items))
	cp := *u
	m.items[u.ID] = &cp
	return nil
}

func (m *memUsers) FindByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[id], nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.items {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) FindSummaries(_ context.Context, ids []string) (map[string]entity.UserSummary, error) {
	out := map[string]entity.UserSummary{}
	for _, id := range ids {
		if u, _ := m.FindByID(context.Background(), id); u != nil {
			out[id] = entity.UserSummary{ID: u.ID, FullName: u.FullName, Email: u.Email}
		}
	}
	return out, nil
}

func (m *memUsers) Upsert(ctx context.Context, u *entity.User) error { return m.Create(ctx, u) }

type memProducts struct {
	mu    sync.Mutex
	seq   int
	items map[string]*entity.Product
}

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.items {
		if e.SKU == p.SKU || e.Slug == p.Slug {
			return domain.ErrDuplicate
		}
	}
	m.seq++
	p.ID = fmt.Sprintf("%024x", m.seq)
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func (m *memProducts) FindByID(_ context.Context, id string) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProducts) all(f repository.ProductFilter) []*entity.Product {
	var out []*entity.Product
	for _, p := range m.items {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.BelowQuantity != nil && p.Quantity >= *f.BelowQuantity {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memProducts) Find(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.all(f)
	if f.Skip >= int64(len(out)) {
		return []*entity.Product{}, nil
	}
	out = out[f.Skip:]
	if f.Limit > 0 && int64(len(out)) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memProducts) Count(_ context.Context, f repository.ProductFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.all(f))), nil
}

func (m *memProducts) Update(_ context.Context, id string, patch repository.ProductPatch, guard *repository.PriceGuard) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok || (guard != nil && !guard.Matches(p)) {
		return nil, nil
	}
	patch.Apply(p)
	cp := *p
	return &cp, nil
}

func (m *memProducts) Delete(_ context.Context, id string) (bool, error) {
	n, err := m.DeleteMany(context.Background(), []string{id})
	return n == 1, err
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
	cp := *p
	return &cp, nil
}

func (m *memProducts) Stats(_ context.Context) (*entity.ProductStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &entity.ProductStats{ByStatus: []entity.StatusStat{}}
	for _, p := range m.items {
		if p.Quantity < entity.LowStockThreshold {
			stats.LowStock++
		}
		if p.Quantity == entity.OutOfStockLevel {
			stats.OutOfStock++
		}
	}
	return stats, nil
}

type memCategories struct {
	mu    sync.Mutex
	items []*entity.Category
}

func (m *memCategories) Create(_ context.Context, c *entity.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = fmt.Sprintf("%024x", 0xc000+len(m.items))
	cp := *c
	m.items = append(m.items, &cp)
	return nil
}

func (m *memCategories) FindByID(context.Context, string) (*entity.Category, error) { return nil, nil }

func (m *memCategories) ListActive(context.Context) ([]*entity.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Category
	for _, c := range m.items {
		if c.IsActive {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memCategories) FindSummaries(context.Context, []string) (map[string]entity.CategorySummary, error) {
	return map[string]entity.CategorySummary{}, nil
}

type memStorage struct{ files map[string]int }

func (s *memStorage) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	n, err := io.Copy(io.Discard, r)
	s.files[key] = int(n)
	return err
}
func (s *memStorage) Delete(_ context.Context, key string) error { delete(s.files, key); return nil }
func (s *memStorage) URL(key string) string                      { return "/uploads/" + key }

// ──────────────────────────────────────────────────────────────────────────────
// Aplicación de prueba
// ──────────────────────────────────────────────────────────────────────────────

type testAPI struct {
	app      *fiber.App
	users    *memUsers
	products *memProducts
}

func newTestAPI(t *testing.T, loginPerMinute int) *testAPI {
	t.Helper()
	users := &memUsers{items: map[string]*entity.User{}}
	products := &memProducts{items: map[string]*entity.Product{}}
	categories := &memCategories{}

	issuer := jwt.Issuer{AccessSecret: testJWTSecret, RefreshSecret: testRefreshSecret, AccessTTL: time.Hour, RefreshTTL: time.Hour, Name: testIssuer}
	log := logger.Nop()

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(false, log)})
	metrics := apphttp.NewMetrics("catalog_test")
	app.Use(apphttp.RequestIDMiddleware(), metrics.Middleware(), apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       auth.NewAuthUseCase(users, issuer),
		ProductUC:    usecase.NewProductUseCase(products, categories, users, nil),
		CategoryUC:   usecase.NewCategoryUseCase(categories, nil, log),
		UploadUC:     usecase.NewUploadUseCase(&memStorage{files: map[string]int{}}),
		JWTSecret:    testJWTSecret,
		APIPrefix:    "/api/v1",
		LoginLimiter: apphttp.LoginRateLimiter(loginPerMinute),
		Metrics:      metrics,
	})
	return &testAPI{app: app, users: users, products: products}
}

type apiResponse struct {
	status int
	header http.Header
	body   map[string]interface{}
}

func (a *testAPI) do(t *testing.T, method, path, token string, payload interface{}) apiResponse {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return a.send(t, req)
}

func (a *testAPI) send(t *testing.T, req *http.Request) apiResponse {
	t.Helper()
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := apiResponse{status: resp.StatusCode, header: resp.Header}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out.body), string(raw))
	}
	return out
}

// registerAndLogin registra un usuario y devuelve su access token.
func (a *testAPI) registerAndLogin(t *testing.T, email string) string {
	t.Helper()
	r := a.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": email, "password": "secret123", "fullName": "Ana Admin",
	})
	require.Equal(t, http.StatusCreated, r.status, r.body)
	r = a.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email, "password": "secret123"})
	require.Equal(t, http.StatusOK, r.status, r.body)
	return r.body["data"].(map[string]interface{})["accessToken"].(string)
}

func (a *testAPI) createProduct(t *testing.T, token, sku string, quantity int) string {
	t.Helper()
	r := a.do(t, http.MethodPost, "/api/v1/products", token, map[string]interface{}{
		"name": "Producto " + sku, "sku": sku, "price": 100, "quantity": quantity,
	})
	require.Equal(t, http.StatusCreated, r.status, r.body)
	return r.body["data"].(map[string]interface{})["_id"].(string)
}

// ──────────────────────────────────────────────────────────────────────────────
// Rutas generales
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_Health(t *testing.T) {
	r := newTestAPI(t, 0).do(t, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, r.status)
	assert.Equal(t, "OK", r.body["status"])
	assert.NotEmpty(t, r.header.Get("X-Request-ID"))
}

func TestRouter_RutaInexistente404(t *testing.T) {
	r := newTestAPI(t, 0).do(t, http.MethodGet, "/no/existe", "", nil)
	assert.Equal(t, http.StatusNotFound, r.status)
	assert.Equal(t, false, r.body["success"])
	assert.Equal(t, "Route not found", r.body["message"])
}

func TestRouter_Metrics(t *testing.T) {
	api := newTestAPI(t, 0)
	api.do(t, http.MethodGet, "/api/v1/health", "", nil)

	resp, err := api.app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "catalog_test_http_requests_total")
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_RegistroDevuelveUsuarioYTokens(t *testing.T) {
	r := newTestAPI(t, 0).do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": "  Ana@Example.COM ", "password": "secret123", "fullName": "Ana",
	})
	require.Equal(t, http.StatusCreated, r.status)
	assert.Equal(t, "User registered successfully", r.body["message"])
	data := r.body["data"].(map[string]interface{})
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "ana@example.com", user["email"])
	assert.Equal(t, "user", user["role"])
	assert.NotContains(t, user, "password")
	assert.NotEmpty(t, data["tokens"].(map[string]interface{})["accessToken"])
}

func TestAuth_RegistroDuplicado400(t *testing.T) {
	api := newTestAPI(t, 0)
	api.registerAndLogin(t, "ana@example.com")
	r := api.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": "ana@example.com", "password": "secret123", "fullName": "Ana",
	})
	assert.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, "Email already exists", r.body["message"])
}

func TestAuth_RegistroInvalidoAcumulaErrores(t *testing.T) {
	r := newTestAPI(t, 0).do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": "no-es-email", "password": "123",
	})
	assert.Equal(t, http.StatusBadRequest, r.status)
	assert.Len(t, r.body["errors"], 3)
}

func TestAuth_RegistroPasswordDeMasDe72Bytes400(t *testing.T) {
	api := newTestAPI(t, 0)
	for _, pw := range []string{strings.Repeat("a", 80), strings.Repeat("ñ", 40)} {
		r := api.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
			"email": "largo@example.com", "password": pw, "fullName": "Ana",
		})
		assert.Equal(t, http.StatusBadRequest, r.status)
		assert.Equal(t, "VALIDATION_ERROR", r.body["code"])
		assert.Equal(t, "Password must be at most 72 bytes long", r.body["message"])
	}
	assert.Empty(t, api.users.items)
}

func TestAuth_LoginCredencialesInvalidas401(t *testing.T) {
	api := newTestAPI(t, 0)
	api.registerAndLogin(t, "ana@example.com")

	wrong := api.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "ana@example.com", "password": "otra-clave"})
	unknown := api.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "nadie@example.com", "password": "otra-clave"})

	assert.Equal(t, http.StatusUnauthorized, wrong.status)
	assert.Equal(t, wrong.body["message"], unknown.body["message"], "no se distingue email inexistente de password incorrecto")
}

func TestAuth_MeConYSinToken(t *testing.T) {
	api := newTestAPI(t, 0)
	token := api.registerAndLogin(t, "ana@example.com")

	r := api.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, r.status)
	assert.Equal(t, "ana@example.com", r.body["data"].(map[string]interface{})["email"])

	r = api.do(t, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, r.status)
	assert.Equal(t, "Access token is required", r.body["message"])
}

func TestAuth_RefreshSinToken401(t *testing.T) {
	r := newTestAPI(t, 0).do(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{})
	assert.Equal(t, http.StatusUnauthorized, r.status)
	assert.Equal(t, "Invalid refresh token", r.body["message"])
}

func TestAuth_LoginLimitadoPorIP(t *testing.T) {
	api := newTestAPI(t, 2)
	creds := map[string]string{"email": "nadie@example.com", "password": "secret123"}
	for i := 0; i < 2; i++ {
		r := api.do(t, http.MethodPost, "/api/v1/auth/login", "", creds)
		require.Equal(t, http.StatusUnauthorized, r.status)
	}
	r := api.do(t, http.MethodPost, "/api/v1/auth/login", "", creds)
	assert.Equal(t, http.StatusTooManyRequests, r.status)
	assert.Equal(t, "Too many login attempts, please try again later", r.body["message"])
	assert.NotEmpty(t, r.header.Get("Retry-After"))

	other := api.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": "libre@example.com", "password": "secret123", "fullName": "Libre",
	})
	assert.Equal(t, http.StatusCreated, other.status, "el límite sólo aplica a /login")
}

func TestAuth_LoginSinLimite(t *testing.T) {
	assert.Nil(t, apphttp.LoginRateLimiter(0))
	api := newTestAPI(t, 0)
	creds := map[string]string{"email": "nadie@example.com", "password": "secret123"}
	for i := 0; i < 5; i++ {
		r := api.do(t, http.MethodPost, "/api/v1/auth/login", "", creds)
		require.Equal(t, http.StatusUnauthorized, r.status)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Products
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_RequierenToken(t *testing.T) {
	r := newTestAPI(t, 0).do(t, http.MethodGet, "/api/v1/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, r.status)
}

func TestProducts_CrearYObtener(t *testing.T) {
	api := newTestAPI(t, 0)
	token := api.registerAndLogin(t, "ana@example.com")
	id := api.createProduct(t, token, "cam-1", 5)

	r := api.do(t, http.MethodGet, "/api/v1/products/"+id, token, nil)
	require.Equal(t, http.StatusOK, r.status)
	data := r.body["data"].(map[string]interface{})
	assert.Equal(t, "CAM-1", data["sku"])
	assert.Equal(t, "draft", data["status"])
	assert.Equal(t, "producto-cam-1", data["slug"])
	assert.Equal(t, "Ana Admin", data["creator"].(map[string]interface{})["fullName"])
}

func TestProducts_CrearInvalido400(t *testing.T) {
	api := newTestAPI(t, 0)
	token := api.registerAndLogin(t, "ana@example.com")
	r := api.do(t, http.MethodPost, "/api/v1/products", token, map[string]interface{}{
		"name": "ab", "sku": "X", "price": 10, "salePrice": 20,
	})
	assert.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, "VALIDATION_ERROR", r.body["code"])
}

func TestProducts_ListaPaginada(t *testing.T) {
	api := newTestAPI(t, 0)
	token := api.registerAndLogin(t, "ana@example.com")
	for i := 0; i < 3; i++ {
		api.createProduct(t, token, fmt.Sprintf("sku-%d", i), i)
	}

	r := api.do(t, http.MethodGet, "/api/v1/products?page=2&limit=2", token, nil)
	require.Equal(t, http.StatusOK, r.status)
	assert.Len(t, r.body["data"], 1)
	pg := r.body["pagination"].(map[string]interface{})
	assert.EqualValues(t, 2, pg["page"])
	assert.EqualValues(t, 3, pg["total"])
	assert.EqualValues(t, 2, pg["totalPages"])
}

func TestProducts_StatsNoSeConfundeConID(t *testing.T) {
	api := newTestAPI(t, 0)
	token := api.registerAndLogin(t, "ana@example.com")
	api.createProduct(t, token, "a", 0)

	r := api.do(t, http.MethodGet, "/api/v1/products/stats", token, nil)
	require.Equal(t, http.StatusOK, r.status)
	data := r.body["data"].(map[string]interface{})
	assert.EqualValues(t, 1, data["outOfStock"])
}

func TestProducts_NoEncontrado404(t *testing.T) {
	api := newTestAPI(t, 0)
	token := api.registerAndLogin(t, "ana@example.com")
	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		r := api.do(t, method, "/api/v1/products/65f000000000000000000999", token, nil)
		assert.Equal(t, http.StatusNotFound, r.status, method)
		assert.Equal(t, "Product not found", r.body["message"])
	}
}

func TestProducts_ActualizarSinCampos400(t *testing.T) {
	api := newTestAPI(t, 0)
	token := api.registerAndLogin(t, "ana@example.com")
	id := api.createProduct(t, token, "a", 1)

	r := api.do(t, http.MethodPut, "/api/v1/products/"+id, token, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, r.status)

	r = api.do(t, http.MethodPut, "/api/v1/products/"+id, token, map[string]interface{}{"status": "published"})
	require.Equal(t, http.StatusOK, r.status)
	assert.Equal(t, "published", r.body["data"].(map[string]interface{})["status"])
}

func TestProducts_StockInsuficiente400(t *testing.T) {
	api := newTestAPI(t, 0)
	token := api.registerAndLogin(t, "ana@example.com")
	id := api.createProduct(t, token, "a", 3)

	r := api.do(t, http.MethodPatch, "/api/v1/products/"+id+"/stock", token, map[string]int{"quantity": -5})
	assert.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, "Insufficient stock", r.body["message"])

	r = api.do(t, http.MethodPatch, "/api/v1/products/"+id+"/stock", token, map[string]int{"quantity": -3})
	require.Equal(t, http.StatusOK, r.status)
	assert.EqualValues(t, 0, r.body["data"].(map[string]interface{})["quantity"])
}

func TestProducts_BulkDelete(t *testing.T) {
	api := newTestAPI(t, 0)
	token := api.registerAndLogin(t, "ana@example.com")
	a := api.createProduct(t, token, "a", 1)
	b := api.createProduct(t, token, "b", 1)

	r := api.do(t, http.MethodPost, "/api/v1/products/bulk-delete", token, map[string][]string{"ids": {a, b, "65f000000000000000000999"}})
	require.Equal(t, http.StatusOK, r.status)
	assert.Equal(t, "2 products deleted successfully", r.body["message"])
	assert.Empty(t, api.products.items)
}

func TestProducts_BulkDeleteListaVacia(t *testing.T) {
	api := newTestAPI(t, 0)
	token := api.registerAndLogin(t, "ana@example.com")
	api.createProduct(t, token, "a", 1)

	r := api.do(t, http.MethodPost, "/api/v1/products/bulk-delete", token, map[string][]string{"ids": {}})
	require.Equal(t, http.StatusOK, r.status)
	assert.Equal(t, "0 products deleted successfully", r.body["message"])
	assert.Len(t, api.products.items, 1)

	r = api.do(t, http.MethodPost, "/api/v1/products/bulk-delete", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, r.status, "sin ids sigue siendo inválido")
}

func TestProducts_StockDeltaFueraDeRango400(t *testing.T) {
	api := newTestAPI(t, 0)
	token := api.registerAndLogin(t, "ana@example.com")
	id := api.createProduct(t, token, "st", 4)

	r := api.do(t, http.MethodPatch, "/api/v1/products/"+id+"/stock", token, map[string]int{"quantity": math.MinInt64})
	assert.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, "VALIDATION_ERROR", r.body["code"])
	assert.Equal(t, 4, api.products.items[id].Quantity)
}

func TestProducts_PaginaEnorme400(t *testing.T) {
	api := newTestAPI(t, 0)
	token := api.registerAndLogin(t, "ana@example.com")
	api.createProduct(t, token, "p", 1)

	r := api.do(t, http.MethodGet, "/api/v1/products?page=922337203685477581&limit=100", token, nil)
	assert.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, "VALIDATION_ERROR", r.body["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Categories y upload
// ──────────────────────────────────────────────────────────────────────────────

func TestCategories_CrearYListar(t *testing.T) {
	api := newTestAPI(t, 0)
	token := api.registerAndLogin(t, "ana@example.com")

	r := api.do(t, http.MethodPost, "/api/v1/categories", token, map[string]string{"name": "Zapatos"})
	require.Equal(t, http.StatusCreated, r.status)
	api.do(t, http.MethodPost, "/api/v1/categories", token, map[string]interface{}{"name": "Accesorios"})
	api.do(t, http.MethodPost, "/api/v1/categories", token, map[string]interface{}{"name": "Ocultas", "isActive": false})

	r = api.do(t, http.MethodGet, "/api/v1/categories", token, nil)
	require.Equal(t, http.StatusOK, r.status)
	list := r.body["data"].([]interface{})
	require.Len(t, list, 2)
	assert.Equal(t, "Accesorios", list[0].(map[string]interface{})["name"])
}

func uploadRequest(t *testing.T, token string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(apphttp.UploadFormField, "foto.png")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload/image", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestUpload_ImagenPNG(t *testing.T) {
	api := newTestAPI(t, 0)
	token := api.registerAndLogin(t, "ana@example.com")
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

	r := api.send(t, uploadRequest(t, token, png))
	require.Equal(t, http.StatusCreated, r.status, r.body)
	data := r.body["data"].(map[string]interface{})
	assert.True(t, strings.HasPrefix(data["path"].(string), "products/"))
	assert.True(t, strings.HasSuffix(data["url"].(string), ".png"))
}

func TestUpload_TipoInvalido400(t *testing.T) {
	api := newTestAPI(t, 0)
	token := api.registerAndLogin(t, "ana@example.com")

	r := api.send(t, uploadRequest(t, token, []byte("%PDF-1.4 no es imagen")))
	assert.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, "Invalid file type. Only JPEG, PNG, WEBP allowed", r.body["message"])
}

func TestUpload_SinArchivo400(t *testing.T) {
	api := newTestAPI(t, 0)
	token := api.registerAndLogin(t, "ana@example.com")

	r := api.do(t, http.MethodPost, "/api/v1/upload/image", token, nil)
	assert.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, "No file uploaded", r.body["message"])
}

func TestRouter_HealthBaseDeDatosCaida(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(false, logger.Nop())})
	apphttp.Router(app, apphttp.RouterDeps{
		APIPrefix: "/api/v1",
		JWTSecret: testJWTSecret,
		Ping:      func(context.Context) error { return fmt.Errorf("server selection timeout") },
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
