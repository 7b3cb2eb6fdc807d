package usecase_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-admin-api/internal/application/dto"
	"github.com/jhoicas/catalogo-admin-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-admin-api/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryListActive_OrdenadasYSinInactivas(t *testing.T) {
	repo := &memCategories{}
	uc := usecase.NewCategoryUseCase(repo, nil, nil)
	ctx := context.Background()

	inactive := false
	_, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Zapatos"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Name: "Accesorios"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Name: "Ocultos", IsActive: &inactive})
	require.NoError(t, err)

	list, err := uc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Accesorios", list[0].Name)
	assert.Equal(t, "zapatos", list[1].Slug)
}

func TestCategoryCreate_SlugDuplicado(t *testing.T) {
	uc := usecase.NewCategoryUseCase(&memCategories{}, nil, nil)
	_, err := uc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Ropa"})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), dto.CreateCategoryRequest{Name: "ROPA"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCategoryCache_LecturaEscrituraEInvalidacion(t *testing.T) {
	cache := &memCache{}
	uc := usecase.NewCategoryUseCase(&memCategories{}, cache, nil)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Hogar"})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidated)

	_, err = uc.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets, "miss: se llena el cache")

	list, err := uc.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Len(t, list, 1)
}

func TestCategoryCache_FalloDeLecturaNoRompeElListado(t *testing.T) {
	repo := &memCategories{}
	cache := &memCache{failReads: true}
	uc := usecase.NewCategoryUseCase(repo, cache, nil)

	_, err := uc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Jardín"})
	require.NoError(t, err)
	list, err := uc.ListActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "jardin", list[0].Slug)
}

// ──────────────────────────────────────────────────────────────────────────────
// Subida de imágenes
// ──────────────────────────────────────────────────────────────────────────────

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestUploadImage_GuardaPNG(t *testing.T) {
	store := &memStorage{files: map[string][]byte{}}
	uc := usecase.NewUploadUseCase(store)

	body := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 1024)...)
	out, err := uc.UploadImage(context.Background(), "foto.png", int64(len(body)), bytes.NewReader(body))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.Path, "products/"))
	assert.True(t, strings.HasSuffix(out.Path, ".png"))
	assert.Equal(t, "/uploads/"+out.Path, out.URL)
	assert.Equal(t, body, store.files[out.Path], "el contenido llega completo, incluida la cabecera leída")
}

func TestUploadImage_RechazaTipoYTamano(t *testing.T) {
	store := &memStorage{files: map[string][]byte{}}
	uc := usecase.NewUploadUseCase(store)

	_, err := uc.UploadImage(context.Background(), "doc.png", 20, strings.NewReader("%PDF-1.4 not an image"))
	assert.ErrorIs(t, err, domain.ErrInvalidFileType, "el tipo se detecta por contenido")

	_, err = uc.UploadImage(context.Background(), "big.png", usecase.MaxImageBytes+1, bytes.NewReader(pngHeader))
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)

	big := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{1}, usecase.MaxImageBytes)...)
	_, err = uc.UploadImage(context.Background(), "mentira.png", -1, bytes.NewReader(big))
	assert.ErrorIs(t, err, domain.ErrFileTooLarge, "tamaño declarado desconocido: se cuenta al copiar")
	assert.Empty(t, store.files)

	_, err = uc.UploadImage(context.Background(), "vacio.png", 0, bytes.NewReader(nil))
	assert.ErrorIs(t, err, domain.ErrFileRequired)
}
