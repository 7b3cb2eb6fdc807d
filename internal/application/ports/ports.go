package ports

import (
	"context"
	"io"
	"time"

	"github.com/jhoicas/catalogo-admin-api/internal/application/dto"
)

// FileStorage puerto de salida para guardar archivos subidos (disco local, S3, MinIO).
type FileStorage interface {
	// Put guarda r bajo key. size puede ser -1 si se desconoce.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	// URL dirección pública de key.
	URL(key string) string
}

// CategoryCache copia de lectura del listado de categorías activas.
// Nunca es la fuente de verdad; un fallo del cache no debe fallar la petición.
type CategoryCache interface {
	// GetActive devuelve (lista, true, nil) en hit y (nil, false, nil) en miss.
	GetActive(ctx context.Context) ([]dto.CategoryResponse, bool, error)
	SetActive(ctx context.Context, categories []dto.CategoryResponse) error
	Invalidate(ctx context.Context) error
}

// StatsReportGenerator genera el reporte PDF de inventario.
type StatsReportGenerator interface {
	GenerateStatsReport(ctx context.Context, report StatsReport) ([]byte, error)
}

// StatsReport datos que se imprimen en el reporte.
type StatsReport struct {
	Title       string
	GeneratedAt time.Time
	Stats       dto.ProductStatsResponse
	LowStock    []dto.ProductResponse
}
