package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jhoicas/catalogo-admin-api/internal/application/dto"
	"github.com/jhoicas/catalogo-admin-api/internal/application/ports"
	"github.com/jhoicas/catalogo-admin-api/internal/domain"
)

// MaxImageBytes tamaño máximo de una imagen subida (5MB).
const MaxImageBytes = 5 * 1024 * 1024

// imageExt tipos aceptados y su extensión canónica.
var imageExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadUseCase guarda imágenes de producto en el almacenamiento configurado.
type UploadUseCase struct {
	storage ports.FileStorage
	now     func() time.Time
}

// NewUploadUseCase construye el caso de uso.
func NewUploadUseCase(storage ports.FileStorage) *UploadUseCase {
	return &UploadUseCase{storage: storage, now: time.Now}
}

// UploadImage valida tipo (por contenido, no por extensión) y tamaño, y guarda bajo
// products/<timestamp>-<uuid><ext>.
func (uc *UploadUseCase) UploadImage(ctx context.Context, filename string, size int64, r io.Reader) (*dto.UploadResponse, error) {
	if size > MaxImageBytes {
		return nil, domain.ErrFileTooLarge
	}
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, errors.Wrap(err, "upload: read header")
	}
	head = head[:n]
	if n == 0 {
		return nil, domain.ErrFileRequired
	}
	contentType := http.DetectContentType(head)
	ext, ok := imageExt[contentType]
	if !ok {
		return nil, domain.ErrInvalidFileType
	}
	if orig := strings.ToLower(path.Ext(filename)); orig == ".jpeg" && ext == ".jpg" {
		ext = orig
	}

	key := fmt.Sprintf("products/%d-%s%s", uc.now().UnixMilli(), uuid.NewString(), ext)
	body := io.MultiReader(bytes.NewReader(head), io.LimitReader(r, MaxImageBytes-int64(n)+1))
	counted := &countingReader{r: body}
	if err := uc.storage.Put(ctx, key, counted, size, contentType); err != nil {
		return nil, err
	}
	if counted.n > MaxImageBytes {
		_ = uc.storage.Delete(ctx, key)
		return nil, domain.ErrFileTooLarge
	}
	return &dto.UploadResponse{URL: uc.storage.URL(key), Path: key}, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
