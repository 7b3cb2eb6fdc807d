package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-admin-api/internal/application/dto"
	"github.com/jhoicas/catalogo-admin-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-admin-api/internal/domain"
)

// UploadFormField campo multipart con la imagen.
const UploadFormField = "image"

// UploadHandler subida de imágenes de producto (protegido).
type UploadHandler struct {
	uc *usecase.UploadUseCase
}

// NewUploadHandler construye el handler.
func NewUploadHandler(uc *usecase.UploadUseCase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

// Image godoc
// @Summary      Subir imagen de producto
// @Tags         upload
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file  true  "JPEG, PNG o WEBP (máx. 5MB)"
// @Success      201    {object}  dto.Envelope{data=dto.UploadResponse}
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /upload/image [post]
func (h *UploadHandler) Image(c *fiber.Ctx) error {
	fh, err := c.FormFile(UploadFormField)
	if err != nil {
		return domain.ErrFileRequired
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	out, err := h.uc.UploadImage(c.UserContext(), fh.Filename, fh.Size, f)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage("File uploaded successfully", out))
}
