package dto

import (
	"strings"
	"time"
)

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ParentID    string `json:"parentId" validate:"omitempty,objectid"`
	IsActive    *bool  `json:"isActive"`
}

// Normalize recorta el nombre y pasa el slug a minúsculas.
func (r *CreateCategoryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Slug = strings.ToLower(strings.TrimSpace(r.Slug))
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	ParentID    string    `json:"parentId,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UploadResponse salida de POST /upload/image.
type UploadResponse struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}
