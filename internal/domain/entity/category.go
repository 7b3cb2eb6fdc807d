package entity

import "time"

// Category representa una categoría de productos (jerárquica opcional vía ParentID).
type Category struct {
	ID          string
	Name        string
	Slug        string // único, minúsculas
	Description string
	ParentID    string // vacío si es raíz
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategorySummary datos de la categoría que se adjuntan a un producto.
type CategorySummary struct {
	ID   string
	Name string
	Slug string
}
