package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un producto del catálogo.
type CreateItemRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Stock       int             `json:"stock" validate:"min=0"`
	Active      *bool           `json:"active"` // por defecto true
}

// UpdateItemRequest entrada para actualizar un producto (solo los campos presentes).
type UpdateItemRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"image_url"`
	Stock       *int             `json:"stock" validate:"omitempty,min=0"`
	Active      *bool            `json:"active"`
}

// ItemResponse salida de un producto.
type ItemResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
	Stock       int             `json:"stock"`
	Active      bool            `json:"active"`
	Available   bool            `json:"available"` // activo y con stock
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CategoryGroupResponse productos de una categoría en el catálogo público.
type CategoryGroupResponse struct {
	Category string         `json:"category"`
	Items    []ItemResponse `json:"items"`
}

// CatalogResponse catálogo público agrupado por categoría.
type CatalogResponse struct {
	Categories []CategoryGroupResponse `json:"categories"`
}

// ItemListResponse listado administrativo de productos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total"`
}
