package dto

import "github.com/shopspring/decimal"

// AddToCartRequest entrada para agregar una unidad de un producto al carrito.
type AddToCartRequest struct {
	ItemID string `json:"item_id" form:"item_id" validate:"required"`
}

// UpdateCartRequest entrada para fijar la cantidad de un producto del carrito (0 = quitar).
type UpdateCartRequest struct {
	ItemID   string `json:"item_id" form:"item_id" validate:"required"`
	Quantity int    `json:"quantity" form:"quantity" validate:"min=0"`
}

// CartLineResponse línea del carrito reconciliada con el inventario actual.
type CartLineResponse struct {
	ItemID    string          `json:"item_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	ImageURL  string          `json:"image_url,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartResponse carrito reconciliado. Los totales se recalculan en cada petición.
type CartResponse struct {
	Lines     []CartLineResponse `json:"lines"`
	ItemCount int                `json:"item_count"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
	Taxes     decimal.Decimal    `json:"taxes"`
	Total     decimal.Decimal    `json:"total"`
}

// CheckoutLinkResponse mensaje de pedido y enlace de WhatsApp precargado.
type CheckoutLinkResponse struct {
	Message string       `json:"message"`
	Link    string       `json:"link"`
	Cart    CartResponse `json:"cart"`
}
