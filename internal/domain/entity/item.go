package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un producto del catálogo con su stock disponible.
// Es la fuente de verdad para precio y disponibilidad; el carrito solo guarda referencias.
type Item struct {
	ID          string
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal // precio unitario en COP
	ImageURL    string
	Stock       int
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsPurchasable indica si el producto se puede agregar al carrito: activo y con stock.
func (i *Item) IsPurchasable() bool {
	return i != nil && i.Active && i.Stock > 0
}
