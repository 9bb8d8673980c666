// Package cart contiene la lógica de dominio del carrito: reconciliación contra el
// inventario vivo y armado del mensaje de checkout. No depende de infraestructura.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// Snapshot es la vista del inventario usada en una reconciliación, indexada por ID.
// Un ID ausente equivale a un producto eliminado.
type Snapshot map[string]*entity.Item

// Line es una línea reconciliada lista para mostrar. Nunca se persiste.
type Line struct {
	ItemID    string
	Name      string
	Category  string
	ImageURL  string
	UnitPrice decimal.Decimal
	Quantity  int // cantidad efectiva: min(pedida, stock)
	LineTotal decimal.Decimal
}

// Reconciled es la vista consistente del carrito frente al inventario actual.
type Reconciled struct {
	Lines     []Line
	ItemCount int
	Subtotal  decimal.Decimal
	Taxes     decimal.Decimal // siempre 0: no se calculan impuestos
	Total     decimal.Decimal
}

// Adjustment registra una cantidad recortada al stock durante la reconciliación.
type Adjustment struct {
	ItemID string
	From   int
	To     int
}

// Available devuelve el stock vendible del producto y si es comprable.
// Es el punto común entre el recorte pasivo (Reconcile) y el rechazo explícito del caso de uso.
func Available(item *entity.Item) (stock int, ok bool) {
	if !item.IsPurchasable() {
		return 0, false
	}
	return item.Stock, true
}

// Reconcile recorre el carrito en orden y arma la vista reconciliada.
//
// Las entradas de productos eliminados, inactivos o agotados se omiten de la salida pero
// se conservan en el carrito. Si la cantidad pedida supera el stock, se recorta y el
// recorte se guarda en c para que lecturas siguientes sean consistentes.
func Reconcile(c *entity.Cart, snap Snapshot) (Reconciled, []Adjustment) {
	out := Reconciled{
		Lines:    make([]Line, 0, len(c.Entries)),
		Subtotal: decimal.Zero,
		Taxes:    decimal.Zero,
	}
	var adjusted []Adjustment

	entries := make([]entity.CartEntry, len(c.Entries))
	copy(entries, c.Entries)

	for _, e := range entries {
		item := snap[e.ItemID]
		stock, ok := Available(item)
		if !ok {
			continue
		}
		qty := e.Quantity
		if qty > stock {
			qty = stock
			// La entrada existe y qty > 0: SetQuantity no puede fallar aquí.
			_ = c.SetQuantity(e.ItemID, qty)
			adjusted = append(adjusted, Adjustment{ItemID: e.ItemID, From: e.Quantity, To: qty})
		}
		lineTotal := item.Price.Mul(decimal.NewFromInt(int64(qty)))
		out.Lines = append(out.Lines, Line{
			ItemID:    item.ID,
			Name:      item.Name,
			Category:  item.Category,
			ImageURL:  item.ImageURL,
			UnitPrice: item.Price,
			Quantity:  qty,
			LineTotal: lineTotal,
		})
		out.ItemCount += qty
		out.Subtotal = out.Subtotal.Add(lineTotal)
	}
	out.Total = out.Subtotal.Add(out.Taxes)
	return out, adjusted
}

// IsEmpty indica si no quedó ninguna línea comprable.
func (r Reconciled) IsEmpty() bool {
	return len(r.Lines) == 0
}
