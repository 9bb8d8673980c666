package entity

import "github.com/jhoicas/tienda-api/internal/domain"

// CartEntry es una línea guardada del carrito: referencia al producto y cantidad pedida.
// No copia precio ni nombre; esos datos se leen siempre del inventario al reconciliar.
type CartEntry struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// Cart es el carrito de una sesión. Mantiene el orden de inserción y una entrada por producto.
// Puede contener entradas obsoletas (producto inactivo o agotado); se resuelven al leer.
type Cart struct {
	Entries []CartEntry `json:"entries"`
}

// Quantity devuelve la cantidad pedida para itemID (0 si no está en el carrito).
func (c *Cart) Quantity(itemID string) int {
	if i := c.indexOf(itemID); i >= 0 {
		return c.Entries[i].Quantity
	}
	return 0
}

// Has indica si existe una entrada para itemID.
func (c *Cart) Has(itemID string) bool {
	return c.indexOf(itemID) >= 0
}

// AddOne suma una unidad a la entrada existente o agrega una nueva al final.
// No valida stock: esa verificación corresponde a quien llama.
func (c *Cart) AddOne(itemID string) {
	if i := c.indexOf(itemID); i >= 0 {
		c.Entries[i].Quantity++
		return
	}
	c.Entries = append(c.Entries, CartEntry{ItemID: itemID, Quantity: 1})
}

// SetQuantity fija la cantidad de una entrada existente.
// Con qty == 0 elimina la entrada (sin error si no existe); con qty > 0 exige que exista.
func (c *Cart) SetQuantity(itemID string, qty int) error {
	if qty < 0 {
		return domain.ErrInvalidQuantity
	}
	i := c.indexOf(itemID)
	if qty == 0 {
		if i >= 0 {
			c.Entries = append(c.Entries[:i], c.Entries[i+1:]...)
		}
		return nil
	}
	if i < 0 {
		return domain.ErrNotInCart
	}
	c.Entries[i].Quantity = qty
	return nil
}

// Clear vacía el carrito.
func (c *Cart) Clear() {
	c.Entries = nil
}

// IsEmpty indica si no hay entradas guardadas (obsoletas incluidas).
func (c *Cart) IsEmpty() bool {
	return len(c.Entries) == 0
}

// Clone devuelve una copia independiente del carrito.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return &Cart{}
	}
	out := &Cart{}
	if len(c.Entries) > 0 {
		out.Entries = make([]CartEntry, len(c.Entries))
		copy(out.Entries, c.Entries)
	}
	return out
}

// ItemIDs devuelve los IDs referenciados en orden.
func (c *Cart) ItemIDs() []string {
	ids := make([]string, 0, len(c.Entries))
	for _, e := range c.Entries {
		ids = append(ids, e.ItemID)
	}
	return ids
}

func (c *Cart) indexOf(itemID string) int {
	for i, e := range c.Entries {
		if e.ItemID == itemID {
			return i
		}
	}
	return -1
}
