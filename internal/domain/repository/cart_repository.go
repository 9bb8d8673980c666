package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// CartStore define el puerto de persistencia del carrito por sesión.
//
// Update ejecuta fn sobre el carrito de la sesión (vacío si no existe) como una
// lectura-modificación-escritura atómica: las llamadas concurrentes para la misma
// sesión se serializan y, si fn devuelve error, no se guarda ningún cambio.
type CartStore interface {
	Update(ctx context.Context, sessionID string, fn func(cart *entity.Cart) error) error
	// Delete descarta el carrito de la sesión (expiración o cierre de sesión).
	Delete(ctx context.Context, sessionID string) error
}
