package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")

	// Carrito y checkout.
	ErrItemUnavailable   = errors.New("producto no disponible")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrNotInCart         = errors.New("el producto no está en el carrito")
	ErrEmptyCart         = errors.New("el carrito está vacío")
)
