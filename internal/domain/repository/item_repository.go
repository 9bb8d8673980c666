package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia del catálogo (DIP).
// GetByID devuelve (nil, nil) si el producto no existe.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// GetByIDs devuelve los productos encontrados indexados por ID; los IDs inexistentes se omiten.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Item, error)
	List(ctx context.Context, onlyActive bool) ([]*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id string) error
}
