package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo inventario en memoria (INVENTORY_BACKEND=memory y tests).
// Guarda y devuelve copias para que nadie modifique el estado sin pasar por Update.
type ItemRepo struct {
	mu    sync.RWMutex
	items map[string]entity.Item
}

// NewItemRepository construye el repositorio con productos iniciales opcionales.
func NewItemRepository(seed ...*entity.Item) *ItemRepo {
	r := &ItemRepo{items: make(map[string]entity.Item, len(seed))}
	for _, it := range seed {
		r.items[it.ID] = *it
	}
	return r
}

func (r *ItemRepo) Create(_ context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; ok {
		return domain.ErrDuplicate
	}
	r.items[item.ID] = *item
	return nil
}

func (r *ItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r *ItemRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]*entity.Item, len(ids))
	for _, id := range ids {
		if it, ok := r.items[id]; ok {
			out[id] = &it
		}
	}
	return out, nil
}

// List devuelve los productos ordenados por nombre.
func (r *ItemRepo) List(_ context.Context, onlyActive bool) ([]*entity.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*entity.Item, 0, len(r.items))
	for _, it := range r.items {
		if onlyActive && !it.Active {
			continue
		}
		it := it
		list = append(list, &it)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *ItemRepo) Update(_ context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	r.items[item.ID] = *item
	return nil
}

func (r *ItemRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}
