package catalog

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// DefaultCategory agrupa los productos sin categoría en el catálogo público.
const DefaultCategory = "Sin categoría"

// UseCase casos de uso del catálogo: vitrina pública y CRUD administrativo.
// Los cambios de stock y estado se reflejan en los carritos en la siguiente reconciliación.
type UseCase struct {
	repo repository.ItemRepository
	now  func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ItemRepository) *UseCase {
	return &UseCase{repo: repo, now: time.Now}
}

// PublicCatalog lista los productos activos agrupados por categoría.
// Categorías y productos se ordenan alfabéticamente en español (tildes y mayúsculas no alteran el orden).
func (uc *UseCase) PublicCatalog(ctx context.Context) (*dto.CatalogResponse, error) {
	items, err := uc.repo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	groups := make(map[string][]*entity.Item)
	for _, it := range items {
		cat := strings.TrimSpace(it.Category)
		if cat == "" {
			cat = DefaultCategory
		}
		groups[cat] = append(groups[cat], it)
	}

	col := collate.New(language.Spanish, collate.IgnoreCase)
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return col.CompareString(names[i], names[j]) < 0 })

	out := &dto.CatalogResponse{Categories: make([]dto.CategoryGroupResponse, 0, len(names))}
	for _, name := range names {
		list := groups[name]
		sort.SliceStable(list, func(i, j int) bool { return col.CompareString(list[i].Name, list[j].Name) < 0 })
		resp := make([]dto.ItemResponse, 0, len(list))
		for _, it := range list {
			resp = append(resp, *toItemResponse(it))
		}
		out.Categories = append(out.Categories, dto.CategoryGroupResponse{Category: name, Items: resp})
	}
	return out, nil
}

// GetPublic obtiene un producto activo. Devuelve (nil, nil) si no existe o está inactivo.
func (uc *UseCase) GetPublic(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.Active {
		return nil, nil
	}
	return toItemResponse(item), nil
}

// List lista todos los productos (activos e inactivos) para el administrador.
func (uc *UseCase) List(ctx context.Context) (*dto.ItemListResponse, error) {
	items, err := uc.repo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *toItemResponse(it))
	}
	return &dto.ItemListResponse{Items: out, Total: len(out)}, nil
}

// Create crea un producto. Activo por defecto.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := uc.now()
	item := &entity.Item{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Stock:       in.Stock,
		Active:      active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Update actualiza los campos presentes. Devuelve (nil, nil) si el producto no existe.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Category != nil {
		item.Category = strings.TrimSpace(*in.Category)
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.Price = *in.Price
	}
	if in.ImageURL != nil {
		item.ImageURL = *in.ImageURL
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.Stock = *in.Stock
	}
	if in.Active != nil {
		item.Active = *in.Active
	}
	item.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Delete elimina un producto. Los carritos que lo referencian lo omiten al reconciliar.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Category:    it.Category,
		Price:       it.Price,
		ImageURL:    it.ImageURL,
		Stock:       it.Stock,
		Active:      it.Active,
		Available:   it.IsPurchasable(),
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}
