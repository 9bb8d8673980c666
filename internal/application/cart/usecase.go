package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	domaincart "github.com/jhoicas/tienda-api/internal/domain/cart"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// CheckoutConfig datos de la tienda para el checkout por WhatsApp y la cotización.
type CheckoutConfig struct {
	WhatsAppNumber string
	StoreName      string
}

// UseCase operaciones del carrito de sesión. Cada operación lee el carrito, aplica el cambio
// y reconcilia contra el inventario actual dentro de una sola actualización atómica del store;
// si algo falla, el carrito queda como estaba.
type UseCase struct {
	carts     repository.CartStore
	items     repository.ItemRepository
	generator QuotePDFGenerator
	cfg       CheckoutConfig
	log       *logger.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso. generator puede ser nil si no se ofrecen cotizaciones en PDF.
func NewUseCase(
	carts repository.CartStore,
	items repository.ItemRepository,
	generator QuotePDFGenerator,
	cfg CheckoutConfig,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		carts:     carts,
		items:     items,
		generator: generator,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

// GetCart devuelve el carrito reconciliado. Puede guardar recortes de cantidad al stock actual.
func (uc *UseCase) GetCart(ctx context.Context, sessionID string) (*dto.CartResponse, error) {
	rec, err := uc.read(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return toCartResponse(rec), nil
}

// AddItem suma una unidad del producto. Rechaza con ErrItemUnavailable si no es comprable
// y con ErrInsufficientStock si la nueva cantidad supera el stock (sin recorte parcial).
func (uc *UseCase) AddItem(ctx context.Context, sessionID, itemID string) (*dto.CartResponse, error) {
	var rec domaincart.Reconciled
	err := uc.carts.Update(ctx, sessionID, func(c *entity.Cart) error {
		item, err := uc.items.GetByID(ctx, itemID)
		if err != nil {
			return fmt.Errorf("cart: obtener producto: %w", err)
		}
		stock, ok := domaincart.Available(item)
		if !ok {
			return domain.ErrItemUnavailable
		}
		if c.Quantity(itemID)+1 > stock {
			return domain.ErrInsufficientStock
		}
		c.AddOne(itemID)
		rec, err = uc.reconcile(ctx, sessionID, c)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toCartResponse(rec), nil
}

// UpdateQuantity fija la cantidad pedida de un producto que ya está en el carrito.
// qty == 0 lo quita sin mirar stock. Sin stock es ErrItemUnavailable; una cantidad mayor
// al stock se rechaza, no se recorta.
func (uc *UseCase) UpdateQuantity(ctx context.Context, sessionID, itemID string, qty int) (*dto.CartResponse, error) {
	var rec domaincart.Reconciled
	err := uc.carts.Update(ctx, sessionID, func(c *entity.Cart) error {
		item, err := uc.items.GetByID(ctx, itemID)
		if err != nil {
			return fmt.Errorf("cart: obtener producto: %w", err)
		}
		if item == nil || !item.Active {
			return domain.ErrItemUnavailable
		}
		switch {
		case qty < 0:
			return domain.ErrInvalidQuantity
		case qty == 0:
			if err := c.SetQuantity(itemID, 0); err != nil {
				return err
			}
		case item.Stock <= 0:
			return domain.ErrItemUnavailable
		case qty > item.Stock:
			return domain.ErrInsufficientStock
		default:
			if err := c.SetQuantity(itemID, qty); err != nil {
				return err
			}
		}
		rec, err = uc.reconcile(ctx, sessionID, c)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toCartResponse(rec), nil
}

// ClearCart vacía el carrito.
func (uc *UseCase) ClearCart(ctx context.Context, sessionID string) (*dto.CartResponse, error) {
	var rec domaincart.Reconciled
	err := uc.carts.Update(ctx, sessionID, func(c *entity.Cart) error {
		c.Clear()
		var err error
		rec, err = uc.reconcile(ctx, sessionID, c)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toCartResponse(rec), nil
}

// CheckoutLink reconcilia el carrito y arma el mensaje y enlace de WhatsApp.
// Devuelve domain.ErrEmptyCart si no queda ninguna línea comprable.
func (uc *UseCase) CheckoutLink(ctx context.Context, sessionID string) (*dto.CheckoutLinkResponse, error) {
	rec, err := uc.read(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	out, err := domaincart.BuildCheckout(rec, uc.cfg.WhatsAppNumber)
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("session_id", sessionID).
		Int("lines", len(rec.Lines)).
		Str("total", rec.Total.StringFixed(2)).
		Msg("enlace de checkout generado")
	return &dto.CheckoutLinkResponse{
		Message: out.Message,
		Link:    out.Link,
		Cart:    *toCartResponse(rec),
	}, nil
}

// QuotePDF genera la cotización imprimible del carrito reconciliado.
func (uc *UseCase) QuotePDF(ctx context.Context, sessionID string) ([]byte, error) {
	if uc.generator == nil {
		return nil, fmt.Errorf("cart: generador de PDF no configurado")
	}
	rec, err := uc.read(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if rec.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	return uc.generator.GenerateQuotePDF(ctx, Quote{
		StoreName: uc.cfg.StoreName,
		Contact:   uc.cfg.WhatsAppNumber,
		IssuedAt:  uc.now(),
		Cart:      rec,
	})
}

// read reconcilia sin otra mutación que los recortes al stock.
func (uc *UseCase) read(ctx context.Context, sessionID string) (domaincart.Reconciled, error) {
	var rec domaincart.Reconciled
	err := uc.carts.Update(ctx, sessionID, func(c *entity.Cart) error {
		var err error
		rec, err = uc.reconcile(ctx, sessionID, c)
		return err
	})
	return rec, err
}

// reconcile toma una foto del inventario para los productos del carrito y reconcilia c en sitio.
func (uc *UseCase) reconcile(ctx context.Context, sessionID string, c *entity.Cart) (domaincart.Reconciled, error) {
	snap := domaincart.Snapshot{}
	if !c.IsEmpty() {
		items, err := uc.items.GetByIDs(ctx, c.ItemIDs())
		if err != nil {
			return domaincart.Reconciled{}, fmt.Errorf("cart: foto de inventario: %w", err)
		}
		snap = items
	}
	rec, adjusted := domaincart.Reconcile(c, snap)
	for _, a := range adjusted {
		uc.log.Debug().
			Str("session_id", sessionID).
			Str("item_id", a.ItemID).
			Int("from", a.From).
			Int("to", a.To).
			Msg("cantidad ajustada al stock disponible")
	}
	return rec, nil
}

func toCartResponse(r domaincart.Reconciled) *dto.CartResponse {
	lines := make([]dto.CartLineResponse, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, dto.CartLineResponse{
			ItemID:    l.ItemID,
			Name:      l.Name,
			Category:  l.Category,
			ImageURL:  l.ImageURL,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal,
		})
	}
	return &dto.CartResponse{
		Lines:     lines,
		ItemCount: r.ItemCount,
		Subtotal:  r.Subtotal,
		Taxes:     r.Taxes,
		Total:     r.Total,
	}
}
