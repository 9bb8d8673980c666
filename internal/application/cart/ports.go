package cart

import (
	"context"
	"time"

	domaincart "github.com/jhoicas/tienda-api/internal/domain/cart"
)

// Quote datos para la cotización imprimible del carrito.
type Quote struct {
	StoreName string
	Contact   string
	IssuedAt  time.Time
	Cart      domaincart.Reconciled
}

// QuotePDFGenerator genera el PDF de la cotización. Lo implementa infrastructure/pdf.
type QuotePDFGenerator interface {
	GenerateQuotePDF(ctx context.Context, q Quote) ([]byte, error)
}
