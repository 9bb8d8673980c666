package cart

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/pkg/money"
)

const (
	whatsAppBaseURL = "https://wa.me/"

	checkoutGreeting = "¡Hola! Quiero hacer el siguiente pedido:"
	checkoutClosing  = "¿Me confirmas disponibilidad, envío y forma de pago? ¡Gracias!"
)

// Checkout es el resumen del pedido y el enlace de WhatsApp con el mensaje precargado.
type Checkout struct {
	Message string
	Link    string
}

// BuildCheckout arma el mensaje de pedido y el enlace wa.me para el número de contacto.
// Falla con domain.ErrEmptyCart si no hay líneas: nunca se ofrece checkout de un carrito vacío.
//
// Formato:
//
//	¡Hola! Quiero hacer el siguiente pedido:
//	- Camisa (Ropa) x2 - $ 100.000,00 c/u = $ 200.000,00
//
//	Total: $ 200.000,00
//
//	¿Me confirmas disponibilidad, envío y forma de pago? ¡Gracias!
func BuildCheckout(r Reconciled, contact string) (Checkout, error) {
	if r.IsEmpty() {
		return Checkout{}, domain.ErrEmptyCart
	}

	var b strings.Builder
	b.WriteString(checkoutGreeting)
	b.WriteByte('\n')
	for _, l := range r.Lines {
		name := l.Name
		if l.Category != "" {
			name += " (" + l.Category + ")"
		}
		fmt.Fprintf(&b, "- %s x%d - %s c/u = %s\n",
			name, l.Quantity, money.Format(l.UnitPrice), money.Format(l.LineTotal))
	}
	b.WriteByte('\n')
	b.WriteString("Total: " + money.Format(r.Total))
	b.WriteString("\n\n")
	b.WriteString(checkoutClosing)

	msg := b.String()
	return Checkout{
		Message: msg,
		Link:    whatsAppBaseURL + digitsOnly(contact) + "?text=" + encodeText(msg),
	}, nil
}

// encodeText codifica como encodeURIComponent: espacios como %20, no como "+".
func encodeText(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// digitsOnly deja solo los dígitos del número ("+57 300 123 4567" -> "573001234567"), formato exigido por wa.me.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
