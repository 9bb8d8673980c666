package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/tienda-api/internal/application/cart"
	"github.com/jhoicas/tienda-api/internal/application/dto"
)

// CartHandler expone el carrito de la sesión del visitante y el checkout por WhatsApp.
type CartHandler struct {
	uc *cart.UseCase
}

// NewCartHandler construye el handler del carrito.
func NewCartHandler(uc *cart.UseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// Get godoc
// @Summary      Ver carrito
// @Description  Reconcilia el carrito con el inventario actual y devuelve líneas y totales.
// @Tags         cart
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetCart(c.Context(), GetSessionID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Agregar una unidad al carrito
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddToCartRequest  true  "item_id"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cart/add [post]
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var in dto.AddToCartRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.ItemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_id es requerido"})
	}
	out, err := h.uc.AddItem(c.Context(), GetSessionID(c), utils.CopyString(in.ItemID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Fijar cantidad de un producto del carrito
// @Description  quantity 0 quita el producto.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateCartRequest  true  "item_id, quantity"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cart/update [post]
func (h *CartHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCartRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.ItemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_id es requerido"})
	}
	out, err := h.uc.UpdateQuantity(c.Context(), GetSessionID(c), utils.CopyString(in.ItemID), in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Vaciar carrito
// @Tags         cart
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart/clear [post]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	out, err := h.uc.ClearCart(c.Context(), GetSessionID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CheckoutLink godoc
// @Summary      Generar enlace de pedido por WhatsApp
// @Tags         checkout
// @Produce      json
// @Success      200  {object}  dto.CheckoutLinkResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/checkout-link [post]
func (h *CartHandler) CheckoutLink(c *fiber.Ctx) error {
	out, err := h.uc.CheckoutLink(c.Context(), GetSessionID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// QuotePDF godoc
// @Summary      Cotización del carrito en PDF
// @Tags         cart
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/cart/quote.pdf [get]
func (h *CartHandler) QuotePDF(c *fiber.Ctx) error {
	pdf, err := h.uc.QuotePDF(c.Context(), GetSessionID(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="cotizacion.pdf"`)
	return c.Send(pdf)
}
