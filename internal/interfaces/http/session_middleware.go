package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/tienda-api/internal/application/dto"
)

// LocalSessionID key de c.Locals con el ID de la sesión del visitante.
const LocalSessionID = "session_id"

// SessionMiddleware obtiene (o crea) la sesión del visitante con el store de Fiber, renueva
// la cookie y deja el ID en c.Locals. El carrito se guarda aparte, indexado por ese ID.
func SessionMiddleware(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "SESSION", Message: "no se pudo iniciar la sesión"})
		}
		// Marca mínima para que la sesión exista en el store y la cookie se emita.
		sess.Set("cart", true)
		c.Locals(LocalSessionID, sess.ID())
		if err := sess.Save(); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "SESSION", Message: "no se pudo guardar la sesión"})
		}
		return c.Next()
	}
}

// GetSessionID devuelve el ID de sesión (después de SessionMiddleware).
func GetSessionID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSessionID).(string)
	return s
}
