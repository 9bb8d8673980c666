package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/cart"
	"github.com/jhoicas/tienda-api/internal/application/catalog"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC *catalog.UseCase
	CartUC    *cart.UseCase
	AuthUC    *auth.AuthUseCase
	Sessions  *session.Store
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo (público)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	api.Get("/catalog", catalogHandler.Public)
	api.Get("/catalog/:id", catalogHandler.GetPublic)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Carrito y checkout (sesión por cookie)
	cartHandler := NewCartHandler(deps.CartUC)
	withSession := SessionMiddleware(deps.Sessions)
	cartGroup := api.Group("/cart", withSession)
	cartGroup.Get("/", cartHandler.Get)
	cartGroup.Post("/add", cartHandler.Add)
	cartGroup.Post("/update", cartHandler.Update)
	cartGroup.Post("/clear", cartHandler.Clear)
	cartGroup.Get("/quote.pdf", cartHandler.QuotePDF)
	api.Post("/checkout-link", withSession, cartHandler.CheckoutLink)

	// Administración del catálogo (JWT + rol admin)
	admin := api.Group("/admin", AuthMiddleware(deps.JWTSecret), RequireRole(auth.RoleAdmin))
	admin.Get("/items", catalogHandler.List)
	admin.Post("/items", catalogHandler.Create)
	admin.Put("/items/:id", catalogHandler.Update)
	admin.Delete("/items/:id", catalogHandler.Delete)
}
