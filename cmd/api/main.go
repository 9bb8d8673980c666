package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"

	_ "github.com/jhoicas/tienda-api/docs"
	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/cart"
	"github.com/jhoicas/tienda-api/internal/application/catalog"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/tienda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/tienda-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/tienda-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-api/pkg/config"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// @title        Tienda API
// @version      1.0
// @description  Catálogo, carrito por sesión y pedido por WhatsApp.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("inventory", cfg.App.InventoryBackend).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var items repository.ItemRepository
	switch cfg.App.InventoryBackend {
	case config.BackendMemory:
		items = memory.NewItemRepository()
		log.Warn().Msg("inventario en memoria: los productos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		items = postgres.NewItemRepository(pool)
	}

	// El carrito vive lo que dura la sesión del visitante.
	carts := memory.NewCartStore(cfg.Session.Expiration())
	go purgeCarts(ctx, carts, cfg.Session.Expiration()/4, log)

	if cfg.Checkout.WhatsAppNumber == "" {
		log.Warn().Msg("WHATSAPP_NUMBER vacío: el enlace de pedido no tendrá destinatario")
	}
	cartUC := cart.NewUseCase(carts, items, infrapdf.NewMarotoQuoteGenerator(), cart.CheckoutConfig{
		WhatsAppNumber: cfg.Checkout.WhatsAppNumber,
		StoreName:      cfg.Checkout.StoreName,
	}, log)
	catalogUC := catalog.NewUseCase(items)
	authUC := auth.NewAuthUseCase(
		auth.AdminCredentials{Email: cfg.Admin.Email, PasswordHash: cfg.Admin.PasswordHash},
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
	)

	sessions := session.New(session.Config{
		Expiration:     cfg.Session.Expiration(),
		KeyLookup:      "cookie:" + cfg.Session.CookieName,
		CookieSecure:   cfg.Session.CookieSecure,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
		// Los IDs del cuerpo terminan guardados en el carrito: sin copias zero-copy de fasthttp.
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tienda API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC: catalogUC,
		CartUC:    cartUC,
		AuthUC:    authUC,
		Sessions:  sessions,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// purgeCarts libera periódicamente los carritos de sesiones vencidas.
func purgeCarts(ctx context.Context, carts *memory.CartStore, every time.Duration, log *logger.Logger) {
	if every < time.Minute {
		every = time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := carts.PurgeExpired(); n > 0 {
				log.Debug().Int("purged", n).Int("active", carts.Len()).Msg("carritos vencidos liberados")
			}
		}
	}
}
