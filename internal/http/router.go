package http

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/home-inventory/backend/internal/config"
	"github.com/home-inventory/backend/internal/http/handlers"
	"github.com/home-inventory/backend/internal/middleware"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	roomHandler *handlers.RoomHandler,
	unitHandler *handlers.UnitHandler,
	shelfHandler *handlers.ShelfHandler,
	containerHandler *handlers.ContainerHandler,
	itemHandler *handlers.ItemHandler,
	tagHandler *handlers.TagHandler,
	auditHandler *handlers.AuditHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Prometheus scrape endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	// All inventory endpoints require auth
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	// Rooms
	protected.Post("/rooms", roomHandler.Create)
	protected.Get("/rooms", roomHandler.List)
	protected.Get("/rooms/:id", roomHandler.Get)
	protected.Get("/rooms/:id/shelving-units", roomHandler.ListUnits)
	protected.Put("/rooms/:id", roomHandler.Update)
	protected.Delete("/rooms/:id", roomHandler.Delete)

	// Shelving units
	protected.Post("/shelving-units", unitHandler.Create)
	protected.Get("/shelving-units", unitHandler.List)
	protected.Get("/shelving-units/:id", unitHandler.Get)
	protected.Get("/shelving-units/:id/shelves", unitHandler.ListShelves)
	protected.Put("/shelving-units/:id", unitHandler.Update)
	protected.Post("/shelving-units/:id/move", unitHandler.Move)
	protected.Delete("/shelving-units/:id", unitHandler.Delete)

	// Shelves
	protected.Post("/shelves", shelfHandler.Create)
	protected.Get("/shelves", shelfHandler.List)
	protected.Get("/shelves/:id", shelfHandler.Get)
	protected.Get("/shelves/:id/containers", shelfHandler.ListContainers)
	protected.Get("/shelves/:id/items", shelfHandler.ListItems)
	protected.Put("/shelves/:id", shelfHandler.Update)
	protected.Post("/shelves/:id/move", shelfHandler.Move)
	protected.Delete("/shelves/:id", shelfHandler.Delete)

	// Containers
	protected.Post("/containers", containerHandler.Create)
	protected.Get("/containers", containerHandler.List)
	protected.Get("/containers/:id", containerHandler.Get)
	protected.Get("/containers/:id/containers", containerHandler.ListChildren)
	protected.Get("/containers/:id/items", containerHandler.ListItems)
	protected.Get("/containers/:id/path", containerHandler.Breadcrumbs)
	protected.Put("/containers/:id", containerHandler.Update)
	protected.Post("/containers/:id/move", containerHandler.Move)
	protected.Delete("/containers/:id", containerHandler.Delete)

	// Items
	protected.Post("/items", itemHandler.Create)
	protected.Get("/items", itemHandler.List)
	protected.Get("/items/:id", itemHandler.Get)
	protected.Put("/items/:id", itemHandler.Update)
	protected.Post("/items/:id/move", itemHandler.Move)
	protected.Delete("/items/:id", itemHandler.Delete)

	// Tags
	protected.Post("/tags", tagHandler.Create)
	protected.Get("/tags", tagHandler.List)
	protected.Post("/tags/assign", tagHandler.Assign)
	protected.Post("/tags/bulk-assign", tagHandler.BulkAssign)
	protected.Get("/tags/:id", tagHandler.Get)
	protected.Put("/tags/:id", tagHandler.Update)
	protected.Delete("/tags/:id", tagHandler.Delete)
	protected.Get("/entities/:type/:id/tags", tagHandler.ListForEntity)

	// Audit trail
	protected.Get("/audit-logs", auditHandler.List)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
