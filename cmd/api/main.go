package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/home-inventory/backend/internal/config"
	"github.com/home-inventory/backend/internal/db"
	"github.com/home-inventory/backend/internal/events"
	apphttp "github.com/home-inventory/backend/internal/http"
	"github.com/home-inventory/backend/internal/http/handlers"
	"github.com/home-inventory/backend/internal/repositories"
	"github.com/home-inventory/backend/internal/services"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, cfg.PostgresMaxConns, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	txManager := db.NewTxManager(pool)
	roomRepo := repositories.NewRoomRepo(pool)
	unitRepo := repositories.NewUnitRepo(pool)
	shelfRepo := repositories.NewShelfRepo(pool)
	containerRepo := repositories.NewContainerRepo(pool)
	itemRepo := repositories.NewItemRepo(pool)
	tagRepo := repositories.NewTagRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Services
	auditService := services.NewAuditService(auditRepo, log)
	roomService := services.NewRoomService(txManager, roomRepo, auditService, publisher, log)
	unitService := services.NewUnitService(txManager, unitRepo, roomRepo, auditService, publisher, log)
	shelfService := services.NewShelfService(txManager, shelfRepo, unitRepo, auditService, publisher, log)
	containerService := services.NewContainerService(txManager, containerRepo, shelfRepo, auditService, publisher, log)
	itemService := services.NewItemService(txManager, itemRepo, shelfRepo, containerRepo, auditService, publisher, log)
	tagService := services.NewTagService(txManager, tagRepo, auditService, publisher, log)
	moveService := services.NewMoveService(txManager, roomRepo, unitRepo, shelfRepo, containerRepo, itemRepo, auditService, publisher, log)

	// Handlers
	roomHandler := handlers.NewRoomHandler(roomService, unitService, cfg, log)
	unitHandler := handlers.NewUnitHandler(unitService, shelfService, moveService, cfg, log)
	shelfHandler := handlers.NewShelfHandler(shelfService, containerService, itemService, moveService, cfg, log)
	containerHandler := handlers.NewContainerHandler(containerService, itemService, moveService, cfg, log)
	itemHandler := handlers.NewItemHandler(itemService, moveService, cfg, log)
	tagHandler := handlers.NewTagHandler(tagService, cfg, log)
	auditHandler := handlers.NewAuditHandler(auditService, log)
	wsHub := handlers.NewWSHub(cfg, subscriber, log)

	// Start WS hub
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, roomHandler, unitHandler, shelfHandler, containerHandler, itemHandler, tagHandler, auditHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
