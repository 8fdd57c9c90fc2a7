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

	"github.com/apetrovv/warehouse-api/internal/application/auth"
	"github.com/apetrovv/warehouse-api/internal/application/stock"
	"github.com/apetrovv/warehouse-api/internal/application/usecase"
	infrapdf "github.com/apetrovv/warehouse-api/internal/infrastructure/pdf"
	"github.com/apetrovv/warehouse-api/internal/infrastructure/postgres"
	httpRouter "github.com/apetrovv/warehouse-api/internal/interfaces/http"
	"github.com/apetrovv/warehouse-api/pkg/config"
	"github.com/apetrovv/warehouse-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := postgres.Migrate(cfg.DB); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	cellRepo := postgres.NewStorageCellRepository(pool)
	contentRepo := postgres.NewCellContentRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	inboundRepo := postgres.NewInboundShipmentRepository(pool)
	outboundRepo := postgres.NewOutboundShipmentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	cellContentUC := stock.NewCellContentUseCase(txRunner, cellRepo, contentRepo, movementRepo)
	inboundUC := stock.NewInboundUseCase(txRunner, inboundRepo, productRepo, cellRepo, cellContentUC)
	packingListGen := infrapdf.NewMarotoPackingListGenerator()
	outboundUC := stock.NewOutboundUseCase(txRunner, outboundRepo, productRepo, cellContentUC, packingListGen, stock.OldestFirstStrategy{})

	userUC := usecase.NewUserUseCase(userRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	storageCellUC := usecase.NewStorageCellUseCase(cellRepo, contentRepo)
	searchUC := usecase.NewSearchUseCase(productRepo, cellRepo, contentRepo)
	authUC := auth.NewUseCase(userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Warehouse API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        userUC,
		ProductUC:     productUC,
		StorageCellUC: storageCellUC,
		SearchUC:      searchUC,
		CellContentUC: cellContentUC,
		InboundUC:     inboundUC,
		OutboundUC:    outboundUC,
		JWTSecret:     cfg.JWT.Secret,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
