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

	"github.com/jvargas/trazalote/internal/application/bom"
	"github.com/jvargas/trazalote/internal/application/catalog"
	"github.com/jvargas/trazalote/internal/application/genealogy"
	"github.com/jvargas/trazalote/internal/application/lots"
	"github.com/jvargas/trazalote/internal/domain/repository"
	"github.com/jvargas/trazalote/internal/infrastructure/mirror"
	"github.com/jvargas/trazalote/internal/infrastructure/postgres"
	httpRouter "github.com/jvargas/trazalote/internal/interfaces/http"
	"github.com/jvargas/trazalote/pkg/config"
	"github.com/jvargas/trazalote/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("catalog_mode", cfg.Catalog.Mode).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}

	itemRepo := postgres.NewItemRepository(pool)
	bomRepo := postgres.NewBOMRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)
	genealogyRepo := postgres.NewGenealogyRepository(pool)
	txnRepo := postgres.NewInventoryTransactionRepository(pool)
	refRepo := postgres.NewReferenceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// En modo mirror el catálogo lee del maestro de productos externo con
	// fallback a la BD local; las escrituras quedan deshabilitadas.
	var catalogRepo repository.ItemRepository = itemRepo
	if cfg.Catalog.Mode == "mirror" {
		mirrorPool, err := postgres.NewPoolFromDSN(ctx, cfg.Catalog.MirrorURL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión al maestro de productos externo")
		}
		defer mirrorPool.Close()
		catalogRepo = mirror.NewCatalogRepository(postgres.NewItemRepository(mirrorPool), itemRepo, log)
	}

	catalogUC := catalog.NewUseCase(catalogRepo)
	bomUC := bom.NewUseCase(txRunner, catalogRepo, bomRepo)
	lotsUC := lots.NewUseCase(txRunner, catalogRepo, lotRepo, refRepo, txnRepo)
	genealogyUC := genealogy.NewUseCase(txRunner, lotRepo, genealogyRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Trazalote API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:   catalogUC,
		BOMUC:       bomUC,
		LotsUC:      lotsUC,
		GenealogyUC: genealogyUC,
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
