// @title        Gestionale Magazzino API
// @version      1.0
// @description  Anagrafica articoli, movimenti di magazzino, ordini fornitore.
// @BasePath     /
// @securityDefinitions.basic  BasicAuth
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jhoicas/magazzino-api/docs"
	"github.com/jhoicas/magazzino-api/internal/application/inventory"
	"github.com/jhoicas/magazzino-api/internal/application/purchasing"
	"github.com/jhoicas/magazzino-api/internal/application/usecase"
	"github.com/jhoicas/magazzino-api/internal/domain/repository"
	"github.com/jhoicas/magazzino-api/internal/infrastructure/cache"
	"github.com/jhoicas/magazzino-api/internal/infrastructure/jsonfile"
	"github.com/jhoicas/magazzino-api/internal/infrastructure/mail"
	infrapdf "github.com/jhoicas/magazzino-api/internal/infrastructure/pdf"
	"github.com/jhoicas/magazzino-api/internal/infrastructure/postgres"
	"github.com/jhoicas/magazzino-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/magazzino-api/internal/interfaces/http"
	"github.com/jhoicas/magazzino-api/pkg/config"
	"github.com/jhoicas/magazzino-api/pkg/logger"
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
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Persistencia: archivos JSON (por defecto) o PostgreSQL.
	var (
		txRunner  inventory.TxRunner
		itemRepo  repository.ItemRepository
		movRepo   repository.MovementRepository
		orderRepo repository.OrderRepository
	)
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("crear esquema")
		}
		txRunner = postgres.NewTxRunner(pool)
		itemRepo = postgres.NewItemRepository(pool)
		movRepo = postgres.NewMovementRepository(pool)
		orderRepo = postgres.NewOrderRepository(pool)
	default:
		store, err := jsonfile.Open(cfg.Storage.DataDir, jsonfile.Options{MigrateItems: cfg.Storage.MigrateItems})
		if err != nil {
			log.Fatal().Err(err).Str("dir", cfg.Storage.DataDir).Msg("abrir almacén JSON")
		}
		txRunner = store
		itemRepo = store.Items()
		movRepo = store.Movements()
		orderRepo = store.Orders()
	}

	// Caché opcional de la vista de almacén; toda escritura la invalida.
	var viewCache inventory.ViewCache = inventory.NoopViewCache{}
	if cfg.Redis.URL != "" {
		rdb, err := cache.NewRedis(ctx, cfg.Redis.URL)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, vista de almacén sin caché")
		} else {
			defer rdb.Close()
			viewCache = cache.NewRedisViewCache(rdb, cfg.Redis.TTL, log.Component("cache"))
		}
	}
	txRunner = inventory.WithViewInvalidation(txRunner, viewCache)

	var images usecase.ImageStore
	if cfg.MinIO.Endpoint != "" {
		store, err := storage.NewMinioImageStore(ctx, storage.Config{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			Bucket:    cfg.MinIO.Bucket,
			UseSSL:    cfg.MinIO.UseSSL,
			PublicURL: cfg.MinIO.PublicURL,
		})
		if err != nil {
			log.Warn().Err(err).Msg("MinIO no disponible, subida de imágenes deshabilitada")
		} else {
			images = store
		}
	}

	var notifier purchasing.SupplierNotifier
	if cfg.SMTP.Host != "" {
		notifier = mail.NewMailer(mail.Config{
			Host:      cfg.SMTP.Host,
			Port:      cfg.SMTP.Port,
			User:      cfg.SMTP.User,
			Password:  cfg.SMTP.Password,
			From:      cfg.SMTP.From,
			Suppliers: mail.ParseSupplierEmails(cfg.SMTP.SupplierEmails),
		})
	}

	itemUC := usecase.NewItemUseCase(txRunner, itemRepo, images)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, movRepo)
	warehouseViewUC := inventory.NewWarehouseViewUseCase(itemRepo, movRepo, viewCache)
	orderUC := purchasing.NewOrderUseCase(
		txRunner, orderRepo, itemRepo,
		infrapdf.NewMarotoPDFGenerator(cfg.App.Name), notifier, log.Component("purchasing"),
	)
	log.Info().
		Bool("images", itemUC.ImagesEnabled()).
		Bool("supplier_mail", notifier != nil).
		Bool("webhook", cfg.Webhook.CICSecret != "").
		Bool("basic_auth", cfg.Auth.User != "").
		Msg("módulos opcionales")

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    10 * 1024 * 1024,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigin,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + httpRouter.SignatureHeader,
		AllowMethods: "GET,POST,PATCH,OPTIONS",
	}))

	// Swagger UI: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Web.DocsPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Web.DocsPath,
			Path:     "docs",
			Title:    "Gestionale Magazzino API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:           itemUC,
		RegisterMovement: registerMovementUC,
		WarehouseView:    warehouseViewUC,
		OrderUC:          orderUC,
		BasicAuth: httpRouter.BasicAuthConfig{
			User:         cfg.Auth.User,
			Password:     cfg.Auth.Password,
			PasswordHash: cfg.Auth.PasswordHash,
		},
		WebhookSecret: cfg.Webhook.CICSecret,
		WebDistPath:   cfg.Web.DistPath,
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
