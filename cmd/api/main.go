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

	"github.com/dmorales/facturas-api/internal/application/auth"
	"github.com/dmorales/facturas-api/internal/application/billing"
	"github.com/dmorales/facturas-api/internal/application/usecase"
	infrapdf "github.com/dmorales/facturas-api/internal/infrastructure/pdf"
	"github.com/dmorales/facturas-api/internal/infrastructure/postgres"
	"github.com/dmorales/facturas-api/internal/infrastructure/ubl"
	httpRouter "github.com/dmorales/facturas-api/internal/interfaces/http"
	"github.com/dmorales/facturas-api/pkg/config"
	"github.com/dmorales/facturas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: "api",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)

	clientUC := billing.NewClientUseCase(clientRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	catalogUC := billing.NewCatalogUseCase(clientRepo, productRepo)
	generateInvoiceUC := billing.NewGenerateInvoiceUseCase(clientRepo, productRepo, invoiceRepo, log.Zerolog())
	invoiceQueryUC := billing.NewInvoiceQueryUseCase(invoiceRepo)

	// Exportación: PDF con maroto y XML con etree
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	xmlBuilder := ubl.NewXMLBuilderService()
	exportUC := billing.NewExportUseCase(invoiceRepo, pdfGenerator, xmlBuilder)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Facturas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ClientUC:        clientUC,
		ProductUC:       productUC,
		CatalogUC:       catalogUC,
		GenerateInvoice: generateInvoiceUC,
		InvoiceQuery:    invoiceQueryUC,
		ExportUC:        exportUC,
		AuthUC:          authUC,
		JWTSecret:       cfg.JWT.Secret,
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
