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

	"github.com/luismorales81/agrocloud-sub002/internal/application/agroquimico"
	"github.com/luismorales81/agrocloud-sub002/internal/application/auth"
	"github.com/luismorales81/agrocloud-sub002/internal/application/catalogo"
	"github.com/luismorales81/agrocloud-sub002/internal/application/inventory"
	applabor "github.com/luismorales81/agrocloud-sub002/internal/application/labor"
	applote "github.com/luismorales81/agrocloud-sub002/internal/application/lote"
	infrapdf "github.com/luismorales81/agrocloud-sub002/internal/infrastructure/pdf"
	"github.com/luismorales81/agrocloud-sub002/internal/infrastructure/postgres"
	httpRouter "github.com/luismorales81/agrocloud-sub002/internal/interfaces/http"
	"github.com/luismorales81/agrocloud-sub002/pkg/config"
	"github.com/luismorales81/agrocloud-sub002/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	insumoRepo := postgres.NewInsumoRepository(pool)
	movimientoRepo := postgres.NewMovimientoRepository(pool)
	laborRepo := postgres.NewLaborRepository(pool)
	loteRepo := postgres.NewLoteRepository(pool)
	dosisRepo := postgres.NewDosisRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := inventory.NewLedgerUseCase(txRunner, movimientoRepo, insumoRepo)
	insumoUC := catalogo.NewInsumoUseCase(insumoRepo, ledgerUC)
	dosisUC := catalogo.NewDosisUseCase(dosisRepo, insumoRepo)
	agroquimicoUC := agroquimico.NewUseCase(dosisRepo, insumoRepo, loteRepo, laborRepo)
	loteUC := applote.NewUseCase(loteRepo, log)
	laborUC := applabor.NewUseCase(
		txRunner, laborRepo, loteRepo, insumoRepo, dosisRepo,
		ledgerUC, loteUC, cfg.Engine.ToleranciaDesvioPct, log,
	)
	reporteUC := applabor.NewReporteUseCase(laborRepo, loteRepo, insumoRepo, infrapdf.NewLaborReportGenerator())
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
		Title:    "AgroCloud API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		InsumoUC:    insumoUC,
		DosisUC:     dosisUC,
		Agroquimico: agroquimicoUC,
		Ledger:      ledgerUC,
		LaborUC:     laborUC,
		ReporteUC:   reporteUC,
		LoteUC:      loteUC,
		JWTSecret:   cfg.JWT.Secret,
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
