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

	"github.com/seu-usuario/pdv-fiscal/internal/application/fiscal"
	"github.com/seu-usuario/pdv-fiscal/internal/infrastructure/postgres"
	"github.com/seu-usuario/pdv-fiscal/internal/infrastructure/sefaz"
	httpRouter "github.com/seu-usuario/pdv-fiscal/internal/interfaces/http"
	"github.com/seu-usuario/pdv-fiscal/pkg/config"
	"github.com/seu-usuario/pdv-fiscal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	nfeRepo := postgres.NewNfeRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)
	configRepo := postgres.NewConfigGatewayRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	gateway := sefaz.NewRetryClient(
		sefaz.NewClient(cfg.Sefaz.BaseURL),
		cfg.Sefaz.Tentativas,
		cfg.Sefaz.EsperaRetry,
	)

	controller := fiscal.NewController(
		txRunner, nfeRepo, statsRepo, configRepo, gateway, log, cfg.Sefaz.Timeout,
	)

	// Varredor de reconciliação: resolve notas presas em PROCESSANDO.
	sweepCtx, sweepCancel := context.WithCancel(ctx)
	defer sweepCancel()
	if cfg.Sefaz.SweepAtivo {
		sweeper := fiscal.NewSweeper(controller, nfeRepo, log, cfg.Sefaz.SweepIntervalo)
		go sweeper.Run(sweepCtx)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PDV Fiscal API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Controller: controller,
		ConfigRepo: configRepo,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")
	sweepCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
