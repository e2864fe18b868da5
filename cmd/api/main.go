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

	"github.com/simplepro/simplepro-api/internal/application/auth"
	"github.com/simplepro/simplepro-api/internal/application/crm"
	"github.com/simplepro/simplepro-api/internal/application/scheduling"
	"github.com/simplepro/simplepro-api/internal/application/usecase"
	"github.com/simplepro/simplepro-api/internal/domain/repository"
	"github.com/simplepro/simplepro-api/internal/infrastructure/memory"
	"github.com/simplepro/simplepro-api/internal/infrastructure/redisstore"
	httpRouter "github.com/simplepro/simplepro-api/internal/interfaces/http"
	"github.com/simplepro/simplepro-api/pkg/config"
	"github.com/simplepro/simplepro-api/pkg/logger"
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

	// Snapshots por usuario en Redis. Sin REDIS_ADDR el estado vive solo en
	// memoria y se pierde al reiniciar.
	var snapshots repository.SnapshotStore
	if cfg.Redis.Addr != "" {
		store, err := redisstore.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer store.Close()
		snapshots = store
	} else {
		log.Warn().Msg("Redis no configurado: snapshots deshabilitados")
		snapshots = redisstore.Noop{}
	}

	customerRepo := memory.NewCustomerRepository()
	quoteRepo := memory.NewQuoteRepository()
	jobRepo := memory.NewJobRepository()

	sessionUC := auth.NewSessionUseCase(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration, log.Component("auth"))
	adminUC := auth.NewAdminUseCase(
		cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.SessionMinutes,
		cfg.JWT.Secret, cfg.JWT.Issuer, log.Component("admin"),
	)

	customerUC := crm.NewService(customerRepo, snapshots, sessionUC, memory.SampleCustomers, log.Component("crm"))
	quoteUC := scheduling.NewQuoteUseCase(quoteRepo, snapshots, sessionUC, memory.SampleQuotes, log.Component("quotes"))
	jobUC := scheduling.NewJobUseCase(jobRepo, quoteRepo, snapshots, sessionUC, memory.SampleJobs, log.Component("jobs"))
	businessUC := usecase.NewBusinessUseCase(sessionUC, snapshots, log.Component("business"))

	// Cada login inicializa estos stores para el usuario; cada logout los vacía.
	sessionUC.RegisterStore(customerUC)
	sessionUC.RegisterStore(quoteUC)
	sessionUC.RegisterStore(jobUC)
	sessionUC.RegisterStore(businessUC)

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
		Title:    "SimplePro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SessionUC:  sessionUC,
		AdminUC:    adminUC,
		CustomerUC: customerUC,
		QuoteUC:    quoteUC,
		JobUC:      jobUC,
		BusinessUC: businessUC,
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

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
