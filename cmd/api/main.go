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

	"github.com/jhoicas/Iris-api/internal/application/ledger"
	"github.com/jhoicas/Iris-api/internal/application/settings"
	"github.com/jhoicas/Iris-api/internal/application/submission"
	infrairis "github.com/jhoicas/Iris-api/internal/infrastructure/iris"
	"github.com/jhoicas/Iris-api/internal/infrastructure/iris/mock"
	httpRouter "github.com/jhoicas/Iris-api/internal/interfaces/http"
	"github.com/jhoicas/Iris-api/pkg/config"
	"github.com/jhoicas/Iris-api/pkg/logger"
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
	log.Info("iniciando aplicación", map[string]any{
		"env":     cfg.App.Env,
		"app":     cfg.App.Name,
		"storage": cfg.Storage.Driver,
		"irisUrl": cfg.IRIS.BaseURL,
	}, "")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal(err, "inicializar almacenamiento")
	}
	defer store.Close()

	irisClient := infrairis.NewClient(infrairis.ConfigFrom(cfg.IRIS), log)
	ledgerSvc := ledger.NewService(store.Documents, store.Attempts)
	settingsUC := settings.NewUseCase(store.Sellers)
	submissionUC := submission.NewUseCase(store.Documents, store.Sellers, ledgerSvc, irisClient, log)

	// Un ciclo completo de envío corre dentro de la petición: el WriteTimeout debe cubrirlo.
	cycle := time.Duration(cfg.IRIS.MaxAttempts())*cfg.IRIS.RequestTimeout() +
		time.Duration(cfg.IRIS.RetryCount)*cfg.IRIS.RetryDelay()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cycle + time.Second*10,
		IdleTimeout:  time.Second * 60,
	})

	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "IRIS Portal API",
	}))

	// BFF simulado en el mismo proceso; IRIS_API_BASE_URL debe apuntar a /api/bff.
	if cfg.IRIS.EnableMock {
		mock.New().Register(app.Group("/api/bff"))
		log.Warn("backend IRIS simulado habilitado en /api/bff", nil, "")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:        cfg.App.Name,
		Settings:       settingsUC,
		Ledger:         ledgerSvc,
		Submission:     submissionUC,
		UpstreamHealth: irisClient.CheckHealth,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error("servidor HTTP finalizado", map[string]any{"error": err.Error()}, "")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("señal de apagado recibida, cerrando servidor...", nil, "")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("apagado del servidor", map[string]any{"error": err.Error()}, "")
	}
	log.Info("aplicación detenida", nil, "")
}
