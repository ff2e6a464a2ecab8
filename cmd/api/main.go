package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/staffdesk/api/internal/api"
	"github.com/staffdesk/api/internal/api/handlers"
	"github.com/staffdesk/api/internal/auth"
	"github.com/staffdesk/api/internal/repository"
	"github.com/staffdesk/api/internal/services"
	"github.com/staffdesk/api/internal/storage"
	"github.com/staffdesk/api/pkg/config"
	"github.com/staffdesk/api/pkg/database"
	"github.com/staffdesk/api/pkg/logger"

	// Generated swagger docs.
	_ "github.com/staffdesk/api/docs"
)

const version = "1.0.0"

// @title           StaffDesk Employee API
// @version         1.0
// @description     Employee records service with admin authentication, soft deletion and profile pictures.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg := config.MustLoad()

	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("starting staffdesk api",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)

	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	log.Info("database connected")

	files, err := storage.NewLocalStore(cfg.UploadDir, cfg.MaxUploadBytes())
	if err != nil {
		log.Fatal("failed to prepare upload directory", zap.Error(err))
	}

	adminRepo := repository.NewAdminRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)

	issuer := auth.NewIssuer([]byte(cfg.JWTSecret), cfg.JWTAccessTTL, cfg.JWTRefreshTTL, auth.NewRevocationSet())

	authSvc := services.NewAuthService(adminRepo, issuer)
	employeeSvc := services.NewEmployeeService(employeeRepo, files)

	router := api.NewRouter(api.Dependencies{
		Issuer:           issuer,
		Admins:           adminRepo,
		AuthHandler:      handlers.NewAuthHandler(authSvc, issuer),
		EmployeesHandler: handlers.NewEmployeesHandler(employeeSvc, cfg.MaxUploadBytes()),
		Version:          version,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
}
