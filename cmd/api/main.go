package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rgdevment/scam-scanner/internal/app"
	httpHandler "github.com/rgdevment/scam-scanner/internal/platform/http"
	"github.com/rgdevment/scam-scanner/internal/platform/config"
	"github.com/rgdevment/scam-scanner/internal/platform/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	cfg, err := config.Load(os.Getenv("SCAMSCAN_CONFIG"))
	if err != nil {
		log.Fatalf("❌ Config: %v", err)
	}
	if err := cfg.ValidateServer(); err != nil {
		log.Fatalf("❌ Config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("❌ Logger: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zl.Info("starting scam scanner api", zap.String("environment", cfg.Environment))

	a, err := app.Build(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("startup failed", zap.Error(err))
	}
	defer a.Close()

	handler := httpHandler.NewHandler(a.Service, zl)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           httpHandler.NewRouter(handler, cfg.Server.APIKey, a.Metrics, zl),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	go func() {
		zl.Info("listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Error("http server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
		return
	}
	zl.Info("server stopped")
}
