package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"customer-service/config"
	"customer-service/repository"
	"customer-service/routes"
	"customer-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, warnings, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()
	for _, w := range warnings {
		logger.Warn(w)
	}

	db, err := config.ConnectDB(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := config.CloseDB(db); err != nil {
			logger.Error("closing database", zap.Error(err))
		}
	}()

	customers := repository.NewCustomerRepository(db, logger)

	reports := services.NewReportService(customers, logger)
	if cfg.ReportSchedule != "" {
		if err := reports.Start(cfg.ReportSchedule); err != nil {
			return err
		}
	}

	gin.SetMode(gin.ReleaseMode)
	r := routes.SetupRouter(routes.Dependencies{
		Config:    cfg,
		Logger:    logger,
		Customers: customers,
	})
	printRoutes(r, logger)
	if cfg.AuthEnabled() {
		logger.Info("bearer token required on mutating routes")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}
	reports.Stop(shutdownCtx)
	return nil
}

func printRoutes(r *gin.Engine, logger *zap.Logger) {
	for _, route := range r.Routes() {
		logger.Debug("route", zap.String("method", route.Method), zap.String("path", route.Path))
	}
}
