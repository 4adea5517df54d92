package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"qrattend/internal/app"
	"qrattend/internal/config"
	"qrattend/internal/kiosk"
)

func main() {
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	// Submissions outlive the request that triggered them; they are bound to
	// the process instead and drained on shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := app.Build(ctx, cfg, nil, log.Default())
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Printf("close: %v", err)
		}
	}()

	r := kiosk.NewRouter(kiosk.Options{
		Orchestrator: a.Orchestrator,
		Gatherer:     a.Registry,
		SigningKey:   cfg.KioskSigningKey,
		Issuer:       cfg.KioskIssuer,
		RatePerMin:   cfg.RateLimitPerMin,
		Healthy: func(c *gin.Context) gin.H {
			if a.Redis == nil {
				return nil
			}
			return gin.H{"redis": a.Redis.Healthy(c.Request.Context())}
		},
	})

	// Graceful shutdown
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting kiosk server on :%s (sheet %q)", cfg.HTTPPort, cfg.SheetName)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited, waiting for pending submissions")
	return nil
}
