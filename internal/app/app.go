// Package app wires configuration into a ready scan orchestrator.
package app

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"qrattend/internal/auth"
	"qrattend/internal/config"
	"qrattend/internal/decode"
	"qrattend/internal/device"
	"qrattend/internal/metrics"
	"qrattend/internal/notify"
	"qrattend/internal/scan"
	"qrattend/internal/sheets"
)

// App is the assembled runtime shared by the CLI and the kiosk server.
type App struct {
	Config       config.App
	Orchestrator *scan.Orchestrator
	Registry     *prometheus.Registry
	// Redis is nil when REDIS_ADDR is unset.
	Redis *notify.Redis
}

// Build validates cfg and wires the submission chain. ctx bounds background
// submissions; scanner may be nil when no camera-class input is attached.
func Build(ctx context.Context, cfg config.App, scanner scan.Scanner, logger *log.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	assets := os.DirFS(cfg.AssetsDir)
	submitter := sheets.NewService(
		assets,
		cfg.CredentialsFile,
		auth.NewSigner(cfg.TokenURL, cfg.SheetsScope),
		auth.NewExchanger(cfg.TokenURL, httpClient),
		sheets.NewClient(cfg.SheetsBaseURL, cfg.SpreadsheetID, cfg.SheetName, httpClient),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	notifiers := notify.Multi{notify.Log{Logger: logger}}
	var rdb *notify.Redis
	if cfg.RedisAddr != "" {
		rdb = notify.NewRedis(cfg.RedisAddr, cfg.NotifyChannel)
		if !rdb.Healthy(ctx) {
			log.Printf("warning: redis not reachable at %s, notifications stay local until it is", cfg.RedisAddr)
		}
		notifiers = append(notifiers, rdb)
	}

	orch := scan.New(scan.Options{
		Context:   ctx,
		Scanner:   scanner,
		Decoder:   decode.NewDecoder(),
		Submitter: submitter,
		Notifier:  notifiers,
		Metrics:   metrics.New(reg),
		Assets:    assets,
		TestImage: cfg.TestImageFile,
		DeviceMAC: device.Lookup{Interface: cfg.DeviceInterface}.MAC,
	})

	return &App{Config: cfg, Orchestrator: orch, Registry: reg, Redis: rdb}, nil
}

// Close waits for in-flight submissions and releases connections.
func (a *App) Close() error {
	a.Orchestrator.Wait()
	return a.Redis.Close()
}
