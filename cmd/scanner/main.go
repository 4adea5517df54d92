package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"qrattend/internal/app"
	"qrattend/internal/config"
	"qrattend/internal/scan"
)

var rootCmd = &cobra.Command{
	Use:          "qrattend",
	Short:        "Scan student QR codes and log attendance to Google Sheets",
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// build assembles the runtime from the environment. Submissions are bound to
// ctx, so the caller must Close the app before cancelling it.
func build(ctx context.Context, scanner scan.Scanner) (*app.App, error) {
	return app.Build(ctx, config.Load(), scanner, log.Default())
}

func closeApp(a *app.App) {
	if err := a.Close(); err != nil {
		log.Printf("close: %v", err)
	}
}
