package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"qrattend/internal/scan"
)

var cameraOnce bool

var cameraCmd = &cobra.Command{
	Use:   "camera",
	Short: "Read codes from a keyboard-wedge scanner on stdin",
	Long: `Reads one decoded code per line from standard input, as sent by
USB and Bluetooth handheld scanners. An empty line cancels the current scan.`,
	RunE: runCamera,
}

func init() {
	cameraCmd.Flags().BoolVar(&cameraOnce, "once", false, "stop after the first scan attempt")
	rootCmd.AddCommand(cameraCmd)
}

func runCamera(cmd *cobra.Command, _ []string) error {
	ctx, stop := signalContext()
	defer stop()

	a, err := build(context.Background(), scan.NewLineScanner(os.Stdin))
	if err != nil {
		return err
	}
	defer closeApp(a)

	fmt.Fprintln(cmd.OutOrStdout(), "Ready to scan. Ctrl+C to quit.")
	for {
		ticket, err := a.Orchestrator.ScanCamera(ctx)
		switch {
		case errors.Is(err, io.EOF), ctx.Err() != nil:
			return nil
		case err == nil:
			fmt.Fprintf(cmd.OutOrStdout(), "queued %s: %s, %s\n",
				ticket.ScanID, ticket.Row.StudentID, ticket.Row.StudentName)
		}
		if cameraOnce {
			return err
		}
	}
}
