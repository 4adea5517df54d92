package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var fileCmd = &cobra.Command{
	Use:   "file [path]",
	Short: "Decode a QR image from the assets directory",
	Long:  "Decodes the given image, relative to ASSETS_DIR. Without a path the bundled test image is used.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}

		a, err := build(context.Background(), nil)
		if err != nil {
			return err
		}
		defer closeApp(a)

		ticket, err := a.Orchestrator.ScanFile(cmd.Context(), path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "queued %s: %v\n", ticket.ScanID, ticket.Row.Values())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fileCmd)
}
