package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"qrattend/internal/auth"
	"qrattend/internal/config"
)

var kioskTokenCmd = &cobra.Command{
	Use:   "kiosk-token <kiosk-name>",
	Short: "Issue a bearer token for a kiosk client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		tok, exp, err := auth.IssueKioskToken(args[0], cfg.KioskIssuer, cfg.KioskSigningKey, cfg.KioskTokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", exp.Format("2006-01-02 15:04"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(kioskTokenCmd)
}
