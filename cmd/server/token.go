package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Muhidiny/osen-whmcs-mpesa/internal/auth"
	"github.com/Muhidiny/osen-whmcs-mpesa/internal/domain"
)

var tokenSubject string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an admin access token for the admin API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := bootstrap()
		if err != nil {
			return err
		}
		tok, err := auth.GenerateAccessToken(&cfg.JWT, tokenSubject, domain.RoleAdmin)
		if err != nil {
			return fmt.Errorf("token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "token subject (operator name)")
	_ = tokenCmd.MarkFlagRequired("subject")
}
