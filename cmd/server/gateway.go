package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Muhidiny/osen-whmcs-mpesa/internal/repository"
	"github.com/Muhidiny/osen-whmcs-mpesa/internal/service"
)

var gatewayCmd = &cobra.Command{
	Use:   "gateway",
	Short: "Inspect or toggle a gateway module",
}

func init() {
	gatewayCmd.AddCommand(
		gatewayToggleCmd("activate", "Activate a gateway module", true),
		gatewayToggleCmd("deactivate", "Deactivate a gateway module", false),
		&cobra.Command{
			Use:   "show [module]",
			Short: "Print a gateway module's settings",
			Args:  cobra.MaximumNArgs(1),
			RunE:  runGatewayShow,
		},
	)
}

func gatewayToggleCmd(use, short string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [module]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, module, err := gatewayService(args)
			if err != nil {
				return err
			}
			if err := svc.SetActive(context.Background(), module, active); err != nil {
				return fmt.Errorf("%s %s: %w", use, module, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: active=%t\n", module, active)
			return nil
		},
	}
}

func runGatewayShow(cmd *cobra.Command, args []string) error {
	svc, module, err := gatewayService(args)
	if err != nil {
		return err
	}
	params, err := svc.Variables(context.Background(), module)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "module: %s\nname:   %s\nactive: %t\n", module, params.Name, params.Active)

	keys := make([]string, 0, len(params.Settings))
	for k := range params.Settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "  %s = %s\n", k, params.Settings[k])
	}
	return nil
}

// gatewayService resolves the module argument, defaulting to the configured one.
func gatewayService(args []string) (*service.GatewayService, string, error) {
	cfg, _, err := bootstrap()
	if err != nil {
		return nil, "", err
	}
	db, err := openDB(cfg)
	if err != nil {
		return nil, "", err
	}
	module := cfg.Gateway.Module
	if len(args) == 1 {
		module = args[0]
	}
	return service.NewGatewayService(repository.NewGatewaySettingRepository(db), cfg.Gateway), module, nil
}
