package service

import (
	"context"

	"github.com/Muhidiny/osen-whmcs-mpesa/config"
	"github.com/Muhidiny/osen-whmcs-mpesa/internal/callback"
	"github.com/Muhidiny/osen-whmcs-mpesa/internal/domain"
	"github.com/Muhidiny/osen-whmcs-mpesa/internal/repository"
)

// GatewayService resolves gateway module settings. Settings are read on
// every call so activation changes apply without a restart.
type GatewayService struct {
	repo     *repository.GatewaySettingRepository
	defaults config.GatewayConfig
}

func NewGatewayService(repo *repository.GatewaySettingRepository, defaults config.GatewayConfig) *GatewayService {
	return &GatewayService{repo: repo, defaults: defaults}
}

func (s *GatewayService) Variables(ctx context.Context, module string) (callback.GatewayParams, error) {
	vars, err := s.repo.Variables(ctx, module)
	if err != nil {
		return callback.GatewayParams{}, err
	}
	name := vars[domain.GatewaySettingName]
	if name == "" {
		name = module
	}
	return callback.GatewayParams{
		Name:     name,
		Active:   vars[domain.GatewaySettingType] != "",
		Settings: vars,
	}, nil
}

// SetActive activates module by writing its type (and display name if
// missing), or deactivates it by removing the type setting.
func (s *GatewayService) SetActive(ctx context.Context, module string, active bool) error {
	if !active {
		return s.repo.Delete(ctx, module, domain.GatewaySettingType)
	}
	gatewayType := s.defaults.Type
	if gatewayType == "" {
		gatewayType = "Invoices"
	}
	if err := s.repo.Set(ctx, module, domain.GatewaySettingType, gatewayType); err != nil {
		return err
	}
	displayName := module
	if module == s.defaults.Module && s.defaults.DisplayName != "" {
		displayName = s.defaults.DisplayName
	}
	return s.repo.SeedDefaults(ctx, module, map[string]string{domain.GatewaySettingName: displayName})
}
