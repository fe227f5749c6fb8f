package service

import (
	"context"
	"encoding/json"

	"github.com/Muhidiny/osen-whmcs-mpesa/internal/models"
	"github.com/Muhidiny/osen-whmcs-mpesa/internal/repository"
)

// EventGatewayLog is the event type published for each new log entry.
const EventGatewayLog = "gateway_log"

// LogPublisher receives every stored gateway log entry.
type LogPublisher interface {
	Publish(eventType string, payload interface{})
}

type GatewayLogService struct {
	repo      *repository.GatewayLogRepository
	publisher LogPublisher
}

// NewGatewayLogService returns the service; publisher may be nil.
func NewGatewayLogService(repo *repository.GatewayLogRepository, publisher LogPublisher) *GatewayLogService {
	return &GatewayLogService{repo: repo, publisher: publisher}
}

// LogTransaction stores data as JSON; strings are stored verbatim.
func (s *GatewayLogService) LogTransaction(ctx context.Context, gatewayName string, data interface{}, status string) error {
	var dataStr string
	switch d := data.(type) {
	case nil:
	case string:
		dataStr = d
	default:
		b, err := json.Marshal(d)
		if err != nil {
			return err
		}
		dataStr = string(b)
	}
	entry := &models.GatewayLog{
		Gateway: gatewayName,
		Data:    dataStr,
		Result:  status,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return err
	}
	if s.publisher != nil {
		s.publisher.Publish(EventGatewayLog, entry)
	}
	return nil
}

func (s *GatewayLogService) List(ctx context.Context, gateway string, page, limit int) ([]models.GatewayLog, int64, error) {
	return s.repo.List(ctx, gateway, page, limit)
}
