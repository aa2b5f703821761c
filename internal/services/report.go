package services

import (
	"context"

	"go.uber.org/zap"

	"company-system/internal/authz"
	"company-system/internal/entities"
	"company-system/internal/repositories"
)

type ReportServiceInterface interface {
	GetTaskReport(ctx context.Context, filter entities.TaskReportFilter) ([]entities.TaskReportRow, error)
}

type ReportService struct {
	reportRepo repositories.ReportRepositoryInterface
	userRepo   repositories.UserRepositoryInterface
	gatekeeper *authz.Gatekeeper
	logger     *zap.Logger
}

func NewReportService(
	reportRepo repositories.ReportRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	gatekeeper *authz.Gatekeeper,
	logger *zap.Logger,
) ReportServiceInterface {
	return &ReportService{
		reportRepo: reportRepo,
		userRepo:   userRepo,
		gatekeeper: gatekeeper,
		logger:     logger,
	}
}

// GetTaskReport — сводный отчёт по задачам, только для администратора.
func (s *ReportService) GetTaskReport(ctx context.Context, filter entities.TaskReportFilter) ([]entities.TaskReportRow, error) {
	actor, err := actorFromContext(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if err := s.gatekeeper.RequireCompanyAdmin(actor); err != nil {
		return nil, err
	}

	report, err := s.reportRepo.GetTaskReport(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка при формировании отчёта", zap.Error(err))
		return nil, err
	}
	return report, nil
}
