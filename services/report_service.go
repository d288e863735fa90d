package services

import (
	"context"
	"fmt"
	"time"

	"customer-service/repository"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// AvailabilityReport is a point-in-time count of active and suspended customers.
type AvailabilityReport struct {
	Active    int64
	Suspended int64
	TakenAt   time.Time
}

func (r AvailabilityReport) Total() int64 {
	return r.Active + r.Suspended
}

// ReportService periodically logs how many customers are active and suspended.
type ReportService struct {
	repo    repository.CustomerRepository
	logger  *zap.Logger
	cron    *cron.Cron
	timeout time.Duration
}

func NewReportService(repo repository.CustomerRepository, logger *zap.Logger) *ReportService {
	return &ReportService{
		repo:    repo,
		logger:  logger.Named("report"),
		cron:    cron.New(),
		timeout: 30 * time.Second,
	}
}

// Start schedules the report with a standard cron expression or descriptor such as @hourly.
func (s *ReportService) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if _, err := s.Run(ctx); err != nil {
			s.logger.Error("availability report failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid report schedule %q: %w", schedule, err)
	}

	s.cron.Start()
	s.logger.Info("report scheduler started", zap.String("schedule", schedule))
	return nil
}

// Stop waits for a running report to finish or ctx to expire.
func (s *ReportService) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// Run takes and logs a report immediately.
func (s *ReportService) Run(ctx context.Context) (AvailabilityReport, error) {
	active, err := s.repo.CountByAvailability(ctx, true)
	if err != nil {
		return AvailabilityReport{}, fmt.Errorf("count active customers: %w", err)
	}
	suspended, err := s.repo.CountByAvailability(ctx, false)
	if err != nil {
		return AvailabilityReport{}, fmt.Errorf("count suspended customers: %w", err)
	}

	report := AvailabilityReport{Active: active, Suspended: suspended, TakenAt: time.Now()}
	s.logger.Info("customer availability",
		zap.Int64("active", report.Active),
		zap.Int64("suspended", report.Suspended),
		zap.Int64("total", report.Total()),
	)
	return report, nil
}
