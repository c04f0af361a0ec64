package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/iudanet/jobtracker/internal/models"
	"github.com/iudanet/jobtracker/internal/server/storage"
)

// ApplicationService manages job applications and their status history.
//
// Ownership failures surface as storage.ErrApplicationNotFound (possibly
// wrapped as storage.ErrNotOwner), identical to a missing application.
type ApplicationService struct {
	apps storage.ApplicationStorage
	now  func() time.Time
}

// NewApplicationService создает сервис откликов
func NewApplicationService(apps storage.ApplicationStorage, cfg Config) *ApplicationService {
	cfg = cfg.withDefaults()
	return &ApplicationService{apps: apps, now: cfg.Now}
}

// CreateApplication сохраняет отклик вместе с первой записью истории
func (s *ApplicationService) CreateApplication(ctx context.Context, userID int64, in models.NewApplication) (int64, error) {
	if strings.TrimSpace(in.JobTitle) == "" || strings.TrimSpace(in.CompanyName) == "" {
		return 0, fmt.Errorf("%w: job_title and company_name are required", ErrInvalidInput)
	}

	status := in.Status
	if status == "" {
		status = models.StatusApplied
	}
	if !status.IsValid() {
		return 0, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	source := in.Source
	if source == "" {
		source = models.DefaultSource
	}

	app := &models.JobApplication{
		UserID:          userID,
		JobTitle:        in.JobTitle,
		CompanyName:     in.CompanyName,
		JobURL:          in.JobURL,
		Notes:           in.Notes,
		SalaryRange:     in.SalaryRange,
		Location:        in.Location,
		EmploymentType:  in.EmploymentType,
		ExternalJobID:   in.ExternalJobID,
		Status:          status,
		Source:          source,
		ApplicationDate: s.now().UTC().Truncate(time.Second),
	}

	if err := s.apps.CreateApplication(ctx, app, models.InitialHistoryNote); err != nil {
		return 0, fmt.Errorf("failed to create application: %w", err)
	}

	return app.ID, nil
}

// ListApplications returns user's applications, newest first
func (s *ApplicationService) ListApplications(ctx context.Context, userID int64, status *models.ApplicationStatus) ([]models.JobApplication, error) {
	if status != nil && !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *status)
	}
	return s.apps.ListApplications(ctx, userID, status)
}

// GetApplication returns an application owned by userID
func (s *ApplicationService) GetApplication(ctx context.Context, id, userID int64) (*models.JobApplication, error) {
	return s.apps.GetApplication(ctx, id, userID)
}

// UpdateStatus меняет статус и дописывает запись в историю
func (s *ApplicationService) UpdateStatus(ctx context.Context, id, userID int64, status models.ApplicationStatus, notes *string) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	return s.apps.UpdateStatus(ctx, id, userID, status, notes, s.now().UTC().Truncate(time.Second))
}

// UpdateApplication applies a sparse update of the editable fields
func (s *ApplicationService) UpdateApplication(ctx context.Context, id, userID int64, update models.ApplicationUpdate) error {
	if update.JobTitle != nil && strings.TrimSpace(*update.JobTitle) == "" {
		return fmt.Errorf("%w: job_title cannot be empty", ErrInvalidInput)
	}
	if update.CompanyName != nil && strings.TrimSpace(*update.CompanyName) == "" {
		return fmt.Errorf("%w: company_name cannot be empty", ErrInvalidInput)
	}
	return s.apps.UpdateApplication(ctx, id, userID, update)
}

// DeleteApplication removes the application with its history
func (s *ApplicationService) DeleteApplication(ctx context.Context, id, userID int64) error {
	return s.apps.DeleteApplication(ctx, id, userID)
}

// GetHistory returns status history, newest first.
// Missing or foreign applications give an empty slice
func (s *ApplicationService) GetHistory(ctx context.Context, id, userID int64) ([]models.StatusHistory, error) {
	return s.apps.GetHistory(ctx, id, userID)
}

// GetStats считает агрегаты по откликам пользователя.
// Граница "этого месяца" - первое число текущего месяца по UTC
func (s *ApplicationService) GetStats(ctx context.Context, userID int64) (*models.Stats, error) {
	breakdown, err := s.apps.CountByStatus(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	thisMonth, err := s.apps.CountSince(ctx, userID, monthStart(s.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to count this month: %w", err)
	}

	total := 0
	for _, n := range breakdown {
		total += n
	}

	return &models.Stats{
		Total:           total,
		StatusBreakdown: breakdown,
		ThisMonth:       thisMonth,
		ResponseRate:    responseRate(breakdown, total),
	}, nil
}

// monthStart возвращает 00:00 первого числа месяца t по UTC
func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// responseRate - доля interviewing+accepted в процентах с точностью 0.1.
// Половины округляются к четному: 1 из 16 дает 6.2
func responseRate(breakdown map[models.ApplicationStatus]int, total int) float64 {
	responses := breakdown[models.StatusInterviewing] + breakdown[models.StatusAccepted]
	rate := float64(responses) / float64(max(total, 1)) * 100
	return math.RoundToEven(rate*10) / 10
}
