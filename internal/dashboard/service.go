package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/hrms-lite/internal/attendance"
	"github.com/frahmantamala/hrms-lite/internal/core/common/validation"
)

// Repository defines the cross-collection counting queries behind the
// dashboard.
type Repository interface {
	CountEmployees(ctx context.Context) (int64, error)
	// CountAttendance counts records matching the optional date and status
	// filters; empty values match everything.
	CountAttendance(ctx context.Context, date, status string) (int64, error)
	DepartmentBreakdown(ctx context.Context) ([]DepartmentCount, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Summary recomputes every count from the live store; nothing is cached.
func (s *Service) Summary(ctx context.Context) (*SummaryResponse, error) {
	today := time.Now().Format(validation.DateLayout)

	totalEmployees, err := s.repo.CountEmployees(ctx)
	if err != nil {
		s.logger.Error("failed to count employees", "error", err)
		return nil, err
	}

	presentToday, err := s.repo.CountAttendance(ctx, today, string(attendance.StatusPresent))
	if err != nil {
		s.logger.Error("failed to count present attendance", "error", err)
		return nil, err
	}

	absentToday, err := s.repo.CountAttendance(ctx, today, string(attendance.StatusAbsent))
	if err != nil {
		s.logger.Error("failed to count absent attendance", "error", err)
		return nil, err
	}

	totalRecords, err := s.repo.CountAttendance(ctx, "", "")
	if err != nil {
		s.logger.Error("failed to count attendance records", "error", err)
		return nil, err
	}

	departments, err := s.repo.DepartmentBreakdown(ctx)
	if err != nil {
		s.logger.Error("failed to aggregate departments", "error", err)
		return nil, err
	}

	return &SummaryResponse{
		TotalEmployees:         totalEmployees,
		TotalPresentToday:      presentToday,
		TotalAbsentToday:       absentToday,
		TotalAttendanceRecords: totalRecords,
		Today:                  today,
		Departments:            departments,
	}, nil
}
