package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/hrms-lite/internal"
	attendanceDatamodel "github.com/frahmantamala/hrms-lite/internal/core/datamodel/attendance"
)

// Repository defines the data access methods for attendance records.
type Repository interface {
	Insert(ctx context.Context, record *attendanceDatamodel.Attendance) error
	GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*attendanceDatamodel.Attendance, error)
	// UpdateStatus atomically updates only the status of the record for
	// (employeeID, date) and returns the post-update document, or nil when
	// no record exists for that key.
	UpdateStatus(ctx context.Context, employeeID, date, status string) (*attendanceDatamodel.Attendance, error)
	ListForEmployee(ctx context.Context, employeeID, date, status string) ([]*attendanceDatamodel.Attendance, error)
	ListAll(ctx context.Context, date, status string) ([]*attendanceDatamodel.Attendance, error)
}

// EmployeeDirectory resolves employee display names and doubles as the
// referential existence check: it returns the employee not-found error for
// unknown ids.
type EmployeeDirectory interface {
	FullName(ctx context.Context, employeeID string) (string, error)
}

type Service struct {
	repo      Repository
	employees EmployeeDirectory
	logger    *slog.Logger
}

func NewService(repo Repository, employees EmployeeDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		employees: employees,
		logger:    logger,
	}
}

// Mark creates the single attendance record for (employee, date). Marking a
// day twice is a conflict, not an overwrite; the caller is directed to the
// update operation instead.
func (s *Service) Mark(ctx context.Context, dto *MarkAttendanceDTO) (*AttendanceResponse, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("attendance validation failed", "error", err)
		return nil, err
	}

	name, err := s.employees.FullName(ctx, dto.EmployeeID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmployeeAndDate(ctx, dto.EmployeeID, dto.Date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, internal.NewConflictError(
			fmt.Sprintf("Attendance already marked for employee '%s' on %s. Use update instead.", dto.EmployeeID, dto.Date),
			internal.ErrCodeAttendanceAlreadyMarked)
	}

	dm := &attendanceDatamodel.Attendance{
		EmployeeID: dto.EmployeeID,
		Date:       dto.Date,
		Status:     dto.Status,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, dm); err != nil {
		s.logger.Error("failed to insert attendance", "error", err, "employee_id", dto.EmployeeID, "date", dto.Date)
		return nil, err
	}

	s.logger.Info("attendance marked", "employee_id", dto.EmployeeID, "date", dto.Date, "status", dto.Status)

	resp := FromDataModel(dm).ToResponse(name)
	return &resp, nil
}

// Update changes the status of an existing record; created_at is immutable.
func (s *Service) Update(ctx context.Context, employeeID, date string, dto *UpdateAttendanceDTO) (*AttendanceResponse, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("attendance validation failed", "error", err)
		return nil, err
	}

	name, err := s.employees.FullName(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	dm, err := s.repo.UpdateStatus(ctx, employeeID, date, dto.Status)
	if err != nil {
		s.logger.Error("failed to update attendance", "error", err, "employee_id", employeeID, "date", date)
		return nil, err
	}
	if dm == nil {
		return nil, internal.ErrAttendanceNotFound
	}

	s.logger.Info("attendance updated", "employee_id", employeeID, "date", date, "status", dto.Status)

	resp := FromDataModel(dm).ToResponse(name)
	return &resp, nil
}

// ListForEmployee returns one employee's records, newest date first.
func (s *Service) ListForEmployee(ctx context.Context, employeeID string, filter ListFilter) ([]AttendanceResponse, error) {
	name, err := s.employees.FullName(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.ListForEmployee(ctx, employeeID, filter.Date, NormalizeStatusFilter(filter.Status))
	if err != nil {
		s.logger.Error("failed to list attendance", "error", err, "employee_id", employeeID)
		return nil, err
	}

	responses := make([]AttendanceResponse, 0, len(records))
	for _, dm := range records {
		responses = append(responses, FromDataModel(dm).ToResponse(name))
	}
	return responses, nil
}

// ListAll spans every employee, resolving each record's owner name
// individually. Acceptable at this scale; batching the lookups is the first
// thing to change if the dataset grows.
func (s *Service) ListAll(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error) {
	records, err := s.repo.ListAll(ctx, filter.Date, NormalizeStatusFilter(filter.Status))
	if err != nil {
		s.logger.Error("failed to list attendance", "error", err)
		return nil, err
	}

	responses := make([]AttendanceResponse, 0, len(records))
	for _, dm := range records {
		name, err := s.employees.FullName(ctx, dm.EmployeeID)
		if err != nil {
			if errors.Is(err, internal.ErrEmployeeNotFound) {
				// orphaned record from an interrupted cascade; surface
				// it with a null name rather than failing the listing
				name = ""
			} else {
				return nil, err
			}
		}
		responses = append(responses, FromDataModel(dm).ToResponse(name))
	}
	return responses, nil
}
