package employee

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/hrms-lite/internal"
	employeeDatamodel "github.com/frahmantamala/hrms-lite/internal/core/datamodel/employee"
)

// Repository defines the data access methods for employees.
type Repository interface {
	GetAll(ctx context.Context) ([]*employeeDatamodel.Employee, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*employeeDatamodel.Employee, error)
	GetByEmail(ctx context.Context, email string) (*employeeDatamodel.Employee, error)
	Insert(ctx context.Context, employee *employeeDatamodel.Employee) error
	// DeleteCascade removes the employee document and every attendance
	// record referencing it, returning the number of attendance records
	// removed.
	DeleteCascade(ctx context.Context, employeeID string) (int64, error)
}

// AttendanceCounter reports per-employee attendance totals, used to enrich
// employee responses. Counts are issued as two separate count queries, which
// is acceptable for the bounded datasets this service targets.
type AttendanceCounter interface {
	Counts(ctx context.Context, employeeID string) (present, absent int64, err error)
}

type Service struct {
	repo       Repository
	attendance AttendanceCounter
	logger     *slog.Logger
}

func NewService(repo Repository, attendance AttendanceCounter, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		attendance: attendance,
		logger:     logger,
	}
}

// ListAll returns all employees ordered by creation time descending, each
// enriched with live attendance counts.
func (s *Service) ListAll(ctx context.Context) ([]EmployeeResponse, error) {
	dataEmployees, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, err
	}

	responses := make([]EmployeeResponse, 0, len(dataEmployees))
	for _, dm := range dataEmployees {
		resp, err := s.enrich(ctx, dm)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

func (s *Service) GetByID(ctx context.Context, employeeID string) (*EmployeeResponse, error) {
	dm, err := s.repo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		s.logger.Error("failed to get employee", "error", err, "employee_id", employeeID)
		return nil, err
	}
	if dm == nil {
		return nil, internal.ErrEmployeeNotFound
	}

	resp, err := s.enrich(ctx, dm)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Create validates the payload, checks employee_id uniqueness before email
// uniqueness (the id conflict takes precedence) and inserts the record. The
// pre-checks produce the descriptive conflict messages; the unique indexes
// remain the authoritative guard against concurrent creates.
func (s *Service) Create(ctx context.Context, dto *CreateEmployeeDTO) (*EmployeeResponse, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("employee validation failed", "error", err)
		return nil, err
	}

	existing, err := s.repo.GetByEmployeeID(ctx, dto.EmployeeID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, internal.NewConflictError(
			fmt.Sprintf("Employee ID '%s' already exists", dto.EmployeeID),
			internal.ErrCodeDuplicateEmployeeID)
	}

	existing, err = s.repo.GetByEmail(ctx, dto.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, internal.NewConflictError(
			fmt.Sprintf("Email '%s' is already registered", dto.Email),
			internal.ErrCodeDuplicateEmail)
	}

	dm := &employeeDatamodel.Employee{
		EmployeeID: dto.EmployeeID,
		FullName:   dto.FullName,
		Email:      dto.Email,
		Department: dto.Department,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, dm); err != nil {
		s.logger.Error("failed to insert employee", "error", err, "employee_id", dto.EmployeeID)
		return nil, err
	}

	s.logger.Info("employee created", "employee_id", dm.EmployeeID, "department", dm.Department)

	// a fresh employee cannot have attendance yet
	resp := FromDataModel(dm).ToResponse(0, 0)
	return &resp, nil
}

// Delete removes the employee and cascades to its attendance records.
func (s *Service) Delete(ctx context.Context, employeeID string) error {
	dm, err := s.repo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		s.logger.Error("failed to get employee for deletion", "error", err, "employee_id", employeeID)
		return err
	}
	if dm == nil {
		return internal.ErrEmployeeNotFound
	}

	removed, err := s.repo.DeleteCascade(ctx, employeeID)
	if err != nil {
		s.logger.Error("failed to delete employee", "error", err, "employee_id", employeeID)
		return err
	}

	s.logger.Info("employee deleted", "employee_id", employeeID, "attendance_records_removed", removed)
	return nil
}

func (s *Service) enrich(ctx context.Context, dm *employeeDatamodel.Employee) (EmployeeResponse, error) {
	present, absent, err := s.attendance.Counts(ctx, dm.EmployeeID)
	if err != nil {
		s.logger.Error("failed to count attendance", "error", err, "employee_id", dm.EmployeeID)
		return EmployeeResponse{}, err
	}
	return FromDataModel(dm).ToResponse(present, absent), nil
}
