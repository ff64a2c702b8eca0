package attendance

import (
	"strings"
	"time"

	"github.com/frahmantamala/hrms-lite/internal/core/common/validation"
)

// MarkAttendanceDTO is the request payload for marking attendance.
type MarkAttendanceDTO struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

func (dto *MarkAttendanceDTO) Validate() error {
	dto.EmployeeID = strings.TrimSpace(dto.EmployeeID)
	dto.Date = strings.TrimSpace(dto.Date)

	v := validation.NewValidator()
	v.Field("employee_id", dto.EmployeeID).Required()
	v.Field("date", dto.Date).Required().Date()
	v.Field("status", dto.Status).Required().OneOf(string(StatusPresent), string(StatusAbsent))

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateAttendanceDTO carries the only mutable attendance field.
type UpdateAttendanceDTO struct {
	Status string `json:"status"`
}

func (dto *UpdateAttendanceDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("status", dto.Status).Required().OneOf(string(StatusPresent), string(StatusAbsent))

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// ListFilter narrows attendance queries. Date is matched exactly; Status is
// normalized leniently before use.
type ListFilter struct {
	Date   string
	Status string
}

// AttendanceResponse carries a record enriched with the owning employee's
// display name. The name is null when the employee cannot be resolved.
type AttendanceResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName *string   `json:"employee_name"`
	Date         string    `json:"date"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
