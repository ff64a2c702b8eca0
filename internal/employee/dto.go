package employee

import (
	"strings"
	"time"

	"github.com/frahmantamala/hrms-lite/internal/core/common/validation"
)

// CreateEmployeeDTO is the request payload for creating an employee.
type CreateEmployeeDTO struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// Validate normalizes the payload (trimming surrounding whitespace) and
// checks the employee field constraints.
func (dto *CreateEmployeeDTO) Validate() error {
	dto.EmployeeID = strings.TrimSpace(dto.EmployeeID)
	dto.FullName = strings.TrimSpace(dto.FullName)
	dto.Email = strings.TrimSpace(dto.Email)
	dto.Department = strings.TrimSpace(dto.Department)

	v := validation.NewValidator()
	v.Field("employee_id", dto.EmployeeID).Required()
	v.Field("full_name", dto.FullName).Required()
	v.Field("email", dto.Email).Required().Email()
	v.Field("department", dto.Department).Required()

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// EmployeeResponse carries an employee enriched with live attendance counts.
type EmployeeResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Department   string    `json:"department"`
	CreatedAt    time.Time `json:"created_at"`
	TotalPresent int64     `json:"total_present"`
	TotalAbsent  int64     `json:"total_absent"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
