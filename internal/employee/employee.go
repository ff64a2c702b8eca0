package employee

import (
	"time"

	employeeDatamodel "github.com/frahmantamala/hrms-lite/internal/core/datamodel/employee"
)

// Employee is the domain view of an employee record. EmployeeID is the
// stable business key; ID is the storage identifier and carries no business
// meaning.
type Employee struct {
	ID         string
	EmployeeID string
	FullName   string
	Email      string
	Department string
	CreatedAt  time.Time
}

func (e *Employee) ToResponse(present, absent int64) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		EmployeeID:   e.EmployeeID,
		FullName:     e.FullName,
		Email:        e.Email,
		Department:   e.Department,
		CreatedAt:    e.CreatedAt,
		TotalPresent: present,
		TotalAbsent:  absent,
	}
}

func FromDataModel(dm *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:         dm.ID.Hex(),
		EmployeeID: dm.EmployeeID,
		FullName:   dm.FullName,
		Email:      dm.Email,
		Department: dm.Department,
		CreatedAt:  dm.CreatedAt,
	}
}
