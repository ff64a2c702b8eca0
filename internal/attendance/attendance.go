package attendance

import (
	"time"

	attendanceDatamodel "github.com/frahmantamala/hrms-lite/internal/core/datamodel/attendance"
)

// Status is the closed attendance enumeration.
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

func (s Status) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// NormalizeStatusFilter returns the filter value when it names a valid
// status and the empty string otherwise. Query filters are deliberately
// lenient: an unrecognized status narrows nothing rather than failing the
// request.
func NormalizeStatusFilter(raw string) string {
	if Status(raw).Valid() {
		return raw
	}
	return ""
}

// Record is the domain view of a single per-day attendance mark. The
// (EmployeeID, Date) pair is the natural key.
type Record struct {
	ID         string
	EmployeeID string
	Date       string
	Status     Status
	CreatedAt  time.Time
}

func (rec *Record) ToResponse(employeeName string) AttendanceResponse {
	resp := AttendanceResponse{
		ID:         rec.ID,
		EmployeeID: rec.EmployeeID,
		Date:       rec.Date,
		Status:     string(rec.Status),
		CreatedAt:  rec.CreatedAt,
	}
	if employeeName != "" {
		resp.EmployeeName = &employeeName
	}
	return resp
}

func FromDataModel(dm *attendanceDatamodel.Attendance) *Record {
	return &Record{
		ID:         dm.ID.Hex(),
		EmployeeID: dm.EmployeeID,
		Date:       dm.Date,
		Status:     Status(dm.Status),
		CreatedAt:  dm.CreatedAt,
	}
}
