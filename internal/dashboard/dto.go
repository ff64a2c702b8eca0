package dashboard

// DepartmentCount is one row of the department breakdown, ordered by count
// descending.
type DepartmentCount struct {
	Department string `json:"department" bson:"_id"`
	Count      int64  `json:"count" bson:"count"`
}

// SummaryResponse aggregates the dashboard counts as of the current date.
type SummaryResponse struct {
	TotalEmployees         int64             `json:"total_employees"`
	TotalPresentToday      int64             `json:"total_present_today"`
	TotalAbsentToday       int64             `json:"total_absent_today"`
	TotalAttendanceRecords int64             `json:"total_attendance_records"`
	Today                  string            `json:"today"`
	Departments            []DepartmentCount `json:"departments"`
}
