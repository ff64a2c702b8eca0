package attendance_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/hrms-lite/internal"
	"github.com/frahmantamala/hrms-lite/internal/attendance"
	"github.com/frahmantamala/hrms-lite/internal/transport"
)

// MockServiceAPI implements attendance.ServiceAPI with canned results.
type MockServiceAPI struct {
	markResult   *attendance.AttendanceResponse
	updateResult *attendance.AttendanceResponse
	listResult   []attendance.AttendanceResponse
	err          error
	lastFilter   attendance.ListFilter
	lastUpdate   struct {
		employeeID string
		date       string
		status     string
	}
}

func (m *MockServiceAPI) Mark(ctx context.Context, dto *attendance.MarkAttendanceDTO) (*attendance.AttendanceResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.markResult, nil
}

func (m *MockServiceAPI) Update(ctx context.Context, employeeID, date string, dto *attendance.UpdateAttendanceDTO) (*attendance.AttendanceResponse, error) {
	m.lastUpdate.employeeID = employeeID
	m.lastUpdate.date = date
	m.lastUpdate.status = dto.Status
	if m.err != nil {
		return nil, m.err
	}
	return m.updateResult, nil
}

func (m *MockServiceAPI) ListForEmployee(ctx context.Context, employeeID string, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
	m.lastFilter = filter
	if m.err != nil {
		return nil, m.err
	}
	return m.listResult, nil
}

func (m *MockServiceAPI) ListAll(ctx context.Context, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
	m.lastFilter = filter
	if m.err != nil {
		return nil, m.err
	}
	return m.listResult, nil
}

var _ = Describe("Attendance Handler", func() {
	var (
		mockService *MockServiceAPI
		router      *chi.Mux
	)

	sampleResponse := func() *attendance.AttendanceResponse {
		name := "Ayu Lestari"
		return &attendance.AttendanceResponse{
			ID:           "68b1c2d3e4f5a6b7c8d9e0f1",
			EmployeeID:   "EMP001",
			EmployeeName: &name,
			Date:         "2026-08-30",
			Status:       "Present",
			CreatedAt:    time.Now().UTC(),
		}
	}

	BeforeEach(func() {
		mockService = &MockServiceAPI{}
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		handler := attendance.NewHandler(transport.NewBaseHandler(lg), mockService)

		router = chi.NewRouter()
		router.Route("/attendance", func(r chi.Router) {
			r.Get("/", handler.ListAllAttendance)
			r.Post("/", handler.MarkAttendance)
			r.Get("/{id}", handler.ListEmployeeAttendance)
			r.Put("/{id}/{date}", handler.UpdateAttendance)
		})
	})

	Describe("POST /attendance", func() {
		It("should return 201 with the created record", func() {
			mockService.markResult = sampleResponse()

			payload, _ := json.Marshal(map[string]string{
				"employee_id": "EMP001",
				"date":        "2026-08-30",
				"status":      "Present",
			})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/attendance", bytes.NewReader(payload)))

			Expect(rec.Code).To(Equal(http.StatusCreated))

			var body attendance.AttendanceResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body.EmployeeName).NotTo(BeNil())
			Expect(*body.EmployeeName).To(Equal("Ayu Lestari"))
		})

		It("should return 409 for an already marked day", func() {
			mockService.err = internal.NewConflictError(
				"Attendance already marked for employee 'EMP001' on 2026-08-30. Use update instead.",
				internal.ErrCodeAttendanceAlreadyMarked)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/attendance",
				bytes.NewReader([]byte(`{"employee_id":"EMP001","date":"2026-08-30","status":"Absent"}`))))

			Expect(rec.Code).To(Equal(http.StatusConflict))
		})

		It("should return 404 for an unknown employee", func() {
			mockService.err = internal.ErrEmployeeNotFound

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/attendance",
				bytes.NewReader([]byte(`{"employee_id":"NOPE","date":"2026-08-30","status":"Present"}`))))

			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})

		It("should return 422 when validation fails", func() {
			mockService.err = internal.NewValidationError("Validation failed", internal.ErrCodeValidationFailed)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/attendance",
				bytes.NewReader([]byte(`{"employee_id":"EMP001","date":"bad","status":"Late"}`))))

			Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
		})

		It("should return 400 for a malformed body", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/attendance",
				bytes.NewReader([]byte("{not json"))))

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("PUT /attendance/{id}/{date}", func() {
		It("should pass the path key through and return 200", func() {
			mockService.updateResult = sampleResponse()

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/attendance/EMP001/2026-08-30",
				bytes.NewReader([]byte(`{"status":"Absent"}`))))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(mockService.lastUpdate.employeeID).To(Equal("EMP001"))
			Expect(mockService.lastUpdate.date).To(Equal("2026-08-30"))
			Expect(mockService.lastUpdate.status).To(Equal("Absent"))
		})

		It("should return 404 when no record exists for the key", func() {
			mockService.err = internal.ErrAttendanceNotFound

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/attendance/EMP001/2026-08-30",
				bytes.NewReader([]byte(`{"status":"Absent"}`))))

			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("GET /attendance", func() {
		It("should forward date and status query filters", func() {
			mockService.listResult = []attendance.AttendanceResponse{}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/attendance?date=2026-08-30&status=Present", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(mockService.lastFilter.Date).To(Equal("2026-08-30"))
			Expect(mockService.lastFilter.Status).To(Equal("Present"))
			Expect(rec.Body.String()).To(MatchJSON(`[]`))
		})
	})

	Describe("GET /attendance/{id}", func() {
		It("should return the employee's records", func() {
			mockService.listResult = []attendance.AttendanceResponse{*sampleResponse()}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/attendance/EMP001", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))

			var body []attendance.AttendanceResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body).To(HaveLen(1))
			Expect(body[0].EmployeeID).To(Equal("EMP001"))
		})

		It("should return 404 for an unknown employee", func() {
			mockService.err = internal.ErrEmployeeNotFound

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/attendance/NOPE", nil))

			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})
})
