package employee_test

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
	"github.com/frahmantamala/hrms-lite/internal/employee"
	"github.com/frahmantamala/hrms-lite/internal/transport"
)

// MockServiceAPI implements employee.ServiceAPI with canned results.
type MockServiceAPI struct {
	listResult   []employee.EmployeeResponse
	getResult    *employee.EmployeeResponse
	createResult *employee.EmployeeResponse
	err          error
	lastDTO      *employee.CreateEmployeeDTO
}

func (m *MockServiceAPI) ListAll(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return m.listResult, m.err
}

func (m *MockServiceAPI) GetByID(ctx context.Context, employeeID string) (*employee.EmployeeResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.getResult, nil
}

func (m *MockServiceAPI) Create(ctx context.Context, dto *employee.CreateEmployeeDTO) (*employee.EmployeeResponse, error) {
	m.lastDTO = dto
	if m.err != nil {
		return nil, m.err
	}
	return m.createResult, nil
}

func (m *MockServiceAPI) Delete(ctx context.Context, employeeID string) error {
	return m.err
}

var _ = Describe("Employee Handler", func() {
	var (
		mockService *MockServiceAPI
		router      *chi.Mux
	)

	sampleResponse := func() *employee.EmployeeResponse {
		return &employee.EmployeeResponse{
			ID:         "68b1c2d3e4f5a6b7c8d9e0f1",
			EmployeeID: "EMP001",
			FullName:   "Ayu Lestari",
			Email:      "ayu@mail.com",
			Department: "Engineering",
			CreatedAt:  time.Now().UTC(),
		}
	}

	BeforeEach(func() {
		mockService = &MockServiceAPI{}
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		handler := employee.NewHandler(transport.NewBaseHandler(lg), mockService)

		router = chi.NewRouter()
		router.Route("/employees", func(r chi.Router) {
			r.Get("/", handler.ListEmployees)
			r.Post("/", handler.CreateEmployee)
			r.Get("/{id}", handler.GetEmployee)
			r.Delete("/{id}", handler.DeleteEmployee)
		})
	})

	Describe("GET /employees", func() {
		It("should return 200 with an empty array when no employees exist", func() {
			mockService.listResult = []employee.EmployeeResponse{}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(MatchJSON(`[]`))
		})

		It("should return 503 when the store is unavailable", func() {
			mockService.err = internal.NewUnavailableError("Database not connected. Check MONGODB_URL configuration.", nil)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees", nil))

			Expect(rec.Code).To(Equal(http.StatusServiceUnavailable))

			var body map[string]map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body["error"]["message"]).To(ContainSubstring("Database not connected"))
			Expect(body["error"]["type"]).To(Equal("DATABASE_UNAVAILABLE"))
		})
	})

	Describe("GET /employees/{id}", func() {
		It("should return 200 with the employee", func() {
			mockService.getResult = sampleResponse()

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees/EMP001", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))

			var body employee.EmployeeResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body.EmployeeID).To(Equal("EMP001"))
			Expect(body.FullName).To(Equal("Ayu Lestari"))
		})

		It("should return 404 for an unknown employee", func() {
			mockService.err = internal.ErrEmployeeNotFound

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees/NOPE", nil))

			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("POST /employees", func() {
		It("should return 201 with the created employee", func() {
			mockService.createResult = sampleResponse()

			payload, _ := json.Marshal(map[string]string{
				"employee_id": "EMP001",
				"full_name":   "Ayu Lestari",
				"email":       "ayu@mail.com",
				"department":  "Engineering",
			})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/employees", bytes.NewReader(payload)))

			Expect(rec.Code).To(Equal(http.StatusCreated))
			Expect(mockService.lastDTO.EmployeeID).To(Equal("EMP001"))
		})

		It("should return 400 for a malformed body", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/employees", bytes.NewReader([]byte("{not json"))))

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 422 when validation fails", func() {
			mockService.err = internal.NewValidationError("Validation failed", internal.ErrCodeValidationFailed)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/employees", bytes.NewReader([]byte(`{"employee_id":""}`))))

			Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
		})

		It("should return 409 for a duplicate employee id", func() {
			mockService.err = internal.NewConflictError("Employee ID 'EMP001' already exists", internal.ErrCodeDuplicateEmployeeID)

			payload, _ := json.Marshal(map[string]string{
				"employee_id": "EMP001",
				"full_name":   "Ayu Lestari",
				"email":       "ayu@mail.com",
				"department":  "Engineering",
			})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/employees", bytes.NewReader(payload)))

			Expect(rec.Code).To(Equal(http.StatusConflict))

			var body map[string]map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body["error"]["message"]).To(Equal("Employee ID 'EMP001' already exists"))
			Expect(body["error"]["code"]).To(Equal("DUPLICATE_EMPLOYEE_ID"))
		})
	})

	Describe("DELETE /employees/{id}", func() {
		It("should return 200 with a confirmation message", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/employees/EMP001", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))

			var body employee.MessageResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Message).To(Equal("Employee 'EMP001' deleted successfully"))
		})

		It("should return 404 for an unknown employee", func() {
			mockService.err = internal.ErrEmployeeNotFound

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/employees/NOPE", nil))

			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})
})
