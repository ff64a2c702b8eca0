package dashboard_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/hrms-lite/internal"
	"github.com/frahmantamala/hrms-lite/internal/dashboard"
	"github.com/frahmantamala/hrms-lite/internal/transport"
)

type MockServiceAPI struct {
	summary *dashboard.SummaryResponse
	err     error
}

func (m *MockServiceAPI) Summary(ctx context.Context) (*dashboard.SummaryResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}

var _ = Describe("Dashboard Handler", func() {
	var (
		mockService *MockServiceAPI
		router      *chi.Mux
	)

	BeforeEach(func() {
		mockService = &MockServiceAPI{}
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		handler := dashboard.NewHandler(transport.NewBaseHandler(lg), mockService)

		router = chi.NewRouter()
		router.Get("/dashboard/summary", handler.GetSummary)
	})

	It("should return 200 with the summary", func() {
		mockService.summary = &dashboard.SummaryResponse{
			TotalEmployees:         3,
			TotalPresentToday:      1,
			TotalAbsentToday:       1,
			TotalAttendanceRecords: 12,
			Today:                  "2026-08-30",
			Departments: []dashboard.DepartmentCount{
				{Department: "Engineering", Count: 2},
				{Department: "Sales", Count: 1},
			},
		}

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/summary", nil))

		Expect(rec.Code).To(Equal(http.StatusOK))

		var body dashboard.SummaryResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body.TotalEmployees).To(Equal(int64(3)))
		Expect(body.Departments).To(HaveLen(2))
		Expect(body.Departments[0].Department).To(Equal("Engineering"))
	})

	It("should return 503 when the store is unavailable", func() {
		mockService.err = internal.NewUnavailableError("Database not connected. Check MONGODB_URL configuration.", nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/summary", nil))

		Expect(rec.Code).To(Equal(http.StatusServiceUnavailable))
	})
})
