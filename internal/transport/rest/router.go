package rest

import (
	"log/slog"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/hrms-lite/internal/attendance"
	"github.com/frahmantamala/hrms-lite/internal/dashboard"
	"github.com/frahmantamala/hrms-lite/internal/employee"
	"github.com/frahmantamala/hrms-lite/internal/transport/middleware"
)

// RegisterAllRoutes wires the middleware stack and the API surface.
func RegisterAllRoutes(
	router *chi.Mux,
	store Pinger,
	allowedOrigins string,
	employeeHandler *employee.Handler,
	attendanceHandler *attendance.Handler,
	dashboardHandler *dashboard.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(store)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/", healthHandler.rootHandler)
	router.Get("/health", healthHandler.healthHandler)

	router.Route("/employees", func(r chi.Router) {
		r.Get("/", employeeHandler.ListEmployees)
		r.Post("/", employeeHandler.CreateEmployee)
		r.Get("/{id}", employeeHandler.GetEmployee)
		r.Delete("/{id}", employeeHandler.DeleteEmployee)
	})

	router.Route("/attendance", func(r chi.Router) {
		r.Get("/", attendanceHandler.ListAllAttendance)
		r.Post("/", attendanceHandler.MarkAttendance)
		r.Get("/{id}", attendanceHandler.ListEmployeeAttendance)
		r.Put("/{id}/{date}", attendanceHandler.UpdateAttendance)
	})

	router.Get("/dashboard/summary", dashboardHandler.GetSummary)
}
