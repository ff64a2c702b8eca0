package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"

	"github.com/frahmantamala/hrms-lite/internal"
	"github.com/frahmantamala/hrms-lite/internal/attendance"
	attendanceMongo "github.com/frahmantamala/hrms-lite/internal/attendance/mongodb"
	"github.com/frahmantamala/hrms-lite/internal/dashboard"
	dashboardMongo "github.com/frahmantamala/hrms-lite/internal/dashboard/mongodb"
	"github.com/frahmantamala/hrms-lite/internal/datastore"
	"github.com/frahmantamala/hrms-lite/internal/employee"
	employeeMongo "github.com/frahmantamala/hrms-lite/internal/employee/mongodb"
	"github.com/frahmantamala/hrms-lite/internal/transport"
	"github.com/frahmantamala/hrms-lite/internal/transport/rest"
	"github.com/frahmantamala/hrms-lite/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	Store  *datastore.Store
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.Store.Disconnect(ctx); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Format, config.Observability.Logging.Level)
	lg := logger.L()

	// A failed connect leaves the process up in a degraded state: health
	// stays observable and data operations answer with a typed
	// database-unavailable error until connectivity returns.
	store := datastore.New(config.Database, lg)
	ctx, cancel := internal.WithTimeout(context.Background(), config.Database.ConnectTimeout)
	defer cancel()
	if err := store.Connect(ctx); err != nil {
		lg.Error("mongodb connection failed, starting degraded", "error", err)
	}

	employeeRepo := employeeMongo.NewEmployeeRepository(store)
	attendanceRepo := attendanceMongo.NewAttendanceRepository(store)
	dashboardRepo := dashboardMongo.NewDashboardRepository(store)

	employeeService := employee.NewService(employeeRepo, attendanceRepo, lg)
	attendanceService := attendance.NewService(attendanceRepo, employeeRepo, lg)
	dashboardService := dashboard.NewService(dashboardRepo, lg)

	base := transport.NewBaseHandler(lg)
	employeeHandler := employee.NewHandler(base, employeeService)
	attendanceHandler := attendance.NewHandler(base, attendanceService)
	dashboardHandler := dashboard.NewHandler(base, dashboardService)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, store, config.Server.AllowedOrigins,
		employeeHandler, attendanceHandler, dashboardHandler, lg)

	return &Dependencies{
		Config: config,
		Store:  store,
		Router: router,
		Logger: lg,
	}, nil
}
