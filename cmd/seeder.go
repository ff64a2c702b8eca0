package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/hrms-lite/internal"
	"github.com/frahmantamala/hrms-lite/internal/attendance"
	attendanceMongo "github.com/frahmantamala/hrms-lite/internal/attendance/mongodb"
	"github.com/frahmantamala/hrms-lite/internal/core/common/validation"
	"github.com/frahmantamala/hrms-lite/internal/datastore"
	"github.com/frahmantamala/hrms-lite/internal/employee"
	employeeMongo "github.com/frahmantamala/hrms-lite/internal/employee/mongodb"
	"github.com/frahmantamala/hrms-lite/pkg/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample employees and attendance for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		lg := logger.L()
		store := datastore.New(cfg.Database, lg)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := store.Connect(ctx); err != nil {
			log.Fatalf("failed to connect: %v", err)
		}
		defer store.Disconnect(ctx)

		if clearData {
			db, err := store.Database()
			if err != nil {
				log.Fatalf("failed to get database handle: %v", err)
			}
			if err := db.Collection(datastore.CollectionAttendance).Drop(ctx); err != nil {
				log.Fatalf("failed to clear attendance: %v", err)
			}
			if err := db.Collection(datastore.CollectionEmployees).Drop(ctx); err != nil {
				log.Fatalf("failed to clear employees: %v", err)
			}
			fmt.Println("Cleared existing data")
			// collections were dropped together with their indexes
			if err := store.Disconnect(ctx); err != nil {
				log.Fatalf("failed to reset connection: %v", err)
			}
			if err := store.Connect(ctx); err != nil {
				log.Fatalf("failed to reconnect: %v", err)
			}
		}

		employeeRepo := employeeMongo.NewEmployeeRepository(store)
		attendanceRepo := attendanceMongo.NewAttendanceRepository(store)
		employeeService := employee.NewService(employeeRepo, attendanceRepo, lg)
		attendanceService := attendance.NewService(attendanceRepo, employeeRepo, lg)

		samples := []employee.CreateEmployeeDTO{
			{EmployeeID: "EMP001", FullName: "Ayu Lestari", Email: "ayu.lestari@mail.com", Department: "Engineering"},
			{EmployeeID: "EMP002", FullName: "Budi Santoso", Email: "budi.santoso@mail.com", Department: "Engineering"},
			{EmployeeID: "EMP003", FullName: "Citra Dewi", Email: "citra.dewi@mail.com", Department: "Sales"},
			{EmployeeID: "EMP004", FullName: "Dian Pratama", Email: "dian.pratama@mail.com", Department: "Human Resources"},
		}

		today := time.Now().Format(validation.DateLayout)
		statuses := []attendance.Status{attendance.StatusPresent, attendance.StatusAbsent, attendance.StatusPresent, attendance.StatusPresent}

		for i, dto := range samples {
			payload := dto
			if _, err := employeeService.Create(ctx, &payload); err != nil {
				if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeConflict {
					fmt.Printf("employee %s already exists, skipping\n", dto.EmployeeID)
					continue
				}
				log.Fatalf("failed to seed employee %s: %v", dto.EmployeeID, err)
			}
			fmt.Printf("Seeded employee %s (%s)\n", dto.EmployeeID, dto.FullName)

			mark := attendance.MarkAttendanceDTO{
				EmployeeID: dto.EmployeeID,
				Date:       today,
				Status:     string(statuses[i]),
			}
			if _, err := attendanceService.Mark(ctx, &mark); err != nil {
				if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeConflict {
					continue
				}
				log.Fatalf("failed to seed attendance for %s: %v", dto.EmployeeID, err)
			}
			fmt.Printf("Marked %s %s on %s\n", dto.EmployeeID, mark.Status, today)
		}
	},
}
