package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/frahmantamala/hrms-lite/internal/datastore"
	"github.com/frahmantamala/hrms-lite/pkg/logger"
)

var (
	reconcileDryRun bool

	reconcileCmd = &cobra.Command{
		Use:   "reconcile",
		Short: "Remove orphaned attendance records",
		Long: `Sweep attendance records whose employee no longer exists. Orphans can
appear when an employee cascade delete is interrupted between its two steps
on deployments without multi-document transactions.`,
		RunE: runReconcile,
	}
)

func init() {
	reconcileCmd.Flags().BoolVar(&reconcileDryRun, "dry-run", false, "Report orphans without deleting them")
}

func runReconcile(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg := logger.L()
	store := datastore.New(cfg.Database, lg)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := store.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer store.Disconnect(ctx)

	db, err := store.Database()
	if err != nil {
		return err
	}

	employeeIDs, err := db.Collection(datastore.CollectionAttendance).Distinct(ctx, "employee_id", bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list attendance employee ids: %w", err)
	}

	var orphaned []string
	for _, raw := range employeeIDs {
		employeeID, ok := raw.(string)
		if !ok {
			continue
		}
		count, err := db.Collection(datastore.CollectionEmployees).CountDocuments(ctx, bson.M{"employee_id": employeeID})
		if err != nil {
			return fmt.Errorf("failed to check employee %s: %w", employeeID, err)
		}
		if count == 0 {
			orphaned = append(orphaned, employeeID)
		}
	}

	if len(orphaned) == 0 {
		fmt.Println("No orphaned attendance records found")
		return nil
	}

	if reconcileDryRun {
		for _, employeeID := range orphaned {
			fmt.Printf("Orphaned attendance for employee id '%s'\n", employeeID)
		}
		return nil
	}

	var removed int64
	for _, employeeID := range orphaned {
		result, err := db.Collection(datastore.CollectionAttendance).DeleteMany(ctx, bson.M{"employee_id": employeeID})
		if err != nil {
			return fmt.Errorf("failed to delete orphans for %s: %w", employeeID, err)
		}
		removed += result.DeletedCount
	}

	fmt.Printf("Removed %d orphaned attendance records for %d employee ids\n", removed, len(orphaned))
	return nil
}
