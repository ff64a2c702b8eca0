package datastore

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/frahmantamala/hrms-lite/internal"
)

const (
	CollectionEmployees  = "employees"
	CollectionAttendance = "attendance"
)

// Store owns the mongo client lifecycle. A single Store is created by the
// composition root and shared process-wide; repositories receive the
// database handle through it instead of touching global state.
type Store struct {
	cfg    internal.DatabaseConfig
	logger *slog.Logger

	client *mongo.Client
	db     *mongo.Database
}

func New(cfg internal.DatabaseConfig, logger *slog.Logger) *Store {
	return &Store{cfg: cfg, logger: logger}
}

// Connect establishes the client, verifies liveness with a ping and
// provisions the unique indexes. A failure leaves the store disconnected;
// callers are expected to log and continue so the process can start in a
// degraded state while orchestration retries connectivity.
func (s *Store) Connect(ctx context.Context) error {
	opts := options.Client().
		ApplyURI(s.cfg.URI).
		SetConnectTimeout(s.cfg.ConnectTimeout).
		SetServerSelectionTimeout(s.cfg.ServerSelectionTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(s.cfg.Name)
	if err := ensureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("ensure indexes: %w", err)
	}

	s.client = client
	s.db = db
	s.logger.Info("connected to mongodb", "database", s.cfg.Name)
	return nil
}

func (s *Store) Disconnect(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	err := s.client.Disconnect(ctx)
	s.client = nil
	s.db = nil
	if err != nil {
		return fmt.Errorf("disconnect from mongodb: %w", err)
	}
	s.logger.Info("disconnected from mongodb")
	return nil
}

// Database returns the active handle, or a typed unavailable error when
// Connect has not succeeded yet.
func (s *Store) Database() (*mongo.Database, error) {
	if s.db == nil {
		return nil, internal.NewUnavailableError("Database not connected. Check MONGODB_URL configuration.", nil)
	}
	return s.db, nil
}

// Ping reports current store reachability, for readiness checks.
func (s *Store) Ping(ctx context.Context) error {
	if s.client == nil {
		return internal.NewUnavailableError("Database not connected. Check MONGODB_URL configuration.", nil)
	}
	return s.client.Ping(ctx, readpref.Primary())
}

// IsDuplicateKey reports whether err is a unique-index violation. The index
// is the authoritative conflict signal; repository pre-checks only provide
// the friendlier early message.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	employeeIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "employee_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection(CollectionEmployees).Indexes().CreateMany(ctx, employeeIndexes); err != nil {
		return fmt.Errorf("employees indexes: %w", err)
	}

	attendanceIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "employee_id", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Collection(CollectionAttendance).Indexes().CreateOne(ctx, attendanceIndex); err != nil {
		return fmt.Errorf("attendance index: %w", err)
	}

	return nil
}
