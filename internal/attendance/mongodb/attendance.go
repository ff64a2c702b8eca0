package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/frahmantamala/hrms-lite/internal"
	"github.com/frahmantamala/hrms-lite/internal/attendance"
	attendanceDatamodel "github.com/frahmantamala/hrms-lite/internal/core/datamodel/attendance"
	"github.com/frahmantamala/hrms-lite/internal/datastore"
)

type AttendanceRepository struct {
	store *datastore.Store
}

func NewAttendanceRepository(store *datastore.Store) *AttendanceRepository {
	return &AttendanceRepository{store: store}
}

func (r *AttendanceRepository) collection() (*mongo.Collection, error) {
	db, err := r.store.Database()
	if err != nil {
		return nil, err
	}
	return db.Collection(datastore.CollectionAttendance), nil
}

func (r *AttendanceRepository) Insert(ctx context.Context, record *attendanceDatamodel.Attendance) error {
	coll, err := r.collection()
	if err != nil {
		return err
	}

	result, err := coll.InsertOne(ctx, record)
	if err != nil {
		if datastore.IsDuplicateKey(err) {
			return internal.NewConflictError(
				"Attendance already marked for employee '"+record.EmployeeID+"' on "+record.Date+". Use update instead.",
				internal.ErrCodeAttendanceAlreadyMarked).WithCause(err)
		}
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		record.ID = oid
	}
	return nil
}

func (r *AttendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*attendanceDatamodel.Attendance, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	var record attendanceDatamodel.Attendance
	if err := coll.FindOne(ctx, bson.M{"employee_id": employeeID, "date": date}).Decode(&record); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *AttendanceRepository) UpdateStatus(ctx context.Context, employeeID, date, status string) (*attendanceDatamodel.Attendance, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var record attendanceDatamodel.Attendance
	err = coll.FindOneAndUpdate(ctx,
		bson.M{"employee_id": employeeID, "date": date},
		bson.M{"$set": bson.M{"status": status}},
		opts,
	).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *AttendanceRepository) ListForEmployee(ctx context.Context, employeeID, date, status string) ([]*attendanceDatamodel.Attendance, error) {
	filter := bson.M{"employee_id": employeeID}
	applyFilters(filter, date, status)
	return r.find(ctx, filter)
}

func (r *AttendanceRepository) ListAll(ctx context.Context, date, status string) ([]*attendanceDatamodel.Attendance, error) {
	filter := bson.M{}
	applyFilters(filter, date, status)
	return r.find(ctx, filter)
}

func (r *AttendanceRepository) find(ctx context.Context, filter bson.M) ([]*attendanceDatamodel.Attendance, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var records []*attendanceDatamodel.Attendance
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Counts issues the two per-status count queries used to enrich employee
// responses, satisfying the employee package's attendance counter
// dependency.
func (r *AttendanceRepository) Counts(ctx context.Context, employeeID string) (int64, int64, error) {
	coll, err := r.collection()
	if err != nil {
		return 0, 0, err
	}

	present, err := coll.CountDocuments(ctx, bson.M{"employee_id": employeeID, "status": string(attendance.StatusPresent)})
	if err != nil {
		return 0, 0, err
	}

	absent, err := coll.CountDocuments(ctx, bson.M{"employee_id": employeeID, "status": string(attendance.StatusAbsent)})
	if err != nil {
		return 0, 0, err
	}

	return present, absent, nil
}

func applyFilters(filter bson.M, date, status string) {
	if date != "" {
		filter["date"] = date
	}
	if status != "" {
		filter["status"] = status
	}
}
