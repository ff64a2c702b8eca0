package mongodb

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/frahmantamala/hrms-lite/internal"
	employeeDatamodel "github.com/frahmantamala/hrms-lite/internal/core/datamodel/employee"
	"github.com/frahmantamala/hrms-lite/internal/datastore"
)

type EmployeeRepository struct {
	store *datastore.Store
}

func NewEmployeeRepository(store *datastore.Store) *EmployeeRepository {
	return &EmployeeRepository{store: store}
}

func (r *EmployeeRepository) collection() (*mongo.Collection, error) {
	db, err := r.store.Database()
	if err != nil {
		return nil, err
	}
	return db.Collection(datastore.CollectionEmployees), nil
}

func (r *EmployeeRepository) GetAll(ctx context.Context) ([]*employeeDatamodel.Employee, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	var employees []*employeeDatamodel.Employee
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *EmployeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*employeeDatamodel.Employee, error) {
	return r.findOne(ctx, bson.M{"employee_id": employeeID})
}

func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*employeeDatamodel.Employee, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *EmployeeRepository) findOne(ctx context.Context, filter bson.M) (*employeeDatamodel.Employee, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	var emp employeeDatamodel.Employee
	if err := coll.FindOne(ctx, filter).Decode(&emp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) Insert(ctx context.Context, emp *employeeDatamodel.Employee) error {
	coll, err := r.collection()
	if err != nil {
		return err
	}

	result, err := coll.InsertOne(ctx, emp)
	if err != nil {
		if datastore.IsDuplicateKey(err) {
			return r.duplicateKeyConflict(err, emp)
		}
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		emp.ID = oid
	}
	return nil
}

// duplicateKeyConflict turns a unique-index violation into the same domain
// conflict the service pre-checks would have produced. This closes the
// check-then-insert race: a concurrent create that slips past the pre-check
// still fails with a clean 409 instead of an opaque driver error.
func (r *EmployeeRepository) duplicateKeyConflict(err error, emp *employeeDatamodel.Employee) error {
	if strings.Contains(err.Error(), "email") {
		return internal.NewConflictError(
			"Email '"+emp.Email+"' is already registered",
			internal.ErrCodeDuplicateEmail).WithCause(err)
	}
	return internal.NewConflictError(
		"Employee ID '"+emp.EmployeeID+"' already exists",
		internal.ErrCodeDuplicateEmployeeID).WithCause(err)
}

// DeleteCascade removes the employee document and all attendance records
// referencing it. It first attempts a multi-document transaction; on
// deployments without transaction support (standalone servers) it falls back
// to sequential deletes, accepting the documented orphan-record window that
// the reconcile command sweeps.
func (r *EmployeeRepository) DeleteCascade(ctx context.Context, employeeID string) (int64, error) {
	db, err := r.store.Database()
	if err != nil {
		return 0, err
	}

	session, err := db.Client().StartSession()
	if err != nil {
		return r.deleteSequential(ctx, db, employeeID)
	}
	defer session.EndSession(ctx)

	removed, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := db.Collection(datastore.CollectionEmployees).DeleteOne(sc, bson.M{"employee_id": employeeID}); err != nil {
			return nil, err
		}
		result, err := db.Collection(datastore.CollectionAttendance).DeleteMany(sc, bson.M{"employee_id": employeeID})
		if err != nil {
			return nil, err
		}
		return result.DeletedCount, nil
	})
	if err != nil {
		// standalone deployments reject transactions; deletes are
		// idempotent so retrying sequentially is safe
		return r.deleteSequential(ctx, db, employeeID)
	}

	return removed.(int64), nil
}

func (r *EmployeeRepository) deleteSequential(ctx context.Context, db *mongo.Database, employeeID string) (int64, error) {
	if _, err := db.Collection(datastore.CollectionEmployees).DeleteOne(ctx, bson.M{"employee_id": employeeID}); err != nil {
		return 0, err
	}
	result, err := db.Collection(datastore.CollectionAttendance).DeleteMany(ctx, bson.M{"employee_id": employeeID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// FullName resolves an employee's display name, satisfying the attendance
// package's employee directory dependency.
func (r *EmployeeRepository) FullName(ctx context.Context, employeeID string) (string, error) {
	emp, err := r.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return "", err
	}
	if emp == nil {
		return "", internal.ErrEmployeeNotFound
	}
	return emp.FullName, nil
}
