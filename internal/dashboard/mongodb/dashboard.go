package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/frahmantamala/hrms-lite/internal/dashboard"
	"github.com/frahmantamala/hrms-lite/internal/datastore"
)

type DashboardRepository struct {
	store *datastore.Store
}

func NewDashboardRepository(store *datastore.Store) *DashboardRepository {
	return &DashboardRepository{store: store}
}

func (r *DashboardRepository) CountEmployees(ctx context.Context) (int64, error) {
	db, err := r.store.Database()
	if err != nil {
		return 0, err
	}
	return db.Collection(datastore.CollectionEmployees).CountDocuments(ctx, bson.M{})
}

func (r *DashboardRepository) CountAttendance(ctx context.Context, date, status string) (int64, error) {
	db, err := r.store.Database()
	if err != nil {
		return 0, err
	}

	filter := bson.M{}
	if date != "" {
		filter["date"] = date
	}
	if status != "" {
		filter["status"] = status
	}
	return db.Collection(datastore.CollectionAttendance).CountDocuments(ctx, filter)
}

func (r *DashboardRepository) DepartmentBreakdown(ctx context.Context) ([]dashboard.DepartmentCount, error) {
	db, err := r.store.Database()
	if err != nil {
		return nil, err
	}

	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$department", "count": bson.M{"$sum": 1}}},
		{"$sort": bson.M{"count": -1}},
	}

	cursor, err := db.Collection(datastore.CollectionEmployees).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var breakdown []dashboard.DepartmentCount
	if err := cursor.All(ctx, &breakdown); err != nil {
		return nil, err
	}
	return breakdown, nil
}
