package attendance

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Date is stored as its YYYY-MM-DD string so the compound unique index on
// (employee_id, date) compares calendar days, not instants.
type Attendance struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	EmployeeID string             `bson:"employee_id"`
	Date       string             `bson:"date"`
	Status     string             `bson:"status"`
	CreatedAt  time.Time          `bson:"created_at"`
}
