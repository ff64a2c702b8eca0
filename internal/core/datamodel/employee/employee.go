package employee

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Employee struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	EmployeeID string             `bson:"employee_id"`
	FullName   string             `bson:"full_name"`
	Email      string             `bson:"email"`
	Department string             `bson:"department"`
	CreatedAt  time.Time          `bson:"created_at"`
}
