package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User documents are owned by the peer Users service; this service only
// appends to the reviews list when a review is created.
type User struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username  string               `bson:"username" json:"username"`
	Email     string               `bson:"email" json:"email"`
	Reviews   []primitive.ObjectID `bson:"reviews" json:"reviews"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
}
