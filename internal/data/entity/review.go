package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Author       primitive.ObjectID `bson:"author" json:"author"`
	MovieApiID   string             `bson:"movieApiId" json:"movieApiId"`
	Content      string             `bson:"content" json:"content"`
	Rate         float64            `bson:"rate" json:"rate"`
	LikesCounter int64              `bson:"likesCounter" json:"likesCounter"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
