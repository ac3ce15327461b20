package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is create-only; there is no update or delete path.
type Review struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name    string             `bson:"name,omitempty" json:"name,omitempty"`
	Email   string             `bson:"email,omitempty" json:"email,omitempty"`
	Rating  int32              `bson:"rating,omitempty" json:"rating,omitempty"`
	Content string             `bson:"content,omitempty" json:"content,omitempty"`
}
