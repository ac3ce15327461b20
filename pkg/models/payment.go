package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment records a completed charge. Exactly one is written when an
// order transitions to paid, carrying the same transaction id.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	OrderID       string             `bson:"orderId,omitempty" json:"orderId,omitempty"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
	Total         float64            `bson:"total,omitempty" json:"total,omitempty"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
