package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order approval states. The zero value means the order is still pending.
const (
	ApprovePending  = "pending"
	ApproveApproved = "approved"
	ApproveRejected = "rejected"
)

// Order is a purchase document. (Email, ProductName) is the natural key:
// at most one order exists per pair, backed by a compound unique index.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email         string             `bson:"email" json:"email"`
	ProductName   string             `bson:"productName" json:"productName"`
	Quantity      int32              `bson:"quantity,omitempty" json:"quantity,omitempty"`
	Total         float64            `bson:"total,omitempty" json:"total,omitempty"`
	Address       string             `bson:"address,omitempty" json:"address,omitempty"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Paid          bool               `bson:"paid" json:"paid"`
	Approve       string             `bson:"approve,omitempty" json:"approve,omitempty"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
}
