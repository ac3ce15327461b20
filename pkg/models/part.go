package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Part is a catalog item. AvailableQuantity is the mutable stock count
// targeted by the quantity-update endpoints.
type Part struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name              string             `bson:"name,omitempty" json:"name,omitempty"`
	Image             string             `bson:"image,omitempty" json:"image,omitempty"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	MinOrderQuantity  int32              `bson:"minOrderQuantity,omitempty" json:"minOrderQuantity,omitempty"`
	AvailableQuantity int32              `bson:"quantity" json:"quantity"`
	Price             float64            `bson:"price,omitempty" json:"price,omitempty"`
}
