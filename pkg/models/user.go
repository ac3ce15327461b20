package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const RoleAdmin = "admin"

// User is an account document. Email is the natural key; a unique index
// on it backs the idempotent registration path. Role is empty for
// customers and "admin" after an authorized promotion.
type User struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email  string             `bson:"email" json:"email"`
	Name   string             `bson:"name,omitempty" json:"name,omitempty"`
	Number string             `bson:"number,omitempty" json:"number,omitempty"`
	Role   string             `bson:"role,omitempty" json:"role,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
