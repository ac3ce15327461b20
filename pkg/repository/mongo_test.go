package repository

import (
	"testing"

	"github.com/example/revoparts/pkg/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProfileFieldsWhitelist(t *testing.T) {
	user := models.User{
		ID:     primitive.NewObjectID(),
		Email:  "smuggled@b.com",
		Name:   "Eve",
		Number: "123",
		Role:   models.RoleAdmin,
	}

	set := profileFields("a@b.com", user)

	assert.Equal(t, "a@b.com", set["email"], "filter email wins over the body email")
	assert.Equal(t, "Eve", set["name"])
	assert.Equal(t, "123", set["number"])
	assert.NotContains(t, set, "role", "profile upserts must never write the role")
	assert.NotContains(t, set, "_id")
	assert.Len(t, set, 3)
}
