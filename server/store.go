package server

import (
	"context"

	"github.com/example/revoparts/pkg/models"
)

// Store is the storage surface the handlers need. *repository.MongoRepository
// satisfies it; tests substitute an in-memory implementation.
type Store interface {
	ListParts(ctx context.Context) ([]models.Part, error)
	FindPartByID(ctx context.Context, id string) (*models.Part, error)
	CreatePart(ctx context.Context, part models.Part) (models.InsertAck, error)
	SetPartQuantity(ctx context.Context, id string, quantity int32) (models.UpdateAck, error)

	CreateUser(ctx context.Context, user models.User) (bool, *models.User, models.InsertAck, error)
	UpsertUser(ctx context.Context, email string, user models.User) (models.UpdateAck, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUsersByEmail(ctx context.Context, email string) ([]models.User, error)
	PromoteUser(ctx context.Context, email string) (models.UpdateAck, error)
	DeleteUser(ctx context.Context, id string) (models.DeleteAck, error)

	CreateOrder(ctx context.Context, order models.Order) (bool, *models.Order, models.InsertAck, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	OrdersByEmail(ctx context.Context, email string) ([]models.Order, error)
	FindOrderByID(ctx context.Context, id string) (*models.Order, error)
	MarkOrderPaid(ctx context.Context, id, transactionID string) (models.UpdateAck, error)
	SetOrderApproval(ctx context.Context, id, approve string) (models.UpdateAck, error)
	DeleteOrder(ctx context.Context, id string) (models.DeleteAck, error)

	ListReviews(ctx context.Context) ([]models.Review, error)
	CreateReview(ctx context.Context, review models.Review) (models.InsertAck, error)

	RecordPayment(ctx context.Context, payment models.Payment) (models.InsertAck, error)

	Ping(ctx context.Context) error
}

// RoleCache shortcuts the admin guard's user lookup. Misses and cache
// errors both fall through to the store.
type RoleCache interface {
	GetRoleCache(ctx context.Context, email string) (string, bool)
	CacheRole(ctx context.Context, email, role string) error
	InvalidateRole(ctx context.Context, email string) error
}

// IntentCreator is the payment bridge as seen by the handlers.
type IntentCreator interface {
	CreateIntent(ctx context.Context, total float64) (string, error)
}
