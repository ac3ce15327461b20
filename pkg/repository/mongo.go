package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/example/revoparts/pkg/config"
	"github.com/example/revoparts/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collParts    = "parts"
	collOrders   = "orders"
	collUsers    = "users"
	collReviews  = "reviews"
	collPayments = "payments"
)

// MongoRepository owns the client handle for the storefront database.
// It is constructed once in main and handed to the server; nothing in
// this package keeps package-level state.
type MongoRepository struct {
	client   *mongo.Client
	database *mongo.Database
	config   *config.MongoDBConfig
}

func NewMongoRepository(cfg *config.MongoDBConfig) (*MongoRepository, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}

	return &MongoRepository{
		client:   client,
		database: client.Database(cfg.Database),
		config:   cfg,
	}, nil
}

func (m *MongoRepository) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *MongoRepository) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// EnsureIndexes creates the unique indexes backing the natural keys:
// one user per email, one order per (email, productName). With these in
// place a lost check-then-insert race surfaces as a duplicate-key write
// error instead of a second document.
func (m *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := m.database.Collection(collUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}

	_, err = m.database.Collection(collOrders).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}, {Key: "productName", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create orders index: %w", err)
	}

	return nil
}

// retryOnce reruns a storage call a single time after a driver-reported
// network timeout, provided the request context itself is still live.
func retryOnce[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	out, err := fn()
	if err != nil && mongo.IsTimeout(err) && ctx.Err() == nil {
		out, err = fn()
	}
	return out, err
}

func updateAck(res *mongo.UpdateResult) models.UpdateAck {
	return models.UpdateAck{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedID:    res.UpsertedID,
	}
}

// Parts

func (m *MongoRepository) ListParts(ctx context.Context) ([]models.Part, error) {
	return findAll[models.Part](ctx, m.database.Collection(collParts), bson.M{})
}

func (m *MongoRepository) FindPartByID(ctx context.Context, id string) (*models.Part, error) {
	return findByID[models.Part](ctx, m.database.Collection(collParts), id)
}

func (m *MongoRepository) CreatePart(ctx context.Context, part models.Part) (models.InsertAck, error) {
	res, err := retryOnce(ctx, func() (*mongo.InsertOneResult, error) {
		return m.database.Collection(collParts).InsertOne(ctx, part)
	})
	if err != nil {
		return models.InsertAck{}, err
	}
	return models.InsertAck{InsertedID: res.InsertedID}, nil
}

// SetPartQuantity sets the stock count by id. Upsert is on: a miss
// creates a document holding only the quantity field, matching the
// storefront's historical update-option behavior.
func (m *MongoRepository) SetPartQuantity(ctx context.Context, id string, quantity int32) (models.UpdateAck, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.UpdateAck{}, err
	}
	res, err := retryOnce(ctx, func() (*mongo.UpdateResult, error) {
		return m.database.Collection(collParts).UpdateOne(ctx,
			bson.M{"_id": oid},
			bson.M{"$set": bson.M{"quantity": quantity}},
			options.Update().SetUpsert(true))
	})
	if err != nil {
		return models.UpdateAck{}, err
	}
	return updateAck(res), nil
}

// Users

// CreateUser inserts a user unless one already exists for the email.
// The existing document wins both on the read-path hit and on a lost
// insert race against the unique index.
func (m *MongoRepository) CreateUser(ctx context.Context, user models.User) (bool, *models.User, models.InsertAck, error) {
	coll := m.database.Collection(collUsers)
	filter := bson.M{"email": user.Email}
	return insertIfAbsent[models.User](ctx, coll, filter, user)
}

// profileFields whitelists what a profile upsert may touch. Role is
// deliberately absent: it changes only through PromoteUser.
func profileFields(email string, user models.User) bson.M {
	return bson.M{
		"email":  email,
		"name":   user.Name,
		"number": user.Number,
	}
}

// UpsertUser replaces the profile fields for an email, creating the
// account on first sight. This is the public registration/login path,
// so only the whitelisted profile fields are written.
func (m *MongoRepository) UpsertUser(ctx context.Context, email string, user models.User) (models.UpdateAck, error) {
	res, err := retryOnce(ctx, func() (*mongo.UpdateResult, error) {
		return m.database.Collection(collUsers).UpdateOne(ctx,
			bson.M{"email": email},
			bson.M{"$set": profileFields(email, user)},
			options.Update().SetUpsert(true))
	})
	if err != nil {
		return models.UpdateAck{}, err
	}
	return updateAck(res), nil
}

func (m *MongoRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	return findAll[models.User](ctx, m.database.Collection(collUsers), bson.M{})
}

// FindUserByEmail returns (nil, nil) when no account exists.
func (m *MongoRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, m.database.Collection(collUsers), bson.M{"email": email})
}

func (m *MongoRepository) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	return findByID[models.User](ctx, m.database.Collection(collUsers), id)
}

func (m *MongoRepository) FindUsersByEmail(ctx context.Context, email string) ([]models.User, error) {
	return findAll[models.User](ctx, m.database.Collection(collUsers), bson.M{"email": email})
}

// PromoteUser escalates a user to admin. No upsert: promoting an email
// that was never registered must not mint an account.
func (m *MongoRepository) PromoteUser(ctx context.Context, email string) (models.UpdateAck, error) {
	res, err := retryOnce(ctx, func() (*mongo.UpdateResult, error) {
		return m.database.Collection(collUsers).UpdateOne(ctx,
			bson.M{"email": email},
			bson.M{"$set": bson.M{"role": models.RoleAdmin}})
	})
	if err != nil {
		return models.UpdateAck{}, err
	}
	return updateAck(res), nil
}

func (m *MongoRepository) DeleteUser(ctx context.Context, id string) (models.DeleteAck, error) {
	return deleteByID(ctx, m.database.Collection(collUsers), id)
}

// Orders

// CreateOrder inserts an order unless one already exists for the
// (email, productName) pair.
func (m *MongoRepository) CreateOrder(ctx context.Context, order models.Order) (bool, *models.Order, models.InsertAck, error) {
	coll := m.database.Collection(collOrders)
	filter := bson.M{"email": order.Email, "productName": order.ProductName}
	return insertIfAbsent[models.Order](ctx, coll, filter, order)
}

func (m *MongoRepository) ListOrders(ctx context.Context) ([]models.Order, error) {
	return findAll[models.Order](ctx, m.database.Collection(collOrders), bson.M{})
}

func (m *MongoRepository) OrdersByEmail(ctx context.Context, email string) ([]models.Order, error) {
	return findAll[models.Order](ctx, m.database.Collection(collOrders), bson.M{"email": email})
}

func (m *MongoRepository) FindOrderByID(ctx context.Context, id string) (*models.Order, error) {
	return findByID[models.Order](ctx, m.database.Collection(collOrders), id)
}

// MarkOrderPaid flips the paid flag and attaches the transaction id.
// No upsert: payment completion always targets an existing order.
func (m *MongoRepository) MarkOrderPaid(ctx context.Context, id, transactionID string) (models.UpdateAck, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.UpdateAck{}, err
	}
	res, err := retryOnce(ctx, func() (*mongo.UpdateResult, error) {
		return m.database.Collection(collOrders).UpdateOne(ctx,
			bson.M{"_id": oid},
			bson.M{"$set": bson.M{"paid": true, "transactionId": transactionID}})
	})
	if err != nil {
		return models.UpdateAck{}, err
	}
	return updateAck(res), nil
}

func (m *MongoRepository) SetOrderApproval(ctx context.Context, id, approve string) (models.UpdateAck, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.UpdateAck{}, err
	}
	res, err := retryOnce(ctx, func() (*mongo.UpdateResult, error) {
		return m.database.Collection(collOrders).UpdateOne(ctx,
			bson.M{"_id": oid},
			bson.M{"$set": bson.M{"approve": approve}},
			options.Update().SetUpsert(true))
	})
	if err != nil {
		return models.UpdateAck{}, err
	}
	return updateAck(res), nil
}

func (m *MongoRepository) DeleteOrder(ctx context.Context, id string) (models.DeleteAck, error) {
	return deleteByID(ctx, m.database.Collection(collOrders), id)
}

// Reviews

func (m *MongoRepository) ListReviews(ctx context.Context) ([]models.Review, error) {
	return findAll[models.Review](ctx, m.database.Collection(collReviews), bson.M{})
}

func (m *MongoRepository) CreateReview(ctx context.Context, review models.Review) (models.InsertAck, error) {
	res, err := retryOnce(ctx, func() (*mongo.InsertOneResult, error) {
		return m.database.Collection(collReviews).InsertOne(ctx, review)
	})
	if err != nil {
		return models.InsertAck{}, err
	}
	return models.InsertAck{InsertedID: res.InsertedID}, nil
}

// Payments

func (m *MongoRepository) RecordPayment(ctx context.Context, payment models.Payment) (models.InsertAck, error) {
	payment.CreatedAt = time.Now()
	res, err := retryOnce(ctx, func() (*mongo.InsertOneResult, error) {
		return m.database.Collection(collPayments).InsertOne(ctx, payment)
	})
	if err != nil {
		return models.InsertAck{}, err
	}
	return models.InsertAck{InsertedID: res.InsertedID}, nil
}
