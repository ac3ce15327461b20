package server

import (
	"context"
	"fmt"

	"github.com/example/revoparts/pkg/models"
	"github.com/example/revoparts/pkg/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore is an in-memory Store with the same upsert and natural-key
// semantics as the mongo repository.
type fakeStore struct {
	parts    []models.Part
	users    []models.User
	orders   []models.Order
	reviews  []models.Review
	payments []models.Payment
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func mustOID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", repository.ErrBadID, id)
	}
	return oid, nil
}

func (f *fakeStore) Ping(ctx context.Context) error { return nil }

func (f *fakeStore) ListParts(ctx context.Context) ([]models.Part, error) {
	return f.parts, nil
}

func (f *fakeStore) FindPartByID(ctx context.Context, id string) (*models.Part, error) {
	oid, err := mustOID(id)
	if err != nil {
		return nil, err
	}
	for i := range f.parts {
		if f.parts[i].ID == oid {
			return &f.parts[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreatePart(ctx context.Context, part models.Part) (models.InsertAck, error) {
	part.ID = primitive.NewObjectID()
	f.parts = append(f.parts, part)
	return models.InsertAck{InsertedID: part.ID}, nil
}

func (f *fakeStore) SetPartQuantity(ctx context.Context, id string, quantity int32) (models.UpdateAck, error) {
	oid, err := mustOID(id)
	if err != nil {
		return models.UpdateAck{}, err
	}
	for i := range f.parts {
		if f.parts[i].ID == oid {
			modified := int64(0)
			if f.parts[i].AvailableQuantity != quantity {
				modified = 1
			}
			f.parts[i].AvailableQuantity = quantity
			return models.UpdateAck{MatchedCount: 1, ModifiedCount: modified}, nil
		}
	}
	// upsert miss: a document holding only the quantity field
	f.parts = append(f.parts, models.Part{ID: oid, AvailableQuantity: quantity})
	return models.UpdateAck{UpsertedID: oid}, nil
}

func (f *fakeStore) CreateUser(ctx context.Context, user models.User) (bool, *models.User, models.InsertAck, error) {
	for i := range f.users {
		if f.users[i].Email == user.Email {
			return false, &f.users[i], models.InsertAck{}, nil
		}
	}
	user.ID = primitive.NewObjectID()
	f.users = append(f.users, user)
	return true, nil, models.InsertAck{InsertedID: user.ID}, nil
}

// UpsertUser mirrors the mongo repository's profile whitelist: only
// email, name and number are ever written, never the role.
func (f *fakeStore) UpsertUser(ctx context.Context, email string, user models.User) (models.UpdateAck, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			f.users[i].Name = user.Name
			f.users[i].Number = user.Number
			return models.UpdateAck{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	created := models.User{
		ID:     primitive.NewObjectID(),
		Email:  email,
		Name:   user.Name,
		Number: user.Number,
	}
	f.users = append(f.users, created)
	return models.UpdateAck{UpsertedID: created.ID}, nil
}

func (f *fakeStore) ListUsers(ctx context.Context) ([]models.User, error) {
	return f.users, nil
}

func (f *fakeStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			return &f.users[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := mustOID(id)
	if err != nil {
		return nil, err
	}
	for i := range f.users {
		if f.users[i].ID == oid {
			return &f.users[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindUsersByEmail(ctx context.Context, email string) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if u.Email == email {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeStore) PromoteUser(ctx context.Context, email string) (models.UpdateAck, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			f.users[i].Role = models.RoleAdmin
			return models.UpdateAck{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return models.UpdateAck{}, nil
}

func (f *fakeStore) DeleteUser(ctx context.Context, id string) (models.DeleteAck, error) {
	oid, err := mustOID(id)
	if err != nil {
		return models.DeleteAck{}, err
	}
	for i := range f.users {
		if f.users[i].ID == oid {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return models.DeleteAck{DeletedCount: 1}, nil
		}
	}
	return models.DeleteAck{}, nil
}

func (f *fakeStore) CreateOrder(ctx context.Context, order models.Order) (bool, *models.Order, models.InsertAck, error) {
	for i := range f.orders {
		if f.orders[i].Email == order.Email && f.orders[i].ProductName == order.ProductName {
			return false, &f.orders[i], models.InsertAck{}, nil
		}
	}
	order.ID = primitive.NewObjectID()
	f.orders = append(f.orders, order)
	return true, nil, models.InsertAck{InsertedID: order.ID}, nil
}

func (f *fakeStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	return f.orders, nil
}

func (f *fakeStore) OrdersByEmail(ctx context.Context, email string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.Email == email {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeStore) FindOrderByID(ctx context.Context, id string) (*models.Order, error) {
	oid, err := mustOID(id)
	if err != nil {
		return nil, err
	}
	for i := range f.orders {
		if f.orders[i].ID == oid {
			return &f.orders[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) MarkOrderPaid(ctx context.Context, id, transactionID string) (models.UpdateAck, error) {
	oid, err := mustOID(id)
	if err != nil {
		return models.UpdateAck{}, err
	}
	for i := range f.orders {
		if f.orders[i].ID == oid {
			f.orders[i].Paid = true
			f.orders[i].TransactionID = transactionID
			return models.UpdateAck{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return models.UpdateAck{}, nil
}

func (f *fakeStore) SetOrderApproval(ctx context.Context, id, approve string) (models.UpdateAck, error) {
	oid, err := mustOID(id)
	if err != nil {
		return models.UpdateAck{}, err
	}
	for i := range f.orders {
		if f.orders[i].ID == oid {
			f.orders[i].Approve = approve
			return models.UpdateAck{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	f.orders = append(f.orders, models.Order{ID: oid, Approve: approve})
	return models.UpdateAck{UpsertedID: oid}, nil
}

func (f *fakeStore) DeleteOrder(ctx context.Context, id string) (models.DeleteAck, error) {
	oid, err := mustOID(id)
	if err != nil {
		return models.DeleteAck{}, err
	}
	for i := range f.orders {
		if f.orders[i].ID == oid {
			f.orders = append(f.orders[:i], f.orders[i+1:]...)
			return models.DeleteAck{DeletedCount: 1}, nil
		}
	}
	return models.DeleteAck{}, nil
}

func (f *fakeStore) ListReviews(ctx context.Context) ([]models.Review, error) {
	return f.reviews, nil
}

func (f *fakeStore) CreateReview(ctx context.Context, review models.Review) (models.InsertAck, error) {
	review.ID = primitive.NewObjectID()
	f.reviews = append(f.reviews, review)
	return models.InsertAck{InsertedID: review.ID}, nil
}

func (f *fakeStore) RecordPayment(ctx context.Context, payment models.Payment) (models.InsertAck, error) {
	payment.ID = primitive.NewObjectID()
	f.payments = append(f.payments, payment)
	return models.InsertAck{InsertedID: payment.ID}, nil
}

// fakeRoles is a RoleCache over a plain map.
type fakeRoles struct {
	roles map[string]string
}

func newFakeRoles() *fakeRoles {
	return &fakeRoles{roles: make(map[string]string)}
}

func (f *fakeRoles) GetRoleCache(ctx context.Context, email string) (string, bool) {
	role, ok := f.roles[email]
	return role, ok
}

func (f *fakeRoles) CacheRole(ctx context.Context, email, role string) error {
	f.roles[email] = role
	return nil
}

func (f *fakeRoles) InvalidateRole(ctx context.Context, email string) error {
	delete(f.roles, email)
	return nil
}

// fakeIntent is an IntentCreator returning a canned secret or error.
type fakeIntent struct {
	secret string
	err    error
	calls  int
}

func (f *fakeIntent) CreateIntent(ctx context.Context, total float64) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.secret, nil
}
