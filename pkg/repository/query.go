package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/revoparts/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrBadID marks a path parameter that is not a valid document id.
var ErrBadID = errors.New("malformed document id")

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrBadID, id)
	}
	return oid, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) ([]T, error) {
	cursor, err := retryOnce(ctx, func() (*mongo.Cursor, error) {
		return coll.Find(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []T
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// findOne returns (nil, nil) on a miss; absent documents are not errors
// on read paths.
func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) (*T, error) {
	doc, err := retryOnce(ctx, func() (*T, error) {
		var d T
		if err := coll.FindOne(ctx, filter).Decode(&d); err != nil {
			return nil, err
		}
		return &d, nil
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func findByID[T any](ctx context.Context, coll *mongo.Collection, id string) (*T, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return findOne[T](ctx, coll, bson.M{"_id": oid})
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id string) (models.DeleteAck, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.DeleteAck{}, err
	}
	res, err := retryOnce(ctx, func() (*mongo.DeleteResult, error) {
		return coll.DeleteOne(ctx, bson.M{"_id": oid})
	})
	if err != nil {
		return models.DeleteAck{}, err
	}
	return models.DeleteAck{DeletedCount: res.DeletedCount}, nil
}

// insertIfAbsent is the idempotent writer: look up the natural key,
// hand back the existing document on a hit, insert otherwise. A
// duplicate-key error from the unique index means another writer won a
// concurrent race; the winner's document is fetched and returned as if
// the read path had seen it first.
func insertIfAbsent[T any](ctx context.Context, coll *mongo.Collection, naturalKey bson.M, doc T) (bool, *T, models.InsertAck, error) {
	existing, err := findOne[T](ctx, coll, naturalKey)
	if err != nil {
		return false, nil, models.InsertAck{}, err
	}
	if existing != nil {
		return false, existing, models.InsertAck{}, nil
	}

	res, err := retryOnce(ctx, func() (*mongo.InsertOneResult, error) {
		return coll.InsertOne(ctx, doc)
	})
	if mongo.IsDuplicateKeyError(err) {
		winner, ferr := findOne[T](ctx, coll, naturalKey)
		if ferr != nil {
			return false, nil, models.InsertAck{}, ferr
		}
		return false, winner, models.InsertAck{}, nil
	}
	if err != nil {
		return false, nil, models.InsertAck{}, err
	}

	return true, nil, models.InsertAck{InsertedID: res.InsertedID}, nil
}
