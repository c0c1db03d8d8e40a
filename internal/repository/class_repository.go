package repository

import (
	"context"
	"time"

	"github.com/shapeshed/shapeshed-backend/internal/database"
	"github.com/shapeshed/shapeshed-backend/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ClassRepository handles class data access.
type ClassRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(db *database.Mongo, timeout time.Duration) *ClassRepository {
	return &ClassRepository{coll: db.Classes(), timeout: timeout}
}

// List retrieves every class document.
func (r *ClassRepository) List(ctx context.Context) ([]model.Class, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	classes := []model.Class{}
	if err := cur.All(ctx, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// FindByName returns the first class with the given name, or
// mongo.ErrNoDocuments.
func (r *ClassRepository) FindByName(ctx context.Context, name string) (*model.Class, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	c := &model.Class{}
	if err := r.coll.FindOne(ctx, bson.M{model.ClassFieldName: name}).Decode(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a new class.
func (r *ClassRepository) Create(ctx context.Context, c *model.Class) (*model.InsertResult, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, c)
	if err != nil {
		return nil, err
	}
	return insertResult(res), nil
}

// SetStatus overwrites the status field.
func (r *ClassRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*model.UpdateResult, error) {
	return r.update(ctx, id, bson.M{"$set": bson.M{model.ClassFieldStatus: status}})
}

// DecrementSeats lowers availableSeats by one. There is no floor.
func (r *ClassRepository) DecrementSeats(ctx context.Context, id primitive.ObjectID) (*model.UpdateResult, error) {
	return r.update(ctx, id, bson.M{"$inc": bson.M{model.ClassFieldAvailableSeats: -1}})
}

func (r *ClassRepository) update(ctx context.Context, id primitive.ObjectID, update bson.M) (*model.UpdateResult, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.UpdateByID(ctx, id, update)
	if err != nil {
		return nil, err
	}
	return updateResult(res), nil
}
