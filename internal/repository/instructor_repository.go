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

// InstructorRepository handles instructor data access.
type InstructorRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewInstructorRepository creates a new InstructorRepository.
func NewInstructorRepository(db *database.Mongo, timeout time.Duration) *InstructorRepository {
	return &InstructorRepository{coll: db.Instructors(), timeout: timeout}
}

// List retrieves every instructor document.
func (r *InstructorRepository) List(ctx context.Context) ([]model.Instructor, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	instructors := []model.Instructor{}
	if err := cur.All(ctx, &instructors); err != nil {
		return nil, err
	}
	return instructors, nil
}

// GetByID returns mongo.ErrNoDocuments when the id is unknown.
func (r *InstructorRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Instructor, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	i := &model.Instructor{}
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(i); err != nil {
		return nil, err
	}
	return i, nil
}

// Create inserts an instructor. Only the seeding command uses it.
func (r *InstructorRepository) Create(ctx context.Context, i *model.Instructor) (*model.InsertResult, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, i)
	if err != nil {
		return nil, err
	}
	return insertResult(res), nil
}
